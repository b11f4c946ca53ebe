package dto

import (
	"github.com/fitkeys/workout-sync-service/internal/domain"
	"github.com/fitkeys/workout-sync-service/pkg/convert"
	"github.com/fitkeys/workout-sync-service/pkg/timex"
)

// SessionAddRequest Request parameters for planning a workout session
// 添加训练计划的请求参数
type SessionAddRequest struct {
	Date        string   `json:"date" form:"date" binding:"required" example:"2026-08-28"`        // Session date // 训练日期
	Time        string   `json:"time" form:"time" example:"18:30"`                                // Optional clock time // 可选时刻
	CategoryIDs []string `json:"categoryIds" form:"categoryIds" binding:"required,min=1"`         // Trained categories // 训练分类
	Notes       string   `json:"notes" form:"notes"`                                              // Optional notes // 可选笔记
}

// SessionUpdateRequest partial update; nil pointer fields stay untouched
// 训练计划部分更新请求，nil 指针字段保持原值
type SessionUpdateRequest struct {
	ID          string    `json:"id" form:"id" binding:"required"` // Session ID // 计划 ID
	Date        *string   `json:"date" form:"date"`                // New date // 新日期
	Time        *string   `json:"time" form:"time"`                // New clock time // 新时刻
	CategoryIDs *[]string `json:"categoryIds" form:"categoryIds"`  // New category set // 新分类集合
	Completed   *bool     `json:"completed" form:"completed"`      // Completion flag // 完成标记
	Notes       *string   `json:"notes" form:"notes"`              // New notes // 新笔记
}

// SessionDeleteRequest 删除训练计划的请求参数
type SessionDeleteRequest struct {
	ID string `json:"id" form:"id" binding:"required"` // Session ID // 计划 ID
}

// SessionListRequest 训练计划列表查询参数
type SessionListRequest struct {
	Date string `form:"date" example:"2026-08-28"` // Optional date filter // 可选的日期过滤
}

// ---------------- DTO / Response ----------------

// SessionDTO Workout session data transfer object
// SessionDTO 训练计划数据传输对象
type SessionDTO struct {
	ID          string   `json:"id"`              // Session ID // 计划 ID
	Date        string   `json:"date"`            // Session date // 训练日期
	Time        string   `json:"time,omitempty"`  // Clock time // 时刻
	CategoryIDs []string `json:"categoryIds"`     // Trained categories // 训练分类
	Completed   bool     `json:"completed"`       // Completion flag // 完成标记
	Notes       string   `json:"notes,omitempty"` // Notes // 笔记
	CreatedAt   string   `json:"createdAt"`       // Creation time // 创建时间
	UpdatedAt   string   `json:"updatedAt"`       // Updated time // 更新时间
}

// SessionToDTO 领域模型转 DTO
func SessionToDTO(s *domain.WorkoutSession) *SessionDTO {
	if s == nil {
		return nil
	}
	d := convert.StructAssign(s, &SessionDTO{}).(*SessionDTO)
	d.CreatedAt = timex.Time(s.CreatedAt).String()
	d.UpdatedAt = timex.Time(s.UpdatedAt).String()
	return d
}

// SessionsToDTO 领域模型列表转 DTO 列表
func SessionsToDTO(list []*domain.WorkoutSession) []*SessionDTO {
	out := make([]*SessionDTO, 0, len(list))
	for _, s := range list {
		out = append(out, SessionToDTO(s))
	}
	return out
}
