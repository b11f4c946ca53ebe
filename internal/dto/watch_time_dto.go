package dto

import (
	"github.com/fitkeys/workout-sync-service/internal/domain"
	"github.com/fitkeys/workout-sync-service/pkg/timex"
)

// WatchTimeAddRequest Request parameters for accumulating watch time
// 累计观看时长的请求参数
// Seconds 交由领域层校验，负数在那里被拒绝
type WatchTimeAddRequest struct {
	EntryID string `json:"entryId" form:"entryId" binding:"required"` // Entry ID // 条目 ID
	Seconds int    `json:"seconds" form:"seconds"`                    // Seconds to add // 累加秒数
}

// WatchTimeGetRequest 查询单条目观看时长的请求参数
type WatchTimeGetRequest struct {
	EntryID string `form:"entryId" binding:"required"` // Entry ID // 条目 ID
}

// WatchTimeCategoryRequest 查询分类观看总时长的请求参数
type WatchTimeCategoryRequest struct {
	CategoryID string `form:"categoryId" binding:"required"` // Category ID // 分类 ID
}

// ---------------- DTO / Response ----------------

// WatchTimeDTO 单条目观看时长数据传输对象
type WatchTimeDTO struct {
	EntryID   string `json:"entryId"`   // Entry ID // 条目 ID
	Seconds   int    `json:"seconds"`   // Total seconds // 总秒数
	Formatted string `json:"formatted"` // "12m 5s" // 人类可读格式
}

// WatchTimeToDTO 秒数转 DTO
func WatchTimeToDTO(entryID string, seconds int) *WatchTimeDTO {
	return &WatchTimeDTO{
		EntryID:   entryID,
		Seconds:   seconds,
		Formatted: timex.FormatWatchTime(int64(seconds)),
	}
}

// WatchTimeMapToDTO 整表转 DTO 列表
func WatchTimeMapToDTO(m domain.WatchTimeMap) []*WatchTimeDTO {
	out := make([]*WatchTimeDTO, 0, len(m))
	for entryID, seconds := range m {
		out = append(out, WatchTimeToDTO(entryID, seconds))
	}
	return out
}
