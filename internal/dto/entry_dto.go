package dto

import (
	"github.com/fitkeys/workout-sync-service/internal/domain"
	"github.com/fitkeys/workout-sync-service/pkg/convert"
	"github.com/fitkeys/workout-sync-service/pkg/timex"
)

// VideoAddRequest Request parameters for adding a video entry
// 添加视频条目的请求参数
type VideoAddRequest struct {
	CategoryID string `json:"categoryId" form:"categoryId" binding:"required"`                                // Category ID // 分类 ID
	URL        string `json:"url" form:"url" binding:"required" example:"https://youtu.be/dQw4w9WgXcQ"`       // YouTube URL // 视频链接
	Title      string `json:"title" form:"title"`                                                             // Optional title // 可选标题
	Notes      string `json:"notes" form:"notes"`                                                             // Optional notes // 可选笔记
	ImageURL   string `json:"imageUrl" form:"imageUrl"`                                                       // Optional cover image, defaults to the video thumbnail // 可选封面，默认取视频缩略图
}

// NoteAddRequest 添加纯笔记条目的请求参数
type NoteAddRequest struct {
	CategoryID string `json:"categoryId" form:"categoryId" binding:"required"` // Category ID // 分类 ID
	Title      string `json:"title" form:"title"`                              // Optional title // 可选标题
	Notes      string `json:"notes" form:"notes" binding:"required"`           // Note text // 笔记内容
	ImageURL   string `json:"imageUrl" form:"imageUrl"`                        // Optional cover image // 可选封面
}

// EntryUpdateRequest partial update; nil pointer fields stay untouched
// 条目部分更新请求，nil 指针字段保持原值
type EntryUpdateRequest struct {
	ID       string  `json:"id" form:"id" binding:"required"` // Entry ID // 条目 ID
	Title    *string `json:"title" form:"title"`              // New title // 新标题
	Notes    *string `json:"notes" form:"notes"`              // New notes // 新笔记
	ImageURL *string `json:"imageUrl" form:"imageUrl"`        // New cover image // 新封面
}

// EntryReorderRequest 分类内条目重排序的请求参数
type EntryReorderRequest struct {
	CategoryID string   `json:"categoryId" form:"categoryId" binding:"required"` // Category ID // 分类 ID
	IDs        []string `json:"ids" form:"ids" binding:"required,min=1"`         // Desired order // 期望的顺序
}

// EntryDeleteRequest 删除条目的请求参数
type EntryDeleteRequest struct {
	ID string `json:"id" form:"id" binding:"required"` // Entry ID // 条目 ID
}

// EntryListRequest 条目列表查询参数
type EntryListRequest struct {
	CategoryID string `form:"categoryId"` // Optional category filter // 可选的分类过滤
}

// ---------------- DTO / Response ----------------

// EntryDTO Entry data transfer object
// EntryDTO 条目数据传输对象
type EntryDTO struct {
	ID           string `json:"id"`                     // Entry ID // 条目 ID
	CategoryID   string `json:"categoryId"`             // Category ID // 分类 ID
	Kind         string `json:"kind"`                   // "video" or "note" // 条目类型
	Title        string `json:"title"`                  // Title // 标题
	SourceURL    string `json:"url,omitempty"`          // Video source URL // 视频原始链接
	VideoID      string `json:"videoId,omitempty"`      // YouTube video id // 视频 ID
	ThumbnailURL string `json:"thumbnailUrl,omitempty"` // Thumbnail URL // 缩略图链接
	Notes        string `json:"notes,omitempty"`        // Notes // 笔记
	Order        int    `json:"order"`                  // Sort order // 排序序号
	CreatedAt    string `json:"createdAt"`              // Creation time // 创建时间
	UpdatedAt    string `json:"updatedAt"`              // Updated time // 更新时间
}

// EntryToDTO 领域模型转 DTO
func EntryToDTO(e *domain.Entry) *EntryDTO {
	if e == nil {
		return nil
	}
	d := convert.StructAssign(e, &EntryDTO{}).(*EntryDTO)
	d.Kind = string(e.Kind)
	d.CreatedAt = timex.Time(e.CreatedAt).String()
	d.UpdatedAt = timex.Time(e.UpdatedAt).String()
	return d
}

// EntriesToDTO 领域模型列表转 DTO 列表
func EntriesToDTO(list []*domain.Entry) []*EntryDTO {
	out := make([]*EntryDTO, 0, len(list))
	for _, e := range list {
		out = append(out, EntryToDTO(e))
	}
	return out
}
