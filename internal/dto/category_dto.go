// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/fitkeys/workout-sync-service/internal/domain"
	"github.com/fitkeys/workout-sync-service/pkg/convert"
	"github.com/fitkeys/workout-sync-service/pkg/timex"
)

// CategoryAddRequest Request parameters for creating a category
// 创建分类的请求参数
type CategoryAddRequest struct {
	Name string `json:"name" form:"name" binding:"required" example:"Push Day"` // Category name // 分类名称
}

// CategoryUpdateRequest 重命名分类的请求参数
type CategoryUpdateRequest struct {
	ID   string `json:"id" form:"id" binding:"required"`     // Category ID // 分类 ID
	Name string `json:"name" form:"name" binding:"required"` // New name // 新名称
}

// CategoryReorderRequest 分类重排序的请求参数
type CategoryReorderRequest struct {
	IDs []string `json:"ids" form:"ids" binding:"required,min=1"` // Desired order // 期望的顺序
}

// CategoryDeleteRequest 删除分类的请求参数
type CategoryDeleteRequest struct {
	ID string `json:"id" form:"id" binding:"required"` // Category ID // 分类 ID
}

// ---------------- DTO / Response ----------------

// CategoryDTO Category data transfer object
// CategoryDTO 分类数据传输对象
type CategoryDTO struct {
	ID        string `json:"id"`        // Category ID // 分类 ID
	Name      string `json:"name"`      // Category name // 分类名称
	Order     int    `json:"order"`     // Sort order // 排序序号
	CreatedAt string `json:"createdAt"` // Creation time // 创建时间
	UpdatedAt string `json:"updatedAt"` // Updated time // 更新时间
}

// CategoryToDTO 领域模型转 DTO
func CategoryToDTO(c *domain.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	d := convert.StructAssign(c, &CategoryDTO{}).(*CategoryDTO)
	d.CreatedAt = timex.Time(c.CreatedAt).String()
	d.UpdatedAt = timex.Time(c.UpdatedAt).String()
	return d
}

// CategoriesToDTO 领域模型列表转 DTO 列表
func CategoriesToDTO(list []*domain.Category) []*CategoryDTO {
	out := make([]*CategoryDTO, 0, len(list))
	for _, c := range list {
		out = append(out, CategoryToDTO(c))
	}
	return out
}
