// Package domain 定义领域模型和接口
package domain

import (
	"sort"
	"time"
)

// Category 训练分类领域模型
type Category struct {
	ID        string
	Name      string
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SortCategories 按 Order 升序排序，Order 相同时按创建时间兜底
// 排序只作为读序，不回写 Order 字段
func SortCategories(categories []*Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].Order != categories[j].Order {
			return categories[i].Order < categories[j].Order
		}
		return categories[i].CreatedAt.Before(categories[j].CreatedAt)
	})
}

// CloneCategories 返回切片的浅拷贝，元素为副本
func CloneCategories(categories []*Category) []*Category {
	out := make([]*Category, 0, len(categories))
	for _, c := range categories {
		cc := *c
		out = append(out, &cc)
	}
	return out
}
