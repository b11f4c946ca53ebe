package model

import (
	"github.com/fitkeys/workout-sync-service/pkg/timex"
)

// Category 训练分类
type Category struct {
	ID        string     `gorm:"column:id;primaryKey" json:"id" form:"id"`
	Name      string     `gorm:"column:name;not null" json:"name" form:"name"`
	Order     int        `gorm:"column:sort_order;not null;index:idx_category_order" json:"order" form:"order"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName 返回表名
func (*Category) TableName() string {
	return "category"
}
