package model

import (
	"github.com/fitkeys/workout-sync-service/pkg/timex"
)

// Entry 分类下的条目，kind 为 "video" 或 "note"
type Entry struct {
	ID           string     `gorm:"column:id;primaryKey" json:"id" form:"id"`
	CategoryID   string     `gorm:"column:category_id;not null;index:idx_entry_category,priority:1" json:"categoryId" form:"categoryId"`
	Kind         string     `gorm:"column:kind;not null" json:"kind" form:"kind"`
	Title        string     `gorm:"column:title;not null" json:"title" form:"title"`
	SourceURL    string     `gorm:"column:source_url" json:"url" form:"url"`
	VideoID      string     `gorm:"column:video_id" json:"videoId" form:"videoId"`
	ThumbnailURL string     `gorm:"column:thumbnail_url" json:"thumbnailUrl" form:"thumbnailUrl"`
	Notes        string     `gorm:"column:notes" json:"notes" form:"notes"`
	Order        int        `gorm:"column:sort_order;not null;index:idx_entry_category,priority:2" json:"order" form:"order"`
	CreatedAt    timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt    timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName 返回表名
func (*Entry) TableName() string {
	return "entry"
}
