package model

import (
	"github.com/fitkeys/workout-sync-service/pkg/timex"
)

// WatchTimeDocID 观看时长文档的固定主键，整个映射只占一行
const WatchTimeDocID = int64(1)

// WatchTimeDoc 观看时长文档，Data 为条目ID到秒数映射的 JSON
type WatchTimeDoc struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	Data      string     `gorm:"column:data;not null" json:"data" form:"data"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName 返回表名
func (*WatchTimeDoc) TableName() string {
	return "watch_time_doc"
}
