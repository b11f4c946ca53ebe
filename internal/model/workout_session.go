package model

import (
	"github.com/fitkeys/workout-sync-service/pkg/timex"
)

// WorkoutSession 训练会话
// CategoryIDs 以 JSON 数组字符串存储
type WorkoutSession struct {
	ID          string     `gorm:"column:id;primaryKey" json:"id" form:"id"`
	Date        string     `gorm:"column:date;not null;index:idx_session_date" json:"date" form:"date"`
	Time        string     `gorm:"column:time" json:"time" form:"time"`
	CategoryIDs string     `gorm:"column:category_ids;not null" json:"categoryIds" form:"categoryIds"`
	Completed   int64      `gorm:"column:completed;not null;default:0" json:"completed" form:"completed"`
	Notes       string     `gorm:"column:notes" json:"notes" form:"notes"`
	CreatedAt   timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt   timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName 返回表名
func (*WorkoutSession) TableName() string {
	return "workout_session"
}
