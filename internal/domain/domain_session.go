package domain

import (
	"time"
)

// WorkoutSession 训练计划/记录领域模型
// Date 格式 "2006-01-02"，Time 格式 "15:04"（可为空）
type WorkoutSession struct {
	ID          string
	Date        string
	Time        string
	CategoryIDs []string
	Completed   bool
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOnDate 判断是否属于指定日期
func (s *WorkoutSession) IsOnDate(date string) bool {
	return s.Date == date
}

// DateValue 解析会话日期，解析失败返回零值
func (s *WorkoutSession) DateValue() time.Time {
	t, err := time.ParseInLocation("2006-01-02", s.Date, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// HasCategory 判断会话是否包含指定分类
func (s *WorkoutSession) HasCategory(categoryID string) bool {
	for _, id := range s.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// CloneSessions 返回切片的浅拷贝，元素与 CategoryIDs 均为副本
func CloneSessions(sessions []*WorkoutSession) []*WorkoutSession {
	out := make([]*WorkoutSession, 0, len(sessions))
	for _, s := range sessions {
		ss := *s
		ss.CategoryIDs = append([]string{}, s.CategoryIDs...)
		out = append(out, &ss)
	}
	return out
}
