// Package analytics 由会话与分类快照同步派生统计视图，纯函数、无副作用
package analytics

import (
	"math"
	"time"

	"github.com/fitkeys/workout-sync-service/internal/domain"
	"github.com/fitkeys/workout-sync-service/pkg/timex"
)

// PeriodStats 某时间段内的会话计数
type PeriodStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// CategoryStats 单个分类在全部会话上的计数
type CategoryStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Percent   int `json:"percent"`
}

// Stats 统计总览
type Stats struct {
	ThisWeek       PeriodStats              `json:"thisWeek"`
	ThisMonth      PeriodStats              `json:"thisMonth"`
	CategoryStats  map[string]CategoryStats `json:"categoryStats"`
	CurrentStreak  int                      `json:"currentStreak"`
	TotalCompleted int                      `json:"totalCompleted"`
}

// inWindow 判断会话日期（当天零点）落在 [start, now] 内
func inWindow(s *domain.WorkoutSession, start, now time.Time) bool {
	d := s.DateValue()
	if d.IsZero() {
		return false
	}
	return !d.Before(start) && !d.After(now)
}

// filterWindow 取窗口内的会话
func filterWindow(sessions []*domain.WorkoutSession, start, now time.Time) []*domain.WorkoutSession {
	var out []*domain.WorkoutSession
	for _, s := range sessions {
		if inWindow(s, start, now) {
			out = append(out, s)
		}
	}
	return out
}

// countCompleted 统计已完成会话数
func countCompleted(sessions []*domain.WorkoutSession) int {
	n := 0
	for _, s := range sessions {
		if s.Completed {
			n++
		}
	}
	return n
}

// ComputeStats 计算统计总览
// 周窗口从周一零点起算（周日视为周一之后第 6 天），月窗口从当月一日起算
func ComputeStats(sessions []*domain.WorkoutSession, now time.Time) Stats {
	weekStart := timex.StartOfWeek(now)
	monthStart := timex.StartOfMonth(now)

	thisWeek := filterWindow(sessions, weekStart, now)
	thisMonth := filterWindow(sessions, monthStart, now)

	return Stats{
		ThisWeek: PeriodStats{
			Total:     len(thisWeek),
			Completed: countCompleted(thisWeek),
		},
		ThisMonth: PeriodStats{
			Total:     len(thisMonth),
			Completed: countCompleted(thisMonth),
		},
		CategoryStats:  CategoryBreakdown(sessions),
		CurrentStreak:  Streak(sessions, now),
		TotalCompleted: countCompleted(sessions),
	}
}

// CategoryBreakdown 在全部会话（不限本周）上按分类计数
// 仅包含被会话引用过的分类；总数为 0 时百分比取 0
func CategoryBreakdown(sessions []*domain.WorkoutSession) map[string]CategoryStats {
	out := map[string]CategoryStats{}
	for _, s := range sessions {
		for _, catID := range s.CategoryIDs {
			cs := out[catID]
			cs.Total++
			if s.Completed {
				cs.Completed++
			}
			out[catID] = cs
		}
	}
	for catID, cs := range out {
		if cs.Total > 0 {
			cs.Percent = int(math.Round(float64(cs.Completed) / float64(cs.Total) * 100))
		}
		out[catID] = cs
	}
	return out
}

// Streak 从今天（含）起向回数连续有已完成会话的天数
// 今天没有已完成会话时连击为 0
func Streak(sessions []*domain.WorkoutSession, now time.Time) int {
	sessionDates := map[string]struct{}{}
	for _, s := range sessions {
		if s.Completed {
			sessionDates[s.Date] = struct{}{}
		}
	}
	if len(sessionDates) == 0 {
		return 0
	}

	streak := 0
	day := timex.StartOfDay(now)
	for {
		if _, ok := sessionDates[day.Format(timex.DateLayout)]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
