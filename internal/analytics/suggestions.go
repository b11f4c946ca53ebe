package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/fitkeys/workout-sync-service/internal/domain"
	"github.com/fitkeys/workout-sync-service/pkg/timex"
)

// SuggestionType 建议类别
type SuggestionType string

const (
	SuggestionWarning    SuggestionType = "warning"
	SuggestionSuccess    SuggestionType = "success"
	SuggestionInfo       SuggestionType = "info"
	SuggestionMotivation SuggestionType = "motivation"
)

// Suggestion 一条智能建议
type Suggestion struct {
	Type    SuggestionType `json:"type"`
	Message string         `json:"message"`
	Icon    string         `json:"icon"`
}

// categoryKey 规范化会话的分类集合：排序后拼接，集合相等则键相等
func categoryKey(s *domain.WorkoutSession) string {
	ids := append([]string{}, s.CategoryIDs...)
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// SmartSuggestions 按固定顺序跑五条独立启发式，每条产出零或一条建议
func SmartSuggestions(sessions []*domain.WorkoutSession, categories []*domain.Category, now time.Time) []Suggestion {
	suggestions := []Suggestion{}

	weekStart := timex.StartOfWeek(now)
	thisWeekSessions := filterWindow(sessions, weekStart, now)

	var completedThisWeek []*domain.WorkoutSession
	for _, s := range thisWeekSessions {
		if s.Completed {
			completedThisWeek = append(completedThisWeek, s)
		}
	}

	categoryCount := map[string]int{}
	for _, s := range completedThisWeek {
		for _, catID := range s.CategoryIDs {
			categoryCount[catID]++
		}
	}

	// 1. 本周没有任何已完成会话的分类，最多点名两个
	var neglected []string
	for _, cat := range categories {
		if categoryCount[cat.ID] == 0 {
			neglected = append(neglected, cat.Name)
		}
	}
	if len(neglected) > 0 {
		if len(neglected) > 2 {
			neglected = neglected[:2]
		}
		suggestions = append(suggestions, Suggestion{
			Type:    SuggestionInfo,
			Message: fmt.Sprintf("You haven't trained %s this week yet 💪", strings.Join(neglected, ", ")),
			Icon:    "📋",
		})
	}

	// 2. 距上次完成训练的天数：≥4 天告警，当天完成则鼓励
	if len(sessions) > 0 {
		var last *domain.WorkoutSession
		var lastAt time.Time
		for _, s := range sessions {
			if !s.Completed {
				continue
			}
			d := s.DateValue()
			if d.IsZero() || d.After(now) {
				continue
			}
			at := timex.ParseDateTime(s.Date, s.Time)
			if last == nil || at.After(lastAt) {
				last = s
				lastAt = at
			}
		}
		if last != nil {
			daysSince := int(now.Sub(last.DateValue()).Hours() / 24)
			if daysSince >= 4 {
				suggestions = append(suggestions, Suggestion{
					Type:    SuggestionWarning,
					Message: fmt.Sprintf("It's been %d days since your last workout! Time to get back on track 🔥", daysSince),
					Icon:    "⚠️",
				})
			} else if daysSince == 0 {
				suggestions = append(suggestions, Suggestion{
					Type:    SuggestionSuccess,
					Message: "Great! You trained today. Keep the momentum going! 🎯",
					Icon:    "✅",
				})
			}
		}
	}

	// 3. 本周完成率：≥80%（至少 3 个）庆祝，<50%（至少 2 个）提醒
	completionRate := 0
	if len(thisWeekSessions) > 0 {
		completionRate = int(math.Round(float64(len(completedThisWeek)) / float64(len(thisWeekSessions)) * 100))
	}
	if completionRate >= 80 && len(thisWeekSessions) >= 3 {
		suggestions = append(suggestions, Suggestion{
			Type:    SuggestionSuccess,
			Message: fmt.Sprintf("%d%% completion rate this week! You're crushing it! 🏆", completionRate),
			Icon:    "🔥",
		})
	} else if completionRate < 50 && len(thisWeekSessions) >= 2 {
		suggestions = append(suggestions, Suggestion{
			Type:    SuggestionWarning,
			Message: fmt.Sprintf("Only %d%% completion rate. Let's improve that! 💪", completionRate),
			Icon:    "📊",
		})
	}

	// 4. 本周最近完成的三个会话（按底层列表顺序）分类集合完全相同
	if len(completedThisWeek) >= 3 {
		lastThree := completedThisWeek[len(completedThisWeek)-3:]
		k0, k1, k2 := categoryKey(lastThree[0]), categoryKey(lastThree[1]), categoryKey(lastThree[2])
		if k0 == k1 && k1 == k2 {
			suggestions = append(suggestions, Suggestion{
				Type:    SuggestionInfo,
				Message: "You've done the same workout 3 times in a row. Try mixing it up! 🔄",
				Icon:    "💡",
			})
		}
	}

	// 5. 今天还未完成的会话数
	today := now.Format(timex.DateLayout)
	upcomingToday := 0
	for _, s := range sessions {
		if s.Date == today && !s.Completed {
			upcomingToday++
		}
	}
	if upcomingToday > 0 {
		plural := ""
		if upcomingToday > 1 {
			plural = "s"
		}
		suggestions = append(suggestions, Suggestion{
			Type:    SuggestionMotivation,
			Message: fmt.Sprintf("You have %d session%s planned for today! Let's do this! 💪", upcomingToday, plural),
			Icon:    "🎯",
		})
	}

	return suggestions
}

// WeeklySummary 一句话周总结
func WeeklySummary(sessions []*domain.WorkoutSession, categories []*domain.Category, now time.Time) string {
	weekStart := timex.StartOfWeek(now)
	thisWeekSessions := filterWindow(sessions, weekStart, now)

	completed := countCompleted(thisWeekSessions)
	total := len(thisWeekSessions)

	if total == 0 {
		return "No sessions planned this week. Time to create a schedule! 📅"
	}

	categoryCount := map[string]int{}
	for _, s := range thisWeekSessions {
		if !s.Completed {
			continue
		}
		for _, catID := range s.CategoryIDs {
			categoryCount[catID]++
		}
	}

	// 按完成次数取前两个分类名
	type catCount struct {
		id    string
		count int
	}
	var counts []catCount
	for id, n := range categoryCount {
		counts = append(counts, catCount{id: id, count: n})
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].count > counts[j].count })
	if len(counts) > 2 {
		counts = counts[:2]
	}

	var topCategories []string
	for _, cc := range counts {
		for _, cat := range categories {
			if cat.ID == cc.id {
				topCategories = append(topCategories, cat.Name)
				break
			}
		}
	}

	focusText := ""
	if len(topCategories) > 0 {
		focusText = fmt.Sprintf(" Main focus: %s.", strings.Join(topCategories, " & "))
	}

	completionRate := int(math.Round(float64(completed) / float64(total) * 100))
	return fmt.Sprintf("This week: %d/%d sessions completed (%d%%).%s", completed, total, completionRate, focusText)
}
