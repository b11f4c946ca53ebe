package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/fitkeys/workout-sync-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 固定在周四中午，周窗口为周一零点到 now
var testNow = time.Date(2026, 8, 27, 12, 0, 0, 0, time.Local)

func day(offset int) string {
	return testNow.AddDate(0, 0, offset).Format("2006-01-02")
}

func session(date string, completed bool, categoryIDs ...string) *domain.WorkoutSession {
	return &domain.WorkoutSession{
		ID:          fmt.Sprintf("s-%s-%v", date, completed),
		Date:        date,
		CategoryIDs: categoryIDs,
		Completed:   completed,
	}
}

func TestComputeStats_WeekAndMonthWindows(t *testing.T) {
	sessions := []*domain.WorkoutSession{
		session(day(0), true, "a"),   // 本周四
		session(day(-2), false, "a"), // 本周二
		session(day(-10), true, "b"), // 上周，仍在本月
		session("2026-07-15", true, "b"), // 上月
	}

	stats := ComputeStats(sessions, testNow)

	assert.Equal(t, PeriodStats{Total: 2, Completed: 1}, stats.ThisWeek)
	assert.Equal(t, PeriodStats{Total: 3, Completed: 2}, stats.ThisMonth)
	assert.Equal(t, 3, stats.TotalCompleted)
}

func TestCategoryBreakdown_AllSessions(t *testing.T) {
	sessions := []*domain.WorkoutSession{
		session(day(0), true, "a", "b"),
		session(day(-1), false, "a"),
		session(day(-30), true, "a"),
	}

	breakdown := CategoryBreakdown(sessions)

	require.Contains(t, breakdown, "a")
	assert.Equal(t, CategoryStats{Total: 3, Completed: 2, Percent: 67}, breakdown["a"])
	assert.Equal(t, CategoryStats{Total: 1, Completed: 1, Percent: 100}, breakdown["b"])
	// 未被任何会话引用的分类不出现
	assert.NotContains(t, breakdown, "c")
}

func TestStreak_ThreeConsecutiveDays(t *testing.T) {
	sessions := []*domain.WorkoutSession{
		session(day(0), true, "a"),
		session(day(-1), true, "a"),
		session(day(-2), true, "a"),
	}
	assert.Equal(t, 3, Streak(sessions, testNow))
}

func TestStreak_GapYesterdayBreaks(t *testing.T) {
	sessions := []*domain.WorkoutSession{
		session(day(-2), true, "a"),
	}
	assert.Equal(t, 0, Streak(sessions, testNow))
}

func TestStreak_TodayIncompleteOnly(t *testing.T) {
	sessions := []*domain.WorkoutSession{
		session(day(0), false, "a"),
		session(day(-1), true, "a"),
	}
	// 今天没有已完成会话，连击归零
	assert.Equal(t, 0, Streak(sessions, testNow))
}

func TestSmartSuggestions_NeglectedCategories(t *testing.T) {
	categories := []*domain.Category{
		{ID: "a", Name: "Arms"},
		{ID: "b", Name: "Legs"},
		{ID: "c", Name: "Core"},
	}
	sessions := []*domain.WorkoutSession{
		session(day(0), true, "a"),
	}

	got := SmartSuggestions(sessions, categories, testNow)
	require.NotEmpty(t, got)
	assert.Equal(t, SuggestionInfo, got[0].Type)
	// 最多点名两个
	assert.Equal(t, "You haven't trained Legs, Core this week yet 💪", got[0].Message)
	assert.Equal(t, "📋", got[0].Icon)
}

func TestSmartSuggestions_LongBreakWarning(t *testing.T) {
	sessions := []*domain.WorkoutSession{
		session(day(-5), true, "a"),
	}

	got := SmartSuggestions(sessions, nil, testNow)
	require.NotEmpty(t, got)
	assert.Equal(t, SuggestionWarning, got[0].Type)
	assert.Equal(t, "It's been 5 days since your last workout! Time to get back on track 🔥", got[0].Message)
}

func TestSmartSuggestions_TrainedToday(t *testing.T) {
	sessions := []*domain.WorkoutSession{
		session(day(0), true, "a"),
	}

	got := SmartSuggestions(sessions, nil, testNow)
	var messages []string
	for _, s := range got {
		messages = append(messages, s.Message)
	}
	assert.Contains(t, messages, "Great! You trained today. Keep the momentum going! 🎯")
}

func TestSmartSuggestions_CompletionRate(t *testing.T) {
	// 本周 3 个会话全部完成 → 100% 庆祝
	high := []*domain.WorkoutSession{
		session(day(0), true, "a"),
		session(day(-1), true, "a"),
		session(day(-2), true, "b"),
	}
	got := SmartSuggestions(high, nil, testNow)
	var messages []string
	for _, s := range got {
		messages = append(messages, s.Message)
	}
	assert.Contains(t, messages, "100% completion rate this week! You're crushing it! 🏆")

	// 本周 0/2 完成 → 低完成率提醒
	low := []*domain.WorkoutSession{
		session(day(0), false, "a"),
		session(day(-1), false, "a"),
	}
	got = SmartSuggestions(low, nil, testNow)
	messages = nil
	for _, s := range got {
		messages = append(messages, s.Message)
	}
	assert.Contains(t, messages, "Only 0% completion rate. Let's improve that! 💪")
}

func TestSmartSuggestions_Repetition(t *testing.T) {
	// 三个已完成会话的分类集合相同（顺序无关）
	sessions := []*domain.WorkoutSession{
		session(day(-3), true, "a", "b"),
		session(day(-2), true, "b", "a"),
		session(day(-1), true, "a", "b"),
	}

	got := SmartSuggestions(sessions, nil, testNow)
	var messages []string
	for _, s := range got {
		messages = append(messages, s.Message)
	}
	assert.Contains(t, messages, "You've done the same workout 3 times in a row. Try mixing it up! 🔄")
}

func TestSmartSuggestions_PlannedTodayPlural(t *testing.T) {
	sessions := []*domain.WorkoutSession{
		session(day(0), false, "a"),
		{ID: "x", Date: day(0), CategoryIDs: []string{"b"}, Completed: false},
	}

	got := SmartSuggestions(sessions, nil, testNow)
	require.NotEmpty(t, got)
	last := got[len(got)-1]
	assert.Equal(t, SuggestionMotivation, last.Type)
	assert.Equal(t, "You have 2 sessions planned for today! Let's do this! 💪", last.Message)
}

func TestWeeklySummary_Empty(t *testing.T) {
	assert.Equal(t,
		"No sessions planned this week. Time to create a schedule! 📅",
		WeeklySummary(nil, nil, testNow))
}

func TestWeeklySummary_TwoOfFour(t *testing.T) {
	categories := []*domain.Category{
		{ID: "a", Name: "Arms"},
		{ID: "b", Name: "Legs"},
	}
	sessions := []*domain.WorkoutSession{
		session(day(0), true, "a"),
		session(day(-1), true, "a", "b"),
		session(day(-2), false, "b"),
		session(day(-3), false, "b"),
	}

	got := WeeklySummary(sessions, categories, testNow)
	assert.Contains(t, got, "2/4")
	assert.Contains(t, got, "50%")
	assert.Contains(t, got, "Main focus: Arms & Legs.")
}
