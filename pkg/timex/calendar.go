package timex

import "time"

// StartOfDay truncates t to local midnight
// StartOfDay 取 t 所在日的本地零点
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns Monday 00:00 of the week containing t.
// Sunday counts as six days after Monday rather than starting a new week.
// StartOfWeek 返回 t 所在周的周一零点，周日视为周一之后的第六天
func StartOfWeek(t time.Time) time.Time {
	days := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t).AddDate(0, 0, -days)
}

// StartOfMonth 返回 t 所在月的一号零点
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// SameDay 判断两个时间是否处于同一个本地日历日
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseDate parses a date-only value in the local zone; zero time on failure
// ParseDate 解析日期（本地时区），失败返回零值
func ParseDate(value string) time.Time {
	t, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ParseDateTime joins a date-only value and a clock value ("15:04").
// An unparseable clock falls back to midnight of the date.
// ParseDateTime 合并日期与时刻，时刻解析失败则取当日零点
func ParseDateTime(date, clock string) time.Time {
	d := ParseDate(date)
	if d.IsZero() {
		return d
	}
	c, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return d
	}
	return d.Add(time.Duration(c.Hour())*time.Hour + time.Duration(c.Minute())*time.Minute)
}
