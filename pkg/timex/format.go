package timex

import (
	"fmt"
	"strings"
)

// FormatWatchTime renders cumulative seconds as "12m 5s"
// FormatWatchTime 将累计秒数渲染为 "12m 5s"
func FormatWatchTime(seconds int64) string {
	if seconds <= 0 {
		return "0m 0s"
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// FormatWatchTimeLong renders cumulative seconds as "1h 4m"; seconds are only
// shown below one hour.
// FormatWatchTimeLong 将累计秒数渲染为长格式，超过一小时不再显示秒
func FormatWatchTimeLong(seconds int64) string {
	if seconds <= 0 {
		return "0 minutes"
	}

	hours := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if mins > 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}
	if secs > 0 && hours == 0 {
		parts = append(parts, fmt.Sprintf("%ds", secs))
	}
	if len(parts) == 0 {
		return "0 minutes"
	}
	return strings.Join(parts, " ")
}
