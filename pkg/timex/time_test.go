package timex

import (
	"testing"
	"time"
)

func TestTime_UnixMethods(t *testing.T) {
	// Create a fixed time
	// 创建一个固定时间
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tt := Time(now)

	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() = %v, want %v", tt.Unix(), now.Unix())
	}
	if tt.UnixMilli() != now.UnixMilli() {
		t.Errorf("UnixMilli() = %v, want %v", tt.UnixMilli(), now.UnixMilli())
	}
	if tt.UnixNano() != now.UnixNano() {
		t.Errorf("UnixNano() = %v, want %v", tt.UnixNano(), now.UnixNano())
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday",
			in:   time.Date(2025, 6, 4, 18, 30, 0, 0, time.Local),
			want: time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local),
		},
		{
			name: "monday stays",
			in:   time.Date(2025, 6, 2, 0, 0, 1, 0, time.Local),
			want: time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local),
		},
		{
			// 周日属于上一周，而非下一周的开始
			name: "sunday belongs to previous monday",
			in:   time.Date(2025, 6, 8, 9, 0, 0, 0, time.Local),
			want: time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StartOfWeek(tc.in); !got.Equal(tc.want) {
				t.Errorf("StartOfWeek(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseDateTime(t *testing.T) {
	got := ParseDateTime("2025-06-04", "18:30")
	want := time.Date(2025, 6, 4, 18, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ParseDateTime = %v, want %v", got, want)
	}

	// 时刻非法时回退当日零点
	got = ParseDateTime("2025-06-04", "bogus")
	want = time.Date(2025, 6, 4, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ParseDateTime fallback = %v, want %v", got, want)
	}
}

func TestFormatWatchTime(t *testing.T) {
	if got := FormatWatchTime(0); got != "0m 0s" {
		t.Errorf("FormatWatchTime(0) = %q", got)
	}
	if got := FormatWatchTime(725); got != "12m 5s" {
		t.Errorf("FormatWatchTime(725) = %q", got)
	}
	if got := FormatWatchTimeLong(3840); got != "1h 4m" {
		t.Errorf("FormatWatchTimeLong(3840) = %q", got)
	}
	if got := FormatWatchTimeLong(59); got != "59s" {
		t.Errorf("FormatWatchTimeLong(59) = %q", got)
	}
}
