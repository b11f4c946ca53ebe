// Package timex provides a time type with stable wire formatting plus
// the calendar helpers used by the planning and stats views.
// Package timex 提供具有稳定序列化格式的时间类型以及日历辅助函数
package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const layout = "2006-01-02 15:04:05"

// DateLayout 日期（不含时间）序列化格式
const DateLayout = "2006-01-02"

// ClockLayout 每日时刻序列化格式
const ClockLayout = "15:04"

// Time wraps time.Time with a fixed "2006-01-02 15:04:05" wire format
// Time 包装 time.Time，序列化固定为 "2006-01-02 15:04:05"
type Time time.Time

// Now 返回当前时间
func Now() Time {
	return Time(time.Now())
}

func (t Time) String() string {
	return time.Time(t).Format(layout)
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || string(data) == "null" {
		return nil
	}
	parsed, err := time.ParseInLocation(`"`+layout+`"`, string(data), time.Local)
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}

// Value 实现 driver.Valuer，供 gorm 写库
func (t Time) Value() (driver.Value, error) {
	return time.Time(t), nil
}

// Scan 实现 sql.Scanner，供 gorm 读库
func (t *Time) Scan(v interface{}) error {
	switch value := v.(type) {
	case time.Time:
		*t = Time(value)
		return nil
	case string:
		parsed, err := time.ParseInLocation(layout, value, time.Local)
		if err != nil {
			return err
		}
		*t = Time(parsed)
		return nil
	case []byte:
		parsed, err := time.ParseInLocation(layout, string(value), time.Local)
		if err != nil {
			return err
		}
		*t = Time(parsed)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into timex.Time", v)
	}
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}
