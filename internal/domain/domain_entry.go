package domain

import (
	"sort"
	"time"
)

// EntryKind 定义条目类型
type EntryKind string

const (
	EntryKindVideo EntryKind = "video"
	EntryKindNote  EntryKind = "note"
)

// Entry 分类下的条目领域模型，视频条目带 VideoID，纯笔记条目不带
type Entry struct {
	ID           string
	CategoryID   string
	Kind         EntryKind
	Title        string
	SourceURL    string
	VideoID      string
	ThumbnailURL string
	Notes        string
	Order        int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsVideo 判断是否为视频条目
func (e *Entry) IsVideo() bool {
	return e.Kind == EntryKindVideo
}

// IsNoteOnly 判断是否为纯笔记条目
func (e *Entry) IsNoteOnly() bool {
	return e.Kind == EntryKindNote
}

// SortEntries 按 Order 升序排序，Order 相同时按创建时间兜底
func SortEntries(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Order != entries[j].Order {
			return entries[i].Order < entries[j].Order
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
}

// CloneEntries 返回切片的浅拷贝，元素为副本
func CloneEntries(entries []*Entry) []*Entry {
	out := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		ee := *e
		out = append(out, &ee)
	}
	return out
}
