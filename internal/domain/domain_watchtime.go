package domain

// WatchTimeMap 条目ID到累计观看秒数的映射，整体作为单个文档持久化
type WatchTimeMap map[string]int

// Clone 返回映射的副本
func (m WatchTimeMap) Clone() WatchTimeMap {
	out := make(WatchTimeMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Seconds 返回指定条目的累计秒数，未知条目为 0
func (m WatchTimeMap) Seconds(entryID string) int {
	return m[entryID]
}

// AddSeconds 返回累加了指定秒数的新映射，原映射不变
func (m WatchTimeMap) AddSeconds(entryID string, seconds int) WatchTimeMap {
	out := m.Clone()
	out[entryID] += seconds
	return out
}
