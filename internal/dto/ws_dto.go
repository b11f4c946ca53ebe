package dto

// WebSocket 集合名常量，与 Domain Store 的写队列键一致
const (
	CollectionCategories = "categories"
	CollectionEntries    = "entries"
	CollectionSessions   = "sessions"
	CollectionWatchTime  = "watchtime"
)

// SubscribeRequest WebSocket 订阅/退订消息的负载
type SubscribeRequest struct {
	Collections []string `json:"collections" binding:"required,min=1,dive,oneof=categories entries sessions watchtime"` // Collection names // 集合名
}

// SnapshotMessage 推送给客户端的整集合快照
type SnapshotMessage struct {
	Collection string      `json:"collection"` // Collection name // 集合名
	Data       interface{} `json:"data"`       // Full snapshot // 整集合快照
	Count      int         `json:"count"`      // Record count // 记录数
}
