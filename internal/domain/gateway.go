package domain

import "context"

// Unsubscribe 取消订阅句柄，可重复调用
type Unsubscribe func()

// CategoryGateway 分类集合同步网关
// Subscribe 注册后立即收到一次当前快照，之后每次写入（包括自己发起的写入）
// 都会再次收到完整快照；所有订阅者看到一致的快照顺序
type CategoryGateway interface {
	Subscribe(ctx context.Context, onChange func([]*Category)) (Unsubscribe, error)

	// SaveAll 按记录逐条 upsert，单条失败不回滚已写入的记录
	SaveAll(ctx context.Context, categories []*Category) error

	// DeleteOne 删除单条记录，不存在时静默成功
	DeleteOne(ctx context.Context, id string) error
}

// EntryGateway 条目集合同步网关
type EntryGateway interface {
	Subscribe(ctx context.Context, onChange func([]*Entry)) (Unsubscribe, error)
	SaveAll(ctx context.Context, entries []*Entry) error
	DeleteOne(ctx context.Context, id string) error
}

// SessionGateway 训练会话集合同步网关
type SessionGateway interface {
	Subscribe(ctx context.Context, onChange func([]*WorkoutSession)) (Unsubscribe, error)
	SaveAll(ctx context.Context, sessions []*WorkoutSession) error
	DeleteOne(ctx context.Context, id string) error
}

// WatchTimeGateway 观看时长文档同步网关，整个映射原子读写
type WatchTimeGateway interface {
	Subscribe(ctx context.Context, onChange func(WatchTimeMap)) (Unsubscribe, error)
	Save(ctx context.Context, m WatchTimeMap) error
	Load(ctx context.Context) (WatchTimeMap, error)
}
