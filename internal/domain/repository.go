// Package domain 定义领域模型和接口
package domain

import "context"

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	// ListAll 获取全部分类
	ListAll(ctx context.Context) ([]*Category, error)

	// Upsert 按 ID 写入或更新分类
	Upsert(ctx context.Context, category *Category) error

	// Delete 删除分类，不存在时静默成功
	Delete(ctx context.Context, id string) error
}

// EntryRepository 条目仓储接口
type EntryRepository interface {
	// ListAll 获取全部条目
	ListAll(ctx context.Context) ([]*Entry, error)

	// Upsert 按 ID 写入或更新条目
	Upsert(ctx context.Context, entry *Entry) error

	// Delete 删除条目，不存在时静默成功
	Delete(ctx context.Context, id string) error
}

// SessionRepository 训练会话仓储接口
type SessionRepository interface {
	// ListAll 获取全部会话
	ListAll(ctx context.Context) ([]*WorkoutSession, error)

	// Upsert 按 ID 写入或更新会话
	Upsert(ctx context.Context, session *WorkoutSession) error

	// Delete 删除会话，不存在时静默成功
	Delete(ctx context.Context, id string) error
}

// WatchTimeRepository 观看时长文档仓储接口，整个映射作为单文档读写
type WatchTimeRepository interface {
	// Load 读取整个映射，文档不存在时返回空映射
	Load(ctx context.Context) (WatchTimeMap, error)

	// Save 原子替换整个映射
	Save(ctx context.Context, m WatchTimeMap) error
}
