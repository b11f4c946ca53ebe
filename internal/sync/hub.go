// Package sync 实现集合快照的发布订阅枢纽与同步网关
package sync

import (
	"sync"

	"github.com/fitkeys/workout-sync-service/internal/domain"

	"go.uber.org/zap"
)

// subscriber 单个订阅者，独立 goroutine 消费快照队列
// 队列满时合并为最新快照（快照是全量状态，丢弃中间版本是安全的）
type subscriber[T any] struct {
	ch   chan T
	done chan struct{}
}

// Hub 集合快照枢纽
// Publish 在锁内逐个入队，所有订阅者看到一致的快照顺序；
// 最近一次快照被缓存，新订阅者注册时立即收到
type Hub[T any] struct {
	mu      sync.Mutex
	subs    map[int64]*subscriber[T]
	nextID  int64
	last    T
	hasLast bool
	closed  bool
	logger  *zap.Logger
}

// NewHub 创建快照枢纽
func NewHub[T any](logger *zap.Logger) *Hub[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub[T]{
		subs:   make(map[int64]*subscriber[T]),
		logger: logger,
	}
}

// Subscribe 注册订阅者并返回取消句柄
// loadInitial 仅在尚无缓存快照时调用，用于首次快照
func (h *Hub[T]) Subscribe(onChange func(T), loadInitial func() (T, error)) (domain.Unsubscribe, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return func() {}, nil
	}

	initial := h.last
	if !h.hasLast {
		snapshot, err := loadInitial()
		if err != nil {
			return nil, err
		}
		initial = snapshot
		h.last = snapshot
		h.hasLast = true
	}

	id := h.nextID
	h.nextID++
	s := &subscriber[T]{
		ch:   make(chan T, 16),
		done: make(chan struct{}),
	}
	h.subs[id] = s

	go func() {
		for {
			select {
			case snapshot := <-s.ch:
				onChange(snapshot)
			case <-s.done:
				return
			}
		}
	}()

	// 注册即投递当前快照
	s.ch <- initial

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(s.done)
		})
	}, nil
}

// Publish 向所有订阅者投递新快照
func (h *Hub[T]) Publish(snapshot T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	h.last = snapshot
	h.hasLast = true

	for _, s := range h.subs {
		for {
			select {
			case s.ch <- snapshot:
			default:
				// 队列满，丢弃最旧的一份再入队
				select {
				case <-s.ch:
				default:
				}
				continue
			}
			break
		}
	}
}

// SubscriberCount 返回当前订阅者数量
func (h *Hub[T]) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close 停止所有订阅者
func (h *Hub[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, s := range h.subs {
		delete(h.subs, id)
		close(s.done)
	}
}
