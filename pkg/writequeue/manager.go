// Package writequeue provides a per-collection write queue implementation
// Package writequeue 提供按集合划分的写队列实现
// Serializes persistence writes for the same collection so that optimistic
// mutations never interleave their remote writes out of order.
// 串行化同一集合的持久化写入，保证乐观变更的远端写入不会乱序
package writequeue

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Error definitions
// 错误定义
var (
	// ErrQueueFull returned when a collection queue is full
	// ErrQueueFull 当集合写队列已满时返回
	ErrQueueFull = errors.New("write queue is full")
	// ErrQueueClosed returned when the manager is closed
	// ErrQueueClosed 当写队列管理器已关闭时返回
	ErrQueueClosed = errors.New("write queue is closed")
	// ErrWriteTimeout returned when a synchronous write times out
	// ErrWriteTimeout 当同步写操作超时时返回
	ErrWriteTimeout = errors.New("write operation timeout")
)

// Config write queue configuration
// Config 写队列配置
type Config struct {
	// QueueCapacity per-collection queue capacity, default 100
	// QueueCapacity 每集合队列容量，默认 100
	QueueCapacity int
	// WriteTimeout synchronous write timeout, default 30 seconds
	// WriteTimeout 同步写超时时间，默认 30 秒
	WriteTimeout time.Duration
	// IdleTimeout idle queue cleanup timeout, default 10 minutes
	// IdleTimeout 空闲队列清理超时时间，默认 10 分钟
	IdleTimeout time.Duration
}

// DefaultConfig returns default configuration
// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		QueueCapacity: 100,
		WriteTimeout:  30 * time.Second,
		IdleTimeout:   10 * time.Minute,
	}
}

// writeOp 写操作
type writeOp struct {
	fn     func() error
	result chan error
}

// collectionQueue 单集合写队列
type collectionQueue struct {
	key      string
	ch       chan writeOp
	lastUsed atomic.Int64
	stopCh   chan struct{}
	workerWg sync.WaitGroup
}

// Manager manages write queues for all collections
// Manager 管理所有集合的写队列
type Manager struct {
	config Config
	logger *zap.Logger

	queues sync.Map // map[string]*collectionQueue

	mu     sync.RWMutex
	closed bool

	cleanupWg   sync.WaitGroup
	cleanupDone chan struct{}
}

// New creates a write queue manager
// New 创建写队列管理器
// cfg: configuration, nil uses defaults // cfg 为 nil 时使用默认配置
// logger: zap logger, nil uses nop logger // logger 为 nil 时使用 nop 日志器
func New(cfg *Config, logger *zap.Logger) *Manager {
	if cfg == nil {
		defaultCfg := DefaultConfig()
		cfg = &defaultCfg
	}
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = 100
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		config:      *cfg,
		logger:      logger,
		cleanupDone: make(chan struct{}),
	}

	m.cleanupWg.Add(1)
	go m.cleanupLoop()

	return m
}

// SubmitAsync enqueues fn on the queue for key and returns a channel that
// receives the outcome exactly once. The error is also logged by the worker
// so an abandoned channel never hides a failed write.
// SubmitAsync 将 fn 入队并返回仅投递一次结果的通道；worker 同时会记录失败日志，
// 即使调用方丢弃通道，失败的写入也不会被掩盖
func (m *Manager) SubmitAsync(key string, fn func() error) <-chan error {
	result := make(chan error, 1)

	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		result <- ErrQueueClosed
		return result
	}
	q := m.queue(key)
	m.mu.RUnlock()

	select {
	case q.ch <- writeOp{fn: fn, result: result}:
		q.lastUsed.Store(time.Now().UnixNano())
	default:
		m.logger.Warn("write queue full, rejecting write", zap.String("key", key))
		result <- ErrQueueFull
	}
	return result
}

// Submit enqueues fn and waits for its outcome, bounded by WriteTimeout.
// Submit 入队并等待结果，受 WriteTimeout 约束
func (m *Manager) Submit(key string, fn func() error) error {
	select {
	case err := <-m.SubmitAsync(key, fn):
		return err
	case <-time.After(m.config.WriteTimeout):
		return ErrWriteTimeout
	}
}

// queue 获取或创建集合写队列
func (m *Manager) queue(key string) *collectionQueue {
	if v, ok := m.queues.Load(key); ok {
		return v.(*collectionQueue)
	}

	q := &collectionQueue{
		key:    key,
		ch:     make(chan writeOp, m.config.QueueCapacity),
		stopCh: make(chan struct{}),
	}
	q.lastUsed.Store(time.Now().UnixNano())

	actual, loaded := m.queues.LoadOrStore(key, q)
	if loaded {
		return actual.(*collectionQueue)
	}

	q.workerWg.Add(1)
	go m.worker(q)
	return q
}

// worker 逐个执行队列中的写操作
func (m *Manager) worker(q *collectionQueue) {
	defer q.workerWg.Done()
	for {
		select {
		case op := <-q.ch:
			err := op.fn()
			if err != nil {
				m.logger.Error("write queue op failed",
					zap.String("key", q.key),
					zap.Error(err))
			}
			op.result <- err
		case <-q.stopCh:
			// Drain remaining ops before exiting
			// 退出前排空剩余操作
			for {
				select {
				case op := <-q.ch:
					op.result <- op.fn()
				default:
					return
				}
			}
		}
	}
}

// cleanupLoop 定期回收空闲队列
func (m *Manager) cleanupLoop() {
	defer m.cleanupWg.Done()
	ticker := time.NewTicker(m.config.IdleTimeout)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-m.config.IdleTimeout).UnixNano()
			m.queues.Range(func(k, v any) bool {
				q := v.(*collectionQueue)
				if q.lastUsed.Load() < cutoff && len(q.ch) == 0 {
					m.queues.Delete(k)
					close(q.stopCh)
					q.workerWg.Wait()
					m.logger.Debug("idle write queue reclaimed", zap.String("key", q.key))
				}
				return true
			})
		case <-m.cleanupDone:
			return
		}
	}
}

// Close stops all queues after draining pending writes.
// Close 排空待处理写入后停止所有队列
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()

	close(m.cleanupDone)
	m.cleanupWg.Wait()

	m.queues.Range(func(k, v any) bool {
		q := v.(*collectionQueue)
		close(q.stopCh)
		q.workerWg.Wait()
		m.queues.Delete(k)
		return true
	})
}
