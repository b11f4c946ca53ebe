// Package workerpool provides a bounded worker pool
// Package workerpool 提供有界 Worker Pool 实现
// Used to cap the concurrency of snapshot broadcast fan-out and other
// background work so a large subscriber set cannot exhaust goroutines.
// 用于限制快照广播扇出等后台工作的并发量，避免订阅者过多时 goroutine 失控
package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// 错误定义
var (
	// ErrPoolFull 当任务队列已满时返回
	ErrPoolFull = errors.New("worker pool queue is full")
	// ErrPoolClosed 当 Worker Pool 已关闭时返回
	ErrPoolClosed = errors.New("worker pool is closed")
	// ErrTaskCancelled 当任务被取消时返回
	ErrTaskCancelled = errors.New("task was cancelled")
)

// Config Worker Pool 配置
type Config struct {
	// MaxWorkers 最大并发 worker 数量，默认 32
	MaxWorkers int
	// QueueSize 任务队列大小，默认 512
	QueueSize int
	// WarningPercent 告警阈值百分比，默认 0.8 (80%)
	WarningPercent float64
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		MaxWorkers:     32,
		QueueSize:      512,
		WarningPercent: 0.8,
	}
}

// taskWrapper 任务包装器
type taskWrapper struct {
	ctx  context.Context
	fn   func(context.Context) error
	done chan error
}

// Pool 有界 Worker Pool
type Pool struct {
	config Config
	logger *zap.Logger

	taskCh   chan taskWrapper
	workerWg sync.WaitGroup

	activeCount atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

// New 创建新的 Worker Pool
// cfg: 配置，如果为 nil 则使用默认配置
// logger: zap 日志器，如果为 nil 则使用 nop logger
func New(cfg *Config, logger *zap.Logger) *Pool {
	if cfg == nil {
		defaultCfg := DefaultConfig()
		cfg = &defaultCfg
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 32
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 512
	}
	if cfg.WarningPercent <= 0 || cfg.WarningPercent > 1 {
		cfg.WarningPercent = 0.8
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	p := &Pool{
		config: *cfg,
		logger: logger,
		taskCh: make(chan taskWrapper, cfg.QueueSize),
		ctx:    ctx,
		cancel: cancel,
	}

	for i := 0; i < cfg.MaxWorkers; i++ {
		p.workerWg.Add(1)
		go p.worker()
	}

	p.logger.Info("worker pool started",
		zap.Int("maxWorkers", cfg.MaxWorkers),
		zap.Int("queueSize", cfg.QueueSize))

	return p
}

// worker 工作协程，从任务通道获取任务并执行
func (p *Pool) worker() {
	defer p.workerWg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.taskCh:
			if !ok {
				return
			}
			p.executeTask(task)
		}
	}
}

// executeTask 执行单个任务
func (p *Pool) executeTask(task taskWrapper) {
	p.activeCount.Add(1)
	defer p.activeCount.Add(-1)

	p.checkWarningThreshold()

	var err error
	select {
	case <-task.ctx.Done():
		err = ErrTaskCancelled
	default:
		err = task.fn(task.ctx)
	}

	if task.done != nil {
		select {
		case task.done <- err:
		default:
		}
	}
}

// checkWarningThreshold 检查是否超过告警阈值
func (p *Pool) checkWarningThreshold() {
	active := p.activeCount.Load()
	threshold := int64(float64(p.config.MaxWorkers) * p.config.WarningPercent)

	if active >= threshold {
		p.logger.Warn("worker pool approaching capacity",
			zap.Int64("activeCount", active),
			zap.Int("maxWorkers", p.config.MaxWorkers))
	}
}

// Submit 提交任务并等待完成
func (p *Pool) Submit(ctx context.Context, fn func(context.Context) error) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrPoolClosed
	}
	p.mu.RUnlock()

	done := make(chan error, 1)
	select {
	case p.taskCh <- taskWrapper{ctx: ctx, fn: fn, done: done}:
	default:
		return ErrPoolFull
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPoolClosed
	}
}

// SubmitAsync 异步提交任务（不等待结果）
func (p *Pool) SubmitAsync(ctx context.Context, fn func(context.Context) error) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrPoolClosed
	}
	p.mu.RUnlock()

	select {
	case p.taskCh <- taskWrapper{ctx: ctx, fn: fn}:
		return nil
	default:
		return ErrPoolFull
	}
}

// ActiveCount 返回当前活跃任务数
func (p *Pool) ActiveCount() int64 {
	return p.activeCount.Load()
}

// QueuedCount 返回当前队列中等待的任务数
func (p *Pool) QueuedCount() int {
	return len(p.taskCh)
}

// Shutdown 关闭 Worker Pool，等待所有任务完成
// ctx 用于控制关闭超时
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	close(p.taskCh)

	done := make(chan struct{})
	go func() {
		p.workerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("worker pool shutdown completed")
		return nil
	case <-ctx.Done():
		p.cancel()
		p.logger.Warn("worker pool shutdown timeout, forcing cancellation")
		return ctx.Err()
	}
}
