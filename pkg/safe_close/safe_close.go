// Package safe_close coordinates graceful shutdown across goroutines.
// Package safe_close 协调多个 goroutine 的优雅关闭
package safe_close

import (
	"sync"
)

// SafeClose broadcasts a close signal to attached goroutines and waits for
// all of them to finish. The first error sent wins; later ones are dropped.
// SafeClose 向挂载的 goroutine 广播关闭信号并等待全部退出，仅保留首个错误
type SafeClose struct {
	mu          sync.Mutex
	wg          sync.WaitGroup
	closeSignal chan struct{}
	closed      bool
	err         error
}

// NewSafeClose 创建 SafeClose 实例
func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach runs fn in its own goroutine. fn must call done() when it exits and
// should return promptly once closeSignal fires.
// Attach 启动 fn；fn 退出时必须调用 done()，收到 closeSignal 后应尽快返回
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go fn(s.wg.Done, s.closeSignal)
}

// SendCloseSignal 发送关闭信号，可携带触发关闭的错误
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeSignal)
}

// WaitClosed blocks until every attached goroutine has called done().
// WaitClosed 阻塞直到所有挂载的 goroutine 全部退出
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
