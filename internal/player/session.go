// Package player 实现观看会话的计秒器
// 播放状态下每秒累加一次，暂停停止累加，销毁时恰好冲账一次
package player

import (
	"sync"
	"time"

	"github.com/fitkeys/workout-sync-service/internal/store"
	"github.com/fitkeys/workout-sync-service/pkg/logger"

	"go.uber.org/zap"
)

// WatchTimeSink 秒数冲账目标
type WatchTimeSink interface {
	AddWatchTime(entryID string, seconds int) (*store.Commit, error)
}

// WatchSession 单个条目的观看会话
type WatchSession struct {
	entryID string
	sink    WatchTimeSink
	logger  *zap.Logger

	interval time.Duration

	mu          sync.Mutex
	playing     bool
	accumulated int

	done      chan struct{}
	closeOnce sync.Once
	flushOnce sync.Once
}

// NewWatchSession 创建观看会话并启动计秒循环，初始为暂停状态
func NewWatchSession(entryID string, sink WatchTimeSink, log *zap.Logger) *WatchSession {
	return newWatchSession(entryID, sink, log, time.Second)
}

func newWatchSession(entryID string, sink WatchTimeSink, log *zap.Logger, interval time.Duration) *WatchSession {
	if log == nil {
		log = zap.NewNop()
	}
	s := &WatchSession{
		entryID:  entryID,
		sink:     sink,
		logger:   log,
		interval: interval,
		done:     make(chan struct{}),
	}
	go s.tickLoop()
	return s
}

// tickLoop 播放状态下每个周期累加一秒
func (s *WatchSession) tickLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.playing {
				s.accumulated++
			}
			s.mu.Unlock()
		}
	}
}

// Play 开始累加
func (s *WatchSession) Play() {
	s.mu.Lock()
	s.playing = true
	s.mu.Unlock()
}

// Pause 停止累加，已累加的秒数保留到冲账
func (s *WatchSession) Pause() {
	s.mu.Lock()
	s.playing = false
	s.mu.Unlock()
}

// Playing 是否处于播放状态
func (s *WatchSession) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Accumulated 当前未冲账的秒数
func (s *WatchSession) Accumulated() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accumulated
}

// Close 停止计秒并冲账，可重复调用，冲账只发生一次
// 累计为零时跳过冲账
func (s *WatchSession) Close() *store.Commit {
	var commit *store.Commit
	s.closeOnce.Do(func() {
		close(s.done)
	})
	s.flushOnce.Do(func() {
		s.mu.Lock()
		seconds := s.accumulated
		s.accumulated = 0
		s.playing = false
		s.mu.Unlock()

		if seconds == 0 {
			return
		}
		c, err := s.sink.AddWatchTime(s.entryID, seconds)
		if err != nil {
			s.logger.Error("watch time flush rejected",
				zap.String(logger.FieldEntryID, s.entryID),
				zap.Int(logger.FieldDuration, seconds),
				zap.Error(err))
			return
		}
		commit = c
		s.logger.Info("watch time flushed",
			zap.String(logger.FieldEntryID, s.entryID),
			zap.Int(logger.FieldDuration, seconds))
	})
	return commit
}
