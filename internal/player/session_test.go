package player

import (
	"sync"
	"testing"
	"time"

	"github.com/fitkeys/workout-sync-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sinkSpy 记录冲账调用
type sinkSpy struct {
	mu      sync.Mutex
	entries []string
	seconds []int
}

func (s *sinkSpy) AddWatchTime(entryID string, seconds int) (*store.Commit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entryID)
	s.seconds = append(s.seconds, seconds)
	return nil, nil
}

func (s *sinkSpy) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func TestWatchSession_AccumulatesWhilePlaying(t *testing.T) {
	spy := &sinkSpy{}
	s := newWatchSession("e-1", spy, nil, 5*time.Millisecond)
	defer s.Close()

	s.Play()
	time.Sleep(60 * time.Millisecond)
	s.Pause()

	got := s.Accumulated()
	assert.Greater(t, got, 0)

	// 暂停后不再累加
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, got, s.Accumulated())
}

func TestWatchSession_CloseFlushesOnce(t *testing.T) {
	spy := &sinkSpy{}
	s := newWatchSession("e-1", spy, nil, 5*time.Millisecond)

	s.Play()
	time.Sleep(60 * time.Millisecond)

	s.Close()
	s.Close()

	require.Equal(t, 1, spy.calls())
	assert.Equal(t, "e-1", spy.entries[0])
	assert.Greater(t, spy.seconds[0], 0)
}

func TestWatchSession_ZeroSecondsSkipsFlush(t *testing.T) {
	spy := &sinkSpy{}
	s := newWatchSession("e-1", spy, nil, time.Hour)

	// 从未播放，无累计
	s.Close()
	assert.Equal(t, 0, spy.calls())
}
