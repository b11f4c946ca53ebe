package writequeue

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SubmitAsync(t *testing.T) {
	m := New(nil, nil)
	defer m.Close()

	done := m.SubmitAsync("categories", func() error { return nil })
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("write did not complete")
	}
}

func TestManager_SubmitAsyncError(t *testing.T) {
	m := New(nil, nil)
	defer m.Close()

	wantErr := errors.New("db down")
	err := <-m.SubmitAsync("entries", func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}

// 同集合内写入必须串行且保序
func TestManager_SameKeySerialized(t *testing.T) {
	m := New(nil, nil)
	defer m.Close()

	var mu sync.Mutex
	var order []int

	const n = 50
	results := make([]<-chan error, 0, n)
	for i := 0; i < n; i++ {
		i := i
		results = append(results, m.SubmitAsync("sessions", func() error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		}))
	}
	for _, ch := range results {
		require.NoError(t, <-ch)
	}

	for i := 0; i < n; i++ {
		assert.Equal(t, i, order[i])
	}
}

// 不同集合的队列互不阻塞
func TestManager_KeysIndependent(t *testing.T) {
	m := New(nil, nil)
	defer m.Close()

	block := make(chan struct{})
	m.SubmitAsync("categories", func() error {
		<-block
		return nil
	})

	var fastDone atomic.Bool
	done := m.SubmitAsync("watchtime", func() error {
		fastDone.Store(true)
		return nil
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("independent queue was blocked")
	}
	assert.True(t, fastDone.Load())
	close(block)
}

func TestManager_QueueFull(t *testing.T) {
	m := New(&Config{QueueCapacity: 1, WriteTimeout: time.Second}, nil)
	defer m.Close()

	block := make(chan struct{})
	m.SubmitAsync("entries", func() error {
		<-block
		return nil
	})
	// 填满容量为 1 的队列
	m.SubmitAsync("entries", func() error { return nil })

	err := <-m.SubmitAsync("entries", func() error { return nil })
	assert.ErrorIs(t, err, ErrQueueFull)
	close(block)
}

func TestManager_SubmitAfterClose(t *testing.T) {
	m := New(nil, nil)
	m.Close()

	err := <-m.SubmitAsync("categories", func() error { return nil })
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestManager_CloseDrainsPending(t *testing.T) {
	m := New(nil, nil)

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		m.SubmitAsync("sessions", func() error {
			ran.Add(1)
			return nil
		})
	}
	m.Close()
	assert.Equal(t, int32(10), ran.Load())
}
