package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc, apiKey string) *videoMetaService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := NewVideoMetaService(apiKey, nil).(*videoMetaService)
	s.endpoint = srv.URL
	s.httpClient = srv.Client()
	return s
}

func TestLookupTitle_Found(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dQw4w9WgXcQ", r.URL.Query().Get("id"))
		w.Write([]byte(`{"items":[{"snippet":{"title":"Warmup Routine"}}]}`))
	}, "key")

	title, err := s.LookupTitle(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "Warmup Routine", title)
}

func TestLookupTitle_NoKeyIsEmpty(t *testing.T) {
	s := NewVideoMetaService("", nil)
	title, err := s.LookupTitle(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Empty(t, title)
}

// 失败与空结果都不报错，只给空标题
func TestLookupTitle_BestEffort(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}, "key")

	title, err := s.LookupTitle(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Empty(t, title)

	s = newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	}, "key")
	title, err = s.LookupTitle(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Empty(t, title)
}

func TestLookupTitle_SingleflightMerges(t *testing.T) {
	var hits atomic.Int32
	block := make(chan struct{})
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-block
		w.Write([]byte(`{"items":[{"snippet":{"title":"t"}}]}`))
	}, "key")

	done := make(chan string, 2)
	for i := 0; i < 2; i++ {
		go func() {
			title, _ := s.LookupTitle(context.Background(), "same-id-xyz")
			done <- title
		}()
	}
	// 两个并发查询只触发一次请求
	assert.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)
	close(block)
	assert.Equal(t, "t", <-done)
	assert.Equal(t, "t", <-done)
	assert.Equal(t, int32(1), hits.Load())
}
