package limiter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodLimiter_BucketMatching(t *testing.T) {
	l := NewMethodLimiter().AddBuckets(BucketRule{
		Key:          "/api/mutations",
		FillInterval: time.Second,
		Capacity:     2,
		Quantum:      2,
	})

	_, ok := l.GetBucket("/api/other")
	assert.False(t, ok)

	bucket, ok := l.GetBucket("/api/mutations")
	require.True(t, ok)

	// 容量为 2，第三次取应失败
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(0), bucket.TakeAvailable(1))
}

func TestMethodLimiter_Key(t *testing.T) {
	gin.SetMode(gin.TestMode)

	l := NewMethodLimiter()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/categories?lang=en", nil)

	assert.Equal(t, "/api/categories", l.Key(c))
}
