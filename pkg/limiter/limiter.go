// Package limiter provides token-bucket rate limiting keyed by request path.
// Package limiter 提供按请求路径分桶的令牌桶限流
package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口
type Face interface {
	// Key extracts the bucket key from the request
	// Key 从请求中提取分桶键
	Key(c *gin.Context) string
	// GetBucket 返回键对应的令牌桶
	GetBucket(key string) (*ratelimit.Bucket, bool)
	// AddBuckets 注册限流规则
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule 单条限流规则
type BucketRule struct {
	// Key 规则匹配的 URI 前缀
	Key string
	// FillInterval 令牌填充间隔
	FillInterval time.Duration
	// Capacity 桶容量
	Capacity int64
	// Quantum 每次填充的令牌数
	Quantum int64
}

// MethodLimiter keys buckets by the request URI path
// MethodLimiter 按请求 URI 路径分桶
type MethodLimiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

// NewMethodLimiter 创建 MethodLimiter 实例
func NewMethodLimiter() Face {
	return &MethodLimiter{
		limiterBuckets: make(map[string]*ratelimit.Bucket),
	}
}

func (l *MethodLimiter) Key(c *gin.Context) string {
	return c.Request.URL.Path
}

func (l *MethodLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	bucket, ok := l.limiterBuckets[key]
	return bucket, ok
}

// AddBuckets registers rules before the limiter is used; not safe for
// concurrent use with GetBucket.
// AddBuckets 在限流器启用前注册规则，与 GetBucket 并发使用不安全
func (l *MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	for _, rule := range rules {
		if _, ok := l.limiterBuckets[rule.Key]; !ok {
			l.limiterBuckets[rule.Key] = ratelimit.NewBucketWithQuantum(
				rule.FillInterval,
				rule.Capacity,
				rule.Quantum,
			)
		}
	}
	return l
}
