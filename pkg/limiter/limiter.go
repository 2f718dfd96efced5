package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face is the limiter abstraction consumed by the rate limiting middleware.
// Face 限流器抽象接口
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule describes one token bucket.
// BucketRule 描述一个令牌桶
type BucketRule struct {
	Key          string        // 路由前缀
	FillInterval time.Duration // 填充间隔
	Capacity     int64         // 桶容量
	Quantum      int64         // 每次填充数量
}

// Limiter holds the configured buckets keyed by rule key.
type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}
