package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"job-copilot-backend/internal/delivery/http/response"
	"job-copilot-backend/pkg/logger"
	"job-copilot-backend/pkg/redis"
)

const (
	defaultAPILimit = 120
	// generation endpoints get this fraction of the per-IP API budget
	generationShare = 4
)

// RateLimitConfig is a fixed-window budget of Limit requests per Window for
// every key KeyFunc extracts.
type RateLimitConfig struct {
	Limit     int
	Window    time.Duration
	KeyPrefix string
	KeyFunc   func(*gin.Context) string
}

// APIRateLimitConfig limits every client IP to limit requests per window
func APIRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	if limit <= 0 {
		limit = defaultAPILimit
	}
	if window <= 0 {
		window = time.Minute
	}
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc:   func(c *gin.Context) string { return c.ClientIP() },
	}
}

// GenerationRateLimitConfig derives the per-user budget of the endpoints that
// call the AI collaborators from the API budget. It never drops below one.
func GenerationRateLimitConfig(apiLimit int, window time.Duration) RateLimitConfig {
	cfg := APIRateLimitConfig(apiLimit, window)
	cfg.Limit = max(1, cfg.Limit/generationShare)
	cfg.KeyPrefix = "rl:gen:"
	cfg.KeyFunc = func(c *gin.Context) string {
		if uid := c.GetString("UserID"); uid != "" {
			return uid
		}
		return c.ClientIP()
	}
	return cfg
}

// RateLimitMiddleware counts requests in redis when it is configured and in
// process otherwise. A redis failure falls back to the local count.
func RateLimitMiddleware(cfg RateLimitConfig) gin.HandlerFunc {
	l := &rateLimiter{cfg: cfg, now: time.Now}
	return l.handle
}

type rateLimiter struct {
	cfg   RateLimitConfig
	now   func() time.Time
	local localWindow
}

func (l *rateLimiter) handle(c *gin.Context) {
	start := l.now().Truncate(l.cfg.Window)
	resetAt := start.Add(l.cfg.Window)
	key := l.cfg.KeyPrefix + l.cfg.KeyFunc(c)

	count, err := l.count(c.Request.Context(), key, start)
	if err != nil {
		logger.Log.Warn("Rate limit check failed, counting locally", "error", err, "ip", c.ClientIP())
		count = l.local.hit(key, start)
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(l.cfg.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(max(0, l.cfg.Limit-count)))
	c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

	if count > l.cfg.Limit {
		c.Header("Retry-After", strconv.Itoa(max(1, int(resetAt.Sub(l.now()).Seconds()))))
		logger.Log.Warn("Rate limit triggered",
			"ip", c.ClientIP(),
			"path", c.FullPath(),
			"request_id", c.GetString("RequestID"),
		)
		response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
		c.Abort()
		return
	}
	c.Next()
}

func (l *rateLimiter) count(ctx context.Context, key string, start time.Time) (int, error) {
	rdb := redis.Client()
	if rdb == nil {
		return l.local.hit(key, start), nil
	}
	return redisHit(ctx, rdb, key+":"+strconv.FormatInt(start.Unix(), 10), l.cfg.Window)
}

// redisHit increments the bucket for one window and lets it expire with it
func redisHit(ctx context.Context, rdb *goredis.Client, bucket string, window time.Duration) (int, error) {
	pipe := rdb.TxPipeline()
	incr := pipe.Incr(ctx, bucket)
	pipe.Expire(ctx, bucket, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

// localWindow holds the counts of the current window only; the map is
// replaced when the window rolls over.
type localWindow struct {
	mu    sync.Mutex
	start time.Time
	hits  map[string]int
}

func (w *localWindow) hit(key string, start time.Time) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.hits == nil || start.After(w.start) {
		w.start = start
		w.hits = make(map[string]int)
	}
	w.hits[key]++
	return w.hits[key]
}
