package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/gridwatch/gridboard/internal/pkg/response"
)

const rateLimitEntries = 4096

type rateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	last   *lru.Cache[string, time.Time]
	resp   *response.Formatter
}

// RateLimit enforces a minimum interval between requests from the
// same ip/user/path triple. State lives in a fixed-size LRU so a
// scanning client cannot grow it without bound.
func RateLimit(window time.Duration, resp *response.Formatter) gin.HandlerFunc {
	cache, _ := lru.New[string, time.Time](rateLimitEntries)
	limiter := &rateLimiter{
		window: window,
		last:   cache,
		resp:   resp,
	}
	return limiter.handle
}

func (l *rateLimiter) handle(c *gin.Context) {
	if l.window <= 0 {
		c.Next()
		return
	}
	ip := c.ClientIP()
	uid := "0"
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok := v.(string); ok && id != "" {
			uid = id
		}
	}
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	key := strings.Join([]string{ip, uid, path}, "|")

	now := time.Now()
	l.mu.Lock()
	last, exists := l.last.Get(key)
	if exists && now.Sub(last) < l.window {
		l.mu.Unlock()
		logutil.GetLogger(c.Request.Context()).Warn("rate limit hit",
			zap.String("ip", ip),
			zap.String("user_id", uid),
			zap.String("path", path),
		)
		l.resp.Error(c, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
		c.Abort()
		return
	}
	l.last.Add(key, now)
	l.mu.Unlock()
	c.Next()
}
