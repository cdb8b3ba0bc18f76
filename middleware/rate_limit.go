package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter giữ một token bucket cho mỗi khoá (route + IP).
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	limit rate.Limit
	burst int
	ttl   time.Duration
	done  chan struct{}
	once  sync.Once
}

// reqPerMin <= 0 nghĩa là không giới hạn. Khoá không dùng quá ttl sẽ bị dọn.
func NewIPRateLimiter(reqPerMin, burst int, ttl time.Duration) *IPRateLimiter {
	limit := rate.Inf
	if reqPerMin > 0 {
		limit = rate.Limit(float64(reqPerMin) / 60.0)
	}
	if burst < 1 {
		burst = 1
	}
	rl := &IPRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *IPRateLimiter) get(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// allow trả về false kèm số giây cần chờ khi bucket đã cạn.
func (rl *IPRateLimiter) allow(key string, now time.Time) (bool, int) {
	lim := rl.get(key, now)
	r := lim.ReserveN(now, 1)
	if !r.OK() {
		return false, 60
	}
	delay := r.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	r.CancelAt(now)
	return false, int(math.Ceil(delay.Seconds()))
}

func (rl *IPRateLimiter) sweep(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	removed := 0
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.ttl {
			delete(rl.visitors, key)
			removed++
		}
	}
	return removed
}

func (rl *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			rl.sweep(now)
		case <-rl.done:
			return
		}
	}
}

// Stop dừng goroutine dọn dẹp; gọi nhiều lần vẫn an toàn.
func (rl *IPRateLimiter) Stop() {
	rl.once.Do(func() { close(rl.done) })
}

// RateLimitByIP chặn với 429 khi IP vượt hạn mức. Mỗi route có bucket riêng.
func RateLimitByIP(rl *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.FullPath() + "|" + c.ClientIP() // ClientIP xét X-Forwarded-For nếu có TrustedProxies
		ok, wait := rl.allow(key, time.Now())
		if !ok {
			c.Header("Retry-After", strconv.Itoa(wait))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message":     "Too many requests, please try again later",
				"retry_after": wait,
			})
			return
		}
		c.Next()
	}
}

var (
	limitersMu      sync.RWMutex
	submitLimiter   *IPRateLimiter
	feedbackLimiter *IPRateLimiter
)

// InitLimiters tạo limiter cho gửi bài và feedback, dừng bộ cũ nếu có.
func InitLimiters(reqPerMin, burst int) {
	limitersMu.Lock()
	defer limitersMu.Unlock()
	for _, old := range []*IPRateLimiter{submitLimiter, feedbackLimiter} {
		if old != nil {
			old.Stop()
		}
	}
	submitLimiter = NewIPRateLimiter(reqPerMin, burst, 5*time.Minute)
	feedbackLimiter = NewIPRateLimiter(reqPerMin, burst, 5*time.Minute)
}

func RateLimitSubmit() gin.HandlerFunc {
	limitersMu.RLock()
	defer limitersMu.RUnlock()
	return RateLimitByIP(submitLimiter)
}

func RateLimitFeedback() gin.HandlerFunc {
	limitersMu.RLock()
	defer limitersMu.RUnlock()
	return RateLimitByIP(feedbackLimiter)
}
