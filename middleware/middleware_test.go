package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/service-survey/metrics"
	"github.com/vnkhanh/service-survey/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitByIP(t *testing.T) {
	rl := NewIPRateLimiter(1, 2, time.Minute)
	r := gin.New()
	r.POST("/x", RateLimitByIP(rl), func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		codes = append(codes, serve(r, req).Code)
	}
	assert.Equal(t, []int{201, 201, 429}, codes)

	// IP khác có bucket riêng
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	assert.Equal(t, http.StatusCreated, serve(r, req).Code)
}

func TestRateLimitByIP_RetryAfterAndRoutes(t *testing.T) {
	rl := NewIPRateLimiter(2, 1, time.Minute)
	defer rl.Stop()
	r := gin.New()
	r.POST("/a", RateLimitByIP(rl), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/b", RateLimitByIP(rl), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodPost, "/a", nil)).Code)
	w := serve(r, httptest.NewRequest(http.MethodPost, "/a", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	wait, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.True(t, wait > 0 && wait <= 30, "retry after %d", wait)

	// cùng IP nhưng route khác vẫn còn quota
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodPost, "/b", nil)).Code)
}

func TestIPRateLimiter_Sweep(t *testing.T) {
	rl := NewIPRateLimiter(10, 5, time.Minute)
	rl.Stop()
	rl.Stop()

	now := time.Now()
	rl.get("old", now.Add(-2*time.Minute))
	rl.get("fresh", now)
	assert.Equal(t, 1, rl.sweep(now))
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "fresh")
}

func TestRateLimitByIP_Unlimited(t *testing.T) {
	rl := NewIPRateLimiter(0, 1, time.Minute)
	r := gin.New()
	r.POST("/x", RateLimitByIP(rl), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodPost, "/x", nil)).Code)
	}
}

func TestRespondentIdentity(t *testing.T) {
	r := gin.New()
	r.Use(RespondentIdentity("pepper"))
	r.GET("/who", func(c *gin.Context) { c.String(http.StatusOK, RespondentHash(c)) })
	r.GET("/need", RequireRespondent(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set(RespondentHeader, "student-42")
	w := serve(r, req)
	assert.Equal(t, utils.HashRespondent("pepper", "student-42"), w.Body.String())
	assert.NotContains(t, w.Body.String(), "student-42")

	assert.Equal(t, "", serve(r, httptest.NewRequest(http.MethodGet, "/who", nil)).Body.String())
	assert.Equal(t, http.StatusBadRequest, serve(r, httptest.NewRequest(http.MethodGet, "/need", nil)).Code)

	req = httptest.NewRequest(http.MethodGet, "/need", nil)
	req.Header.Set(RespondentHeader, "student-42")
	assert.Equal(t, http.StatusNoContent, serve(r, req).Code)
}

func TestRequireAdminKey(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		header string
		want   int
	}{
		{"disabled", "", "anything", http.StatusForbidden},
		{"missing", "s3cret", "", http.StatusUnauthorized},
		{"wrong", "s3cret", "nope", http.StatusForbidden},
		{"ok", "s3cret", "s3cret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/admin", RequireAdminKey(tt.key), func(c *gin.Context) { c.Status(http.StatusOK) })
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set(AdminKeyHeader, tt.header)
			}
			assert.Equal(t, tt.want, serve(r, req).Code)
		})
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	serve(r, httptest.NewRequest(http.MethodGet, "/missing?q=1", nil))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/missing", line["path"])
	assert.EqualValues(t, 404, line["status"])
	assert.Equal(t, "warning", line["level"])
}

func TestMetrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/services/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, httptest.NewRequest(http.MethodGet, "/api/services/1", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/api/services/2", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/api/services/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RequestsInFlight))
}
