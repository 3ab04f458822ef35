package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/config"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func rateLimitedEcho(cfg config.RateLimitConfig, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"pong": true})
	}, NewTokenBucket(cfg, rdb))
	return e
}

func TestTokenBucket(t *testing.T) {
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            2 * time.Hour,
		KeyStrategy:    "ip_user_route",
		Prefix:         "rl",
	}

	t.Run("exhausts capacity then throttles", func(t *testing.T) {
		e := rateLimitedEcho(cfg, newTestRedis(t))
		for i := 0; i < 2; i++ {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
			require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("separate ips get separate buckets", func(t *testing.T) {
		e := rateLimitedEcho(cfg, newTestRedis(t))
		for _, ip := range []string{"10.0.0.1:1234", "10.0.0.2:1234"} {
			for i := 0; i < 2; i++ {
				req := httptest.NewRequest(http.MethodGet, "/ping", nil)
				req.RemoteAddr = ip
				rec := httptest.NewRecorder()
				e.ServeHTTP(rec, req)
				assert.Equal(t, http.StatusOK, rec.Code)
			}
		}
	})

	t.Run("disabled is a passthrough", func(t *testing.T) {
		off := cfg
		off.Enabled = false
		e := rateLimitedEcho(off, newTestRedis(t))
		for i := 0; i < 10; i++ {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("nil redis client is a passthrough", func(t *testing.T) {
		e := rateLimitedEcho(cfg, nil)
		for i := 0; i < 10; i++ {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/requests", nil)
	req.RemoteAddr = "192.0.2.7:5555"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/requests")

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}
	assert.Equal(t, "rl:ip:192.0.2.7", buildRateKey(cfg, c))

	cfg.KeyStrategy = "user"
	c.Set("user_id", uint64(42))
	assert.Equal(t, "rl:user:42", buildRateKey(cfg, c))

	cfg.KeyStrategy = "ip_user_route"
	assert.Equal(t, "rl:ip:192.0.2.7:user:42:route:GET /v1/requests", buildRateKey(cfg, c))
}
