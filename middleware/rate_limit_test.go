package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func TestLoginRateLimiter(t *testing.T) {
	addr := os.Getenv("INTEGRATION_REDIS_ADDR")
	if addr == "" {
		t.Skip("INTEGRATION_REDIS_ADDR not set; skipping rate limiter test")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	// httptest requests all arrive from 192.0.2.1
	key := "nk:rl:login:192.0.2.1"
	if err := rdb.Del(rlCtx, key).Err(); err != nil {
		t.Fatalf("reset counter: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", LoginRateLimiter(rdb, 3, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	post := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		return w
	}

	for i := 0; i < 3; i++ {
		if w := post(); w.Code != http.StatusOK {
			t.Fatalf("request %d: status=%d, want %d", i+1, w.Code, http.StatusOK)
		}
	}
	w := post()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("over-limit request: status=%d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("over-limit response missing Retry-After")
	}

	// the counter must never persist without a TTL, or the IP would stay
	// limited past the window
	ttl, err := rdb.TTL(rlCtx, key).Result()
	if err != nil {
		t.Fatalf("read ttl: %v", err)
	}
	if ttl <= 0 {
		t.Fatalf("counter key has no expiry: ttl=%v", ttl)
	}
}
