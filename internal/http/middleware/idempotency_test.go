package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func idemRouter(opts IdempotencyOptions, lookup IdempotencyLookup, probe func(c *gin.Context)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdempotencyValidator(opts, lookup))
	r.POST("/x", func(c *gin.Context) {
		if probe != nil {
			probe(c)
		}
		c.Status(http.StatusOK)
	})
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestIdempotencyValidator_NoHeaderPassesThrough(t *testing.T) {
	var key string
	var present bool
	r := idemRouter(IdempotencyOptions{}, nil, func(c *gin.Context) {
		key, present = GetIdempotencyKey(c)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if present || key != "" {
		t.Fatalf("key should be absent, got %q", key)
	}
}

func TestIdempotencyValidator_StashesValidKey(t *testing.T) {
	var key string
	r := idemRouter(IdempotencyOptions{}, nil, func(c *gin.Context) {
		key, _ = GetIdempotencyKey(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set(HeaderIdempotencyKey, "a1b2-c3d4")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if key != "a1b2-c3d4" {
		t.Fatalf("key = %q", key)
	}
}

func TestIdempotencyValidator_RejectsMalformedKeys(t *testing.T) {
	r := idemRouter(IdempotencyOptions{MaxLen: 16}, nil, nil)

	bad := []string{
		"has spaces",
		"tab\there",
		strings.Repeat("x", 17), // over MaxLen
		"non-ascii-ключ",
	}
	for _, key := range bad {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set(HeaderIdempotencyKey, key)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("key %q: status = %d, want 400", key, w.Code)
		}
	}
}

func TestIdempotencyValidator_SkipsSafeMethods(t *testing.T) {
	r := idemRouter(IdempotencyOptions{MaxLen: 4}, nil, nil)

	// Key is malformed (too long) but GET is exempt from validation.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderIdempotencyKey, "way-too-long-for-maxlen")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", w.Code)
	}
}

func TestIdempotencyValidator_FlagsReplay(t *testing.T) {
	lookup := func(ctx context.Context, sessionID, key string, now time.Time) (bool, error) {
		return key == "known-key", nil
	}
	var replay, bypass bool
	r := idemRouter(IdempotencyOptions{}, lookup, func(c *gin.Context) {
		replay = IsReplay(c)
		if v, ok := c.Get(ctxKeyRateBypass); ok {
			bypass, _ = v.(bool)
		}
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set(HeaderIdempotencyKey, "known-key")
	r.ServeHTTP(w, req)
	if !replay {
		t.Fatalf("replay flag not set")
	}
	if !bypass {
		t.Fatalf("rate bypass flag not set for replay")
	}

	// Unknown keys are not replays.
	replay, bypass = false, false
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set(HeaderIdempotencyKey, "fresh-key")
	r.ServeHTTP(w, req)
	if replay || bypass {
		t.Fatalf("fresh key flagged as replay")
	}
}
