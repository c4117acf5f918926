package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akolanti/PDFSummarizer/internal/adapter/utils"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func newRequest(remote string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/status/x", nil)
	req.RemoteAddr = remote
	return req
}

func TestWrap_InjectsTrace(t *testing.T) {
	var seen string
	handler := Wrap(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.TraceID(r.Context())
	})

	req := newRequest("10.0.0.1:1000")
	req.Header.Set("X-Trace-Id", "trace-123")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if seen != "trace-123" {
		t.Errorf("trace in context got %q", seen)
	}
	if rec.Header().Get("X-Trace-Id") != "trace-123" {
		t.Error("trace id not echoed in the response")
	}

	seen = ""
	handler(httptest.NewRecorder(), newRequest("10.0.0.1:1000"))
	if seen == "" {
		t.Error("a trace id should be generated when none is sent")
	}
}

func TestWrapAPI_Auth(t *testing.T) {
	Init("secret")
	t.Cleanup(func() { Init("") })

	tests := []struct {
		name    string
		header  string
		wrapper func(http.HandlerFunc) http.HandlerFunc
		want    int
	}{
		{"missing token", "", WrapAPI, http.StatusUnauthorized},
		{"wrong scheme", "Basic secret", WrapAPI, http.StatusUnauthorized},
		{"wrong token", "Bearer nope", WrapAPI, http.StatusUnauthorized},
		{"valid token", "Bearer secret", WrapAPI, http.StatusOK},
		{"form routes stay open", "", Wrap, http.StatusOK},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest("10.0.1." + string(rune('1'+i)) + ":1000")
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			tt.wrapper(okHandler)(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestWrapAPI_OpenWithoutToken(t *testing.T) {
	Init("")
	rec := httptest.NewRecorder()
	WrapAPI(okHandler)(rec, newRequest("10.0.2.1:1000"))
	if rec.Code != http.StatusOK {
		t.Errorf("status got %d", rec.Code)
	}
}

func TestWrap_RateLimit(t *testing.T) {
	handler := Wrap(okHandler)
	remote := "10.0.3.1:1000"

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler(rec, newRequest(remote))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d got %d within the burst", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler(rec, newRequest(remote))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status got %d, want 429", rec.Code)
	}

	other := httptest.NewRecorder()
	handler(other, newRequest("10.0.3.2:1000"))
	if other.Code != http.StatusOK {
		t.Errorf("another ip should not be limited, got %d", other.Code)
	}
}

func TestIPRateLimiter_SameLimiterPerIP(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	if l.GetLimiter("a") != l.GetLimiter("a") {
		t.Error("expected the same limiter for one ip")
	}
	if l.GetLimiter("a") == l.GetLimiter("b") {
		t.Error("expected separate limiters per ip")
	}
}
