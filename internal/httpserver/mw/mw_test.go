package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAllowOnlyCIDRS(t *testing.T) {
	log := logger.New("error", false)

	tests := []struct {
		name       string
		allowed    []string
		remoteAddr string
		want       int
	}{
		{name: "loopback v4", allowed: []string{"127.0.0.0/8", "::1"}, remoteAddr: "127.0.0.1:1234", want: http.StatusOK},
		{name: "loopback v6", allowed: []string{"127.0.0.0/8", "::1"}, remoteAddr: "[::1]:1234", want: http.StatusOK},
		{name: "lan rejected", allowed: []string{"127.0.0.0/8"}, remoteAddr: "192.168.1.5:1234", want: http.StatusForbidden},
		{name: "empty list passthrough", remoteAddr: "192.168.1.5:1234", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AllowOnlyCIDRS(tt.allowed, log)(okHandler)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestEnforceHost(t *testing.T) {
	log := logger.New("error", false)
	allowed := []string{"127.0.0.1:2369", "localhost:2369", "*.ghostdesk.localhost"}

	tests := []struct {
		host string
		want int
	}{
		{host: "127.0.0.1:2369", want: http.StatusOK},
		{host: "LOCALHOST:2369", want: http.StatusOK},
		{host: "app.ghostdesk.localhost", want: http.StatusOK},
		{host: "evil.example.com", want: http.StatusForbidden},
		{host: "localhost:9999", want: http.StatusForbidden},
	}

	h := EnforceHost(allowed, log)(okHandler)
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(1, 2)(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		codes = append(codes, rec.Code)
	}

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("request %d status = %d, want %d", i, codes[i], want[i])
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET status = %d, want 200 (reads are not limited)", rec.Code)
	}
}

func TestLogCapturesStatus(t *testing.T) {
	h := Log(logger.New("error", false))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}
