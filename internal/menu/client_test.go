package menu

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClient(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		_, err := NewClient(Config{})
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Fatalf("error = %v, want ErrMissingAPIKey", err)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		c, err := NewClient(Config{APIKey: "k"})
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}
		if c.cfg.Model != DefaultModel {
			t.Errorf("model = %q, want %q", c.cfg.Model, DefaultModel)
		}
		if c.cfg.BaseURL != DefaultBaseURL {
			t.Errorf("base url = %q, want %q", c.cfg.BaseURL, DefaultBaseURL)
		}
	})

	t.Run("overrides respected", func(t *testing.T) {
		c, err := NewClient(Config{APIKey: "k", Model: "gemini-2.5-pro", BaseURL: "http://localhost:1"})
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}
		if c.cfg.Model != "gemini-2.5-pro" || c.cfg.BaseURL != "http://localhost:1" {
			t.Errorf("overrides lost: %+v", c.cfg)
		}
	})
}

func TestComplete_NonRetryableFailsImmediately(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{APIKey: "k", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	_, err = c.Complete(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("made %d calls, want 1 (400 is not retryable)", calls)
	}
}

func TestComplete_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{APIKey: "k", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.Complete(ctx, "prompt")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{APIKey: "k", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	_, err = c.Complete(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "no choices") {
		t.Fatalf("error = %v, want no-choices failure", err)
	}
}

func TestRetryableStatusCode(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusGatewayTimeout, true},
		{http.StatusOK, false},
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
		{http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		if got := retryableStatusCode(tt.code); got != tt.want {
			t.Errorf("retryableStatusCode(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
