package fx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/towntreasure/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestProvider(url string) *RateProvider {
	return NewRateProvider(config.FXConfig{
		Enabled:         true,
		URL:             url,
		RefreshInterval: time.Hour,
		FallbackRate:    133.50,
	}, zap.NewNop())
}

func TestRateProvider_SeedsWithFallback(t *testing.T) {
	p := newTestProvider("http://localhost:1")

	assert.Equal(t, "133.5", p.Rate().String())
	assert.True(t, p.FetchedAt().IsZero())
}

func TestRateProvider_Refresh(t *testing.T) {
	t.Run("adopts the fetched rate", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"base": "USD", "rates": {"NPR": 135.25, "EUR": 0.92}}`))
		}))
		defer server.Close()

		p := newTestProvider(server.URL)
		p.refresh(context.Background())

		assert.Equal(t, "135.25", p.Rate().String())
		assert.False(t, p.FetchedAt().IsZero())
	})

	t.Run("keeps the previous rate when the API is unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		p := newTestProvider(server.URL)
		p.refresh(context.Background())

		assert.Equal(t, "133.5", p.Rate().String())
		assert.True(t, p.FetchedAt().IsZero())
	})

	t.Run("rejects a payload without an NPR rate", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"rates": {"EUR": 0.92}}`))
		}))
		defer server.Close()

		p := newTestProvider(server.URL)
		p.refresh(context.Background())

		assert.Equal(t, "133.5", p.Rate().String())
	})

	t.Run("rejects a non-positive rate", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"rates": {"NPR": 0}}`))
		}))
		defer server.Close()

		p := newTestProvider(server.URL)
		p.refresh(context.Background())

		assert.Equal(t, "133.5", p.Rate().String())
	})
}

func TestRateProvider_StartStopsOnCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rates": {"NPR": 134}}`))
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return p.Rate().String() == "134"
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
}
