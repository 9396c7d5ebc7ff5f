package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/towntreasure/backend/internal/infrastructure/config"
)

// RateProvider serves the USD to NPR exchange rate used for dual-currency
// price display. It refreshes from a public rates API on an interval and
// falls back to the configured static rate whenever the API is
// unreachable, so a rate is always available.
type RateProvider struct {
	url        string
	interval   time.Duration
	fallback   decimal.Decimal
	httpClient *http.Client
	logger     *zap.Logger

	mu        sync.RWMutex
	rate      decimal.Decimal
	fetchedAt time.Time
}

// NewRateProvider creates a provider seeded with the fallback rate
func NewRateProvider(cfg config.FXConfig, logger *zap.Logger) *RateProvider {
	fallback := decimal.NewFromFloat(cfg.FallbackRate)
	return &RateProvider{
		url:        cfg.URL,
		interval:   cfg.RefreshInterval,
		fallback:   fallback,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger.Named("fx"),
		rate:       fallback,
	}
}

// Rate returns the current USD to NPR rate
func (p *RateProvider) Rate() decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.rate
}

// FetchedAt returns when the rate was last fetched from the API; zero if
// the provider is still on the fallback rate
func (p *RateProvider) FetchedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fetchedAt
}

// Start refreshes the rate immediately and then on the configured
// interval until the context is cancelled. Run it in its own goroutine.
func (p *RateProvider) Start(ctx context.Context) {
	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

func (p *RateProvider) refresh(ctx context.Context) {
	rate, err := p.fetch(ctx)
	if err != nil {
		p.logger.Warn("exchange rate refresh failed, keeping previous rate",
			zap.Error(err),
			zap.String("rate", p.Rate().String()),
		)
		return
	}

	p.mu.Lock()
	p.rate = rate
	p.fetchedAt = time.Now()
	p.mu.Unlock()

	p.logger.Info("exchange rate refreshed", zap.String("usd_npr", rate.String()))
}

func (p *RateProvider) fetch(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build rates request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rates API returned status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode rates response: %w", err)
	}

	npr, ok := body.Rates["NPR"]
	if !ok || npr <= 0 {
		return decimal.Zero, fmt.Errorf("rates response missing NPR rate")
	}

	return decimal.NewFromFloat(npr), nil
}
