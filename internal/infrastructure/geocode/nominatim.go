package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/towntreasure/backend/internal/domain/ordering"
	"github.com/towntreasure/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Client looks up delivery addresses against a Nominatim-compatible
// geocoding service. Queries shorter than the configured minimum return
// an empty result without touching the network, and upstream failures
// degrade to an empty result rather than an error surfaced to the buyer.
type Client struct {
	baseURL        string
	countryCodes   string
	regionSuffix   string
	resultLimit    int
	minQueryLength int
	httpClient     *http.Client
	logger         *zap.Logger
}

// NewClient creates a new geocoding client
func NewClient(cfg config.GeocodeConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:        cfg.BaseURL,
		countryCodes:   cfg.CountryCodes,
		regionSuffix:   cfg.RegionSuffix,
		resultLimit:    cfg.ResultLimit,
		minQueryLength: cfg.MinQueryLength,
		httpClient:     &http.Client{Timeout: cfg.RequestTimeout},
		logger:         logger.Named("geocode"),
	}
}

type nominatimResult struct {
	PlaceID     json.Number `json:"place_id"`
	DisplayName string      `json:"display_name"`
	Lat         string      `json:"lat"`
	Lon         string      `json:"lon"`
}

// Search returns candidate delivery locations for a free-text query
func (c *Client) Search(ctx context.Context, query string) ([]ordering.DeliveryLocation, error) {
	query = strings.TrimSpace(query)
	if len(query) < c.minQueryLength {
		return []ordering.DeliveryLocation{}, nil
	}

	searchQuery := query
	if c.regionSuffix != "" && !strings.Contains(strings.ToLower(query), strings.ToLower(c.regionSuffix)) {
		searchQuery = query + ", " + c.regionSuffix
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", searchQuery)
	params.Set("limit", strconv.Itoa(c.resultLimit))
	if c.countryCodes != "" {
		params.Set("countrycodes", c.countryCodes)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("User-Agent", "towntreasure-backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Cancellation propagates so a superseded search can be told
		// apart from an upstream outage
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("address lookup failed", zap.String("query", query), zap.Error(err))
		return []ordering.DeliveryLocation{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("address lookup returned non-OK status",
			zap.String("query", query),
			zap.Int("status", resp.StatusCode),
		)
		return []ordering.DeliveryLocation{}, nil
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		c.logger.Warn("failed to decode address lookup response", zap.Error(err))
		return []ordering.DeliveryLocation{}, nil
	}

	locations := make([]ordering.DeliveryLocation, 0, len(results))
	for _, r := range results {
		if r.DisplayName == "" {
			continue
		}
		locations = append(locations, ordering.DeliveryLocation{
			Label:   labelFromDisplayName(r.DisplayName),
			Address: r.DisplayName,
		})
	}
	return locations, nil
}

// labelFromDisplayName takes the leading component of the full display
// name as a short label
func labelFromDisplayName(displayName string) string {
	if idx := strings.Index(displayName, ","); idx > 0 {
		return strings.TrimSpace(displayName[:idx])
	}
	return displayName
}
