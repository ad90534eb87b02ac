// Package repo contains HTTP clients for the external telemetry providers.
// Clients report classified failures; the fallback decision lives with the
// telemetry fetcher, not here.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/wildfirestack/wildfire-engine/internal/cache"
	"github.com/wildfirestack/wildfire-engine/internal/models"
)

// placeholderFIRMSKey is the value shipped in example configs; treated the
// same as no credential at all.
const placeholderFIRMSKey = "YOUR_NASA_MAP_KEY_HERE"

// HotspotClient queries the NASA FIRMS country endpoint for active thermal
// anomalies. Responses are cached under a short TTL because the upstream
// feed only refreshes a few times per hour.
type HotspotClient struct {
	baseURL    string
	mapKey     string
	source     string
	country    string
	httpClient *http.Client
	cache      cache.Provider
	cacheTTL   time.Duration
}

// NewHotspotClient constructs a FIRMS client. cacheProvider may be nil.
func NewHotspotClient(baseURL, mapKey, source, country string, timeout time.Duration, cacheProvider cache.Provider, cacheTTL time.Duration) *HotspotClient {
	if cacheProvider == nil {
		cacheProvider = cache.NoopProvider{}
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if source == "" {
		source = "VIIRS_SNPP_NRT"
	}
	if country == "" {
		country = "IND"
	}
	return &HotspotClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		mapKey:     mapKey,
		source:     source,
		country:    country,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cacheProvider,
		cacheTTL:   cacheTTL,
	}
}

// Fetch returns the current hotspot records for the configured country.
func (c *HotspotClient) Fetch(ctx context.Context) ([]models.HotspotRecord, error) {
	const op = "firms.fetch"
	if c == nil || c.baseURL == "" {
		return nil, unavailable(op)
	}
	if c.mapKey == "" || c.mapKey == placeholderFIRMSKey {
		return nil, unavailable(op)
	}

	cacheKey := fmt.Sprintf("firms:%s:%s", c.source, c.country)
	if payload, err := c.cache.Get(ctx, cacheKey); err == nil {
		var cached []models.HotspotRecord
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
	}

	endpoint := fmt.Sprintf("%s/api/country/json/%s/%s/%s/1", c.baseURL, c.mapKey, c.source, c.country)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, transport(op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transport(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, badResponse(op, fmt.Errorf("firms returned %s", resp.Status))
	}

	var records []models.HotspotRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, badResponse(op, fmt.Errorf("decode response: %w", err))
	}

	if payload, err := json.Marshal(records); err == nil {
		_ = c.cache.Set(ctx, cacheKey, payload, c.cacheTTL)
	}
	return records, nil
}
