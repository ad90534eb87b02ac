// Package telemetry fetches hotspot and weather data from the live providers
// and falls back to simulated telemetry on any classified failure. Callers
// only ever see a result; provider errors stop here.
package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/wildfirestack/wildfire-engine/internal/metrics"
	"github.com/wildfirestack/wildfire-engine/internal/models"
	"github.com/wildfirestack/wildfire-engine/internal/repo"
	"github.com/wildfirestack/wildfire-engine/internal/simulate"
	"github.com/wildfirestack/wildfire-engine/internal/state"
)

// HotspotSource supplies live hotspot records.
type HotspotSource interface {
	Fetch(ctx context.Context) ([]models.HotspotRecord, error)
}

// WeatherSource supplies live weather conditions for a region.
type WeatherSource interface {
	Fetch(ctx context.Context, region string) (models.WeatherSample, error)
}

// Snapshot is the result of one combined telemetry refresh.
type Snapshot struct {
	HotspotCount int
	Weather      models.WeatherSample
}

// Fetcher normalises provider output into the shared data model and updates
// the risk state as a side effect of Refresh.
type Fetcher struct {
	logger   *slog.Logger
	hotspots HotspotSource
	weather  WeatherSource
	state    *state.RiskState
}

// NewFetcher constructs a Fetcher.
func NewFetcher(logger *slog.Logger, hotspots HotspotSource, weather WeatherSource, riskState *state.RiskState) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		logger:   logger,
		hotspots: hotspots,
		weather:  weather,
		state:    riskState,
	}
}

// FetchHotspots returns live hotspot records, or simulated ones dated
// fromDate when the provider fails for any reason.
func (f *Fetcher) FetchHotspots(ctx context.Context, fromDate string) []models.HotspotRecord {
	if f.hotspots != nil {
		records, err := f.hotspots.Fetch(ctx)
		if err == nil {
			metrics.ObserveTelemetryFetch(metrics.SignalHotspots, metrics.SourceLive)
			f.logger.Info("fetched live hotspots", slog.Int("count", len(records)))
			return records
		}
		f.logFallback("hotspot", err)
	}
	metrics.ObserveTelemetryFetch(metrics.SignalHotspots, metrics.SourceSimulated)
	return simulate.Hotspots(fromDate)
}

// FetchWeather returns live weather for region, or a simulated sample when
// the provider fails for any reason.
func (f *Fetcher) FetchWeather(ctx context.Context, region string) models.WeatherSample {
	if f.weather != nil {
		sample, err := f.weather.Fetch(ctx, region)
		if err == nil {
			metrics.ObserveTelemetryFetch(metrics.SignalWeather, metrics.SourceLive)
			return sample
		}
		f.logFallback("weather", err)
	}
	metrics.ObserveTelemetryFetch(metrics.SignalWeather, metrics.SourceSimulated)
	return simulate.Weather()
}

// Refresh fetches both signals and records the combined result in the risk
// state: hotspot count, latest weather, and one trend point.
func (f *Fetcher) Refresh(ctx context.Context, region, fromDate, toDate string) Snapshot {
	hotspots := f.FetchHotspots(ctx, fromDate)
	weather := f.FetchWeather(ctx, region)

	if f.state != nil {
		f.state.RecordTelemetry(len(hotspots), weather, time.Now())
	}

	return Snapshot{HotspotCount: len(hotspots), Weather: weather}
}

// logFallback logs a classified provider failure before the simulated
// fallback runs. Missing credentials are expected in local setups and stay
// at debug level.
func (f *Fetcher) logFallback(provider string, err error) {
	kind := repo.KindOf(err)
	if kind == repo.FailureUnavailable {
		f.logger.Debug("provider unconfigured, using simulated data", slog.String("provider", provider))
		return
	}
	f.logger.Warn("provider failed, using simulated data",
		slog.String("provider", provider),
		slog.String("kind", string(kind)),
		slog.Any("error", err))
}
