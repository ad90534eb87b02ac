// Package state owns the process-wide risk aggregate: the latest risk level,
// hotspot count, weather sample, and a bounded weather trend history. All
// mutation goes through methods that serialise access behind a single mutex.
package state

import (
	"math/rand"
	"sync"
	"time"

	"github.com/wildfirestack/wildfire-engine/internal/models"
)

// trendCapacity bounds the trend history; the oldest point is evicted first.
const trendCapacity = 15

// RiskState is the single shared aggregate mutated by the telemetry fetcher
// and the alert orchestrator.
type RiskState struct {
	mu            sync.Mutex
	hotspotCount  int
	riskLevel     models.RiskLevel
	latestWeather models.WeatherSample
	trend         []models.TrendPoint
}

// New returns a RiskState seeded with ten synthetic trend points at one-hour
// labels ending now, so the dashboard has a trend line before the first fetch.
func New(now time.Time) *RiskState {
	trend := make([]models.TrendPoint, 0, trendCapacity)
	for i := 10; i > 0; i-- {
		trend = append(trend, models.TrendPoint{
			TimeLabel:   now.Add(-time.Duration(i) * time.Hour).Format("15:04"),
			Temperature: 20 + rand.Float64()*10,
			Humidity:    40 + rand.Float64()*20,
		})
	}
	return &RiskState{
		hotspotCount: 0,
		riskLevel:    models.RiskLow,
		latestWeather: models.WeatherSample{
			Temperature:  25,
			Humidity:     50,
			WindSpeedKmh: 10,
			RainfallMm:   0,
			NDVI:         0.5,
		},
		trend: trend,
	}
}

// Summary reports the active hotspot count and current risk level.
func (s *RiskState) Summary() (hotspotCount int, level models.RiskLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hotspotCount, s.riskLevel
}

// LatestWeather returns the most recent weather sample.
func (s *RiskState) LatestWeather() models.WeatherSample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latestWeather
}

// Trend returns a snapshot copy of the trend history, oldest first.
func (s *RiskState) Trend() []models.TrendPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.TrendPoint(nil), s.trend...)
}

// RecordTelemetry applies one fetch result atomically: hotspot count, latest
// weather, and a trend point labelled with the fetch time. Appending past
// capacity evicts the oldest point so the history never exceeds 15 entries.
func (s *RiskState) RecordTelemetry(hotspotCount int, weather models.WeatherSample, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hotspotCount = hotspotCount
	s.latestWeather = weather
	s.trend = append(s.trend, models.TrendPoint{
		TimeLabel:   at.Format("15:04"),
		Temperature: weather.Temperature,
		Humidity:    weather.Humidity,
	})
	if len(s.trend) > trendCapacity {
		s.trend = s.trend[1:]
	}
}

// SetRiskLevel records the orchestrator's latest classification.
func (s *RiskState) SetRiskLevel(level models.RiskLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.riskLevel = level
}
