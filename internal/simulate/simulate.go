// Package simulate produces plausible hotspot and weather telemetry when the
// live providers are unreachable or unconfigured. Values are drawn uniformly
// from fixed ranges; the ranges, not the exact values, are the contract.
package simulate

import (
	"math"
	"math/rand"

	"github.com/wildfirestack/wildfire-engine/internal/models"
)

const (
	minHotspots = 5
	maxHotspots = 50
)

// Hotspots returns between 5 and 50 synthetic thermal anomaly records inside
// the monitored region's bounding box. The acquisition date of every record
// is set to dateLabel.
func Hotspots(dateLabel string) []models.HotspotRecord {
	count := minHotspots + rand.Intn(maxHotspots-minHotspots+1)
	records := make([]models.HotspotRecord, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, models.HotspotRecord{
			Latitude:        uniform(15, 25),
			Longitude:       uniform(70, 85),
			Brightness:      uniform(300, 500),
			AcquisitionDate: dateLabel,
			Confidence:      40 + rand.Intn(61),
		})
	}
	return records
}

// Weather returns a synthetic weather sample with every field rounded to two
// decimals.
func Weather() models.WeatherSample {
	return models.WeatherSample{
		Temperature:  round2(uniform(20, 45)),
		Humidity:     round2(uniform(10, 60)),
		WindSpeedKmh: round2(uniform(5, 35)),
		RainfallMm:   round2(uniform(0, 10)),
		NDVI:         round2(uniform(0.1, 0.8)),
	}
}

func uniform(low, high float64) float64 {
	return low + rand.Float64()*(high-low)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
