package simulate

import (
	"math"
	"testing"
)

func TestHotspotsRespectRanges(t *testing.T) {
	for run := 0; run < 50; run++ {
		records := Hotspots("2026-09-01")
		if len(records) < 5 || len(records) > 50 {
			t.Fatalf("hotspot count %d outside [5,50]", len(records))
		}
		for _, r := range records {
			if r.Latitude < 15 || r.Latitude > 25 {
				t.Fatalf("latitude %f outside [15,25]", r.Latitude)
			}
			if r.Longitude < 70 || r.Longitude > 85 {
				t.Fatalf("longitude %f outside [70,85]", r.Longitude)
			}
			if r.Brightness < 300 || r.Brightness > 500 {
				t.Fatalf("brightness %f outside [300,500]", r.Brightness)
			}
			if r.Confidence < 40 || r.Confidence > 100 {
				t.Fatalf("confidence %d outside [40,100]", r.Confidence)
			}
			if r.AcquisitionDate != "2026-09-01" {
				t.Fatalf("acquisition date %q not propagated", r.AcquisitionDate)
			}
		}
	}
}

func TestWeatherRespectsRanges(t *testing.T) {
	checks := []struct {
		name      string
		low, high float64
		value     func(w weatherFields) float64
	}{
		{"temperature", 20, 45, func(w weatherFields) float64 { return w.temp }},
		{"humidity", 10, 60, func(w weatherFields) float64 { return w.hum }},
		{"wind", 5, 35, func(w weatherFields) float64 { return w.wind }},
		{"rainfall", 0, 10, func(w weatherFields) float64 { return w.rain }},
		{"ndvi", 0.1, 0.8, func(w weatherFields) float64 { return w.ndvi }},
	}

	for run := 0; run < 100; run++ {
		sample := Weather()
		fields := weatherFields{
			temp: sample.Temperature,
			hum:  sample.Humidity,
			wind: sample.WindSpeedKmh,
			rain: sample.RainfallMm,
			ndvi: sample.NDVI,
		}
		for _, check := range checks {
			v := check.value(fields)
			if v < check.low || v > check.high {
				t.Fatalf("%s %f outside [%f,%f]", check.name, v, check.low, check.high)
			}
			if rounded := math.Round(v*100) / 100; rounded != v {
				t.Fatalf("%s %f not rounded to 2 decimals", check.name, v)
			}
		}
	}
}

type weatherFields struct {
	temp, hum, wind, rain, ndvi float64
}
