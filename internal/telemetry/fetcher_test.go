package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wildfirestack/wildfire-engine/internal/models"
	"github.com/wildfirestack/wildfire-engine/internal/state"
)

type fakeHotspotSource struct {
	records []models.HotspotRecord
	err     error
	calls   int
}

func (f *fakeHotspotSource) Fetch(ctx context.Context) ([]models.HotspotRecord, error) {
	f.calls++
	return f.records, f.err
}

type fakeWeatherSource struct {
	sample models.WeatherSample
	err    error
}

func (f *fakeWeatherSource) Fetch(ctx context.Context, region string) (models.WeatherSample, error) {
	return f.sample, f.err
}

func TestFetchHotspotsUsesLiveData(t *testing.T) {
	live := []models.HotspotRecord{{Latitude: 19.5, Longitude: 75.2, Brightness: 330, Confidence: 80}}
	fetcher := NewFetcher(nil, &fakeHotspotSource{records: live}, nil, nil)

	got := fetcher.FetchHotspots(context.Background(), "2026-09-01")
	if len(got) != 1 || got[0].Latitude != 19.5 {
		t.Fatalf("expected live records, got %+v", got)
	}
}

func TestFetchHotspotsFallsBackOnError(t *testing.T) {
	fetcher := NewFetcher(nil, &fakeHotspotSource{err: errors.New("boom")}, nil, nil)

	got := fetcher.FetchHotspots(context.Background(), "2026-09-01")
	if len(got) < 5 || len(got) > 50 {
		t.Fatalf("simulated fallback count %d outside [5,50]", len(got))
	}
	for _, r := range got {
		if r.AcquisitionDate != "2026-09-01" {
			t.Fatalf("simulated record not dated with fromDate: %q", r.AcquisitionDate)
		}
	}
}

func TestFetchWeatherNeverFails(t *testing.T) {
	cases := []struct {
		name   string
		source WeatherSource
	}{
		{"provider error", &fakeWeatherSource{err: errors.New("http 500")}},
		{"no provider", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := NewFetcher(nil, nil, tc.source, nil)
			sample := fetcher.FetchWeather(context.Background(), "Nagpur")
			if sample.Temperature < 20 || sample.Temperature > 45 {
				t.Fatalf("simulated temperature %f outside [20,45]", sample.Temperature)
			}
			if sample.NDVI < 0.1 || sample.NDVI > 0.8 {
				t.Fatalf("simulated ndvi %f outside [0.1,0.8]", sample.NDVI)
			}
		})
	}
}

func TestRefreshUpdatesRiskState(t *testing.T) {
	riskState := state.New(time.Now())
	weather := models.WeatherSample{Temperature: 31.4, Humidity: 22, WindSpeedKmh: 14.4, NDVI: 0.81}
	live := []models.HotspotRecord{{Confidence: 70}, {Confidence: 90}}

	fetcher := NewFetcher(nil, &fakeHotspotSource{records: live}, &fakeWeatherSource{sample: weather}, riskState)
	snapshot := fetcher.Refresh(context.Background(), "Nagpur", "2026-08-31", "2026-09-01")

	if snapshot.HotspotCount != 2 {
		t.Fatalf("expected 2 hotspots, got %d", snapshot.HotspotCount)
	}
	if snapshot.Weather != weather {
		t.Fatalf("snapshot weather mismatch: %+v", snapshot.Weather)
	}

	count, _ := riskState.Summary()
	if count != 2 {
		t.Fatalf("state hotspot count not updated, got %d", count)
	}
	if riskState.LatestWeather() != weather {
		t.Fatalf("state weather not updated")
	}
	trend := riskState.Trend()
	last := trend[len(trend)-1]
	if last.Temperature != 31.4 || last.Humidity != 22 {
		t.Fatalf("trend point not appended: %+v", last)
	}
}

func TestRefreshWithFailingProvidersUpdatesStateWithSimulatedSample(t *testing.T) {
	riskState := state.New(time.Now())
	fetcher := NewFetcher(nil,
		&fakeHotspotSource{err: errors.New("firms returned 500 Internal Server Error")},
		&fakeWeatherSource{err: errors.New("openweather returned 500 Internal Server Error")},
		riskState)

	snapshot := fetcher.Refresh(context.Background(), "Nagpur", "2026-08-31", "2026-09-01")
	if snapshot.HotspotCount < 5 || snapshot.HotspotCount > 50 {
		t.Fatalf("simulated hotspot count %d outside [5,50]", snapshot.HotspotCount)
	}

	stored := riskState.LatestWeather()
	if stored != snapshot.Weather {
		t.Fatalf("state not updated with simulated sample: stored=%+v snapshot=%+v", stored, snapshot.Weather)
	}
	if stored.Humidity < 10 || stored.Humidity > 60 {
		t.Fatalf("simulated humidity %f outside [10,60]", stored.Humidity)
	}
}
