package repo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWeatherClientFetchMapsResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/weather" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "Nagpur,IN" {
			t.Errorf("unexpected region query %q", q.Get("q"))
		}
		if q.Get("units") != "metric" {
			t.Errorf("unexpected units %q", q.Get("units"))
		}
		if q.Get("appid") != "ow-key" {
			t.Errorf("unexpected appid %q", q.Get("appid"))
		}
		_, _ = w.Write([]byte(`{
			"main": {"temp": 32.0, "humidity": 28},
			"wind": {"speed": 5.0},
			"rain": {"1h": 1.2}
		}`))
	}))
	defer server.Close()

	client := NewWeatherClient(server.URL, "ow-key", "", time.Second)

	sample, err := client.Fetch(context.Background(), "Nagpur")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if sample.Temperature != 32.0 || sample.Humidity != 28 {
		t.Fatalf("unexpected temp/humidity %+v", sample)
	}
	if sample.WindSpeedKmh != 18.0 {
		t.Fatalf("wind %f km/h, want 18 (5 m/s * 3.6)", sample.WindSpeedKmh)
	}
	if sample.RainfallMm != 1.2 {
		t.Fatalf("rainfall %f, want 1.2", sample.RainfallMm)
	}
	if sample.NDVI != 0.82 {
		t.Fatalf("ndvi %f, want 0.82", sample.NDVI)
	}
}

func TestWeatherClientDefaultsMissingRainfall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"main": {"temp": 25.5, "humidity": 40}, "wind": {"speed": 2.5}}`))
	}))
	defer server.Close()

	client := NewWeatherClient(server.URL, "ow-key", "", time.Second)

	sample, err := client.Fetch(context.Background(), "Nagpur")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if sample.RainfallMm != 0 {
		t.Fatalf("rainfall %f, want 0 when provider omits it", sample.RainfallMm)
	}
	if sample.WindSpeedKmh != 9.0 {
		t.Fatalf("wind %f, want 9", sample.WindSpeedKmh)
	}
	if sample.NDVI != 0.76 {
		t.Fatalf("ndvi %f, want 0.76", sample.NDVI)
	}
}

func TestWeatherClientPlaceholderKeyIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be contacted without a real key")
	}))
	defer server.Close()

	for _, key := range []string{"", "YOUR_OPENWEATHER_API_KEY_HERE"} {
		client := NewWeatherClient(server.URL, key, "", time.Second)
		_, err := client.Fetch(context.Background(), "Nagpur")
		if KindOf(err) != FailureUnavailable {
			t.Fatalf("key %q: kind %v, want unavailable", key, KindOf(err))
		}
	}
}

func TestWeatherClientBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "city not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewWeatherClient(server.URL, "ow-key", "", time.Second)
	_, err := client.Fetch(context.Background(), "Atlantis")
	if KindOf(err) != FailureBadResponse {
		t.Fatalf("kind %v, want bad response", KindOf(err))
	}
}
