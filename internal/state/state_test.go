package state

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/wildfirestack/wildfire-engine/internal/models"
)

func TestNewSeedsTrend(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	s := New(now)

	count, level := s.Summary()
	if count != 0 {
		t.Fatalf("expected zero hotspots, got %d", count)
	}
	if level != models.RiskLow {
		t.Fatalf("expected initial low risk, got %s", level)
	}

	trend := s.Trend()
	if len(trend) != 10 {
		t.Fatalf("expected 10 seed points, got %d", len(trend))
	}
	if trend[0].TimeLabel != "02:00" || trend[9].TimeLabel != "11:00" {
		t.Fatalf("unexpected seed labels: first=%s last=%s", trend[0].TimeLabel, trend[9].TimeLabel)
	}
	for _, p := range trend {
		if p.Temperature < 20 || p.Temperature > 30 {
			t.Fatalf("seed temperature %f outside [20,30]", p.Temperature)
		}
		if p.Humidity < 40 || p.Humidity > 60 {
			t.Fatalf("seed humidity %f outside [40,60]", p.Humidity)
		}
	}
}

func TestRecordTelemetryEvictsOldest(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	s := New(now)

	for i := 0; i < 20; i++ {
		at := now.Add(time.Duration(i) * time.Minute)
		s.RecordTelemetry(i, models.WeatherSample{Temperature: float64(i)}, at)
		if got := len(s.Trend()); got > 15 {
			t.Fatalf("trend grew to %d after append %d", got, i)
		}
	}

	trend := s.Trend()
	if len(trend) != 15 {
		t.Fatalf("expected trend at capacity 15, got %d", len(trend))
	}
	// 10 seeds + 20 appends = 30 points; the last 15 survive, oldest first.
	if trend[0].Temperature != 5 {
		t.Fatalf("expected oldest surviving point from append 5, got temp %f", trend[0].Temperature)
	}
	if trend[14].Temperature != 19 {
		t.Fatalf("expected newest point from append 19, got temp %f", trend[14].Temperature)
	}

	count, _ := s.Summary()
	if count != 19 {
		t.Fatalf("hotspot count not updated, got %d", count)
	}
	if s.LatestWeather().Temperature != 19 {
		t.Fatalf("latest weather not updated")
	}
}

func TestTrendReturnsSnapshotCopy(t *testing.T) {
	s := New(time.Now())
	snapshot := s.Trend()
	snapshot[0].TimeLabel = "mutated"
	if s.Trend()[0].TimeLabel == "mutated" {
		t.Fatal("Trend exposed internal slice")
	}
}

func TestConcurrentWritersPreserveCapacity(t *testing.T) {
	s := New(time.Now())
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				s.RecordTelemetry(i, models.WeatherSample{}, time.Now())
				s.SetRiskLevel(models.RiskLevelFromClass(i % 3))
				_ = fmt.Sprintf("%v", s.Trend())
			}
		}(w)
	}
	wg.Wait()

	if got := len(s.Trend()); got != 15 {
		t.Fatalf("expected trend at capacity after concurrent writes, got %d", got)
	}
}
