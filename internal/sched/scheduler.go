// Package sched drives periodic background telemetry refreshes so the risk
// state stays warm between dashboard-triggered fetches.
package sched

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/wildfirestack/wildfire-engine/internal/telemetry"
)

// Scheduler wraps a cron runner around the telemetry fetcher.
type Scheduler struct {
	logger  *slog.Logger
	cron    *cron.Cron
	fetcher *telemetry.Fetcher
	region  string
}

// New constructs a Scheduler refreshing telemetry for region on the given
// cron spec (e.g. "@every 15m").
func New(logger *slog.Logger, fetcher *telemetry.Fetcher, region, spec string) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{
		logger:  logger,
		cron:    cron.New(),
		fetcher: fetcher,
		region:  region,
	}

	if _, err := s.cron.AddFunc(spec, s.refresh); err != nil {
		return nil, fmt.Errorf("schedule telemetry refresh: %w", err)
	}
	return s, nil
}

// Start begins the cron loop.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("telemetry refresh scheduled", slog.String("region", s.region))
}

// Stop halts the cron loop and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	snapshot := s.fetcher.Refresh(ctx, s.region,
		now.AddDate(0, 0, -1).Format("2006-01-02"),
		now.Format("2006-01-02"))
	s.logger.Info("background telemetry refresh",
		slog.String("region", s.region),
		slog.Int("hotspots", snapshot.HotspotCount))
}
