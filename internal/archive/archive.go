// Package archive persists telemetry snapshots and alert dispatch records in
// Postgres for later analysis. It is an observability sidecar: writes are
// best-effort and the request path never depends on it.
package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/wildfirestack/wildfire-engine/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS telemetry_snapshots (
	id             BIGSERIAL PRIMARY KEY,
	region         TEXT NOT NULL,
	hotspot_count  INTEGER NOT NULL,
	temperature    DOUBLE PRECISION NOT NULL,
	humidity       DOUBLE PRECISION NOT NULL,
	wind_speed_kmh DOUBLE PRECISION NOT NULL,
	rainfall_mm    DOUBLE PRECISION NOT NULL,
	ndvi           DOUBLE PRECISION NOT NULL,
	fetched_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS alert_dispatches (
	id            BIGSERIAL PRIMARY KEY,
	region        TEXT NOT NULL,
	channel       TEXT NOT NULL,
	success       BOOLEAN NOT NULL,
	detail        TEXT NOT NULL,
	dispatched_at TIMESTAMPTZ NOT NULL
);`

// Archive wraps the Postgres connection. A nil *Archive disables archiving.
type Archive struct {
	db *sqlx.DB
}

// New connects to Postgres and ensures the schema exists.
func New(dsn string) (*Archive, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect archive: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// RecordSnapshot stores one telemetry fetch result.
func (a *Archive) RecordSnapshot(ctx context.Context, region string, hotspotCount int, weather models.WeatherSample, at time.Time) error {
	if a == nil {
		return nil
	}
	const query = `
		INSERT INTO telemetry_snapshots
			(region, hotspot_count, temperature, humidity, wind_speed_kmh, rainfall_mm, ndvi, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := a.db.ExecContext(ctx, query,
		region, hotspotCount,
		weather.Temperature, weather.Humidity, weather.WindSpeedKmh, weather.RainfallMm, weather.NDVI,
		at)
	if err != nil {
		return fmt.Errorf("record snapshot: %w", err)
	}
	return nil
}

// RecordDispatch stores one alert channel outcome.
func (a *Archive) RecordDispatch(ctx context.Context, region string, outcome models.AlertOutcome, at time.Time) error {
	if a == nil {
		return nil
	}
	const query = `
		INSERT INTO alert_dispatches (region, channel, success, detail, dispatched_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := a.db.ExecContext(ctx, query, region, string(outcome.Channel), outcome.Success, outcome.Detail, at)
	if err != nil {
		return fmt.Errorf("record dispatch: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (a *Archive) Close() error {
	if a == nil {
		return nil
	}
	return a.db.Close()
}
