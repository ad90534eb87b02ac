// Package services hosts the assessment facade consumed by the HTTP layer:
// telemetry refresh, risk evaluation with alert dispatch, and the opaque
// classifier hook.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wildfirestack/wildfire-engine/internal/metrics"
	"github.com/wildfirestack/wildfire-engine/internal/models"
	"github.com/wildfirestack/wildfire-engine/internal/state"
	"github.com/wildfirestack/wildfire-engine/internal/telemetry"
	"github.com/wildfirestack/wildfire-engine/internal/utils"
)

// ErrModelUnavailable signals that no trained classifier is loaded. It is a
// recoverable precondition the caller can address, not a crash.
var ErrModelUnavailable = errors.New("model not trained yet")

// Classifier is the opaque trained model. Predict returns the risk class
// (0/1/2) and per-class probabilities.
type Classifier interface {
	Predict(features models.WeatherSample) (class int, probabilities []float64, err error)
}

// AlertDispatcher runs the channel chain for one high-risk alert.
type AlertDispatcher interface {
	Dispatch(ctx context.Context, smsReq, broadcastReq models.AlertRequest) (sms, broadcast *models.AlertOutcome)
}

// Recorder archives telemetry and dispatch records, best-effort.
type Recorder interface {
	RecordSnapshot(ctx context.Context, region string, hotspotCount int, weather models.WeatherSample, at time.Time) error
	RecordDispatch(ctx context.Context, region string, outcome models.AlertOutcome, at time.Time) error
}

// EvaluateRequest carries one classification result into the orchestrator.
type EvaluateRequest struct {
	RiskClass   int
	Confidence  float64
	PhoneNumber string
	Region      string
}

// EvaluateResult is the orchestrator's combined answer. Outcome pointers are
// nil when no dispatch was attempted for that branch.
type EvaluateResult struct {
	RiskLevel        models.RiskLevel
	SMSOutcome       *models.AlertOutcome
	BroadcastOutcome *models.AlertOutcome
}

// PredictInput feeds the opaque classifier plus the alert routing fields.
type PredictInput struct {
	Features    models.WeatherSample
	PhoneNumber string
	Region      string
}

// PredictResult combines the classification with the dispatch outcomes.
type PredictResult struct {
	Prediction int
	Confidence float64
	EvaluateResult
}

// AssessmentService wires the fetcher, risk state, dispatcher, and
// classifier behind the inbound surface.
type AssessmentService struct {
	logger     *slog.Logger
	fetcher    *telemetry.Fetcher
	state      *state.RiskState
	dispatcher AlertDispatcher
	classifier Classifier
	archive    Recorder
	latencies  *utils.LatencyTracker
}

// NewAssessmentService constructs the facade. classifier and archive may be
// nil: a nil classifier surfaces ErrModelUnavailable from Predict, a nil
// archive disables persistence.
func NewAssessmentService(logger *slog.Logger, fetcher *telemetry.Fetcher, riskState *state.RiskState, dispatcher AlertDispatcher, classifier Classifier, archive Recorder) *AssessmentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssessmentService{
		logger:     logger,
		fetcher:    fetcher,
		state:      riskState,
		dispatcher: dispatcher,
		classifier: classifier,
		archive:    archive,
		latencies:  utils.NewLatencyTracker(1024),
	}
}

// FetchTelemetry refreshes hotspot and weather telemetry for a region.
// Provider failures resolve to simulated data inside the fetcher; the only
// errors here are argument errors.
func (s *AssessmentService) FetchTelemetry(ctx context.Context, region, fromDate, toDate string) (telemetry.Snapshot, error) {
	if region == "" {
		return telemetry.Snapshot{}, fmt.Errorf("region is required")
	}
	if fromDate == "" || toDate == "" {
		return telemetry.Snapshot{}, fmt.Errorf("from_date and to_date are required")
	}

	snapshot := s.fetcher.Refresh(ctx, region, fromDate, toDate)

	if s.archive != nil {
		if err := s.archive.RecordSnapshot(ctx, region, snapshot.HotspotCount, snapshot.Weather, time.Now()); err != nil {
			s.logger.Warn("archive snapshot failed", slog.Any("error", err))
		}
	}

	return snapshot, nil
}

// EvaluateAndAlert records the risk level and, for high risk only, drives
// the alert channel chain. Channel degradation is visible only in the
// returned outcomes; it never fails the request.
func (s *AssessmentService) EvaluateAndAlert(ctx context.Context, req EvaluateRequest) EvaluateResult {
	start := time.Now()

	level := models.RiskLevelFromClass(req.RiskClass)
	s.state.SetRiskLevel(level)

	result := EvaluateResult{RiskLevel: level}
	if level == models.RiskHigh {
		smsReq := models.AlertRequest{
			Message:     fmt.Sprintf("URGENT: High Wildfire Risk detected! Confidence: %.2f%%", req.Confidence),
			PhoneNumber: req.PhoneNumber,
			RegionLabel: req.Region,
		}
		broadcastReq := models.AlertRequest{
			Message:     broadcastMessage(req.Confidence, req.Region),
			RegionLabel: req.Region,
		}
		result.SMSOutcome, result.BroadcastOutcome = s.dispatcher.Dispatch(ctx, smsReq, broadcastReq)
		s.archiveOutcomes(ctx, req.Region, result.SMSOutcome, result.BroadcastOutcome)
	}

	duration := time.Since(start)
	metrics.ObserveAssessment(duration)
	s.latencies.Observe(duration)
	if count := s.latencies.Count(); count >= 20 && count%20 == 0 {
		s.logger.Info("assessment latency", slog.Duration("p95", s.latencies.Percentile(95)), slog.Int("samples", count))
	}

	return result
}

// Predict runs the opaque classifier and feeds its output into
// EvaluateAndAlert. A missing classifier surfaces ErrModelUnavailable.
func (s *AssessmentService) Predict(ctx context.Context, input PredictInput) (PredictResult, error) {
	if s.classifier == nil {
		return PredictResult{}, ErrModelUnavailable
	}

	class, probabilities, err := s.classifier.Predict(input.Features)
	if err != nil {
		return PredictResult{}, fmt.Errorf("classify: %w", err)
	}

	confidence := 0.0
	for _, p := range probabilities {
		if p*100 > confidence {
			confidence = p * 100
		}
	}

	result := s.EvaluateAndAlert(ctx, EvaluateRequest{
		RiskClass:   class,
		Confidence:  confidence,
		PhoneNumber: input.PhoneNumber,
		Region:      input.Region,
	})

	return PredictResult{
		Prediction:     class,
		Confidence:     confidence,
		EvaluateResult: result,
	}, nil
}

func (s *AssessmentService) archiveOutcomes(ctx context.Context, region string, outcomes ...*models.AlertOutcome) {
	if s.archive == nil {
		return
	}
	now := time.Now()
	for _, outcome := range outcomes {
		if outcome == nil {
			continue
		}
		if err := s.archive.RecordDispatch(ctx, region, *outcome, now); err != nil {
			s.logger.Warn("archive dispatch failed", slog.Any("error", err))
		}
	}
}

func broadcastMessage(confidence float64, region string) string {
	if region == "" {
		region = "Unknown Region"
	}
	return fmt.Sprintf("\U0001F525 *Wildfire Alert*\nRisk: *High*\nConfidence: *%.2f%%*\nLocation: %s", confidence, region)
}
