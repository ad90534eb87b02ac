package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// SourceLive labels telemetry served from the upstream provider.
	SourceLive = "live"
	// SourceSimulated labels telemetry served by the fallback generator.
	SourceSimulated = "simulated"

	// SignalHotspots and SignalWeather partition telemetry fetches.
	SignalHotspots = "hotspots"
	SignalWeather  = "weather"

	// OutcomeSuccess and OutcomeFailure partition alert dispatches.
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	telemetryFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wildfire_engine",
			Name:      "telemetry_fetches_total",
			Help:      "Telemetry fetches, partitioned by signal and data source.",
		},
		[]string{"signal", "source"},
	)

	alertDispatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wildfire_engine",
			Name:      "alert_dispatches_total",
			Help:      "Alert channel attempts, partitioned by channel and outcome.",
		},
		[]string{"channel", "outcome"},
	)

	assessmentDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wildfire_engine",
			Name:      "assessment_seconds",
			Help:      "Assessment latency in seconds, dispatch included.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 10},
		},
	)
)

// Register attaches the engine's collectors to the supplied registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		telemetryFetchesTotal,
		alertDispatchesTotal,
		assessmentDurationSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveTelemetryFetch records one telemetry fetch and where the data came
// from.
func ObserveTelemetryFetch(signal, source string) {
	telemetryFetchesTotal.WithLabelValues(signal, source).Inc()
}

// ObserveAlertDispatch records one channel attempt.
func ObserveAlertDispatch(channel string, success bool) {
	outcome := OutcomeFailure
	if success {
		outcome = OutcomeSuccess
	}
	alertDispatchesTotal.WithLabelValues(channel, outcome).Inc()
}

// ObserveAssessment records the latency of one assessment request.
func ObserveAssessment(duration time.Duration) {
	if duration < 0 {
		duration = 0
	}
	assessmentDurationSeconds.Observe(duration.Seconds())
}
