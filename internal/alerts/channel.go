// Package alerts implements the notification channels and the fallback
// dispatch chain: online SMS with an offline GSM fallback, plus an
// unconditional best-effort broadcast.
package alerts

import (
	"context"

	"github.com/wildfirestack/wildfire-engine/internal/models"
)

// Channel is a single notification delivery path. Send never returns an
// error; degradation is reported in the outcome so the orchestrator can
// return it alongside the assessment.
type Channel interface {
	Name() models.AlertChannel
	Send(ctx context.Context, req models.AlertRequest) models.AlertOutcome
}
