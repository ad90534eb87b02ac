package alerts

import (
	"context"
	"log/slog"

	"github.com/wildfirestack/wildfire-engine/internal/models"
)

// GSMChannel is the offline fallback of last resort. Real delivery needs a
// GSM modem (SIM800/SIM900 class) on a serial link; without attached
// hardware the channel reports a deterministic simulated success instead of
// silently doing nothing. A real serial driver is a drop-in replacement
// satisfying the same Send contract.
type GSMChannel struct {
	logger *slog.Logger
}

// NewGSMChannel constructs the offline SMS channel.
func NewGSMChannel(logger *slog.Logger) *GSMChannel {
	if logger == nil {
		logger = slog.Default()
	}
	return &GSMChannel{logger: logger}
}

// Name identifies the offline SMS channel.
func (c *GSMChannel) Name() models.AlertChannel { return models.ChannelOfflineSMS }

// Send logs the simulated delivery and always succeeds.
func (c *GSMChannel) Send(ctx context.Context, req models.AlertRequest) models.AlertOutcome {
	c.logger.Info("simulated offline SMS",
		slog.String("number", req.PhoneNumber),
		slog.String("message", req.Message))
	return models.AlertOutcome{Channel: c.Name(), Success: true, Detail: "Simulated GSM SMS"}
}
