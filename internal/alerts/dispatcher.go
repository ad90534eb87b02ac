package alerts

import (
	"context"
	"log/slog"
	"sync"

	"github.com/wildfirestack/wildfire-engine/internal/metrics"
	"github.com/wildfirestack/wildfire-engine/internal/models"
)

// Dispatcher composes the channels into the delivery policy: a sequential
// online→offline fallback for phone-targeted SMS, and a broadcast branch
// that runs unconditionally and in parallel with it.
type Dispatcher struct {
	logger    *slog.Logger
	online    Channel
	offline   Channel
	broadcast Channel
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(logger *slog.Logger, online, offline, broadcast Channel) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		logger:    logger,
		online:    online,
		offline:   offline,
		broadcast: broadcast,
	}
}

// SendSMS attempts online delivery first and falls back to the offline
// channel if and only if the online attempt fails. The offline channel is
// invoked exactly once per fallback.
func (d *Dispatcher) SendSMS(ctx context.Context, req models.AlertRequest) models.AlertOutcome {
	outcome := d.online.Send(ctx, req)
	metrics.ObserveAlertDispatch(string(outcome.Channel), outcome.Success)
	if outcome.Success {
		return outcome
	}

	d.logger.Warn("online SMS failed, switching to GSM", slog.String("detail", outcome.Detail))
	outcome = d.offline.Send(ctx, req)
	metrics.ObserveAlertDispatch(string(outcome.Channel), outcome.Success)
	return outcome
}

// Dispatch runs the full delivery policy for one alert. The phone sequence
// and the broadcast carry separately formatted messages; the SMS outcome is
// nil when smsReq has no phone number, the broadcast outcome is always
// present. Both branches complete before Dispatch returns.
func (d *Dispatcher) Dispatch(ctx context.Context, smsReq, broadcastReq models.AlertRequest) (sms, broadcast *models.AlertOutcome) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		outcome := d.broadcast.Send(ctx, broadcastReq)
		metrics.ObserveAlertDispatch(string(outcome.Channel), outcome.Success)
		broadcast = &outcome
	}()

	if smsReq.PhoneNumber != "" {
		outcome := d.SendSMS(ctx, smsReq)
		sms = &outcome
	}

	wg.Wait()
	return sms, broadcast
}
