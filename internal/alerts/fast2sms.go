package alerts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wildfirestack/wildfire-engine/internal/models"
)

// Fast2SMSChannel delivers SMS through the Fast2SMS bulk endpoint. Any
// non-acknowledged send is a recoverable failure that triggers the offline
// fallback; it is never fatal.
type Fast2SMSChannel struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewFast2SMSChannel constructs the online SMS channel.
func NewFast2SMSChannel(endpoint, apiKey string, timeout time.Duration) *Fast2SMSChannel {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Fast2SMSChannel{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name identifies the online SMS channel.
func (c *Fast2SMSChannel) Name() models.AlertChannel { return models.ChannelOnlineSMS }

// Send posts the message to the bulk endpoint. Success requires HTTP 200
// and a {"return": true} envelope.
func (c *Fast2SMSChannel) Send(ctx context.Context, req models.AlertRequest) models.AlertOutcome {
	if c.apiKey == "" {
		return models.AlertOutcome{Channel: c.Name(), Success: false, Detail: "Fast2SMS API key missing"}
	}

	form := url.Values{}
	form.Set("message", req.Message)
	form.Set("language", "english")
	form.Set("route", "q")
	form.Set("numbers", req.PhoneNumber)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return models.AlertOutcome{Channel: c.Name(), Success: false, Detail: err.Error()}
	}
	httpReq.Header.Set("authorization", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return models.AlertOutcome{Channel: c.Name(), Success: false, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.AlertOutcome{Channel: c.Name(), Success: false, Detail: "Fast2SMS returned " + resp.Status}
	}

	var envelope struct {
		Return  bool   `json:"return"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return models.AlertOutcome{Channel: c.Name(), Success: false, Detail: "decode response: " + err.Error()}
	}
	if !envelope.Return {
		detail := envelope.Message
		if detail == "" {
			detail = "Fast2SMS error"
		}
		return models.AlertOutcome{Channel: c.Name(), Success: false, Detail: detail}
	}

	return models.AlertOutcome{Channel: c.Name(), Success: true, Detail: "Online SMS sent"}
}
