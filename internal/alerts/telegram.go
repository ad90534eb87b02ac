package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/wildfirestack/wildfire-engine/internal/models"
)

// TelegramChannel broadcasts alerts to a Telegram chat via the bot API. It
// is independent of the phone channels: skipped when unconfigured, never
// retried, and its outcome never affects theirs.
type TelegramChannel struct {
	baseURL    string
	botToken   string
	chatID     string
	httpClient *http.Client
}

// NewTelegramChannel constructs the broadcast channel.
func NewTelegramChannel(baseURL, botToken, chatID string, timeout time.Duration) *TelegramChannel {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &TelegramChannel{
		baseURL:    strings.TrimRight(baseURL, "/"),
		botToken:   botToken,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name identifies the broadcast channel.
func (c *TelegramChannel) Name() models.AlertChannel { return models.ChannelBroadcast }

// Send posts the message to the bot sendMessage endpoint. Success requires
// an {"ok": true} envelope.
func (c *TelegramChannel) Send(ctx context.Context, req models.AlertRequest) models.AlertOutcome {
	if c.botToken == "" || c.chatID == "" {
		return models.AlertOutcome{Channel: c.Name(), Success: false, Detail: "Telegram config missing"}
	}

	payload := map[string]string{
		"chat_id":    c.chatID,
		"text":       req.Message,
		"parse_mode": "Markdown",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return models.AlertOutcome{Channel: c.Name(), Success: false, Detail: err.Error()}
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return models.AlertOutcome{Channel: c.Name(), Success: false, Detail: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return models.AlertOutcome{Channel: c.Name(), Success: false, Detail: "Connection Error: " + err.Error()}
	}
	defer resp.Body.Close()

	var envelope struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return models.AlertOutcome{Channel: c.Name(), Success: false, Detail: "decode response: " + err.Error()}
	}
	if !envelope.OK {
		return models.AlertOutcome{Channel: c.Name(), Success: false, Detail: "Telegram Error: " + envelope.Description}
	}

	return models.AlertOutcome{Channel: c.Name(), Success: true, Detail: "Telegram Alert Sent"}
}
