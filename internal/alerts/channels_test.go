package alerts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wildfirestack/wildfire-engine/internal/models"
)

func TestFast2SMSSendSuccess(t *testing.T) {
	var gotAuth, gotNumbers, gotRoute string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotAuth = r.Header.Get("authorization")
		gotNumbers = r.PostFormValue("numbers")
		gotRoute = r.PostFormValue("route")
		_ = json.NewEncoder(w).Encode(map[string]any{"return": true})
	}))
	defer server.Close()

	channel := NewFast2SMSChannel(server.URL, "test-key", time.Second)
	outcome := channel.Send(context.Background(), models.AlertRequest{
		Message:     "URGENT: High Wildfire Risk detected! Confidence: 97.50%",
		PhoneNumber: "8591556205",
	})

	if !outcome.Success || outcome.Detail != "Online SMS sent" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if gotAuth != "test-key" {
		t.Fatalf("authorization header %q", gotAuth)
	}
	if gotNumbers != "8591556205" || gotRoute != "q" {
		t.Fatalf("form values numbers=%q route=%q", gotNumbers, gotRoute)
	}
}

func TestFast2SMSSendFailures(t *testing.T) {
	cases := []struct {
		name       string
		apiKey     string
		handler    http.HandlerFunc
		wantDetail string
	}{
		{
			name:       "missing key short-circuits",
			apiKey:     "",
			handler:    func(w http.ResponseWriter, r *http.Request) { t.Fatal("no request expected") },
			wantDetail: "Fast2SMS API key missing",
		},
		{
			name:   "provider rejection",
			apiKey: "test-key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]any{"return": false, "message": "invalid number"})
			},
			wantDetail: "invalid number",
		},
		{
			name:   "non-200 status",
			apiKey: "test-key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			wantDetail: "Fast2SMS returned 503 Service Unavailable",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			channel := NewFast2SMSChannel(server.URL, tc.apiKey, time.Second)
			outcome := channel.Send(context.Background(), models.AlertRequest{PhoneNumber: "8591556205"})
			if outcome.Success {
				t.Fatalf("expected failure, got %+v", outcome)
			}
			if outcome.Detail != tc.wantDetail {
				t.Fatalf("detail %q, want %q", outcome.Detail, tc.wantDetail)
			}
			if outcome.Channel != models.ChannelOnlineSMS {
				t.Fatalf("unexpected channel %s", outcome.Channel)
			}
		})
	}
}

func TestGSMChannelAlwaysSimulatesSuccess(t *testing.T) {
	channel := NewGSMChannel(nil)
	outcome := channel.Send(context.Background(), models.AlertRequest{PhoneNumber: "8591556205", Message: "test"})
	if !outcome.Success {
		t.Fatalf("GSM stub must report success, got %+v", outcome)
	}
	if outcome.Detail != "Simulated GSM SMS" {
		t.Fatalf("unexpected detail %q", outcome.Detail)
	}
	if outcome.Channel != models.ChannelOfflineSMS {
		t.Fatalf("unexpected channel %s", outcome.Channel)
	}
}

func TestTelegramSendSuccess(t *testing.T) {
	var gotPath string
	var gotPayload map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer server.Close()

	channel := NewTelegramChannel(server.URL, "bot-token", "chat-42", time.Second)
	outcome := channel.Send(context.Background(), models.AlertRequest{Message: "*Wildfire Alert*"})

	if !outcome.Success || outcome.Detail != "Telegram Alert Sent" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if gotPath != "/botbot-token/sendMessage" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotPayload["chat_id"] != "chat-42" || gotPayload["parse_mode"] != "Markdown" {
		t.Fatalf("unexpected payload %+v", gotPayload)
	}
}

func TestTelegramSkippedWhenUnconfigured(t *testing.T) {
	channel := NewTelegramChannel("https://api.telegram.org", "", "", time.Second)
	outcome := channel.Send(context.Background(), models.AlertRequest{Message: "test"})
	if outcome.Success {
		t.Fatalf("expected config-missing skip, got %+v", outcome)
	}
	if outcome.Detail != "Telegram config missing" {
		t.Fatalf("unexpected detail %q", outcome.Detail)
	}
}

func TestTelegramReportsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "description": "chat not found"})
	}))
	defer server.Close()

	channel := NewTelegramChannel(server.URL, "bot-token", "chat-42", time.Second)
	outcome := channel.Send(context.Background(), models.AlertRequest{Message: "test"})
	if outcome.Success || outcome.Detail != "Telegram Error: chat not found" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}
