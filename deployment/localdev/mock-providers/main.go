package main

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

type hotspot struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Brightness float64 `json:"brightness"`
	AcqDate    string  `json:"acq_date"`
	Confidence int     `json:"confidence"`
}

func main() {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// FIRMS country feed: /api/country/json/<key>/<source>/<country>/<days>
	mux.HandleFunc("/api/country/json/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 7 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		today := time.Now().Format("2006-01-02")
		records := make([]hotspot, 0, 12)
		for i := 0; i < 12; i++ {
			records = append(records, hotspot{
				Latitude:   15 + rand.Float64()*10,
				Longitude:  70 + rand.Float64()*15,
				Brightness: 300 + rand.Float64()*200,
				AcqDate:    today,
				Confidence: 40 + rand.Intn(61),
			})
		}
		writeJSON(w, records)
	})

	// OpenWeather current conditions.
	mux.HandleFunc("/data/2.5/weather", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("appid") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, map[string]any{
			"main": map[string]any{"temp": 34.2, "humidity": 22},
			"wind": map[string]any{"speed": 6.1},
			"rain": map[string]any{"1h": 0.4},
		})
	})

	// Fast2SMS bulk endpoint.
	mux.HandleFunc("/dev/bulkV2", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("authorization") == "" {
			writeJSON(w, map[string]any{"return": false, "message": "missing api key"})
			return
		}
		writeJSON(w, map[string]any{"return": true})
	})

	// Telegram bot API: /bot<token>/sendMessage
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/bot") && strings.HasSuffix(r.URL.Path, "/sendMessage") {
			var payload struct {
				ChatID string `json:"chat_id"`
				Text   string `json:"text"`
			}
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ChatID == "" {
				writeJSON(w, map[string]any{"ok": false, "description": "bad request"})
				return
			}
			writeJSON(w, map[string]any{"ok": true})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	logger := log.New(log.Writer(), "providers-mock ", log.LstdFlags|log.Lmicroseconds)
	srv := &http.Server{
		Addr:    ":8081",
		Handler: logRequests(logger, mux),
	}

	logger.Println("listening on :8081")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("server error: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func logRequests(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		logger.Printf("%s %s %d %s", r.Method, r.URL.Path, rw.status, time.Since(start))
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
