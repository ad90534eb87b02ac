package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/wildfirestack/wildfire-engine/internal/models"
	"github.com/wildfirestack/wildfire-engine/internal/services"
	"github.com/wildfirestack/wildfire-engine/internal/state"
)

// Handlers exposes the assessment surface as JSON endpoints for the web
// layer.
type Handlers struct {
	logger  *slog.Logger
	service *services.AssessmentService
	state   *state.RiskState
}

// NewHandlers constructs the endpoint set.
func NewHandlers(logger *slog.Logger, service *services.AssessmentService, riskState *state.RiskState) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{logger: logger, service: service, state: riskState}
}

// Routes builds the HTTP mux.
func (h *Handlers) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.health)
	mux.HandleFunc("/api/v1/dashboard/stats", h.dashboardStats)
	mux.HandleFunc("/api/v1/weather/trends", h.weatherTrends)
	mux.HandleFunc("/api/v1/telemetry/fetch", h.fetchTelemetry)
	mux.HandleFunc("/api/v1/assess", h.assess)
	mux.HandleFunc("/api/v1/predict", h.predict)
	return mux
}

func (h *Handlers) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) dashboardStats(w http.ResponseWriter, r *http.Request) {
	if !enforceMethod(w, r, http.MethodGet) {
		return
	}
	count, level := h.state.Summary()
	h.writeJSON(w, http.StatusOK, map[string]any{
		"active_hotspots": count,
		"global_risk":     level,
	})
}

func (h *Handlers) weatherTrends(w http.ResponseWriter, r *http.Request) {
	if !enforceMethod(w, r, http.MethodGet) {
		return
	}
	h.writeJSON(w, http.StatusOK, h.state.Trend())
}

func (h *Handlers) fetchTelemetry(w http.ResponseWriter, r *http.Request) {
	if !enforceMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Region   string `json:"region"`
		FromDate string `json:"from_date"`
		ToDate   string `json:"to_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snapshot, err := h.service.FetchTelemetry(r.Context(), req.Region, req.FromDate, req.ToDate)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"firms_count":  snapshot.HotspotCount,
		"weather_data": snapshot.Weather,
	})
}

func (h *Handlers) assess(w http.ResponseWriter, r *http.Request) {
	if !enforceMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		RiskClass   int     `json:"risk_class"`
		Confidence  float64 `json:"confidence"`
		PhoneNumber string  `json:"phone_number"`
		Region      string  `json:"region"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.service.EvaluateAndAlert(r.Context(), services.EvaluateRequest{
		RiskClass:   req.RiskClass,
		Confidence:  req.Confidence,
		PhoneNumber: req.PhoneNumber,
		Region:      req.Region,
	})

	h.writeJSON(w, http.StatusOK, evaluateResponse(result))
}

func (h *Handlers) predict(w http.ResponseWriter, r *http.Request) {
	if !enforceMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Temperature float64 `json:"temperature"`
		Humidity    float64 `json:"humidity"`
		WindSpeed   float64 `json:"wind_speed"`
		Rainfall    float64 `json:"rainfall"`
		NDVI        float64 `json:"ndvi"`
		PhoneNumber string  `json:"phone_number"`
		Region      string  `json:"region"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Predict(r.Context(), services.PredictInput{
		Features: models.WeatherSample{
			Temperature:  req.Temperature,
			Humidity:     req.Humidity,
			WindSpeedKmh: req.WindSpeed,
			RainfallMm:   req.Rainfall,
			NDVI:         req.NDVI,
		},
		PhoneNumber: req.PhoneNumber,
		Region:      req.Region,
	})
	if err != nil {
		if errors.Is(err, services.ErrModelUnavailable) {
			h.writeError(w, http.StatusServiceUnavailable, services.ErrModelUnavailable.Error())
			return
		}
		h.logger.Error("prediction failed", slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, "prediction failed")
		return
	}

	response := evaluateResponse(result.EvaluateResult)
	response["prediction"] = result.Prediction
	response["confidence"] = fmt.Sprintf("%.2f%%", result.Confidence)
	h.writeJSON(w, http.StatusOK, response)
}

func evaluateResponse(result services.EvaluateResult) map[string]any {
	response := map[string]any{
		"risk_level":       result.RiskLevel,
		"sms_outcome":      nil,
		"telegram_outcome": nil,
	}
	if result.SMSOutcome != nil {
		response["sms_outcome"] = result.SMSOutcome
	}
	if result.BroadcastOutcome != nil {
		response["telegram_outcome"] = result.BroadcastOutcome
	}
	return response
}

func enforceMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("encode response", slog.Any("error", err))
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
