package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"insight-alpha/config"
	"insight-alpha/internal/app"
	"insight-alpha/models"
	"insight-alpha/services"

	"github.com/go-chi/chi/v5"
)

// Handler handles HTTP API requests
type Handler struct {
	app *app.App
	cfg *config.Config
}

// NewHandler creates a new Handler
func NewHandler(application *app.App, cfg *config.Config) *Handler {
	return &Handler{app: application, cfg: cfg}
}

// AnalyzeRequest represents a ticker analysis request
type AnalyzeRequest struct {
	Symbol string `json:"symbol"`
}

// HandleHealth returns the health status of the application
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
	}

	cbStatus := services.GetGlobalRegistry().Status()
	status["circuit_breakers"] = cbStatus

	for _, cb := range cbStatus {
		if cb.State == "open" {
			status["status"] = "degraded"
			break
		}
	}

	h.jsonResponse(w, http.StatusOK, status)
}

// HandleAnalyze runs the analysis pipeline for a ticker and returns the result
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest

	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.jsonError(w, "Invalid JSON request", http.StatusBadRequest)
			return
		}
	} else {
		_ = r.ParseForm()
		req.Symbol = r.FormValue("symbol")
	}

	if strings.TrimSpace(req.Symbol) == "" {
		h.jsonError(w, "Symbol is required", http.StatusBadRequest)
		return
	}

	analysis, err := h.app.AnalyzeTicker(r.Context(), req.Symbol)
	if err != nil {
		h.analysisError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, analysis)
}

// HandleReport runs an analysis and streams the summary workbook as a download
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		h.jsonError(w, "Ticker is required", http.StatusBadRequest)
		return
	}

	data, analysis, err := h.app.BuildReport(r.Context(), ticker)
	if err != nil {
		h.analysisError(w, err)
		return
	}

	filename := fmt.Sprintf("%s_analysis.xlsx", analysis.Ticker)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// analysisError maps pipeline errors to HTTP status codes
func (h *Handler) analysisError(w http.ResponseWriter, err error) {
	switch {
	case models.IsValidation(err):
		h.jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrTickerNotFound):
		h.jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, app.ErrBusy):
		h.jsonError(w, err.Error(), http.StatusServiceUnavailable)
	default:
		h.jsonError(w, err.Error(), http.StatusBadGateway)
	}
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
