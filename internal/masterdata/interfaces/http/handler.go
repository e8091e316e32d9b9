package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"equipcare-cloud/internal/masterdata/application"
	"equipcare-cloud/internal/observability/metrics"
)

// Handler provides asset suggestion and code-validation endpoints.
type Handler struct {
	service *application.SuggestionService
}

// NewHandler constructs a handler.
func NewHandler(service *application.SuggestionService) (*Handler, error) {
	if service == nil {
		return nil, errors.New("assets handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP handles /api/v1/assets subroutes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/v1/assets/suggest":
		h.handleSuggest(w, r)
	case "/api/v1/assets/validate-code":
		h.handleValidate(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleSuggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	input := query.Get("q")
	location := query.Get("location")
	activeOnly := query.Get("active") == "true"
	limit := 0
	if parsed, err := strconv.Atoi(query.Get("limit")); err == nil {
		limit = parsed
	}

	start := time.Now()
	assets, err := h.service.Suggest(r.Context(), input, location, activeOnly, limit)
	if err != nil {
		metrics.ObserveSuggestion(metrics.ResultError, time.Since(start))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	metrics.ObserveSuggestion(metrics.ResultSuccess, time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(assets)
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ValidateCode(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}
