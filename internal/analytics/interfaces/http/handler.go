package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"equipcare-cloud/internal/analytics/application"
	"equipcare-cloud/internal/analytics/domain/kpi"
	"equipcare-cloud/internal/observability/metrics"
)

const basePath = "/api/v1/kpi/"

// Handler provides KPI HTTP endpoints.
type Handler struct {
	service *application.KPIService
}

// NewHandler constructs a handler.
func NewHandler(service *application.KPIService) (*Handler, error) {
	if service == nil {
		return nil, errors.New("kpi handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP handles /api/v1/kpi/ subroutes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	view := strings.TrimPrefix(r.URL.Path, basePath)
	filter := FilterFromQuery(r)

	start := time.Now()
	var (
		payload any
		err     error
	)
	switch view {
	case "downtime":
		payload, err = h.service.DowntimeRanking(r.Context(), filter)
	case "faults":
		payload, err = h.service.FaultFrequencyRanking(r.Context(), filter)
	case "cost":
		payload, err = h.service.CostRanking(r.Context(), filter)
	case "performance":
		payload, err = h.service.PerformanceRanking(r.Context(), filter)
	case "critical":
		payload, err = h.service.CriticalAssets(r.Context(), filter)
	case "overview":
		payload, err = h.service.HealthOverview(r.Context(), filter)
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		metrics.ObserveKPIRequest(view, metrics.ResultError, time.Since(start))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	metrics.ObserveKPIRequest(view, metrics.ResultSuccess, time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// FilterFromQuery builds a KPI filter from query params. Malformed
// values are ignored rather than rejected: a bad date or limit leaves
// that field unset.
func FilterFromQuery(r *http.Request) kpi.Filter {
	query := r.URL.Query()
	filter := kpi.Filter{
		Location:  query.Get("location"),
		AssetType: query.Get("asset_type"),
	}
	if parsed, ok := parseDateParam(query.Get("start_date")); ok {
		filter.StartDate = &parsed
	}
	if parsed, ok := parseDateParam(query.Get("end_date")); ok {
		filter.EndDate = &parsed
	}
	if timeRange, ok := kpi.ParseTimeRange(query.Get("time_range")); ok {
		filter.TimeRange = timeRange
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		filter.Limit = limit
	}
	return filter
}

func parseDateParam(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.UTC(), true
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed.UTC(), true
	}
	return time.Time{}, false
}
