package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"equipcare-cloud/internal/analytics/application"
	"equipcare-cloud/internal/analytics/domain/kpi"
	kpihttp "equipcare-cloud/internal/analytics/interfaces/http"
	"equipcare-cloud/internal/audit"
	"equipcare-cloud/internal/auth"
	"equipcare-cloud/internal/observability/metrics"
)

const exportPathPrefix = "/api/v1/exports/health-report."

// ExportHandler serves health-report downloads.
type ExportHandler struct {
	service *application.KPIService
	clock   application.Clock
	auditor audit.Logger
}

// NewExportHandler constructs an export handler. The audit logger may
// be nil.
func NewExportHandler(service *application.KPIService, clock application.Clock, auditor audit.Logger) (*ExportHandler, error) {
	if service == nil {
		return nil, errors.New("export handler: nil service")
	}
	if clock == nil {
		clock = application.SystemClock{}
	}
	return &ExportHandler{service: service, clock: clock, auditor: auditor}, nil
}

// ServeHTTP handles /api/v1/exports/health-report.{xlsx,pdf}.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	format := strings.TrimPrefix(r.URL.Path, exportPathPrefix)
	if format != "xlsx" && format != "pdf" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	filter := kpihttp.FilterFromQuery(r)
	start := time.Now()
	report, err := h.buildReport(r, filter)
	if err != nil {
		metrics.ObserveExport(format, metrics.ResultError, time.Since(start))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var (
		data        []byte
		contentType string
	)
	switch format {
	case "xlsx":
		data, err = BuildHealthReportXLSX(report)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		data, err = BuildHealthReportPDF(report)
		contentType = "application/pdf"
	}
	if err != nil {
		metrics.ObserveExport(format, metrics.ResultError, time.Since(start))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	metrics.ObserveExport(format, metrics.ResultSuccess, time.Since(start))

	h.logAudit(r, format, filter)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="health-report.`+format+`"`)
	_, _ = w.Write(data)
}

func (h *ExportHandler) buildReport(r *http.Request, filter kpi.Filter) (HealthReport, error) {
	summary, err := h.service.HealthOverview(r.Context(), filter)
	if err != nil {
		return HealthReport{}, err
	}
	downtime, err := h.service.DowntimeRanking(r.Context(), filter)
	if err != nil {
		return HealthReport{}, err
	}
	cost, err := h.service.CostRanking(r.Context(), filter)
	if err != nil {
		return HealthReport{}, err
	}
	return HealthReport{
		GeneratedAt:     h.clock.Now(),
		Summary:         summary,
		DowntimeRanking: downtime,
		CostRanking:     cost,
	}, nil
}

func (h *ExportHandler) logAudit(r *http.Request, format string, filter kpi.Filter) {
	if h.auditor == nil {
		return
	}
	meta, _ := json.Marshal(map[string]any{
		"format":     format,
		"location":   filter.Location,
		"asset_type": filter.AssetType,
		"time_range": string(filter.TimeRange),
	})
	_ = h.auditor.Log(r.Context(), audit.Entry{
		TenantID:     auth.TenantIDFromContext(r.Context()),
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       "export.health_report",
		ResourceType: "health_report",
		ResourceID:   format,
		Metadata:     meta,
		IP:           r.RemoteAddr,
		UserAgent:    r.UserAgent(),
	})
}
