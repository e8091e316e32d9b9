package kpi

import (
	"time"

	maintenance "equipcare-cloud/internal/maintenance/domain"
	masterdata "equipcare-cloud/internal/masterdata/domain"
)

const millisPerHour = 3_600_000

// AssetHistory is one asset together with its window-bounded records,
// as returned by the persistence collaborator. Records are ordered by
// completion time descending.
type AssetHistory struct {
	Asset      masterdata.Asset
	WorkOrders []maintenance.WorkOrder
	Records    []maintenance.Record
}

// AssetMetrics is the per-asset result of one KPI computation. It is
// ephemeral: computed per request, never persisted.
type AssetMetrics struct {
	AssetID                    string     `json:"asset_id"`
	Code                       string     `json:"code"`
	Name                       string     `json:"name"`
	Location                   string     `json:"location,omitempty"`
	TotalDowntimeHours         float64    `json:"total_downtime_hours"`
	DowntimeIncidents          int        `json:"downtime_incidents"`
	AverageDowntimePerIncident float64    `json:"average_downtime_per_incident"`
	FaultFrequency             int        `json:"fault_frequency"`
	MaintenanceCost            float64    `json:"maintenance_cost"`
	HealthScore                float64    `json:"health_score"`
	LastMaintenanceDate        *time.Time `json:"last_maintenance_date,omitempty"`
}

// Aggregate reduces one asset's bounded record sets into raw metrics.
// Cost and health score are left zero; the Calculator fills them in.
//
// Downtime sums reported-to-completed spans over qualifying work orders
// (completed, both timestamps, non-negative span). The incident count
// covers exactly the summed spans and doubles as the fault frequency.
// The last maintenance date is the head of the descending record list.
func Aggregate(history AssetHistory) AssetMetrics {
	metrics := AssetMetrics{
		AssetID:  history.Asset.ID,
		Code:     history.Asset.Code,
		Name:     history.Asset.Name,
		Location: history.Asset.Location,
	}

	var totalDowntimeMs int64
	for _, order := range history.WorkOrders {
		span, ok := order.Downtime()
		if !ok {
			continue
		}
		totalDowntimeMs += span.Milliseconds()
		metrics.DowntimeIncidents++
	}
	metrics.TotalDowntimeHours = float64(totalDowntimeMs) / millisPerHour
	metrics.FaultFrequency = metrics.DowntimeIncidents
	if metrics.DowntimeIncidents > 0 {
		metrics.AverageDowntimePerIncident = metrics.TotalDowntimeHours / float64(metrics.DowntimeIncidents)
	}

	if len(history.Records) > 0 {
		last := history.Records[0].CompletedAt
		metrics.LastMaintenanceDate = &last
	}

	return metrics
}
