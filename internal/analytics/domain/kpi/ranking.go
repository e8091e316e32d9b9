package kpi

import "sort"

// Default result caps per view.
const (
	DefaultDowntimeLimit       = 5
	DefaultFaultFrequencyLimit = 5
	DefaultCostLimit           = 10
	DefaultPerformanceLimit    = 10
	DefaultCriticalLimit       = 5

	// OverviewSampleCap bounds how many assets the health overview
	// samples for issue counts and the average score.
	OverviewSampleCap = 100
)

// Rank applies the generic view contract: keep-filter, stable sort,
// length cap. Items with equal sort keys retain their input order; the
// input order comes from the persistence fetch and is the tie-break
// source of truth. A non-positive limit means uncapped.
func Rank(items []AssetMetrics, keep func(AssetMetrics) bool, less func(a, b AssetMetrics) bool, limit int) []AssetMetrics {
	result := make([]AssetMetrics, 0, len(items))
	for _, item := range items {
		if keep != nil && !keep(item) {
			continue
		}
		result = append(result, item)
	}
	if less != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return less(result[i], result[j])
		})
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// TopByDowntime ranks assets by total downtime hours descending.
func TopByDowntime(items []AssetMetrics, limit int) []AssetMetrics {
	if limit <= 0 {
		limit = DefaultDowntimeLimit
	}
	return Rank(items, nil, func(a, b AssetMetrics) bool {
		return a.TotalDowntimeHours > b.TotalDowntimeHours
	}, limit)
}

// TopByFaultFrequency ranks assets by fault count descending.
func TopByFaultFrequency(items []AssetMetrics, limit int) []AssetMetrics {
	if limit <= 0 {
		limit = DefaultFaultFrequencyLimit
	}
	return Rank(items, nil, func(a, b AssetMetrics) bool {
		return a.FaultFrequency > b.FaultFrequency
	}, limit)
}

// TopByMaintenanceCost ranks assets by estimated cost descending.
func TopByMaintenanceCost(items []AssetMetrics, limit int) []AssetMetrics {
	if limit <= 0 {
		limit = DefaultCostLimit
	}
	return Rank(items, nil, func(a, b AssetMetrics) bool {
		return a.MaintenanceCost > b.MaintenanceCost
	}, limit)
}

// WorstPerformers ranks assets by raw downtime hours descending. Same
// sort key as TopByDowntime, wider default cap.
func WorstPerformers(items []AssetMetrics, limit int) []AssetMetrics {
	if limit <= 0 {
		limit = DefaultPerformanceLimit
	}
	return Rank(items, nil, func(a, b AssetMetrics) bool {
		return a.TotalDowntimeHours > b.TotalDowntimeHours
	}, limit)
}

// CriticalAssets keeps assets strictly below the critical threshold and
// orders them worst-first (health score ascending).
func CriticalAssets(items []AssetMetrics, calc Calculator, limit int) []AssetMetrics {
	if limit <= 0 {
		limit = DefaultCriticalLimit
	}
	return Rank(items, func(m AssetMetrics) bool {
		return calc.IsCritical(m.HealthScore)
	}, func(a, b AssetMetrics) bool {
		return a.HealthScore < b.HealthScore
	}, limit)
}
