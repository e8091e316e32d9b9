package kpi

// AssetCounts carries fleet-wide counts independent of any sample.
type AssetCounts struct {
	Total  int
	Active int
}

// HealthSummary is the fleet-wide overview. Total and active counts are
// independent of the sample; issue counts, the average score, and the
// critical list are computed over the capped sample.
type HealthSummary struct {
	TotalAssets        int            `json:"total_assets"`
	ActiveAssets       int            `json:"active_assets"`
	AssetsWithIssues   int            `json:"assets_with_issues"`
	AverageHealthScore float64        `json:"average_health_score"`
	CriticalAssets     []AssetMetrics `json:"critical_assets"`
}

// Summarize builds the health overview from a scored sample. Samples
// longer than OverviewSampleCap are truncated before counting.
func Summarize(sample []AssetMetrics, totalAssets, activeAssets int, calc Calculator) HealthSummary {
	if len(sample) > OverviewSampleCap {
		sample = sample[:OverviewSampleCap]
	}

	summary := HealthSummary{
		TotalAssets:  totalAssets,
		ActiveAssets: activeAssets,
	}

	var scoreSum float64
	for _, metrics := range sample {
		scoreSum += metrics.HealthScore
		if calc.HasIssues(metrics.HealthScore) {
			summary.AssetsWithIssues++
		}
	}
	if len(sample) > 0 {
		summary.AverageHealthScore = scoreSum / float64(len(sample))
	}

	summary.CriticalAssets = CriticalAssets(sample, calc, DefaultCriticalLimit)
	return summary
}
