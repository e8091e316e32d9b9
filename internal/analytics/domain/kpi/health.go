package kpi

// ScoringConfig holds the heuristic constants behind the maintenance
// cost estimate and the health score. The defaults are the historical
// values; deployments can override them through the analytics config.
type ScoringConfig struct {
	CostPerEvent        float64 `yaml:"cost_per_event"`
	CostPerDowntimeHour float64 `yaml:"cost_per_downtime_hour"`
	DowntimeRefHours    float64 `yaml:"downtime_ref_hours"`
	FaultRefCount       float64 `yaml:"fault_ref_count"`
	IssueThreshold      float64 `yaml:"issue_threshold"`
	CriticalThreshold   float64 `yaml:"critical_threshold"`
}

// DefaultScoringConfig returns the historical constants.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		CostPerEvent:        500,
		CostPerDowntimeHour: 100,
		DowntimeRefHours:    100,
		FaultRefCount:       20,
		IssueThreshold:      70,
		CriticalThreshold:   50,
	}
}

// WithDefaults fills zero fields from the defaults, so partial yaml
// overrides keep the remaining constants intact.
func (c ScoringConfig) WithDefaults() ScoringConfig {
	defaults := DefaultScoringConfig()
	if c.CostPerEvent == 0 {
		c.CostPerEvent = defaults.CostPerEvent
	}
	if c.CostPerDowntimeHour == 0 {
		c.CostPerDowntimeHour = defaults.CostPerDowntimeHour
	}
	if c.DowntimeRefHours == 0 {
		c.DowntimeRefHours = defaults.DowntimeRefHours
	}
	if c.FaultRefCount == 0 {
		c.FaultRefCount = defaults.FaultRefCount
	}
	if c.IssueThreshold == 0 {
		c.IssueThreshold = defaults.IssueThreshold
	}
	if c.CriticalThreshold == 0 {
		c.CriticalThreshold = defaults.CriticalThreshold
	}
	return c
}

// Calculator derives the synthetic maintenance cost and the 0-100
// health score from an asset's raw metrics.
type Calculator struct {
	cfg ScoringConfig
}

// NewCalculator constructs a Calculator.
func NewCalculator(cfg ScoringConfig) Calculator {
	return Calculator{cfg: cfg.WithDefaults()}
}

// Score fills in cost and health score on raw metrics. historyCount is
// the number of maintenance-history entries inside the window.
func (c Calculator) Score(metrics AssetMetrics, historyCount int) AssetMetrics {
	metrics.MaintenanceCost = c.MaintenanceCost(historyCount, metrics.TotalDowntimeHours)
	metrics.HealthScore = c.HealthScore(metrics.TotalDowntimeHours, metrics.FaultFrequency)
	return metrics
}

// MaintenanceCost estimates spend from event count and downtime hours.
func (c Calculator) MaintenanceCost(historyCount int, downtimeHours float64) float64 {
	return float64(historyCount)*c.cfg.CostPerEvent + downtimeHours*c.cfg.CostPerDowntimeHour
}

// HealthScore combines a downtime penalty and a fault penalty, each
// normalized against its reference cap and floored at zero, then
// averaged. The result is always within [0, 100].
func (c Calculator) HealthScore(downtimeHours float64, faultFrequency int) float64 {
	downtimeScore := penaltyScore(downtimeHours, c.cfg.DowntimeRefHours)
	faultScore := penaltyScore(float64(faultFrequency), c.cfg.FaultRefCount)
	return (downtimeScore + faultScore) / 2
}

func penaltyScore(value, reference float64) float64 {
	score := 100 - (value/reference)*100
	if score < 0 {
		return 0
	}
	return score
}

// HasIssues reports whether a score is strictly below the issue
// threshold.
func (c Calculator) HasIssues(score float64) bool {
	return score < c.cfg.IssueThreshold
}

// IsCritical reports whether a score is strictly below the critical
// threshold. A score exactly at the threshold is not critical.
func (c Calculator) IsCritical(score float64) bool {
	return score < c.cfg.CriticalThreshold
}

// Config returns the effective constants.
func (c Calculator) Config() ScoringConfig {
	return c.cfg
}
