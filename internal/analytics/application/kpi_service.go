package application

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"equipcare-cloud/internal/analytics/domain/kpi"
	masterdata "equipcare-cloud/internal/masterdata/domain"
)

// AssetSource lists assets matching a KPI filter's asset fields.
type AssetSource interface {
	ListAssets(ctx context.Context, filter kpi.Filter) ([]masterdata.Asset, error)
	CountAssets(ctx context.Context) (kpi.AssetCounts, error)
}

// HistoryReader fetches one asset's window-bounded records. Maintenance
// records come back ordered by completion time descending.
type HistoryReader interface {
	AssetHistory(ctx context.Context, asset masterdata.Asset, window kpi.Window) (kpi.AssetHistory, error)
}

// Clock provides time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

// Now returns current time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// KPIService computes the asset health and performance views. It is
// stateless: each call is a pure function of its inputs plus read-only
// fetches, so concurrent callers are fully independent.
type KPIService struct {
	assets       AssetSource
	histories    HistoryReader
	calc         kpi.Calculator
	clock        Clock
	fetchWorkers int
}

// NewKPIService constructs a KPIService.
func NewKPIService(assets AssetSource, histories HistoryReader, cfg Config, clock Clock) (*KPIService, error) {
	if assets == nil {
		return nil, errors.New("kpi service: nil asset source")
	}
	if histories == nil {
		return nil, errors.New("kpi service: nil history reader")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	workers := cfg.FetchWorkers
	if workers <= 0 {
		workers = defaultFetchWorkers
	}
	return &KPIService{
		assets:       assets,
		histories:    histories,
		calc:         kpi.NewCalculator(cfg.Scoring),
		clock:        clock,
		fetchWorkers: workers,
	}, nil
}

// DowntimeRanking returns the assets with the most downtime hours.
func (s *KPIService) DowntimeRanking(ctx context.Context, filter kpi.Filter) ([]kpi.AssetMetrics, error) {
	metrics, err := s.collectMetrics(ctx, filter, 0)
	if err != nil {
		return nil, err
	}
	return kpi.TopByDowntime(metrics, filter.LimitOrDefault(kpi.DefaultDowntimeLimit)), nil
}

// FaultFrequencyRanking returns the assets with the most faults.
func (s *KPIService) FaultFrequencyRanking(ctx context.Context, filter kpi.Filter) ([]kpi.AssetMetrics, error) {
	metrics, err := s.collectMetrics(ctx, filter, 0)
	if err != nil {
		return nil, err
	}
	return kpi.TopByFaultFrequency(metrics, filter.LimitOrDefault(kpi.DefaultFaultFrequencyLimit)), nil
}

// CostRanking returns the assets with the highest estimated spend.
func (s *KPIService) CostRanking(ctx context.Context, filter kpi.Filter) ([]kpi.AssetMetrics, error) {
	metrics, err := s.collectMetrics(ctx, filter, 0)
	if err != nil {
		return nil, err
	}
	return kpi.TopByMaintenanceCost(metrics, filter.LimitOrDefault(kpi.DefaultCostLimit)), nil
}

// PerformanceRanking returns the worst performers by raw downtime.
func (s *KPIService) PerformanceRanking(ctx context.Context, filter kpi.Filter) ([]kpi.AssetMetrics, error) {
	metrics, err := s.collectMetrics(ctx, filter, 0)
	if err != nil {
		return nil, err
	}
	return kpi.WorstPerformers(metrics, filter.LimitOrDefault(kpi.DefaultPerformanceLimit)), nil
}

// CriticalAssets returns assets strictly below the critical threshold,
// worst first.
func (s *KPIService) CriticalAssets(ctx context.Context, filter kpi.Filter) ([]kpi.AssetMetrics, error) {
	metrics, err := s.collectMetrics(ctx, filter, 0)
	if err != nil {
		return nil, err
	}
	return kpi.CriticalAssets(metrics, s.calc, filter.LimitOrDefault(kpi.DefaultCriticalLimit)), nil
}

// HealthOverview returns the fleet summary. Issue counts and the
// average score are computed over a sample capped at 100 assets; total
// and active counts are fetched independently.
func (s *KPIService) HealthOverview(ctx context.Context, filter kpi.Filter) (kpi.HealthSummary, error) {
	counts, err := s.assets.CountAssets(ctx)
	if err != nil {
		return kpi.HealthSummary{}, err
	}
	sample, err := s.collectMetrics(ctx, filter, kpi.OverviewSampleCap)
	if err != nil {
		return kpi.HealthSummary{}, err
	}
	return kpi.Summarize(sample, counts.Total, counts.Active, s.calc), nil
}

// collectMetrics lists matching assets, fetches each asset's bounded
// history with bounded concurrency, and returns scored metrics in the
// original fetch order. sampleCap, when positive, truncates the asset
// list before any history is fetched.
func (s *KPIService) collectMetrics(ctx context.Context, filter kpi.Filter, sampleCap int) ([]kpi.AssetMetrics, error) {
	assets, err := s.assets.ListAssets(ctx, filter)
	if err != nil {
		return nil, err
	}
	if sampleCap > 0 && len(assets) > sampleCap {
		assets = assets[:sampleCap]
	}
	if len(assets) == 0 {
		return []kpi.AssetMetrics{}, nil
	}

	window := kpi.ResolveWindow(filter, s.clock.Now())

	// Per-asset fetches are the costly step; run them concurrently but
	// bounded, keeping results indexed so fetch order survives as the
	// ranking tie-break.
	metrics := make([]kpi.AssetMetrics, len(assets))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.fetchWorkers)
	for i, asset := range assets {
		group.Go(func() error {
			history, err := s.histories.AssetHistory(groupCtx, asset, window)
			if err != nil {
				return err
			}
			raw := kpi.Aggregate(history)
			metrics[i] = s.calc.Score(raw, len(history.Records))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return metrics, nil
}
