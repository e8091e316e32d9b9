package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"equipcare-cloud/internal/analytics/domain/kpi"
	maintenance "equipcare-cloud/internal/maintenance/domain"
	masterdata "equipcare-cloud/internal/masterdata/domain"
)

// HistoryReader is an in-memory read model for demo/testing. It applies
// the same window and filter semantics as the Postgres reader.
type HistoryReader struct {
	mu      sync.RWMutex
	assets  []masterdata.Asset
	orders  map[string][]maintenance.WorkOrder
	records map[string][]maintenance.Record
}

// NewHistoryReader constructs an empty reader.
func NewHistoryReader() *HistoryReader {
	return &HistoryReader{
		orders:  make(map[string][]maintenance.WorkOrder),
		records: make(map[string][]maintenance.Record),
	}
}

// AddAsset registers an asset.
func (r *HistoryReader) AddAsset(asset masterdata.Asset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets = append(r.assets, asset)
}

// AddWorkOrder registers a work order under its asset.
func (r *HistoryReader) AddWorkOrder(order maintenance.WorkOrder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.AssetID] = append(r.orders[order.AssetID], order)
}

// AddRecord registers a maintenance record under its asset.
func (r *HistoryReader) AddRecord(record maintenance.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.AssetID] = append(r.records[record.AssetID], record)
}

// ListAssets returns assets matching the filter, in insertion order.
func (r *HistoryReader) ListAssets(ctx context.Context, filter kpi.Filter) ([]masterdata.Asset, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]masterdata.Asset, 0, len(r.assets))
	for _, asset := range r.assets {
		if filter.Location != "" && asset.Location != filter.Location {
			continue
		}
		if filter.AssetType != "" && asset.AssetType != filter.AssetType {
			continue
		}
		result = append(result, asset)
	}
	return result, nil
}

// CountAssets returns total and active counts over all assets.
func (r *HistoryReader) CountAssets(ctx context.Context) (kpi.AssetCounts, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := kpi.AssetCounts{Total: len(r.assets)}
	for _, asset := range r.assets {
		if asset.Active {
			counts.Active++
		}
	}
	return counts, nil
}

// AssetHistory returns the asset's records bounded by the window, with
// maintenance records ordered newest first.
func (r *HistoryReader) AssetHistory(ctx context.Context, asset masterdata.Asset, window kpi.Window) (kpi.AssetHistory, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := kpi.AssetHistory{Asset: asset}
	for _, order := range r.orders[asset.ID] {
		if !window.Contains(order.ReportedAt) {
			continue
		}
		history.WorkOrders = append(history.WorkOrders, order)
	}
	for _, record := range r.records[asset.ID] {
		if !window.Contains(record.CompletedAt) {
			continue
		}
		history.Records = append(history.Records, record)
	}
	sort.SliceStable(history.Records, func(i, j int) bool {
		return history.Records[i].CompletedAt.After(history.Records[j].CompletedAt)
	})
	return history, nil
}

// SuggestionCandidates implements the masterdata suggestion prefilter
// over the same data set, for wiring demo environments without Postgres.
func (r *HistoryReader) SuggestionCandidates(ctx context.Context, q masterdata.SuggestionQuery) ([]masterdata.Asset, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(q.Input)
	if needle == "" {
		return []masterdata.Asset{}, nil
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	matched := make([]masterdata.Asset, 0, limit)
	for _, asset := range r.assets {
		if q.Location != "" && asset.Location != q.Location {
			continue
		}
		if q.ActiveOnly && !asset.Active {
			continue
		}
		code := strings.ToLower(asset.Code)
		name := strings.ToLower(asset.Name)
		if !strings.Contains(code, needle) && !strings.Contains(name, needle) {
			continue
		}
		matched = append(matched, asset)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Code != matched[j].Code {
			return matched[i].Code < matched[j].Code
		}
		return matched[i].Name < matched[j].Name
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// FindByExactCode looks up an asset by stored code, case-sensitive.
func (r *HistoryReader) FindByExactCode(ctx context.Context, code string) (*masterdata.Asset, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, asset := range r.assets {
		if asset.Code == code {
			found := asset
			return &found, nil
		}
	}
	return nil, nil
}
