package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"equipcare-cloud/internal/analytics/domain/kpi"
	maintenance "equipcare-cloud/internal/maintenance/domain"
	masterdata "equipcare-cloud/internal/masterdata/domain"
)

const (
	defaultAssetsTable       = "assets"
	defaultWorkOrdersTable   = "work_orders"
	defaultMaintenanceTable  = "maintenance_records"
	defaultAssetListPageSize = 500
)

// DBTX abstracts *sql.DB and *sql.Tx for the reader.
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// HistoryReader is the Postgres read path behind the KPI engine: asset
// listing plus per-asset window-bounded record fetches.
type HistoryReader struct {
	db               DBTX
	assetsTable      string
	workOrdersTable  string
	maintenanceTable string
	listCap          int
}

// NewHistoryReader constructs a reader.
func NewHistoryReader(db DBTX, opts ...ReaderOption) *HistoryReader {
	reader := &HistoryReader{
		db:               db,
		assetsTable:      defaultAssetsTable,
		workOrdersTable:  defaultWorkOrdersTable,
		maintenanceTable: defaultMaintenanceTable,
		listCap:          defaultAssetListPageSize,
	}
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

// ReaderOption configures the reader.
type ReaderOption func(*HistoryReader)

// WithTables overrides the default table names. Empty names keep the
// defaults.
func WithTables(assets, workOrders, maintenanceRecords string) ReaderOption {
	return func(reader *HistoryReader) {
		if assets != "" {
			reader.assetsTable = assets
		}
		if workOrders != "" {
			reader.workOrdersTable = workOrders
		}
		if maintenanceRecords != "" {
			reader.maintenanceTable = maintenanceRecords
		}
	}
}

// WithListCap overrides the asset-list safety cap.
func WithListCap(limit int) ReaderOption {
	return func(reader *HistoryReader) {
		if limit > 0 {
			reader.listCap = limit
		}
	}
}

// ListAssets returns assets matching the filter's location and type,
// in code order.
func (r *HistoryReader) ListAssets(ctx context.Context, filter kpi.Filter) ([]masterdata.Asset, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("history reader: nil db")
	}

	conditions := "TRUE"
	args := []any{}
	if filter.Location != "" {
		args = append(args, filter.Location)
		conditions += " AND location = $" + strconv.Itoa(len(args))
	}
	if filter.AssetType != "" {
		args = append(args, filter.AssetType)
		conditions += " AND asset_type = $" + strconv.Itoa(len(args))
	}
	args = append(args, r.listCap)

	query := fmt.Sprintf(`
SELECT id, tenant_id, code, name, location, asset_type, active, created_at, updated_at
FROM %s
WHERE %s
ORDER BY code ASC
LIMIT $%d`, r.assetsTable, conditions, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []masterdata.Asset
	for rows.Next() {
		var asset masterdata.Asset
		if err := rows.Scan(
			&asset.ID,
			&asset.TenantID,
			&asset.Code,
			&asset.Name,
			&asset.Location,
			&asset.AssetType,
			&asset.Active,
			&asset.CreatedAt,
			&asset.UpdatedAt,
		); err != nil {
			return nil, err
		}
		asset.CreatedAt = asset.CreatedAt.UTC()
		asset.UpdatedAt = asset.UpdatedAt.UTC()
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

// CountAssets returns total and active asset counts.
func (r *HistoryReader) CountAssets(ctx context.Context) (kpi.AssetCounts, error) {
	if r == nil || r.db == nil {
		return kpi.AssetCounts{}, errors.New("history reader: nil db")
	}

	query := fmt.Sprintf(`
SELECT COUNT(*), COUNT(*) FILTER (WHERE active)
FROM %s`, r.assetsTable)

	var counts kpi.AssetCounts
	if err := r.db.QueryRowContext(ctx, query).Scan(&counts.Total, &counts.Active); err != nil {
		return kpi.AssetCounts{}, err
	}
	return counts, nil
}

// AssetHistory fetches one asset's work orders and maintenance records
// bounded by the window. Work orders are bounded on reported_at,
// maintenance records on completed_at; records come back newest first.
func (r *HistoryReader) AssetHistory(ctx context.Context, asset masterdata.Asset, window kpi.Window) (kpi.AssetHistory, error) {
	if r == nil || r.db == nil {
		return kpi.AssetHistory{}, errors.New("history reader: nil db")
	}
	if asset.ID == "" {
		return kpi.AssetHistory{}, errors.New("history reader: empty asset id")
	}

	orders, err := r.workOrders(ctx, asset.ID, window)
	if err != nil {
		return kpi.AssetHistory{}, err
	}
	records, err := r.maintenanceRecords(ctx, asset.ID, window)
	if err != nil {
		return kpi.AssetHistory{}, err
	}
	return kpi.AssetHistory{Asset: asset, WorkOrders: orders, Records: records}, nil
}

func (r *HistoryReader) workOrders(ctx context.Context, assetID string, window kpi.Window) ([]maintenance.WorkOrder, error) {
	conditions, args := windowConditions("reported_at", window, []any{assetID})

	query := fmt.Sprintf(`
SELECT id, asset_id, status, COALESCE(fault_code, ''), COALESCE(description, ''), reported_at, completed_at
FROM %s
WHERE asset_id = $1%s
ORDER BY reported_at ASC`, r.workOrdersTable, conditions)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []maintenance.WorkOrder
	for rows.Next() {
		var (
			order       maintenance.WorkOrder
			status      string
			completedAt sql.NullTime
		)
		if err := rows.Scan(
			&order.ID,
			&order.AssetID,
			&status,
			&order.FaultCode,
			&order.Description,
			&order.ReportedAt,
			&completedAt,
		); err != nil {
			return nil, err
		}
		order.Status = maintenance.WorkOrderStatus(status)
		order.ReportedAt = order.ReportedAt.UTC()
		if completedAt.Valid {
			completed := completedAt.Time.UTC()
			order.CompletedAt = &completed
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *HistoryReader) maintenanceRecords(ctx context.Context, assetID string, window kpi.Window) ([]maintenance.Record, error) {
	conditions, args := windowConditions("completed_at", window, []any{assetID})

	query := fmt.Sprintf(`
SELECT id, asset_id, COALESCE(description, ''), completed_at
FROM %s
WHERE asset_id = $1%s
ORDER BY completed_at DESC`, r.maintenanceTable, conditions)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []maintenance.Record
	for rows.Next() {
		var record maintenance.Record
		if err := rows.Scan(
			&record.ID,
			&record.AssetID,
			&record.Description,
			&record.CompletedAt,
		); err != nil {
			return nil, err
		}
		record.CompletedAt = record.CompletedAt.UTC()
		records = append(records, record)
	}
	return records, rows.Err()
}

func windowConditions(column string, window kpi.Window, args []any) (string, []any) {
	conditions := ""
	if window.GTE != nil {
		args = append(args, *window.GTE)
		conditions += fmt.Sprintf(" AND %s >= $%d", column, len(args))
	}
	if window.LTE != nil {
		args = append(args, *window.LTE)
		conditions += fmt.Sprintf(" AND %s <= $%d", column, len(args))
	}
	return conditions, args
}
