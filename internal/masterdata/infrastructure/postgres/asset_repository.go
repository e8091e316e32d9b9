package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	masterdata "equipcare-cloud/internal/masterdata/domain"
)

const defaultAssetsTable = "assets"

const assetColumns = "id, tenant_id, code, name, location, asset_type, active, created_at, updated_at"

// AssetRepository is a Postgres implementation for asset masterdata.
type AssetRepository struct {
	db    DBTX
	table string
}

// NewAssetRepository constructs a repository.
func NewAssetRepository(db DBTX, opts ...AssetOption) *AssetRepository {
	repo := &AssetRepository{db: db, table: defaultAssetsTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// AssetOption configures the repository.
type AssetOption func(*AssetRepository)

// WithAssetTable overrides the default table name.
func WithAssetTable(table string) AssetOption {
	return func(repo *AssetRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// Get loads an asset by id.
func (r *AssetRepository) Get(ctx context.Context, id string) (*masterdata.Asset, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("asset repo: nil db")
	}
	if id == "" {
		return nil, errors.New("asset repo: empty id")
	}

	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE id = $1
LIMIT 1`, assetColumns, r.table)

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// FindByExactCode looks up an asset by exact, case-sensitive code.
// Returns nil when no asset matches.
func (r *AssetRepository) FindByExactCode(ctx context.Context, code string) (*masterdata.Asset, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("asset repo: nil db")
	}
	if code == "" {
		return nil, nil
	}

	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE code = $1
LIMIT 1`, assetColumns, r.table)

	return r.scanOne(r.db.QueryRowContext(ctx, query, code))
}

// SuggestionCandidates returns the coarse candidate set for suggestion
// scoring: substring match on code or name, ordered code asc, name asc.
func (r *AssetRepository) SuggestionCandidates(ctx context.Context, q masterdata.SuggestionQuery) ([]masterdata.Asset, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("asset repo: nil db")
	}
	if q.Input == "" {
		return []masterdata.Asset{}, nil
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	conditions := "(code ILIKE $1 OR name ILIKE $1)"
	args := []any{"%" + q.Input + "%"}
	if q.Location != "" {
		args = append(args, q.Location)
		conditions += " AND location = $" + strconv.Itoa(len(args))
	}
	if q.ActiveOnly {
		conditions += " AND active"
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE %s
ORDER BY code ASC, name ASC
LIMIT $%d`, assetColumns, r.table, conditions, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := make([]masterdata.Asset, 0, limit)
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

func (r *AssetRepository) scanOne(row *sql.Row) (*masterdata.Asset, error) {
	asset, err := scanAsset(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (masterdata.Asset, error) {
	var asset masterdata.Asset
	if err := row.Scan(
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
		return masterdata.Asset{}, err
	}
	asset.CreatedAt = asset.CreatedAt.UTC()
	asset.UpdatedAt = asset.UpdatedAt.UTC()
	return asset, nil
}
