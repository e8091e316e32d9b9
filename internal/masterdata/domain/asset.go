package masterdata

import (
	"context"
	"errors"
	"time"
)

// Asset represents a maintainable piece of equipment in masterdata.
type Asset struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id,omitempty"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	AssetType string    `json:"asset_type,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks asset invariants.
func (a Asset) Validate() error {
	if a.ID == "" {
		return errors.New("asset: empty id")
	}
	if a.Code == "" {
		return errors.New("asset: empty code")
	}
	if a.Name == "" {
		return errors.New("asset: empty name")
	}
	return nil
}

// SuggestionQuery is the coarse candidate prefilter: substring match on
// code or name, ordered by code asc then name asc, capped at limit.
type SuggestionQuery struct {
	Input      string
	Location   string
	ActiveOnly bool
	Limit      int
}

// AssetRepository exposes the read capabilities the suggestion flow needs.
type AssetRepository interface {
	FindByExactCode(ctx context.Context, code string) (*Asset, error)
	SuggestionCandidates(ctx context.Context, query SuggestionQuery) ([]Asset, error)
}
