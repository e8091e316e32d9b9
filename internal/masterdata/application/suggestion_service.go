package application

import (
	"context"
	"errors"
	"strings"

	masterdata "equipcare-cloud/internal/masterdata/domain"
)

const (
	defaultSuggestionLimit = 10
	maxSuggestionLimit     = 100
)

// CodeValidation reports whether a stored asset code matches the input
// exactly (case-sensitive, after trimming).
type CodeValidation struct {
	Exists bool              `json:"exists"`
	Asset  *masterdata.Asset `json:"asset,omitempty"`
}

// SuggestionService serves asset-code autocomplete and validation.
type SuggestionService struct {
	repo masterdata.AssetRepository
}

// NewSuggestionService constructs a SuggestionService.
func NewSuggestionService(repo masterdata.AssetRepository) (*SuggestionService, error) {
	if repo == nil {
		return nil, errors.New("suggestion service: nil repository")
	}
	return &SuggestionService{repo: repo}, nil
}

// Suggest returns up to limit assets ranked for the typed partial input.
// A blank input yields an empty result without querying. Limits outside
// 1..100 silently fall back to the default.
func (s *SuggestionService) Suggest(ctx context.Context, input, location string, activeOnly bool, limit int) ([]masterdata.Asset, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return []masterdata.Asset{}, nil
	}
	if limit < 1 || limit > maxSuggestionLimit {
		limit = defaultSuggestionLimit
	}

	candidates, err := s.repo.SuggestionCandidates(ctx, masterdata.SuggestionQuery{
		Input:      input,
		Location:   location,
		ActiveOnly: activeOnly,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	return masterdata.RankSuggestions(candidates, input), nil
}

// ValidateCode reports whether an asset with the exact trimmed code
// exists. A blank code reports non-existence without querying.
func (s *SuggestionService) ValidateCode(ctx context.Context, code string) (CodeValidation, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return CodeValidation{Exists: false}, nil
	}

	asset, err := s.repo.FindByExactCode(ctx, code)
	if err != nil {
		return CodeValidation{}, err
	}
	if asset == nil {
		return CodeValidation{Exists: false}, nil
	}
	return CodeValidation{Exists: true, Asset: asset}, nil
}
