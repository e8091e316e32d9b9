package application

import (
	"context"
	"errors"
	"testing"

	masterdata "equipcare-cloud/internal/masterdata/domain"
)

type stubAssetRepo struct {
	candidates []masterdata.Asset
	byCode     map[string]*masterdata.Asset
	err        error

	lastQuery   *masterdata.SuggestionQuery
	lookedUp    []string
	queryCalled int
}

func (s *stubAssetRepo) SuggestionCandidates(_ context.Context, q masterdata.SuggestionQuery) ([]masterdata.Asset, error) {
	s.queryCalled++
	s.lastQuery = &q
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

func (s *stubAssetRepo) FindByExactCode(_ context.Context, code string) (*masterdata.Asset, error) {
	s.queryCalled++
	s.lookedUp = append(s.lookedUp, code)
	if s.err != nil {
		return nil, s.err
	}
	return s.byCode[code], nil
}

func TestSuggestBlankInputSkipsRepository(t *testing.T) {
	repo := &stubAssetRepo{}
	svc, err := NewSuggestionService(repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.Suggest(context.Background(), "   ", "", false, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
	if repo.queryCalled != 0 {
		t.Fatal("blank input must not reach the repository")
	}
}

func TestSuggestLimitFallback(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero", 0, 10},
		{"negative", -3, 10},
		{"over cap", 101, 10},
		{"in range", 25, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubAssetRepo{}
			svc, _ := NewSuggestionService(repo)

			if _, err := svc.Suggest(context.Background(), "EQ", "", false, tt.limit); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.lastQuery == nil {
				t.Fatal("repository was not queried")
			}
			if repo.lastQuery.Limit != tt.want {
				t.Fatalf("expected repository limit %d, got %d", tt.want, repo.lastQuery.Limit)
			}
		})
	}
}

func TestSuggestRanksAndTrims(t *testing.T) {
	repo := &stubAssetRepo{candidates: []masterdata.Asset{
		{Code: "TEST-EQ", Name: "Mill"},
		{Code: "EQ", Name: "Lathe"},
		{Code: "EQ-001", Name: "Press"},
	}}
	svc, _ := NewSuggestionService(repo)

	got, err := svc.Suggest(context.Background(), "  EQ ", "hall-2", true, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastQuery.Input != "EQ" {
		t.Fatalf("expected trimmed input, got %q", repo.lastQuery.Input)
	}
	if repo.lastQuery.Location != "hall-2" || !repo.lastQuery.ActiveOnly {
		t.Fatalf("filters not forwarded: %+v", repo.lastQuery)
	}
	expected := []string{"EQ", "EQ-001", "TEST-EQ"}
	for i, code := range expected {
		if got[i].Code != code {
			t.Fatalf("position %d: expected %s, got %s", i, code, got[i].Code)
		}
	}
}

func TestSuggestPropagatesRepositoryError(t *testing.T) {
	repo := &stubAssetRepo{err: errors.New("connection refused")}
	svc, _ := NewSuggestionService(repo)

	if _, err := svc.Suggest(context.Background(), "EQ", "", false, 10); err == nil {
		t.Fatal("expected error")
	}
}

func TestValidateCode(t *testing.T) {
	asset := &masterdata.Asset{ID: "a-1", Code: "EQ-001", Name: "Press"}
	repo := &stubAssetRepo{byCode: map[string]*masterdata.Asset{"EQ-001": asset}}
	svc, _ := NewSuggestionService(repo)

	got, err := svc.ValidateCode(context.Background(), " EQ-001 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Exists || got.Asset == nil || got.Asset.ID != "a-1" {
		t.Fatalf("expected existing asset, got %+v", got)
	}
	if repo.lookedUp[0] != "EQ-001" {
		t.Fatalf("expected trimmed lookup, got %q", repo.lookedUp[0])
	}

	got, err = svc.ValidateCode(context.Background(), "EQ-999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Exists || got.Asset != nil {
		t.Fatalf("expected miss, got %+v", got)
	}
}

func TestValidateCodeBlankSkipsRepository(t *testing.T) {
	repo := &stubAssetRepo{}
	svc, _ := NewSuggestionService(repo)

	got, err := svc.ValidateCode(context.Background(), "  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Exists {
		t.Fatal("blank code must not exist")
	}
	if repo.queryCalled != 0 {
		t.Fatal("blank code must not reach the repository")
	}
}
