package masterdata

import "testing"

func TestMatchScoreTiers(t *testing.T) {
	tests := []struct {
		name  string
		asset Asset
		input string
		want  int
	}{
		{"exact code", Asset{Code: "EQ", Name: "Boiler"}, "EQ", 100},
		{"code prefix", Asset{Code: "EQUIP-1", Name: "Boiler"}, "EQ", 80},
		{"code contains", Asset{Code: "TEST-EQ", Name: "Boiler"}, "EQ", 60},
		{"name only", Asset{Code: "PMP-7", Name: "EQ backup pump"}, "EQ", 20},
		{"no match", Asset{Code: "PMP-7", Name: "Backup pump"}, "EQ", 0},
		{"exact plus name", Asset{Code: "EQ", Name: "EQ master unit"}, "EQ", 120},
		{"prefix plus name", Asset{Code: "EQUIP-1", Name: "EQ line feeder"}, "EQ", 100},
		{"case insensitive", Asset{Code: "equip-1", Name: "Boiler"}, "Eq", 80},
		{"empty input", Asset{Code: "EQ", Name: "EQ"}, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchScore(tt.asset, tt.input); got != tt.want {
				t.Fatalf("MatchScore(%q, %q) = %d, expected %d", tt.asset.Code, tt.input, got, tt.want)
			}
		})
	}
}

func TestRankSuggestionsOrdersByTier(t *testing.T) {
	// Names avoid the needle so only the code tier separates them.
	candidates := []Asset{
		{Code: "TEST-EQ", Name: "Mill"},
		{Code: "EQUIP-1", Name: "Press"},
		{Code: "EQ", Name: "Lathe"},
	}

	ranked := RankSuggestions(candidates, "EQ")
	expected := []string{"EQ", "EQUIP-1", "TEST-EQ"}
	for i, code := range expected {
		if ranked[i].Code != code {
			t.Fatalf("position %d: expected %s, got %s", i, code, ranked[i].Code)
		}
	}
}

func TestRankSuggestionsNameBonusBreaksTier(t *testing.T) {
	// A contains-match with a name hit (60+20) outranks a plain
	// contains-match (60) and ties with a prefix match (80); the tie
	// keeps input order.
	candidates := []Asset{
		{Code: "A-EQ-1", Name: "Mill"},
		{Code: "B-EQ-2", Name: "EQ spare mill"},
		{Code: "EQX-9", Name: "Press"},
	}

	ranked := RankSuggestions(candidates, "EQ")
	expected := []string{"B-EQ-2", "EQX-9", "A-EQ-1"}
	for i, code := range expected {
		if ranked[i].Code != code {
			t.Fatalf("position %d: expected %s, got %s", i, code, ranked[i].Code)
		}
	}
}

func TestRankSuggestionsStableOnTies(t *testing.T) {
	// All three score 80; the repository prefilter order must survive.
	candidates := []Asset{
		{Code: "EQ-003", Name: "Mill"},
		{Code: "EQ-001", Name: "Press"},
		{Code: "EQ-002", Name: "Lathe"},
	}

	ranked := RankSuggestions(candidates, "EQ")
	expected := []string{"EQ-003", "EQ-001", "EQ-002"}
	for i, code := range expected {
		if ranked[i].Code != code {
			t.Fatalf("position %d: expected %s, got %s", i, code, ranked[i].Code)
		}
	}
}
