package masterdata

import (
	"sort"
	"strings"
)

// Match-score tiers. Code bonuses are mutually exclusive; the name bonus
// is additive on top of whichever code tier applied.
const (
	scoreCodeExact    = 100
	scoreCodePrefix   = 80
	scoreCodeContains = 60
	scoreNameContains = 20
)

// MatchScore rates how well an asset matches a typed partial string.
// Comparisons are case-insensitive. Candidates that pass the repository
// prefilter always score at least the name-contains bonus.
func MatchScore(asset Asset, input string) int {
	if input == "" {
		return 0
	}
	code := strings.ToLower(asset.Code)
	name := strings.ToLower(asset.Name)
	needle := strings.ToLower(input)

	score := 0
	switch {
	case code == needle:
		score = scoreCodeExact
	case strings.HasPrefix(code, needle):
		score = scoreCodePrefix
	case strings.Contains(code, needle):
		score = scoreCodeContains
	}
	if strings.Contains(name, needle) {
		score += scoreNameContains
	}
	return score
}

type scoredAsset struct {
	asset Asset
	score int
}

// RankSuggestions orders candidates by match score descending. The sort
// is stable: equal scores keep the code-asc/name-asc order produced by
// the repository prefilter. Scores are internal and stripped from the
// result.
func RankSuggestions(candidates []Asset, input string) []Asset {
	scored := make([]scoredAsset, len(candidates))
	for i, asset := range candidates {
		scored[i] = scoredAsset{asset: asset, score: MatchScore(asset, input)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	ranked := make([]Asset, len(scored))
	for i, entry := range scored {
		ranked[i] = entry.asset
	}
	return ranked
}
