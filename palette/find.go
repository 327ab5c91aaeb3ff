package palette

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// FindByName returns the listed palettes whose names fuzzy match query, closest first.
// An exact case-insensitive match always comes first.
func (s *Synchronizer) FindByName(query string) []Option {
	options := s.Snapshot().Options
	names := lo.Map(options, func(o Option, _ int) string { return o.Name })

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) Option {
		return options[r.OriginalIndex]
	})
}
