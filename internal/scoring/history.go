package scoring

import (
	"cmp"
	"slices"

	"bowling-tracker/internal/domain"

	"github.com/samber/lo"
)

const PracticeGroup = "Practice"

type LeagueGroup struct {
	League string        `json:"league"`
	Games  []domain.Game `json:"games"`
}

// SortByDate returns a copy of games ordered by date, most recent first unless
// ascending is set. Games with equal dates keep their relative order.
func SortByDate(games []domain.Game, ascending bool) []domain.Game {
	sorted := slices.Clone(games)
	slices.SortStableFunc(sorted, func(a, b domain.Game) int {
		if ascending {
			return cmp.Compare(a.Date, b.Date)
		}
		return cmp.Compare(b.Date, a.Date)
	})
	return sorted
}

// GroupByLeague partitions games by league, largest group first and ties in
// the order the league was first seen. Games without a league, or with an
// empty one, are dropped unless includePractice is set, in which case they
// form the Practice group.
func GroupByLeague(games []domain.Game, includePractice bool) []LeagueGroup {
	keyed := lo.Filter(games, func(g domain.Game, _ int) bool {
		return g.LeagueName() != "" || includePractice
	})
	leagueOf := func(g domain.Game) string {
		if name := g.LeagueName(); name != "" {
			return name
		}
		return PracticeGroup
	}

	buckets := lo.GroupBy(keyed, leagueOf)
	order := lo.Uniq(lo.Map(keyed, func(g domain.Game, _ int) string { return leagueOf(g) }))

	groups := lo.Map(order, func(league string, _ int) LeagueGroup {
		return LeagueGroup{League: league, Games: buckets[league]}
	})
	slices.SortStableFunc(groups, func(a, b LeagueGroup) int {
		return cmp.Compare(len(b.Games), len(a.Games))
	})
	return groups
}
