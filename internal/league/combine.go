package league

import (
	"sort"

	"gopingpong-app/internal/model"
)

type CombinedRecord struct {
	Fixture model.Fixture
	Result  *model.MatchResult
}

// Combine joins fixtures with their results by fixture id. Every fixture
// appears exactly once, in input order; a fixture without a result carries a
// nil Result; results that reference no known fixture are dropped.
func Combine(fixtures []model.Fixture, results []model.MatchResult) []CombinedRecord {
	byFixture := make(map[string]*model.MatchResult, len(results))
	for i := range results {
		if _, ok := byFixture[results[i].FixtureID]; ok {
			continue
		}
		byFixture[results[i].FixtureID] = &results[i]
	}
	records := make([]CombinedRecord, 0, len(fixtures))
	for _, fx := range fixtures {
		records = append(records, CombinedRecord{
			Fixture: fx,
			Result:  byFixture[fx.ID],
		})
	}
	return records
}

// SortByRound orders records by round descending, then fixture date
// ascending. The combiner itself never reorders.
func SortByRound(records []CombinedRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Fixture.Round != records[j].Fixture.Round {
			return records[i].Fixture.Round > records[j].Fixture.Round
		}
		return records[i].Fixture.PlayedAt.Before(records[j].Fixture.PlayedAt)
	})
}
