package league

import (
	"sort"

	"gopingpong-app/internal/model"
)

type StandingEntry struct {
	Team          model.Team
	Pos           int
	Played        int
	Won           int
	Drawn         int
	Lost          int
	PointsFor     int
	PointsAgainst int
	SetsWon       int
	SetsLost      int
	Points        int
}

const (
	winPoints  = 3
	drawPoints = 1
)

// BuildStandings tallies approved results into a division table. Anything
// not yet approved stays out of the standings.
func BuildStandings(teams []model.Team, records []CombinedRecord) []StandingEntry {
	index := make(map[string]*StandingEntry, len(teams))
	for _, t := range teams {
		index[t.ID] = &StandingEntry{Team: t}
	}

	for _, rec := range records {
		if rec.Result == nil || ResultState(*rec.Result) != StateApproved {
			continue
		}
		home := index[rec.Fixture.HomeTeam.ID]
		away := index[rec.Fixture.AwayTeam.ID]
		if home == nil || away == nil {
			continue
		}
		res := *rec.Result
		homeTotal := TotalPoints(res, SideHome)
		awayTotal := TotalPoints(res, SideAway)
		homeSets := SetsWon(res.GameResults, SideHome)
		awaySets := SetsWon(res.GameResults, SideAway)

		home.Played++
		away.Played++
		home.PointsFor += homeTotal
		home.PointsAgainst += awayTotal
		away.PointsFor += awayTotal
		away.PointsAgainst += homeTotal
		home.SetsWon += homeSets
		home.SetsLost += awaySets
		away.SetsWon += awaySets
		away.SetsLost += homeSets

		switch ResolveOutcome(homeTotal, awayTotal, PerspectiveHome) {
		case OutcomeWin:
			home.Won++
			away.Lost++
			home.Points += winPoints
		case OutcomeLose:
			away.Won++
			home.Lost++
			away.Points += winPoints
		default:
			home.Drawn++
			away.Drawn++
			home.Points += drawPoints
			away.Points += drawPoints
		}
	}

	standings := make([]StandingEntry, 0, len(index))
	for _, entry := range index {
		standings = append(standings, *entry)
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		if setDiff(standings[i]) != setDiff(standings[j]) {
			return setDiff(standings[i]) > setDiff(standings[j])
		}
		if pointDiff(standings[i]) != pointDiff(standings[j]) {
			return pointDiff(standings[i]) > pointDiff(standings[j])
		}
		return standings[i].Team.Name < standings[j].Team.Name
	})
	for i := range standings {
		if i > 0 && sameRank(standings[i], standings[i-1]) {
			standings[i].Pos = standings[i-1].Pos
			continue
		}
		standings[i].Pos = i + 1
	}
	return standings
}

func setDiff(e StandingEntry) int { return e.SetsWon - e.SetsLost }

func pointDiff(e StandingEntry) int { return e.PointsFor - e.PointsAgainst }

func sameRank(a, b StandingEntry) bool {
	return a.Points == b.Points && setDiff(a) == setDiff(b) && pointDiff(a) == pointDiff(b)
}
