package league

import (
	"testing"

	"gopingpong-app/internal/model"
)

func standingsFixture() ([]model.Team, []CombinedRecord) {
	smashers := testTeam("t-1", "Kowloon Smashers")
	spinners := testTeam("t-2", "Island Spinners")
	loopers := testTeam("t-3", "Sha Tin Loopers")
	blades := testTeam("t-4", "Mong Kok Blades")
	teams := []model.Team{smashers, spinners, loopers, blades}

	res1 := testResult("fx-1", 8, 4, model.ResultApproved)
	res1.GameResults = []model.GameResult{
		{HomeSetResult: 11, AwaySetResult: 7},
		{HomeSetResult: 11, AwaySetResult: 9},
		{HomeSetResult: 5, AwaySetResult: 11},
	}
	res2 := testResult("fx-2", 6, 6, model.ResultApproved)
	res3 := testResult("fx-3", 3, 9, model.ResultApproved)
	pendingRes := testResult("fx-4", 12, 0, model.ResultPending)
	unsubmitted := testResult("fx-5", 12, 0, model.ResultApproved)
	unsubmitted.Submitted = false

	records := []CombinedRecord{
		{Fixture: testFixture("fx-1", 1, smashers, spinners), Result: &res1},
		{Fixture: testFixture("fx-2", 2, loopers, blades), Result: &res2},
		{Fixture: testFixture("fx-3", 3, spinners, loopers), Result: &res3},
		{Fixture: testFixture("fx-4", 4, blades, smashers), Result: &pendingRes},
		{Fixture: testFixture("fx-5", 5, blades, spinners), Result: &unsubmitted},
		{Fixture: testFixture("fx-6", 6, smashers, loopers)},
	}
	return teams, records
}

func entryFor(t *testing.T, standings []StandingEntry, teamID string) StandingEntry {
	t.Helper()
	for _, e := range standings {
		if e.Team.ID == teamID {
			return e
		}
	}
	t.Fatalf("team %s not in standings", teamID)
	return StandingEntry{}
}

func TestBuildStandingsOnlyApprovedCount(t *testing.T) {
	teams, records := standingsFixture()
	standings := BuildStandings(teams, records)

	if len(standings) != 4 {
		t.Fatalf("standings rows: want 4, got %d", len(standings))
	}
	blades := entryFor(t, standings, "t-4")
	if blades.Played != 1 {
		t.Errorf("blades played: want 1, got %d (pending and unsubmitted must not count)", blades.Played)
	}
}

func TestBuildStandingsTallies(t *testing.T) {
	teams, records := standingsFixture()
	standings := BuildStandings(teams, records)

	smashers := entryFor(t, standings, "t-1")
	if smashers.Won != 1 || smashers.Drawn != 0 || smashers.Lost != 0 {
		t.Errorf("smashers W/D/L: want 1/0/0, got %d/%d/%d", smashers.Won, smashers.Drawn, smashers.Lost)
	}
	if smashers.Points != 3 {
		t.Errorf("smashers points: want 3, got %d", smashers.Points)
	}
	if smashers.SetsWon != 2 || smashers.SetsLost != 1 {
		t.Errorf("smashers sets: want 2/1, got %d/%d", smashers.SetsWon, smashers.SetsLost)
	}
	if smashers.PointsFor != 8 || smashers.PointsAgainst != 4 {
		t.Errorf("smashers points for/against: want 8/4, got %d/%d", smashers.PointsFor, smashers.PointsAgainst)
	}

	loopers := entryFor(t, standings, "t-3")
	if loopers.Won != 1 || loopers.Drawn != 1 || loopers.Lost != 0 {
		t.Errorf("loopers W/D/L: want 1/1/0, got %d/%d/%d", loopers.Won, loopers.Drawn, loopers.Lost)
	}
	if loopers.Points != 4 {
		t.Errorf("loopers points: want 4, got %d", loopers.Points)
	}

	spinners := entryFor(t, standings, "t-2")
	if spinners.Won != 0 || spinners.Lost != 2 || spinners.Points != 0 {
		t.Errorf("spinners: want 0 wins 2 losses 0 points, got %d/%d/%d", spinners.Won, spinners.Lost, spinners.Points)
	}

	blades := entryFor(t, standings, "t-4")
	if blades.Drawn != 1 || blades.Points != 1 {
		t.Errorf("blades: want 1 draw 1 point, got %d/%d", blades.Drawn, blades.Points)
	}
}

func TestBuildStandingsOrderAndPositions(t *testing.T) {
	teams, records := standingsFixture()
	standings := BuildStandings(teams, records)

	if standings[0].Team.ID != "t-3" || standings[0].Pos != 1 {
		t.Errorf("1st: want loopers pos 1, got %s pos %d", standings[0].Team.ID, standings[0].Pos)
	}
	if standings[1].Team.ID != "t-1" || standings[1].Pos != 2 {
		t.Errorf("2nd: want smashers pos 2, got %s pos %d", standings[1].Team.ID, standings[1].Pos)
	}
	if standings[2].Team.ID != "t-4" || standings[2].Pos != 3 {
		t.Errorf("3rd: want blades pos 3, got %s pos %d", standings[2].Team.ID, standings[2].Pos)
	}
	if standings[3].Team.ID != "t-2" || standings[3].Pos != 4 {
		t.Errorf("4th: want spinners pos 4, got %s pos %d", standings[3].Team.ID, standings[3].Pos)
	}
}

func TestBuildStandingsTiedTeamsSharePosition(t *testing.T) {
	alpha := testTeam("t-a", "Aberdeen Paddles")
	beta := testTeam("t-b", "Tai Po Topspin")
	gamma := testTeam("t-c", "Yuen Long Chops")
	delta := testTeam("t-d", "Kwun Tong Drives")
	teams := []model.Team{alpha, beta, gamma, delta}

	// identical 5:3 home wins leave alpha and gamma with equal records
	res1 := testResult("fx-1", 5, 3, model.ResultApproved)
	res2 := testResult("fx-2", 5, 3, model.ResultApproved)
	records := []CombinedRecord{
		{Fixture: testFixture("fx-1", 1, alpha, beta), Result: &res1},
		{Fixture: testFixture("fx-2", 1, gamma, delta), Result: &res2},
	}
	standings := BuildStandings(teams, records)

	if standings[0].Team.Name != "Aberdeen Paddles" {
		t.Errorf("name tiebreak: want Aberdeen Paddles first, got %s", standings[0].Team.Name)
	}
	if standings[1].Team.Name != "Yuen Long Chops" {
		t.Errorf("name tiebreak: want Yuen Long Chops second, got %s", standings[1].Team.Name)
	}
	if standings[0].Pos != 1 || standings[1].Pos != 1 {
		t.Errorf("tied teams must share pos 1, got %d and %d", standings[0].Pos, standings[1].Pos)
	}
	if standings[2].Pos != 3 {
		t.Errorf("rank after a shared pair: want 3, got %d", standings[2].Pos)
	}
}

func TestBuildStandingsSetDiffBeforePointDiff(t *testing.T) {
	alpha := testTeam("t-a", "Aberdeen Paddles")
	beta := testTeam("t-b", "Tai Po Topspin")
	gamma := testTeam("t-c", "Yuen Long Chops")
	delta := testTeam("t-d", "Kwun Tong Drives")
	teams := []model.Team{alpha, beta, gamma, delta}

	// alpha wins big on points but takes fewer sets than gamma
	res1 := testResult("fx-1", 10, 2, model.ResultApproved)
	res1.GameResults = []model.GameResult{{HomeSetResult: 11, AwaySetResult: 9}}
	res2 := testResult("fx-2", 7, 5, model.ResultApproved)
	res2.GameResults = []model.GameResult{
		{HomeSetResult: 11, AwaySetResult: 6},
		{HomeSetResult: 11, AwaySetResult: 8},
		{HomeSetResult: 11, AwaySetResult: 4},
	}
	records := []CombinedRecord{
		{Fixture: testFixture("fx-1", 1, alpha, beta), Result: &res1},
		{Fixture: testFixture("fx-2", 1, gamma, delta), Result: &res2},
	}
	standings := BuildStandings(teams, records)

	if standings[0].Team.ID != "t-c" {
		t.Errorf("set difference outranks point difference: want t-c first, got %s", standings[0].Team.ID)
	}
	if standings[0].Pos == standings[1].Pos {
		t.Errorf("different set diffs must not share a position")
	}
}

func TestBuildStandingsEmptyDivision(t *testing.T) {
	teams := []model.Team{testTeam("t-1", "Kowloon Smashers")}
	standings := BuildStandings(teams, nil)
	if len(standings) != 1 {
		t.Fatalf("want 1 row, got %d", len(standings))
	}
	if standings[0].Played != 0 || standings[0].Points != 0 || standings[0].Pos != 1 {
		t.Errorf("empty division row: want zeros at pos 1, got %+v", standings[0])
	}
}
