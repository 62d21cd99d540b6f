package league

import (
	"time"

	"gopingpong-app/internal/model"
)

func testTeam(id, name string, memberIDs ...string) model.Team {
	members := make([]model.Member, 0, len(memberIDs))
	for _, uid := range memberIDs {
		members = append(members, model.Member{UserID: uid, Status: model.MemberApproved})
	}
	return model.Team{ID: id, DivisionID: "div-1", Name: name, Members: members}
}

func testFixture(id string, round int, home, away model.Team) model.Fixture {
	return model.Fixture{
		ID:         id,
		DivisionID: "div-1",
		Round:      round,
		PlayedAt:   time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC).AddDate(0, 0, round*7),
		Venue:      "Queen Elizabeth Stadium",
		HomeTeam:   home,
		AwayTeam:   away,
	}
}

func testResult(fixtureID string, homeTotal, awayTotal int, status model.ResultStatus) model.MatchResult {
	return model.MatchResult{
		ID:              "res-" + fixtureID,
		FixtureID:       fixtureID,
		HomeTotalPoints: homeTotal,
		AwayTotalPoints: awayTotal,
		Submitted:       true,
		Status:          status,
	}
}
