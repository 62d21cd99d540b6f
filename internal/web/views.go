package web

import (
	"fmt"
	"time"

	"gopingpong-app/internal/league"
	"gopingpong-app/internal/model"
)

type TeamView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ResultView struct {
	ID                  string             `json:"id"`
	FixtureID           string             `json:"fixture_id"`
	HomeTotalPoints     int                `json:"home_total_points"`
	HomeAdditionalPoint int                `json:"home_additional_point"`
	HomePlayerPoint     int                `json:"home_player_point"`
	AwayTotalPoints     int                `json:"away_total_points"`
	AwayAdditionalPoint int                `json:"away_additional_point"`
	AwayPlayerPoint     int                `json:"away_player_point"`
	HomeTotal           int                `json:"home_total"`
	AwayTotal           int                `json:"away_total"`
	GameResults         []model.GameResult `json:"game_results"`
	Submitted           bool               `json:"submitted"`
	Status              string             `json:"status"`
	RejectReason        string             `json:"reject_reason,omitempty"`
	SubmittedBy         string             `json:"submitted_by,omitempty"`
}

type FixtureView struct {
	ID        string      `json:"id"`
	Round     int         `json:"round"`
	PlayedAt  time.Time   `json:"played_at"`
	Venue     string      `json:"venue"`
	HomeTeam  TeamView    `json:"home_team"`
	AwayTeam  TeamView    `json:"away_team"`
	State     string      `json:"state"`
	Status    string      `json:"status"`
	ScoreLine string      `json:"score_line"`
	SetsLine  string      `json:"sets_line"`
	Outcome   string      `json:"outcome,omitempty"`
	Neutral   bool        `json:"neutral"`
	Tappable  bool        `json:"tappable"`
	Actions   []string    `json:"actions"`
	Result    *ResultView `json:"result,omitempty"`
}

type DivisionView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Season      string    `json:"season"`
	DisplayName string    `json:"display_name"`
	OrganizerID string    `json:"organizer_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type StandingView struct {
	Pos           int      `json:"pos"`
	Team          TeamView `json:"team"`
	Played        int      `json:"played"`
	Won           int      `json:"won"`
	Drawn         int      `json:"drawn"`
	Lost          int      `json:"lost"`
	SetsWon       int      `json:"sets_won"`
	SetsLost      int      `json:"sets_lost"`
	PointsFor     int      `json:"points_for"`
	PointsAgainst int      `json:"points_against"`
	Points        int      `json:"points"`
}

type BucketsView struct {
	Draft     []FixtureView `json:"draft,omitempty"`
	Pending   []FixtureView `json:"pending"`
	Published []FixtureView `json:"published"`
}

func divisionView(d model.Division) DivisionView {
	return DivisionView{
		ID:          d.ID,
		Name:        d.Name,
		Season:      d.Season,
		DisplayName: d.DisplayName(),
		OrganizerID: d.OrganizerID,
		CreatedAt:   d.CreatedAt,
	}
}

func teamView(t model.Team) TeamView {
	return TeamView{ID: t.ID, Name: t.Name}
}

func resultView(res model.MatchResult) *ResultView {
	view := &ResultView{
		ID:                  res.ID,
		FixtureID:           res.FixtureID,
		HomeTotalPoints:     res.HomeTotalPoints,
		HomeAdditionalPoint: res.HomeAdditionalPoint,
		HomePlayerPoint:     res.HomePlayerPoint,
		AwayTotalPoints:     res.AwayTotalPoints,
		AwayAdditionalPoint: res.AwayAdditionalPoint,
		AwayPlayerPoint:     res.AwayPlayerPoint,
		HomeTotal:           league.TotalPoints(res, league.SideHome),
		AwayTotal:           league.TotalPoints(res, league.SideAway),
		GameResults:         res.GameResults,
		Submitted:           res.Submitted,
		Status:              string(res.Status),
		SubmittedBy:         res.SubmittedBy,
	}
	// reject reason is meaningless outside the rejected state
	if res.Status == model.ResultRejected {
		view.RejectReason = res.RejectReason
	}
	return view
}

// fixtureView annotates one combined record for the requesting viewer:
// derived state, available actions, outcome from the viewer's perspective,
// and whether the record may be opened at all.
func (s *Server) fixtureView(division model.Division, rec league.CombinedRecord, viewer model.User) FixtureView {
	role := s.roleFor(division, rec.Fixture, viewer)
	perspective := league.PerspectiveOf(rec.Fixture, viewer.ID)
	canView := league.CanView(rec, role)

	view := FixtureView{
		ID:        rec.Fixture.ID,
		Round:     rec.Fixture.Round,
		PlayedAt:  rec.Fixture.PlayedAt,
		Venue:     rec.Fixture.Venue,
		HomeTeam:  teamView(rec.Fixture.HomeTeam),
		AwayTeam:  teamView(rec.Fixture.AwayTeam),
		State:     string(league.StateOf(rec)),
		Status:    league.StatusLabel(rec),
		ScoreLine: "-",
		SetsLine:  "-",
		Neutral:   perspective == league.PerspectiveNeutral,
		Tappable:  canView && rec.Result != nil,
		Actions:   actionStrings(league.AllowedActions(rec, role)),
	}
	if rec.Result == nil || !canView {
		return view
	}
	res := *rec.Result
	view.ScoreLine = fmt.Sprintf("%d : %d",
		league.TotalPoints(res, league.SideHome), league.TotalPoints(res, league.SideAway))
	view.SetsLine = fmt.Sprintf("%d : %d",
		league.SetsWon(res.GameResults, league.SideHome), league.SetsWon(res.GameResults, league.SideAway))
	view.Outcome = string(league.OutcomeFor(rec, viewer.ID))
	view.Result = resultView(res)
	return view
}

func standingViews(entries []league.StandingEntry) []StandingView {
	views := make([]StandingView, 0, len(entries))
	for _, e := range entries {
		views = append(views, StandingView{
			Pos:           e.Pos,
			Team:          teamView(e.Team),
			Played:        e.Played,
			Won:           e.Won,
			Drawn:         e.Drawn,
			Lost:          e.Lost,
			SetsWon:       e.SetsWon,
			SetsLost:      e.SetsLost,
			PointsFor:     e.PointsFor,
			PointsAgainst: e.PointsAgainst,
			Points:        e.Points,
		})
	}
	return views
}

func actionStrings(actions []league.Action) []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, string(a))
	}
	return out
}
