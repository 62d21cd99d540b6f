package store

import (
	"testing"
	"time"

	"gopingpong-app/internal/model"
)

func emptyStore(t *testing.T) *MemoryStore {
	t.Helper()
	t.Setenv("APP", "prod")
	return NewMemoryStore()
}

func seedDivision(t *testing.T, s *MemoryStore) (model.Division, model.Team, model.Team) {
	t.Helper()
	organizer, err := s.CreateUser(model.User{Name: "Ka Ming Chan", Email: "organizer@gopingpong.hk", Role: model.RoleOrganizer})
	if err != nil {
		t.Fatalf("create organizer: %v", err)
	}
	division, err := s.CreateDivision(model.Division{Name: "Division A", Season: "2026", OrganizerID: organizer.ID})
	if err != nil {
		t.Fatalf("create division: %v", err)
	}
	home, err := s.CreateTeam(model.Team{
		DivisionID: division.ID,
		Name:       "Kowloon Smashers",
		Members:    []model.Member{{UserID: "u-home", Status: model.MemberApproved}},
	})
	if err != nil {
		t.Fatalf("create home team: %v", err)
	}
	away, err := s.CreateTeam(model.Team{
		DivisionID: division.ID,
		Name:       "Island Spinners",
		Members:    []model.Member{{UserID: "u-away", Status: model.MemberApproved}},
	})
	if err != nil {
		t.Fatalf("create away team: %v", err)
	}
	return division, home, away
}

func TestMemoryStoreSeedsOutsideProd(t *testing.T) {
	t.Setenv("APP", "dev")
	s := NewMemoryStore()
	divisions := s.ListDivisions()
	if len(divisions) == 0 {
		t.Fatal("dev store should come pre-seeded")
	}
	if len(s.ListTeams(divisions[0].ID)) != 4 {
		t.Errorf("seed teams: want 4, got %d", len(s.ListTeams(divisions[0].ID)))
	}
	if len(s.ListFixtures(divisions[0].ID)) == 0 {
		t.Error("seed fixtures missing")
	}
}

func TestMemoryStoreProdStartsEmpty(t *testing.T) {
	s := emptyStore(t)
	if got := len(s.ListDivisions()); got != 0 {
		t.Errorf("prod store: want 0 divisions, got %d", got)
	}
}

func TestCreateUserValidation(t *testing.T) {
	s := emptyStore(t)
	if _, err := s.CreateUser(model.User{Name: "No Email"}); err == nil {
		t.Error("missing email should be refused")
	}
	u, err := s.CreateUser(model.User{Name: "Wing Yan Lee", Email: "wing@gopingpong.hk"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.Role != model.RolePlayer {
		t.Errorf("default role: want player, got %s", u.Role)
	}
	if _, err := s.CreateUser(model.User{Name: "Dup", Email: "WING@gopingpong.hk"}); err == nil {
		t.Error("duplicate email should be refused case-insensitively")
	}
}

func TestFixtureHydration(t *testing.T) {
	s := emptyStore(t)
	division, home, away := seedDivision(t, s)

	fx, err := s.CreateFixture(model.Fixture{
		DivisionID: division.ID,
		Round:      1,
		PlayedAt:   time.Date(2026, 3, 8, 19, 0, 0, 0, time.UTC),
		HomeTeam:   home,
		AwayTeam:   away,
	})
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}

	home.Members = append(home.Members, model.Member{UserID: "u-new", Status: model.MemberApproved})
	if err := s.UpdateTeam(home); err != nil {
		t.Fatalf("update team: %v", err)
	}

	got, ok := s.GetFixture(fx.ID)
	if !ok {
		t.Fatal("fixture not found")
	}
	if !got.HomeTeam.HasMember("u-new") {
		t.Error("fixture reads should see the updated roster")
	}
}

func TestCreateFixtureRequiresKnownTeams(t *testing.T) {
	s := emptyStore(t)
	division, home, _ := seedDivision(t, s)
	_, err := s.CreateFixture(model.Fixture{
		DivisionID: division.ID,
		HomeTeam:   home,
		AwayTeam:   model.Team{ID: "t-ghost"},
	})
	if err == nil {
		t.Error("unknown away team should be refused")
	}
}

func TestListFixturesOrdered(t *testing.T) {
	s := emptyStore(t)
	division, home, away := seedDivision(t, s)
	base := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	for _, round := range []int{2, 1, 3} {
		if _, err := s.CreateFixture(model.Fixture{
			DivisionID: division.ID,
			Round:      round,
			PlayedAt:   base.AddDate(0, 0, round*7),
			HomeTeam:   home,
			AwayTeam:   away,
		}); err != nil {
			t.Fatalf("create fixture round %d: %v", round, err)
		}
	}
	fixtures := s.ListFixtures(division.ID)
	for i, want := range []int{1, 2, 3} {
		if fixtures[i].Round != want {
			t.Errorf("position %d: want round %d, got %d", i, want, fixtures[i].Round)
		}
	}
}

func TestCreateResultOnePerFixture(t *testing.T) {
	s := emptyStore(t)
	division, home, away := seedDivision(t, s)
	fx, err := s.CreateFixture(model.Fixture{DivisionID: division.ID, Round: 1, HomeTeam: home, AwayTeam: away})
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}

	res, err := s.CreateResult(model.MatchResult{FixtureID: fx.ID, HomeTotalPoints: 6})
	if err != nil {
		t.Fatalf("create result: %v", err)
	}
	if res.Status != model.ResultPending {
		t.Errorf("default status: want pending, got %s", res.Status)
	}
	if res.CreatedAt.IsZero() || res.UpdatedAt.IsZero() {
		t.Error("timestamps should be set on create")
	}

	if _, err := s.CreateResult(model.MatchResult{FixtureID: fx.ID}); err == nil {
		t.Error("second result for the same fixture should be refused")
	}
	if _, err := s.CreateResult(model.MatchResult{FixtureID: "fx-ghost"}); err == nil {
		t.Error("result for an unknown fixture should be refused")
	}

	byFixture, ok := s.GetResultByFixture(fx.ID)
	if !ok || byFixture.ID != res.ID {
		t.Error("GetResultByFixture should find the created result")
	}
}

func TestUpdateResult(t *testing.T) {
	s := emptyStore(t)
	division, home, away := seedDivision(t, s)
	fx, _ := s.CreateFixture(model.Fixture{DivisionID: division.ID, Round: 1, HomeTeam: home, AwayTeam: away})
	res, _ := s.CreateResult(model.MatchResult{FixtureID: fx.ID})

	res.Status = model.ResultApproved
	res.Submitted = true
	if err := s.UpdateResult(res); err != nil {
		t.Fatalf("update result: %v", err)
	}
	got, _ := s.GetResult(res.ID)
	if got.Status != model.ResultApproved || !got.Submitted {
		t.Errorf("update lost fields: got %s submitted=%v", got.Status, got.Submitted)
	}

	if err := s.UpdateResult(model.MatchResult{ID: "res-ghost"}); err == nil {
		t.Error("updating an unknown result should fail")
	}
}

func TestTeamForUser(t *testing.T) {
	s := emptyStore(t)
	division, home, _ := seedDivision(t, s)

	team, ok := s.TeamForUser(division.ID, "u-home")
	if !ok || team.ID != home.ID {
		t.Errorf("want %s, got %s (found=%v)", home.ID, team.ID, ok)
	}
	if _, ok := s.TeamForUser(division.ID, "u-nobody"); ok {
		t.Error("outsider should have no team")
	}
	if _, ok := s.TeamForUser("div-ghost", "u-home"); ok {
		t.Error("unknown division should have no team")
	}
}

func TestListResultsFiltersByDivision(t *testing.T) {
	s := emptyStore(t)
	division, home, away := seedDivision(t, s)
	other, _ := s.CreateDivision(model.Division{Name: "Division B", Season: "2026"})
	otherHome, _ := s.CreateTeam(model.Team{DivisionID: other.ID, Name: "Tsuen Wan Choppers"})
	otherAway, _ := s.CreateTeam(model.Team{DivisionID: other.ID, Name: "Tin Shui Waves"})

	fx, _ := s.CreateFixture(model.Fixture{DivisionID: division.ID, Round: 1, HomeTeam: home, AwayTeam: away})
	otherFx, _ := s.CreateFixture(model.Fixture{DivisionID: other.ID, Round: 1, HomeTeam: otherHome, AwayTeam: otherAway})
	if _, err := s.CreateResult(model.MatchResult{FixtureID: fx.ID}); err != nil {
		t.Fatalf("create result: %v", err)
	}
	if _, err := s.CreateResult(model.MatchResult{FixtureID: otherFx.ID}); err != nil {
		t.Fatalf("create other result: %v", err)
	}

	results := s.ListResults(division.ID)
	if len(results) != 1 || results[0].FixtureID != fx.ID {
		t.Errorf("want only this division's result, got %d", len(results))
	}
}
