package store

import (
	"path/filepath"
	"testing"
	"time"

	"gopingpong-app/internal/model"
)

const sqliteMigrationsDir = "../../migrations"

func newSQLiteTestStore(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(path, SQLiteOptions{MigrationsDir: sqliteMigrationsDir})
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	return s
}

func seedSQLiteDivision(t *testing.T, s *SQLiteStore) (model.Division, model.Team, model.Team, model.Fixture) {
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
		Members: []model.Member{
			{UserID: "u-home", Status: model.MemberApproved},
			{UserID: "u-sub", Status: model.MemberPending},
		},
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
	fixture, err := s.CreateFixture(model.Fixture{
		DivisionID: division.ID,
		Round:      1,
		PlayedAt:   time.Date(2026, 3, 8, 19, 0, 0, 0, time.UTC),
		Venue:      "Queen Elizabeth Stadium",
		HomeTeam:   home,
		AwayTeam:   away,
	})
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	return division, home, away, fixture
}

func TestSQLiteRoundTrip(t *testing.T) {
	s := newSQLiteTestStore(t, filepath.Join(t.TempDir(), "league.db"))
	division, home, _, fixture := seedSQLiteDivision(t, s)

	gotDivision, ok := s.GetDivision(division.ID)
	if !ok {
		t.Fatal("division not found after create")
	}
	if gotDivision.DisplayName() != "Division A 2026" {
		t.Errorf("display name: want Division A 2026, got %q", gotDivision.DisplayName())
	}

	gotTeam, ok := s.GetTeam(home.ID)
	if !ok {
		t.Fatal("team not found after create")
	}
	if len(gotTeam.Members) != 2 {
		t.Fatalf("members did not survive the json column: want 2, got %d", len(gotTeam.Members))
	}
	if !gotTeam.HasMember("u-home") || gotTeam.HasMember("u-sub") {
		t.Error("member statuses did not survive the json column")
	}

	gotFixture, ok := s.GetFixture(fixture.ID)
	if !ok {
		t.Fatal("fixture not found after create")
	}
	if gotFixture.HomeTeam.Name != "Kowloon Smashers" || gotFixture.AwayTeam.Name != "Island Spinners" {
		t.Errorf("fixture teams not hydrated: got %q vs %q", gotFixture.HomeTeam.Name, gotFixture.AwayTeam.Name)
	}
	if gotFixture.Venue != "Queen Elizabeth Stadium" || gotFixture.Round != 1 {
		t.Errorf("fixture fields lost: got %q round %d", gotFixture.Venue, gotFixture.Round)
	}

	res, err := s.CreateResult(model.MatchResult{
		FixtureID:       fixture.ID,
		HomeTotalPoints: 6,
		HomePlayerPoint: 2,
		AwayTotalPoints: 4,
		GameResults: []model.GameResult{
			{HomeSetResult: 11, AwaySetResult: 7},
			{HomeSetResult: 9, AwaySetResult: 11},
		},
		Submitted:   true,
		SubmittedBy: "u-home",
	})
	if err != nil {
		t.Fatalf("create result: %v", err)
	}
	if res.Status != model.ResultPending {
		t.Errorf("default status: want pending, got %s", res.Status)
	}

	gotRes, ok := s.GetResult(res.ID)
	if !ok {
		t.Fatal("result not found after create")
	}
	if len(gotRes.GameResults) != 2 || gotRes.GameResults[1].AwaySetResult != 11 {
		t.Errorf("game results did not survive the json column: %+v", gotRes.GameResults)
	}
	if gotRes.HomeTotalPoints != 6 || !gotRes.Submitted {
		t.Errorf("result fields lost: got %d submitted=%v", gotRes.HomeTotalPoints, gotRes.Submitted)
	}

	gotRes.Status = model.ResultRejected
	gotRes.RejectReason = "set scores do not match the scoresheet"
	if err := s.UpdateResult(gotRes); err != nil {
		t.Fatalf("update result: %v", err)
	}
	updated, _ := s.GetResultByFixture(fixture.ID)
	if updated.Status != model.ResultRejected || updated.RejectReason == "" {
		t.Errorf("update lost fields: got %s %q", updated.Status, updated.RejectReason)
	}

	team, ok := s.TeamForUser(division.ID, "u-home")
	if !ok || team.ID != home.ID {
		t.Errorf("TeamForUser: want %s, got %s (found=%v)", home.ID, team.ID, ok)
	}
	if _, ok := s.TeamForUser(division.ID, "u-sub"); ok {
		t.Error("pending member should have no team")
	}
}

func TestSQLiteOneResultPerFixture(t *testing.T) {
	s := newSQLiteTestStore(t, filepath.Join(t.TempDir(), "league.db"))
	_, _, _, fixture := seedSQLiteDivision(t, s)

	if _, err := s.CreateResult(model.MatchResult{FixtureID: fixture.ID}); err != nil {
		t.Fatalf("create result: %v", err)
	}
	if _, err := s.CreateResult(model.MatchResult{FixtureID: fixture.ID}); err == nil {
		t.Error("second result for the same fixture should be refused")
	}
}

func TestSQLiteDuplicateEmailRefused(t *testing.T) {
	s := newSQLiteTestStore(t, filepath.Join(t.TempDir(), "league.db"))
	if _, err := s.CreateUser(model.User{Name: "Wing Yan Lee", Email: "wing@gopingpong.hk"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := s.CreateUser(model.User{Name: "Dup", Email: "wing@gopingpong.hk"}); err == nil {
		t.Error("duplicate email should be refused by the unique column")
	}
}

func TestSQLiteMigrationsApplyOncePerDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "league.db")
	first := newSQLiteTestStore(t, path)
	division, _, _, _ := seedSQLiteDivision(t, first)

	// a second open must skip the recorded migrations and see the same data
	second := newSQLiteTestStore(t, path)
	got, ok := second.GetDivision(division.ID)
	if !ok {
		t.Fatal("division did not survive a reopen")
	}
	if got.Name != "Division A" {
		t.Errorf("reopened division: want Division A, got %q", got.Name)
	}
	if len(second.ListTeams(division.ID)) != 2 {
		t.Errorf("reopened teams: want 2, got %d", len(second.ListTeams(division.ID)))
	}
}
