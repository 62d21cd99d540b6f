package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopingpong-app/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

type SQLiteOptions struct {
	MigrationsDir string
}

func NewSQLiteStore(path string, opts SQLiteOptions) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	migrationsDir := strings.TrimSpace(opts.MigrationsDir)
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	if err := applyMigrations(db, migrationsDir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) ListUsers() []model.User {
	rows, err := s.db.Query(`SELECT id, name, email, role FROM users`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role); err != nil {
			continue
		}
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users
}

func (s *SQLiteStore) GetUser(id string) (model.User, bool) {
	var u model.User
	err := s.db.QueryRow(`SELECT id, name, email, role FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role)
	if err != nil {
		return model.User{}, false
	}
	return u, true
}

func (s *SQLiteStore) CreateUser(user model.User) (model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if strings.TrimSpace(user.Email) == "" {
		return model.User{}, errors.New("email is required")
	}
	if user.Role == "" {
		user.Role = model.RolePlayer
	}
	_, err := s.db.Exec(`INSERT INTO users (id, name, email, role) VALUES ($1,$2,$3,$4)`,
		user.ID, user.Name, user.Email, string(user.Role),
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return model.User{}, errors.New("email already exists")
		}
		return model.User{}, err
	}
	return user, nil
}

func (s *SQLiteStore) ListDivisions() []model.Division {
	rows, err := s.db.Query(`SELECT id, name, season, organizer_id, created_at FROM divisions`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	divisions := []model.Division{}
	for rows.Next() {
		division, err := scanDivisionRow(rows)
		if err != nil {
			continue
		}
		divisions = append(divisions, division)
	}
	sort.Slice(divisions, func(i, j int) bool { return divisions[i].CreatedAt.After(divisions[j].CreatedAt) })
	return divisions
}

func (s *SQLiteStore) GetDivision(id string) (model.Division, bool) {
	row := s.db.QueryRow(`SELECT id, name, season, organizer_id, created_at FROM divisions WHERE id = $1`, id)
	division, err := scanDivisionRow(row)
	if err != nil {
		return model.Division{}, false
	}
	return division, true
}

func (s *SQLiteStore) CreateDivision(division model.Division) (model.Division, error) {
	if division.ID == "" {
		division.ID = uuid.NewString()
	}
	if division.CreatedAt.IsZero() {
		division.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO divisions (id, name, season, organizer_id, created_at) VALUES ($1,$2,$3,$4,$5)`,
		division.ID, division.Name, division.Season, division.OrganizerID, division.CreatedAt,
	)
	if err != nil {
		return model.Division{}, err
	}
	return division, nil
}

func (s *SQLiteStore) ListTeams(divisionID string) []model.Team {
	rows, err := s.db.Query(`SELECT id, division_id, name, members_json FROM teams WHERE division_id = $1`, divisionID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	teams := []model.Team{}
	for rows.Next() {
		team, err := scanTeamRow(rows)
		if err != nil {
			continue
		}
		teams = append(teams, team)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams
}

func (s *SQLiteStore) GetTeam(id string) (model.Team, bool) {
	row := s.db.QueryRow(`SELECT id, division_id, name, members_json FROM teams WHERE id = $1`, id)
	team, err := scanTeamRow(row)
	if err != nil {
		return model.Team{}, false
	}
	return team, true
}

func (s *SQLiteStore) CreateTeam(team model.Team) (model.Team, error) {
	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO teams (id, division_id, name, members_json) VALUES ($1,$2,$3,$4)`,
		team.ID, team.DivisionID, team.Name, toJSON(team.Members),
	)
	if err != nil {
		return model.Team{}, err
	}
	return team, nil
}

func (s *SQLiteStore) UpdateTeam(team model.Team) error {
	res, err := s.db.Exec(`UPDATE teams SET division_id = $1, name = $2, members_json = $3 WHERE id = $4`,
		team.DivisionID, team.Name, toJSON(team.Members), team.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("team not found")
	}
	return nil
}

func (s *SQLiteStore) TeamForUser(divisionID, userID string) (model.Team, bool) {
	for _, team := range s.ListTeams(divisionID) {
		if team.HasMember(userID) {
			return team, true
		}
	}
	return model.Team{}, false
}

func (s *SQLiteStore) ListFixtures(divisionID string) []model.Fixture {
	rows, err := s.db.Query(`SELECT id, division_id, round, played_at, venue, home_team_id, away_team_id FROM fixtures WHERE division_id = $1 ORDER BY round, played_at`, divisionID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	fixtures := []model.Fixture{}
	for rows.Next() {
		fixture, homeID, awayID, err := scanFixtureRow(rows)
		if err != nil {
			continue
		}
		fixtures = append(fixtures, s.hydrateFixture(fixture, homeID, awayID))
	}
	return fixtures
}

func (s *SQLiteStore) GetFixture(id string) (model.Fixture, bool) {
	row := s.db.QueryRow(`SELECT id, division_id, round, played_at, venue, home_team_id, away_team_id FROM fixtures WHERE id = $1`, id)
	fixture, homeID, awayID, err := scanFixtureRow(row)
	if err != nil {
		return model.Fixture{}, false
	}
	return s.hydrateFixture(fixture, homeID, awayID), true
}

func (s *SQLiteStore) CreateFixture(fixture model.Fixture) (model.Fixture, error) {
	if fixture.ID == "" {
		fixture.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO fixtures (id, division_id, round, played_at, venue, home_team_id, away_team_id) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		fixture.ID, fixture.DivisionID, fixture.Round, timeValuePtr(fixture.PlayedAt), fixture.Venue, fixture.HomeTeam.ID, fixture.AwayTeam.ID,
	)
	if err != nil {
		return model.Fixture{}, err
	}
	return s.hydrateFixture(fixture, fixture.HomeTeam.ID, fixture.AwayTeam.ID), nil
}

func (s *SQLiteStore) hydrateFixture(fx model.Fixture, homeID, awayID string) model.Fixture {
	if t, ok := s.GetTeam(homeID); ok {
		fx.HomeTeam = t
	}
	if t, ok := s.GetTeam(awayID); ok {
		fx.AwayTeam = t
	}
	return fx
}

func (s *SQLiteStore) ListResults(divisionID string) []model.MatchResult {
	rows, err := s.db.Query(`SELECT r.id, r.fixture_id, r.home_total_points, r.home_additional_point, r.home_player_point, r.away_total_points, r.away_additional_point, r.away_player_point, r.game_results_json, r.submitted, r.status, r.reject_reason, r.submitted_by, r.created_at, r.updated_at
FROM match_results r JOIN fixtures f ON f.id = r.fixture_id WHERE f.division_id = $1`, divisionID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	results := []model.MatchResult{}
	for rows.Next() {
		result, err := scanResultRow(rows)
		if err != nil {
			continue
		}
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CreatedAt.After(results[j].CreatedAt) })
	return results
}

func (s *SQLiteStore) GetResult(id string) (model.MatchResult, bool) {
	row := s.db.QueryRow(`SELECT id, fixture_id, home_total_points, home_additional_point, home_player_point, away_total_points, away_additional_point, away_player_point, game_results_json, submitted, status, reject_reason, submitted_by, created_at, updated_at FROM match_results WHERE id = $1`, id)
	result, err := scanResultRow(row)
	if err != nil {
		return model.MatchResult{}, false
	}
	return result, true
}

func (s *SQLiteStore) GetResultByFixture(fixtureID string) (model.MatchResult, bool) {
	row := s.db.QueryRow(`SELECT id, fixture_id, home_total_points, home_additional_point, home_player_point, away_total_points, away_additional_point, away_player_point, game_results_json, submitted, status, reject_reason, submitted_by, created_at, updated_at FROM match_results WHERE fixture_id = $1 LIMIT 1`, fixtureID)
	result, err := scanResultRow(row)
	if err != nil {
		return model.MatchResult{}, false
	}
	return result, true
}

func (s *SQLiteStore) CreateResult(result model.MatchResult) (model.MatchResult, error) {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now()
	}
	if result.UpdatedAt.IsZero() {
		result.UpdatedAt = result.CreatedAt
	}
	if result.Status == "" {
		result.Status = model.ResultPending
	}
	if _, ok := s.GetResultByFixture(result.FixtureID); ok {
		return model.MatchResult{}, errors.New("fixture already has a result")
	}
	_, err := s.db.Exec(`INSERT INTO match_results (id, fixture_id, home_total_points, home_additional_point, home_player_point, away_total_points, away_additional_point, away_player_point, game_results_json, submitted, status, reject_reason, submitted_by, created_at, updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		result.ID, result.FixtureID,
		result.HomeTotalPoints, result.HomeAdditionalPoint, result.HomePlayerPoint,
		result.AwayTotalPoints, result.AwayAdditionalPoint, result.AwayPlayerPoint,
		toJSON(result.GameResults), result.Submitted, string(result.Status), result.RejectReason,
		result.SubmittedBy, timeValuePtr(result.CreatedAt), timeValuePtr(result.UpdatedAt),
	)
	if err != nil {
		return model.MatchResult{}, err
	}
	return result, nil
}

func (s *SQLiteStore) UpdateResult(result model.MatchResult) error {
	result.UpdatedAt = time.Now()
	res, err := s.db.Exec(`UPDATE match_results SET home_total_points = $1, home_additional_point = $2, home_player_point = $3, away_total_points = $4, away_additional_point = $5, away_player_point = $6, game_results_json = $7, submitted = $8, status = $9, reject_reason = $10, submitted_by = $11, updated_at = $12 WHERE id = $13`,
		result.HomeTotalPoints, result.HomeAdditionalPoint, result.HomePlayerPoint,
		result.AwayTotalPoints, result.AwayAdditionalPoint, result.AwayPlayerPoint,
		toJSON(result.GameResults), result.Submitted, string(result.Status), result.RejectReason,
		result.SubmittedBy, timeValuePtr(result.UpdatedAt), result.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("result not found")
	}
	return nil
}
