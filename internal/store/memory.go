package store

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"gopingpong-app/internal/model"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]model.User
	divisions map[string]model.Division
	teams     map[string]model.Team
	fixtures  map[string]model.Fixture
	results   map[string]model.MatchResult
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		users:     make(map[string]model.User),
		divisions: make(map[string]model.Division),
		teams:     make(map[string]model.Team),
		fixtures:  make(map[string]model.Fixture),
		results:   make(map[string]model.MatchResult),
	}
	if strings.ToLower(strings.TrimSpace(os.Getenv("APP"))) != "prod" {
		seedData(s)
	}
	return s
}

func (s *MemoryStore) ListUsers() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users
}

func (s *MemoryStore) GetUser(id string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	return u, ok
}

func (s *MemoryStore) CreateUser(user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if strings.TrimSpace(user.Email) == "" {
		return model.User{}, errors.New("email is required")
	}
	if user.Role == "" {
		user.Role = model.RolePlayer
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return model.User{}, errors.New("email already exists")
		}
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *MemoryStore) ListDivisions() []model.Division {
	s.mu.RLock()
	defer s.mu.RUnlock()

	divisions := make([]model.Division, 0, len(s.divisions))
	for _, d := range s.divisions {
		divisions = append(divisions, d)
	}
	sort.Slice(divisions, func(i, j int) bool { return divisions[i].CreatedAt.After(divisions[j].CreatedAt) })
	return divisions
}

func (s *MemoryStore) GetDivision(id string) (model.Division, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.divisions[id]
	return d, ok
}

func (s *MemoryStore) CreateDivision(division model.Division) (model.Division, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if division.ID == "" {
		division.ID = uuid.NewString()
	}
	if division.CreatedAt.IsZero() {
		division.CreatedAt = time.Now()
	}
	s.divisions[division.ID] = division
	return division, nil
}

func (s *MemoryStore) ListTeams(divisionID string) []model.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()

	teams := make([]model.Team, 0)
	for _, t := range s.teams {
		if t.DivisionID == divisionID {
			teams = append(teams, t)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams
}

func (s *MemoryStore) GetTeam(id string) (model.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[id]
	return t, ok
}

func (s *MemoryStore) CreateTeam(team model.Team) (model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	s.teams[team.ID] = team
	return team, nil
}

func (s *MemoryStore) UpdateTeam(team model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[team.ID]; !ok {
		return errors.New("team not found")
	}
	s.teams[team.ID] = team
	return nil
}

func (s *MemoryStore) TeamForUser(divisionID, userID string) (model.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.teams {
		if t.DivisionID == divisionID && t.HasMember(userID) {
			return t, true
		}
	}
	return model.Team{}, false
}

func (s *MemoryStore) ListFixtures(divisionID string) []model.Fixture {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fixtures := make([]model.Fixture, 0)
	for _, fx := range s.fixtures {
		if fx.DivisionID == divisionID {
			fixtures = append(fixtures, s.hydrateFixture(fx))
		}
	}
	sort.Slice(fixtures, func(i, j int) bool {
		if fixtures[i].Round != fixtures[j].Round {
			return fixtures[i].Round < fixtures[j].Round
		}
		return fixtures[i].PlayedAt.Before(fixtures[j].PlayedAt)
	})
	return fixtures
}

func (s *MemoryStore) GetFixture(id string) (model.Fixture, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fx, ok := s.fixtures[id]
	if !ok {
		return model.Fixture{}, false
	}
	return s.hydrateFixture(fx), true
}

func (s *MemoryStore) CreateFixture(fixture model.Fixture) (model.Fixture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fixture.ID == "" {
		fixture.ID = uuid.NewString()
	}
	if _, ok := s.teams[fixture.HomeTeam.ID]; !ok {
		return model.Fixture{}, errors.New("home team not found")
	}
	if _, ok := s.teams[fixture.AwayTeam.ID]; !ok {
		return model.Fixture{}, errors.New("away team not found")
	}
	s.fixtures[fixture.ID] = fixture
	return s.hydrateFixture(fixture), nil
}

// hydrateFixture refreshes the embedded teams from the team map so reads
// never see stale rosters. Callers must hold the lock.
func (s *MemoryStore) hydrateFixture(fx model.Fixture) model.Fixture {
	if t, ok := s.teams[fx.HomeTeam.ID]; ok {
		fx.HomeTeam = t
	}
	if t, ok := s.teams[fx.AwayTeam.ID]; ok {
		fx.AwayTeam = t
	}
	return fx
}

func (s *MemoryStore) ListResults(divisionID string) []model.MatchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]model.MatchResult, 0)
	for _, r := range s.results {
		fx, ok := s.fixtures[r.FixtureID]
		if !ok || fx.DivisionID != divisionID {
			continue
		}
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CreatedAt.After(results[j].CreatedAt) })
	return results
}

func (s *MemoryStore) GetResult(id string) (model.MatchResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.results[id]
	return r, ok
}

func (s *MemoryStore) GetResultByFixture(fixtureID string) (model.MatchResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.results {
		if r.FixtureID == fixtureID {
			return r, true
		}
	}
	return model.MatchResult{}, false
}

func (s *MemoryStore) CreateResult(result model.MatchResult) (model.MatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

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
	if _, ok := s.fixtures[result.FixtureID]; !ok {
		return model.MatchResult{}, errors.New("fixture not found")
	}
	for _, r := range s.results {
		if r.FixtureID == result.FixtureID {
			return model.MatchResult{}, errors.New("fixture already has a result")
		}
	}
	s.results[result.ID] = result
	return result, nil
}

func (s *MemoryStore) UpdateResult(result model.MatchResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.results[result.ID]; !ok {
		return errors.New("result not found")
	}
	result.UpdatedAt = time.Now()
	s.results[result.ID] = result
	return nil
}

func seedData(s *MemoryStore) {
	rng := rand.New(rand.NewSource(42))

	organizer := model.User{ID: uuid.NewString(), Name: "Ka Ming Chan", Email: "organizer@gopingpong.hk", Role: model.RoleOrganizer}
	s.users[organizer.ID] = organizer

	names := []string{
		"Wing Yan Lee", "Chi Hang Wong", "Siu Ming Lau", "Ka Yee Cheung",
		"Tsz Kin Ho", "Mei Ling Ng", "Hoi Yan Chow", "Ching Man Yip",
		"Wai Kit Tam", "Yuen Ting Fung", "Kwok Wai Leung", "Sze Wan Ma",
		"Chun Hei Tsang", "Lai Fan Kwan", "Man Hin Szeto", "Pui Shan Lo",
	}
	players := make([]model.User, 0, len(names))
	for i, name := range names {
		u := model.User{
			ID:    uuid.NewString(),
			Name:  name,
			Email: fmt.Sprintf("player%d@gopingpong.hk", i+1),
			Role:  model.RolePlayer,
		}
		s.users[u.ID] = u
		players = append(players, u)
	}

	division := model.Division{
		ID:          uuid.NewString(),
		Name:        "Division A",
		Season:      "2026",
		OrganizerID: organizer.ID,
		CreatedAt:   time.Now().AddDate(0, -2, 0),
	}
	s.divisions[division.ID] = division

	teamNames := []string{"Kowloon Smashers", "Island Spinners", "Sha Tin Loopers", "Mong Kok Blades"}
	teams := make([]model.Team, 0, len(teamNames))
	for i, name := range teamNames {
		members := make([]model.Member, 0, 4)
		for j := 0; j < 4; j++ {
			members = append(members, model.Member{
				UserID: players[i*4+j].ID,
				Status: model.MemberApproved,
			})
		}
		t := model.Team{ID: uuid.NewString(), DivisionID: division.ID, Name: name, Members: members}
		s.teams[t.ID] = t
		teams = append(teams, t)
	}

	// full double round robin, one pairing per round slot
	round := 1
	for i := range teams {
		for j := range teams {
			if i == j {
				continue
			}
			fx := model.Fixture{
				ID:         uuid.NewString(),
				DivisionID: division.ID,
				Round:      round,
				PlayedAt:   division.CreatedAt.AddDate(0, 0, round*7),
				Venue:      "Queen Elizabeth Stadium",
				HomeTeam:   teams[i],
				AwayTeam:   teams[j],
			}
			s.fixtures[fx.ID] = fx
			round++
			if fx.PlayedAt.After(time.Now()) {
				continue
			}
			seedResult(s, rng, fx)
		}
	}
}

func seedResult(s *MemoryStore, rng *rand.Rand, fx model.Fixture) {
	statuses := []model.ResultStatus{
		model.ResultPending,
		model.ResultAcknowledged,
		model.ResultRejected,
		model.ResultApproved,
		model.ResultApproved,
	}
	status := statuses[rng.Intn(len(statuses))]
	games := make([]model.GameResult, 0, 5)
	homeGames, awayGames := 0, 0
	for homeGames < 3 && awayGames < 3 {
		g := model.GameResult{HomeSetResult: 11, AwaySetResult: rng.Intn(10)}
		if rng.Intn(2) == 0 {
			g.HomeSetResult, g.AwaySetResult = g.AwaySetResult, g.HomeSetResult
			awayGames++
		} else {
			homeGames++
		}
		games = append(games, g)
	}
	homeMember := fx.HomeTeam.Members[rng.Intn(len(fx.HomeTeam.Members))]
	res := model.MatchResult{
		ID:              uuid.NewString(),
		FixtureID:       fx.ID,
		HomeTotalPoints: homeGames * 2,
		HomePlayerPoint: homeGames,
		AwayTotalPoints: awayGames * 2,
		AwayPlayerPoint: awayGames,
		GameResults:     games,
		Submitted:       true,
		Status:          status,
		SubmittedBy:     homeMember.UserID,
		CreatedAt:       fx.PlayedAt.Add(2 * time.Hour),
		UpdatedAt:       fx.PlayedAt.Add(2 * time.Hour),
	}
	if status == model.ResultRejected {
		res.RejectReason = "set scores do not match the scoresheet"
	}
	if rng.Intn(6) == 0 {
		res.Submitted = false
		res.Status = model.ResultPending
	}
	s.results[res.ID] = res
}
