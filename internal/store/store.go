package store

import "gopingpong-app/internal/model"

type Store interface {
	ListUsers() []model.User
	GetUser(id string) (model.User, bool)
	CreateUser(user model.User) (model.User, error)

	ListDivisions() []model.Division
	GetDivision(id string) (model.Division, bool)
	CreateDivision(division model.Division) (model.Division, error)

	ListTeams(divisionID string) []model.Team
	GetTeam(id string) (model.Team, bool)
	CreateTeam(team model.Team) (model.Team, error)
	UpdateTeam(team model.Team) error
	TeamForUser(divisionID, userID string) (model.Team, bool)

	ListFixtures(divisionID string) []model.Fixture
	GetFixture(id string) (model.Fixture, bool)
	CreateFixture(fixture model.Fixture) (model.Fixture, error)

	ListResults(divisionID string) []model.MatchResult
	GetResult(id string) (model.MatchResult, bool)
	GetResultByFixture(fixtureID string) (model.MatchResult, bool)
	CreateResult(result model.MatchResult) (model.MatchResult, error)
	UpdateResult(result model.MatchResult) error
}
