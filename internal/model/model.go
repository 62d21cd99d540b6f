package model

import (
	"strings"
	"time"
)

type UserRole string

type MemberStatus string

type ResultStatus string

const (
	RolePlayer    UserRole = "player"
	RoleOrganizer UserRole = "organizer"

	MemberPending  MemberStatus = "pending"
	MemberApproved MemberStatus = "approved"
	MemberRejected MemberStatus = "rejected"

	ResultPending      ResultStatus = "pending"
	ResultAcknowledged ResultStatus = "acknowledged"
	ResultRejected     ResultStatus = "rejected"
	ResultApproved     ResultStatus = "approved"
)

type User struct {
	ID    string
	Name  string
	Email string
	Role  UserRole
}

type Division struct {
	ID          string
	Name        string
	Season      string
	OrganizerID string
	CreatedAt   time.Time
}

func (d Division) DisplayName() string {
	name := strings.TrimSpace(d.Name)
	season := strings.TrimSpace(d.Season)
	if season == "" {
		return name
	}
	if name == "" {
		return season
	}
	return name + " " + season
}

type Member struct {
	UserID string       `json:"user_id"`
	Status MemberStatus `json:"status"`
}

type Team struct {
	ID         string
	DivisionID string
	Name       string
	Members    []Member
}

// HasMember reports whether userID is an approved member of the team.
func (t Team) HasMember(userID string) bool {
	if userID == "" {
		return false
	}
	for _, m := range t.Members {
		if m.UserID == userID && m.Status == MemberApproved {
			return true
		}
	}
	return false
}

type Fixture struct {
	ID         string
	DivisionID string
	Round      int
	PlayedAt   time.Time
	Venue      string
	HomeTeam   Team
	AwayTeam   Team
}

type SetResult struct {
	HomePlayerScore int `json:"home_player_score"`
	AwayPlayerScore int `json:"away_player_score"`
}

type GameResult struct {
	HomeSetResult int         `json:"home_set_result"`
	AwaySetResult int         `json:"away_set_result"`
	SetResults    []SetResult `json:"set_results,omitempty"`
}

type MatchResult struct {
	ID                  string
	FixtureID           string
	HomeTotalPoints     int
	HomeAdditionalPoint int
	HomePlayerPoint     int
	AwayTotalPoints     int
	AwayAdditionalPoint int
	AwayPlayerPoint     int
	GameResults         []GameResult
	Submitted           bool
	Status              ResultStatus
	RejectReason        string
	SubmittedBy         string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
