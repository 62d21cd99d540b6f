package league

import (
	"fmt"
	"strings"

	"gopingpong-app/internal/model"
)

type Role string

type Action string

type State string

const (
	RoleHome      Role = "home"
	RoleAway      Role = "away"
	RoleOrganizer Role = "organizer"
	RoleAudience  Role = "audience"

	ActionSubmit      Action = "submit"
	ActionEdit        Action = "edit"
	ActionAcknowledge Action = "acknowledge"
	ActionReject      Action = "reject"
	ActionApprove     Action = "approve"

	StateDraft        State = "draft"
	StatePending      State = "pending"
	StateAcknowledged State = "acknowledged"
	StateRejected     State = "rejected"
	StateApproved     State = "approved"
)

// ValidationError reports a workflow action that is not available for the
// current state and role. It never reflects a storage or transport failure.
type ValidationError struct {
	Action Action
	State  State
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("action %s is not available in state %s", e.Action, e.State)
}

func refuse(action Action, state State, reason string) error {
	return &ValidationError{Action: action, State: state, Reason: reason}
}

// StateOf derives the lifecycle state of a record. A missing result and an
// unsubmitted one are both Draft.
func StateOf(rec CombinedRecord) State {
	if rec.Result == nil || !rec.Result.Submitted {
		return StateDraft
	}
	return ResultState(*rec.Result)
}

func ResultState(res model.MatchResult) State {
	if !res.Submitted {
		return StateDraft
	}
	switch res.Status {
	case model.ResultAcknowledged:
		return StateAcknowledged
	case model.ResultRejected:
		return StateRejected
	case model.ResultApproved:
		return StateApproved
	default:
		return StatePending
	}
}

// RoleOf classifies the viewer relative to a fixture. Organizer authority
// wins over team membership.
func RoleOf(fx model.Fixture, viewerID string, organizer bool) Role {
	if organizer {
		return RoleOrganizer
	}
	switch PerspectiveOf(fx, viewerID) {
	case PerspectiveHome:
		return RoleHome
	case PerspectiveAway:
		return RoleAway
	}
	return RoleAudience
}

// allowed is the transition table: which actions each role may take from
// each state. Everything absent from the table is refused.
var allowed = map[State]map[Role][]Action{
	StateDraft: {
		RoleHome:      {ActionSubmit, ActionEdit},
		RoleOrganizer: {ActionEdit},
	},
	StatePending: {
		RoleAway:      {ActionAcknowledge, ActionReject},
		RoleOrganizer: {ActionEdit},
	},
	StateAcknowledged: {
		RoleOrganizer: {ActionApprove, ActionEdit},
	},
	StateRejected: {
		RoleHome:      {ActionSubmit, ActionEdit},
		RoleOrganizer: {ActionApprove, ActionEdit},
	},
	StateApproved: {
		RoleOrganizer: {ActionEdit},
	},
}

// AllowedActions lists the actions the viewer may take on a record right
// now. The result is decision data for the caller; nothing here mutates.
func AllowedActions(rec CombinedRecord, role Role) []Action {
	actions := allowed[StateOf(rec)][role]
	if len(actions) == 0 {
		return nil
	}
	out := make([]Action, len(actions))
	copy(out, actions)
	return out
}

func roleMay(state State, role Role, action Action) bool {
	for _, a := range allowed[state][role] {
		if a == action {
			return true
		}
	}
	return false
}

// Transition applies action to the result in place, or returns a
// *ValidationError and leaves it untouched. Persisting the mutated record is
// the caller's job.
func Transition(res *model.MatchResult, action Action, role Role, reason string) error {
	state := ResultState(*res)
	if !roleMay(state, role, action) {
		return refuse(action, state, "")
	}
	switch action {
	case ActionSubmit:
		res.Submitted = true
		res.Status = model.ResultPending
		res.RejectReason = ""
	case ActionAcknowledge:
		res.Status = model.ResultAcknowledged
	case ActionReject:
		if strings.TrimSpace(reason) == "" {
			return refuse(action, state, "a reject reason is required")
		}
		res.Status = model.ResultRejected
		res.RejectReason = reason
	case ActionApprove:
		res.Status = model.ResultApproved
		res.RejectReason = ""
	case ActionEdit:
		// edit changes scores only; lifecycle state stays put
	default:
		return refuse(action, state, "")
	}
	return nil
}

// CanView gates record visibility. Unsubmitted results are private to the
// home team (and to the organizer, who can always override); audience
// viewers only ever see approved results.
func CanView(rec CombinedRecord, role Role) bool {
	switch role {
	case RoleHome, RoleOrganizer:
		return true
	case RoleAway:
		return StateOf(rec) != StateDraft || rec.Result == nil
	default:
		return StateOf(rec) == StateApproved
	}
}

var stateLabels = map[State]string{
	StateDraft:        "Draft",
	StatePending:      "Waiting for opponent",
	StateAcknowledged: "Waiting for approval",
	StateRejected:     "Rejected",
	StateApproved:     "Published",
}

func StatusLabel(rec CombinedRecord) string {
	return stateLabels[StateOf(rec)]
}
