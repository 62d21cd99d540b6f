package league

import "gopingpong-app/internal/model"

type Perspective string

type Outcome string

const (
	PerspectiveHome    Perspective = "home"
	PerspectiveAway    Perspective = "away"
	PerspectiveNeutral Perspective = "neutral"

	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
	OutcomeDraw Outcome = "draw"
	OutcomeNone Outcome = ""
)

// PerspectiveOf places a viewer on one side of a fixture. Viewers who are
// approved members of neither team get PerspectiveNeutral; callers must not
// collapse that into a home default.
func PerspectiveOf(fx model.Fixture, viewerID string) Perspective {
	if fx.HomeTeam.HasMember(viewerID) {
		return PerspectiveHome
	}
	if fx.AwayTeam.HasMember(viewerID) {
		return PerspectiveAway
	}
	return PerspectiveNeutral
}

// ResolveOutcome compares aggregate point totals from the given perspective.
// A neutral perspective has no outcome. Callers must check that a result
// exists before calling; a missing result is "no outcome yet", not 0-0.
func ResolveOutcome(homeTotal, awayTotal int, p Perspective) Outcome {
	switch p {
	case PerspectiveHome:
		if homeTotal > awayTotal {
			return OutcomeWin
		}
		if homeTotal < awayTotal {
			return OutcomeLose
		}
		return OutcomeDraw
	case PerspectiveAway:
		if awayTotal > homeTotal {
			return OutcomeWin
		}
		if awayTotal < homeTotal {
			return OutcomeLose
		}
		return OutcomeDraw
	}
	return OutcomeNone
}

// OutcomeFor resolves a record's outcome for a viewer, or OutcomeNone when
// the record has no result yet or the viewer is neutral.
func OutcomeFor(rec CombinedRecord, viewerID string) Outcome {
	if rec.Result == nil {
		return OutcomeNone
	}
	p := PerspectiveOf(rec.Fixture, viewerID)
	if p == PerspectiveNeutral {
		return OutcomeNone
	}
	return ResolveOutcome(TotalPoints(*rec.Result, SideHome), TotalPoints(*rec.Result, SideAway), p)
}
