package league

import "gopingpong-app/internal/model"

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// TotalPoints sums the three point components of one side of a result.
// Win/lose decisions compare these sums, never a single component.
func TotalPoints(res model.MatchResult, side Side) int {
	if side == SideAway {
		return res.AwayTotalPoints + res.AwayAdditionalPoint + res.AwayPlayerPoint
	}
	return res.HomeTotalPoints + res.HomeAdditionalPoint + res.HomePlayerPoint
}

// SetsWon counts the games a side took outright. Tied games count for
// neither side.
func SetsWon(games []model.GameResult, side Side) int {
	won := 0
	for _, g := range games {
		if side == SideAway {
			if g.AwaySetResult > g.HomeSetResult {
				won++
			}
			continue
		}
		if g.HomeSetResult > g.AwaySetResult {
			won++
		}
	}
	return won
}

func TieCount(games []model.GameResult) int {
	ties := 0
	for _, g := range games {
		if g.HomeSetResult == g.AwaySetResult {
			ties++
		}
	}
	return ties
}
