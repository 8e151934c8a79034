package internal

import "errors"

const (
	// RosterOutfield is the required number of non-goalkeepers per team.
	RosterOutfield = 4
	// BudgetCeiling is the maximum combined price of a roster, in credits.
	BudgetCeiling = 250
)

var (
	ErrNoGoalkeeper   = errors.New("roster must have exactly 1 goalkeeper")
	ErrOutfieldCount  = errors.New("roster must have exactly 4 outfield players")
	ErrBudgetExceeded = errors.New("roster cost exceeds the budget of 250 credits")
)

// ValidateRoster checks squad composition over already-resolved players.
// Checks run in order and the first violation wins: goalkeeper count,
// outfield count, then budget.
func ValidateRoster(players []Player) error {
	goalkeepers := 0
	outfield := 0
	cost := 0
	for _, p := range players {
		if p.Position == PositionGoalkeeper {
			goalkeepers++
		} else {
			outfield++
		}
		cost += p.Price
	}
	if goalkeepers != 1 {
		return ErrNoGoalkeeper
	}
	if outfield != RosterOutfield {
		return ErrOutfieldCount
	}
	if cost > BudgetCeiling {
		return ErrBudgetExceeded
	}
	return nil
}

// dedupIDs drops duplicates while keeping first-seen order.
func dedupIDs(ids []int) []int {
	seen := map[int]bool{}
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
