package internal

import (
	"errors"
	"testing"
)

func gk(price int) Player  { return Player{Position: PositionGoalkeeper, Price: price} }
func out(price int) Player { return Player{Position: PositionOutfield, Price: price} }

func TestValidateRoster_OK(t *testing.T) {
	players := []Player{gk(50), out(50), out(50), out(50), out(50)}
	if err := ValidateRoster(players); err != nil {
		t.Fatalf("expected valid roster, got %v", err)
	}
}

func TestValidateRoster_ExactBudget(t *testing.T) {
	// 250 is a ceiling, not a strict bound
	players := []Player{gk(50), out(50), out(50), out(50), out(50)}
	if err := ValidateRoster(players); err != nil {
		t.Fatalf("sum exactly 250 must pass, got %v", err)
	}
}

func TestValidateRoster_TwoGoalkeepers(t *testing.T) {
	players := []Player{gk(10), gk(10), out(10), out(10), out(10)}
	if err := ValidateRoster(players); !errors.Is(err, ErrNoGoalkeeper) {
		t.Fatalf("expected ErrNoGoalkeeper, got %v", err)
	}
}

func TestValidateRoster_NoGoalkeeper(t *testing.T) {
	players := []Player{out(10), out(10), out(10), out(10), out(10)}
	if err := ValidateRoster(players); !errors.Is(err, ErrNoGoalkeeper) {
		t.Fatalf("expected ErrNoGoalkeeper, got %v", err)
	}
}

func TestValidateRoster_TooFewOutfield(t *testing.T) {
	players := []Player{gk(10), out(10), out(10), out(10)}
	if err := ValidateRoster(players); !errors.Is(err, ErrOutfieldCount) {
		t.Fatalf("expected ErrOutfieldCount, got %v", err)
	}
}

func TestValidateRoster_TooManyOutfield(t *testing.T) {
	players := []Player{gk(10), out(10), out(10), out(10), out(10), out(10)}
	if err := ValidateRoster(players); !errors.Is(err, ErrOutfieldCount) {
		t.Fatalf("expected ErrOutfieldCount, got %v", err)
	}
}

func TestValidateRoster_BudgetExceeded(t *testing.T) {
	players := []Player{gk(60), out(50), out(50), out(50), out(50)}
	if err := ValidateRoster(players); !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("expected ErrBudgetExceeded, got %v", err)
	}
}

func TestValidateRoster_GoalkeeperBeforeBudget(t *testing.T) {
	// composition errors win over the budget check
	players := []Player{gk(100), gk(100), out(100), out(100), out(100)}
	if err := ValidateRoster(players); !errors.Is(err, ErrNoGoalkeeper) {
		t.Fatalf("expected ErrNoGoalkeeper, got %v", err)
	}
}

func TestDedupIDs(t *testing.T) {
	got := dedupIDs([]int{3, 1, 3, 2, 1})
	want := []int{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		assertEq(t, got[i], want[i])
	}
}

// --- small helpers ---
func assertEq[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}
