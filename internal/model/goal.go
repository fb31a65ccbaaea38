package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal is a target amount the user is saving towards.
type SavingsGoal struct {
	Deadline      time.Time `json:"deadline,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	Name          string    `json:"name"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	ID            int       `json:"id"`
}

// Progress returns the saved fraction of the target, clamped to [0, 1].
func (g SavingsGoal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	ratio := decimal.NewFromFloat(g.CurrentAmount).Div(decimal.NewFromFloat(g.TargetAmount))
	if ratio.IsNegative() {
		return 0
	}
	if ratio.GreaterThan(decimal.NewFromInt(1)) {
		return 1
	}
	return ratio.InexactFloat64()
}

// Remaining returns how much is still missing to reach the target.
func (g SavingsGoal) Remaining() float64 {
	rest := decimal.NewFromFloat(g.TargetAmount).Sub(decimal.NewFromFloat(g.CurrentAmount))
	if rest.IsNegative() {
		return 0
	}
	return rest.InexactFloat64()
}
