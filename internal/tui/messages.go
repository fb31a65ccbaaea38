package tui

import "github.com/Veraticus/fintracker/internal/viewmodel"

// Screen identifies one of the top-level screens.
type Screen int

const (
	ScreenCategories Screen = iota
	ScreenTransactions
	ScreenGoals
)

// screenCount is the number of top-level screens.
const screenCount = 3

// categoryStateMsg carries a new categories snapshot.
type categoryStateMsg struct {
	state viewmodel.CategoryState
}

// transactionStateMsg carries a new transactions snapshot.
type transactionStateMsg struct {
	state viewmodel.TransactionState
}

// goalStateMsg carries a new goals snapshot.
type goalStateMsg struct {
	state viewmodel.GoalState
}

// formSubmittedMsg is sent once a create request succeeded.
type formSubmittedMsg struct {
	kind formKind
}

// subscriptionClosedMsg is sent when a view model stops publishing.
type subscriptionClosedMsg struct{}
