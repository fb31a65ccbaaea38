package viewmodel

import (
	"context"
	"time"

	"github.com/Veraticus/fintracker/internal/controller"
	"github.com/Veraticus/fintracker/internal/model"
	"github.com/Veraticus/fintracker/internal/repository"
	"github.com/Veraticus/fintracker/internal/resource"
)

// TransactionState is the transactions (expenses/incomes) screen snapshot.
type TransactionState struct {
	SelectedType model.EntryType
	Period       model.Period
	ListState[model.Transaction]
}

// NewTransactionState returns the screen defaults: expenses for the current month.
func NewTransactionState() TransactionState {
	return TransactionState{
		ListState:    NewListState[model.Transaction](),
		SelectedType: model.EntryTypeExpense,
		Period:       model.PeriodMonth,
	}
}

// Visible returns the transactions of the selected type inside the selected period.
func (s TransactionState) Visible(now time.Time) []model.Transaction {
	return FilterByPeriod(FilterByType(s.Items, s.SelectedType), s.Period, now)
}

// Balance sums the visible transactions.
func (s TransactionState) Balance(now time.Time) float64 {
	return Total(s.Visible(now))
}

// Chart lays out the visible transactions as pie segments.
func (s TransactionState) Chart(now time.Time) []Segment {
	return Chart(s.Visible(now))
}

func foldTransactions(s TransactionState, r resource.Resource[[]model.Transaction]) TransactionState {
	s.ListState = FoldList(s.ListState, r)
	return s
}

func foldCreatedTransaction(s TransactionState, r resource.Resource[model.Transaction]) TransactionState {
	s.ListState = FoldAppend(s.ListState, r)
	return s
}

// TransactionViewModel drives the transactions screen.
type TransactionViewModel struct {
	ctrl *controller.Controller[TransactionState]
	repo repository.Transactions
	now  func() time.Time
}

// NewTransactionViewModel creates the view model and starts the initial fetch.
func NewTransactionViewModel(ctx context.Context, repo repository.Transactions, opts ...controller.Option) *TransactionViewModel {
	vm := &TransactionViewModel{
		ctrl: controller.New(ctx, "transactions", NewTransactionState(), opts...),
		repo: repo,
		now:  time.Now,
	}
	vm.Fetch()
	return vm
}

// State returns the latest snapshot.
func (vm *TransactionViewModel) State() TransactionState { return vm.ctrl.State() }

// Subscribe observes snapshots.
func (vm *TransactionViewModel) Subscribe() (<-chan TransactionState, func()) {
	return vm.ctrl.Subscribe()
}

// Close tears the view model down.
func (vm *TransactionViewModel) Close() { vm.ctrl.Close() }

// Fetch reloads the list.
func (vm *TransactionViewModel) Fetch() {
	controller.Start(vm.ctrl, opFetch, vm.repo.FetchAll, foldTransactions, nil)
}

// OnTypeSelected switches between expenses and incomes.
func (vm *TransactionViewModel) OnTypeSelected(t model.EntryType) TransactionState {
	return vm.ctrl.Update(func(s TransactionState) TransactionState {
		s.SelectedType = t
		return s
	})
}

// OnPeriodSelected changes the time filter.
func (vm *TransactionViewModel) OnPeriodSelected(p model.Period) TransactionState {
	return vm.ctrl.Update(func(s TransactionState) TransactionState {
		s.Period = p
		return s
	})
}

// Visible returns what the list shows right now.
func (vm *TransactionViewModel) Visible() []model.Transaction {
	return vm.State().Visible(vm.now())
}

// Balance returns the header total.
func (vm *TransactionViewModel) Balance() float64 {
	return vm.State().Balance(vm.now())
}

// Chart returns the pie segments for the visible transactions.
func (vm *TransactionViewModel) Chart() []Segment {
	return vm.State().Chart(vm.now())
}

// Create records a transaction, appends it on success, refetches, then calls onSuccess.
// Loading is set and any previous error cleared before the request starts.
func (vm *TransactionViewModel) Create(txn model.Transaction, onSuccess func()) {
	vm.ctrl.Update(func(s TransactionState) TransactionState {
		s.IsLoading = true
		s.Error = ""
		return s
	})
	controller.Start(vm.ctrl, opCreate,
		func(ctx context.Context) resource.Stream[model.Transaction] {
			return vm.repo.Create(ctx, txn)
		},
		foldCreatedTransaction,
		func(r resource.Resource[model.Transaction]) {
			if !r.IsSuccess() {
				return
			}
			vm.Fetch()
			if onSuccess != nil {
				onSuccess()
			}
		},
	)
}
