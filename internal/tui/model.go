package tui

import (
	"time"

	"github.com/Veraticus/fintracker/internal/locale"
	"github.com/Veraticus/fintracker/internal/model"
	"github.com/Veraticus/fintracker/internal/tui/themes"
	"github.com/Veraticus/fintracker/internal/viewmodel"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/atomic"
)

// submission tracks one create request started from a form.
type submission struct {
	done      chan struct{}
	succeeded *atomic.Bool
	finished  *atomic.Bool
}

func newSubmission() *submission {
	return &submission{
		done:      make(chan struct{}),
		succeeded: atomic.NewBool(false),
		finished:  atomic.NewBool(false),
	}
}

func (s *submission) finish(ok bool) {
	if s == nil || !s.finished.CompareAndSwap(false, true) {
		return
	}
	s.succeeded.Store(ok)
	close(s.done)
}

// succeed is handed to the view model as its success callback.
func (s *submission) succeed() { s.finish(true) }

// abandon releases the waiting command after a failure or cancel.
func (s *submission) abandon() { s.finish(false) }

func (s *submission) wait(kind formKind) tea.Cmd {
	return func() tea.Msg {
		<-s.done
		if !s.succeeded.Load() {
			return nil
		}
		return formSubmittedMsg{kind: kind}
	}
}

// Model holds the main TUI state.
type Model struct {
	theme        themes.Theme
	tr           *locale.Translator
	now          func() time.Time
	categoryVM   *viewmodel.CategoryViewModel
	txnVM        *viewmodel.TransactionViewModel
	goalVM       *viewmodel.GoalViewModel
	categoryCh   <-chan viewmodel.CategoryState
	txnCh        <-chan viewmodel.TransactionState
	goalCh       <-chan viewmodel.GoalState
	form         *form
	pending      *submission
	unsubscribe  []func()
	flash        string
	keymap       KeyMap
	help         help.Model
	spinner      spinner.Model
	progress     progress.Model
	transactions viewmodel.TransactionState
	categories   viewmodel.CategoryState
	goals        viewmodel.GoalState
	config       Config
	width        int
	height       int
	cursor       int
	screen       Screen
	quitting     bool
}

// newModel subscribes to the view models and builds the initial model.
func newModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(cfg.Theme.Primary)

	h := help.New()
	h.Width = cfg.Width

	p := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	p.Width = progressWidth(cfg.Width)

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		config:       cfg,
		theme:        cfg.Theme,
		tr:           cfg.Translator,
		now:          now,
		categoryVM:   cfg.Categories,
		txnVM:        cfg.Transactions,
		goalVM:       cfg.Goals,
		keymap:       DefaultKeyMap(),
		help:         h,
		spinner:      s,
		progress:     p,
		width:        cfg.Width,
		height:       cfg.Height,
		categories:   viewmodel.NewCategoryState(),
		transactions: viewmodel.NewTransactionState(),
		goals:        viewmodel.NewGoalState(),
	}

	if m.categoryVM != nil {
		ch, cancel := m.categoryVM.Subscribe()
		m.categoryCh = ch
		m.unsubscribe = append(m.unsubscribe, cancel)
		m.categories = m.categoryVM.State()
	}
	if m.txnVM != nil {
		ch, cancel := m.txnVM.Subscribe()
		m.txnCh = ch
		m.unsubscribe = append(m.unsubscribe, cancel)
		m.transactions = m.txnVM.State()
	}
	if m.goalVM != nil {
		ch, cancel := m.goalVM.Subscribe()
		m.goalCh = ch
		m.unsubscribe = append(m.unsubscribe, cancel)
		m.goals = m.goalVM.State()
	}
	return m
}

func progressWidth(width int) int {
	w := width - 40
	if w < 10 {
		return 10
	}
	if w > 40 {
		return 40
	}
	return w
}

// close releases the view model subscriptions.
func (m Model) close() {
	for _, cancel := range m.unsubscribe {
		cancel()
	}
	m.pending.abandon()
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitCategories(),
		m.waitTransactions(),
		m.waitGoals(),
	)
}

func (m Model) waitCategories() tea.Cmd {
	return waitForState(m.categoryCh, func(s viewmodel.CategoryState) tea.Msg { return categoryStateMsg{state: s} })
}

func (m Model) waitTransactions() tea.Cmd {
	return waitForState(m.txnCh, func(s viewmodel.TransactionState) tea.Msg { return transactionStateMsg{state: s} })
}

func (m Model) waitGoals() tea.Cmd {
	return waitForState(m.goalCh, func(s viewmodel.GoalState) tea.Msg { return goalStateMsg{state: s} })
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.updateList(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = progressWidth(msg.Width)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case categoryStateMsg:
		m.categories = msg.state
		m.checkFailedSubmit(formCategory, msg.state.ListState.IsLoading, msg.state.Error)
		m.clampCursor()
		return m, m.waitCategories()

	case transactionStateMsg:
		m.transactions = msg.state
		m.checkFailedSubmit(formTransaction, msg.state.ListState.IsLoading, msg.state.Error)
		m.clampCursor()
		return m, m.waitTransactions()

	case goalStateMsg:
		m.goals = msg.state
		m.checkFailedSubmit(formGoal, msg.state.ListState.IsLoading, msg.state.Error)
		if msg.state.GoalCreated {
			m.goals = m.goalVM.AcknowledgeCreated()
			m.flash = m.tr.T("goal_created")
			if m.form != nil && m.form.kind == formGoal {
				m.form = nil
			}
		}
		m.clampCursor()
		return m, m.waitGoals()

	case formSubmittedMsg:
		if m.form != nil && m.form.kind == msg.kind {
			m.form = nil
		}
		m.pending = nil
		return m, nil
	}

	return m, nil
}

// checkFailedSubmit returns a submitting form to editing when its request failed.
func (m *Model) checkFailedSubmit(kind formKind, loading bool, errMsg string) {
	if m.form == nil || m.form.kind != kind || !m.form.submitting {
		return
	}
	if loading || errMsg == "" {
		return
	}
	m.form.submitting = false
	m.form.err = errMsg
	m.pending.abandon()
	m.pending = nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.NextScreen):
		m.screen = (m.screen + 1) % screenCount
		m.cursor = 0

	case key.Matches(msg, m.keymap.PrevScreen):
		m.screen = (m.screen + screenCount - 1) % screenCount
		m.cursor = 0

	case key.Matches(msg, m.keymap.Left):
		m.selectType(model.EntryTypeExpense)

	case key.Matches(msg, m.keymap.Right):
		m.selectType(model.EntryTypeIncome)

	case key.Matches(msg, m.keymap.Period):
		if m.screen == ScreenTransactions && m.txnVM != nil {
			m.transactions = m.txnVM.OnPeriodSelected(nextPeriod(m.transactions.Period))
			m.cursor = 0
		}

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keymap.Refresh):
		m.refresh()

	case key.Matches(msg, m.keymap.New):
		m.openForm()
	}

	return m, nil
}

func nextPeriod(p model.Period) model.Period {
	for i, candidate := range model.Periods {
		if candidate == p {
			return model.Periods[(i+1)%len(model.Periods)]
		}
	}
	return model.PeriodMonth
}

func (m *Model) selectType(typ model.EntryType) {
	switch m.screen {
	case ScreenCategories:
		if m.categoryVM != nil {
			m.categories = m.categoryVM.OnTabSelected(typ.TabIndex())
		}
	case ScreenTransactions:
		if m.txnVM != nil {
			m.transactions = m.txnVM.OnTypeSelected(typ)
		}
	case ScreenGoals:
		return
	}
	m.cursor = 0
}

func (m *Model) refresh() {
	switch m.screen {
	case ScreenCategories:
		if m.categoryVM != nil {
			m.categoryVM.Fetch()
		}
	case ScreenTransactions:
		if m.txnVM != nil {
			m.txnVM.Fetch()
		}
	case ScreenGoals:
		if m.goalVM != nil {
			m.goalVM.Fetch()
		}
	}
}

func (m *Model) openForm() {
	var f form
	switch m.screen {
	case ScreenCategories:
		if m.categoryVM == nil {
			return
		}
		draft := m.categories.Draft
		typ := model.EntryType(draft.Type)
		if !typ.Valid() {
			typ = model.EntryTypeForTab(m.categories.SelectedTab)
			m.categories = m.categoryVM.OnTypeChange(string(typ))
		}
		f = newCategoryForm(m.tr, draft.Name, draft.Icon, draft.Color, typ)
	case ScreenTransactions:
		if m.txnVM == nil {
			return
		}
		f = newTransactionForm(m.tr, m.transactions.SelectedType, m.categories.Items)
	case ScreenGoals:
		if m.goalVM == nil {
			return
		}
		f = newGoalForm(m.tr)
	}
	m.form = &f
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := *m.form

	switch {
	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Cancel):
		m.pending.abandon()
		m.pending = nil
		m.form = nil
		return m, nil
	}

	if f.submitting {
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keymap.Submit):
		return m.submit(f)

	case key.Matches(msg, m.keymap.NextField):
		f = f.moveFocus(1)

	case key.Matches(msg, m.keymap.PrevField):
		f = f.moveFocus(-1)

	case key.Matches(msg, m.keymap.ToggleType):
		if f.kind == formGoal {
			break
		}
		f = f.toggleType()
		if f.kind == formCategory {
			m.categories = m.categoryVM.OnTypeChange(string(f.entryType))
		}

	case key.Matches(msg, m.keymap.NextOption):
		f = f.nextOption()

	default:
		var changed bool
		f, cmd, changed = f.input(msg)
		if changed && f.kind == formCategory {
			m.pushDraftField(f.focused(), f.value(f.focused()))
		}
	}

	m.form = &f
	return m, cmd
}

// pushDraftField mirrors one category form field into the view model draft.
func (m *Model) pushDraftField(id, value string) {
	switch id {
	case fieldName:
		m.categories = m.categoryVM.OnNameChange(value)
	case fieldIcon:
		m.categories = m.categoryVM.OnIconChange(value)
	case fieldColor:
		m.categories = m.categoryVM.OnColorChange(value)
	}
}

func (m Model) submit(f form) (tea.Model, tea.Cmd) {
	f.err = ""
	sub := newSubmission()

	switch f.kind {
	case formCategory:
		m.categoryVM.Submit(sub.succeed)

	case formTransaction:
		amount, ok := parseAmount(f.value(fieldAmount))
		if !ok {
			f.err = m.tr.T("form_invalid_number")
			m.form = &f
			return m, nil
		}
		cat, ok := f.selectedCategory()
		if !ok {
			f.err = m.tr.T("form_no_categories")
			m.form = &f
			return m, nil
		}
		m.txnVM.Create(model.Transaction{
			Date:       m.now(),
			Note:       f.value(fieldNote),
			Type:       f.entryType,
			Category:   cat,
			CategoryID: cat.ID,
			Amount:     amount,
		}, sub.succeed)

	case formGoal:
		target, ok := parseAmount(f.value(fieldTarget))
		if !ok {
			f.err = m.tr.T("form_invalid_number")
			m.form = &f
			return m, nil
		}
		saved := 0.0
		if s := f.value(fieldSaved); s != "" {
			if saved, ok = parseAmount(s); !ok {
				f.err = m.tr.T("form_invalid_number")
				m.form = &f
				return m, nil
			}
		}
		// Goals report success through GoalCreated rather than a callback.
		sub.abandon()
		m.goalVM.Create(model.SavingsGoal{
			Name:          f.value(fieldName),
			TargetAmount:  target,
			CurrentAmount: saved,
		})
		f.submitting = true
		m.form = &f
		return m, nil
	}

	f.submitting = true
	m.form = &f
	m.pending.abandon()
	m.pending = sub
	return m, sub.wait(f.kind)
}

func (m Model) listLen() int {
	switch m.screen {
	case ScreenCategories:
		return len(m.categories.Filtered())
	case ScreenTransactions:
		return len(m.transactions.Visible(m.now()))
	case ScreenGoals:
		return len(m.goals.Items)
	}
	return 0
}

func (m *Model) clampCursor() {
	if n := m.listLen(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}
