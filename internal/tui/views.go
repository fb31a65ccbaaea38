package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/fintracker/internal/model"
	"github.com/Veraticus/fintracker/internal/tui/themes"
	"github.com/Veraticus/fintracker/internal/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

const chartWidth = 40

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch {
	case m.form != nil:
		body = m.renderForm(*m.form)
	case m.screen == ScreenCategories:
		body = m.renderCategories()
	case m.screen == ScreenTransactions:
		body = m.renderTransactions()
	default:
		body = m.renderGoals()
	}

	sections := []string{m.renderHeader(), body}
	if m.config.ShowHelp {
		sections = append(sections, "", m.renderHelp())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the app title and the screen tabs.
func (m Model) renderHeader() string {
	names := []string{m.tr.T("screen_categories"), m.tr.T("screen_transactions"), m.tr.T("screen_goals")}
	tabs := make([]string, 0, len(names))
	for i, name := range names {
		if Screen(i) == m.screen {
			tabs = append(tabs, m.theme.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.theme.TabInactive.Render(name))
		}
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render(m.tr.T("app_title")),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		"",
	)
}

// renderTypeTabs renders the expense/income selector.
func (m Model) renderTypeTabs(selected model.EntryType) string {
	types := []model.EntryType{model.EntryTypeExpense, model.EntryTypeIncome}
	tabs := make([]string, 0, len(types))
	for _, typ := range types {
		label := m.tr.EntryType(typ)
		if typ == selected {
			tabs = append(tabs, m.theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.theme.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderStatus renders the loading and error lines shared by every screen.
func (m Model) renderStatus(loading bool, errMsg string) string {
	var lines []string
	if loading {
		lines = append(lines, m.spinner.View()+" "+m.theme.StatusPending.Render(m.tr.T("loading")))
	}
	if errMsg != "" {
		lines = append(lines, m.theme.StatusError.Render(m.tr.Tf("error", map[string]any{"Message": errMsg})))
	}
	return strings.Join(lines, "\n")
}

func (m Model) cursorPrefix(i int) string {
	if i == m.cursor {
		return lipgloss.NewStyle().Foreground(m.theme.Primary).Render("▸ ")
	}
	return "  "
}

func (m Model) renderCategories() string {
	s := m.categories
	lines := []string{m.renderTypeTabs(model.EntryTypeForTab(s.SelectedTab)), ""}

	if status := m.renderStatus(s.IsLoading, s.Error); status != "" {
		lines = append(lines, status, "")
	}

	filtered := s.Filtered()
	if len(filtered) == 0 && !s.IsLoading {
		lines = append(lines, m.theme.Subtitle.Render(m.tr.T("empty_categories")))
	}
	for i, cat := range filtered {
		swatch := m.theme.Swatch(cat.Color).Render("██")
		row := fmt.Sprintf("%s%s %s %s", m.cursorPrefix(i), swatch, themes.CategoryIcon(cat), viewmodel.TruncateString(cat.Name, 30))
		if i == m.cursor {
			row = m.theme.Bold.Render(row)
		}
		lines = append(lines, row)
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderPeriods(selected model.Period) string {
	parts := make([]string, 0, len(model.Periods))
	for _, p := range model.Periods {
		label := m.tr.Period(p)
		if p == selected {
			parts = append(parts, m.theme.Bold.Underline(true).Render(label))
		} else {
			parts = append(parts, m.theme.Subtitle.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderTransactions() string {
	s := m.transactions
	now := m.now()
	visible := s.Visible(now)

	balance := m.theme.Amount(s.SelectedType).Bold(true).Render(viewmodel.FormatBalance(s.Balance(now)))
	lines := []string{
		m.renderTypeTabs(s.SelectedType),
		"",
		m.renderPeriods(s.Period),
		"",
		m.theme.Subtitle.Render(m.tr.T("balance")+": ") + balance,
		"",
	}

	if status := m.renderStatus(s.IsLoading, s.Error); status != "" {
		lines = append(lines, status, "")
	}

	if len(visible) == 0 {
		if !s.IsLoading {
			lines = append(lines, m.theme.Subtitle.Render(m.tr.EmptyTransactions(s.SelectedType, s.Period)))
		}
		return strings.Join(lines, "\n")
	}

	segments := s.Chart(now)
	lines = append(lines, m.renderChart(segments), "")
	lines = append(lines, m.renderLegend(segments)...)
	lines = append(lines, "", m.theme.Subtitle.Render(m.tr.Plural("transactions_count", len(visible))))

	for i, txn := range visible {
		amount := m.theme.Amount(txn.EntryType()).Render(viewmodel.FormatAmount(txn.Amount))
		row := fmt.Sprintf("%s%s  %s %-20s %s",
			m.cursorPrefix(i),
			viewmodel.FormatDate(txn.Date),
			themes.CategoryIcon(txn.Category),
			viewmodel.TruncateString(txn.Category.Name, 20),
			amount,
		)
		if txn.Note != "" {
			row += "  " + m.theme.Subtitle.Render(viewmodel.TruncateString(txn.Note, 30))
		}
		lines = append(lines, row)
	}

	return strings.Join(lines, "\n")
}

// renderChart draws the segments as a single proportional bar.
func (m Model) renderChart(segments []viewmodel.Segment) string {
	var b strings.Builder
	used := 0
	for i, seg := range segments {
		cells := int(math.Round(seg.SweepAngle / viewmodel.FullCircle * chartWidth))
		if i == len(segments)-1 {
			cells = chartWidth - used
		}
		if cells <= 0 {
			continue
		}
		used += cells
		b.WriteString(m.theme.Swatch(seg.Color).Render(strings.Repeat("█", cells)))
	}
	return b.String()
}

func (m Model) renderLegend(segments []viewmodel.Segment) []string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		lines = append(lines, fmt.Sprintf("%s %s %-20s %5.1f%%  %s",
			m.theme.Swatch(seg.Color).Render("●"),
			themes.CategoryIcon(seg.Category),
			viewmodel.TruncateString(seg.Category.Name, 20),
			seg.Percentage(),
			viewmodel.FormatAmount(seg.Total),
		))
	}
	return lines
}

func (m Model) renderGoals() string {
	s := m.goals
	var lines []string

	if m.flash != "" {
		lines = append(lines, m.theme.StatusSuccess.Render(m.flash), "")
	}
	if status := m.renderStatus(s.IsLoading, s.Error); status != "" {
		lines = append(lines, status, "")
	}

	if len(s.Items) == 0 && !s.IsLoading {
		lines = append(lines, m.theme.Subtitle.Render(m.tr.T("empty_goals")))
	}
	for i, goal := range s.Items {
		name := viewmodel.TruncateString(goal.Name, 30)
		if i == m.cursor {
			name = m.theme.Bold.Render(name)
		}
		progress := m.tr.Tf("goal_progress", map[string]any{
			"Saved":  viewmodel.FormatAmount(goal.CurrentAmount),
			"Target": viewmodel.FormatAmount(goal.TargetAmount),
		})
		lines = append(lines,
			m.cursorPrefix(i)+name,
			fmt.Sprintf("  %s %3.0f%%  %s", m.progress.ViewAs(goal.Progress()), goal.Progress()*100, m.theme.Subtitle.Render(progress)),
		)
	}

	return strings.Join(lines, "\n")
}

func (m Model) formTitle(kind formKind) string {
	switch kind {
	case formTransaction:
		return m.tr.T("new_transaction")
	case formGoal:
		return m.tr.T("new_goal")
	default:
		return m.tr.T("new_category")
	}
}

func (m Model) renderForm(f form) string {
	lines := []string{m.theme.Title.Render(m.formTitle(f.kind))}

	if f.kind != formGoal {
		lines = append(lines, m.theme.Subtitle.Render(m.tr.T("form_type")), m.renderTypeTabs(f.entryType), "")
	}
	if f.kind == formTransaction {
		label := m.theme.Subtitle.Render(m.tr.T("form_category") + ": ")
		if cat, ok := f.selectedCategory(); ok {
			lines = append(lines, label+themes.CategoryIcon(cat)+" "+cat.Name, "")
		} else {
			lines = append(lines, label+m.theme.StatusPending.Render(m.tr.T("form_no_categories")), "")
		}
	}

	for i, fl := range f.fields {
		label := m.theme.Subtitle
		if i == f.focus {
			label = lipgloss.NewStyle().Foreground(m.theme.Primary)
		}
		row := label.Render(fmt.Sprintf("%-16s", m.tr.T(fl.id))) + fl.input.View()
		if fl.id == fieldColor {
			row += " " + m.theme.Swatch(fl.input.Value()).Render("██")
		}
		lines = append(lines, row)
	}

	lines = append(lines, "")
	switch {
	case f.submitting:
		lines = append(lines, m.spinner.View()+" "+m.theme.StatusPending.Render(m.tr.T("loading")))
	case f.err != "":
		lines = append(lines, m.theme.StatusError.Render(m.tr.Tf("error", map[string]any{"Message": f.err})))
	}

	return m.theme.RoundedBox.Render(strings.Join(lines, "\n"))
}

func (m Model) renderHelp() string {
	if m.form != nil {
		return m.help.View(formKeys{m.keymap})
	}
	if !m.help.ShowAll {
		return m.theme.Subtitle.Render(m.tr.T("help"))
	}
	return m.help.View(m.keymap)
}
