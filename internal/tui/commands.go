package tui

import tea "github.com/charmbracelet/bubbletea"

// waitForState blocks on the next snapshot published by a view model.
func waitForState[S any](updates <-chan S, wrap func(S) tea.Msg) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		state, ok := <-updates
		if !ok {
			return subscriptionClosedMsg{}
		}
		return wrap(state)
	}
}
