package tui

import (
	"time"

	"github.com/Veraticus/fintracker/internal/locale"
	"github.com/Veraticus/fintracker/internal/tui/themes"
	"github.com/Veraticus/fintracker/internal/viewmodel"
)

// Config holds TUI configuration.
type Config struct {
	Theme        themes.Theme
	Categories   *viewmodel.CategoryViewModel
	Transactions *viewmodel.TransactionViewModel
	Goals        *viewmodel.GoalViewModel
	Translator   *locale.Translator
	Now          func() time.Time
	Width        int
	Height       int
	ShowHelp     bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:    themes.Default,
		Now:      time.Now,
		Width:    80,
		Height:   24,
		ShowHelp: true,
	}
}

// WithViewModels sets the view models backing the three screens.
func WithViewModels(categories *viewmodel.CategoryViewModel, transactions *viewmodel.TransactionViewModel, goals *viewmodel.GoalViewModel) Option {
	return func(c *Config) {
		c.Categories = categories
		c.Transactions = transactions
		c.Goals = goals
	}
}

// WithTranslator sets the message catalogue.
func WithTranslator(tr *locale.Translator) Option {
	return func(c *Config) {
		c.Translator = tr
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithClock overrides the clock used for period filtering.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithHelp toggles the help footer.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
