package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/fintracker/internal/locale"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrMissingViewModels is returned when Run is called without view models.
var ErrMissingViewModels = errors.New("tui: category, transaction and goal view models are required")

// New builds the root model without starting a program.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Categories == nil || cfg.Transactions == nil || cfg.Goals == nil {
		return Model{}, ErrMissingViewModels
	}
	if cfg.Translator == nil {
		tr, err := locale.New("")
		if err != nil {
			return Model{}, fmt.Errorf("failed to load translations: %w", err)
		}
		cfg.Translator = tr
	}

	return newModel(cfg), nil
}

// Run shows the TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts ...Option) error {
	m, err := New(opts...)
	if err != nil {
		return err
	}
	defer m.close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
