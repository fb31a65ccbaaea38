package themes

import (
	"testing"

	"github.com/Veraticus/fintracker/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	assert.Equal(t, CatppuccinMocha.Primary, GetTheme("catppuccin-mocha").Primary)
	assert.Equal(t, Default.Primary, GetTheme("unknown").Primary)
}

func TestSwatch(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want lipgloss.TerminalColor
	}{
		{name: "valid", hex: "#FF5733", want: lipgloss.Color("#FF5733")},
		{name: "lowercase", hex: "#ff5733", want: lipgloss.Color("#ff5733")},
		{name: "empty", hex: "", want: Default.Muted},
		{name: "short form", hex: "#FFF", want: Default.Muted},
		{name: "no hash", hex: "FF5733", want: Default.Muted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Default.Swatch(tt.hex).GetForeground())
		})
	}
}

func TestCategoryIcon(t *testing.T) {
	assert.Equal(t, "🍔", CategoryIcon(model.Category{Icon: "🍔", Type: model.EntryTypeExpense}))
	assert.Equal(t, DefaultIcon(model.EntryTypeExpense), CategoryIcon(model.Category{Type: model.EntryTypeExpense}))
	assert.Equal(t, DefaultIcon(model.EntryTypeIncome), CategoryIcon(model.Category{Type: model.EntryTypeIncome}))
	assert.NotEqual(t, DefaultIcon(model.EntryTypeExpense), DefaultIcon(model.EntryTypeIncome))
}
