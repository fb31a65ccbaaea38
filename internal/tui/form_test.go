package tui

import (
	"testing"

	"github.com/Veraticus/fintracker/internal/locale"
	"github.com/Veraticus/fintracker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{in: "100", want: 100, wantOK: true},
		{in: " 2,500.50 ", want: 2500.50, wantOK: true},
		{in: "0.1", want: 0.1, wantOK: true},
		{in: "", wantOK: false},
		{in: "abc", wantOK: false},
		{in: "1.2.3", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseAmount(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestFormFocusWraps(t *testing.T) {
	tr, err := locale.New("es")
	require.NoError(t, err)

	f := newGoalForm(tr)
	assert.Equal(t, fieldName, f.focused())
	f = f.moveFocus(-1)
	assert.Equal(t, fieldSaved, f.focused())
	f = f.moveFocus(1)
	assert.Equal(t, fieldName, f.focused())
	assert.Empty(t, f.value("missing"))
}

func TestTransactionFormChoices(t *testing.T) {
	tr, err := locale.New("es")
	require.NoError(t, err)

	cats := []model.Category{
		{ID: 1, Name: "Comida", Type: model.EntryTypeExpense},
		{ID: 2, Name: "Salario", Type: model.EntryTypeIncome},
		{ID: 3, Name: "Renta", Type: model.EntryTypeExpense},
	}
	f := newTransactionForm(tr, model.EntryTypeExpense, cats)

	cat, ok := f.selectedCategory()
	require.True(t, ok)
	assert.Equal(t, 1, cat.ID)

	f = f.nextOption()
	cat, _ = f.selectedCategory()
	assert.Equal(t, 3, cat.ID)

	f = f.nextOption()
	cat, _ = f.selectedCategory()
	assert.Equal(t, 1, cat.ID)

	f = f.nextOption().toggleType()
	cat, ok = f.selectedCategory()
	require.True(t, ok)
	assert.Equal(t, 2, cat.ID)
}
