package tui

import (
	"strings"

	"github.com/Veraticus/fintracker/internal/locale"
	"github.com/Veraticus/fintracker/internal/model"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

type formKind int

const (
	formCategory formKind = iota
	formTransaction
	formGoal
)

const (
	fieldName   = "form_name"
	fieldIcon   = "form_icon"
	fieldColor  = "form_color"
	fieldAmount = "form_amount"
	fieldNote   = "form_note"
	fieldTarget = "form_target"
	fieldSaved  = "form_saved"
)

type field struct {
	id    string
	input textinput.Model
}

// form is the create dialog shown on top of a screen.
type form struct {
	entryType  model.EntryType
	err        string
	fields     []field
	options    []model.Category
	kind       formKind
	focus      int
	option     int
	submitting bool
}

func newField(tr *locale.Translator, id, value string, limit int) field {
	ti := textinput.New()
	ti.Placeholder = tr.T(id)
	ti.CharLimit = limit
	ti.Prompt = ""
	ti.SetValue(value)
	return field{id: id, input: ti}
}

// newCategoryForm starts from the view model's draft so a failed submit keeps the user's input.
func newCategoryForm(tr *locale.Translator, name, icon, color string, typ model.EntryType) form {
	f := form{
		kind:      formCategory,
		entryType: typ,
		fields: []field{
			newField(tr, fieldName, name, 50),
			newField(tr, fieldIcon, icon, 8),
			newField(tr, fieldColor, color, 7),
		},
	}
	f.fields[0].input.Focus()
	return f
}

func newTransactionForm(tr *locale.Translator, typ model.EntryType, categories []model.Category) form {
	f := form{
		kind:      formTransaction,
		entryType: typ,
		options:   categories,
		fields: []field{
			newField(tr, fieldAmount, "", 15),
			newField(tr, fieldNote, "", 100),
		},
	}
	f.fields[0].input.Focus()
	return f
}

func newGoalForm(tr *locale.Translator) form {
	f := form{
		kind: formGoal,
		fields: []field{
			newField(tr, fieldName, "", 50),
			newField(tr, fieldTarget, "", 15),
			newField(tr, fieldSaved, "", 15),
		},
	}
	f.fields[0].input.Focus()
	return f
}

// value returns the current text of a field, or "" when the form has no such field.
func (f form) value(id string) string {
	for _, fl := range f.fields {
		if fl.id == id {
			return fl.input.Value()
		}
	}
	return ""
}

func (f form) focused() string {
	if len(f.fields) == 0 {
		return ""
	}
	return f.fields[f.focus].id
}

func (f form) moveFocus(delta int) form {
	if len(f.fields) == 0 {
		return f
	}
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
	return f
}

// input forwards a key to the focused field and reports whether its value changed.
func (f form) input(msg tea.KeyMsg) (form, tea.Cmd, bool) {
	if len(f.fields) == 0 {
		return f, nil, false
	}
	before := f.fields[f.focus].input.Value()
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return f, cmd, f.fields[f.focus].input.Value() != before
}

func (f form) toggleType() form {
	if f.entryType == model.EntryTypeIncome {
		f.entryType = model.EntryTypeExpense
	} else {
		f.entryType = model.EntryTypeIncome
	}
	f.option = 0
	return f
}

// choices are the categories selectable for the form's entry type.
func (f form) choices() []model.Category {
	var out []model.Category
	for _, c := range f.options {
		if c.Type == f.entryType {
			out = append(out, c)
		}
	}
	return out
}

func (f form) nextOption() form {
	if n := len(f.choices()); n > 0 {
		f.option = (f.option + 1) % n
	}
	return f
}

func (f form) selectedCategory() (model.Category, bool) {
	choices := f.choices()
	if len(choices) == 0 {
		return model.Category{}, false
	}
	return choices[f.option%len(choices)], true
}

func parseAmount(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}
