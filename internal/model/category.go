// Package model holds the entity records exchanged with the backend.
package model

import "time"

// EntryType indicates whether a category or transaction is money going out or coming in.
// The wire values are the ones the backend stores.
type EntryType string

const (
	// EntryTypeExpense marks spending.
	EntryTypeExpense EntryType = "Gasto"
	// EntryTypeIncome marks earnings.
	EntryTypeIncome EntryType = "Ingreso"
)

// Valid reports whether t is one of the known entry types.
func (t EntryType) Valid() bool {
	return t == EntryTypeExpense || t == EntryTypeIncome
}

// TabIndex maps the type to its position in a two-tab selector.
func (t EntryType) TabIndex() int {
	if t == EntryTypeIncome {
		return 1
	}
	return 0
}

// EntryTypeForTab is the inverse of TabIndex: tab 0 is expenses, any other tab is income.
func EntryTypeForTab(index int) EntryType {
	if index == 0 {
		return EntryTypeExpense
	}
	return EntryTypeIncome
}

// Category represents a user defined expense or income category.
type Category struct {
	CreatedAt time.Time `json:"createdAt,omitempty"`
	Name      string    `json:"name"`
	Type      EntryType `json:"type"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"` // "#RRGGBB"
	ID        int       `json:"id"`
}

// EntryType returns the category's discriminant.
func (c Category) EntryType() EntryType {
	return c.Type
}
