package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single income or expense record.
type Transaction struct {
	Date       time.Time `json:"date"`
	Note       string    `json:"note,omitempty"`
	Type       EntryType `json:"type"`
	Category   Category  `json:"category"`
	Amount     float64   `json:"amount"`
	ID         int       `json:"id"`
	CategoryID int       `json:"categoryId"`
}

// EntryType returns the transaction's discriminant.
func (t Transaction) EntryType() EntryType {
	return t.Type
}

// DecimalAmount returns the amount as an exact decimal.
func (t Transaction) DecimalAmount() decimal.Decimal {
	return decimal.NewFromFloat(t.Amount)
}

// GenerateHash creates a fingerprint used to skip duplicate imports.
func (t Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%d",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Note,
		t.CategoryID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
