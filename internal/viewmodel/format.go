package viewmodel

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySuffix is appended to every displayed amount.
const CurrencySuffix = "RD$"

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount formats an amount with thousands separators and two decimals.
func FormatAmount(amount float64) string {
	return amountPrinter.Sprintf("%.2f %s", amount, CurrencySuffix)
}

// FormatBalance formats a header balance without decimals.
func FormatBalance(amount float64) string {
	return amountPrinter.Sprintf("%.0f %s", amount, CurrencySuffix)
}

// FormatDate formats a date the way list rows show it.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// TruncateString truncates a string to the specified length with ellipsis.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// ProgressBar renders fraction (0 to 1) as a text bar of width cells.
func ProgressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
