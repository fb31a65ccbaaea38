package model

import (
	"fmt"
	"time"
)

// Period is the time window selected on the transactions screen.
type Period string

const (
	PeriodDay   Period = "Día"
	PeriodWeek  Period = "Semana"
	PeriodMonth Period = "Mes"
	PeriodYear  Period = "Año"
)

// Periods lists the selectable windows in display order.
var Periods = []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear}

// ParsePeriod accepts the wire value of a period.
func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// Contains reports whether t falls inside the window ending at now.
// Day, month and year compare calendar fields in now's location; week is the trailing seven days.
func (p Period) Contains(t, now time.Time) bool {
	t = t.In(now.Location())
	switch p {
	case PeriodDay:
		y1, m1, d1 := t.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case PeriodWeek:
		start := now.AddDate(0, 0, -7)
		return t.After(start) && !t.After(now)
	case PeriodMonth:
		return t.Year() == now.Year() && t.Month() == now.Month()
	case PeriodYear:
		return t.Year() == now.Year()
	default:
		return true
	}
}
