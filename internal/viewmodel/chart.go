package viewmodel

import (
	"github.com/Veraticus/fintracker/internal/model"
	"github.com/shopspring/decimal"
)

const (
	// FullCircle is the sweep of a complete pie, in degrees.
	FullCircle = 360.0
	// ChartStartAngle puts the first slice at twelve o'clock.
	ChartStartAngle = -90.0
)

// Palette is cycled through in first-seen category order.
var Palette = []string{
	"#4CAF50",
	"#FF9800",
	"#03A9F4",
	"#F44336",
	"#9C27B0",
	"#009688",
}

// CategoryTotal is one group produced by GroupAndSum.
type CategoryTotal struct {
	Category model.Category
	Total    float64
	Count    int
}

// Segment is one slice of the pie chart.
type Segment struct {
	Color      string
	Category   model.Category
	Total      float64
	StartAngle float64
	SweepAngle float64
}

// EndAngle returns where the slice stops.
func (s Segment) EndAngle() float64 {
	return s.StartAngle + s.SweepAngle
}

// Percentage returns the slice's share of the pie, 0 to 100.
func (s Segment) Percentage() float64 {
	return s.SweepAngle / FullCircle * 100
}

// categoryKey identifies the category a transaction belongs to.
func categoryKey(txn model.Transaction) int {
	if txn.CategoryID != 0 {
		return txn.CategoryID
	}
	return txn.Category.ID
}

// GroupAndSum groups txns by category identity and sums each group.
// Groups come out in the order their category is first seen.
func GroupAndSum(txns []model.Transaction) []CategoryTotal {
	index := make(map[int]int)
	var (
		groups []CategoryTotal
		sums   []decimal.Decimal
	)

	for _, txn := range txns {
		key := categoryKey(txn)
		i, ok := index[key]
		if !ok {
			cat := txn.Category
			if cat.ID == 0 {
				cat.ID = key
			}
			i = len(groups)
			index[key] = i
			groups = append(groups, CategoryTotal{Category: cat})
			sums = append(sums, decimal.Zero)
		}
		sums[i] = sums[i].Add(txn.DecimalAmount())
		groups[i].Count++
	}

	for i := range groups {
		groups[i].Total = sums[i].InexactFloat64()
	}
	return groups
}

// ChartSegments assigns every group a sweep proportional to its share of
// total. total must be the sum of the group totals. The last slice takes the
// remainder so the sweeps add up to FullCircle. A non-positive total yields
// no segments.
func ChartSegments(groups []CategoryTotal, total float64) []Segment {
	if total <= 0 || len(groups) == 0 {
		return nil
	}

	segments := make([]Segment, 0, len(groups))
	start := ChartStartAngle
	swept := 0.0

	for i, g := range groups {
		sweep := g.Total / total * FullCircle
		if i == len(groups)-1 {
			sweep = FullCircle - swept
		}
		segments = append(segments, Segment{
			Category:   g.Category,
			Total:      g.Total,
			Color:      Palette[i%len(Palette)],
			StartAngle: start,
			SweepAngle: sweep,
		})
		start += sweep
		swept += sweep
	}
	return segments
}

// Chart groups txns and lays them out as pie segments in one step.
func Chart(txns []model.Transaction) []Segment {
	return ChartSegments(GroupAndSum(txns), Total(txns))
}
