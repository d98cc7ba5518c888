package engine

import (
	"sort"
	"time"
)

// ============================================================================
// AGGREGATORS — Filtered Subset → Metrics + Chart Series
// ============================================================================
// Pure functions of the filtered rows (plus "now" for date math). Grouped
// series keep first-seen insertion order; the month series is a fixed
// trailing window of six calendar months ending at the current month.
// ============================================================================

// closedLostJudgment is excluded from the judgment chart entirely.
const closedLostJudgment = "Closed Lost"

// monthWindow is the number of trailing calendar months on the month chart.
const monthWindow = 6

// ComputeMetrics derives the scalar dashboard metrics from filtered rows.
// Empty input degrades to zeros — no division by zero anywhere.
func ComputeMetrics(rows []Opportunity, now time.Time) Metrics {
	m := Metrics{Count: len(rows)}

	var ages []float64
	today := Midnight(now)
	for _, row := range rows {
		m.Total += row.Assisted
		if row.Age > 0 {
			ages = append(ages, row.Age)
		}
		if row.CloseDate != nil && row.CloseDate.Before(today) {
			m.PastDue++
		}
	}
	if m.Count > 0 {
		m.Average = m.Total / float64(m.Count)
	}
	m.MedianAge = Median(ages)
	return m
}

// Median returns the median of values: the middle element of the sorted
// population, or the mean of the two middle elements when even-sized.
// An empty population yields 0. The input slice is not modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// ============================================================================
// GROUPED SERIES
// ============================================================================

// StageSeries totals `total` by stage, in first-seen order over the
// filtered rows.
func StageSeries(rows []Opportunity) Series {
	return groupTotals(rows, func(r Opportunity) (string, bool) {
		return r.Stage, true
	})
}

// JudgmentSeries totals `total` by manager judgment, in first-seen order,
// excluding empty judgments and Closed Lost rows.
func JudgmentSeries(rows []Opportunity) Series {
	return groupTotals(rows, func(r Opportunity) (string, bool) {
		return r.Judgment, r.Judgment != "" && r.Judgment != closedLostJudgment
	})
}

func groupTotals(rows []Opportunity, key func(Opportunity) (string, bool)) Series {
	totals := make(map[string]float64)
	var order []string
	for _, row := range rows {
		k, ok := key(row)
		if !ok {
			continue
		}
		if _, seen := totals[k]; !seen {
			order = append(order, k)
		}
		totals[k] += row.Total
	}

	s := Series{
		Labels: make([]string, 0, len(order)),
		Values: make([]float64, 0, len(order)),
	}
	for _, k := range order {
		s.Labels = append(s.Labels, k)
		s.Values = append(s.Values, totals[k])
	}
	return s
}

// ============================================================================
// MONTH SERIES
// ============================================================================

// BuildMonthSeries buckets filtered rows by created month over the trailing
// six-month window ending at now's month. Every window slot is emitted, zero
// or not, labeled short-month plus two-digit year ("Sep 26"). Values are row
// counts; Assisted carries the parallel iARR sums; Keys the opaque month
// identifiers used for drill-down.
func BuildMonthSeries(rows []Opportunity, now time.Time) MonthSeries {
	counts := make(map[MonthKey]float64)
	assisted := make(map[MonthKey]float64)
	for _, row := range rows {
		if row.CreatedDate == nil {
			continue
		}
		key := MonthKeyOf(*row.CreatedDate)
		counts[key]++
		assisted[key] += row.Assisted
	}

	s := MonthSeries{
		Series: Series{
			Labels: make([]string, 0, monthWindow),
			Values: make([]float64, 0, monthWindow),
		},
		Assisted: make([]float64, 0, monthWindow),
		Keys:     make([]MonthKey, 0, monthWindow),
	}
	for i := monthWindow - 1; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		key := MonthKeyOf(month)
		s.Labels = append(s.Labels, month.Format("Jan 06"))
		s.Values = append(s.Values, counts[key])
		s.Assisted = append(s.Assisted, assisted[key])
		s.Keys = append(s.Keys, key)
	}
	return s
}
