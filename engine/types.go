package engine

import "time"

// ============================================================================
// PIPEBOARD ENGINE TYPES — Opportunity Analytics
// ============================================================================
// One normalized row type (Opportunity), one criteria type combining form
// controls with chart drill-down selectors, and the series/geometry types
// that feed the charts. Derived state is recomputed wholesale on every
// criteria or dataset change — nothing here is mutated in place.
// ============================================================================

// RawRecord is one parsed input row: column name → trimmed string value.
// Produced by helpers.Parse; immutable once built.
type RawRecord map[string]string

// Opportunity is one normalized sales-pipeline row.
// Date fields are nil when the source text was missing or unparseable;
// numeric fields default to zero. Normalization never drops rows.
type Opportunity struct {
	Name         string
	Account      string
	Stage        string
	Owner        string
	Judgment     string
	CloseDate    *time.Time
	CloseDateRaw string
	NextStep     string
	NextStepDate *time.Time
	CreatedDate  *time.Time
	Age          float64
	Total        float64
	Assisted     float64
	Notes        string
}

// ============================================================================
// FILTER CRITERIA
// ============================================================================

// RangeKind selects the close-date window test.
type RangeKind int

const (
	RangeAll RangeKind = iota
	RangeOverdue
	RangeWindow
)

// DateRange is the close-date criterion. For RangeWindow, Days is the
// inclusive upper bound on days-until-close.
type DateRange struct {
	Kind RangeKind
	Days int
}

// MonthKey identifies a calendar month ("2006-01"). Opaque to display;
// used only for month drill-down matching.
type MonthKey string

// MonthKeyOf returns the MonthKey for a date's calendar year+month.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

// FilterCriteria combines form-driven criteria with chart-driven drill-down
// selectors. A nil selector means "no restriction" — there is no magic "all"
// sentinel value. All set criteria combine with logical AND; drill-down
// selectors restrict results in addition to the form fields.
type FilterCriteria struct {
	Owner    *string
	Stage    *string
	Judgment *string
	Search   string
	Range    DateRange

	// Drill-down selectors, toggled by chart clicks.
	SelectedStage    *string
	SelectedJudgment *string
	SelectedMonth    *MonthKey
}

// Opt wraps a value for an optional criteria field.
func Opt[T any](v T) *T { return &v }

// ============================================================================
// SERIES
// ============================================================================

// Series is an ordered label→value aggregation feeding one chart.
// Labels and Values are parallel; chart geometry follows the same order.
type Series struct {
	Labels []string
	Values []float64
}

// Len returns the number of series entries.
func (s Series) Len() int { return len(s.Labels) }

// MonthSeries is the time-series chart's data: per-month row counts plus a
// parallel sequence of assisted totals and opaque month keys. Keys drive
// drill-down, not display.
type MonthSeries struct {
	Series
	Assisted []float64
	Keys     []MonthKey
}

// ============================================================================
// GEOMETRY
// ============================================================================

// Point is a position on a chart surface, in surface coordinates.
type Point struct {
	X, Y float64
}

// Size is a chart surface extent.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned bar rectangle on a chart surface.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p falls within the rectangle, bounds inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// ChartKind names one of the three dashboard charts.
type ChartKind int

const (
	ChartStage ChartKind = iota
	ChartJudgment
	ChartMonth
)

// ============================================================================
// METRICS
// ============================================================================

// Metrics are the scalar aggregates over the filtered set.
type Metrics struct {
	Count     int
	Total     float64 // sum of assisted
	Average   float64 // Total / Count, 0 when empty
	MedianAge float64 // median of ages > 0, 0 when none
	PastDue   int     // close date strictly before today
}

// Midnight normalizes a time to 00:00:00 on the same calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
