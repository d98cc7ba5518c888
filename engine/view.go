package engine

import (
	"fmt"
	"time"
)

// ============================================================================
// VIEW MODELS — Presenter-Facing Output
// ============================================================================
// Formatted metric strings and ordered table rows. Each row carries two
// booleans the presenter uses purely for visual marking: past-due (close or
// next-step date before today) and missing-next-step (no next-step date and
// no next-step text).
// ============================================================================

// MetricStrings are the five dashboard metrics, formatted for display.
type MetricStrings struct {
	Count     string
	Total     string
	Average   string
	MedianAge string
	PastDue   string
}

// FormatMetrics renders metrics as display strings. Currency metrics use
// two-decimal USD style; the median age carries a "d" suffix.
func FormatMetrics(m Metrics) MetricStrings {
	return MetricStrings{
		Count:     FormatNumber(float64(m.Count)),
		Total:     FormatCurrency(m.Total),
		Average:   FormatCurrency(m.Average),
		MedianAge: FormatNumber(m.MedianAge) + "d",
		PastDue:   FormatNumber(float64(m.PastDue)),
	}
}

// TableRow is one filtered opportunity prepared for display. The close date
// shows the preserved source text; other dates render month/day/year.
type TableRow struct {
	Name         string
	Account      string
	Owner        string
	Total        string
	Assisted     string
	Stage        string
	Judgment     string
	CloseDate    string
	NextStepDate string
	NextStep     string
	Notes        string
	CreatedDate  string
	Age          string

	PastDue         bool // close date or next-step date before today
	MissingNextStep bool // neither next-step date nor next-step text
	ClosePastDue    bool
	NextStepPastDue bool
}

// BuildTableRows converts filtered rows into display rows, preserving order.
func BuildTableRows(rows []Opportunity, now time.Time) []TableRow {
	today := Midnight(now)
	out := make([]TableRow, 0, len(rows))
	for _, row := range rows {
		closePastDue := row.CloseDate != nil && row.CloseDate.Before(today)
		nextStepPastDue := row.NextStepDate != nil && row.NextStepDate.Before(today)
		out = append(out, TableRow{
			Name:            row.Name,
			Account:         row.Account,
			Owner:           row.Owner,
			Total:           FormatCurrency(row.Total),
			Assisted:        FormatCurrency(row.Assisted),
			Stage:           row.Stage,
			Judgment:        row.Judgment,
			CloseDate:       row.CloseDateRaw,
			NextStepDate:    FormatShortDate(row.NextStepDate),
			NextStep:        row.NextStep,
			Notes:           row.Notes,
			CreatedDate:     FormatShortDate(row.CreatedDate),
			Age:             FormatNumber(row.Age),
			PastDue:         closePastDue || nextStepPastDue,
			MissingNextStep: row.NextStepDate == nil && row.NextStep == "",
			ClosePastDue:    closePastDue,
			NextStepPastDue: nextStepPastDue,
		})
	}
	return out
}

// TableMeta is the row-count line shown under the table.
func TableMeta(count int) string {
	return fmt.Sprintf("%d rows", count)
}
