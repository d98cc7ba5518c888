// Package schema defines the column layout of a sales-opportunity export.
package schema

import "strings"

// ============================================================================
// SOURCE SCHEMA — Canonical export column names
// ============================================================================
// The export schema is fixed: normalization maps these exact column names
// onto Opportunity fields. A header that lacks a column still normalizes
// (the field comes back empty), but Diagnose can report the gap.
// ============================================================================

// Canonical column names of the opportunity export.
const (
	ColName         = "Opportunity Name"
	ColAccount      = "Account Name"
	ColStage        = "Stage"
	ColOwner        = "Opportunity Owner"
	ColJudgment     = "Manager Forecast Judgment"
	ColCloseDate    = "Close Date"
	ColNextStep     = "Next Step"
	ColNextStepDate = "Next Step Date"
	ColCreatedDate  = "Created Date"
	ColAge          = "Age"
	ColTotal        = "Total Quota Relief"
	ColAssisted     = "Assisted iARR (New/Upgrade)"
	ColNotes        = "Sales Notes"
)

// Column describes one expected export column.
type Column struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"` // "text", "date", "number", "currency"
	MapsTo string `json:"mapsTo"`
	Format string `json:"format,omitempty"`
}

// Columns returns the expected export columns in display order.
func Columns() []Column {
	return []Column{
		{Name: ColName, Kind: "text", MapsTo: "name"},
		{Name: ColAccount, Kind: "text", MapsTo: "account"},
		{Name: ColStage, Kind: "text", MapsTo: "stage"},
		{Name: ColOwner, Kind: "text", MapsTo: "owner"},
		{Name: ColJudgment, Kind: "text", MapsTo: "judgment"},
		{Name: ColCloseDate, Kind: "date", MapsTo: "closeDate", Format: "month/day/year"},
		{Name: ColNextStep, Kind: "text", MapsTo: "nextStep"},
		{Name: ColNextStepDate, Kind: "date", MapsTo: "nextStepDate", Format: "month/day/year"},
		{Name: ColCreatedDate, Kind: "date", MapsTo: "createdDate", Format: "month/day/year"},
		{Name: ColAge, Kind: "number", MapsTo: "age"},
		{Name: ColTotal, Kind: "currency", MapsTo: "total"},
		{Name: ColAssisted, Kind: "currency", MapsTo: "assisted"},
		{Name: ColNotes, Kind: "text", MapsTo: "notes"},
	}
}

// ============================================================================
// HEADER DIAGNOSTICS
// ============================================================================

// Report lists how a parsed header lines up against the expected schema.
// Missing columns still normalize (to empty fields) — this is advisory only.
type Report struct {
	Missing []string `json:"missing,omitempty"`
	Extra   []string `json:"extra,omitempty"`
}

// Clean reports whether the header covers every expected column.
func (r Report) Clean() bool { return len(r.Missing) == 0 }

// Diagnose compares a header row against the expected columns.
// Comparison trims surrounding whitespace but is otherwise exact.
func Diagnose(headers []string) Report {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[strings.TrimSpace(h)] = true
	}

	var report Report
	expected := make(map[string]bool)
	for _, col := range Columns() {
		expected[col.Name] = true
		if !present[col.Name] {
			report.Missing = append(report.Missing, col.Name)
		}
	}
	for _, h := range headers {
		h = strings.TrimSpace(h)
		if h != "" && !expected[h] {
			report.Extra = append(report.Extra, h)
		}
	}
	return report
}
