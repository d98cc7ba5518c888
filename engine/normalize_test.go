package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipeboard-org/pipeboard/schema"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  *time.Time
	}{
		{"empty", "", nil},
		{"valid", "9/1/2026", datePtr(2026, 9, 1)},
		{"two parts", "9/2026", nil},
		{"four parts", "9/1/20/26", nil},
		{"zero month", "0/1/2026", nil},
		{"zero day", "9/0/2026", nil},
		{"zero year", "9/1/0", nil},
		{"non-numeric", "sep/1/2026", nil},
		{"iso format rejected", "2026-09-01", nil},
		// Out-of-range parts normalize forward instead of failing.
		{"month overflow", "13/1/2025", datePtr(2026, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.value)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(*tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{"empty", "", 0},
		{"plain", "42", 42},
		{"decimal", "42.5", 42.5},
		{"negative", "-42", -42},
		{"currency symbols stripped", "$1,250.00", 1250},
		{"letters stripped", "12abc", 12},
		{"all letters", "abc", 0},
		{"two dots", "1.2.3", 0},
		{"lone minus", "-", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumber(tt.value))
		})
	}
}

func TestNormalizeMapsFixedColumns(t *testing.T) {
	rec := RawRecord{
		schema.ColName:         "Acme Expansion",
		schema.ColAccount:      "Acme Corp",
		schema.ColStage:        "Negotiation",
		schema.ColOwner:        "Dana Reyes",
		schema.ColJudgment:     "Commit",
		schema.ColCloseDate:    "10/15/2026",
		schema.ColNextStep:     "Send proposal",
		schema.ColNextStepDate: "9/20/2026",
		schema.ColCreatedDate:  "6/1/2026",
		schema.ColAge:          "92",
		schema.ColTotal:        "$120,000",
		schema.ColAssisted:     "$45,500.50",
		schema.ColNotes:        "Champion engaged",
	}

	row := Normalize(rec)

	assert.Equal(t, "Acme Expansion", row.Name)
	assert.Equal(t, "Acme Corp", row.Account)
	assert.Equal(t, "Negotiation", row.Stage)
	assert.Equal(t, "Dana Reyes", row.Owner)
	assert.Equal(t, "Commit", row.Judgment)
	require.NotNil(t, row.CloseDate)
	assert.True(t, row.CloseDate.Equal(*datePtr(2026, 10, 15)))
	assert.Equal(t, "10/15/2026", row.CloseDateRaw)
	assert.Equal(t, "Send proposal", row.NextStep)
	require.NotNil(t, row.NextStepDate)
	require.NotNil(t, row.CreatedDate)
	assert.Equal(t, 92.0, row.Age)
	assert.Equal(t, 120000.0, row.Total)
	assert.Equal(t, 45500.50, row.Assisted)
	assert.Equal(t, "Champion engaged", row.Notes)
}

func TestNormalizeMissingColumnsDegrade(t *testing.T) {
	row := Normalize(RawRecord{schema.ColName: "Solo"})

	assert.Equal(t, "Solo", row.Name)
	assert.Equal(t, "", row.Account)
	assert.Nil(t, row.CloseDate)
	assert.Nil(t, row.NextStepDate)
	assert.Nil(t, row.CreatedDate)
	assert.Zero(t, row.Age)
	assert.Zero(t, row.Total)
	assert.Zero(t, row.Assisted)
}

func TestBuildOpportunitiesKeepsRowOrder(t *testing.T) {
	records := []RawRecord{
		{schema.ColName: "first", schema.ColCloseDate: "not a date"},
		{schema.ColName: "second"},
		{schema.ColName: "third"},
	}

	rows := BuildOpportunities(records)

	require.Len(t, rows, len(records))
	assert.Equal(t, "first", rows[0].Name)
	assert.Equal(t, "second", rows[1].Name)
	assert.Equal(t, "third", rows[2].Name)
	// Unparseable fields null out; the row itself survives.
	assert.Nil(t, rows[0].CloseDate)
	assert.Equal(t, "not a date", rows[0].CloseDateRaw)
}

func datePtr(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local)
	return &t
}
