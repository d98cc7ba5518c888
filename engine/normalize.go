package engine

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pipeboard-org/pipeboard/schema"
)

// ============================================================================
// NORMALIZER — RawRecord → Opportunity
// ============================================================================
// Pure, best-effort mapping from the fixed export schema. Failure is silent
// data degradation: unparseable dates become nil, unparseable numbers become
// zero. Every input row yields exactly one Opportunity, in input order.
// ============================================================================

// BuildOpportunities normalizes parsed records into typed rows, 1:1 and in
// original order. Missing columns read as empty strings.
func BuildOpportunities(records []RawRecord) []Opportunity {
	rows := make([]Opportunity, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Normalize(rec))
	}
	return rows
}

// Normalize maps one raw record onto an Opportunity.
func Normalize(rec RawRecord) Opportunity {
	return Opportunity{
		Name:         rec[schema.ColName],
		Account:      rec[schema.ColAccount],
		Stage:        rec[schema.ColStage],
		Owner:        rec[schema.ColOwner],
		Judgment:     rec[schema.ColJudgment],
		CloseDate:    ParseDate(rec[schema.ColCloseDate]),
		CloseDateRaw: rec[schema.ColCloseDate],
		NextStep:     rec[schema.ColNextStep],
		NextStepDate: ParseDate(rec[schema.ColNextStepDate]),
		CreatedDate:  ParseDate(rec[schema.ColCreatedDate]),
		Age:          ParseNumber(rec[schema.ColAge]),
		Total:        ParseNumber(rec[schema.ColTotal]),
		Assisted:     ParseNumber(rec[schema.ColAssisted]),
		Notes:        rec[schema.ColNotes],
	}
}

// ParseDate parses a month/day/year date. Returns nil unless the value has
// exactly three slash-separated parts, each a nonzero integer. Out-of-range
// parts (month 13, day 32) normalize forward rather than failing.
func ParseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, "/")
	if len(parts) != 3 {
		return nil
	}
	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n == 0 {
			return nil
		}
		nums[i] = n
	}
	t := time.Date(nums[2], time.Month(nums[0]), nums[1], 0, 0, 0, 0, time.Local)
	return &t
}

// ParseNumber parses a currency-ish amount. Every character except digits,
// '.' and '-' is stripped first, so "$1,250.00" reads as 1250. Empty or
// non-numeric values yield 0, never an error.
func ParseNumber(value string) float64 {
	if value == "" {
		return 0
	}
	var cleaned strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			cleaned.WriteRune(r)
		}
	}
	parsed, err := strconv.ParseFloat(cleaned.String(), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return parsed
}
