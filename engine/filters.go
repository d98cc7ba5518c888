package engine

import (
	"math"
	"sort"
	"strings"
	"time"
)

// ============================================================================
// FILTERS — Criteria → Filtered Subset
// ============================================================================
// Pure function of (rows, criteria, now). All set criteria AND together:
// form-driven exact matches, chart drill-down selectors, free-text search
// over name+account, and the close-date range test. Original relative order
// is preserved.
// ============================================================================

// ApplyFilters returns the rows passing every set criterion. The input slice
// is never modified; applying the same criteria twice yields the same result.
func ApplyFilters(rows []Opportunity, c FilterCriteria, now time.Time) []Opportunity {
	today := Midnight(now)
	search := strings.ToLower(strings.TrimSpace(c.Search))

	filtered := make([]Opportunity, 0, len(rows))
	for _, row := range rows {
		if !passes(row, c, search, today) {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

func passes(row Opportunity, c FilterCriteria, search string, today time.Time) bool {
	if c.Owner != nil && row.Owner != *c.Owner {
		return false
	}
	if c.Stage != nil && row.Stage != *c.Stage {
		return false
	}
	if c.Judgment != nil && row.Judgment != *c.Judgment {
		return false
	}
	if c.SelectedStage != nil && row.Stage != *c.SelectedStage {
		return false
	}
	if c.SelectedJudgment != nil && row.Judgment != *c.SelectedJudgment {
		return false
	}
	if c.SelectedMonth != nil {
		if row.CreatedDate == nil || MonthKeyOf(*row.CreatedDate) != *c.SelectedMonth {
			return false
		}
	}

	if search != "" {
		haystack := strings.ToLower(row.Name + " " + row.Account)
		if !strings.Contains(haystack, search) {
			return false
		}
	}

	return passesRange(row, c.Range, today)
}

func passesRange(row Opportunity, r DateRange, today time.Time) bool {
	if r.Kind == RangeAll {
		return true
	}
	if row.CloseDate == nil {
		return false
	}
	diff := DiffDays(*row.CloseDate, today)
	if r.Kind == RangeOverdue {
		return diff < 0
	}
	return diff >= 0 && diff <= r.Days
}

// DiffDays is the floor of the day difference between two times. Both sides
// are expected midnight-normalized; floor division keeps partial days (DST
// shifts) from rounding toward zero.
func DiffDays(t, from time.Time) int {
	return int(math.Floor(t.Sub(from).Hours() / 24))
}

// ============================================================================
// FILTER OPTION DISCOVERY
// ============================================================================

// FilterOptions are the distinct values available to the choice controls,
// discovered from the full (unfiltered) set.
type FilterOptions struct {
	Owners    []string
	Stages    []string
	Judgments []string
}

// DiscoverFilterOptions collects distinct non-empty owners, stages, and
// judgments across all rows, each list sorted.
func DiscoverFilterOptions(rows []Opportunity) FilterOptions {
	return FilterOptions{
		Owners:    distinctSorted(rows, func(r Opportunity) string { return r.Owner }),
		Stages:    distinctSorted(rows, func(r Opportunity) string { return r.Stage }),
		Judgments: distinctSorted(rows, func(r Opportunity) string { return r.Judgment }),
	}
}

func distinctSorted(rows []Opportunity, get func(Opportunity) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, row := range rows {
		v := get(row)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
