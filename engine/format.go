package engine

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ============================================================================
// FORMATTING — en-US display strings
// ============================================================================
// Currency is two-decimal USD style ($1,234.56); plain numbers carry at most
// one decimal place with thousands separators (1,234.5); short dates render
// month/day/year without leading zeros.
// ============================================================================

// FormatCurrency formats an amount as two-decimal USD with thousands
// separators.
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	result := fmt.Sprintf("$%s.%02d", groupThousands(cents/100), cents%100)
	if negative {
		return "-" + result
	}
	return result
}

// FormatNumber formats a number with at most one decimal place and
// thousands separators. Whole values drop the decimal entirely.
func FormatNumber(v float64) string {
	negative := v < 0
	if negative {
		v = -v
	}

	tenths := int64(math.Round(v * 10))
	result := groupThousands(tenths / 10)
	if tenths%10 != 0 {
		result = fmt.Sprintf("%s.%d", result, tenths%10)
	}
	if negative {
		return "-" + result
	}
	return result
}

// FormatShortDate renders a date as month/day/year without leading zeros,
// or "" for nil.
func FormatShortDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}
