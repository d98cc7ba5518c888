package engine

import "fmt"

// ============================================================================
// INTERACTION — Pointer Events → Tooltips + Drill-Down Toggles
// ============================================================================
// Hover hit-tests the chart's current geometry and positions a tooltip near
// the pointer; the month chart clamps the tooltip inside its container, the
// stage chart does not. Click toggles the drill-down selector for the hit
// bar: clicking the active key clears it, anything else becomes the sole
// selection for that dimension. The judgment chart has no tooltip.
// ============================================================================

// tooltipPad is the pointer offset and clamp margin, in surface units.
const tooltipPad = 12

// Tooltip is the hover feedback the presenter should display.
type Tooltip struct {
	Text    string
	At      Point
	Visible bool
}

// TextMeasure estimates rendered text extent, used only for tooltip
// clamping. Presenters with real font metrics should supply their own.
type TextMeasure func(text string) Size

func estimateText(text string) Size {
	return Size{W: float64(7 * len(text)), H: 18}
}

// stageTooltip formats hover feedback for a stage bar.
func stageTooltip(s Series, idx int, at Point) Tooltip {
	return Tooltip{
		Text:    fmt.Sprintf("%s: %s", s.Labels[idx], FormatCurrency(s.Values[idx])),
		At:      Point{X: at.X + tooltipPad, Y: at.Y - tooltipPad},
		Visible: true,
	}
}

// monthTooltip formats hover feedback for a month bar, clamped so the
// tooltip stays inside the chart container.
func monthTooltip(s MonthSeries, idx int, at Point, container Size, measure TextMeasure) Tooltip {
	suffix := "opps"
	if s.Values[idx] == 1 {
		suffix = "opp"
	}
	text := fmt.Sprintf("%s: %s %s · %s iARR",
		s.Labels[idx], FormatNumber(s.Values[idx]), suffix, FormatCurrency(s.Assisted[idx]))

	extent := measure(text)
	return Tooltip{
		Text: text,
		At: Point{
			X: clamp(at.X+tooltipPad, tooltipPad, container.W-extent.W-tooltipPad),
			Y: clamp(at.Y-tooltipPad, tooltipPad, container.H-extent.H-tooltipPad),
		},
		Visible: true,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// toggleKey flips a drill-down selector: selecting the active key clears
// it, any other key replaces the selection.
func toggleKey[T comparable](current *T, clicked T) *T {
	if current != nil && *current == clicked {
		return nil
	}
	return &clicked
}
