package engine

// ============================================================================
// CHART RENDERER — Series → Pixel Geometry + Draw Calls
// ============================================================================
// Two bar styles: vertical (stage totals, month histogram) and horizontal
// (judgment totals). Layout is pure geometry; Render issues draw calls
// against a RenderTarget and returns the same geometry. Hit-testing walks
// the geometry in order and keeps the LAST containing rectangle — overlap
// resolves by iteration order, not z-order.
// ============================================================================

// Bar and label placement constants, in surface units.
const (
	vPadding = 30 // vertical charts: outer padding
	hPadding = 20 // horizontal charts: outer padding
	barInset = 8  // vertical bars: horizontal inset per side
	rowInset = 6  // horizontal bars: vertical inset per side

	labelAngle = -0.4 // radians, rotated bar labels
)

// Chart colors.
const (
	ColorStage    = "#e64b3d"
	ColorMonth    = "#e64b3d"
	ColorJudgment = "#f4b63c"
	colorLabel    = "#5f5b5f"
	colorValue    = "#141213"
)

// Align positions a label relative to its anchor point.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// LabelOptions style a DrawLabel call.
type LabelOptions struct {
	Align Align
	Angle float64 // radians; 0 = horizontal
	Color string
	Size  float64 // font size hint
}

// RenderTarget is the drawing capability the renderer needs. A headless
// implementation can simply record the calls.
type RenderTarget interface {
	Clear(size Size)
	DrawBar(r Rect, color string)
	DrawLabel(text string, at Point, opts LabelOptions)
	MeasureText(text string) Size
}

// ============================================================================
// LAYOUT — pure geometry
// ============================================================================

// LayoutVertical computes bar rectangles for a vertical bar chart: bars
// equally spaced along the X axis, height proportional to value/max with a
// max floor of 1 so an all-zero series still lays out. An empty series
// yields an empty geometry list.
func LayoutVertical(size Size, s Series) []Rect {
	if s.Len() == 0 {
		return nil
	}

	maxValue := maxWithFloor(s.Values)
	barWidth := (size.W - vPadding*2) / float64(s.Len())

	rects := make([]Rect, 0, s.Len())
	for i, v := range s.Values {
		barHeight := v / maxValue * (size.H - vPadding*2)
		x := vPadding + float64(i)*barWidth
		rects = append(rects, Rect{
			X: x + barInset,
			Y: size.H - vPadding - barHeight,
			W: barWidth - barInset*2,
			H: barHeight,
		})
	}
	return rects
}

// LayoutHorizontal computes bar rectangles for a horizontal bar chart: bars
// equally spaced along the Y axis, length proportional to value/max with the
// same max floor of 1.
func LayoutHorizontal(size Size, s Series) []Rect {
	if s.Len() == 0 {
		return nil
	}

	maxValue := maxWithFloor(s.Values)
	rowHeight := (size.H - hPadding*2) / float64(s.Len())

	rects := make([]Rect, 0, s.Len())
	for i, v := range s.Values {
		barWidth := v / maxValue * (size.W - hPadding*2)
		rects = append(rects, Rect{
			X: hPadding,
			Y: hPadding + float64(i)*rowHeight + rowInset,
			W: barWidth,
			H: rowHeight - rowInset*2,
		})
	}
	return rects
}

func maxWithFloor(values []float64) float64 {
	m := 1.0
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

// ============================================================================
// RENDER — draw calls + geometry
// ============================================================================

// RenderVertical draws a vertical bar chart and returns its geometry, with
// rotated labels beneath each bar. The returned geometry fully replaces any
// prior render of the same chart.
func RenderVertical(t RenderTarget, size Size, s Series, color string) []Rect {
	t.Clear(size)
	rects := LayoutVertical(size, s)
	if len(rects) == 0 {
		return nil
	}

	barWidth := (size.W - vPadding*2) / float64(s.Len())
	for i, r := range rects {
		t.DrawBar(r, color)
		t.DrawLabel(s.Labels[i], Point{
			X: vPadding + (float64(i)+0.5)*barWidth,
			Y: size.H - vPadding + 10,
		}, LabelOptions{Align: AlignCenter, Angle: labelAngle, Color: colorLabel, Size: 12})
	}
	return rects
}

// RenderHorizontal draws a horizontal bar chart and returns its geometry.
// Each row carries its label on the left and its formatted value on the
// right edge.
func RenderHorizontal(t RenderTarget, size Size, s Series, color string) []Rect {
	t.Clear(size)
	rects := LayoutHorizontal(size, s)
	if len(rects) == 0 {
		return nil
	}

	rowHeight := (size.H - hPadding*2) / float64(s.Len())
	for i, r := range rects {
		t.DrawBar(r, color)
		baseline := hPadding + float64(i+1)*rowHeight - 8
		t.DrawLabel(s.Labels[i], Point{X: hPadding, Y: baseline},
			LabelOptions{Align: AlignLeft, Color: colorValue, Size: 12})
		t.DrawLabel(FormatNumber(s.Values[i]), Point{X: size.W - hPadding, Y: baseline},
			LabelOptions{Align: AlignRight, Color: colorValue, Size: 12})
	}
	return rects
}

// ============================================================================
// HIT TESTING
// ============================================================================

// HitTest returns the index of the last rectangle containing p, or -1 when
// none does. Only the most recent render's geometry may be passed in —
// stale geometry must never be hit-tested.
func HitTest(geometry []Rect, p Point) int {
	hit := -1
	for i, r := range geometry {
		if r.Contains(p) {
			hit = i
		}
	}
	return hit
}
