package termview

import (
	"strings"

	"github.com/fatih/color"

	"github.com/pipeboard-org/pipeboard/engine"
)

// ============================================================================
// CELL TARGET — RenderTarget over a character grid
// ============================================================================
// The engine lays charts out in surface units; this target maps them onto a
// fixed grid of terminal cells. Bars become colored block runes, labels
// plain text. Rotated labels draw horizontally — the geometry contract only
// cares about bars.
// ============================================================================

type cell struct {
	ch    rune
	color string
}

// CellTarget records draw calls into a rune grid for terminal output.
type CellTarget struct {
	cols, rows int
	grid       [][]cell
	size       engine.Size
}

// NewCellTarget creates a grid target with the given cell dimensions.
func NewCellTarget(cols, rows int) *CellTarget {
	return &CellTarget{cols: cols, rows: rows}
}

func (t *CellTarget) Clear(size engine.Size) {
	t.size = size
	t.grid = make([][]cell, t.rows)
	for y := range t.grid {
		t.grid[y] = make([]cell, t.cols)
		for x := range t.grid[y] {
			t.grid[y][x] = cell{ch: ' '}
		}
	}
}

func (t *CellTarget) DrawBar(r engine.Rect, barColor string) {
	x0, y0 := t.toCell(engine.Point{X: r.X, Y: r.Y})
	x1, y1 := t.toCell(engine.Point{X: r.X + r.W, Y: r.Y + r.H})
	for y := y0; y <= y1 && y < t.rows; y++ {
		for x := x0; x <= x1 && x < t.cols; x++ {
			if y >= 0 && x >= 0 {
				t.grid[y][x] = cell{ch: '█', color: barColor}
			}
		}
	}
}

func (t *CellTarget) DrawLabel(text string, at engine.Point, opts engine.LabelOptions) {
	x, y := t.toCell(at)
	switch opts.Align {
	case engine.AlignCenter:
		x -= len(text) / 2
	case engine.AlignRight:
		x -= len(text)
	}
	if y < 0 || y >= t.rows {
		return
	}
	for i, ch := range text {
		cx := x + i
		if cx < 0 || cx >= t.cols {
			continue
		}
		t.grid[y][cx] = cell{ch: ch, color: opts.Color}
	}
}

func (t *CellTarget) MeasureText(text string) engine.Size {
	if t.size.W == 0 || t.cols == 0 {
		return engine.Size{W: float64(len(text)), H: 1}
	}
	return engine.Size{
		W: float64(len(text)) * t.size.W / float64(t.cols),
		H: t.size.H / float64(t.rows),
	}
}

func (t *CellTarget) toCell(p engine.Point) (int, int) {
	if t.size.W == 0 || t.size.H == 0 {
		return 0, 0
	}
	x := int(p.X / t.size.W * float64(t.cols))
	y := int(p.Y / t.size.H * float64(t.rows))
	if x >= t.cols {
		x = t.cols - 1
	}
	if y >= t.rows {
		y = t.rows - 1
	}
	return x, y
}

// Lines renders the grid as printable lines, colorizing bar runs.
func (t *CellTarget) Lines() []string {
	palette := map[string]*color.Color{
		engine.ColorStage:    color.New(color.FgRed),
		engine.ColorJudgment: color.New(color.FgYellow),
	}

	lines := make([]string, 0, len(t.grid))
	for _, row := range t.grid {
		var b strings.Builder
		for _, c := range row {
			if p, ok := palette[c.color]; ok {
				b.WriteString(p.Sprint(string(c.ch)))
			} else {
				b.WriteRune(c.ch)
			}
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines
}
