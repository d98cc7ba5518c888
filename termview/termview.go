// Package termview renders a dashboard state to a terminal.
package termview

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/pipeboard-org/pipeboard/engine"
)

// ============================================================================
// TERMINAL PRESENTER — Read-Only Projection of engine.State
// ============================================================================
// Prints the metric strip, the three charts, and the detail table. Past-due
// rows render red, rows missing a next step yellow. The presenter never
// mutates state — it draws through its own cell surfaces, leaving the
// state's hit-test geometry untouched.
// ============================================================================

// Chart cell dimensions for terminal output.
const (
	chartCols = 72
	chartRows = 14
)

// Presenter writes a dashboard to an io.Writer.
type Presenter struct {
	w        io.Writer
	maxRows  int
	heading  *color.Color
	pastDue  *color.Color
	noStep   *color.Color
	dimColor *color.Color
}

// New creates a presenter. maxRows caps the table output; 0 means all rows.
func New(w io.Writer, maxRows int) *Presenter {
	return &Presenter{
		w:        w,
		maxRows:  maxRows,
		heading:  color.New(color.FgCyan, color.Bold),
		pastDue:  color.New(color.FgRed),
		noStep:   color.New(color.FgYellow),
		dimColor: color.New(color.Faint),
	}
}

// Render prints the full dashboard for the given state.
func (p *Presenter) Render(st engine.State) error {
	if st.FileName != "" {
		fmt.Fprintf(p.w, "%s\n\n", p.heading.Sprint(st.FileName))
	}

	p.renderMetrics(st.Metrics)

	p.renderChart("Pipeline by Stage", func(t *CellTarget) {
		engine.RenderVertical(t, st.Stage.Size, st.Stage.Series, engine.ColorStage)
	})
	p.renderChart("Manager Judgment (iARR-weighted)", func(t *CellTarget) {
		engine.RenderHorizontal(t, st.Judgment.Size, st.Judgment.Series, engine.ColorJudgment)
	})
	p.renderChart("Walk-Ins by Created Month", func(t *CellTarget) {
		engine.RenderVertical(t, st.Month.Size, st.Month.Series.Series, engine.ColorMonth)
	})

	return p.renderTable(st.Table)
}

func (p *Presenter) renderMetrics(m engine.Metrics) {
	s := engine.FormatMetrics(m)
	labels := []string{"Opportunities", "Assisted iARR", "Avg iARR", "Median Age", "Past Due"}
	values := []string{s.Count, s.Total, s.Average, s.MedianAge, s.PastDue}

	var head, body []string
	for i, label := range labels {
		width := len(label)
		if len(values[i]) > width {
			width = len(values[i])
		}
		head = append(head, fmt.Sprintf("%-*s", width, label))
		body = append(body, fmt.Sprintf("%-*s", width, values[i]))
	}
	fmt.Fprintln(p.w, p.dimColor.Sprint(strings.Join(head, "   ")))
	fmt.Fprintln(p.w, strings.Join(body, "   "))
	fmt.Fprintln(p.w)
}

func (p *Presenter) renderChart(title string, draw func(*CellTarget)) {
	fmt.Fprintln(p.w, p.heading.Sprint(title))
	t := NewCellTarget(chartCols, chartRows)
	draw(t)
	for _, line := range t.Lines() {
		fmt.Fprintln(p.w, line)
	}
	fmt.Fprintln(p.w)
}

var tableColumns = []struct {
	name  string
	width int
	get   func(engine.TableRow) string
}{
	{"Opportunity", 28, func(r engine.TableRow) string { return r.Name }},
	{"Account", 20, func(r engine.TableRow) string { return r.Account }},
	{"Owner", 16, func(r engine.TableRow) string { return r.Owner }},
	{"Total", 12, func(r engine.TableRow) string { return r.Total }},
	{"Assisted", 12, func(r engine.TableRow) string { return r.Assisted }},
	{"Stage", 14, func(r engine.TableRow) string { return r.Stage }},
	{"Judgment", 14, func(r engine.TableRow) string { return r.Judgment }},
	{"Close", 10, func(r engine.TableRow) string { return r.CloseDate }},
	{"Next Step", 10, func(r engine.TableRow) string { return r.NextStepDate }},
	{"Age", 5, func(r engine.TableRow) string { return r.Age }},
}

func (p *Presenter) renderTable(rows []engine.TableRow) error {
	var head []string
	for _, col := range tableColumns {
		head = append(head, fmt.Sprintf("%-*s", col.width, col.name))
	}
	if _, err := fmt.Fprintln(p.w, p.dimColor.Sprint(strings.Join(head, "  "))); err != nil {
		return err
	}

	shown := rows
	if p.maxRows > 0 && len(rows) > p.maxRows {
		shown = rows[:p.maxRows]
	}

	for _, row := range shown {
		var cells []string
		for _, col := range tableColumns {
			cells = append(cells, fmt.Sprintf("%-*s", col.width, truncate(col.get(row), col.width)))
		}
		line := strings.Join(cells, "  ")
		switch {
		case row.PastDue:
			line = p.pastDue.Sprint(line)
		case row.MissingNextStep:
			line = p.noStep.Sprint(line)
		}
		if _, err := fmt.Fprintln(p.w, line); err != nil {
			return err
		}
	}

	if len(shown) < len(rows) {
		fmt.Fprintln(p.w, p.dimColor.Sprintf("… %d more", len(rows)-len(shown)))
	}
	_, err := fmt.Fprintln(p.w, p.dimColor.Sprint(engine.TableMeta(len(rows))))
	return err
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
