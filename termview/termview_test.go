package termview

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipeboard-org/pipeboard/engine"
)

func init() {
	color.NoColor = true
}

func testState(t *testing.T) engine.State {
	t.Helper()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	created := time.Date(2026, 7, 3, 0, 0, 0, 0, time.Local)
	rows := []engine.Opportunity{
		{Name: "Acme Expansion", Account: "Acme Corp", Owner: "Dana", Stage: "Negotiation",
			Judgment: "Commit", CreatedDate: &created, Total: 120000, Assisted: 45500},
		{Name: "Beta Renewal", Account: "Beta LLC", Owner: "Sam", Stage: "Discovery",
			Judgment: "Best Case", Total: 8000, Assisted: 2000},
	}
	return engine.Reduce(engine.NewState(),
		engine.DatasetLoaded{FileName: "pipeline.csv", Rows: rows},
		engine.WithClock(func() time.Time { return now }))
}

func TestRenderContainsDashboardSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, 0).Render(testState(t)))
	out := buf.String()

	assert.Contains(t, out, "pipeline.csv")
	assert.Contains(t, out, "Opportunities")
	assert.Contains(t, out, "Pipeline by Stage")
	assert.Contains(t, out, "Manager Judgment")
	assert.Contains(t, out, "Walk-Ins by Created Month")
	assert.Contains(t, out, "Negotiation")
	assert.Contains(t, out, "$45,500.00")
	assert.Contains(t, out, "2 rows")
	assert.Contains(t, out, "█", "bars render as block runes")
}

func TestRenderMaxRowsTruncates(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, 1).Render(testState(t)))
	out := buf.String()

	assert.Contains(t, out, "Acme Expansion")
	assert.NotContains(t, out, "Beta Renewal")
	assert.Contains(t, out, "… 1 more")
	assert.Contains(t, out, "2 rows", "meta line counts all filtered rows")
}

func TestCellTargetDrawsWithinGrid(t *testing.T) {
	target := NewCellTarget(40, 10)
	target.Clear(engine.Size{W: 400, H: 100})

	target.DrawBar(engine.Rect{X: 0, Y: 0, W: 400, H: 100}, engine.ColorStage)
	target.DrawLabel("label", engine.Point{X: 390, Y: 50}, engine.LabelOptions{Align: engine.AlignRight})

	lines := target.Lines()
	require.Len(t, lines, 10)
	for _, line := range lines {
		assert.LessOrEqual(t, len([]rune(line)), 40)
	}
	assert.Contains(t, strings.Join(lines, "\n"), "label")
}

func TestCellTargetMeasureText(t *testing.T) {
	target := NewCellTarget(40, 10)
	target.Clear(engine.Size{W: 400, H: 100})

	size := target.MeasureText("abcd")
	assert.InDelta(t, 40, size.W, 1e-9, "four cells at ten surface units each")
	assert.InDelta(t, 10, size.H, 1e-9)
}
