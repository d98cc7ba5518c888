package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinnedClock() Option {
	return WithClock(func() time.Time { return testNow })
}

func loadedState(t *testing.T, rows []Opportunity) State {
	t.Helper()
	st := Reduce(NewState(), DatasetLoaded{FileName: "export.csv", Rows: rows}, pinnedClock())
	require.Len(t, st.Filtered, len(rows))
	return st
}

func center(r Rect) Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func TestDatasetLoadedReplacesEverything(t *testing.T) {
	st := loadedState(t, sampleRows())

	assert.NotEqual(t, uuid.Nil, st.LoadID)
	assert.Equal(t, "export.csv", st.FileName)
	assert.Equal(t, FilterCriteria{}, st.Criteria)
	assert.Equal(t, []string{"Dana", "Sam"}, st.Options.Owners)
	assert.Equal(t, 3, st.Metrics.Count)
	require.NotEmpty(t, st.Stage.Geometry)
	assert.Len(t, st.Stage.Geometry, st.Stage.Series.Len())

	// A second load replaces the set wholesale and carries no derived state over.
	prevID := st.LoadID
	st = Reduce(st, StageSelected{Stage: Opt("Discovery")}, pinnedClock())
	st = Reduce(st, DatasetLoaded{FileName: "other.csv", Rows: sampleRows()[:1]}, pinnedClock())

	assert.NotEqual(t, prevID, st.LoadID)
	assert.Equal(t, FilterCriteria{}, st.Criteria)
	assert.Len(t, st.Filtered, 1)
}

func TestControlEventsReFilter(t *testing.T) {
	st := loadedState(t, sampleRows())

	st = Reduce(st, OwnerSelected{Owner: Opt("Dana")}, pinnedClock())
	assert.Equal(t, []string{"Acme Expansion", "Gamma Pilot"}, names(st.Filtered))

	st = Reduce(st, SearchChanged{Query: "gamma"}, pinnedClock())
	assert.Equal(t, []string{"Gamma Pilot"}, names(st.Filtered))

	st = Reduce(st, OwnerSelected{Owner: nil}, pinnedClock())
	st = Reduce(st, SearchChanged{Query: ""}, pinnedClock())
	assert.Len(t, st.Filtered, 3)
}

func TestFiltersResetClearsDrillDowns(t *testing.T) {
	st := loadedState(t, sampleRows())
	st = Reduce(st, OwnerSelected{Owner: Opt("Dana")}, pinnedClock())
	st = Reduce(st, Clicked{Chart: ChartStage, At: center(st.Stage.Geometry[0])}, pinnedClock())
	require.NotNil(t, st.Criteria.SelectedStage)

	st = Reduce(st, FiltersReset{}, pinnedClock())

	assert.Equal(t, FilterCriteria{}, st.Criteria)
	assert.Len(t, st.Filtered, 3)
}

func TestStageClickToggleIsAnInvolution(t *testing.T) {
	st := loadedState(t, sampleRows())
	before := st.Filtered

	st = Reduce(st, Clicked{Chart: ChartStage, At: center(st.Stage.Geometry[0])}, pinnedClock())
	require.NotNil(t, st.Criteria.SelectedStage)
	assert.Equal(t, "Negotiation", *st.Criteria.SelectedStage)
	assert.Equal(t, []string{"Acme Expansion", "Gamma Pilot"}, names(st.Filtered))

	// Clicking the same (now sole) bar again restores the pre-selection set.
	st = Reduce(st, Clicked{Chart: ChartStage, At: center(st.Stage.Geometry[0])}, pinnedClock())
	assert.Nil(t, st.Criteria.SelectedStage)
	assert.Equal(t, before, st.Filtered)
}

func TestClickReplacesPriorSelection(t *testing.T) {
	st := loadedState(t, sampleRows())

	st = Reduce(st, Clicked{Chart: ChartStage, At: center(st.Stage.Geometry[0])}, pinnedClock())
	require.Equal(t, "Negotiation", *st.Criteria.SelectedStage)

	// Clear, then select the other stage: the selection is sole, not additive.
	st = Reduce(st, Clicked{Chart: ChartStage, At: center(st.Stage.Geometry[0])}, pinnedClock())
	st = Reduce(st, Clicked{Chart: ChartStage, At: center(st.Stage.Geometry[1])}, pinnedClock())
	assert.Equal(t, "Discovery", *st.Criteria.SelectedStage)
	assert.Equal(t, []string{"Beta Renewal"}, names(st.Filtered))
}

func TestClickMissIsNoop(t *testing.T) {
	st := loadedState(t, sampleRows())
	before := st

	st = Reduce(st, Clicked{Chart: ChartStage, At: Point{X: 1, Y: 1}}, pinnedClock())

	assert.Equal(t, before.Criteria, st.Criteria)
	assert.Equal(t, before.Filtered, st.Filtered)
}

func TestJudgmentClickToggles(t *testing.T) {
	st := loadedState(t, sampleRows())

	st = Reduce(st, Clicked{Chart: ChartJudgment, At: center(st.Judgment.Geometry[0])}, pinnedClock())
	require.NotNil(t, st.Criteria.SelectedJudgment)
	assert.Equal(t, "Commit", *st.Criteria.SelectedJudgment)
	assert.Equal(t, []string{"Acme Expansion"}, names(st.Filtered))
}

func TestMonthClickTogglesMonthKey(t *testing.T) {
	st := loadedState(t, sampleRows())

	// July 2026 is index 3 of the Apr–Sep window.
	st = Reduce(st, Clicked{Chart: ChartMonth, At: center(st.Month.Geometry[3])}, pinnedClock())

	require.NotNil(t, st.Criteria.SelectedMonth)
	assert.Equal(t, MonthKey("2026-07"), *st.Criteria.SelectedMonth)
	assert.Equal(t, []string{"Acme Expansion"}, names(st.Filtered))

	// All six labeled slots are still rendered; only July shows a count.
	assert.Equal(t, 6, st.Month.Series.Len())
	assert.Equal(t, []float64{0, 0, 0, 1, 0, 0}, st.Month.Series.Values)
}

func TestStageHoverTooltip(t *testing.T) {
	st := loadedState(t, []Opportunity{{Name: "a", Stage: "Won", Total: 1000}})
	p := center(st.Stage.Geometry[0])

	st = Reduce(st, PointerMoved{Chart: ChartStage, At: p}, pinnedClock())

	require.True(t, st.Stage.Tooltip.Visible)
	assert.Equal(t, "Won: $1,000.00", st.Stage.Tooltip.Text)
	// Stage tooltips track the pointer unclamped.
	assert.Equal(t, Point{X: p.X + 12, Y: p.Y - 12}, st.Stage.Tooltip.At)

	st = Reduce(st, PointerMoved{Chart: ChartStage, At: Point{X: 1, Y: 1}}, pinnedClock())
	assert.False(t, st.Stage.Tooltip.Visible)
}

func TestPointerLeaveHidesTooltip(t *testing.T) {
	st := loadedState(t, sampleRows())
	st = Reduce(st, PointerMoved{Chart: ChartStage, At: center(st.Stage.Geometry[0])}, pinnedClock())
	require.True(t, st.Stage.Tooltip.Visible)

	st = Reduce(st, PointerLeft{Chart: ChartStage}, pinnedClock())
	assert.False(t, st.Stage.Tooltip.Visible)
}

func TestJudgmentChartHasNoTooltip(t *testing.T) {
	st := loadedState(t, sampleRows())

	st = Reduce(st, PointerMoved{Chart: ChartJudgment, At: center(st.Judgment.Geometry[0])}, pinnedClock())

	assert.False(t, st.Judgment.Tooltip.Visible)
}

func TestMonthTooltipTextAndClamping(t *testing.T) {
	st := loadedState(t, []Opportunity{{Name: "a", CreatedDate: day(2026, 9, 1), Assisted: 25}})

	measure := WithTextMeasure(func(string) Size { return Size{W: 200, H: 20} })
	p := center(st.Month.Geometry[5]) // the current month's bar, far right

	st = Reduce(st, PointerMoved{Chart: ChartMonth, At: p}, pinnedClock(), measure)

	require.True(t, st.Month.Tooltip.Visible)
	assert.Equal(t, "Sep 26: 1 opp · $25.00 iARR", st.Month.Tooltip.Text)

	// Clamped inside the container: never past W - textW - pad.
	maxLeft := st.Month.Size.W - 200 - 12
	assert.LessOrEqual(t, st.Month.Tooltip.At.X, maxLeft)
	assert.GreaterOrEqual(t, st.Month.Tooltip.At.X, 12.0)
	assert.Equal(t, p.Y-12, st.Month.Tooltip.At.Y)
}

func TestMonthTooltipPluralSuffix(t *testing.T) {
	st := loadedState(t, []Opportunity{
		{Name: "a", CreatedDate: day(2026, 9, 1), Assisted: 100},
		{Name: "b", CreatedDate: day(2026, 9, 2), Assisted: 150},
	})

	st = Reduce(st, PointerMoved{Chart: ChartMonth, At: center(st.Month.Geometry[5])}, pinnedClock())

	assert.Equal(t, "Sep 26: 2 opps · $250.00 iARR", st.Month.Tooltip.Text)
}

func TestChartResizedRelaysGeometry(t *testing.T) {
	st := loadedState(t, sampleRows())
	original := st.Stage.Geometry

	st = Reduce(st, ChartResized{Chart: ChartStage, Size: Size{W: 400, H: 200}}, pinnedClock())

	assert.Equal(t, Size{W: 400, H: 200}, st.Stage.Size)
	assert.Len(t, st.Stage.Geometry, len(original))
	assert.NotEqual(t, original, st.Stage.Geometry)
}

func TestRefreshHidesStaleTooltips(t *testing.T) {
	st := loadedState(t, sampleRows())
	st = Reduce(st, PointerMoved{Chart: ChartStage, At: center(st.Stage.Geometry[0])}, pinnedClock())
	require.True(t, st.Stage.Tooltip.Visible)

	st = Reduce(st, SearchChanged{Query: "beta"}, pinnedClock())

	assert.False(t, st.Stage.Tooltip.Visible, "tooltip must not outlive its geometry")
}
