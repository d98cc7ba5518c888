package engine

import (
	"github.com/google/uuid"
)

// ============================================================================
// APPLICATION STATE — Explicit State Value + Pure Reducer
// ============================================================================
// One State value holds the full record set, the filter criteria, and every
// derived snapshot (filtered rows, metrics, table rows, chart series and
// geometry). Reduce(state, event) returns the next state; rendering is a
// separate read-only projection over it. Derived state is replaced wholesale
// on every transition that can affect it — stale chart geometry is never
// kept around for hit-testing.
// ============================================================================

// ChartState is the per-chart derived snapshot.
type ChartState struct {
	Size     Size
	Series   Series
	Geometry []Rect
	Tooltip  Tooltip
}

// MonthChartState is the time-series chart's snapshot, carrying the parallel
// assisted totals and drill-down month keys.
type MonthChartState struct {
	Size     Size
	Series   MonthSeries
	Geometry []Rect
	Tooltip  Tooltip
}

// State is the whole dashboard: loaded rows, criteria, and derived output.
type State struct {
	LoadID   uuid.UUID
	FileName string
	Rows     []Opportunity
	Options  FilterOptions

	Criteria FilterCriteria

	Filtered []Opportunity
	Metrics  Metrics
	Table    []TableRow
	Stage    ChartState
	Judgment ChartState
	Month    MonthChartState
}

// NewState returns an empty dashboard with default chart surfaces.
func NewState() State {
	size := Size{W: 640, H: 320}
	return State{
		Stage:    ChartState{Size: size},
		Judgment: ChartState{Size: size},
		Month:    MonthChartState{Size: size},
	}
}

// ============================================================================
// EVENTS
// ============================================================================

// Event is one dashboard transition: a file load, a control change, or a
// pointer interaction.
type Event interface{ isEvent() }

// DatasetLoaded replaces the full record set. Criteria reset along with it —
// a new dataset starts from an unfiltered dashboard.
type DatasetLoaded struct {
	FileName string
	Rows     []Opportunity
}

// OwnerSelected sets or clears the owner criterion.
type OwnerSelected struct{ Owner *string }

// StageSelected sets or clears the stage criterion.
type StageSelected struct{ Stage *string }

// JudgmentSelected sets or clears the judgment criterion.
type JudgmentSelected struct{ Judgment *string }

// RangeSelected sets the close-date range criterion.
type RangeSelected struct{ Range DateRange }

// SearchChanged sets the free-text criterion. Debouncing happens upstream —
// by the time this event arrives it is final.
type SearchChanged struct{ Query string }

// FiltersReset clears every criterion, drill-down selectors included.
type FiltersReset struct{}

// ChartResized updates a chart surface and relays its geometry.
type ChartResized struct {
	Chart ChartKind
	Size  Size
}

// PointerMoved drives hover tooltips via hit-testing.
type PointerMoved struct {
	Chart ChartKind
	At    Point
}

// PointerLeft hides the chart's tooltip.
type PointerLeft struct{ Chart ChartKind }

// Clicked toggles the drill-down selector for the hit bar; a miss is a no-op.
type Clicked struct {
	Chart ChartKind
	At    Point
}

func (DatasetLoaded) isEvent()    {}
func (OwnerSelected) isEvent()    {}
func (StageSelected) isEvent()    {}
func (JudgmentSelected) isEvent() {}
func (RangeSelected) isEvent()    {}
func (SearchChanged) isEvent()    {}
func (FiltersReset) isEvent()     {}
func (ChartResized) isEvent()     {}
func (PointerMoved) isEvent()     {}
func (PointerLeft) isEvent()      {}
func (Clicked) isEvent()          {}

// ============================================================================
// REDUCER
// ============================================================================

// Reduce advances the dashboard by one event and returns the next state.
// The input state is not modified.
func Reduce(st State, ev Event, opts ...Option) State {
	cfg := applyOptions(opts)

	switch e := ev.(type) {
	case DatasetLoaded:
		st.LoadID = uuid.New()
		st.FileName = e.FileName
		st.Rows = e.Rows
		st.Options = DiscoverFilterOptions(e.Rows)
		st.Criteria = FilterCriteria{}
		return refresh(st, cfg)

	case OwnerSelected:
		st.Criteria.Owner = e.Owner
		return refresh(st, cfg)

	case StageSelected:
		st.Criteria.Stage = e.Stage
		return refresh(st, cfg)

	case JudgmentSelected:
		st.Criteria.Judgment = e.Judgment
		return refresh(st, cfg)

	case RangeSelected:
		st.Criteria.Range = e.Range
		return refresh(st, cfg)

	case SearchChanged:
		st.Criteria.Search = e.Query
		return refresh(st, cfg)

	case FiltersReset:
		st.Criteria = FilterCriteria{}
		return refresh(st, cfg)

	case ChartResized:
		switch e.Chart {
		case ChartStage:
			st.Stage.Size = e.Size
		case ChartJudgment:
			st.Judgment.Size = e.Size
		case ChartMonth:
			st.Month.Size = e.Size
		}
		return refresh(st, cfg)

	case PointerMoved:
		return pointerMoved(st, e, cfg)

	case PointerLeft:
		switch e.Chart {
		case ChartStage:
			st.Stage.Tooltip = Tooltip{}
		case ChartMonth:
			st.Month.Tooltip = Tooltip{}
		}
		return st

	case Clicked:
		return clicked(st, e, cfg)
	}

	return st
}

// refresh recomputes every derived snapshot from the current rows and
// criteria. Tooltips are dropped along with the geometry they pointed at.
func refresh(st State, cfg *config) State {
	now := cfg.now()

	st.Filtered = ApplyFilters(st.Rows, st.Criteria, now)
	st.Metrics = ComputeMetrics(st.Filtered, now)
	st.Table = BuildTableRows(st.Filtered, now)

	st.Stage.Series = StageSeries(st.Filtered)
	st.Stage.Geometry = LayoutVertical(st.Stage.Size, st.Stage.Series)
	st.Stage.Tooltip = Tooltip{}

	st.Judgment.Series = JudgmentSeries(st.Filtered)
	st.Judgment.Geometry = LayoutHorizontal(st.Judgment.Size, st.Judgment.Series)
	st.Judgment.Tooltip = Tooltip{}

	st.Month.Series = BuildMonthSeries(st.Filtered, now)
	st.Month.Geometry = LayoutVertical(st.Month.Size, st.Month.Series.Series)
	st.Month.Tooltip = Tooltip{}

	return st
}

func pointerMoved(st State, e PointerMoved, cfg *config) State {
	switch e.Chart {
	case ChartStage:
		idx := HitTest(st.Stage.Geometry, e.At)
		if idx < 0 {
			st.Stage.Tooltip = Tooltip{}
			return st
		}
		st.Stage.Tooltip = stageTooltip(st.Stage.Series, idx, e.At)

	case ChartMonth:
		idx := HitTest(st.Month.Geometry, e.At)
		if idx < 0 {
			st.Month.Tooltip = Tooltip{}
			return st
		}
		st.Month.Tooltip = monthTooltip(st.Month.Series, idx, e.At, st.Month.Size, cfg.measure)
	}
	// The judgment chart has no tooltip.
	return st
}

func clicked(st State, e Clicked, cfg *config) State {
	switch e.Chart {
	case ChartStage:
		idx := HitTest(st.Stage.Geometry, e.At)
		if idx < 0 {
			return st
		}
		st.Criteria.SelectedStage = toggleKey(st.Criteria.SelectedStage, st.Stage.Series.Labels[idx])

	case ChartJudgment:
		idx := HitTest(st.Judgment.Geometry, e.At)
		if idx < 0 {
			return st
		}
		st.Criteria.SelectedJudgment = toggleKey(st.Criteria.SelectedJudgment, st.Judgment.Series.Labels[idx])

	case ChartMonth:
		idx := HitTest(st.Month.Geometry, e.At)
		if idx < 0 {
			return st
		}
		st.Criteria.SelectedMonth = toggleKey(st.Criteria.SelectedMonth, st.Month.Series.Keys[idx])

	default:
		return st
	}
	return refresh(st, cfg)
}
