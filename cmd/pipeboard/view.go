package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pipeboard-org/pipeboard/config"
	"github.com/pipeboard-org/pipeboard/engine"
	"github.com/pipeboard-org/pipeboard/helpers"
	"github.com/pipeboard-org/pipeboard/schema"
	"github.com/pipeboard-org/pipeboard/termview"
)

var viewFlags struct {
	file          string
	owner         string
	stage         string
	judgment      string
	dateRange     string
	search        string
	drillStage    string
	drillJudgment string
	drillMonth    string
	maxRows       int
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Load an export and render the dashboard",
	Example: `  pipeboard view --file pipeline.csv
  pipeboard view --file pipeline.csv --owner "Dana Reyes" --range 30
  pipeboard view --file pipeline.csv --drill-stage Negotiation --search acme`,
	RunE: runView,
}

func init() {
	f := viewCmd.Flags()
	f.StringVar(&viewFlags.file, "file", "", "path to the CSV export (required)")
	f.StringVar(&viewFlags.owner, "owner", "", "filter by opportunity owner")
	f.StringVar(&viewFlags.stage, "stage", "", "filter by stage")
	f.StringVar(&viewFlags.judgment, "judgment", "", "filter by manager judgment")
	f.StringVar(&viewFlags.dateRange, "range", "all", "close-date range: all, overdue, or a day count")
	f.StringVar(&viewFlags.search, "search", "", "substring match over name and account")
	f.StringVar(&viewFlags.drillStage, "drill-stage", "", "drill into one stage (layered on --stage)")
	f.StringVar(&viewFlags.drillJudgment, "drill-judgment", "", "drill into one judgment")
	f.StringVar(&viewFlags.drillMonth, "drill-month", "", "drill into one created month (YYYY-MM)")
	f.IntVar(&viewFlags.maxRows, "max-rows", 0, "cap table rows shown (0 = all)")
	_ = viewCmd.MarkFlagRequired("file")
}

func runView(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if cfg.NoColor != nil && *cfg.NoColor {
		applyNoColor()
	}

	st, err := loadDataset(viewFlags.file)
	if err != nil {
		return err
	}

	criteria, err := buildCriteria(cfg)
	if err != nil {
		return err
	}
	st = applyCriteria(st, criteria)

	maxRows := viewFlags.maxRows
	if maxRows == 0 {
		maxRows = cfg.MaxTableRows
	}

	slog.Debug("rendering dashboard",
		"filtered", len(st.Filtered), "of", len(st.Rows))
	return termview.New(cmd.OutOrStdout(), maxRows).Render(st)
}

// loadDataset reads, parses, and normalizes an export file into a fresh
// dashboard state.
func loadDataset(path string) (engine.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.State{}, fmt.Errorf("reading export: %w", err)
	}
	text := string(data)

	if report := schema.Diagnose(helpers.Headers(text)); !report.Clean() {
		slog.Warn("export is missing expected columns", "missing", report.Missing)
	}

	rows := engine.BuildOpportunities(helpers.Parse(text))
	st := engine.Reduce(engine.NewState(), engine.DatasetLoaded{
		FileName: path,
		Rows:     rows,
	})
	slog.Info("loaded export", "file", path, "rows", len(rows), "load_id", st.LoadID)
	return st, nil
}

// buildCriteria converts flags (with config fallbacks) into filter criteria.
func buildCriteria(cfg *config.Config) (engine.FilterCriteria, error) {
	rangeValue := viewFlags.dateRange
	if rangeValue == "all" && cfg.DateRange != "" {
		rangeValue = cfg.DateRange
	}
	dateRange, err := config.ParseRange(rangeValue)
	if err != nil {
		return engine.FilterCriteria{}, err
	}

	criteria := engine.FilterCriteria{
		Search: viewFlags.search,
		Range:  dateRange,
	}
	if viewFlags.owner != "" {
		criteria.Owner = engine.Opt(viewFlags.owner)
	}
	if viewFlags.stage != "" {
		criteria.Stage = engine.Opt(viewFlags.stage)
	}
	if viewFlags.judgment != "" {
		criteria.Judgment = engine.Opt(viewFlags.judgment)
	}
	if viewFlags.drillStage != "" {
		criteria.SelectedStage = engine.Opt(viewFlags.drillStage)
	}
	if viewFlags.drillJudgment != "" {
		criteria.SelectedJudgment = engine.Opt(viewFlags.drillJudgment)
	}
	if viewFlags.drillMonth != "" {
		if _, err := time.Parse("2006-01", viewFlags.drillMonth); err != nil {
			return engine.FilterCriteria{}, fmt.Errorf("invalid --drill-month %q (want YYYY-MM)", viewFlags.drillMonth)
		}
		criteria.SelectedMonth = engine.Opt(engine.MonthKey(viewFlags.drillMonth))
	}
	return criteria, nil
}

// applyCriteria replays the flag-driven criteria through the reducer the
// same way interactive control changes would arrive.
func applyCriteria(st engine.State, c engine.FilterCriteria) engine.State {
	st = engine.Reduce(st, engine.OwnerSelected{Owner: c.Owner})
	st = engine.Reduce(st, engine.StageSelected{Stage: c.Stage})
	st = engine.Reduce(st, engine.JudgmentSelected{Judgment: c.Judgment})
	st = engine.Reduce(st, engine.SearchChanged{Query: c.Search})

	// Drill-down selectors are toggled by chart clicks in an interactive
	// host; the CLI sets them directly, then the final range event
	// re-filters with the complete criteria.
	st.Criteria.SelectedStage = c.SelectedStage
	st.Criteria.SelectedJudgment = c.SelectedJudgment
	st.Criteria.SelectedMonth = c.SelectedMonth
	return engine.Reduce(st, engine.RangeSelected{Range: c.Range})
}
