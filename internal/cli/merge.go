package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hmtrong/catalyst/internal/model"
	"github.com/hmtrong/catalyst/internal/pipeline"
	"github.com/hmtrong/catalyst/internal/store"
)

var (
	mergeMaster  string
	mergeBatches []string
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Fold catalyst batches into the master calendar",
	Long: `Merge reconciles fresh filing and news batches with the master
calendar: one best record per (ticker, event, date, approx-token)
identity, approximate rows suppressed when an exact date lands inside
their window, past events retired, first-seen timestamps preserved.

Running merge with no new batches re-normalizes and re-sorts the
master, which is how stale rows age out daily.

Example:
  catalyst merge
  catalyst merge --batch out/catalyst_calendar.csv --batch out/news_catalysts.csv`,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVar(&mergeMaster, "master", "", "master calendar CSV path (default from config)")
	mergeCmd.Flags().StringArrayVar(&mergeBatches, "batch", nil, "batch CSV path (repeatable, default from config)")
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if mergeMaster == "" {
		mergeMaster = cfg.Paths.MasterFile
	}
	batchPaths := mergeBatches
	if len(batchPaths) == 0 {
		batchPaths = []string{cfg.Paths.CalendarFile, cfg.Paths.NewsFile}
	}

	master, err := store.LoadCalendar(mergeMaster)
	if err != nil {
		return fmt.Errorf("load master: %w", err)
	}

	var batches [][]model.CatalystRecord
	for _, path := range batchPaths {
		b, err := store.LoadCalendar(path)
		if err != nil {
			return fmt.Errorf("load batch %s: %w", path, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Batch %s: %d rows\n", path, len(b))
		}
		batches = append(batches, b)
	}

	p := pipeline.NewPipeline(cfg)
	merged := p.MergeCalendar(master, batches...)

	if err := store.SaveCalendar(mergeMaster, merged); err != nil {
		return fmt.Errorf("save master: %w", err)
	}

	fmt.Printf("Master calendar: %d rows -> %s\n", len(merged), mergeMaster)
	return nil
}
