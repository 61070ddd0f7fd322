package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hmtrong/catalyst/internal/pipeline"
	"github.com/hmtrong/catalyst/internal/store"
)

var (
	filingsWorklist string
	filingsEvents   string
	filingsOut      string
	filingsTimeout  time.Duration
)

// filingsCmd represents the filings command
var filingsCmd = &cobra.Command{
	Use:   "filings",
	Short: "Scan SEC filings from a worklist and extract catalyst events",
	Long: `Filings fetches each EDGAR full-text submission in the worklist,
scans its top-ranked documents for catalyst anchor language, and
resolves a forward-looking date for each consolidated event.

The worklist CSV needs ticker, cik, form, accessionNumber and
filingDate columns.

Example:
  catalyst filings --worklist out/sec_worklist.csv
  catalyst filings --worklist out/sec_worklist.csv --out out/catalyst_calendar.csv`,
	RunE: runFilings,
}

func init() {
	rootCmd.AddCommand(filingsCmd)

	filingsCmd.Flags().StringVar(&filingsWorklist, "worklist", "", "worklist CSV path (default from config)")
	filingsCmd.Flags().StringVar(&filingsEvents, "events", "", "consolidated events CSV path (default from config)")
	filingsCmd.Flags().StringVar(&filingsOut, "out", "", "calendar batch CSV path (default from config)")
	filingsCmd.Flags().DurationVar(&filingsTimeout, "timeout", 30*time.Minute, "overall batch timeout")
}

func runFilings(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if filingsWorklist == "" {
		filingsWorklist = cfg.Paths.WorklistFile
	}
	if filingsEvents == "" {
		filingsEvents = cfg.Paths.EventsFile
	}
	if filingsOut == "" {
		filingsOut = cfg.Paths.CalendarFile
	}

	ctx, cancel := context.WithTimeout(context.Background(), filingsTimeout)
	defer cancel()

	rows, err := store.LoadWorklist(filingsWorklist)
	if err != nil {
		return fmt.Errorf("load worklist: %w", err)
	}
	if len(rows) == 0 {
		fmt.Fprintf(os.Stderr, "Worklist %s is empty, nothing to scan\n", filingsWorklist)
		return nil
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning %d filings with %d workers\n", len(rows), cfg.Concurrency.Workers)
	}

	p := pipeline.NewPipeline(cfg)
	result := p.ScanFilings(ctx, rows, time.Now().UTC())

	if err := store.SaveConsolidated(filingsEvents, result.Consolidated); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	if err := store.SaveCalendar(filingsOut, result.Records); err != nil {
		return fmt.Errorf("save calendar batch: %w", err)
	}

	fmt.Printf("Scanned %d filings (%d fetched, %d cached, %d failed)\n",
		len(rows), result.Fetched, result.Cached, result.Failed)
	fmt.Printf("Events: %d consolidated -> %s\n", len(result.Consolidated), filingsEvents)
	fmt.Printf("Calendar rows: %d -> %s\n", len(result.Records), filingsOut)

	return nil
}
