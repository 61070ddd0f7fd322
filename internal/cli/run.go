package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hmtrong/catalyst/internal/alert"
	"github.com/hmtrong/catalyst/internal/ingest"
	"github.com/hmtrong/catalyst/internal/model"
	"github.com/hmtrong/catalyst/internal/pipeline"
	"github.com/hmtrong/catalyst/internal/report"
	"github.com/hmtrong/catalyst/internal/score"
	"github.com/hmtrong/catalyst/internal/store"
	"github.com/hmtrong/catalyst/internal/universe"
)

var (
	runTimeout  time.Duration
	runSkipRSS  bool
	runSkipSec  bool
	runNoAlerts bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: ingest, scan, merge, rank, brief",
	Long: `Run chains every stage: poll feeds, scan worklist filings, extract
news catalysts, merge both batches into the master calendar, rank the
watchlist, evaluate alerts, and render the daily brief.

Stages whose inputs are missing are skipped with a note rather than
failing the run.

Example:
  catalyst run
  catalyst run --skip-rss`,
	RunE: runAll,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().DurationVar(&runTimeout, "timeout", time.Hour, "overall run timeout")
	runCmd.Flags().BoolVar(&runSkipRSS, "skip-rss", false, "skip feed polling")
	runCmd.Flags().BoolVar(&runSkipSec, "skip-sec", false, "skip filing scans")
	runCmd.Flags().BoolVar(&runNoAlerts, "no-alerts", false, "skip alert evaluation")
}

func runAll(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	now := time.Now().UTC()
	p := pipeline.NewPipeline(cfg)

	// 1. Feeds -> mentions
	if !runSkipRSS && len(cfg.Feeds) > 0 {
		poller := ingest.NewPoller(cfg.HTTP.UserAgent, verbose)
		mentions := poller.Poll(ctx, cfg.Feeds)
		if err := store.SaveMentions(cfg.Paths.MentionsFile, mentions); err != nil {
			return fmt.Errorf("save mentions: %w", err)
		}
		fmt.Printf("Mentions: %d\n", len(mentions))
	}

	// 2. Worklist -> filing catalysts
	var filingBatch []model.CatalystRecord
	if !runSkipSec {
		rows, err := store.LoadWorklist(cfg.Paths.WorklistFile)
		if err != nil {
			return fmt.Errorf("load worklist: %w", err)
		}
		if len(rows) == 0 {
			fmt.Fprintln(os.Stderr, "No worklist rows, skipping filing scans")
		} else {
			result := p.ScanFilings(ctx, rows, now)
			if err := store.SaveConsolidated(cfg.Paths.EventsFile, result.Consolidated); err != nil {
				return fmt.Errorf("save events: %w", err)
			}
			if err := store.SaveCalendar(cfg.Paths.CalendarFile, result.Records); err != nil {
				return fmt.Errorf("save calendar batch: %w", err)
			}
			filingBatch = result.Records
			fmt.Printf("Filings: %d scanned, %d events, %d dated\n",
				len(rows), len(result.Consolidated), len(result.Records))
		}
	}

	// 3. Mentions -> news catalysts
	var newsBatch []model.CatalystRecord
	mentions, err := store.LoadMentions(cfg.Paths.MentionsFile)
	if err != nil {
		return fmt.Errorf("load mentions: %w", err)
	}
	if len(mentions) > 0 {
		uni, err := universe.Load(cfg.Paths.UniverseFile)
		if err != nil {
			return fmt.Errorf("load universe: %w", err)
		}
		newsBatch = p.ScanMentions(mentions, uni, now)
		if err := store.SaveCalendar(cfg.Paths.NewsFile, newsBatch); err != nil {
			return fmt.Errorf("save news catalysts: %w", err)
		}
		fmt.Printf("News: %d mentions, %d dated\n", len(mentions), len(newsBatch))
	}

	// 4. Merge into the master calendar
	master, err := store.LoadCalendar(cfg.Paths.MasterFile)
	if err != nil {
		return fmt.Errorf("load master: %w", err)
	}
	merged := p.MergeCalendar(master, filingBatch, newsBatch)
	if err := store.SaveCalendar(cfg.Paths.MasterFile, merged); err != nil {
		return fmt.Errorf("save master: %w", err)
	}
	fmt.Printf("Master calendar: %d rows\n", len(merged))

	// 5. Rank
	entries := score.NewRanker().Rank(merged)
	if err := store.SaveRanked(cfg.Paths.RankedFile, entries); err != nil {
		return fmt.Errorf("save watchlist: %w", err)
	}
	fmt.Printf("Watchlist: %d tickers\n", len(entries))

	// 6. Alerts
	if !runNoAlerts {
		state, err := alert.LoadState(cfg.Paths.StateFile)
		if err != nil {
			return fmt.Errorf("load alert state: %w", err)
		}
		alerts, next := alert.Evaluate(state, entries, now)
		if err := alert.SaveState(cfg.Paths.StateFile, next); err != nil {
			return fmt.Errorf("save alert state: %w", err)
		}
		fmt.Printf("Alerts: %d\n", len(alerts))
	}

	// 7. Brief
	body := report.Brief(merged, now.Add(-24*time.Hour), now)
	if err := os.WriteFile(cfg.Paths.BriefFile, []byte(body), 0644); err != nil {
		return fmt.Errorf("write brief: %w", err)
	}
	fmt.Printf("Brief -> %s\n", cfg.Paths.BriefFile)

	return nil
}
