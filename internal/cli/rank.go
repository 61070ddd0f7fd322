package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hmtrong/catalyst/internal/alert"
	"github.com/hmtrong/catalyst/internal/score"
	"github.com/hmtrong/catalyst/internal/store"
)

var (
	rankMaster string
	rankOut    string
	rankAlerts bool
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the master calendar into a watchlist",
	Long: `Rank scores every calendar row on catalyst proximity, confidence and
filing freshness, keeps the best row per ticker, and writes the
watchlist sorted by score. With --alerts it also diffs the watchlist
against the previous run and appends breaking events, new entries and
score jumps to the alerts file.

Example:
  catalyst rank
  catalyst rank --alerts`,
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVar(&rankMaster, "master", "", "master calendar CSV path (default from config)")
	rankCmd.Flags().StringVar(&rankOut, "out", "", "watchlist CSV path (default from config)")
	rankCmd.Flags().BoolVar(&rankAlerts, "alerts", false, "emit alerts for watchlist changes")
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if rankMaster == "" {
		rankMaster = cfg.Paths.MasterFile
	}
	if rankOut == "" {
		rankOut = cfg.Paths.RankedFile
	}

	records, err := store.LoadCalendar(rankMaster)
	if err != nil {
		return fmt.Errorf("load master: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "Master calendar is empty, nothing to rank")
		return nil
	}

	entries := score.NewRanker().Rank(records)
	if err := store.SaveRanked(rankOut, entries); err != nil {
		return fmt.Errorf("save watchlist: %w", err)
	}
	fmt.Printf("Watchlist: %d tickers -> %s\n", len(entries), rankOut)

	if !rankAlerts {
		return nil
	}

	now := time.Now().UTC()
	state, err := alert.LoadState(cfg.Paths.StateFile)
	if err != nil {
		return fmt.Errorf("load alert state: %w", err)
	}
	alerts, next := alert.Evaluate(state, entries, now)
	if err := alert.SaveState(cfg.Paths.StateFile, next); err != nil {
		return fmt.Errorf("save alert state: %w", err)
	}
	if len(alerts) == 0 {
		fmt.Println("Alerts: none")
		return nil
	}

	f, err := os.OpenFile(cfg.Paths.AlertsFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open alerts file: %w", err)
	}
	defer f.Close()
	for _, a := range alerts {
		if _, err := fmt.Fprintf(f, "- %s [%s] %s %s on %s (score %.1f): %s\n",
			a.At.Format("2006-01-02 15:04"), a.Reason, a.Ticker, a.Event, a.CatalystDate, a.Score, a.Why); err != nil {
			return fmt.Errorf("write alerts file: %w", err)
		}
	}
	fmt.Printf("Alerts: %d -> %s\n", len(alerts), cfg.Paths.AlertsFile)
	return nil
}
