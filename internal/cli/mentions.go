package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hmtrong/catalyst/internal/pipeline"
	"github.com/hmtrong/catalyst/internal/store"
	"github.com/hmtrong/catalyst/internal/universe"
)

var (
	mentionsIn  []string
	mentionsOut string
)

// mentionsCmd represents the mentions command
var mentionsCmd = &cobra.Command{
	Use:   "mentions",
	Short: "Extract catalyst records from news mention rows",
	Long: `Mentions scans news rows for catalyst anchor language and dates.
Tickers are taken from an explicit column when present, otherwise
detected against the universe file. Anchored items without a usable
date still produce a low-confidence undated row so they stay visible.

Example:
  catalyst mentions
  catalyst mentions --in out/mentions.csv --out out/news_catalysts.csv`,
	RunE: runMentions,
}

func init() {
	rootCmd.AddCommand(mentionsCmd)

	mentionsCmd.Flags().StringArrayVar(&mentionsIn, "in", nil, "mentions CSV path (repeatable, default from config)")
	mentionsCmd.Flags().StringVar(&mentionsOut, "out", "", "news catalysts CSV path (default from config)")
}

func runMentions(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	in := mentionsIn
	if len(in) == 0 {
		in = []string{cfg.Paths.MentionsFile}
	}
	if mentionsOut == "" {
		mentionsOut = cfg.Paths.NewsFile
	}

	mentions, err := store.LoadMentions(in...)
	if err != nil {
		return fmt.Errorf("load mentions: %w", err)
	}
	if len(mentions) == 0 {
		fmt.Fprintln(os.Stderr, "No mention rows found, nothing to extract")
		return nil
	}

	uni, err := universe.Load(cfg.Paths.UniverseFile)
	if err != nil {
		return fmt.Errorf("load universe: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Universe: %d tickers\n", uni.Len())
		fmt.Fprintf(os.Stderr, "Scanning %d mentions\n", len(mentions))
	}

	p := pipeline.NewPipeline(cfg)
	records := p.ScanMentions(mentions, uni, time.Now().UTC())

	if err := store.SaveCalendar(mentionsOut, records); err != nil {
		return fmt.Errorf("save news catalysts: %w", err)
	}

	fmt.Printf("News catalysts: %d -> %s\n", len(records), mentionsOut)
	return nil
}
