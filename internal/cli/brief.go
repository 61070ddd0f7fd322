package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hmtrong/catalyst/internal/llm"
	"github.com/hmtrong/catalyst/internal/report"
	"github.com/hmtrong/catalyst/internal/score"
	"github.com/hmtrong/catalyst/internal/store"
)

var (
	briefMaster   string
	briefOut      string
	briefCalendar string
	briefSince    time.Duration
	briefLLM      bool
)

// briefCmd represents the brief command
var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Render the daily brief and calendar markdown",
	Long: `Brief renders two markdown views of the master calendar: the full
calendar grouped by date, and the daily brief with 7/14/30 day
horizon buckets plus rows first seen since the previous run.

With --llm and OPENAI_API_KEY set, a short narrative of the top
watchlist entries is appended. The narrative is presentation only.

Example:
  catalyst brief
  catalyst brief --llm --since 24h`,
	RunE: runBrief,
}

func init() {
	rootCmd.AddCommand(briefCmd)

	briefCmd.Flags().StringVar(&briefMaster, "master", "", "master calendar CSV path (default from config)")
	briefCmd.Flags().StringVar(&briefOut, "out", "", "daily brief markdown path (default from config)")
	briefCmd.Flags().StringVar(&briefCalendar, "calendar-md", "", "calendar markdown path (optional)")
	briefCmd.Flags().DurationVar(&briefSince, "since", 24*time.Hour, "new-since window for the brief")
	briefCmd.Flags().BoolVar(&briefLLM, "llm", false, "append an LLM narrative of the top entries")
}

func runBrief(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if briefMaster == "" {
		briefMaster = cfg.Paths.MasterFile
	}
	if briefOut == "" {
		briefOut = cfg.Paths.BriefFile
	}

	records, err := store.LoadCalendar(briefMaster)
	if err != nil {
		return fmt.Errorf("load master: %w", err)
	}

	now := time.Now().UTC()
	body := report.Brief(records, now.Add(-briefSince), now)

	if briefLLM {
		cfg.LLM.Provider = "openai"
		summarizer, err := llm.NewSummarizer(llm.Config{
			Provider:  cfg.LLM.Provider,
			Model:     cfg.LLM.Model,
			APIKey:    cfg.LLM.APIKey,
			BaseURL:   cfg.LLM.BaseURL,
			Timeout:   cfg.LLM.Timeout,
			MaxTokens: cfg.LLM.MaxTokens,
		})
		if err != nil {
			return fmt.Errorf("init summarizer: %w", err)
		}
		entries := score.NewRanker().Rank(records)
		narrative, err := summarizer.Narrate(context.Background(), entries)
		if err != nil {
			// Narration is optional; the brief still ships without it.
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else if narrative != "" {
			body += "\n## Narrative\n\n" + narrative + "\n"
		}
	}

	if err := os.WriteFile(briefOut, []byte(body), 0644); err != nil {
		return fmt.Errorf("write brief: %w", err)
	}
	fmt.Printf("Brief -> %s\n", briefOut)

	if briefCalendar != "" {
		md := report.Calendar(records, now)
		if err := os.WriteFile(briefCalendar, []byte(md), 0644); err != nil {
			return fmt.Errorf("write calendar markdown: %w", err)
		}
		fmt.Printf("Calendar -> %s\n", briefCalendar)
	}
	return nil
}
