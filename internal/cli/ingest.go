package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hmtrong/catalyst/internal/ingest"
	"github.com/hmtrong/catalyst/internal/store"
)

var (
	ingestOut     string
	ingestFeeds   []string
	ingestMaxAge  time.Duration
	ingestTimeout time.Duration
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Poll configured RSS feeds and write mention rows",
	Long: `Ingest polls press-release and news RSS feeds, filters promotional
items, and writes mention rows for the news extractor. Feeds come from
config unless given with --feed.

Polling respects robots.txt and rate-limits per publisher domain.

Example:
  catalyst ingest
  catalyst ingest --feed https://www.example.com/press.rss --out out/mentions.csv`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestOut, "out", "", "mentions CSV path (default from config)")
	ingestCmd.Flags().StringArrayVar(&ingestFeeds, "feed", nil, "feed URL (repeatable, overrides config)")
	ingestCmd.Flags().DurationVar(&ingestMaxAge, "max-age", 72*time.Hour, "drop feed items older than this")
	ingestCmd.Flags().DurationVar(&ingestTimeout, "timeout", 5*time.Minute, "overall poll timeout")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if ingestOut == "" {
		ingestOut = cfg.Paths.MentionsFile
	}
	feeds := ingestFeeds
	if len(feeds) == 0 {
		feeds = cfg.Feeds
	}
	if len(feeds) == 0 {
		return fmt.Errorf("no feeds configured: set feeds in config or pass --feed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Polling %d feeds\n", len(feeds))
	}

	poller := ingest.NewPoller(cfg.HTTP.UserAgent, verbose)
	poller.MaxItemAge = ingestMaxAge
	mentions := poller.Poll(ctx, feeds)

	if err := store.SaveMentions(ingestOut, mentions); err != nil {
		return fmt.Errorf("save mentions: %w", err)
	}

	fmt.Printf("Mentions: %d -> %s\n", len(mentions), ingestOut)
	return nil
}
