// Package ingest polls press-release and news RSS feeds and turns
// items into mention rows for the news extractor. Polling respects
// robots.txt and skips promotional items before they reach scanning.
package ingest

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/hmtrong/catalyst/internal/extract"
	"github.com/hmtrong/catalyst/internal/worker"
)

// adWordsRe drops sponsored and promotional items. These dominate
// low-quality biotech feeds and never carry usable catalyst language.
var adWordsRe = regexp.MustCompile(`(?i)\b(sponsored|advertisement|webinar|whitepaper|subscribe now|free trial)\b`)

// exchangeTickerRe pulls explicit exchange-qualified tickers out of
// press-release headlines, e.g. "(NASDAQ: ABCD)".
var exchangeTickerRe = regexp.MustCompile(`(NASDAQ|NYSE|AMEX)\s*[:\-]?\s*([A-Z]{1,5})\b`)

// Poller fetches configured feeds.
type Poller struct {
	parser  *gofeed.Parser
	robots  *robotsChecker
	limiter *worker.Limiter
	verbose bool

	// MaxItemAge drops stale entries; feeds often replay weeks of
	// history on every poll.
	MaxItemAge time.Duration
}

// NewPoller creates a feed poller with the given user agent.
func NewPoller(userAgent string, verbose bool) *Poller {
	p := gofeed.NewParser()
	p.UserAgent = userAgent
	return &Poller{
		parser:     p,
		robots:     newRobotsChecker(userAgent, 15*time.Second),
		limiter:    worker.NewLimiter(1, 2),
		verbose:    verbose,
		MaxItemAge: 72 * time.Hour,
	}
}

// Poll fetches every feed URL and returns deduplicated mentions,
// newest first within each feed. Per-feed failures are logged and
// skipped so one dead feed doesn't starve the rest.
func (p *Poller) Poll(ctx context.Context, feedURLs []string) []extract.Mention {
	seen := map[string]bool{}
	var out []extract.Mention

	for _, feedURL := range feedURLs {
		ok, delay := p.robots.allowed(ctx, feedURL)
		if !ok {
			if p.verbose {
				fmt.Fprintf(os.Stderr, "Skipping %s: disallowed by robots.txt\n", feedURL)
			}
			continue
		}
		if err := p.limiter.WaitWithDelay(ctx, feedURL, delay); err != nil {
			return out
		}

		feed, err := p.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			if p.verbose {
				fmt.Fprintf(os.Stderr, "Warning: feed %s: %v\n", feedURL, err)
			}
			continue
		}

		for _, item := range feed.Items {
			m, ok := p.mention(item)
			if !ok {
				continue
			}
			key := linkHash(m.URL, m.Title)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, m)
		}
	}
	return out
}

// mention converts one feed item, filtering ads and stale entries.
func (p *Poller) mention(item *gofeed.Item) (extract.Mention, bool) {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		return extract.Mention{}, false
	}
	summary := strings.TrimSpace(item.Description)
	if summary == "" && item.Content != "" {
		summary = strings.TrimSpace(item.Content)
	}
	if adWordsRe.MatchString(title) || adWordsRe.MatchString(summary) {
		return extract.Mention{}, false
	}

	var published time.Time
	if item.PublishedParsed != nil {
		published = item.PublishedParsed.UTC()
	} else if item.UpdatedParsed != nil {
		published = item.UpdatedParsed.UTC()
	}
	if p.MaxItemAge > 0 && !published.IsZero() && time.Since(published) > p.MaxItemAge {
		return extract.Mention{}, false
	}

	return extract.Mention{
		Ticker:    exchangeTicker(title + " " + summary),
		Title:     title,
		Summary:   summary,
		URL:       strings.TrimSpace(item.Link),
		Published: published,
	}, true
}

// exchangeTicker returns the first exchange-qualified ticker, if any.
// Free-text ticker detection happens later against the universe; this
// only captures what the publisher stated outright.
func exchangeTicker(text string) string {
	m := exchangeTickerRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[2]
}

func linkHash(link, title string) string {
	h := sha1.Sum([]byte(strings.ToLower(link) + "|" + strings.ToLower(title)))
	return hex.EncodeToString(h[:])
}
