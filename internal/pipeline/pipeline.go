// Package pipeline orchestrates the catalyst stages: filing scans,
// mention scans, and the master-calendar merge. Commands call into
// here so the stages stay testable without cobra.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hmtrong/catalyst/internal/cache"
	"github.com/hmtrong/catalyst/internal/calendar"
	"github.com/hmtrong/catalyst/internal/extract"
	"github.com/hmtrong/catalyst/internal/fetch"
	"github.com/hmtrong/catalyst/internal/model"
	"github.com/hmtrong/catalyst/internal/worker"
)

// Pipeline wires the fetcher, scanner and extractor for a run.
type Pipeline struct {
	edgar     *fetch.EdgarClient
	extractor *extract.CalendarExtractor
	config    *model.Config
}

// NewPipeline creates a pipeline from config.
func NewPipeline(cfg *model.Config) *Pipeline {
	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}
	return &Pipeline{
		edgar:     fetch.NewEdgarClient(cfg.HTTP.UserAgent, cfg.HTTP.RequestsPerSecond, c, cfg.Output.Verbose),
		extractor: extract.NewCalendarExtractor(cfg.Extract),
		config:    cfg,
	}
}

// FilingsResult is the outcome of one filings batch.
type FilingsResult struct {
	Hits         []extract.EventHit
	Consolidated []extract.ConsolidatedEvent
	Records      []model.CatalystRecord
	Fetched      int
	Cached       int
	Failed       int
}

// ScanFilings fetches and scans every worklist row, consolidates the
// anchor hits and extracts dated catalyst records. Download failures
// become DOWNLOAD_ERROR hits so the events output shows the gap.
func (p *Pipeline) ScanFilings(ctx context.Context, rows []extract.FilingRow, today time.Time) *FilingsResult {
	scanner := &worker.FilingScanner{
		Fetcher:     p.edgar,
		URL:         fetch.FilingURL,
		Concurrency: p.config.Concurrency.Workers,
	}
	results := scanner.Scan(ctx, rows)

	out := &FilingsResult{}
	rawByAccession := map[string]string{}
	for _, r := range results {
		if r.Err != nil {
			out.Failed++
			if p.config.Output.Verbose {
				fmt.Fprintf(os.Stderr, "Warning: %s %s: %v\n", r.Row.Ticker, r.Row.AccessionNumber, r.Err)
			}
			out.Hits = append(out.Hits, extract.EventHit{
				Row:     r.Row,
				Event:   model.EventDownloadError,
				Snippet: r.Err.Error(),
				DocURL:  r.DocURL,
			})
			continue
		}
		if r.FromCache {
			out.Cached++
		} else {
			out.Fetched++
		}
		rawByAccession[r.Row.AccessionNumber] = r.Raw
		out.Hits = append(out.Hits, r.Hits...)
	}

	out.Consolidated = extract.Consolidate(out.Hits)
	for _, ev := range out.Consolidated {
		raw, ok := rawByAccession[ev.Row.AccessionNumber]
		if !ok {
			continue
		}
		if rec, ok := p.extractor.Extract(ev, raw, today); ok {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}

// ScanMentions runs the news extractor over mention rows.
func (p *Pipeline) ScanMentions(mentions []extract.Mention, universe extract.TickerSet, today time.Time) []model.CatalystRecord {
	ex := &extract.MentionExtractor{
		Universe:     universe,
		HorizonDays:  p.config.Extract.HorizonDays,
		ContextLimit: p.config.Extract.ContextLimit,
	}
	var out []model.CatalystRecord
	for _, m := range mentions {
		out = append(out, ex.Extract(m, today)...)
	}
	return out
}

// MergeCalendar folds fresh batches into the master calendar.
func (p *Pipeline) MergeCalendar(master []model.CatalystRecord, batches ...[]model.CatalystRecord) []model.CatalystRecord {
	return calendar.Merge(master, batches, calendar.MergeOptions{})
}
