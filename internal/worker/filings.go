package worker

import (
	"context"

	"github.com/hmtrong/catalyst/internal/extract"
)

// FilingFetcher retrieves full submission text for a filing. The bool
// reports whether the text came from cache.
type FilingFetcher interface {
	FetchFiling(ctx context.Context, cik, accession string) (string, bool, error)
}

// FilingJob fetches and scans one worklist row.
type FilingJob struct {
	Row     extract.FilingRow
	DocURL  string
	Fetcher FilingFetcher
}

// FilingResult is the outcome of one filing scan. Raw text is kept so
// the calendar extractor can pull dates from hit windows without a
// second fetch. Err marks a download failure; Hits may still carry a
// BAD_FETCH diagnostic when the body parsed empty.
type FilingResult struct {
	Row       extract.FilingRow
	DocURL    string
	Raw       string
	Hits      []extract.EventHit
	FromCache bool
	Err       error
}

// GetError returns the download error, if any.
func (r *FilingResult) GetError() error { return r.Err }

// Execute fetches the filing and scans it for anchor hits.
func (j *FilingJob) Execute(ctx context.Context) Result {
	raw, cached, err := j.Fetcher.FetchFiling(ctx, j.Row.CIK, j.Row.AccessionNumber)
	if err != nil {
		return &FilingResult{Row: j.Row, DocURL: j.DocURL, Err: err}
	}
	return &FilingResult{
		Row:       j.Row,
		DocURL:    j.DocURL,
		Raw:       raw,
		Hits:      extract.ScanFiling(j.Row, raw, j.DocURL),
		FromCache: cached,
	}
}

// FilingScanner runs worklist rows through the pool.
type FilingScanner struct {
	Fetcher     FilingFetcher
	URL         func(cik, accession string) string
	Concurrency int
}

// Scan processes every row concurrently and returns results in
// completion order. Callers sort during consolidation, so input order
// is not preserved.
func (s *FilingScanner) Scan(ctx context.Context, rows []extract.FilingRow) []*FilingResult {
	if len(rows) == 0 {
		return nil
	}

	pool := NewPool(s.Concurrency)
	pool.Start()

	// Submit from a goroutine so Wait drains results while the
	// worklist is still being queued; submitting everything first
	// would stall on the pool's bounded buffers.
	go func() {
		defer pool.Close()
		for _, row := range rows {
			pool.Submit(&FilingJob{
				Row:     row,
				DocURL:  s.URL(row.CIK, row.AccessionNumber),
				Fetcher: s.Fetcher,
			})
		}
	}()

	results := pool.Wait()
	out := make([]*FilingResult, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*FilingResult))
	}
	return out
}
