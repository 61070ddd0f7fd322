package store

import (
	"fmt"
	"strconv"

	"github.com/hmtrong/catalyst/internal/model"
	"github.com/hmtrong/catalyst/internal/score"
)

// rankedRow is the watchlist output. A single score column by design;
// adapters for older consumers translate at their own boundary.
type rankedRow struct {
	Ticker       string `csv:"ticker"`
	EventType    string `csv:"event_type"`
	CatalystDate string `csv:"catalyst_date"`
	DaysToEvent  string `csv:"days_to_event"`
	Approximate  string `csv:"approximate"`
	Confidence   string `csv:"confidence"`
	Score        string `csv:"score"`
	Bucket       string `csv:"bucket"`
	Why          string `csv:"why"`
	DocURL       string `csv:"doc_url"`
}

// SaveRanked writes the ranked watchlist.
func SaveRanked(path string, entries []score.Entry) error {
	rows := make([]rankedRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, rankedRow{
			Ticker:       e.Ticker,
			EventType:    string(e.Event),
			CatalystDate: model.FormatDate(e.CatalystDate),
			DaysToEvent:  strconv.Itoa(e.DaysToEvent),
			Approximate:  formatBool01(e.Approximate),
			Confidence:   fmt.Sprintf("%.2f", e.Confidence),
			Score:        fmt.Sprintf("%.2f", e.Score),
			Bucket:       e.Bucket,
			Why:          e.Why,
			DocURL:       e.DocURL,
		})
	}
	return writeCSV(path, rows)
}
