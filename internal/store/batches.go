package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hmtrong/catalyst/internal/extract"
	"github.com/hmtrong/catalyst/internal/model"
)

// worklistRow is one SEC filing to scan.
type worklistRow struct {
	Ticker          string `csv:"ticker"`
	CIK             string `csv:"cik"`
	Form            string `csv:"form"`
	FilingDate      string `csv:"filingDate"`
	AccessionNumber string `csv:"accessionNumber"`
}

// LoadWorklist reads the filing worklist. Rows without a CIK or
// accession number cannot be fetched and are skipped here, once, at the
// boundary.
func LoadWorklist(path string) ([]extract.FilingRow, error) {
	rows, err := readCSV[worklistRow](path)
	if err != nil {
		return nil, err
	}
	out := make([]extract.FilingRow, 0, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.CIK) == "" || strings.TrimSpace(r.AccessionNumber) == "" {
			continue
		}
		out = append(out, extract.FilingRow{
			Ticker:          strings.ToUpper(strings.TrimSpace(r.Ticker)),
			CIK:             strings.TrimSpace(r.CIK),
			Form:            strings.TrimSpace(r.Form),
			AccessionNumber: strings.TrimSpace(r.AccessionNumber),
			FilingDate:      parseTime(r.FilingDate),
		})
	}
	return out, nil
}

// eventRow is one raw or consolidated anchor hit, kept for audit.
type eventRow struct {
	Ticker          string `csv:"ticker"`
	CIK             string `csv:"cik"`
	Form            string `csv:"form"`
	FilingDate      string `csv:"filingDate"`
	AccessionNumber string `csv:"accessionNumber"`
	DocType         string `csv:"doc_type"`
	EventType       string `csv:"event_type"`
	Confidence      string `csv:"confidence"`
	Snippet         string `csv:"snippet"`
	DocURL          string `csv:"doc_url"`
	Hits            string `csv:"hits"`
}

func toEventRow(h extract.EventHit, hits int) eventRow {
	row := eventRow{
		Ticker:          h.Row.Ticker,
		CIK:             h.Row.CIK,
		Form:            h.Row.Form,
		FilingDate:      model.FormatDate(h.Row.FilingDate),
		AccessionNumber: h.Row.AccessionNumber,
		DocType:         h.DocType,
		EventType:       string(h.Event),
		Confidence:      fmt.Sprintf("%.2f", h.Confidence),
		Snippet:         h.Snippet,
		DocURL:          h.DocURL,
	}
	if hits > 0 {
		row.Hits = strconv.Itoa(hits)
	}
	return row
}

// SaveEvents writes raw anchor hits (including diagnostic rows).
func SaveEvents(path string, hits []extract.EventHit) error {
	rows := make([]eventRow, 0, len(hits))
	for _, h := range hits {
		rows = append(rows, toEventRow(h, 0))
	}
	return writeCSV(path, rows)
}

// SaveConsolidated writes the per-filing consolidated event table.
func SaveConsolidated(path string, events []extract.ConsolidatedEvent) error {
	rows := make([]eventRow, 0, len(events))
	for _, ev := range events {
		rows = append(rows, toEventRow(ev.EventHit, ev.Hits))
	}
	return writeCSV(path, rows)
}

// mentionRow tolerates the column-name variants the mention feeds use.
// The first non-empty candidate wins; no runtime column sniffing.
type mentionRow struct {
	Ticker      string `csv:"ticker"`
	Symbol      string `csv:"symbol"`
	Title       string `csv:"title"`
	Headline    string `csv:"headline"`
	Summary     string `csv:"summary"`
	Snippet     string `csv:"snippet"`
	Description string `csv:"description"`
	URL         string `csv:"url"`
	Link        string `csv:"link"`
	SourceURL   string `csv:"source_url"`
	CreatedAt   string `csv:"created_at_utc"`
	Published   string `csv:"published"`
	PublishedAt string `csv:"published_at"`
	Date        string `csv:"date"`
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func (r mentionRow) toMention() extract.Mention {
	return extract.Mention{
		Ticker:    firstNonEmpty(r.Ticker, r.Symbol),
		Title:     firstNonEmpty(r.Title, r.Headline),
		Summary:   firstNonEmpty(r.Summary, r.Snippet, r.Description),
		URL:       firstNonEmpty(r.URL, r.Link, r.SourceURL),
		Published: parseTime(firstNonEmpty(r.CreatedAt, r.Published, r.PublishedAt, r.Date)),
	}
}

// LoadMentions reads mention feeds from one or more paths. Unreadable
// paths are skipped; only the union matters.
func LoadMentions(paths ...string) ([]extract.Mention, error) {
	var out []extract.Mention
	for _, p := range paths {
		rows, err := readCSV[mentionRow](p)
		if err != nil {
			continue
		}
		for _, r := range rows {
			m := r.toMention()
			if m.Title == "" && m.Summary == "" {
				continue
			}
			out = append(out, m)
		}
	}
	return out, nil
}

// SaveMentions writes ingested mentions for the downstream extractor.
func SaveMentions(path string, mentions []extract.Mention) error {
	rows := make([]mentionRow, 0, len(mentions))
	for _, m := range mentions {
		rows = append(rows, mentionRow{
			Ticker:    m.Ticker,
			Title:     m.Title,
			Summary:   m.Summary,
			URL:       m.URL,
			CreatedAt: formatTimestamp(m.Published),
		})
	}
	return writeCSV(path, rows)
}
