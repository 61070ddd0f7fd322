package extract

import (
	"sort"
	"time"

	"github.com/hmtrong/catalyst/internal/model"
)

// FilingRow is one worklist entry: a filing to scan for a given ticker.
type FilingRow struct {
	Ticker          string
	CIK             string
	Form            string
	AccessionNumber string
	FilingDate      time.Time
}

// EventHit is one anchor match inside a filing document.
type EventHit struct {
	Row        FilingRow
	DocType    string
	Event      model.EventType
	Confidence float64
	Snippet    string
	DocURL     string
}

// baseConfidence encodes pattern strength per event type; the most
// unambiguous phrases ("complete response letter") score highest.
var baseConfidence = map[model.EventType]float64{
	model.EventCRL:           0.90,
	model.EventClinicalHold:  0.85,
	model.EventPDUFA:         0.80,
	model.EventFilingAccept:  0.75,
	model.EventSubmission:    0.70,
	model.EventResubmission:  0.70,
	model.EventAdCom:         0.70,
	model.EventTopline:       0.65,
}

const (
	exhibitBonus  = 0.05
	maxConfidence = 0.99
	snippetPad    = 220
	maxScanDocs   = 8
)

// ScanFiling finds every anchor hit inside the top-ranked documents of
// an EDGAR complete submission. A fetched page without <DOCUMENT>
// blocks yields one diagnostic BAD_FETCH hit so the miss is visible in
// output rather than silently dropped.
func ScanFiling(row FilingRow, raw, docURL string) []EventHit {
	if !HasDocumentBlocks(raw) {
		return []EventHit{{
			Row:     row,
			Event:   model.EventBadFetch,
			Snippet: Truncate(Normalize(StripMarkup(Truncate(raw, 600))), 180),
			DocURL:  docURL,
		}}
	}
	docs := SelectDocuments(ParseSubmission(raw), maxScanDocs)
	var hits []EventHit
	for _, doc := range docs {
		for _, rule := range Rules() {
			for _, loc := range rule.Pattern.FindAllStringIndex(doc.Text, -1) {
				conf := baseConfidence[rule.Event]
				if docRank(doc.Type) >= 100 {
					conf += exhibitBonus
				}
				if conf > maxConfidence {
					conf = maxConfidence
				}
				hits = append(hits, EventHit{
					Row:        row,
					DocType:    doc.Type,
					Event:      rule.Event,
					Confidence: conf,
					Snippet:    Truncate(Snippet(doc.Text, loc[0], loc[1], snippetPad), 500),
					DocURL:     docURL,
				})
			}
		}
	}
	return hits
}

// ConsolidatedEvent is one (filing, document, event type) group of raw
// hits: best confidence, richest snippet, hit count.
type ConsolidatedEvent struct {
	EventHit
	Hits int
}

type consolidationKey struct {
	ticker, cik, form, accession, docType, docURL string
	date                                          string
	event                                         model.EventType
}

// Consolidate reduces raw anchor hits to one row per filing/document/
// event-type group, keeping the highest confidence and its snippet.
// Diagnostic rows (BAD_FETCH, DOWNLOAD_ERROR) are excluded. Output is
// sorted newest filing first, then confidence descending.
func Consolidate(hits []EventHit) []ConsolidatedEvent {
	groups := make(map[consolidationKey]*ConsolidatedEvent)
	var order []consolidationKey
	for _, h := range hits {
		if h.Event.Diagnostic() {
			continue
		}
		k := consolidationKey{
			ticker:    h.Row.Ticker,
			cik:       h.Row.CIK,
			form:      h.Row.Form,
			date:      model.FormatDate(h.Row.FilingDate),
			accession: h.Row.AccessionNumber,
			docType:   h.DocType,
			docURL:    h.DocURL,
			event:     h.Event,
		}
		g, ok := groups[k]
		if !ok {
			groups[k] = &ConsolidatedEvent{EventHit: h, Hits: 1}
			order = append(order, k)
			continue
		}
		g.Hits++
		if h.Confidence > g.Confidence {
			g.Confidence = h.Confidence
			g.Snippet = h.Snippet
		}
	}
	out := make([]ConsolidatedEvent, 0, len(order))
	for _, k := range order {
		out = append(out, *groups[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Row.FilingDate.Equal(out[j].Row.FilingDate) {
			return out[i].Row.FilingDate.After(out[j].Row.FilingDate)
		}
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

// CalendarExtractor turns consolidated filing events into catalyst
// records by searching anchor-local text for a future date.
type CalendarExtractor struct {
	HorizonDays  int
	WindowPad    int
	MaxWindows   int
	MaxDocs      int
	ContextLimit int
}

// NewCalendarExtractor builds an extractor from config.
func NewCalendarExtractor(cfg model.ExtractConfig) *CalendarExtractor {
	return &CalendarExtractor{
		HorizonDays:  cfg.HorizonDays,
		WindowPad:    cfg.WindowPad,
		MaxWindows:   cfg.MaxWindows,
		MaxDocs:      cfg.MaxDocs,
		ContextLimit: cfg.ContextLimit,
	}
}

// Extract resolves the best forward-looking date for one consolidated
// event, scanning only bounded windows around the event's anchor. The
// filing date is the reference for relative and year-less phrases.
// False means no qualifying future date was found.
func (e *CalendarExtractor) Extract(ev ConsolidatedEvent, raw string, today time.Time) (model.CatalystRecord, bool) {
	if !ev.Event.DateRelevant() {
		return model.CatalystRecord{}, false
	}
	docs := SelectDocuments(ParseSubmission(raw), e.MaxDocs)
	if len(docs) == 0 {
		return model.CatalystRecord{}, false
	}

	var exactAll []time.Time
	var approxAll []Candidate
	bestContext := ""
	bestSrc := ""

	for _, doc := range docs {
		for _, region := range Windows(doc.Text, ev.Event, e.WindowPad, e.MaxWindows) {
			exact, approx := ExtractDates(region, ev.Row.FilingDate)
			exactAll = append(exactAll, exact...)
			approxAll = append(approxAll, approx...)
			if bestContext == "" && (len(exact) > 0 || len(approx) > 0) {
				bestContext = Truncate(region, e.ContextLimit)
				bestSrc = doc.Type
			}
		}
	}

	sel, ok := SelectBestDate(exactAll, approxAll, today, e.HorizonDays)
	if !ok {
		return model.CatalystRecord{}, false
	}
	if bestSrc == "" {
		bestSrc = "UNKNOWN"
	}
	rec := model.CatalystRecord{
		Ticker:        ev.Row.Ticker,
		Event:         ev.Event,
		CatalystDate:  sel.Date,
		DaysToEvent:   model.DaysBetween(today, sel.Date),
		Approximate:   sel.Approximate,
		ApproxToken:   sel.Token,
		WindowStart:   sel.WindowStart,
		WindowEnd:     sel.WindowEnd,
		Confidence:    ev.Confidence,
		DateSource:    "filing_txt:" + bestSrc,
		ReferenceDate: ev.Row.FilingDate,
		DocURL:        ev.DocURL,
		Context:       Truncate(Normalize(bestContext), e.ContextLimit),
	}
	rec.Normalize()
	return rec, true
}
