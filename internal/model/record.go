package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

// DaysUnknown is the days_to_event sentinel for records whose catalyst
// date could not be parsed. It sorts such records after every dated one.
const DaysUnknown = 9999

// EventType categorizes the regulatory/clinical catalyst an anchor refers to
type EventType string

const (
	EventPDUFA         EventType = "PDUFA"                // FDA action date
	EventAdCom         EventType = "ADCOM"                // Advisory committee / ODAC / VRBPAC
	EventCRL           EventType = "CRL"                  // Complete response letter
	EventClinicalHold  EventType = "CLINICAL_HOLD"        // Full or partial clinical hold
	EventTopline       EventType = "TOPLINE"              // Data readout / primary endpoint
	EventSubmission    EventType = "NDA_BLA_SUBMISSION"   // NDA/BLA submitted
	EventResubmission  EventType = "NDA_BLA_RESUBMISSION" // NDA/BLA resubmitted after CRL
	EventFilingAccept  EventType = "FILING_ACCEPTANCE"    // Accepted for filing
	EventDownloadError EventType = "DOWNLOAD_ERROR"       // Diagnostic row: filing text unavailable
	EventBadFetch      EventType = "BAD_FETCH"            // Diagnostic row: fetched page had no document blocks
)

// eventPriority ranks event types for tie-breaking when a text region
// matches more than one anchor. Higher wins; equal priorities are broken
// by anchor rule order, so classification is total and deterministic.
var eventPriority = map[EventType]int{
	EventPDUFA:        5,
	EventAdCom:        4,
	EventCRL:          4,
	EventClinicalHold: 4,
	EventResubmission: 4,
	EventSubmission:   3,
	EventTopline:      2,
	EventFilingAccept: 2,
}

// Priority returns the classification rank of the event type.
// Unknown and diagnostic types rank lowest.
func (e EventType) Priority() int {
	if p, ok := eventPriority[e]; ok {
		return p
	}
	return 1
}

// Diagnostic reports whether the event type marks a fetch problem rather
// than an actual catalyst.
func (e EventType) Diagnostic() bool {
	return e == EventDownloadError || e == EventBadFetch
}

// dateRelevant lists event types whose filings usually contain a
// calendar-able future date. The others are point-in-time news.
var dateRelevant = map[EventType]bool{
	EventPDUFA:        true,
	EventAdCom:        true,
	EventFilingAccept: true,
	EventSubmission:   true,
	EventTopline:      true,
}

// DateRelevant reports whether the event type is worth a date search.
func (e EventType) DateRelevant() bool {
	return dateRelevant[e]
}

// CatalystRecord is the canonical unit exchanged between extraction and
// merge: one predicted future event for one ticker, with provenance.
type CatalystRecord struct {
	Ticker        string    `json:"ticker"`
	Event         EventType `json:"event_type"`
	CatalystDate  time.Time `json:"catalyst_date"`
	DaysToEvent   int       `json:"days_to_event"`
	Approximate   bool      `json:"approximate"`
	ApproxToken   string    `json:"approx_token,omitempty"`   // e.g. "Q2 2026", "within 30 days"
	WindowStart   time.Time `json:"window_start"`             // inclusive bounds of the uncertainty window
	WindowEnd     time.Time `json:"window_end"`               // equal to CatalystDate when exact
	Confidence    float64   `json:"confidence"`               // extraction certainty in [0,1]
	DateSource    string    `json:"date_source"`              // e.g. "filing_txt:EX-99.1", "mentions"
	ReferenceDate time.Time `json:"reference_date"`           // filing or publication date of the source document
	DocURL        string    `json:"doc_url,omitempty"`
	Context       string    `json:"context,omitempty"`        // bounded excerpt supporting the classification
	FirstSeen     time.Time `json:"first_seen_utc,omitempty"` // set once, preserved across merges
	LastSeen      time.Time `json:"last_seen_utc,omitempty"`  // refreshed every run the key reappears
}

// Key identifies "the same calendar entry" across runs and sources.
// Records differing only in provenance fields share a key and are
// reduced to one master row.
type Key struct {
	Ticker      string
	Event       EventType
	Date        string // DateLayout, empty when unparsable
	Approximate bool
	Token       string
}

// Key returns the identity key of the record.
func (r *CatalystRecord) Key() Key {
	return Key{
		Ticker:      r.Ticker,
		Event:       r.Event,
		Date:        FormatDate(r.CatalystDate),
		Approximate: r.Approximate,
		Token:       strings.ToLower(r.ApproxToken),
	}
}

// Normalize canonicalizes in-place: uppercase trimmed ticker, trimmed
// token, windows defaulted to the catalyst date, confidence clamped to
// [0,1], and the token cleared for exact records.
func (r *CatalystRecord) Normalize() {
	r.Ticker = strings.ToUpper(strings.TrimSpace(r.Ticker))
	r.Event = EventType(strings.TrimSpace(string(r.Event)))
	r.ApproxToken = strings.TrimSpace(r.ApproxToken)
	if !r.Approximate {
		r.ApproxToken = ""
	}
	if r.WindowStart.IsZero() {
		r.WindowStart = r.CatalystDate
	}
	if r.WindowEnd.IsZero() {
		r.WindowEnd = r.CatalystDate
	}
	if r.Confidence < 0 {
		r.Confidence = 0
	}
	if r.Confidence > 1 {
		r.Confidence = 1
	}
}

// Validate checks the record invariants.
func (r *CatalystRecord) Validate() error {
	if r.Ticker == "" {
		return fmt.Errorf("record has empty ticker")
	}
	if r.Event == "" {
		return fmt.Errorf("record %s has empty event type", r.Ticker)
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("record %s/%s confidence %.3f outside [0,1]", r.Ticker, r.Event, r.Confidence)
	}
	if !r.Approximate && r.ApproxToken != "" {
		return fmt.Errorf("record %s/%s is exact but carries token %q", r.Ticker, r.Event, r.ApproxToken)
	}
	if !r.WindowStart.IsZero() && !r.WindowEnd.IsZero() {
		if r.WindowEnd.Before(r.WindowStart) {
			return fmt.Errorf("record %s/%s window end precedes start", r.Ticker, r.Event)
		}
		if !r.CatalystDate.IsZero() && (r.CatalystDate.Before(r.WindowStart) || r.CatalystDate.After(r.WindowEnd)) {
			return fmt.Errorf("record %s/%s catalyst date outside its window", r.Ticker, r.Event)
		}
	}
	return nil
}

// SourceTrust ranks date_source provenance for merge precedence:
// regulatory filings outrank news mentions, which outrank unknowns.
func SourceTrust(dateSource string) int {
	s := strings.ToLower(dateSource)
	switch {
	case strings.Contains(s, "filing_txt"), strings.Contains(s, "sec"), strings.Contains(s, "edgar"):
		return 3
	case strings.Contains(s, "mentions"), strings.Contains(s, "news"):
		return 1
	default:
		return 0
	}
}

// FormatDate renders a date in DateLayout, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// Day truncates a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns whole days from a to b (calendar difference in UTC).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}
