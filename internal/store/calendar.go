package store

import (
	"fmt"
	"strconv"

	"github.com/hmtrong/catalyst/internal/model"
)

// calendarRow is the on-disk shape of a catalyst record. All fields are
// strings on the wire; conversion happens once, here, with defaults for
// anything missing so merge keys stay well-defined.
type calendarRow struct {
	Ticker       string `csv:"ticker"`
	EventType    string `csv:"event_type"`
	CatalystDate string `csv:"catalyst_date"`
	DaysToEvent  string `csv:"days_to_event"`
	Approximate  string `csv:"approximate"`
	ApproxToken  string `csv:"approx_token"`
	WindowStart  string `csv:"catalyst_window_start"`
	WindowEnd    string `csv:"catalyst_window_end"`
	Confidence   string `csv:"confidence"`
	DateSource   string `csv:"date_source"`
	RefDate      string `csv:"reference_date"`
	DocURL       string `csv:"doc_url"`
	Context      string `csv:"context"`
	FirstSeen    string `csv:"first_seen_utc"`
	LastSeen     string `csv:"last_seen_utc"`
}

func (r calendarRow) toRecord() model.CatalystRecord {
	rec := model.CatalystRecord{
		Ticker:        r.Ticker,
		Event:         model.EventType(r.EventType),
		CatalystDate:  parseTime(r.CatalystDate),
		DaysToEvent:   parseInt(r.DaysToEvent, model.DaysUnknown),
		Approximate:   parseBool01(r.Approximate),
		ApproxToken:   r.ApproxToken,
		WindowStart:   parseTime(r.WindowStart),
		WindowEnd:     parseTime(r.WindowEnd),
		Confidence:    parseFloat(r.Confidence),
		DateSource:    r.DateSource,
		ReferenceDate: parseTime(r.RefDate),
		DocURL:        r.DocURL,
		Context:       r.Context,
		FirstSeen:     parseTime(r.FirstSeen),
		LastSeen:      parseTime(r.LastSeen),
	}
	rec.Normalize()
	return rec
}

func toCalendarRow(rec model.CatalystRecord) calendarRow {
	return calendarRow{
		Ticker:       rec.Ticker,
		EventType:    string(rec.Event),
		CatalystDate: model.FormatDate(rec.CatalystDate),
		DaysToEvent:  strconv.Itoa(rec.DaysToEvent),
		Approximate:  formatBool01(rec.Approximate),
		ApproxToken:  rec.ApproxToken,
		WindowStart:  model.FormatDate(rec.WindowStart),
		WindowEnd:    model.FormatDate(rec.WindowEnd),
		Confidence:   fmt.Sprintf("%.2f", rec.Confidence),
		DateSource:   rec.DateSource,
		RefDate:      model.FormatDate(rec.ReferenceDate),
		DocURL:       rec.DocURL,
		Context:      rec.Context,
		FirstSeen:    formatTimestamp(rec.FirstSeen),
		LastSeen:     formatTimestamp(rec.LastSeen),
	}
}

// LoadCalendar reads a calendar snapshot (master or per-source batch).
// Missing file means empty collection.
func LoadCalendar(path string) ([]model.CatalystRecord, error) {
	rows, err := readCSV[calendarRow](path)
	if err != nil {
		return nil, err
	}
	recs := make([]model.CatalystRecord, 0, len(rows))
	for _, r := range rows {
		rec := r.toRecord()
		if rec.Ticker == "" && rec.Event == "" {
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// SaveCalendar atomically replaces a calendar snapshot.
func SaveCalendar(path string, recs []model.CatalystRecord) error {
	rows := make([]calendarRow, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, toCalendarRow(rec))
	}
	return writeCSV(path, rows)
}
