package extract

import (
	"math"
	"testing"
	"time"

	"github.com/hmtrong/catalyst/internal/model"
)

func testRow() FilingRow {
	return FilingRow{
		Ticker:          "ABCD",
		CIK:             "1234567",
		Form:            "8-K",
		AccessionNumber: "0001193125-26-000001",
		FilingDate:      date(2026, time.January, 10),
	}
}

func TestScanFiling_BadFetch(t *testing.T) {
	raw := "<html><body>Request Rate Threshold Exceeded</body></html>"
	hits := ScanFiling(testRow(), raw, "https://example.test/doc")
	if len(hits) != 1 {
		t.Fatalf("expected 1 diagnostic hit, got %d", len(hits))
	}
	if hits[0].Event != model.EventBadFetch {
		t.Errorf("expected BAD_FETCH, got %s", hits[0].Event)
	}
}

func TestScanFiling_ExhibitBonus(t *testing.T) {
	hits := ScanFiling(testRow(), sampleSubmission, "https://example.test/doc")
	if len(hits) == 0 {
		t.Fatal("expected anchor hits")
	}

	var exhibit *EventHit
	for i := range hits {
		if hits[i].DocType == "EX-99.1" && hits[i].Event == model.EventPDUFA {
			exhibit = &hits[i]
		}
	}
	if exhibit == nil {
		t.Fatal("expected a PDUFA hit in the exhibit")
	}
	if math.Abs(exhibit.Confidence-0.85) > 1e-9 {
		t.Errorf("expected exhibit confidence 0.85, got %.4f", exhibit.Confidence)
	}
}

func TestConsolidate(t *testing.T) {
	row := testRow()
	hits := []EventHit{
		{Row: row, DocType: "EX-99.1", Event: model.EventPDUFA, Confidence: 0.80, Snippet: "low"},
		{Row: row, DocType: "EX-99.1", Event: model.EventPDUFA, Confidence: 0.85, Snippet: "high"},
		{Row: row, DocType: "EX-99.1", Event: model.EventTopline, Confidence: 0.65, Snippet: "tl"},
		{Row: row, Event: model.EventBadFetch},
	}
	events := Consolidate(hits)
	if len(events) != 2 {
		t.Fatalf("expected 2 consolidated events (diagnostics excluded), got %d", len(events))
	}

	var pdufa *ConsolidatedEvent
	for i := range events {
		if events[i].Event == model.EventPDUFA {
			pdufa = &events[i]
		}
	}
	if pdufa == nil {
		t.Fatal("expected a PDUFA group")
	}
	if pdufa.Hits != 2 {
		t.Errorf("expected 2 hits in the PDUFA group, got %d", pdufa.Hits)
	}
	if pdufa.Confidence != 0.85 || pdufa.Snippet != "high" {
		t.Errorf("expected the best hit kept, got conf %.2f snippet %q", pdufa.Confidence, pdufa.Snippet)
	}
}

func TestCalendarExtractor_Extract(t *testing.T) {
	ex := NewCalendarExtractor(model.DefaultConfig().Extract)
	today := date(2026, time.January, 15)

	events := Consolidate(ScanFiling(testRow(), sampleSubmission, "https://example.test/doc"))
	var pdufa *ConsolidatedEvent
	for i := range events {
		if events[i].Event == model.EventPDUFA {
			pdufa = &events[i]
		}
	}
	if pdufa == nil {
		t.Fatal("expected a PDUFA event")
	}

	rec, ok := ex.Extract(*pdufa, sampleSubmission, today)
	if !ok {
		t.Fatal("expected a dated record")
	}
	if !rec.CatalystDate.Equal(date(2026, time.March, 12)) {
		t.Errorf("expected 2026-03-12, got %s", rec.CatalystDate)
	}
	if rec.Approximate {
		t.Error("an explicit date must not be approximate")
	}
	if rec.DaysToEvent != 56 {
		t.Errorf("expected 56 days to event, got %d", rec.DaysToEvent)
	}
	if rec.DateSource != "filing_txt:EX-99.1" {
		t.Errorf("unexpected date source %q", rec.DateSource)
	}
	if rec.Ticker != "ABCD" {
		t.Errorf("unexpected ticker %q", rec.Ticker)
	}
}

func TestCalendarExtractor_DateIrrelevantEvent(t *testing.T) {
	ex := NewCalendarExtractor(model.DefaultConfig().Extract)
	ev := ConsolidatedEvent{EventHit: EventHit{Row: testRow(), Event: model.EventCRL, Confidence: 0.90}}
	if _, ok := ex.Extract(ev, sampleSubmission, date(2026, time.January, 15)); ok {
		t.Error("CRL events are announcements, not dated catalysts")
	}
}
