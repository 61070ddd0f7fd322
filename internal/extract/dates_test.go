package extract

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExtractDates_ExactForms(t *testing.T) {
	ref := date(2026, time.January, 10)

	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{"month day year", "PDUFA target action date of March 12, 2026 for the NDA", date(2026, time.March, 12)},
		{"abbreviated month", "action date of Mar 12, 2026", date(2026, time.March, 12)},
		{"day month year", "scheduled for 12 March 2026", date(2026, time.March, 12)},
		{"iso", "target date 2026-03-12 per the letter", date(2026, time.March, 12)},
		{"slash four digit year", "due by 3/12/2026", date(2026, time.March, 12)},
		{"slash two digit year", "due by 3/12/26", date(2026, time.March, 12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exact, _ := ExtractDates(tt.text, ref)
			if len(exact) != 1 {
				t.Fatalf("expected 1 exact date, got %d", len(exact))
			}
			if !exact[0].Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, exact[0])
			}
		})
	}
}

func TestExtractDates_InvalidCalendarDate(t *testing.T) {
	exact, _ := ExtractDates("expected on February 30, 2026", date(2026, time.January, 1))
	if len(exact) != 0 {
		t.Errorf("expected Feb 30 to be rejected, got %v", exact)
	}
}

func TestExtractDates_Quarter(t *testing.T) {
	_, approx := ExtractDates("topline data expected in Q2 2026", date(2026, time.January, 1))
	if len(approx) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(approx))
	}
	c := approx[0]
	if !c.Date.Equal(date(2026, time.May, 15)) {
		t.Errorf("expected representative 2026-05-15, got %s", c.Date)
	}
	if !c.WindowStart.Equal(date(2026, time.April, 1)) || !c.WindowEnd.Equal(date(2026, time.June, 30)) {
		t.Errorf("expected window Apr 1..Jun 30, got %s..%s", c.WindowStart, c.WindowEnd)
	}
}

func TestExtractDates_HalfForms(t *testing.T) {
	ref := date(2026, time.January, 1)

	tests := []struct {
		name      string
		text      string
		wantDate  time.Time
		wantToken string
	}{
		{"1H26", "expected in 1H26", date(2026, time.April, 1), "1H26"},
		{"2H 2026", "expected in 2H 2026", date(2026, time.October, 1), "2H26"},
		{"H1 2026", "expected in H1 2026", date(2026, time.April, 1), "1H26"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, approx := ExtractDates(tt.text, ref)
			if len(approx) != 1 {
				t.Fatalf("expected 1 candidate, got %d", len(approx))
			}
			if !approx[0].Date.Equal(tt.wantDate) {
				t.Errorf("expected %s, got %s", tt.wantDate, approx[0].Date)
			}
			if approx[0].Token != tt.wantToken {
				t.Errorf("expected token %q, got %q", tt.wantToken, approx[0].Token)
			}
		})
	}
}

func TestExtractDates_Seasons(t *testing.T) {
	_, approx := ExtractDates("anticipated in mid 2026", date(2026, time.January, 1))
	if len(approx) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(approx))
	}
	if !approx[0].Date.Equal(date(2026, time.June, 15)) {
		t.Errorf("expected 2026-06-15, got %s", approx[0].Date)
	}
	if !approx[0].WindowStart.Equal(date(2026, time.May, 1)) || !approx[0].WindowEnd.Equal(date(2026, time.August, 31)) {
		t.Errorf("unexpected window %s..%s", approx[0].WindowStart, approx[0].WindowEnd)
	}
}

func TestExtractDates_YearEndUsesReferenceYear(t *testing.T) {
	_, approx := ExtractDates("resubmission planned by year-end", date(2025, time.November, 3))
	if len(approx) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(approx))
	}
	c := approx[0]
	if !c.Date.Equal(date(2025, time.December, 16)) {
		t.Errorf("expected representative 2025-12-16, got %s", c.Date)
	}
	if !c.WindowStart.Equal(date(2025, time.December, 1)) || !c.WindowEnd.Equal(date(2025, time.December, 31)) {
		t.Errorf("unexpected window %s..%s", c.WindowStart, c.WindowEnd)
	}
}

func TestExtractDates_RelativeResolvedAgainstReference(t *testing.T) {
	ref := date(2026, time.January, 10)

	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{"days", "expects to respond within 30 days", date(2026, time.February, 9)},
		{"weeks", "decision within 2 weeks", date(2026, time.January, 24)},
		{"months", "data within 3 months", date(2026, time.April, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, approx := ExtractDates(tt.text, ref)
			if len(approx) != 1 {
				t.Fatalf("expected 1 candidate, got %d", len(approx))
			}
			if !approx[0].Date.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, approx[0].Date)
			}
			if !approx[0].WindowStart.Equal(ref) {
				t.Errorf("window should start at the reference date, got %s", approx[0].WindowStart)
			}
		})
	}
}

func TestExtractDates_RelativeWithoutReferenceDiscarded(t *testing.T) {
	_, approx := ExtractDates("expects to respond within 30 days", time.Time{})
	if len(approx) != 0 {
		t.Errorf("expected no candidates without a reference date, got %v", approx)
	}
}

func TestExtractDates_DeadlineWithYearIsExact(t *testing.T) {
	exact, approx := ExtractDates("expects approval by March 15, 2026", date(2026, time.January, 1))
	if len(exact) != 1 || !exact[0].Equal(date(2026, time.March, 15)) {
		t.Fatalf("expected exact 2026-03-15, got %v", exact)
	}
	if len(approx) != 0 {
		t.Errorf("a dated deadline should not also be approximate, got %v", approx)
	}
}

func TestExtractDates_DeadlineWithoutYearInfersForward(t *testing.T) {
	// Reference in November; "by March 15" must roll into next year.
	_, approx := ExtractDates("expects a decision no later than March 15", date(2025, time.November, 20))
	if len(approx) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(approx))
	}
	if !approx[0].Date.Equal(date(2026, time.March, 15)) {
		t.Errorf("expected 2026-03-15, got %s", approx[0].Date)
	}
}

func TestExtractDates_Dedupe(t *testing.T) {
	text := "PDUFA date of March 12, 2026. The March 12, 2026 action date. Readout in Q2 2026 and again Q2 2026."
	exact, approx := ExtractDates(text, date(2026, time.January, 1))
	if len(exact) != 1 {
		t.Errorf("expected exact dates deduped to 1, got %d", len(exact))
	}
	if len(approx) != 1 {
		t.Errorf("expected approx candidates deduped to 1, got %d", len(approx))
	}
}
