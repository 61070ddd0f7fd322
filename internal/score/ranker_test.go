package score

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/hmtrong/catalyst/internal/model"
)

var rankNow = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func newsRec(ticker string, days int, conf float64) model.CatalystRecord {
	return model.CatalystRecord{
		Ticker:       ticker,
		Event:        model.EventTopline,
		CatalystDate: rankNow.AddDate(0, 0, days),
		DaysToEvent:  days,
		Confidence:   conf,
		DateSource:   "mentions",
	}
}

func TestProximityFormula(t *testing.T) {
	r := &Ranker{Now: rankNow}

	exact := newsRec("ABCD", 9, 0.8)
	want := 100.0/10 + 0.8*20
	if got := r.proximity(exact); math.Abs(got-want) > 1e-9 {
		t.Errorf("proximity = %v, want %v", got, want)
	}

	approx := exact
	approx.Approximate = true
	if got := r.proximity(approx); math.Abs(got-(want-5)) > 1e-9 {
		t.Errorf("approximate penalty missing: %v", got)
	}

	undated := newsRec("ABCD", model.DaysUnknown, 0.7)
	if got := r.proximity(undated); math.Abs(got-14) > 1e-9 {
		t.Errorf("undated rows score confidence only, got %v", got)
	}
}

func TestFreshnessRequiresFilingProvenance(t *testing.T) {
	r := &Ranker{Now: rankNow}

	news := newsRec("ABCD", 30, 0.8)
	news.ReferenceDate = rankNow.AddDate(0, 0, -1)
	if got := r.freshness(news); got != 0 {
		t.Errorf("news mentions must not earn freshness, got %v", got)
	}

	filing := news
	filing.DateSource = "filing_txt:8-K"
	if got := r.freshness(filing); got <= 0 {
		t.Error("filing-sourced row with a reference date should earn freshness")
	}

	noRef := filing
	noRef.ReferenceDate = time.Time{}
	if got := r.freshness(noRef); got != 0 {
		t.Errorf("missing reference date disables freshness, got %v", got)
	}
}

func TestFreshnessDecayAndBonuses(t *testing.T) {
	r := &Ranker{Now: rankNow}

	base := model.CatalystRecord{
		Ticker:        "ABCD",
		Event:         model.EventPDUFA,
		DaysToEvent:   60,
		Confidence:    0.8,
		DateSource:    "filing_txt:8-K",
		ReferenceDate: rankNow,
	}
	fresh := r.freshness(base)
	want := 6 * (0.6 + 0.8) // age zero, no bonuses
	if math.Abs(fresh-want) > 1e-9 {
		t.Errorf("freshness = %v, want %v", fresh, want)
	}

	week := base
	week.ReferenceDate = rankNow.AddDate(0, 0, -7)
	if got := r.freshness(week); math.Abs(got-want/2) > 1e-9 {
		t.Errorf("7-day half-life not applied: %v vs %v", got, want/2)
	}

	exhibit := base
	exhibit.DateSource = "filing_txt:EX-99.1"
	if got := r.freshness(exhibit); math.Abs(got-(want+0.6)) > 1e-9 {
		t.Errorf("press-release exhibit bonus missing: %v", got)
	}

	kw := base
	kw.Context = "FDA issued a complete response letter; resubmission planned with additional information"
	if got := r.freshness(kw); math.Abs(got-(want+0.4+0.6+0.4)) > 1e-9 {
		t.Errorf("keyword bonuses wrong: %v", got)
	}
}

func TestRankBestPerTicker(t *testing.T) {
	r := &Ranker{Now: rankNow}

	near := newsRec("ABCD", 5, 0.8)
	far := newsRec("ABCD", 120, 0.9)
	other := newsRec("EFGH", 20, 0.7)
	diag := model.CatalystRecord{Ticker: "IJKL", Event: model.EventDownloadError, DaysToEvent: model.DaysUnknown}

	out := r.Rank([]model.CatalystRecord{far, near, other, diag})
	if len(out) != 2 {
		t.Fatalf("expected one row per ticker with diagnostics skipped, got %d", len(out))
	}
	if out[0].Ticker != "ABCD" || out[0].DaysToEvent != 5 {
		t.Errorf("expected the near-dated ABCD row first, got %+v", out[0])
	}
	if out[1].Ticker != "EFGH" {
		t.Errorf("expected EFGH second, got %+v", out[1])
	}
}

func TestRankBuckets(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{3, "week"},
		{7, "week"},
		{8, "month"},
		{30, "month"},
		{31, "quarter"},
		{90, "quarter"},
		{91, "later"},
		{model.DaysUnknown, "unknown"},
	}
	for _, tc := range cases {
		if got := bucket(tc.days); got != tc.want {
			t.Errorf("bucket(%d) = %q, want %q", tc.days, got, tc.want)
		}
	}
}

func TestRankWhyString(t *testing.T) {
	r := &Ranker{Now: rankNow}
	rec := newsRec("ABCD", 9, 0.8)
	rec.Approximate = true

	out := r.Rank([]model.CatalystRecord{rec})
	if len(out) != 1 {
		t.Fatal("expected 1 entry")
	}
	if !strings.Contains(out[0].Why, "TOPLINE in 9d") || !strings.Contains(out[0].Why, "(approx)") {
		t.Errorf("why string missing components: %q", out[0].Why)
	}
}
