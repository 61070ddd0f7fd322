package score

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hmtrong/catalyst/internal/model"
)

// Entry is one ranked watchlist row. A single unified score column;
// the Why string records the components that produced it.
type Entry struct {
	Ticker       string
	Event        model.EventType
	CatalystDate time.Time
	DaysToEvent  int
	Approximate  bool
	Confidence   float64
	Score        float64
	Bucket       string
	Why          string
	DocURL       string
}

// Ranker turns a merged calendar into a per-ticker watchlist.
type Ranker struct {
	// Now anchors freshness decay. Zero value means time.Now.
	Now time.Time
}

// NewRanker creates a ranker anchored at the current time.
func NewRanker() *Ranker {
	return &Ranker{Now: time.Now().UTC()}
}

// eventWeight biases the freshness stream toward regulatory decisions.
func eventWeight(ev model.EventType) float64 {
	switch ev {
	case model.EventPDUFA:
		return 6
	case model.EventAdCom, model.EventCRL, model.EventClinicalHold, model.EventResubmission:
		return 5
	case model.EventSubmission:
		return 4
	case model.EventTopline:
		return 3
	default:
		return 2
	}
}

// Rank scores every record, keeps the best row per ticker and returns
// the list sorted by score descending.
func (r *Ranker) Rank(records []model.CatalystRecord) []Entry {
	best := map[string]Entry{}
	for _, rec := range records {
		if rec.Event.Diagnostic() {
			continue
		}
		e := r.score(rec)
		if prev, ok := best[e.Ticker]; !ok || e.Score > prev.Score {
			best[e.Ticker] = e
		}
	}

	out := make([]Entry, 0, len(best))
	for _, e := range best {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Ticker < out[j].Ticker
	})
	return out
}

// score combines the calendar proximity score with a freshness score
// for filing-sourced rows.
func (r *Ranker) score(rec model.CatalystRecord) Entry {
	prox := r.proximity(rec)
	fresh := r.freshness(rec)
	total := prox + fresh

	why := fmt.Sprintf("%s in %dd conf %.2f", rec.Event, rec.DaysToEvent, rec.Confidence)
	if rec.Approximate {
		why += " (approx)"
	}
	if fresh > 0 {
		why += fmt.Sprintf(", filing freshness %.1f", fresh)
	}

	return Entry{
		Ticker:       rec.Ticker,
		Event:        rec.Event,
		CatalystDate: rec.CatalystDate,
		DaysToEvent:  rec.DaysToEvent,
		Approximate:  rec.Approximate,
		Confidence:   rec.Confidence,
		Score:        total,
		Bucket:       bucket(rec.DaysToEvent),
		Why:          why,
		DocURL:       rec.DocURL,
	}
}

// proximity rewards near-dated, high-confidence catalysts.
// Formula: 100 / (1 + max(days, 0)) + confidence*20 - approx*5.
func (r *Ranker) proximity(rec model.CatalystRecord) float64 {
	days := rec.DaysToEvent
	if days == model.DaysUnknown {
		return rec.Confidence * 20
	}
	if days < 0 {
		days = 0
	}
	s := 100.0/float64(1+days) + rec.Confidence*20
	if rec.Approximate {
		s -= 5
	}
	return s
}

// freshness scores recent SEC filings with a 7-day half-life.
// Formula: weight(event) * (0.6 + confidence) * 0.5^(age_days/7),
// plus an exhibit bonus and keyword bonuses from the anchor context.
func (r *Ranker) freshness(rec model.CatalystRecord) float64 {
	if model.SourceTrust(rec.DateSource) < 3 || rec.ReferenceDate.IsZero() {
		return 0
	}
	now := r.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	ageDays := now.Sub(rec.ReferenceDate).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	s := eventWeight(rec.Event) * (0.6 + rec.Confidence) * math.Pow(0.5, ageDays/7)

	if strings.Contains(strings.ToUpper(rec.DateSource), "EX-99") {
		s += 0.6
	}
	ctx := strings.ToLower(rec.Context)
	if strings.Contains(ctx, "fda") {
		s += 0.4
	}
	if strings.Contains(ctx, "resubmi") {
		s += 0.6
	}
	if strings.Contains(ctx, "additional information") {
		s += 0.4
	}
	return s
}

func bucket(days int) string {
	switch {
	case days == model.DaysUnknown:
		return "unknown"
	case days <= 7:
		return "week"
	case days <= 30:
		return "month"
	case days <= 90:
		return "quarter"
	default:
		return "later"
	}
}
