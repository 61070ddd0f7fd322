package alert

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/hmtrong/catalyst/internal/model"
	"github.com/hmtrong/catalyst/internal/score"
)

var alertNow = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func entry(ticker string, ev model.EventType, days int, sc float64) score.Entry {
	return score.Entry{
		Ticker:       ticker,
		Event:        ev,
		CatalystDate: alertNow.AddDate(0, 0, days),
		DaysToEvent:  days,
		Score:        sc,
		Why:          "test",
	}
}

func TestEvaluateNewAndBreaking(t *testing.T) {
	candidates := []score.Entry{
		entry("ABCD", model.EventPDUFA, 20, 40),
		entry("EFGH", model.EventCRL, 10, 35),
	}

	alerts, next := Evaluate(nil, candidates, alertNow)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if alerts[0].Reason != "new" {
		t.Errorf("PDUFA first sighting should be %q, got %q", "new", alerts[0].Reason)
	}
	if alerts[1].Reason != "breaking" {
		t.Errorf("unseen CRL should be %q, got %q", "breaking", alerts[1].Reason)
	}
	if len(next) != 2 {
		t.Errorf("state should record both keys, got %d", len(next))
	}
}

func TestEvaluateScoreJump(t *testing.T) {
	e := entry("ABCD", model.EventPDUFA, 20, 40)

	_, state := Evaluate(nil, []score.Entry{e}, alertNow)

	small := e
	small.Score = 50
	alerts, state2 := Evaluate(state, []score.Entry{small}, alertNow.Add(24*time.Hour))
	if len(alerts) != 0 {
		t.Fatalf("a %.0f-point rise is below the jump threshold, got %d alerts", small.Score-e.Score, len(alerts))
	}
	if state2[entryKey(e)].Score != 40 {
		t.Error("un-alerted rises must not advance the recorded score")
	}

	big := e
	big.Score = 56
	alerts, _ = Evaluate(state, []score.Entry{big}, alertNow.Add(24*time.Hour))
	if len(alerts) != 1 || alerts[0].Reason != "score_jump" {
		t.Fatalf("expected one score_jump alert, got %+v", alerts)
	}
}

func TestEvaluateScope(t *testing.T) {
	// Fill the top ranks, then place qualifying and non-qualifying
	// entries past the cutoff.
	var candidates []score.Entry
	for i := 0; i < topN; i++ {
		candidates = append(candidates, entry(ticker(i), model.EventTopline, 400, 100-float64(i)))
	}
	soon := entry("SOON", model.EventTopline, 30, 5)
	hold := entry("HOLD", model.EventClinicalHold, 400, 4)
	far := entry("FARX", model.EventTopline, 400, 3)
	undated := entry("UNDA", model.EventTopline, model.DaysUnknown, 2)
	candidates = append(candidates, soon, hold, far, undated)

	alerts, _ := Evaluate(nil, candidates, alertNow)
	got := map[string]bool{}
	for _, a := range alerts {
		got[a.Ticker] = true
	}
	if !got["SOON"] {
		t.Error("near-dated entries qualify past the rank cutoff")
	}
	if !got["HOLD"] {
		t.Error("clinical holds qualify regardless of rank")
	}
	if got["FARX"] || got["UNDA"] {
		t.Error("distant low-rank entries should stay out of scope")
	}
	if len(alerts) != topN+2 {
		t.Errorf("expected %d alerts, got %d", topN+2, len(alerts))
	}
}

func ticker(i int) string {
	return string([]byte{'A' + byte(i/5), 'A' + byte(i%5), 'X', 'X'})
}

func TestEvaluatePriorNotMutated(t *testing.T) {
	prior := State{"k": {Score: 1, At: alertNow}}
	e := entry("ABCD", model.EventPDUFA, 20, 40)

	_, next := Evaluate(prior, []score.Entry{e}, alertNow)
	if len(prior) != 1 {
		t.Fatalf("prior state mutated: %d keys", len(prior))
	}
	if len(next) != 2 {
		t.Errorf("next state should carry prior keys forward, got %d", len(next))
	}
}

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "alerts.json")

	loaded, err := LoadState(path)
	if err != nil {
		t.Fatalf("missing state file should load as empty: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected empty state, got %d keys", len(loaded))
	}

	st := State{
		"ABCD|PDUFA|2026-03-12": {Score: 42.5, At: alertNow},
	}
	if err := SaveState(path, st); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	loaded, err = LoadState(path)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	seen, ok := loaded["ABCD|PDUFA|2026-03-12"]
	if !ok {
		t.Fatal("saved key missing after reload")
	}
	if seen.Score != 42.5 || !seen.At.Equal(alertNow) {
		t.Errorf("round-trip mismatch: %+v", seen)
	}
}
