// Package alert decides which watchlist changes are worth surfacing.
// Evaluation is pure: prior seen-state plus candidates in, alerts plus
// updated state out. Persistence lives in state.go.
package alert

import (
	"fmt"
	"time"

	"github.com/hmtrong/catalyst/internal/model"
	"github.com/hmtrong/catalyst/internal/score"
)

const (
	// topN bounds how deep into the watchlist alerts look.
	topN = 25
	// soonDays is the horizon inside which any candidate qualifies
	// regardless of rank.
	soonDays = 45
	// jumpThreshold is the minimum score increase that re-alerts an
	// already-seen entry.
	jumpThreshold = 15.0
)

// Alert is one surfaced change.
type Alert struct {
	Ticker       string    `json:"ticker"`
	Event        string    `json:"event"`
	CatalystDate string    `json:"catalyst_date"`
	Score        float64   `json:"score"`
	Reason       string    `json:"reason"`
	Why          string    `json:"why"`
	At           time.Time `json:"at"`
}

// Seen records the best score previously alerted for an entry key.
type Seen struct {
	Score float64   `json:"score"`
	At    time.Time `json:"at"`
}

// State maps entry keys to their last alerted score.
type State map[string]Seen

func entryKey(e score.Entry) string {
	return fmt.Sprintf("%s|%s|%s", e.Ticker, e.Event, model.FormatDate(e.CatalystDate))
}

func breaking(ev model.EventType) bool {
	return ev == model.EventCRL || ev == model.EventClinicalHold
}

// Evaluate compares ranked candidates against the prior state and
// returns the alerts to emit plus the updated state. The input state
// is not mutated.
func Evaluate(prior State, candidates []score.Entry, now time.Time) ([]Alert, State) {
	next := make(State, len(prior)+len(candidates))
	for k, v := range prior {
		next[k] = v
	}

	var out []Alert
	for i, e := range candidates {
		inScope := i < topN ||
			(e.DaysToEvent != model.DaysUnknown && e.DaysToEvent <= soonDays) ||
			breaking(e.Event)
		if !inScope {
			continue
		}

		key := entryKey(e)
		prev, seen := next[key]

		var reason string
		switch {
		case !seen && breaking(e.Event):
			reason = "breaking"
		case !seen:
			reason = "new"
		case e.Score-prev.Score >= jumpThreshold:
			reason = "score_jump"
		default:
			continue
		}

		out = append(out, Alert{
			Ticker:       e.Ticker,
			Event:        string(e.Event),
			CatalystDate: model.FormatDate(e.CatalystDate),
			Score:        e.Score,
			Reason:       reason,
			Why:          e.Why,
			At:           now.UTC(),
		})
		next[key] = Seen{Score: e.Score, At: now.UTC()}
	}
	return out, next
}
