// Package calendar reduces independently-produced catalyst record
// batches into one canonical, conflict-free master calendar.
package calendar

import (
	"sort"
	"time"

	"github.com/hmtrong/catalyst/internal/model"
)

// MergeOptions carries the run clock. Today drives retirement and
// days_to_event; Now stamps first_seen/last_seen.
type MergeOptions struct {
	Today time.Time
	Now   time.Time
}

// Merge performs one full reconciliation pass:
//
//  1. union master with the new batches, normalizing shapes;
//  2. stamp freshness: new records get first_seen=last_seen=now, master
//     records whose identity key reappears get last_seen=now;
//  3. keep the best record per identity key by ordered precedence,
//     preserving the earliest first_seen across the group;
//  4. drop approximate records shadowed by an exact date for the same
//     (ticker, event) pair when the exact date falls inside their
//     window, or unconditionally when the window is unparsable;
//  5. retire events strictly before today (unparsable dates retained);
//  6. recompute days_to_event;
//  7. sort by days ascending, confidence descending.
//
// Empty or missing inputs are empty collections, never errors.
func Merge(master []model.CatalystRecord, batches [][]model.CatalystRecord, opts MergeOptions) []model.CatalystRecord {
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	today := model.Day(opts.Today)
	if today.IsZero() {
		today = model.Day(now)
	}

	var fresh []model.CatalystRecord
	for _, b := range batches {
		fresh = append(fresh, b...)
	}

	combined := make([]model.CatalystRecord, 0, len(master)+len(fresh))
	newKeys := make(map[model.Key]bool, len(fresh))

	for _, r := range master {
		r.Normalize()
		combined = append(combined, r)
	}
	for _, r := range fresh {
		r.Normalize()
		r.FirstSeen = now
		r.LastSeen = now
		newKeys[r.Key()] = true
		combined = append(combined, r)
	}
	for i := range combined {
		if newKeys[combined[i].Key()] {
			combined[i].LastSeen = now
		}
	}

	reduced := bestPerKey(combined)
	reduced = suppressShadowedApprox(reduced)
	reduced = retirePast(reduced, today)

	for i := range reduced {
		if reduced[i].CatalystDate.IsZero() {
			reduced[i].DaysToEvent = model.DaysUnknown
		} else {
			reduced[i].DaysToEvent = model.DaysBetween(today, reduced[i].CatalystDate)
		}
	}

	sort.SliceStable(reduced, func(i, j int) bool {
		if reduced[i].DaysToEvent != reduced[j].DaysToEvent {
			return reduced[i].DaysToEvent < reduced[j].DaysToEvent
		}
		return reduced[i].Confidence > reduced[j].Confidence
	})
	return reduced
}

// bestPerKey keeps exactly one record per identity key. Ordered
// precedence, earlier criteria win:
//
//	exact over approximate; higher confidence; higher source trust;
//	newer reference date; has doc_url; longer context.
//
// The survivor inherits the earliest non-zero first_seen of its group.
func bestPerKey(records []model.CatalystRecord) []model.CatalystRecord {
	groups := make(map[model.Key]*model.CatalystRecord)
	firstSeen := make(map[model.Key]time.Time)
	var order []model.Key

	for i := range records {
		r := records[i]
		k := r.Key()
		if fs, ok := firstSeen[k]; !ok || (!r.FirstSeen.IsZero() && (fs.IsZero() || r.FirstSeen.Before(fs))) {
			firstSeen[k] = r.FirstSeen
		}
		cur, ok := groups[k]
		if !ok {
			groups[k] = &records[i]
			order = append(order, k)
			continue
		}
		if outranks(&r, cur) {
			groups[k] = &records[i]
		}
	}

	out := make([]model.CatalystRecord, 0, len(order))
	for _, k := range order {
		winner := *groups[k]
		if fs := firstSeen[k]; !fs.IsZero() {
			winner.FirstSeen = fs
		}
		out = append(out, winner)
	}
	return out
}

func outranks(a, b *model.CatalystRecord) bool {
	if a.Approximate != b.Approximate {
		return !a.Approximate
	}
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	if ta, tb := model.SourceTrust(a.DateSource), model.SourceTrust(b.DateSource); ta != tb {
		return ta > tb
	}
	if !a.ReferenceDate.Equal(b.ReferenceDate) {
		return a.ReferenceDate.After(b.ReferenceDate)
	}
	if (a.DocURL != "") != (b.DocURL != "") {
		return a.DocURL != ""
	}
	return len(a.Context) > len(b.Context)
}

type subjectEvent struct {
	ticker string
	event  model.EventType
}

// suppressShadowedApprox drops approximate records for a (ticker,
// event) pair once an exact date exists, unless the exact date lies
// outside the approximate window, which suggests a different occasion.
// Approximates with unparsable windows are dropped conservatively.
func suppressShadowedApprox(records []model.CatalystRecord) []model.CatalystRecord {
	exactDates := make(map[subjectEvent][]time.Time)
	for _, r := range records {
		if !r.Approximate && !r.CatalystDate.IsZero() {
			k := subjectEvent{r.Ticker, r.Event}
			exactDates[k] = append(exactDates[k], r.CatalystDate)
		}
	}
	if len(exactDates) == 0 {
		return records
	}

	out := records[:0]
	for _, r := range records {
		if r.Approximate {
			if dates, ok := exactDates[subjectEvent{r.Ticker, r.Event}]; ok {
				if r.WindowStart.IsZero() || r.WindowEnd.IsZero() {
					continue
				}
				shadowed := false
				for _, d := range dates {
					if !d.Before(r.WindowStart) && !d.After(r.WindowEnd) {
						shadowed = true
						break
					}
				}
				if shadowed {
					continue
				}
			}
		}
		out = append(out, r)
	}
	return out
}

// retirePast removes records dated strictly before today. Records whose
// date never parsed are retained; parse failure is not grounds for
// retirement.
func retirePast(records []model.CatalystRecord, today time.Time) []model.CatalystRecord {
	out := records[:0]
	for _, r := range records {
		if !r.CatalystDate.IsZero() && r.CatalystDate.Before(today) {
			continue
		}
		out = append(out, r)
	}
	return out
}
