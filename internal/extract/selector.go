package extract

import "time"

// Selection is the outcome of best-date selection for one extraction.
type Selection struct {
	Date        time.Time
	Approximate bool
	Token       string
	WindowStart time.Time
	WindowEnd   time.Time
}

// SelectBestDate picks one catalyst date out of the candidates found
// near an anchor. Policy, applied strictly in order:
//
//  1. the earliest exact date inside [today, today+horizon];
//  2. failing that, the earliest approximate representative inside the
//     same range, carrying its token and window;
//  3. failing that, nothing: a missing future date is a filtered-out
//     extraction, not an error.
//
// Exact and approximate candidates are never blended or averaged.
func SelectBestDate(exact []time.Time, approx []Candidate, today time.Time, horizonDays int) (Selection, bool) {
	lo := day(today)
	hi := lo.AddDate(0, 0, horizonDays)

	if best, ok := earliestWithin(exact, lo, hi); ok {
		return Selection{Date: best, WindowStart: best, WindowEnd: best}, true
	}

	var bestCand *Candidate
	for i := range approx {
		c := &approx[i]
		if c.Date.Before(lo) || c.Date.After(hi) {
			continue
		}
		if bestCand == nil || c.Date.Before(bestCand.Date) {
			bestCand = c
		}
	}
	if bestCand == nil {
		return Selection{}, false
	}
	return Selection{
		Date:        bestCand.Date,
		Approximate: true,
		Token:       bestCand.Token,
		WindowStart: bestCand.WindowStart,
		WindowEnd:   bestCand.WindowEnd,
	}, true
}

func earliestWithin(dates []time.Time, lo, hi time.Time) (time.Time, bool) {
	var best time.Time
	found := false
	for _, d := range dates {
		if d.Before(lo) || d.After(hi) {
			continue
		}
		if !found || d.Before(best) {
			best = d
			found = true
		}
	}
	return best, found
}
