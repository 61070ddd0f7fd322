package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Candidate is an approximate date-window candidate found in text: a
// deterministic representative date inside an inclusive window, plus
// the human-readable token that produced it.
type Candidate struct {
	Date        time.Time
	Token       string
	WindowStart time.Time
	WindowEnd   time.Time
}

var monthNumbers = map[string]time.Month{
	"JAN": time.January, "JANUARY": time.January,
	"FEB": time.February, "FEBRUARY": time.February,
	"MAR": time.March, "MARCH": time.March,
	"APR": time.April, "APRIL": time.April,
	"MAY": time.May,
	"JUN": time.June, "JUNE": time.June,
	"JUL": time.July, "JULY": time.July,
	"AUG": time.August, "AUGUST": time.August,
	"SEP": time.September, "SEPT": time.September, "SEPTEMBER": time.September,
	"OCT": time.October, "OCTOBER": time.October,
	"NOV": time.November, "NOVEMBER": time.November,
	"DEC": time.December, "DECEMBER": time.December,
}

const monthPattern = `(Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)`

var (
	monthDayYearRe = regexp.MustCompile(`(?i)\b` + monthPattern + `\s+(\d{1,2}),\s*(\d{4})\b`)
	dayMonthYearRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s+` + monthPattern + `\s+(\d{4})\b`)
	isoDateRe      = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	slashDateRe    = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`)

	quarterRe  = regexp.MustCompile(`(?i)\bQ([1-4])\s*(20\d{2})\b`)
	halfNumRe  = regexp.MustCompile(`(?i)\b([12])H\s*(20\d{2}|\d{2})\b`)
	halfAltRe  = regexp.MustCompile(`(?i)\bH([12])\s+(20\d{2})\b`)
	seasonRe   = regexp.MustCompile(`(?i)\b(early|mid|late)\s+(20\d{2})\b`)
	yearEndRe  = regexp.MustCompile(`(?i)\b(?:year[- ]end|end of (?:the )?year)\b`)
	relativeRe = regexp.MustCompile(`(?i)\bwithin\s+(\d{1,3})\s+(day|days|week|weeks|month|months)\b`)
	deadlineRe = regexp.MustCompile(`(?i)\b(by|before|no later than)\s+([A-Za-z]{3,9})\.?\s+(\d{1,2})(?:,?\s*(20\d{2}))?\b`)
)

// ExtractDates scans a text region for exact calendar dates and
// approximate date-windows. Relative and year-less phrases are resolved
// against ref, the date of the source document; when ref is zero they
// are discarded rather than guessed. Syntactically invalid dates are
// discarded, never errored.
func ExtractDates(region string, ref time.Time) ([]time.Time, []Candidate) {
	var exact []time.Time
	var approx []Candidate

	// Month D, YYYY
	for _, m := range monthDayYearRe.FindAllStringSubmatch(region, -1) {
		if d, ok := makeDate(atoi(m[3]), monthNumbers[strings.ToUpper(m[1])], atoi(m[2])); ok {
			exact = append(exact, d)
		}
	}
	// D Month YYYY
	for _, m := range dayMonthYearRe.FindAllStringSubmatch(region, -1) {
		if d, ok := makeDate(atoi(m[3]), monthNumbers[strings.ToUpper(m[2])], atoi(m[1])); ok {
			exact = append(exact, d)
		}
	}
	// YYYY-MM-DD
	for _, m := range isoDateRe.FindAllStringSubmatch(region, -1) {
		if d, ok := makeDate(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3])); ok {
			exact = append(exact, d)
		}
	}
	// M/D/YYYY and M/D/YY
	for _, m := range slashDateRe.FindAllStringSubmatch(region, -1) {
		year := atoi(m[3])
		switch len(m[3]) {
		case 2:
			year += 2000
		case 3:
			continue
		}
		if d, ok := makeDate(year, time.Month(atoi(m[1])), atoi(m[2])); ok {
			exact = append(exact, d)
		}
	}

	// Qn YYYY
	for _, m := range quarterRe.FindAllStringSubmatch(region, -1) {
		q, y := atoi(m[1]), atoi(m[2])
		ws := utcDate(y, time.Month(3*q-2), 1)
		we := endOfMonth(y, time.Month(3*q))
		approx = append(approx, Candidate{
			Date:        utcDate(y, time.Month(3*q-1), 15),
			Token:       m[0],
			WindowStart: ws,
			WindowEnd:   we,
		})
	}
	// 1H26 / 2H 2026 / H1 2026
	for _, m := range halfNumRe.FindAllStringSubmatch(region, -1) {
		approx = appendHalf(approx, atoi(m[1]), halfYear(m[2]))
	}
	for _, m := range halfAltRe.FindAllStringSubmatch(region, -1) {
		approx = appendHalf(approx, atoi(m[1]), atoi(m[2]))
	}
	// early/mid/late YYYY
	for _, m := range seasonRe.FindAllStringSubmatch(region, -1) {
		word, y := strings.ToLower(m[1]), atoi(m[2])
		c := Candidate{Token: fmt.Sprintf("%s %d", word, y)}
		switch word {
		case "early":
			c.Date = utcDate(y, time.February, 15)
			c.WindowStart, c.WindowEnd = utcDate(y, time.January, 1), utcDate(y, time.April, 30)
		case "mid":
			c.Date = utcDate(y, time.June, 15)
			c.WindowStart, c.WindowEnd = utcDate(y, time.May, 1), utcDate(y, time.August, 31)
		case "late":
			c.Date = utcDate(y, time.October, 15)
			c.WindowStart, c.WindowEnd = utcDate(y, time.September, 1), utcDate(y, time.December, 31)
		}
		approx = append(approx, c)
	}
	// year-end (year inferred from the reference date)
	if yearEndRe.MatchString(region) && !ref.IsZero() {
		y := ref.UTC().Year()
		approx = append(approx, Candidate{
			Date:        utcDate(y, time.December, 16),
			Token:       fmt.Sprintf("year-end %d", y),
			WindowStart: utcDate(y, time.December, 1),
			WindowEnd:   utcDate(y, time.December, 31),
		})
	}
	// within N days/weeks/months, resolved against the reference date
	if !ref.IsZero() {
		base := day(ref)
		for _, m := range relativeRe.FindAllStringSubmatch(region, -1) {
			n := atoi(m[1])
			days := n
			switch {
			case strings.HasPrefix(strings.ToLower(m[2]), "week"):
				days = n * 7
			case strings.HasPrefix(strings.ToLower(m[2]), "month"):
				days = n * 30 // accepted approximation
			}
			target := base.AddDate(0, 0, days)
			approx = append(approx, Candidate{
				Date:        target,
				Token:       strings.ToLower(Normalize(m[0])),
				WindowStart: base,
				WindowEnd:   target,
			})
		}
	}
	// by/before/no later than Month D[, YYYY]
	for _, m := range deadlineRe.FindAllStringSubmatch(region, -1) {
		mon, ok := monthNumbers[strings.ToUpper(m[2])]
		if !ok {
			continue
		}
		dayNum := atoi(m[3])
		if m[4] != "" {
			if d, ok := makeDate(atoi(m[4]), mon, dayNum); ok {
				exact = append(exact, d)
			}
			continue
		}
		if ref.IsZero() {
			continue // no stated year and none inferable
		}
		y := ref.UTC().Year()
		d, ok := makeDate(y, mon, dayNum)
		if !ok {
			continue
		}
		if d.Before(day(ref)) {
			d, ok = makeDate(y+1, mon, dayNum)
			if !ok {
				continue
			}
		}
		approx = append(approx, Candidate{
			Date:        d,
			Token:       strings.ToLower(fmt.Sprintf("%s %s %d", m[1], m[2], dayNum)),
			WindowStart: d,
			WindowEnd:   d,
		})
	}

	return dedupeExact(exact), dedupeApprox(approx)
}

func appendHalf(approx []Candidate, h, y int) []Candidate {
	if y == 0 || (h != 1 && h != 2) {
		return approx
	}
	c := Candidate{Token: fmt.Sprintf("%dH%02d", h, y%100)}
	if h == 1 {
		c.Date = utcDate(y, time.April, 1)
		c.WindowStart, c.WindowEnd = utcDate(y, time.January, 1), utcDate(y, time.June, 30)
	} else {
		c.Date = utcDate(y, time.October, 1)
		c.WindowStart, c.WindowEnd = utcDate(y, time.July, 1), utcDate(y, time.December, 31)
	}
	return append(approx, c)
}

// halfYear widens a 2-digit half-year mention ("1H26") into 4 digits.
func halfYear(raw string) int {
	y := atoi(raw)
	if len(raw) == 2 {
		y += 2000
	}
	return y
}

// makeDate validates calendar components; Feb 30 and friends are
// rejected via the normalization round-trip.
func makeDate(y int, m time.Month, d int) (time.Time, bool) {
	if y == 0 || m < time.January || m > time.December || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := utcDate(y, m, d)
	if t.Year() != y || t.Month() != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfMonth(y int, m time.Month) time.Time {
	return utcDate(y, m, 1).AddDate(0, 1, -1)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// dedupeExact drops repeated dates, preserving first-occurrence order.
func dedupeExact(dates []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(dates))
	var out []time.Time
	for _, d := range dates {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

// dedupeApprox drops repeated (date, token) pairs, preserving
// first-occurrence order.
func dedupeApprox(cands []Candidate) []Candidate {
	seen := make(map[string]bool, len(cands))
	var out []Candidate
	for _, c := range cands {
		key := c.Date.Format("2006-01-02") + "|" + strings.ToLower(c.Token)
		if !seen[key] {
			seen[key] = true
			out = append(out, c)
		}
	}
	return out
}
