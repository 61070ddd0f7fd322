package extract

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/hmtrong/catalyst/internal/model"
)

// Mention is one news/feed item to scan for catalyst language.
type Mention struct {
	Ticker    string // explicit ticker, when the feed provides one
	Title     string
	Summary   string
	URL       string
	Published time.Time
}

// TickerSet restricts ticker detection to a known universe so free-text
// token scans don't surface junk acronyms.
type TickerSet interface {
	Contains(ticker string) bool
	Len() int
}

var tickerTokenRe = regexp.MustCompile(`\b[A-Z]{1,6}\b`)

const (
	maxTickersPerMention = 3
	mentionBaseConf      = 0.55
	mentionPriorityStep  = 0.08
	mentionMaxConf       = 0.95
	undatedMaxConf       = 0.70
	undatedToken         = "undated_news"
)

// MentionExtractor converts mention rows into catalyst records.
type MentionExtractor struct {
	Universe     TickerSet
	HorizonDays  int
	ContextLimit int
}

// Extract classifies one mention and resolves its date against the
// publication date. Mentions matching an anchor but carrying no
// resolvable date still produce a record: an approximate "undated_news"
// entry anchored to the mention date, at reduced confidence, so fresh
// news is not lost. One record per detected ticker, capped.
func (e *MentionExtractor) Extract(m Mention, today time.Time) []model.CatalystRecord {
	blob := Normalize(strings.TrimSpace(m.Title + " " + m.Summary))
	if blob == "" {
		return nil
	}

	tickers := e.tickers(m, blob)
	if len(tickers) == 0 {
		return nil
	}

	event, ok := Classify(blob)
	if !ok {
		return nil
	}

	ref := m.Published
	if ref.IsZero() {
		ref = today
	}

	exact, approx := ExtractDates(blob, ref)
	sel, dated := SelectBestDate(exact, approx, today, e.HorizonDays)

	var boost float64
	switch {
	case !dated:
		base := day(ref)
		sel = Selection{Date: base, Approximate: true, Token: undatedToken, WindowStart: base, WindowEnd: base}
		boost = -0.05
	case !sel.Approximate:
		boost = 0.15
	case deadlineToken(sel.Token):
		boost = 0.10
	default:
		boost = 0.08
	}

	conf := mentionBaseConf + mentionPriorityStep*float64(event.Priority()) + boost
	if conf > mentionMaxConf {
		conf = mentionMaxConf
	}
	if sel.Token == undatedToken && conf > undatedMaxConf {
		conf = undatedMaxConf
	}

	limit := e.ContextLimit
	if limit == 0 {
		limit = 500
	}

	var out []model.CatalystRecord
	for _, t := range tickers {
		rec := model.CatalystRecord{
			Ticker:        t,
			Event:         event,
			CatalystDate:  sel.Date,
			DaysToEvent:   model.DaysBetween(today, sel.Date),
			Approximate:   sel.Approximate,
			ApproxToken:   sel.Token,
			WindowStart:   sel.WindowStart,
			WindowEnd:     sel.WindowEnd,
			Confidence:    conf,
			DateSource:    "mentions",
			ReferenceDate: day(ref),
			DocURL:        m.URL,
			Context:       Truncate(blob, limit),
		}
		rec.Normalize()
		out = append(out, rec)
	}
	return out
}

// tickers prefers an explicit ticker column; otherwise it intersects
// uppercase tokens in the text with the universe. Without a universe,
// free-text detection is disabled entirely.
func (e *MentionExtractor) tickers(m Mention, blob string) []string {
	if t := strings.ToUpper(strings.TrimSpace(m.Ticker)); t != "" {
		if e.Universe == nil || e.Universe.Len() == 0 || e.Universe.Contains(t) {
			return []string{t}
		}
		return nil
	}
	if e.Universe == nil || e.Universe.Len() == 0 {
		return nil
	}
	seen := make(map[string]bool)
	for _, tok := range tickerTokenRe.FindAllString(blob, -1) {
		if e.Universe.Contains(tok) {
			seen[tok] = true
		}
	}
	found := make([]string, 0, len(seen))
	for t := range seen {
		found = append(found, t)
	}
	sort.Strings(found)
	if len(found) > maxTickersPerMention {
		found = found[:maxTickersPerMention]
	}
	return found
}

func deadlineToken(token string) bool {
	t := strings.ToLower(token)
	return strings.HasPrefix(t, "by ") || strings.HasPrefix(t, "before ") || strings.HasPrefix(t, "no later than ")
}
