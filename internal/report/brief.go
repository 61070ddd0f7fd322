package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hmtrong/catalyst/internal/model"
)

// briefBucket is one horizon section of the daily brief.
type briefBucket struct {
	title   string
	maxDays int
	cap     int
}

var briefBuckets = []briefBucket{
	{"Next 7 days", 7, 12},
	{"Next 14 days", 14, 18},
	{"Next 30 days", 30, 25},
}

// Brief renders the daily brief: horizon buckets with one row per
// ticker (highest conviction wins), plus rows first seen since the
// previous run.
func Brief(records []model.CatalystRecord, lastRun, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Daily Catalyst Brief\n\n%s\n", now.UTC().Format("2006-01-02 15:04 UTC"))

	used := map[string]bool{}
	for _, bucket := range briefBuckets {
		rows := pick(records, bucket.maxDays, bucket.cap, used)
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", bucket.title)
		for _, r := range rows {
			b.WriteString(briefLine(r))
		}
	}

	if !lastRun.IsZero() {
		var fresh []model.CatalystRecord
		for _, r := range records {
			if !r.Event.Diagnostic() && r.FirstSeen.After(lastRun) {
				fresh = append(fresh, r)
			}
		}
		if len(fresh) > 0 {
			sort.Slice(fresh, func(i, j int) bool { return fresh[i].Confidence > fresh[j].Confidence })
			b.WriteString("\n## New since last run\n\n")
			for _, r := range fresh {
				b.WriteString(briefLine(r))
			}
		}
	}
	return b.String()
}

// pick selects at most cap rows within maxDays, one per ticker across
// the whole brief, keeping the highest-confidence event per ticker.
func pick(records []model.CatalystRecord, maxDays, limit int, used map[string]bool) []model.CatalystRecord {
	best := map[string]model.CatalystRecord{}
	for _, r := range records {
		if r.Event.Diagnostic() || used[r.Ticker] {
			continue
		}
		if r.DaysToEvent == model.DaysUnknown || r.DaysToEvent < 0 || r.DaysToEvent > maxDays {
			continue
		}
		if prev, ok := best[r.Ticker]; !ok || r.Confidence > prev.Confidence {
			best[r.Ticker] = r
		}
	}

	rows := make([]model.CatalystRecord, 0, len(best))
	for _, r := range best {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].DaysToEvent != rows[j].DaysToEvent {
			return rows[i].DaysToEvent < rows[j].DaysToEvent
		}
		return rows[i].Confidence > rows[j].Confidence
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	for _, r := range rows {
		used[r.Ticker] = true
	}
	return rows
}

func briefLine(r model.CatalystRecord) string {
	var b strings.Builder
	date := model.FormatDate(r.CatalystDate)
	if r.CatalystDate.IsZero() {
		date = "undated"
	}
	fmt.Fprintf(&b, "- %s **%s** %s", date, r.Ticker, r.Event)
	if r.Approximate {
		fmt.Fprintf(&b, " (~%s)", approxLabel(r))
	}
	fmt.Fprintf(&b, " conf %.2f", r.Confidence)
	if r.DaysToEvent != model.DaysUnknown {
		fmt.Fprintf(&b, ", %dd", r.DaysToEvent)
	}
	b.WriteString("\n")
	return b.String()
}
