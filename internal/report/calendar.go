// Package report renders the merged calendar and the daily brief as
// markdown. Rendering never mutates records; every view is derived.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hmtrong/catalyst/internal/model"
)

// Calendar renders the master calendar grouped by catalyst date.
// Undated rows are collected under a trailing "Undated" section.
func Calendar(records []model.CatalystRecord, today time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Catalyst Calendar\n\nGenerated %s. %d upcoming events.\n",
		model.FormatDate(today), countDated(records))

	groups := map[string][]model.CatalystRecord{}
	var undated []model.CatalystRecord
	for _, r := range records {
		if r.Event.Diagnostic() {
			continue
		}
		if r.CatalystDate.IsZero() {
			undated = append(undated, r)
			continue
		}
		k := model.FormatDate(r.CatalystDate)
		groups[k] = append(groups[k], r)
	}

	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, d := range dates {
		rows := groups[d]
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Confidence != rows[j].Confidence {
				return rows[i].Confidence > rows[j].Confidence
			}
			return rows[i].Ticker < rows[j].Ticker
		})
		fmt.Fprintf(&b, "\n## %s\n\n", d)
		for _, r := range rows {
			b.WriteString(line(r))
		}
	}

	if len(undated) > 0 {
		b.WriteString("\n## Undated\n\n")
		for _, r := range undated {
			b.WriteString(line(r))
		}
	}
	return b.String()
}

func line(r model.CatalystRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- **%s** %s (conf %.2f", r.Ticker, r.Event, r.Confidence)
	if r.Approximate {
		fmt.Fprintf(&b, ", approx %s", approxLabel(r))
	}
	if r.DaysToEvent != model.DaysUnknown {
		fmt.Fprintf(&b, ", %dd", r.DaysToEvent)
	}
	b.WriteString(")")
	if r.Context != "" {
		fmt.Fprintf(&b, " %s", truncate(r.Context, 160))
	}
	if r.DocURL != "" {
		fmt.Fprintf(&b, " [filing](%s)", r.DocURL)
	}
	b.WriteString("\n")
	return b.String()
}

func approxLabel(r model.CatalystRecord) string {
	if r.ApproxToken != "" {
		return r.ApproxToken
	}
	if !r.WindowStart.IsZero() && !r.WindowEnd.IsZero() {
		return model.FormatDate(r.WindowStart) + ".." + model.FormatDate(r.WindowEnd)
	}
	return "window unknown"
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func countDated(records []model.CatalystRecord) int {
	n := 0
	for _, r := range records {
		if !r.Event.Diagnostic() && !r.CatalystDate.IsZero() {
			n++
		}
	}
	return n
}
