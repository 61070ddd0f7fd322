package extract

import (
	"regexp"

	"github.com/hmtrong/catalyst/internal/model"
)

// AnchorRule binds an event type to its case-insensitive trigger
// pattern. Rules are an explicit ranked list: when a region matches
// several rules, the highest event priority wins and earlier list
// position breaks ties, so classification is total and deterministic.
type AnchorRule struct {
	Event   model.EventType
	Pattern *regexp.Regexp
}

// anchorRules is ordered. Resubmission precedes plain submission so the
// more specific trigger is preferred when priorities tie with another
// resubmission-ranked rule.
var anchorRules = []AnchorRule{
	{model.EventResubmission, regexp.MustCompile(`(?i)\b(resubmission|re-?submit|resubmitted)\b.{0,140}\b(sBLA|BLA|NDA)\b|\b(sBLA|BLA|NDA)\b.{0,140}\b(resubmission|re-?submit|resubmitted)\b`)},
	{model.EventCRL, regexp.MustCompile(`(?i)\bcomplete response letter\b|\bCRL\b`)},
	{model.EventPDUFA, regexp.MustCompile(`(?i)\bPDUFA\b|Prescription Drug User Fee Act|action date`)},
	{model.EventClinicalHold, regexp.MustCompile(`(?i)\b(partial\s+clinical\s+hold|clinical\s+hold|trial\s+hold)\b`)},
	{model.EventAdCom, regexp.MustCompile(`(?i)\b(advisory committee|AdCom|ODAC|VRBPAC)\b`)},
	{model.EventSubmission, regexp.MustCompile(`(?i)\b(sBLA|BLA|NDA)\b.{0,140}\b(submitted|submission|filed|filing)\b|\b(submitted|submission|filed|filing)\b.{0,140}\b(sBLA|BLA|NDA)\b`)},
	{model.EventFilingAccept, regexp.MustCompile(`(?i)\b(accepted for filing|filing acceptance)\b`)},
	{model.EventTopline, regexp.MustCompile(`(?i)\b(top-?line|topline|data readout|readout|primary endpoint|met the primary endpoint|did not meet)\b`)},
}

// Rules exposes the ranked anchor list (read-only by convention).
func Rules() []AnchorRule { return anchorRules }

// RuleFor returns the anchor rule for an event type, if one exists.
func RuleFor(e model.EventType) (AnchorRule, bool) {
	for _, r := range anchorRules {
		if r.Event == e {
			return r, true
		}
	}
	return AnchorRule{}, false
}

// Classify returns the best-matching event type for a normalized text
// region, or false when no anchor fires.
func Classify(region string) (model.EventType, bool) {
	best := model.EventType("")
	bestPriority := -1
	for _, r := range anchorRules {
		if !r.Pattern.MatchString(region) {
			continue
		}
		if p := r.Event.Priority(); p > bestPriority {
			bestPriority = p
			best = r.Event
		}
	}
	return best, bestPriority >= 0
}

// fallbackWindow bounds how much of a document is scanned when no
// anchor hit localizes the date search.
const fallbackWindow = 9000

// Windows returns bounded text regions surrounding each hit of the
// event's anchor inside text, padded by pad chars on each side and
// capped at max windows. When the event has no rule or the anchor never
// fires, a single leading slice of the document is returned so the
// caller still has something local to scan.
func Windows(text string, e model.EventType, pad, max int) []string {
	rule, ok := RuleFor(e)
	if ok {
		var windows []string
		for _, loc := range rule.Pattern.FindAllStringIndex(text, -1) {
			windows = append(windows, Snippet(text, loc[0], loc[1], pad))
			if max > 0 && len(windows) >= max {
				break
			}
		}
		if len(windows) > 0 {
			return windows
		}
	}
	return []string{Truncate(text, fallbackWindow)}
}
