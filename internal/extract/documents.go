package extract

import (
	"regexp"
	"sort"
	"strings"
)

// FilingDocument is one <DOCUMENT> block of an EDGAR complete
// submission, with markup already stripped from its body.
type FilingDocument struct {
	Type string // e.g. "EX-99.1", "8-K", "10-Q"
	Text string
}

var (
	docTypeRe = regexp.MustCompile(`(?im)^<TYPE>(.+)$`)
	docTextRe = regexp.MustCompile(`(?is)<TEXT>(.*)</TEXT>`)
	exhibitRe = regexp.MustCompile(`^99(\.\d+)?`)
)

// HasDocumentBlocks reports whether raw looks like a real complete
// submission. EDGAR sometimes answers rate-limit HTML with status 200;
// such pages carry no <DOCUMENT> blocks.
func HasDocumentBlocks(raw string) bool {
	return strings.Contains(raw, "<DOCUMENT>")
}

// ParseSubmission splits an EDGAR complete-submission file into typed
// documents. Blocks without a <TEXT> body are dropped.
func ParseSubmission(raw string) []FilingDocument {
	parts := strings.Split(raw, "<DOCUMENT>")
	if len(parts) < 2 {
		return nil
	}
	var docs []FilingDocument
	for _, p := range parts[1:] {
		dtype := ""
		if m := docTypeRe.FindStringSubmatch(p); m != nil {
			dtype = strings.TrimSpace(m[1])
		}
		body := ""
		if m := docTextRe.FindStringSubmatch(p); m != nil {
			body = m[1]
		}
		if body == "" {
			continue
		}
		docs = append(docs, FilingDocument{Type: dtype, Text: StripMarkup(body)})
	}
	return docs
}

// docRank scores a document type for scanning order. EX-99.* press
// releases first, then the filing body itself. Zero means skip.
func docRank(dtype string) int {
	t := strings.ToUpper(strings.TrimSpace(dtype))
	switch {
	case strings.HasPrefix(t, "EX-99"), strings.HasPrefix(t, "EX99"):
		return 100
	case exhibitRe.MatchString(t):
		return 90
	case strings.HasPrefix(t, "8-K"):
		return 80
	case strings.HasPrefix(t, "10-Q"):
		return 70
	case strings.HasPrefix(t, "10-K"):
		return 65
	}
	return 0
}

// SelectDocuments ranks the submission's documents by docRank and
// returns the top max scannable ones, best first.
func SelectDocuments(docs []FilingDocument, max int) []FilingDocument {
	type ranked struct {
		score int
		idx   int
	}
	var keep []ranked
	for i, d := range docs {
		if s := docRank(d.Type); s > 0 {
			keep = append(keep, ranked{score: s, idx: i})
		}
	}
	sort.SliceStable(keep, func(i, j int) bool { return keep[i].score > keep[j].score })
	if max > 0 && len(keep) > max {
		keep = keep[:max]
	}
	out := make([]FilingDocument, 0, len(keep))
	for _, k := range keep {
		out = append(out, docs[k.idx])
	}
	return out
}
