// Package universe loads the tradeable-ticker universe used to gate
// news-mention extraction. Only tickers present in the universe produce
// calendar rows from news text.
package universe

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
)

type row struct {
	Ticker  string `csv:"ticker"`
	Symbol  string `csv:"symbol"`
	Company string `csv:"company"`
}

// Universe is an uppercase ticker set with optional company names.
type Universe struct {
	companies map[string]string
}

// Load reads a universe CSV. The ticker column may be named ticker or
// symbol; a company column is optional. A missing file yields an empty
// universe rather than an error so pipelines degrade to filings-only.
func Load(path string) (*Universe, error) {
	u := &Universe{companies: map[string]string{}}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return u, nil
		}
		return nil, fmt.Errorf("open universe %s: %w", path, err)
	}
	defer f.Close()

	var rows []row
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse universe %s: %w", path, err)
	}
	for _, r := range rows {
		t := strings.ToUpper(strings.TrimSpace(r.Ticker))
		if t == "" {
			t = strings.ToUpper(strings.TrimSpace(r.Symbol))
		}
		if t == "" {
			continue
		}
		u.companies[t] = strings.TrimSpace(r.Company)
	}
	return u, nil
}

// FromTickers builds a universe from an explicit list. Used by tests
// and by callers that already hold a watch list in memory.
func FromTickers(tickers ...string) *Universe {
	u := &Universe{companies: map[string]string{}}
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			u.companies[t] = ""
		}
	}
	return u
}

// Contains reports whether the uppercase ticker is in the universe.
func (u *Universe) Contains(ticker string) bool {
	_, ok := u.companies[strings.ToUpper(ticker)]
	return ok
}

// Company returns the company name for a ticker, if known.
func (u *Universe) Company(ticker string) string {
	return u.companies[strings.ToUpper(ticker)]
}

// Len returns the number of tickers loaded.
func (u *Universe) Len() int { return len(u.companies) }

// Tickers returns the ticker symbols in unspecified order.
func (u *Universe) Tickers() []string {
	out := make([]string, 0, len(u.companies))
	for t := range u.companies {
		out = append(out, t)
	}
	return out
}
