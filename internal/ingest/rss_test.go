package ingest

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestExchangeTicker(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Abcd Therapeutics (NASDAQ: ABCD) announces PDUFA date", "ABCD"},
		{"Efgh Bio (NYSE:EFGH) reports topline results", "EFGH"},
		{"Ijkl Pharma (AMEX - IJKL) update", "IJKL"},
		{"No ticker in this headline", ""},
		{"lowercase (nasdaq: abcd) does not count", ""},
	}
	for _, tc := range cases {
		if got := exchangeTicker(tc.text); got != tc.want {
			t.Errorf("exchangeTicker(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestMentionFiltersAds(t *testing.T) {
	p := NewPoller("catalyst-test admin@example.com", false)
	now := time.Now()

	item := &gofeed.Item{
		Title:           "Sponsored: five biotech stocks to watch",
		Link:            "https://x/ad",
		PublishedParsed: &now,
	}
	if _, ok := p.mention(item); ok {
		t.Error("promotional items must be dropped")
	}

	item = &gofeed.Item{
		Title:           "Abcd Therapeutics announces PDUFA date",
		Description:     "Join our free trial today",
		Link:            "https://x/1",
		PublishedParsed: &now,
	}
	if _, ok := p.mention(item); ok {
		t.Error("ad language in the summary also disqualifies")
	}
}

func TestMentionDropsStale(t *testing.T) {
	p := NewPoller("catalyst-test admin@example.com", false)

	old := time.Now().Add(-96 * time.Hour)
	item := &gofeed.Item{
		Title:           "Abcd Therapeutics announces PDUFA date",
		Link:            "https://x/1",
		PublishedParsed: &old,
	}
	if _, ok := p.mention(item); ok {
		t.Error("items older than the max age must be dropped")
	}

	// Undated items pass; the extractor anchors them to ingestion time.
	item.PublishedParsed = nil
	m, ok := p.mention(item)
	if !ok {
		t.Fatal("undated item should survive")
	}
	if !m.Published.IsZero() {
		t.Errorf("expected zero published time, got %v", m.Published)
	}
}

func TestMentionFields(t *testing.T) {
	p := NewPoller("catalyst-test admin@example.com", false)
	now := time.Now()

	item := &gofeed.Item{
		Title:           "Abcd Therapeutics (NASDAQ: ABCD) announces PDUFA date",
		Description:     "Target action date of March 12, 2026.",
		Link:            " https://x/1 ",
		PublishedParsed: &now,
	}
	m, ok := p.mention(item)
	if !ok {
		t.Fatal("expected a mention")
	}
	if m.Ticker != "ABCD" {
		t.Errorf("ticker = %q", m.Ticker)
	}
	if m.URL != "https://x/1" {
		t.Errorf("url not trimmed: %q", m.URL)
	}
	if m.Summary != "Target action date of March 12, 2026." {
		t.Errorf("summary = %q", m.Summary)
	}
}

func TestLinkHashDedup(t *testing.T) {
	a := linkHash("https://x/1", "Same Headline")
	b := linkHash("HTTPS://X/1", "same headline")
	if a != b {
		t.Error("hash must be case-insensitive")
	}
	c := linkHash("https://x/2", "Same Headline")
	if a == c {
		t.Error("different links must hash differently")
	}
}
