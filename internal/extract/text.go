package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize canonicalizes raw text for pattern matching: HTML/XML
// entities decoded, NBSP converted to plain space, whitespace runs
// collapsed, leading/trailing whitespace removed. Never fails; nil-ish
// input yields "".
func Normalize(s string) string {
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, " ", " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// StripMarkup removes markup from possibly-malformed HTML/SGML and
// normalizes the remaining text. Script, style, noscript and iframe
// bodies are dropped entirely. Tokenizing (rather than parsing a full
// tree) keeps this robust against the pseudo-SGML inside EDGAR
// complete-submission files.
func StripMarkup(s string) string {
	if s == "" {
		return ""
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var buf strings.Builder
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return Normalize(buf.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if skippedTag(string(name)) {
				skip++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if skippedTag(string(name)) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				buf.Write(z.Text())
				buf.WriteByte(' ')
			}
		}
	}
}

func skippedTag(name string) bool {
	switch name {
	case "script", "style", "noscript", "iframe":
		return true
	}
	return false
}

// Snippet returns text around [start,end) padded on both sides,
// clamped to the text bounds. Edges snap outward to rune boundaries
// so an excerpt never splits a multi-byte character.
func Snippet(text string, start, end, pad int) string {
	a := start - pad
	if a < 0 {
		a = 0
	}
	b := end + pad
	if b > len(text) {
		b = len(text)
	}
	for a > 0 && !utf8.RuneStart(text[a]) {
		a--
	}
	for b < len(text) && !utf8.RuneStart(text[b]) {
		b++
	}
	return text[a:b]
}

// Truncate bounds an excerpt to at most max bytes, cutting back to the
// nearest rune boundary.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
