// Package extract holds the pure text-extraction and normalization pipeline:
// regex matching over snippets and page excerpts, then cleaning, validation,
// and order-preserving deduplication of the matched fields.
package extract

import (
	"regexp"

	"github.com/sells-group/directory-cli/internal/model"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\s-]{7,}\d`)
)

// Emails returns every email-shaped substring in first-occurrence order,
// without deduplication. Returns ["-"] when nothing matches.
func Emails(text string) []string {
	matches := emailRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return []string{model.Sentinel}
	}
	return matches
}

// Phones returns every phone-shaped substring (optional +, 9+ digit-ish
// characters, digit at both ends) in first-occurrence order. Returns ["-"]
// when nothing matches.
func Phones(text string) []string {
	matches := phoneRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return []string{model.Sentinel}
	}
	return matches
}

// Found reports whether an extractor result carries real matches rather than
// the sentinel.
func Found(matches []string) bool {
	return len(matches) > 0 && !(len(matches) == 1 && matches[0] == model.Sentinel)
}
