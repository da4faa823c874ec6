package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/directory-cli/internal/model"
)

var (
	emailJunkRe  = regexp.MustCompile(`[^a-zA-Z0-9@._-]`)
	phoneJunkRe  = regexp.MustCompile(`[^\d+\-\s]`)
	digitsRe     = regexp.MustCompile(`[^\d]`)
	nameTailRe   = regexp.MustCompile(`\s*[|\-].*$`)
	spacesRe     = regexp.MustCompile(`\s+`)
	nonAlnumRe   = regexp.MustCompile(`[^a-zA-Z0-9]`)
	strictMailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	titleCaser = cases.Title(language.English)
)

// genericTitles are search-result titles that carry no restaurant name.
var genericTitles = map[string]struct{}{
	"contact us": {},
	"contact":    {},
	"home":       {},
	"enquiries":  {},
	"about us":   {},
	"enquiry":    {},
}

// CleanEmails filters and canonicalizes extracted email candidates: junk
// characters stripped, must keep an @ with a dotted domain, lower-cased,
// deduplicated preserving first-seen order.
func CleanEmails(candidates []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, c := range candidates {
		c = emailJunkRe.ReplaceAllString(c, "")
		at := strings.LastIndex(c, "@")
		if at < 0 || !strings.Contains(c[at+1:], ".") {
			continue
		}
		c = strings.ToLower(c)
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// CleanPhones filters extracted phone candidates: junk characters stripped,
// digit count must land in [7,15], deduplicated preserving order.
func CleanPhones(candidates []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, c := range candidates {
		c = strings.TrimSpace(phoneJunkRe.ReplaceAllString(c, ""))
		digits := len(digitsRe.ReplaceAllString(c, ""))
		if digits < 7 || digits > 15 {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// CleanEmail is the serialized-form counterpart of CleanEmails: it accepts
// and returns the comma-joined representation, with "-" for no value.
func CleanEmail(joined string) string {
	return model.JoinValues(CleanEmails(model.SplitValues(joined)))
}

// CleanPhone is the serialized-form counterpart of CleanPhones.
func CleanPhone(joined string) string {
	return model.JoinValues(CleanPhones(model.SplitValues(joined)))
}

// CleanName derives a display name from a search-result title. Everything
// after the first | or - is dropped and whitespace collapsed. Generic titles
// ("Contact Us", "Home", ...) are replaced with a name derived from the
// website's domain label.
func CleanName(title, website string) string {
	name := nameTailRe.ReplaceAllString(title, "")
	name = strings.TrimSpace(spacesRe.ReplaceAllString(name, " "))
	if _, generic := genericTitles[strings.ToLower(name)]; generic {
		if label := domainLabel(website); label != "" {
			return label + " Restaurant"
		}
		name = ""
	}
	if name == "" {
		return "Unknown Restaurant"
	}
	return name
}

// domainLabel extracts the capitalized first host label of a URL:
// "https://www.bestbites.sg/menu" -> "Bestbites".
func domainLabel(website string) string {
	s := website
	for _, prefix := range []string{"https://", "http://", "www."} {
		s = strings.TrimPrefix(s, prefix)
	}
	if i := strings.IndexAny(s, "./"); i >= 0 {
		s = s[:i]
	}
	s = nonAlnumRe.ReplaceAllString(s, "")
	if s == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(s))
}

// ValidateEmail reports whether s is the sentinel or a single well-formed
// email address.
func ValidateEmail(s string) bool {
	if s == model.Sentinel {
		return true
	}
	return strictMailRe.MatchString(s)
}

// ValidateURL reports whether s is a usable http(s) URL.
func ValidateURL(s string) bool {
	if s == "" || s == model.Sentinel {
		return false
	}
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
