// Package slug builds URL slugs and display titles for blog content.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	validRX    = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	disallowRX = regexp.MustCompile(`[^\w\s-]`)
	dashRX     = regexp.MustCompile(`[-\s]+`)
)

// Make converts s to ASCII, lowercases it, drops everything that is not a
// word character, space or dash, and joins the remaining words with dashes.
func Make(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}
	ascii = disallowRX.ReplaceAllString(strings.ToLower(ascii), "")
	ascii = dashRX.ReplaceAllString(ascii, "-")
	return strings.Trim(ascii, "-_")
}

// Valid reports whether s can be used as a slug as-is.
func Valid(s string) bool {
	return validRX.MatchString(s)
}

// ValidateOrCreate keeps a usable candidate and otherwise derives the slug from source.
func ValidateOrCreate(source string, candidate *string) string {
	if candidate == nil || !Valid(*candidate) {
		return Make(source)
	}
	return *candidate
}

// Title upper-cases the first letter of every word and lower-cases the rest.
// Digits and apostrophes inside a word do not start a new one, so
// "python3rocks" becomes "Python3rocks" and "it's" becomes "It's".
func Title(s string) string {
	return cases.Title(language.Und).String(s)
}
