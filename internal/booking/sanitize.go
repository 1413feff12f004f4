package booking

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

var (
	// StrictPolicy removes every element and keeps only text.
	markup = bluemonday.StrictPolicy()

	// lineBreaks matches a run of any line-break character.
	lineBreaks = regexp.MustCompile(`[\r\n\v\f\x{85}\x{2028}\x{2029}]+`)

	bracketsAndEntities = strings.NewReplacer("<", "", ">", "", "&", "")
)

// maxSanitizePasses bounds the fixed-point loop. Every pass peels one layer
// of entity encoding, so legitimate input settles after one or two.
const maxSanitizePasses = 8

// Sanitize makes untrusted text safe to display and to put into an email
// header: invalid UTF-8 is dropped, markup is stripped, runs of line
// breaks collapse into one space, other control characters are removed
// and the result is trimmed.
//
// Sanitize(Sanitize(s)) == Sanitize(s) for every s.
func Sanitize(s string) string {
	for i := 0; i < maxSanitizePasses; i++ {
		next := sanitizePass(s)
		if next == s {
			return s
		}
		s = next
	}

	// Deeply nested entities: drop the characters that could still form
	// markup so the last pass is guaranteed to be stable.
	return sanitizePass(bracketsAndEntities.Replace(s))
}

func sanitizePass(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = norm.NFC.String(s)
	s = html.UnescapeString(markup.Sanitize(s))
	s = lineBreaks.ReplaceAllString(s, " ")
	s = strings.Map(dropControl, s)
	return strings.TrimSpace(s)
}

func dropControl(r rune) rune {
	if r == '\t' {
		return ' '
	}
	if unicode.IsControl(r) {
		return -1
	}
	return r
}
