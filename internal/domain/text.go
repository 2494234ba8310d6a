package domain

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitModel splits a listing's free-text model at its first whitespace
// character. The brand is everything before it; the type is everything
// after, which may itself contain spaces. A model without whitespace has an
// empty type.
func SplitModel(model string) (brand, kind string) {
	i := strings.IndexFunc(model, unicode.IsSpace)
	if i < 0 {
		return model, ""
	}
	_, width := utf8.DecodeRuneInString(model[i:])
	return model[:i], model[i+width:]
}

// entityRe matches the numeric character references for '!', '\'' and ','.
// The terminating semicolon is optional in the source data.
var entityRe = regexp.MustCompile(`&#(33|39|44);?`)

// SanitizeDescription decodes the three entities that litter the sighting
// descriptions: commas and apostrophes are dropped, exclamation marks
// become periods. An unterminated reference followed by another digit names
// a different character and passes through unchanged, as does any other
// entity.
func SanitizeDescription(s string) string {
	if !strings.Contains(s, "&#") {
		return s
	}
	var b strings.Builder
	last := 0
	for _, m := range entityRe.FindAllStringSubmatchIndex(s, -1) {
		start, end := m[0], m[1]
		if s[end-1] != ';' && end < len(s) && isDigit(s[end]) {
			continue
		}
		b.WriteString(s[last:start])
		if s[m[2]:m[3]] == "33" {
			b.WriteByte('.')
		}
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
