// Package slug provides URL-safe identifier generation.
// This is part of the platform layer and contains no business logic.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics decomposes characters and drops combining marks,
// so "São" becomes "Sao" and "Zürich" becomes "Zurich".
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make joins the given parts with hyphens and reduces the result to a
// lowercase ASCII slug: diacritics folded, apostrophes dropped, any other
// non-alphanumeric run collapsed to a single hyphen, no leading or trailing
// hyphens. Identical input always yields an identical slug.
func Make(parts ...string) string {
	joined := strings.Join(parts, "-")

	folded, _, err := transform.String(foldDiacritics, joined)
	if err != nil {
		folded = joined
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '\'', r == '’':
			// apostrophes disappear instead of becoming separators
		default:
			pendingHyphen = true
		}
	}

	return b.String()
}
