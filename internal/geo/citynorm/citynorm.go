// Package citynorm reduces free-text city strings to a metro-city identity.
// Providers and reverse geocoders hand back anything from "Paris" to
// "Greater London (Borough of Camden)" to "Camden, London, UK"; the
// canonicalizer applies a fixed rule pipeline so all of them group under
// one recognizable city name and one stable slug. The rules are textual
// and locale-free: no city database is consulted, and the same input
// always produces the same output.
package citynorm

import (
	"regexp"
	"strings"

	"spots_backend/internal/geo/country"
	"spots_backend/platform/slug"
)

// UnknownCity is the canonical name used when no city text is available.
const UnknownCity = "Unknown"

// Evidence tags, appended in the order the rules fired.
const (
	TagEmptyFallback      = "city_clean:empty_fallback"
	TagStripAdminPrefix   = "city_clean:strip_admin_prefix"
	TagBoroughOfInfix     = "city_clean:borough_of_infix"
	TagStripParenthetical = "city_clean:strip_parenthetical"
	TagFirstCommaSegment  = "city_clean:first_comma_segment"
)

// adminPrefixes are generic administrative qualifiers stripped from the
// front of a city string. Matching is case-insensitive and requires a
// following space, so "Greaterville" survives while "Greater London" loses
// its qualifier. The list is deliberately generic, not a city database.
var adminPrefixes = []string{
	"city of",
	"greater",
	"borough of",
	"municipality of",
	"metropolitan city of",
	"region of",
	"district of",
	"county of",
	"town of",
	"village of",
	"commune de",
	"ville de",
	"ciudad de",
	"cidade de",
	"comune di",
	"gemeente",
	"stadt",
}

var parentheticalRe = regexp.MustCompile(`\([^)]*\)`)

// Result is a canonicalized city identity. CityID is a deterministic slug
// of city plus country, suitable as a grouping key across spots. It is not
// globally unique: two same-named cities in one country collide, and
// callers that need uniqueness must disambiguate themselves. Evidence
// lists which cleaning rules fired, in order, for explainability only;
// nothing downstream may branch on it.
type Result struct {
	City        string   `json:"city"`
	CityID      string   `json:"cityId"`
	Country     string   `json:"country,omitempty"`
	CountryCode string   `json:"countryCode,omitempty"`
	Evidence    []string `json:"evidence,omitempty"`
}

// Canonicalize cleans the raw city string, normalizes the country, and
// derives the slug identity. Pure function: identical input yields
// identical output, and feeding a result's own City/Country back in
// reproduces it unchanged.
func Canonicalize(city, countryRaw string) Result {
	cn := country.Normalize(countryRaw)
	cleaned, evidence := CleanCity(city)

	return Result{
		City:        cleaned,
		CityID:      slug.Make(cleaned, cn.Name),
		Country:     cn.Name,
		CountryCode: cn.Code,
		Evidence:    evidence,
	}
}

// CleanCity runs the rule pipeline over a raw city string and reports
// which rules fired. Rules are independent: several may fire on one input.
//
// The admin-prefix and borough rules run before parenthetical stripping so
// a borough named inside parentheses ("Greater London (Borough of Camden)")
// is extracted rather than discarded with the parenthetical.
func CleanCity(raw string) (string, []string) {
	var evidence []string

	s := strings.TrimSpace(raw)
	if s == "" {
		return UnknownCity, []string{TagEmptyFallback}
	}

	if stripped, fired := stripAdminPrefixes(s); fired {
		s = stripped
		evidence = append(evidence, TagStripAdminPrefix)
	}

	if after, fired := boroughOfInfix(s); fired {
		s = after
		evidence = append(evidence, TagBoroughOfInfix)
	}

	if stripped, fired := stripParentheticals(s); fired {
		s = stripped
		evidence = append(evidence, TagStripParenthetical)
	}

	if first, fired := firstCommaSegment(s); fired {
		s = first
		evidence = append(evidence, TagFirstCommaSegment)
	}

	if s == "" {
		return UnknownCity, append(evidence, TagEmptyFallback)
	}
	return s, evidence
}

// stripAdminPrefixes removes leading administrative qualifiers, repeating
// until none matches so stacked qualifiers ("Greater City of London") fall
// away in one pass. The tag fires once regardless of how many were removed.
func stripAdminPrefixes(s string) (string, bool) {
	fired := false
	for {
		lower := strings.ToLower(s)
		matched := false
		for _, prefix := range adminPrefixes {
			if strings.HasPrefix(lower, prefix+" ") {
				s = strings.TrimSpace(s[len(prefix):])
				fired, matched = true, true
				break
			}
		}
		if !matched {
			return s, fired
		}
	}
}

// boroughOfInfix handles "<City> borough of <X>" by keeping only the part
// after the infix, but only when both sides of the split are non-empty; a
// leading "Borough of X" is a prefix, not an infix, and is left alone here.
func boroughOfInfix(s string) (string, bool) {
	const infix = "borough of"

	idx := strings.Index(strings.ToLower(s), infix)
	if idx < 0 {
		return s, false
	}

	before := strings.TrimSpace(s[:idx])
	after := strings.TrimSpace(s[idx+len(infix):])
	if before == "" || after == "" {
		return s, false
	}
	return after, true
}

// stripParentheticals drops "(...)" qualifiers and any stray parenthesis
// left behind by an earlier rule cutting through a pair.
func stripParentheticals(s string) (string, bool) {
	if !strings.ContainsAny(s, "()") {
		return s, false
	}
	cleaned := parentheticalRe.ReplaceAllString(s, " ")
	cleaned = strings.NewReplacer("(", " ", ")", " ").Replace(cleaned)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return cleaned, cleaned != s
}

// firstCommaSegment keeps only the text before the first comma, dropping
// the trailing admin-area noise some providers append.
func firstCommaSegment(s string) (string, bool) {
	first, _, found := strings.Cut(s, ",")
	if !found {
		return s, false
	}
	return strings.TrimSpace(first), true
}
