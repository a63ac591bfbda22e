// Package country canonicalizes free-text country names. Providers emit the
// same country as "UK", "United Kingdom", or "Great Britain"; this package
// folds them onto one canonical name and ISO code using an embedded alias
// table, so city grouping keys stay stable across providers.
package country

import (
	_ "embed"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"gopkg.in/yaml.v3"
)

//go:embed countries.yaml
var countriesYAML []byte

type entry struct {
	Name    string   `yaml:"name"`
	Code    string   `yaml:"code"`
	Aliases []string `yaml:"aliases"`
}

// Result is a canonicalized country. Code is empty when the country is not
// in the table; Name then carries a title-cased copy of the input.
type Result struct {
	Name string
	Code string
}

var (
	byKey      map[string]Result
	titleCaser = cases.Title(language.Und)

	foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

func init() {
	var entries []entry
	if err := yaml.Unmarshal(countriesYAML, &entries); err != nil {
		panic("country: embedded countries.yaml is invalid: " + err.Error())
	}

	byKey = make(map[string]Result, len(entries)*2)
	for _, e := range entries {
		r := Result{Name: e.Name, Code: e.Code}
		byKey[foldKey(e.Name)] = r
		byKey[foldKey(e.Code)] = r
		for _, alias := range e.Aliases {
			byKey[foldKey(alias)] = r
		}
	}
}

// Normalize maps raw onto its canonical country. Lookup is case- and
// diacritic-insensitive. Unknown countries come back title-cased with an
// empty code; empty input yields a zero Result.
func Normalize(raw string) Result {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Result{}
	}

	if r, ok := byKey[foldKey(trimmed)]; ok {
		return r
	}
	return Result{Name: titleCaser.String(strings.ToLower(trimmed))}
}

// foldKey lowercases, strips diacritics, and drops periods so "U.S.A." and
// "España" match their table entries.
func foldKey(s string) string {
	folded, _, err := transform.String(foldDiacritics, s)
	if err != nil {
		folded = s
	}
	folded = strings.ReplaceAll(folded, ".", "")
	return strings.ToLower(strings.TrimSpace(folded))
}
