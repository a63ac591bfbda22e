package country

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantCode string
	}{
		{"canonical name", "United Kingdom", "United Kingdom", "GB"},
		{"alias", "UK", "United Kingdom", "GB"},
		{"alias with periods", "U.S.A.", "United States", "US"},
		{"endonym with diacritics", "España", "Spain", "ES"},
		{"diacritics folded", "espana", "Spain", "ES"},
		{"iso code", "fr", "France", "FR"},
		{"case insensitive", "gErMaNy", "Germany", "DE"},
		{"surrounding whitespace", "  Netherlands  ", "Netherlands", "NL"},
		{"unknown title-cased", "wakanda", "Wakanda", ""},
		{"unknown preserves words", "REPUBLIC OF NOWHERE", "Republic Of Nowhere", ""},
		{"empty", "", "", ""},
		{"whitespace only", "   ", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got.Name != tt.wantName || got.Code != tt.wantCode {
				t.Errorf("Normalize(%q) = {%q %q}, want {%q %q}",
					tt.input, got.Name, got.Code, tt.wantName, tt.wantCode)
			}
		})
	}
}

func TestNormalizeIsStable(t *testing.T) {
	first := Normalize("Great Britain")
	second := Normalize(first.Name)
	if first != second {
		t.Errorf("canonical name does not normalize to itself: %v != %v", first, second)
	}
}
