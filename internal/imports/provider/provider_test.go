package provider

import (
	"net/url"
	"testing"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestFindGoogleMaps(t *testing.T) {
	cases := []struct {
		name        string
		raw         string
		wantPlaceID string
		wantCID     string
	}{
		{"place_id param", "https://maps.google.com/maps?place_id=abc123", "abc123", ""},
		{"q place_id", "https://www.google.com/maps?q=place_id:ChIJqqq111", "ChIJqqq111", ""},
		{"data segment", "https://www.google.com/maps/place/Cafe+Flore/data=!3m1!4b1!4m5!1sChIJd8BlQ2BZwokRAFUEcm_qrcA!8m2", "ChIJd8BlQ2BZwokRAFUEcm_qrcA", ""},
		{"cid only", "https://maps.google.com/?cid=123456789", "", "123456789"},
		{"place_id wins, cid kept", "https://maps.google.com/maps?place_id=abc&cid=999", "abc", "999"},
		{"country tld maps host", "https://maps.google.nl/maps/place/Foo", "", ""},
		{"app shortlink host", "https://maps.app.goo.gl/oKXDiNoteSH1Bhrb7", "", ""},
		{"no id at all", "https://www.google.com/maps/place/Somewhere", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Find(mustParse(t, tc.raw))
			if m.Kind != KindGoogleMaps {
				t.Fatalf("kind = %q, want %q", m.Kind, KindGoogleMaps)
			}
			if m.PlaceID != tc.wantPlaceID {
				t.Errorf("PlaceID = %q, want %q", m.PlaceID, tc.wantPlaceID)
			}
			if m.CID != tc.wantCID {
				t.Errorf("CID = %q, want %q", m.CID, tc.wantCID)
			}
		})
	}
}

func TestFindGoogleNonMapsPathIsGeneric(t *testing.T) {
	m := Find(mustParse(t, "https://www.google.com/search?q=best+coffee"))
	if m.Kind != KindGeneric {
		t.Errorf("kind = %q, want %q", m.Kind, KindGeneric)
	}
}

func TestFindYelp(t *testing.T) {
	cases := []struct {
		name           string
		raw            string
		wantBusinessID string
	}{
		{"www biz", "https://www.yelp.com/biz/foo-bar-sf", "foo-bar-sf"},
		{"biz with trailing path", "https://yelp.com/biz/tartine-bakery-san-francisco/menu", "tartine-bakery-san-francisco"},
		{"country tld", "https://yelp.co.uk/biz/the-ledbury-london", "the-ledbury-london"},
		{"mobile subdomain", "https://m.yelp.de/biz/prater-garten-berlin", "prater-garten-berlin"},
		{"no biz path", "https://www.yelp.com/search?find_desc=ramen", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Find(mustParse(t, tc.raw))
			if m.Kind != KindYelp {
				t.Fatalf("kind = %q, want %q", m.Kind, KindYelp)
			}
			if m.BusinessID != tc.wantBusinessID {
				t.Errorf("BusinessID = %q, want %q", m.BusinessID, tc.wantBusinessID)
			}
		})
	}
}

func TestFindOpenTable(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		wantID   string
		wantSlug string
	}{
		{"profile id", "https://www.opentable.com/restaurant/profile/123456?ref=123", "123456", ""},
		{"profile id with subpage", "https://www.opentable.com/restaurant/profile/98765/menu", "98765", ""},
		{"r slug", "https://www.opentable.com/r/the-french-laundry-yountville", "", "the-french-laundry-yountville"},
		{"neither", "https://www.opentable.com/start/home", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Find(mustParse(t, tc.raw))
			if m.Kind != KindOpenTable {
				t.Fatalf("kind = %q, want %q", m.Kind, KindOpenTable)
			}
			if m.RestaurantID != tc.wantID {
				t.Errorf("RestaurantID = %q, want %q", m.RestaurantID, tc.wantID)
			}
			if m.RestaurantSlug != tc.wantSlug {
				t.Errorf("RestaurantSlug = %q, want %q", m.RestaurantSlug, tc.wantSlug)
			}
		})
	}
}

func TestFindTripAdvisor(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		wantID string
	}{
		{"review infix", "https://www.tripadvisor.com/Restaurant_Review-g187147-d12345678-Reviews-Septime-Paris.html", "12345678"},
		{"html suffix", "https://www.tripadvisor.com/Attraction_d777.html", "777"},
		{"subdomain", "https://en.tripadvisor.com/Restaurant_Review-g60763-d423123-Reviews-Foo.html", "423123"},
		{"no id", "https://www.tripadvisor.com/Restaurants-g60763-New_York_City.html", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Find(mustParse(t, tc.raw))
			if m.Kind != KindTripAdvisor {
				t.Fatalf("kind = %q, want %q", m.Kind, KindTripAdvisor)
			}
			if m.LocationID != tc.wantID {
				t.Errorf("LocationID = %q, want %q", m.LocationID, tc.wantID)
			}
		})
	}
}

func TestFindGeneric(t *testing.T) {
	m := Find(mustParse(t, "https://example.com/random"))
	if m.Kind != KindGeneric {
		t.Fatalf("kind = %q, want %q", m.Kind, KindGeneric)
	}
	if m.PlaceID != "" || m.CID != "" || m.BusinessID != "" || m.RestaurantID != "" || m.RestaurantSlug != "" || m.LocationID != "" {
		t.Error("generic match must carry no identifiers")
	}
}

func TestFindIsCaseInsensitiveOnHost(t *testing.T) {
	m := Find(mustParse(t, "https://WWW.Yelp.COM/biz/noma-copenhagen"))
	if m.Kind != KindYelp || m.BusinessID != "noma-copenhagen" {
		t.Errorf("got kind %q id %q", m.Kind, m.BusinessID)
	}
}
