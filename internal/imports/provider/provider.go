// Package provider classifies validated URLs into known spot providers and
// pulls provider-specific identifiers out of them. Matching is pure string
// work over the URL; it never touches the network and never fails.
package provider

import (
	"net/url"
	"regexp"
	"strings"
)

// Kind identifies which provider a URL belongs to.
type Kind string

const (
	KindGoogleMaps  Kind = "google_maps"
	KindYelp        Kind = "yelp"
	KindOpenTable   Kind = "opentable"
	KindTripAdvisor Kind = "tripadvisor"
	KindGeneric     Kind = "generic"
)

// Match is the classification result. Exactly one Kind is set per match;
// identifier fields are populated only for the matched kind and stay empty
// when pattern extraction finds nothing. A recognized provider with no
// extractable identifier is still a valid match.
type Match struct {
	Kind Kind
	URL  *url.URL

	// google_maps
	PlaceID string
	CID     string
	// yelp
	BusinessID string
	// opentable
	RestaurantID   string
	RestaurantSlug string
	// tripadvisor
	LocationID string
}

var (
	dataPlaceIDRe     = regexp.MustCompile(`!1s(ChI[0-9A-Za-z_-]+)`)
	opentableIDRe     = regexp.MustCompile(`^/restaurant/profile/(\d+)(?:/|$)`)
	opentableSlugRe   = regexp.MustCompile(`^/r/([^/]+)`)
	tripadvisorInfix  = regexp.MustCompile(`-d(\d+)-`)
	tripadvisorSuffix = regexp.MustCompile(`_d(\d+)\.html$`)
)

// Find classifies u. It is total: any well-formed URL yields exactly one
// match, falling through to KindGeneric when no provider pattern applies.
func Find(u *url.URL) Match {
	host := normalizeHost(u.Hostname())
	path := u.Path

	switch {
	case isGoogleMaps(host, path):
		m := Match{Kind: KindGoogleMaps, URL: u}
		m.PlaceID, m.CID = googleIDs(u)
		return m
	case isYelp(host):
		return Match{Kind: KindYelp, URL: u, BusinessID: yelpBusinessID(path)}
	case isOpenTable(host):
		m := Match{Kind: KindOpenTable, URL: u}
		m.RestaurantID, m.RestaurantSlug = opentableIDs(path)
		return m
	case isTripAdvisor(host):
		return Match{Kind: KindTripAdvisor, URL: u, LocationID: tripadvisorLocationID(path)}
	}

	return Match{Kind: KindGeneric, URL: u}
}

func normalizeHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}

func isGoogleMaps(host, path string) bool {
	if host == "maps.app.goo.gl" {
		return true
	}
	if strings.HasPrefix(host, "maps.") {
		return true
	}
	googleHost := host == "google.com" || strings.HasSuffix(host, ".google.com")
	return googleHost && strings.HasPrefix(path, "/maps")
}

func isYelp(host string) bool {
	return host == "yelp.com" || strings.HasPrefix(host, "yelp.") || strings.Contains(host, ".yelp.")
}

func isOpenTable(host string) bool {
	return host == "opentable.com" || strings.HasSuffix(host, ".opentable.com")
}

func isTripAdvisor(host string) bool {
	return host == "tripadvisor.com" || strings.HasSuffix(host, ".tripadvisor.com")
}

// googleIDs extracts a place id and, separately, a cid. The place id is the
// first hit among the place_id parameter, a q=place_id:<id> value, and a
// !1s<id> data segment carrying an opaque ChI-prefixed id. The cid is its
// own identifier, not a place-id fallback.
func googleIDs(u *url.URL) (placeID, cid string) {
	q := u.Query()
	cid = q.Get("cid")

	if v := q.Get("place_id"); v != "" {
		return v, cid
	}
	if v, ok := strings.CutPrefix(q.Get("q"), "place_id:"); ok && v != "" {
		return v, cid
	}
	if m := dataPlaceIDRe.FindStringSubmatch(u.Path); m != nil {
		return m[1], cid
	}
	return "", cid
}

func yelpBusinessID(path string) string {
	rest, ok := strings.CutPrefix(path, "/biz/")
	if !ok {
		return ""
	}
	id, _, _ := strings.Cut(rest, "/")
	return id
}

func opentableIDs(path string) (restaurantID, slug string) {
	if m := opentableIDRe.FindStringSubmatch(path); m != nil {
		restaurantID = m[1]
	}
	if m := opentableSlugRe.FindStringSubmatch(path); m != nil {
		slug = m[1]
	}
	return restaurantID, slug
}

func tripadvisorLocationID(path string) string {
	if m := tripadvisorInfix.FindStringSubmatch(path); m != nil {
		return m[1]
	}
	if m := tripadvisorSuffix.FindStringSubmatch(path); m != nil {
		return m[1]
	}
	return ""
}
