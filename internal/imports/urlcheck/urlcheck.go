// Package urlcheck validates user-supplied URLs before the import pipeline
// touches the network. Checks are pure string inspection: no DNS lookups,
// no outbound requests.
package urlcheck

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var (
	// ErrInvalidURL means the input cannot be parsed as an absolute http URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrBlockedHost means the URL points at a host imports must never fetch.
	ErrBlockedHost = errors.New("blocked host")
)

// blockedHosts are exact hostname matches: loopback, the any-address, and
// cloud metadata endpoints.
var blockedHosts = map[string]struct{}{
	"localhost":                {},
	"127.0.0.1":                {},
	"0.0.0.0":                  {},
	"169.254.169.254":          {},
	"metadata.google.internal": {},
}

// Validate parses raw and rejects URLs the pipeline must not follow.
// It returns ErrInvalidURL for unparseable input and ErrBlockedHost for
// non-http schemes, denylisted hosts, and hostnames that textually look
// like private-range IPs (10/8, 172.16/12, 192.168/16).
//
// The private-range check runs on the literal hostname only. A public name
// resolving to a private address passes; closing that requires resolving
// DNS here, which this check deliberately does not do.
func Validate(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidURL)
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: missing scheme or host", ErrInvalidURL)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("%w: scheme %q not allowed", ErrBlockedHost, u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	if _, denied := blockedHosts[host]; denied {
		return nil, fmt.Errorf("%w: %s", ErrBlockedHost, host)
	}
	if matchesPrivateRange(host) {
		return nil, fmt.Errorf("%w: %s is in a private range", ErrBlockedHost, host)
	}

	return u, nil
}

func matchesPrivateRange(host string) bool {
	if strings.HasPrefix(host, "10.") || strings.HasPrefix(host, "192.168.") {
		return true
	}

	rest, ok := strings.CutPrefix(host, "172.")
	if !ok {
		return false
	}
	second, _, ok := strings.Cut(rest, ".")
	if !ok {
		return false
	}
	n, err := strconv.Atoi(second)
	return err == nil && n >= 16 && n <= 31
}
