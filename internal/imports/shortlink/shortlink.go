// Package shortlink expands known URL-shortener links to their final
// destination so the rest of the pipeline sees the real provider URL.
package shortlink

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"spots_backend/internal/imports/urlcheck"
	"spots_backend/platform/logger"
)

const resolveTimeout = 5 * time.Second

// defaultShorteners is the fixed set of hosts treated as shorteners.
// Anything else is returned untouched without a network call.
var defaultShorteners = map[string]struct{}{
	"goo.gl":          {},
	"maps.app.goo.gl": {},
	"g.co":            {},
	"bit.ly":          {},
	"tinyurl.com":     {},
	"t.co":            {},
	"is.gd":           {},
	"ow.ly":           {},
	"yelp.to":         {},
}

// Resolver follows shortener redirects with a bounded budget.
type Resolver struct {
	client     *http.Client
	shorteners map[string]struct{}
	log        *logger.Logger
}

// NewResolver creates a resolver with the default shortener set and timeout.
func NewResolver(log *logger.Logger) *Resolver {
	return &Resolver{
		client:     &http.Client{Timeout: resolveTimeout},
		shorteners: defaultShorteners,
		log:        log,
	}
}

// Resolve expands u when its host is a known shortener. Transport failures
// and timeouts degrade silently to the original URL so a shortener outage
// never blocks an import. The expanded URL is re-validated before being
// returned; a blocked or invalid destination is the one case that errors.
func (r *Resolver) Resolve(ctx context.Context, u *url.URL) (*url.URL, error) {
	if !r.isShortener(u.Hostname()) {
		return u, nil
	}

	final, err := r.follow(ctx, u)
	if err != nil {
		if r.log != nil {
			r.log.Debug("short link resolution failed",
				"host", u.Hostname(),
				"error", err.Error(),
			)
		}
		return u, nil
	}

	validated, err := urlcheck.Validate(final.String())
	if err != nil {
		return nil, fmt.Errorf("short link destination rejected: %w", err)
	}
	return validated, nil
}

func (r *Resolver) isShortener(host string) bool {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	_, ok := r.shorteners[host]
	return ok
}

// follow issues a HEAD first; shorteners that refuse it get one GET retry.
// The response body is never read — only the post-redirect URL matters.
func (r *Resolver) follow(ctx context.Context, u *url.URL) (*url.URL, error) {
	final, err := r.request(ctx, http.MethodHead, u)
	if err == nil {
		return final, nil
	}
	return r.request(ctx, http.MethodGet, u)
}

func (r *Resolver) request(ctx context.Context, method string, u *url.URL) (*url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return resp.Request.URL, nil
}
