// Package copy owns the notification copy templates: built-in defaults,
// optionally overridden by a remote JSON document that product can edit
// without a deploy. The remote copy is cached in memory and refreshed
// lazily after a TTL.
package copy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"spots_backend/platform/config"
	"spots_backend/platform/logger"
)

const fetchTimeout = 5 * time.Second

// Templates is the copy set for spot-import notifications. Placeholders
// use {{name}} syntax; Render substitutes them.
type Templates struct {
	ImportCompletedTitle string `json:"importCompletedTitle"`
	ImportCompletedBody  string `json:"importCompletedBody"`
}

// Defaults is the built-in copy used when no remote document is configured
// or reachable.
func Defaults() Templates {
	return Templates{
		ImportCompletedTitle: "New spot ready: {{spot}}",
		ImportCompletedBody:  "{{spot}} in {{city}} was imported and is ready to review.",
	}
}

type snapshot struct {
	templates Templates
	fetchedAt time.Time
}

// Service caches the copy templates. The cache lifecycle is populate on
// first use, refresh after the TTL, overwrite in place. The overwrite is an
// atomic pointer swap: concurrent refreshes at worst fetch twice and the
// last writer wins, which is harmless because every fetch of the same
// document yields the same copy.
type Service struct {
	url     string
	ttl     time.Duration
	client  *http.Client
	log     *logger.Logger
	now     func() time.Time
	current atomic.Pointer[snapshot]
}

func NewService(cfg config.NotifyCopyConfig, log *logger.Logger) *Service {
	return &Service{
		url:    cfg.GetNotifyCopyURL(),
		ttl:    cfg.GetNotifyCopyTTL(),
		client: &http.Client{Timeout: fetchTimeout},
		log:    log,
		now:    time.Now,
	}
}

// Current returns the active copy templates, refreshing from the remote
// document when the cached set is older than the TTL. A failed refresh
// serves the stale copy and re-arms the TTL so the remote is not hammered
// on every notification.
func (s *Service) Current(ctx context.Context) Templates {
	snap := s.current.Load()
	if snap != nil && s.now().Sub(snap.fetchedAt) < s.ttl {
		return snap.templates
	}

	if s.url == "" {
		templates := Defaults()
		s.current.Store(&snapshot{templates: templates, fetchedAt: s.now()})
		return templates
	}

	fetched, err := s.fetch(ctx)
	if err != nil {
		if s.log != nil {
			s.log.UpstreamError("notify-copy", err)
		}
		if snap != nil {
			s.current.Store(&snapshot{templates: snap.templates, fetchedAt: s.now()})
			return snap.templates
		}
		templates := Defaults()
		s.current.Store(&snapshot{templates: templates, fetchedAt: s.now()})
		return templates
	}

	s.current.Store(&snapshot{templates: fetched, fetchedAt: s.now()})
	return fetched
}

// fetch loads the remote copy document. Fields missing from the document
// keep their default text.
func (s *Service) fetch(ctx context.Context) (Templates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Templates{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Templates{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return Templates{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	templates := Defaults()
	if err := json.NewDecoder(resp.Body).Decode(&templates); err != nil {
		return Templates{}, err
	}
	return templates, nil
}

// Render substitutes {{name}} placeholders in a template.
func Render(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{{"+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
