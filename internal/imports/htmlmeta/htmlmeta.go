// Package htmlmeta fetches a page and reads the metadata embedded in its
// head: OpenGraph properties, the document title, the meta description.
// It never parses page bodies beyond that.
package htmlmeta

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"spots_backend/platform/logger"

	"github.com/PuerkitoBio/goquery"
)

const (
	fetchTimeout = 10 * time.Second
	maxBodyBytes = 2 << 20 // pages are read at most this far
)

// Metadata is what a page says about itself.
type Metadata struct {
	Title       string
	SiteName    string
	Description string
	ImageURL    string
	Latitude    *float64
	Longitude   *float64
}

// IsEmpty reports whether the page exposed no usable metadata at all.
func (m Metadata) IsEmpty() bool {
	return m.Title == "" && m.SiteName == "" && m.Description == "" &&
		m.ImageURL == "" && m.Latitude == nil && m.Longitude == nil
}

// Fetcher retrieves page metadata over HTTP.
type Fetcher struct {
	client    *http.Client
	userAgent string
	log       *logger.Logger
}

// NewFetcher creates a fetcher identifying itself with the given User-Agent.
func NewFetcher(userAgent string, log *logger.Logger) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: fetchTimeout},
		userAgent: userAgent,
		log:       log,
	}
}

// Fetch downloads u and parses its metadata. Non-200 responses and
// non-HTML content are errors; the caller decides how to degrade.
func (f *Fetcher) Fetch(ctx context.Context, u *url.URL) (Metadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Metadata{}, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if f.log != nil {
			f.log.UpstreamError("htmlmeta", err)
		}
		return Metadata{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Metadata{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return Metadata{}, fmt.Errorf("unsupported content type %q", ct)
	}

	return Parse(io.LimitReader(resp.Body, maxBodyBytes))
}

// Parse reads metadata out of an HTML document.
func Parse(r io.Reader) (Metadata, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Metadata{}, err
	}

	md := Metadata{
		Title:       metaContent(doc, `meta[property="og:title"]`, `meta[name="twitter:title"]`),
		SiteName:    metaContent(doc, `meta[property="og:site_name"]`),
		Description: metaContent(doc, `meta[property="og:description"]`, `meta[name="description"]`),
		ImageURL:    metaContent(doc, `meta[property="og:image"]`, `meta[name="twitter:image"]`),
	}
	if md.Title == "" {
		md.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	md.Latitude = metaFloat(doc, `meta[property="place:location:latitude"]`, `meta[property="og:latitude"]`)
	md.Longitude = metaFloat(doc, `meta[property="place:location:longitude"]`, `meta[property="og:longitude"]`)
	// a coordinate only makes sense as a pair
	if md.Latitude == nil || md.Longitude == nil {
		md.Latitude, md.Longitude = nil, nil
	}

	return md, nil
}

func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if v, ok := doc.Find(sel).First().Attr("content"); ok {
			if t := strings.TrimSpace(v); t != "" {
				return t
			}
		}
	}
	return ""
}

func metaFloat(doc *goquery.Document, selectors ...string) *float64 {
	raw := metaContent(doc, selectors...)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
