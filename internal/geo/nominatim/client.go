// Package nominatim reverse-geocodes coordinates against a Nominatim
// instance. A missing or failed lookup is a normal outcome here, not an
// error: callers get a zero result and carry on with whatever location
// text they already had.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"spots_backend/platform/config"
	"spots_backend/platform/logger"

	"golang.org/x/time/rate"
)

const (
	reverseTimeout = 8 * time.Second

	// DefaultZoom resolves to metro-city granularity. Higher zooms return
	// boroughs and neighborhoods, which is exactly what city grouping must
	// not key on, so treat this as a tuning parameter rather than a detail.
	DefaultZoom = 8
)

// ReverseResult carries the address fields extracted from a reverse lookup.
// All fields empty means "no reverse geocode available".
type ReverseResult struct {
	City         string
	Neighborhood string
	AdminArea    string
	Country      string
	CountryCode  string
	Raw          string
}

// IsZero reports whether the lookup produced nothing usable.
func (r ReverseResult) IsZero() bool {
	return r == ReverseResult{}
}

// ReverseOption tweaks a single lookup.
type ReverseOption func(*reverseParams)

type reverseParams struct {
	zoom int
}

// WithZoom overrides the lookup zoom level. Values outside Nominatim's
// 0-18 range are ignored.
func WithZoom(zoom int) ReverseOption {
	return func(p *reverseParams) {
		if zoom >= 0 && zoom <= 18 {
			p.zoom = zoom
		}
	}
}

// Client is a rate-limited Nominatim reverse-geocoding client. The limiter
// default of 1 rps matches the public instance's usage policy; operators
// running their own instance raise it through config.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	log       *logger.Logger
}

// NewClient creates a client against the configured Nominatim instance.
func NewClient(cfg config.GeocoderConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:   cfg.GetNominatimBaseURL(),
		userAgent: cfg.GetGeocoderUserAgent(),
		client:    &http.Client{Timeout: reverseTimeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.GetGeocoderRateRPS()), 1),
		log:       log,
	}
}

// Reverse looks up the address at the given coordinates. Transport errors,
// timeouts, and non-200 responses all degrade to a zero result; the only
// trace they leave is a log line.
func (c *Client) Reverse(ctx context.Context, lat, lon float64, opts ...ReverseOption) ReverseResult {
	params := reverseParams{zoom: DefaultZoom}
	for _, opt := range opts {
		opt(&params)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return ReverseResult{}
	}

	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("format", "json")
	query.Set("addressdetails", "1")
	query.Set("zoom", strconv.Itoa(params.zoom))

	reqURL := fmt.Sprintf("%s/reverse?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return ReverseResult{}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		if c.log != nil {
			c.log.UpstreamError("nominatim", err)
		}
		return ReverseResult{}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		if c.log != nil {
			c.log.Warn("nominatim reverse lookup rejected", "status", resp.StatusCode)
		}
		return ReverseResult{}
	}

	var payload reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if c.log != nil {
			c.log.UpstreamError("nominatim", err)
		}
		return ReverseResult{}
	}
	if payload.Error != "" {
		// Nominatim reports "Unable to geocode" with a 200
		return ReverseResult{}
	}

	return ReverseResult{
		City:         firstNonEmpty(payload.Address.City, payload.Address.Town, payload.Address.Municipality, payload.Address.Village, payload.Address.Hamlet),
		Neighborhood: firstNonEmpty(payload.Address.Neighbourhood, payload.Address.Suburb, payload.Address.Quarter),
		AdminArea:    firstNonEmpty(payload.Address.State, payload.Address.County, payload.Address.Region),
		Country:      payload.Address.Country,
		CountryCode:  payload.Address.CountryCode,
		Raw:          payload.DisplayName,
	}
}

// reverseResponse mirrors the relevant parts of the OSM reverse payload.
type reverseResponse struct {
	DisplayName string           `json:"display_name"`
	Address     nominatimAddress `json:"address"`
	Error       string           `json:"error"`
}

type nominatimAddress struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Municipality string `json:"municipality"`
	Village      string `json:"village"`
	Hamlet       string `json:"hamlet"`

	Neighbourhood string `json:"neighbourhood"`
	Suburb        string `json:"suburb"`
	Quarter       string `json:"quarter"`

	State  string `json:"state"`
	County string `json:"county"`
	Region string `json:"region"`

	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
}

// firstNonEmpty returns the first present value; each logical field falls
// through its own ordered list of address-component keys independently.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
