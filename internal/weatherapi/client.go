package weatherapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/five82/nimbus/internal/icons"
)

// API defines the collaborator calls the session controller makes.
// It is implemented by *Client and replaced by fakes in tests.
type API interface {
	Autocomplete(ctx context.Context, query string) ([]Suggestion, error)
	PlaceDetails(ctx context.Context, placeID string) (PlaceDetails, error)
	CurrentWeather(ctx context.Context, lat, lng float64) (json.RawMessage, error)
	DailyForecast(ctx context.Context, lat, lng float64) (json.RawMessage, error)
	HourlyForecast(ctx context.Context, lat, lng float64) (json.RawMessage, error)
	Favorites(ctx context.Context) ([]Favorite, error)
	AddFavorite(ctx context.Context, placeID, name string) error
	RemoveFavorite(ctx context.Context, placeID string) error
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the weather collaborator over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	log       *zap.SugaredLogger
	userAgent string
}

const (
	defaultAPIBase   = "127.0.0.1:5000"
	defaultUserAgent = "nimbus/0.1"
	requestTimeout   = 10 * time.Second
	maxBodyBytes     = 4 << 20
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero or negative
// disables the limiter.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		burst := int(perSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger routes request diagnostics to log.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for the collaborator at apiBase
// (host:port or a full URL).
func NewClient(apiBase string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		log:       zap.NewNop().Sugar(),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the collaborator root, used for icon URLs.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL.String()
}

// Autocomplete returns place predictions for query.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]Suggestion, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("query", query)
	rel := &url.URL{Path: "/autocomplete", RawQuery: values.Encode()}
	var payload AutocompleteResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	return payload.Predictions, nil
}

// PlaceDetails resolves a place id to a name and coordinates.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (PlaceDetails, error) {
	if c == nil {
		return PlaceDetails{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("place_id", placeID)
	rel := &url.URL{Path: "/place_details", RawQuery: values.Encode()}
	var payload PlaceDetails
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return PlaceDetails{}, err
	}
	return payload, nil
}

// CurrentWeather returns the raw current-conditions payload.
func (c *Client) CurrentWeather(ctx context.Context, lat, lng float64) (json.RawMessage, error) {
	return c.weather(ctx, "/weather/current", lat, lng)
}

// DailyForecast returns the raw daily forecast payload.
func (c *Client) DailyForecast(ctx context.Context, lat, lng float64) (json.RawMessage, error) {
	return c.weather(ctx, "/weather/daily", lat, lng)
}

// HourlyForecast returns the raw hourly forecast payload.
func (c *Client) HourlyForecast(ctx context.Context, lat, lng float64) (json.RawMessage, error) {
	return c.weather(ctx, "/weather/hourly", lat, lng)
}

func (c *Client) weather(ctx context.Context, path string, lat, lng float64) (json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	rel := &url.URL{Path: path, RawQuery: values.Encode()}
	var payload json.RawMessage
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Favorites returns the saved places.
func (c *Client) Favorites(ctx context.Context) ([]Favorite, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Favorite
	if err := c.do(ctx, http.MethodGet, "/favorites/get", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// AddFavorite saves a place.
func (c *Client) AddFavorite(ctx context.Context, placeID, name string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("place_id", placeID)
	values.Set("name", name)
	rel := &url.URL{Path: "/favorites/set", RawQuery: values.Encode()}
	return c.doURL(ctx, http.MethodPost, rel, nil)
}

// RemoveFavorite deletes a saved place.
func (c *Client) RemoveFavorite(ctx context.Context, placeID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("place_id", placeID)
	rel := &url.URL{Path: "/favorites/delete", RawQuery: values.Encode()}
	return c.doURL(ctx, http.MethodPost, rel, nil)
}

// IconURL returns the collaborator URL for a canonical icon.
func (c *Client) IconURL(name string, dark bool) string {
	return icons.Reference{Name: name}.URL(c.BaseURL(), dark)
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, dest)
}

// doURL performs one request. Any JSON object body carrying a non-null
// "error" member becomes an *APIError regardless of status; network,
// limiter and decode failures become a *TransportError.
func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	path := rel.Path
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &TransportError{Path: path, Err: fmt.Errorf("rate limit: %w", err)}
		}
	}

	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return &TransportError{Path: path, Err: fmt.Errorf("create request: %w", err)}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warnw("request failed", "path", path, "request_id", requestID, "error", err)
		return &TransportError{Path: path, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Path: path, Err: fmt.Errorf("read response: %w", err)}
	}
	c.log.Debugw("request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(started),
	)

	if msg, ok := errorField(body); ok {
		return &APIError{Path: path, Status: resp.StatusCode, Message: msg}
	}
	if resp.StatusCode >= 400 {
		return &APIError{Path: path, Status: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return &TransportError{Path: path, Err: errors.New("decode response: empty body")}
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return &TransportError{Path: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
