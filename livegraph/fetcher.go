package livegraph

import (
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
)

// DefaultBaseURL is the OSM API's read-only map export endpoint, returning
// OSM XML for a given bounding box.
const DefaultBaseURL = "https://api.openstreetmap.org/api/0.6/map"

// DefaultMaxRetries bounds the exponential backoff applied to non-404 HTTP
// failures and transport errors.
const DefaultMaxRetries = 5

// BeforeRequestFn customizes a tile fetch's outgoing request (e.g. to set
// a User-Agent, which the OSM API requires of well-behaved clients).
type BeforeRequestFn func(req *fasthttp.Request) error

// TileFetcher downloads a tile's OSM XML body over HTTP, retrying
// transient failures with exponential backoff and treating 404 as an
// empty tile.
type TileFetcher struct {
	httpClient      *fasthttp.Client
	baseURL         string
	maxRetries      int
	beforeRequestFn BeforeRequestFn
}

// NewTileFetcher constructs a TileFetcher against baseURL (DefaultBaseURL
// if empty).
func NewTileFetcher(baseURL string, opts ...FetcherOption) *TileFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	f := &TileFetcher{
		httpClient: &fasthttp.Client{Name: "osmroute-livegraph"},
		baseURL:    baseURL,
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// FetcherOption configures a TileFetcher.
type FetcherOption func(*TileFetcher)

// WithBeforeRequest installs a hook invoked on every outgoing request
// before it is sent.
func WithBeforeRequest(fn BeforeRequestFn) FetcherOption {
	return func(f *TileFetcher) { f.beforeRequestFn = fn }
}

// WithFetcherMaxRetries overrides DefaultMaxRetries.
func WithFetcherMaxRetries(n int) FetcherOption {
	return func(f *TileFetcher) { f.maxRetries = n }
}

// WithHTTPClient overrides the underlying *fasthttp.Client (tests inject a
// fake via its Dial hook).
func WithHTTPClient(c *fasthttp.Client) FetcherOption {
	return func(f *TileFetcher) { f.httpClient = c }
}

// Fetch downloads t's OSM XML body and returns it with the response's ETag
// (empty if none). A 404 response yields (nil, "", nil) — an empty tile —
// rather than an error.
func (f *TileFetcher) Fetch(t Tile) ([]byte, string, error) {
	south, west, north, east := t.BoundingBox()
	url := fmt.Sprintf("%s?bbox=%f,%f,%f,%f", f.baseURL, west, south, east, north)

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	if f.beforeRequestFn != nil {
		if err := f.beforeRequestFn(req); err != nil {
			return nil, "", fmt.Errorf("%w: before-request hook: %v", ErrFetchFailed, err)
		}
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	wait := 100 * time.Millisecond
	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		resp.Reset()
		err := f.httpClient.Do(req, resp)
		if err == nil {
			switch {
			case resp.StatusCode() == fasthttp.StatusNotFound:
				return nil, "", nil
			case resp.StatusCode() == fasthttp.StatusOK:
				body := append([]byte(nil), resp.Body()...)
				etag := string(resp.Header.Peek("ETag"))

				return body, etag, nil
			default:
				lastErr = fmt.Errorf("unexpected status %d", resp.StatusCode())
			}
		} else {
			lastErr = err
		}

		if attempt < f.maxRetries {
			time.Sleep(wait)
			wait *= 2
		}
	}

	return nil, "", fmt.Errorf("%w: %s: %v", ErrFetchFailed, t, lastErr)
}
