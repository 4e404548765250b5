package fetcher

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/nao1215/schoolscan/internal/model"
)

const (
	// DefaultTimeout bounds a whole fetch, body included.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "schoolscan/1.0 (+https://github.com/nao1215/schoolscan)"

	// DefaultMaxBodySize is the number of body bytes read before the rest is
	// discarded.
	DefaultMaxBodySize int64 = 10 * 1024 * 1024
)

// Fetcher downloads a page and extracts assessment details from it.
//
// Design decision: the timeout is applied through the request context
// rather than http.Client.Timeout so that a caller-supplied client (tests,
// proxies) keeps working unchanged.
type Fetcher struct {
	// client performs the request.
	client *http.Client

	// timeout bounds the request. Zero disables the bound.
	timeout time.Duration

	// userAgent is the User-Agent header to use.
	userAgent string

	// maxBodySize limits how much of the response body is parsed.
	maxBodySize int64

	// marker is the class selecting elements.
	marker string

	// tag optionally restricts matches to one element name.
	tag string

	// logger receives debug output.
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithTimeout sets the fetch timeout. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the maximum number of body bytes parsed.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// WithMarker sets the class that selects elements.
func WithMarker(marker string) Option {
	return func(f *Fetcher) {
		if marker != "" {
			f.marker = marker
		}
	}
}

// WithTag restricts matches to elements with the given tag name.
func WithTag(tag string) Option {
	return func(f *Fetcher) {
		f.tag = tag
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New creates a Fetcher with the given options.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:      http.DefaultClient,
		timeout:     DefaultTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		marker:      DefaultMarker,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Marker returns the class used to select elements.
func (f *Fetcher) Marker() string {
	return f.marker
}

// Fetch retrieves pageURL and returns the text of every marked element.
// On failure the returned data is nil and the error is a *NetworkError.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (model.ExtractedWebData, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	body, err := f.get(ctx, pageURL)
	if err != nil {
		return nil, &NetworkError{URL: pageURL, Err: err}
	}

	data, err := Extract(bytes.NewReader(body), f.marker, f.tag)
	if err != nil {
		return nil, &NetworkError{URL: pageURL, Err: err}
	}

	f.logger.Debug("extracted web data",
		"url", pageURL,
		"marker", f.marker,
		"matches", data.Len(),
	)
	return data, nil
}

// get performs the request and returns the (possibly truncated) body of an
// HTML response.
func (f *Fetcher) get(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	f.logger.Debug("fetching page", "url", pageURL)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, err
	}

	if !isHTML(resp.Header.Get("Content-Type"), body) {
		return nil, ErrNotHTML
	}
	return body, nil
}

// isHTML reports whether a response is an HTML document. The body is
// sniffed when the server sends no Content-Type.
func isHTML(contentType string, body []byte) bool {
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
