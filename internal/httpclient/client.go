// Package httpclient builds the outbound HTTP client shared by the map providers
// and follows short link redirect chains.
package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultUserAgent is sent when no user agent is configured. Both map sites
// serve reduced pages to unknown agents.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

const maxRedirects = 10

// Options configures the outbound client. A zero Timeout means no timeout.
type Options struct {
	Timeout   time.Duration // Timeout bounds a whole request including the body read.
	UserAgent string        // UserAgent overrides DefaultUserAgent.
	Trace     io.Writer     // Trace receives request/response dumps when not nil.
	TraceBody bool          // TraceBody includes response bodies in the dumps.
}

type contextKey string

const noRedirectKey contextKey = "noRedirect"

// WithoutRedirects marks requests made with the returned context so the client
// hands back 3xx responses instead of following them.
func WithoutRedirects(ctx context.Context) context.Context {
	return context.WithValue(ctx, noRedirectKey, true)
}

// ErrTooManyRedirects is returned when a followed redirect chain gets too long.
var ErrTooManyRedirects = errors.New("stopped after too many redirects")

func checkRedirect(req *http.Request, via []*http.Request) error {
	if noRedirect, ok := req.Context().Value(noRedirectKey).(bool); ok && noRedirect {
		return http.ErrUseLastResponse
	}
	if len(via) >= maxRedirects {
		return ErrTooManyRedirects
	}

	return nil
}

// New creates an HTTP client with the given policy. Requests follow redirects
// unless their context was derived with WithoutRedirects.
func New(opts Options) *http.Client {
	userAgent := DefaultUserAgent
	if opts.UserAgent != "" {
		userAgent = opts.UserAgent
	}

	var transport http.RoundTripper = http.DefaultTransport.(*http.Transport).Clone()
	if opts.Trace != nil {
		transport = &LoggingRoundTripper{Transport: transport, Writer: opts.Trace, DumpBody: opts.TraceBody}
	}

	return &http.Client{
		Timeout:       opts.Timeout,
		CheckRedirect: checkRedirect,
		Transport: &DefaultHeadersRoundTripper{
			Transport: transport,
			Headers:   map[string]string{"User-Agent": userAgent},
		},
	}
}
