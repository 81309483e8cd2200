package httpclient

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"
)

// LoggingRoundTripper dumps every request and response to Writer.
type LoggingRoundTripper struct {
	Transport http.RoundTripper
	Writer    io.Writer
	DumpBody  bool
}

// abbreviate prefixes dump lines and cuts very long dumps.
func abbreviate(dump []byte, prefix rune) string {
	const maxLines, maxChars = 256, 512

	lines := strings.Split(string(dump), "\n")
	if len(lines) > maxLines {
		lines = append(lines[:maxLines], "…")
	}
	for i, line := range lines {
		if len(line) > maxChars {
			line = line[:maxChars] + "…"
		}
		lines[i] = fmt.Sprintf("%c %s", prefix, line)
	}

	return strings.Join(lines, "\n") + "\n"
}

// RoundTrip implements the http.RoundTripper interface.
func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	dump, err := httputil.DumpRequestOut(req, false)
	if err != nil {
		return nil, fmt.Errorf("tracing HTTP request: %w", err)
	}
	if _, err = io.WriteString(t.Writer, abbreviate(dump, '>')); err != nil {
		return nil, fmt.Errorf("tracing HTTP request: %w", err)
	}

	start := time.Now()
	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	dump, err = httputil.DumpResponse(resp, t.DumpBody)
	if err != nil {
		return nil, fmt.Errorf("tracing HTTP response: %w", err)
	}
	_, err = fmt.Fprintf(t.Writer, "< RESPONSE: [%v]\n%s", time.Since(start), abbreviate(dump, '<'))
	if err != nil {
		return nil, fmt.Errorf("tracing HTTP response: %w", err)
	}

	return resp, nil
}

// DefaultHeadersRoundTripper sets headers the request did not set itself.
type DefaultHeadersRoundTripper struct {
	Transport http.RoundTripper
	Headers   map[string]string
}

// RoundTrip implements the http.RoundTripper interface.
func (t *DefaultHeadersRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.Headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}

	return t.Transport.RoundTrip(req)
}
