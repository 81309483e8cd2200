package httpclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

// RedirectResolver walks redirect chains one hop at a time so that every
// intermediate URL can be inspected. It holds no state between calls.
type RedirectResolver struct {
	client HTTPClient
	log    *slog.Logger
}

// NewRedirectResolver creates a resolver issuing requests through client.
func NewRedirectResolver(client HTTPClient, log *slog.Logger) *RedirectResolver {
	return &RedirectResolver{client: client, log: log}
}

// Resolve requests startURL and follows Location headers for at most maxHops
// requests. It returns every URL it requested, in order, starting with startURL.
// The walk stops at the first non-3xx response or a 3xx without a usable Location.
func (r *RedirectResolver) Resolve(ctx context.Context, startURL string, maxHops int, referer string) ([]string, error) {
	chain := make([]string, 0, maxHops)
	current := startURL
	ctx = WithoutRedirects(ctx)

	for i := 0; i < maxHops; i++ {
		chain = append(chain, current)

		next, err := r.hop(ctx, current, referer)
		if err != nil {
			return chain, err
		}
		if next == "" {
			break
		}
		current = next
	}

	r.log.DebugContext(ctx, "Redirect chain resolved", "start", startURL, "hops", len(chain))

	return chain, nil
}

// hop issues one request and returns the absolute redirect target, or "" when the chain ends.
func (r *RedirectResolver) hop(ctx context.Context, current, referer string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, current, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create redirect request: %w", err)
	}
	if referer != "" {
		req.Header.Set("Referer", referer)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to follow redirect %s: %w", current, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusMultipleChoices || resp.StatusCode >= http.StatusBadRequest {
		return "", nil
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", nil
	}

	base, err := url.Parse(current)
	if err != nil {
		return "", nil
	}
	next, err := base.Parse(location)
	if err != nil {
		r.log.WarnContext(ctx, "Unusable redirect location", "url", current, "location", location)
		return "", nil
	}

	return next.String(), nil
}
