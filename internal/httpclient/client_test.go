package httpclient_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/UnknownOlympus/placebridge/internal/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedirectServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/short", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Header.Get("User-Agent")))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func TestNew(t *testing.T) {
	srv := newRedirectServer(t)

	t.Run("follows redirects by default", func(t *testing.T) {
		client := httpclient.New(httpclient.Options{Timeout: 5 * time.Second})
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/short", nil)
		require.NoError(t, err)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body bytes.Buffer
		_, err = body.ReadFrom(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, httpclient.DefaultUserAgent, body.String())
	})

	t.Run("returns the redirect when asked to", func(t *testing.T) {
		client := httpclient.New(httpclient.Options{UserAgent: "test-agent"})
		ctx := httpclient.WithoutRedirects(context.Background())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/short", nil)
		require.NoError(t, err)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/final", resp.Header.Get("Location"))
	})

	t.Run("request headers win over defaults", func(t *testing.T) {
		var trace bytes.Buffer
		client := httpclient.New(httpclient.Options{UserAgent: "configured", Trace: &trace})
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/final", nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "explicit")

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var body bytes.Buffer
		_, err = body.ReadFrom(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "explicit", body.String())
		assert.Contains(t, trace.String(), "> GET /final")
		assert.Contains(t, trace.String(), "< RESPONSE:")
	})
}
