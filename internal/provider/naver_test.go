package provider_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/placebridge/internal/models"
	"github.com/UnknownOlympus/placebridge/internal/provider"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func respond(status int, contentType, body string) *http.Response {
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}

	return &http.Response{StatusCode: status, Header: header, Body: io.NopCloser(bytes.NewBufferString(body))}
}

const naverRichPage = `<html><script>window.__APOLLO_STATE__ = {"PlaceSummary:1":` +
	`{"id":11491438,"name":"스타벅스 강남점","category":"카페","address":"역삼동 825",` +
	`"roadAddress":"서울 강남구 강남대로  390","x":"127.02","distance":"1km","latitude":37.4979,"longitude":127.0276},` +
	`"PlaceSummary:2":{"id":22,"name":"A\u0026B","category":"","address":"부산 해운대구 우동 1","roadAddress":"",` +
	`"latitude":35.16,"longitude":129.16},` +
	`"PlaceSummary:3":{"id":11491438,"name":"dup","category":"","address":"","roadAddress":"","latitude":1,"longitude":2}}` +
	`</script><a href="https://m.place.naver.com/place/999/home">x</a></html>`

func TestParseNaverSearchPage(t *testing.T) {
	t.Run("rich results", func(t *testing.T) {
		got := provider.ParseNaverSearchPage(naverRichPage)

		want := []models.PlaceInfo{
			{
				ID: "11491438", Name: "스타벅스 강남점", Address: "서울 강남구 강남대로 390",
				Lat: models.Ptr(37.4979), Lng: models.Ptr(127.0276),
			},
			{ID: "22", Name: "A&B", Address: "부산 해운대구 우동 1", Lat: models.Ptr(35.16), Lng: models.Ptr(129.16)},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ParseNaverSearchPage() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("falls back to place links", func(t *testing.T) {
		page := `<a href="https://m.place.naver.com/place/31/home">a</a>` +
			`<a href="https://m.place.naver.com/place/32/home">b</a>` +
			`<a href="https://m.place.naver.com/place/31/home">again</a>`

		got := provider.ParseNaverSearchPage(page)

		assert.Equal(t, []models.PlaceInfo{{ID: "31"}, {ID: "32"}}, got)
	})

	t.Run("nothing recognisable", func(t *testing.T) {
		assert.Empty(t, provider.ParseNaverSearchPage(""))
		assert.Empty(t, provider.ParseNaverSearchPage("<html><body>검색결과가 없습니다</body></html>"))
	})
}

func TestNaverProvider_Search(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("successful search", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Contains(t, req.URL.String(), provider.NaverSearchURL)
				assert.Equal(t, "스타벅스 강남", req.URL.Query().Get("query"))
				assert.Equal(t, "https://map.naver.com/", req.Header.Get("Referer"))
				assert.Contains(t, req.Header.Get("Accept"), "text/html")

				return respond(http.StatusOK, "text/html; charset=utf-8", naverRichPage), nil
			},
		}

		places, err := provider.NewNaverProvider(mockClient, logger).Search(ctx, "스타벅스 강남")

		require.NoError(t, err)
		require.Len(t, places, 2)
		assert.Equal(t, "11491438", places[0].ID)
	})

	t.Run("declared EUC-KR page is decoded", func(t *testing.T) {
		page, err := korean.EUCKR.NewEncoder().String(naverRichPage)
		require.NoError(t, err)
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return respond(http.StatusOK, "text/html; charset=EUC-KR", page), nil
			},
		}

		places, err := provider.NewNaverProvider(mockClient, logger).Search(ctx, "스타벅스")

		require.NoError(t, err)
		require.NotEmpty(t, places)
		assert.Equal(t, "스타벅스 강남점", places[0].Name)
	})

	t.Run("empty page is zero results", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return respond(http.StatusOK, "", ""), nil
			},
		}

		places, err := provider.NewNaverProvider(mockClient, logger).Search(ctx, "nothing")

		require.NoError(t, err)
		assert.Empty(t, places)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return respond(http.StatusServiceUnavailable, "text/html", "busy"), nil
			},
		}

		places, err := provider.NewNaverProvider(mockClient, logger).Search(ctx, "x")

		require.ErrorIs(t, err, provider.ErrSearchFailed)
		require.Nil(t, places)
		assert.Contains(t, err.Error(), "status 503")
	})

	t.Run("HTTP client returns error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		places, err := provider.NewNaverProvider(mockClient, logger).Search(ctx, "x")

		require.ErrorIs(t, err, assert.AnError)
		require.Nil(t, places)
		assert.Contains(t, err.Error(), "failed to execute naver search request")
	})
}
