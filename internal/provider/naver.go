package provider

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"regexp"

	"github.com/UnknownOlympus/placebridge/internal/models"
	"github.com/UnknownOlympus/placebridge/internal/textnorm"
	"golang.org/x/net/html/charset"
)

// NaverSearchURL is the Naver Map mobile search page.
const NaverSearchURL = "https://m.map.naver.com/search2/search.naver"

const (
	naverReferer = "https://map.naver.com/"
	htmlAccept   = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
)

// The search page embeds its results as JSON objects inside a script. The rich
// pattern reads one result object; the link pattern only finds detail page ids.
var (
	naverRichRe = regexp.MustCompile(
		`"id":(\d+),"name":"([^"]+)","category":"[^"]*","address":"([^"]*)","roadAddress":"([^"]*)"` +
			`[\s\S]*?"latitude":([0-9.\-]+),"longitude":([0-9.\-]+)`)
	naverPlaceLinkRe = regexp.MustCompile(`https://m\.place\.naver\.com/place/(\d+)/home`)
)

// NaverProvider searches Naver Map by scraping its mobile search page.
type NaverProvider struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the search page
	log     *slog.Logger // Logger for logging operations
}

// NewNaverProvider creates a Naver Map search client.
func NewNaverProvider(client HTTPClient, log *slog.Logger) *NaverProvider {
	return &NaverProvider{client: client, baseURL: NaverSearchURL, log: log}
}

// Search runs a free text search and returns the places found on the result page.
func (np *NaverProvider) Search(ctx context.Context, query string) ([]models.PlaceInfo, error) {
	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	params := reqURL.Query()
	params.Set("query", query)
	reqURL.RawQuery = params.Encode()

	np.log.DebugContext(ctx, "Naver search request URL", "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Referer", naverReferer)
	req.Header.Set("Accept", htmlAccept)

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute naver search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		np.log.ErrorContext(ctx, "Naver search error", "status", resp.StatusCode, "query", query)
		return nil, fmt.Errorf("%w: naver search returned status %d", ErrSearchFailed, resp.StatusCode)
	}

	body, err := decodeBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	page, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	places := ParseNaverSearchPage(string(page))
	np.log.DebugContext(ctx, "Naver search finished", "query", query, "results", len(places))

	return places, nil
}

// decodeBody converts the body to UTF-8 when the response declares another
// charset (older Naver pages are served as EUC-KR). Undeclared bodies are read as is.
func decodeBody(resp *http.Response) (io.Reader, error) {
	contentType := resp.Header.Get("Content-Type")
	if _, params, err := mime.ParseMediaType(contentType); err != nil || params["charset"] == "" {
		return resp.Body, nil
	}

	return charset.NewReader(resp.Body, contentType)
}

// ParseNaverSearchPage extracts places from a Naver search result page, deduplicated
// by id in order of appearance. When no full result object is present it falls back
// to detail page links, which only carry the id.
func ParseNaverSearchPage(page string) []models.PlaceInfo {
	var out []models.PlaceInfo
	seen := make(map[string]bool)

	for _, m := range naverRichRe.FindAllStringSubmatch(page, -1) {
		id := m[1]
		if seen[id] {
			continue
		}
		seen[id] = true

		address := m[4]
		if address == "" {
			address = m[3]
		}
		out = append(out, models.PlaceInfo{
			ID:      id,
			Name:    textnorm.UnescapeJSONText(m[2]),
			Address: textnorm.NormalizeSpace(textnorm.UnescapeJSONText(address)),
			Lat:     textnorm.ParseNumber(m[5]),
			Lng:     textnorm.ParseNumber(m[6]),
		})
	}
	if len(out) > 0 {
		return out
	}

	for _, m := range naverPlaceLinkRe.FindAllStringSubmatch(page, -1) {
		id := m[1]
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, models.PlaceInfo{ID: id})
	}

	return out
}
