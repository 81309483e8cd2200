package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/UnknownOlympus/placebridge/internal/models"
	"github.com/UnknownOlympus/placebridge/internal/textnorm"
)

// Kakao Map endpoints.
const (
	KakaoSearchURL = "https://search.map.kakao.com/mapsearch/map.daum"
	KakaoDetailURL = "https://map.kakao.com/api/place/info"
)

var errInvalidJSON = errors.New("response is not valid JSON")

const (
	kakaoReferer = "https://map.kakao.com/"
	jsonAccept   = "application/json,text/plain,*/*"
)

// kakaoPlace is one entry of the search response "place" array.
type kakaoPlace struct {
	ConfirmID  looseString `json:"confirmid"`
	Name       looseString `json:"name"`
	NewAddress looseString `json:"new_address"`
	Address    looseString `json:"address"`
	Lat        looseString `json:"lat"`
	Lon        looseString `json:"lon"`
}

// kakaoDetail is the "place" object of the place info response.
type kakaoDetail struct {
	ConfirmID     looseString `json:"confirmid"`
	PlaceName     looseString `json:"placename"`
	PlaceNameFull looseString `json:"placenamefull"`
	Region        struct {
		FullName looseString `json:"fullname"`
	} `json:"region"`
	NewAddr struct {
		NewAddrFull looseString `json:"newaddrfull"`
	} `json:"newaddr"`
	AddrDetail looseString `json:"addrdetail"`
	WGS84X     looseString `json:"wgs84x"`
	WGS84Y     looseString `json:"wgs84y"`
}

// KakaoProvider searches Kakao Map and looks up Kakao places by id.
type KakaoProvider struct {
	client    HTTPClient   // HTTP client for making requests
	searchURL string       // Base URL of the search endpoint
	detailURL string       // Base URL of the place info endpoint
	log       *slog.Logger // Logger for logging operations
}

// NewKakaoProvider creates a Kakao Map client.
func NewKakaoProvider(client HTTPClient, log *slog.Logger) *KakaoProvider {
	return &KakaoProvider{client: client, searchURL: KakaoSearchURL, detailURL: KakaoDetailURL, log: log}
}

// get performs a GET with the Kakao headers and returns the body of a 2xx response.
func (kp *KakaoProvider) get(ctx context.Context, base string, params map[string]string) ([]byte, error) {
	reqURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	query := reqURL.Query()
	for k, v := range params {
		query.Set(k, v)
	}
	reqURL.RawQuery = query.Encode()

	kp.log.DebugContext(ctx, "Kakao request URL", "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Referer", kakaoReferer)
	req.Header.Set("Accept", jsonAccept)

	resp, err := kp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute kakao request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		kp.log.ErrorContext(ctx, "Kakao API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: kakao returned status %d", ErrSearchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// Search runs a free text search. Results without a place id are dropped.
func (kp *KakaoProvider) Search(ctx context.Context, query string) ([]models.PlaceInfo, error) {
	body, err := kp.get(ctx, kp.searchURL, map[string]string{"output": "json", "q": query})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(body)) == "" {
		return nil, nil
	}

	places, err := parseKakaoSearch(body)
	if err != nil {
		kp.log.ErrorContext(ctx, "Failed to parse Kakao search response", "error", err, "query", query)
		return nil, fmt.Errorf("%w: failed to decode kakao search response: %w", ErrSearchFailed, err)
	}
	kp.log.DebugContext(ctx, "Kakao search finished", "query", query, "results", len(places))

	return places, nil
}

func parseKakaoSearch(body []byte) ([]models.PlaceInfo, error) {
	if !json.Valid(body) {
		return nil, errInvalidJSON
	}

	// Well formed JSON without a "place" array means no results.
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(envelope["place"], &items); err != nil {
		return nil, nil
	}

	out := make([]models.PlaceInfo, 0, len(items))
	for _, item := range items {
		var place kakaoPlace
		if err := json.Unmarshal(item, &place); err != nil || place.ConfirmID == "" {
			continue
		}

		address := place.NewAddress
		if address == "" {
			address = place.Address
		}
		out = append(out, models.PlaceInfo{
			ID:      place.ConfirmID.String(),
			Name:    textnorm.NormalizeSpace(place.Name.String()),
			Address: textnorm.NormalizeSpace(address.String()),
			Lat:     textnorm.ParseNumber(place.Lat.String()),
			Lng:     textnorm.ParseNumber(place.Lon.String()),
		})
	}

	return out, nil
}

// FetchDetail looks a place up by id. Unknown ids, empty bodies and bodies that
// cannot be decoded yield nil without error; the place info is only an enrichment.
func (kp *KakaoProvider) FetchDetail(ctx context.Context, id string) (*models.PlaceInfo, error) {
	body, err := kp.get(ctx, kp.detailURL, map[string]string{"output": "json", "confirmId": id})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(body)) == "" {
		return nil, nil
	}

	var envelope struct {
		Place *kakaoDetail `json:"place"`
	}
	if err = json.Unmarshal(body, &envelope); err != nil {
		kp.log.WarnContext(ctx, "Failed to parse Kakao place info", "error", err, "id", id)
		return nil, nil
	}
	place := envelope.Place
	if place == nil {
		return nil, nil
	}

	placeID := place.ConfirmID.String()
	if placeID == "" {
		placeID = id
	}
	name := place.PlaceName
	if name == "" {
		name = place.PlaceNameFull
	}

	var parts []string
	for _, part := range []looseString{place.Region.FullName, place.NewAddr.NewAddrFull, place.AddrDetail} {
		if part != "" {
			parts = append(parts, part.String())
		}
	}

	return &models.PlaceInfo{
		ID:      placeID,
		Name:    textnorm.NormalizeSpace(name.String()),
		Address: textnorm.NormalizeSpace(strings.Join(parts, " ")),
		Lat:     textnorm.ParseNumber(place.WGS84Y.String()),
		Lng:     textnorm.ParseNumber(place.WGS84X.String()),
	}, nil
}
