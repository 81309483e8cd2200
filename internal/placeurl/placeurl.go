// Package placeurl extracts place identifiers and coordinates from Naver Map and
// Kakao Map links. Every function is pure and malformed links yield no metadata.
package placeurl

import (
	"net/url"
	"regexp"

	"github.com/UnknownOlympus/placebridge/internal/models"
	"github.com/UnknownOlympus/placebridge/internal/textnorm"
)

var (
	naverEntryRe     = regexp.MustCompile(`(?i)/entry/place/(\d+)`)
	naverMobileRe    = regexp.MustCompile(`(?i)m\.place\.naver\.com/place/(\d+)`)
	naverShortLinkRe = regexp.MustCompile(`(?i)naver\.me/`)
	kakaoPlaceRe     = regexp.MustCompile(`(?i)place\.map\.kakao\.com/(\d+)`)
	digitsRe         = regexp.MustCompile(`^\d+$`)
)

// parse accepts absolute URLs only.
func parse(raw string) (*url.URL, bool) {
	parsed, err := url.Parse(raw)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return nil, false
	}

	return parsed, true
}

func numericParam(query url.Values, key string) string {
	if v := query.Get(key); digitsRe.MatchString(v) {
		return v
	}

	return ""
}

// NaverPlaceID returns the place id found in a Naver link: the entry or mobile
// place path first, then a numeric pinId query parameter.
func NaverPlaceID(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	for _, re := range []*regexp.Regexp{naverEntryRe, naverMobileRe} {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return m[1]
		}
	}

	parsed, ok := parse(rawURL)
	if !ok {
		return ""
	}

	return numericParam(parsed.Query(), "pinId")
}

// NaverMeta returns what a single Naver link tells about a place: its id, the
// title query parameter as name and the lat/lng pair. Coordinates are only
// reported when both parse to finite numbers.
func NaverMeta(rawURL string) models.PlaceInfo {
	info := models.PlaceInfo{ID: NaverPlaceID(rawURL)}

	parsed, ok := parse(rawURL)
	if !ok {
		return info
	}
	query := parsed.Query()

	info.Name = textnorm.NormalizeSpace(query.Get("title"))

	lat := textnorm.ParseNumber(query.Get("lat"))
	lng := textnorm.ParseNumber(query.Get("lng"))
	if lat != nil && lng != nil {
		info.Lat, info.Lng = lat, lng
	}

	return info
}

// IsNaverShortLink reports whether the link is a naver.me short link that has
// to be followed to reveal the place.
func IsNaverShortLink(rawURL string) bool {
	return naverShortLinkRe.MatchString(rawURL)
}

// KakaoPlaceID returns the place id found in a Kakao link: the
// place.map.kakao.com path first, then a numeric itemId query parameter.
func KakaoPlaceID(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	if m := kakaoPlaceRe.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}

	parsed, ok := parse(rawURL)
	if !ok {
		return ""
	}

	return numericParam(parsed.Query(), "itemId")
}

// KakaoMeta returns what a single Kakao link tells about a place.
func KakaoMeta(rawURL string) models.PlaceInfo {
	return models.PlaceInfo{ID: KakaoPlaceID(rawURL)}
}

// NaverPlaceURL is the canonical Naver Map link for a place id.
func NaverPlaceURL(id string) string {
	return "https://map.naver.com/p/entry/place/" + id
}

// KakaoPlaceURL is the canonical Kakao Map link for a place id.
func KakaoPlaceURL(id string) string {
	return "https://place.map.kakao.com/" + id
}
