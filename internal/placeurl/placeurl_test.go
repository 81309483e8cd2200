package placeurl_test

import (
	"testing"

	"github.com/UnknownOlympus/placebridge/internal/models"
	"github.com/UnknownOlympus/placebridge/internal/placeurl"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNaverPlaceID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"empty", "", ""},
		{"entry path", "https://map.naver.com/p/entry/place/1234567?c=15.00,0,0,0,dh", "1234567"},
		{"mobile home", "https://m.place.naver.com/place/7654321/home", "7654321"},
		{"case insensitive", "https://MAP.NAVER.COM/P/ENTRY/PLACE/42", "42"},
		{"pin id fallback", "https://map.naver.com/p/search/cafe?pinId=999&pinType=place", "999"},
		{"path wins over pin id", "https://map.naver.com/p/entry/place/1?pinId=2", "1"},
		{"non numeric pin id", "https://map.naver.com/p?pinId=abc", ""},
		{"malformed url", "not a url at all", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, placeurl.NaverPlaceID(tt.url))
		})
	}
}

func TestNaverMeta(t *testing.T) {
	t.Run("title and coordinates", func(t *testing.T) {
		got := placeurl.NaverMeta(
			"https://map.naver.com/p/entry/place/11?title=%EC%8A%A4%ED%83%80%EB%B2%85%EC%8A%A4++%EA%B0%95%EB%82%A8&lat=37.5&lng=127.01",
		)

		want := models.PlaceInfo{ID: "11", Name: "스타벅스 강남", Lat: models.Ptr(37.5), Lng: models.Ptr(127.01)}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("NaverMeta() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("half a coordinate pair is dropped", func(t *testing.T) {
		got := placeurl.NaverMeta("https://map.naver.com/p?lat=37.5&lng=abc")

		assert.Nil(t, got.Lat)
		assert.Nil(t, got.Lng)
	})

	t.Run("malformed url yields nothing", func(t *testing.T) {
		got := placeurl.NaverMeta("%%%")

		assert.True(t, got.Unresolved())
		assert.Nil(t, got.Lat)
	})
}

func TestIsNaverShortLink(t *testing.T) {
	assert.True(t, placeurl.IsNaverShortLink("https://naver.me/5abcDEF"))
	assert.True(t, placeurl.IsNaverShortLink("http://NAVER.ME/x"))
	assert.False(t, placeurl.IsNaverShortLink("https://map.naver.com/p/entry/place/1"))
}

func TestKakaoPlaceID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"empty", "", ""},
		{"place path", "https://place.map.kakao.com/26338954", "26338954"},
		{"item id", "https://map.kakao.com/?itemId=8140158", "8140158"},
		{"non numeric item id", "https://map.kakao.com/?itemId=8140158a", ""},
		{"malformed url", "::", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, placeurl.KakaoPlaceID(tt.url))
			assert.Equal(t, tt.want, placeurl.KakaoMeta(tt.url).ID)
		})
	}
}

func TestPlaceURLs(t *testing.T) {
	assert.Equal(t, "https://map.naver.com/p/entry/place/123", placeurl.NaverPlaceURL("123"))
	assert.Equal(t, "https://place.map.kakao.com/456", placeurl.KakaoPlaceURL("456"))
}
