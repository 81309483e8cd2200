package models_test

import (
	"encoding/json"
	"testing"

	"github.com/UnknownOlympus/placebridge/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	t.Run("earlier sources are never overwritten", func(t *testing.T) {
		fromURL := models.PlaceInfo{Name: "스타벅스", Lat: models.Ptr(37.5), Lng: models.Ptr(127.0)}
		fromSearch := models.PlaceInfo{
			ID: "123", Name: "스타벅스 강남점", Address: "서울 강남구 123",
			Lat: models.Ptr(35.0), Lng: models.Ptr(129.0),
		}

		got := models.Merge(fromURL, fromSearch)

		want := models.PlaceInfo{
			ID: "123", Name: "스타벅스", Address: "서울 강남구 123",
			Lat: models.Ptr(37.5), Lng: models.Ptr(127.0),
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no sources", func(t *testing.T) {
		got := models.Merge()

		assert.True(t, got.Unresolved())
		assert.Nil(t, got.Lat)
	})
}

func TestPlaceInfo_Complete(t *testing.T) {
	info := models.PlaceInfo{Name: "a", Address: "b", Lat: models.Ptr(1.0)}
	assert.False(t, info.Complete())

	info.Lng = models.Ptr(2.0)
	assert.True(t, info.Complete())
}

func TestDirection(t *testing.T) {
	assert.True(t, models.DirectionNaverToKakao.Valid())
	assert.True(t, models.DirectionKakaoToNaver.Valid())
	assert.False(t, models.Direction("naver_to_google").Valid())

	assert.Equal(t, models.ProviderNaver, models.DirectionNaverToKakao.Source())
	assert.Equal(t, models.ProviderKakao, models.DirectionNaverToKakao.Target())
	assert.Equal(t, models.ProviderKakao, models.DirectionKakaoToNaver.Source())
	assert.Equal(t, models.ProviderNaver, models.DirectionKakaoToNaver.Target())
}

func TestConversionResult_JSON(t *testing.T) {
	t.Run("failure omits match fields", func(t *testing.T) {
		res := models.ConversionResult{Source: models.SourceEntry{Index: 2}, Error: "no search results"}

		raw, err := json.Marshal(res)
		require.NoError(t, err)

		assert.JSONEq(t,
			`{"ok":false,"source":{"index":2,"name":"","address":"","sourceUrl":"","rawBlock":""},"error":"no search results"}`,
			string(raw))
	})

	t.Run("success keeps null distance", func(t *testing.T) {
		res := models.ConversionResult{OK: true, Match: &models.Match{TargetURL: "u"}}

		raw, err := json.Marshal(res)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Contains(t, decoded, "distanceMeters")
		assert.Nil(t, decoded["distanceMeters"])
		assert.Nil(t, decoded["distancePass"])
		assert.NotContains(t, decoded, "error")
	})
}
