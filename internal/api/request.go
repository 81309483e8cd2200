package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/UnknownOlympus/placebridge/internal/models"
	"github.com/UnknownOlympus/placebridge/internal/textnorm"
)

// ErrInvalidInput is returned for requests that cannot be converted at all.
var ErrInvalidInput = errors.New("invalid input")

// Limits bounds a decoded request.
type Limits struct {
	MaxEntries               int     // Entries beyond this are dropped.
	DefaultMaxDistanceMeters float64 // Used when the request carries no usable threshold.
}

// Request is a validated batch conversion request.
type Request struct {
	Direction         models.Direction
	MaxDistanceMeters float64
	Entries           []models.SourceEntry
}

// Response is the body returned for a converted batch.
type Response struct {
	OK                bool                      `json:"ok"`
	Direction         models.Direction          `json:"direction"`
	MaxDistanceMeters float64                   `json:"maxDistanceMeters"`
	Results           []models.ConversionResult `json:"results"`
}

// DecodeRequest parses and sanitizes a batch request body. Extra entries are truncated, not rejected.
func DecodeRequest(body []byte, limits Limits) (*Request, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrInvalidInput)
	}

	direction := models.Direction(textnorm.NormalizeSpace(stringify(decodeAny(fields["direction"]))))
	if !direction.Valid() {
		return nil, fmt.Errorf("%w: direction must be %s or %s",
			ErrInvalidInput, models.DirectionNaverToKakao, models.DirectionKakaoToNaver)
	}

	var rawEntries []json.RawMessage
	if err := json.Unmarshal(fields["entries"], &rawEntries); err != nil || rawEntries == nil {
		return nil, fmt.Errorf("%w: entries must be an array", ErrInvalidInput)
	}

	maxDistance := limits.DefaultMaxDistanceMeters
	if n := toNumber(decodeAny(fields["maxDistanceMeters"])); n != nil {
		maxDistance = *n
	}

	if limits.MaxEntries > 0 && len(rawEntries) > limits.MaxEntries {
		rawEntries = rawEntries[:limits.MaxEntries]
	}

	entries := make([]models.SourceEntry, len(rawEntries))
	for i, raw := range rawEntries {
		entries[i] = sanitizeEntry(raw, i+1)
	}

	return &Request{Direction: direction, MaxDistanceMeters: maxDistance, Entries: entries}, nil
}

// sanitizeEntry accepts any JSON value. Non-object entries become empty entries.
func sanitizeEntry(raw json.RawMessage, fallbackIndex int) models.SourceEntry {
	var fields map[string]any
	_ = json.Unmarshal(raw, &fields)

	entry := models.SourceEntry{
		Index:     fallbackIndex,
		Name:      textnorm.NormalizeSpace(stringify(fields["name"])),
		Address:   textnorm.NormalizeSpace(stringify(fields["address"])),
		SourceURL: textnorm.NormalizeSpace(stringify(fields["sourceUrl"])),
	}
	if n := toNumber(fields["index"]); n != nil {
		entry.Index = int(*n)
	}
	if rawBlock, ok := fields["rawBlock"].(string); ok {
		entry.RawBlock = rawBlock
	}

	return entry
}

func decodeAny(raw json.RawMessage) any {
	if raw == nil {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}

	return v
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return ""
		}

		return string(encoded)
	}
}

// toNumber reads a finite number from a JSON number or numeric string.
func toNumber(v any) *float64 {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}

		return &val
	case string:
		return textnorm.ParseNumber(val)
	case bool:
		if val {
			return models.Ptr(1.0)
		}

		return models.Ptr(0.0)
	default:
		return nil
	}
}
