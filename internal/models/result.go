package models

// Provider identifies a map service.
type Provider string

const (
	// ProviderNaver is Naver Map.
	ProviderNaver Provider = "naver"
	// ProviderKakao is Kakao Map.
	ProviderKakao Provider = "kakao"
)

// Direction names which provider a conversion reads from and which it searches.
type Direction string

const (
	// DirectionNaverToKakao resolves Naver places into Kakao places.
	DirectionNaverToKakao Direction = "naver_to_kakao"
	// DirectionKakaoToNaver resolves Kakao places into Naver places.
	DirectionKakaoToNaver Direction = "kakao_to_naver"
)

// Valid reports whether d is a supported direction.
func (d Direction) Valid() bool {
	return d == DirectionNaverToKakao || d == DirectionKakaoToNaver
}

// Source returns the provider the input entries belong to.
func (d Direction) Source() Provider {
	if d == DirectionKakaoToNaver {
		return ProviderKakao
	}

	return ProviderNaver
}

// Target returns the provider searched for matches.
func (d Direction) Target() Provider {
	if d == DirectionKakaoToNaver {
		return ProviderNaver
	}

	return ProviderKakao
}

// ConversionResult is the outcome for a single entry. Match is nil on failure,
// in which case Error holds the reason.
type ConversionResult struct {
	OK     bool        `json:"ok"`
	Source SourceEntry `json:"source"`
	*Match
	Error string `json:"error,omitempty"`
}

// Match holds the picked target place and the distance verdict.
type Match struct {
	TargetURL      string   `json:"targetUrl"`
	TargetName     string   `json:"targetName"`
	TargetAddress  string   `json:"targetAddress"`
	SourceLat      *float64 `json:"sourceLat"`
	SourceLng      *float64 `json:"sourceLng"`
	TargetLat      *float64 `json:"targetLat"`
	TargetLng      *float64 `json:"targetLng"`
	DistanceMeters *int     `json:"distanceMeters"`
	DistancePass   *bool    `json:"distancePass"`
}
