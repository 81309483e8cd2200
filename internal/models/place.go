package models

// PlaceInfo describes a place as one map provider knows it. It is used both for the
// resolved description of an input entry and for search candidates.
// Unknown coordinates are nil, never zero or NaN. An empty ID means the identifier is unknown.
type PlaceInfo struct {
	ID      string   `json:"id,omitempty"` // ID is the provider specific numeric identifier.
	Name    string   `json:"name"`         // Name is the display name of the place.
	Address string   `json:"address"`      // Address is the display address of the place.
	Lat     *float64 `json:"lat"`          // Lat is the WGS84 latitude.
	Lng     *float64 `json:"lng"`          // Lng is the WGS84 longitude.
}

// Unresolved reports whether the place carries no identifying information at all.
func (p PlaceInfo) Unresolved() bool {
	return p.ID == "" && p.Name == "" && p.Address == ""
}

// Complete reports whether name, address and both coordinates are known.
func (p PlaceInfo) Complete() bool {
	return p.Name != "" && p.Address != "" && p.Lat != nil && p.Lng != nil
}

// Fill returns a copy of p where every unknown field is taken from other.
// Fields already known in p are never overwritten.
func (p PlaceInfo) Fill(other PlaceInfo) PlaceInfo {
	if p.ID == "" {
		p.ID = other.ID
	}
	if p.Name == "" {
		p.Name = other.Name
	}
	if p.Address == "" {
		p.Address = other.Address
	}
	if p.Lat == nil {
		p.Lat = other.Lat
	}
	if p.Lng == nil {
		p.Lng = other.Lng
	}

	return p
}

// Merge folds partial descriptions in precedence order: earlier sources win,
// later sources only fill what is still unknown.
func Merge(sources ...PlaceInfo) PlaceInfo {
	var out PlaceInfo
	for _, src := range sources {
		out = out.Fill(src)
	}

	return out
}

// ScoredCandidate is a candidate annotated with its match score against a source place.
type ScoredCandidate struct {
	PlaceInfo

	Score          float64 // Score is the weighted similarity in [0, 1].
	DistanceMeters *int    // DistanceMeters is nil when either side lacks coordinates.
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
