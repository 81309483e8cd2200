// Package geo holds great-circle math on WGS84 coordinates.
package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// Distance returns the rounded distance in meters between two points.
// It returns nil when any coordinate is nil, NaN or infinite.
func Distance(lat1, lng1, lat2, lng2 *float64) *int {
	for _, v := range []*float64{lat1, lng1, lat2, lng2} {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			return nil
		}
	}

	meters := int(math.Round(Haversine(*lat1, *lng1, *lat2, *lng2)))

	return &meters
}
