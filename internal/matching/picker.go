// Package matching scores search candidates against a source place and picks the best one.
package matching

import (
	"math"

	"github.com/UnknownOlympus/placebridge/internal/geo"
	"github.com/UnknownOlympus/placebridge/internal/models"
	"github.com/UnknownOlympus/placebridge/internal/textnorm"
)

const (
	nameWeight     = 0.62
	addressWeight  = 0.23
	distanceWeight = 0.15

	// distanceHorizon is where the distance score reaches zero.
	distanceHorizon = 3000.0
	// tieEpsilon is the score gap under which the closer candidate wins.
	tieEpsilon = 0.0001
)

// Pick returns the candidate that best matches source, or nil when there are no candidates.
// Ties within tieEpsilon go to the candidate with the smaller known distance; earlier
// candidates win remaining ties.
func Pick(candidates []models.PlaceInfo, source models.PlaceInfo) *models.ScoredCandidate {
	if len(candidates) == 0 {
		return nil
	}

	sourceName := textnorm.NormalizeCompareText(source.Name)
	sourceAddr := textnorm.NormalizeCompareText(textnorm.StripAddressDetail(source.Address))

	var best *models.ScoredCandidate
	for _, candidate := range candidates {
		scored := score(candidate, source, sourceName, sourceAddr)
		if best == nil ||
			scored.Score > best.Score ||
			(math.Abs(scored.Score-best.Score) < tieEpsilon &&
				compareDistance(scored.DistanceMeters, best.DistanceMeters) < 0) {
			best = scored
		}
	}

	return best
}

// Score rates a single candidate against source.
func Score(candidate, source models.PlaceInfo) *models.ScoredCandidate {
	return score(candidate, source,
		textnorm.NormalizeCompareText(source.Name),
		textnorm.NormalizeCompareText(textnorm.StripAddressDetail(source.Address)))
}

func score(candidate, source models.PlaceInfo, sourceName, sourceAddr string) *models.ScoredCandidate {
	nameScore := textnorm.Similarity(sourceName, textnorm.NormalizeCompareText(candidate.Name))
	addrScore := textnorm.Similarity(
		sourceAddr, textnorm.NormalizeCompareText(textnorm.StripAddressDetail(candidate.Address)))

	distance := geo.Distance(source.Lat, source.Lng, candidate.Lat, candidate.Lng)
	distanceScore := 0.0
	if distance != nil {
		distanceScore = max(0, 1-math.Min(float64(*distance), distanceHorizon)/distanceHorizon)
	}

	return &models.ScoredCandidate{
		PlaceInfo:      candidate,
		Score:          nameScore*nameWeight + addrScore*addressWeight + distanceScore*distanceWeight,
		DistanceMeters: distance,
	}
}

// compareDistance orders distances ascending with unknown distances last.
func compareDistance(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return *a - *b
	}
}
