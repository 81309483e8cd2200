// Package resolver builds the best known description of an input entry on its own
// provider before the entry is searched on the opposite one.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/placebridge/internal/matching"
	"github.com/UnknownOlympus/placebridge/internal/models"
	"github.com/UnknownOlympus/placebridge/internal/placeurl"
	"github.com/UnknownOlympus/placebridge/internal/provider"
	"github.com/UnknownOlympus/placebridge/internal/textnorm"
)

const (
	// DefaultMaxHops bounds the requests spent on a single short link.
	DefaultMaxHops = 6
	// NaverReferer is sent with every short link hop.
	NaverReferer = "https://map.naver.com/"
)

// ErrUnresolvedSource is returned when an entry carries no name, address or place id
// even after every lookup.
var ErrUnresolvedSource = errors.New("input has no identifying information")

// Redirector lists every URL visited while following a redirect chain.
type Redirector interface {
	Resolve(ctx context.Context, startURL string, maxHops int, referer string) ([]string, error)
}

// SourceResolver resolves source entries for both directions.
type SourceResolver struct {
	log         *slog.Logger
	naver       provider.Searcher
	kakao       provider.Searcher
	kakaoDetail provider.DetailFetcher
	redirects   Redirector
	maxHops     int
}

// NewSourceResolver creates a resolver. A non-positive maxHops falls back to DefaultMaxHops.
func NewSourceResolver(
	log *slog.Logger,
	naver provider.Searcher,
	kakao provider.Searcher,
	kakaoDetail provider.DetailFetcher,
	redirects Redirector,
	maxHops int,
) *SourceResolver {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}

	return &SourceResolver{
		log:         log,
		naver:       naver,
		kakao:       kakao,
		kakaoDetail: kakaoDetail,
		redirects:   redirects,
		maxHops:     maxHops,
	}
}

// Resolve returns what is known about entry on the source provider of direction.
// Fields are filled in precedence order and never overwritten once known:
// the entry itself, then link metadata or place detail, then a search on the source provider.
func (r *SourceResolver) Resolve(
	ctx context.Context,
	direction models.Direction,
	entry models.SourceEntry,
) (models.PlaceInfo, error) {
	var (
		info models.PlaceInfo
		err  error
	)

	switch direction {
	case models.DirectionNaverToKakao:
		info, err = r.resolveNaver(ctx, entry)
	case models.DirectionKakaoToNaver:
		info, err = r.resolveKakao(ctx, entry)
	default:
		return models.PlaceInfo{}, fmt.Errorf("cannot resolve source for direction %q", direction)
	}
	if err != nil {
		return models.PlaceInfo{}, err
	}

	if !info.Complete() {
		searcher := r.naver
		if direction.Source() == models.ProviderKakao {
			searcher = r.kakao
		}
		if info, err = r.fillFromSearch(ctx, searcher, info); err != nil {
			return models.PlaceInfo{}, err
		}
	}

	if info.Unresolved() {
		return models.PlaceInfo{}, ErrUnresolvedSource
	}

	return info, nil
}

func seed(entry models.SourceEntry) models.PlaceInfo {
	return models.PlaceInfo{
		Name:    textnorm.NormalizeSpace(entry.Name),
		Address: textnorm.NormalizeSpace(entry.Address),
	}
}

func (r *SourceResolver) resolveNaver(ctx context.Context, entry models.SourceEntry) (models.PlaceInfo, error) {
	info := seed(entry)
	if entry.SourceURL == "" {
		return info, nil
	}

	info = info.Fill(placeurl.NaverMeta(entry.SourceURL))
	if !placeurl.IsNaverShortLink(entry.SourceURL) {
		return info, nil
	}

	chain, err := r.redirects.Resolve(ctx, entry.SourceURL, r.maxHops, NaverReferer)
	if err != nil {
		return models.PlaceInfo{}, fmt.Errorf("failed to resolve naver short link: %w", err)
	}

	hops := make([]models.PlaceInfo, 0, len(chain)+1)
	hops = append(hops, info)
	for _, hop := range chain {
		hops = append(hops, placeurl.NaverMeta(hop))
	}

	return models.Merge(hops...), nil
}

func (r *SourceResolver) resolveKakao(ctx context.Context, entry models.SourceEntry) (models.PlaceInfo, error) {
	info := seed(entry).Fill(placeurl.KakaoMeta(entry.SourceURL))
	if info.ID == "" || r.kakaoDetail == nil {
		return info, nil
	}

	detail, err := r.kakaoDetail.FetchDetail(ctx, info.ID)
	if err != nil {
		return models.PlaceInfo{}, fmt.Errorf("failed to fetch kakao place %s: %w", info.ID, err)
	}
	if detail == nil {
		r.log.DebugContext(ctx, "Kakao place detail not found", "id", info.ID)
		return info, nil
	}

	return info.Fill(*detail), nil
}

func (r *SourceResolver) fillFromSearch(
	ctx context.Context,
	searcher provider.Searcher,
	info models.PlaceInfo,
) (models.PlaceInfo, error) {
	query := FallbackQuery(info.Name, info.Address)
	if query == "" {
		return info, nil
	}

	candidates, err := searcher.Search(ctx, query)
	if err != nil {
		return models.PlaceInfo{}, fmt.Errorf("failed to search source place: %w", err)
	}

	picked := matching.Pick(candidates, info)
	if picked == nil {
		r.log.DebugContext(ctx, "Source search returned no candidates", "query", query)
		return info, nil
	}

	return info.Fill(picked.PlaceInfo), nil
}

// FallbackQuery joins a name with its address minus floor and unit detail.
// Blank halves are skipped.
func FallbackQuery(name, address string) string {
	parts := make([]string, 0, 2)
	for _, part := range []string{name, textnorm.StripAddressDetail(address)} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, " ")
}
