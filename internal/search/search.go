// Package search is the catalog search collaborator. It fans a query
// out to the community catalog and the video catalog concurrently,
// merges the results, and falls back to static sample data when the
// video catalog is unreachable. Failures never cross its boundary:
// callers only ever see a possibly-empty track list.
package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/codgamerofficial/sonicstream/internal/core"
)

// CatalogClient searches the primary video catalog.
type CatalogClient interface {
	Search(ctx context.Context, query string, limit int) ([]core.Track, error)
}

// CommunityCatalog searches the shared public catalog.
type CommunityCatalog interface {
	Search(ctx context.Context, query string) []core.Track
}

// Service merges catalog sources behind a single search call.
type Service struct {
	catalog   CatalogClient
	community CommunityCatalog
	limit     int
}

// New creates the search service. Either source may be nil when
// unconfigured.
func New(catalog CatalogClient, community CommunityCatalog) *Service {
	return &Service{catalog: catalog, community: community, limit: 15}
}

// Search resolves a query into tracks. Community results come first,
// then catalog results, deduplicated by ID. A catalog failure swaps in
// the static fallback set instead of surfacing an error.
func (s *Service) Search(ctx context.Context, query string) []core.Track {
	if query == "" {
		return nil
	}

	type catalogResult struct {
		tracks []core.Track
		err    error
	}

	communityCh := make(chan []core.Track, 1)
	catalogCh := make(chan catalogResult, 1)

	go func() {
		if s.community == nil {
			communityCh <- nil
			return
		}
		communityCh <- s.community.Search(ctx, query)
	}()
	go func() {
		if s.catalog == nil {
			catalogCh <- catalogResult{err: context.Canceled}
			return
		}
		tracks, err := s.catalog.Search(ctx, query, s.limit)
		catalogCh <- catalogResult{tracks: tracks, err: err}
	}()

	results := <-communityCh
	fromCatalog := <-catalogCh

	if fromCatalog.err != nil {
		slog.Warn("catalog search failed, using sample fallback", "query", query, "error", fromCatalog.err)
		results = append(results, fallbackFor(query)...)
	} else {
		results = append(results, fromCatalog.tracks...)
	}

	return lo.UniqBy(results, func(t core.Track) string { return t.ID })
}

// Popular returns a default browse list for the home surface.
func (s *Service) Popular(ctx context.Context) []core.Track {
	tracks := s.Search(ctx, "Global Top 50 Music")
	if len(tracks) == 0 {
		return fallbackTrending
	}
	return tracks
}

// fallbackFor picks sample data loosely matching the query's vibe.
func fallbackFor(query string) []core.Track {
	q := strings.ToLower(query)
	if strings.Contains(q, "chill") || strings.Contains(q, "lofi") {
		return fallbackChill
	}
	return fallbackTrending
}
