package harvester

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arthsutra/bazaar-harvester/internal/domain"
	"github.com/arthsutra/bazaar-harvester/internal/relevance"
	"github.com/arthsutra/bazaar-harvester/pkg/gdelt"
)

// Fetcher retrieves the relevant articles for one query over one day window.
type Fetcher interface {
	Fetch(ctx context.Context, query string, day time.Time) ([]domain.Article, error)
}

// searchClient is the subset of the GDELT client the fetcher uses.
type searchClient interface {
	Search(ctx context.Context, query string, day time.Time) ([]gdelt.Record, error)
}

// GDELTFetcher maps raw GDELT records into harvest articles, applying the
// keyword pre-filter and relevance scorer. Records with empty titles,
// non-matching titles, or zero scores are dropped.
type GDELTFetcher struct {
	client searchClient
	engine *relevance.Engine
}

// NewGDELTFetcher builds a fetcher over the given search client and engine.
func NewGDELTFetcher(client searchClient, engine *relevance.Engine) (*GDELTFetcher, error) {
	if client == nil {
		return nil, fmt.Errorf("search client is nil")
	}
	if engine == nil {
		return nil, fmt.Errorf("relevance engine is nil")
	}
	return &GDELTFetcher{client: client, engine: engine}, nil
}

// Fetch runs one search and returns the filtered, scored articles with
// Category left unset. Transport and decode failures propagate as errors;
// the caller decides how to degrade.
func (f *GDELTFetcher) Fetch(ctx context.Context, query string, day time.Time) ([]domain.Article, error) {
	records, err := f.client.Search(ctx, query, day)
	if err != nil {
		return nil, err
	}

	articles := make([]domain.Article, 0, len(records))
	for _, rec := range records {
		title := strings.TrimSpace(rec.Title)
		if title == "" || !f.engine.MatchesAny(title) {
			continue
		}

		score := f.engine.Score(title)
		if score == 0 {
			continue
		}

		articles = append(articles, domain.Article{
			SeenDate:       rec.SeenDate,
			Title:          title,
			URL:            rec.URL,
			Domain:         rec.Domain,
			Language:       rec.Language,
			SourceCountry:  rec.SourceCountry,
			RelevanceScore: score,
		})
	}
	return articles, nil
}
