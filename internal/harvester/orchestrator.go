package harvester

import (
	"context"
	"sort"
	"time"

	"github.com/arthsutra/bazaar-harvester/internal/domain"
	"github.com/arthsutra/bazaar-harvester/internal/logger"
)

// Options fixes the parameters of one harvest run.
type Options struct {
	StartDate    time.Time
	EndDate      time.Time
	CompanyQuery string
	SectorQuery  string
	CompanyLimit int
	SectorLimit  int

	// RequestDelay is the pacing floor applied after each day's two calls.
	RequestDelay time.Duration
}

// Totals tracks how many articles each category contributed over a run.
type Totals struct {
	Company int
	Sector  int
}

// Orchestrator walks the closed date interval one calendar day at a time,
// issuing the company and sector queries back to back with no concurrency.
// The serialization is deliberate: the pacing delay bounds the upstream call
// rate and only holds if calls never overlap.
type Orchestrator struct {
	fetcher Fetcher
	opts    Options
	log     logger.Logger
}

// NewOrchestrator builds an orchestrator over the given fetcher.
func NewOrchestrator(fetcher Fetcher, opts Options, log logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Orchestrator{fetcher: fetcher, opts: opts, log: log}
}

// Run harvests the full date range and returns the accumulated articles and
// per-category totals. A failed fetch degrades to zero results for that call
// and the loop continues; only context cancellation ends the run early, in
// which case the articles accumulated so far are returned alongside ctx.Err().
func (o *Orchestrator) Run(ctx context.Context) ([]domain.Article, Totals, error) {
	var (
		accumulated []domain.Article
		totals      Totals
	)

	for day := o.opts.StartDate; !day.After(o.opts.EndDate); day = day.AddDate(0, 0, 1) {
		if ctx.Err() != nil {
			return accumulated, totals, ctx.Err()
		}

		o.log.InfoObj("fetching day", "harvest_day", map[string]any{
			"day": day.Format("2006-01-02"),
		})

		company := o.fetchDay(ctx, o.opts.CompanyQuery, day, domain.CategoryCompany, o.opts.CompanyLimit)
		sector := o.fetchDay(ctx, o.opts.SectorQuery, day, domain.CategorySector, o.opts.SectorLimit)

		totals.Company += len(company)
		totals.Sector += len(sector)
		accumulated = append(accumulated, company...)
		accumulated = append(accumulated, sector...)

		o.log.InfoObj("day complete", "harvest_day_done", map[string]any{
			"day":     day.Format("2006-01-02"),
			"company": len(company),
			"sector":  len(sector),
		})

		if err := o.pace(ctx); err != nil {
			return accumulated, totals, err
		}
	}

	return accumulated, totals, nil
}

// fetchDay runs one query for one day, tags the category, and keeps the top
// limit articles by relevance score. Ties keep the order the fetcher returned,
// which is the provider's recency order.
func (o *Orchestrator) fetchDay(ctx context.Context, query string, day time.Time, category domain.Category, limit int) []domain.Article {
	articles, err := o.fetcher.Fetch(ctx, query, day)
	if err != nil {
		o.log.WarnObj("fetch failed, continuing with no results", "harvest_fetch_error", map[string]any{
			"day":      day.Format("2006-01-02"),
			"category": string(category),
			"error":    err.Error(),
		})
		return nil
	}

	for i := range articles {
		articles[i].Category = category
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].RelevanceScore > articles[j].RelevanceScore
	})

	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles
}

// pace blocks for the configured delay or until the context is done.
func (o *Orchestrator) pace(ctx context.Context) error {
	if o.opts.RequestDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(o.opts.RequestDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
