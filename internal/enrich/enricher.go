package enrich

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/arthsutra/bazaar-harvester/internal/domain"
	"github.com/arthsutra/bazaar-harvester/internal/logger"
	"github.com/arthsutra/bazaar-harvester/pkg/httpclient"
)

const (
	maxHTMLBodyBytes  = 1 << 20 // 1 MiB
	maxArticleWorkers = 10

	defaultTimeout = 15 * time.Second
)

// Enricher fills article descriptions and image URLs by scraping the article
// pages for Open Graph metadata. Titles and relevance scores are never
// touched; enrichment only fattens the downstream publisher events.
type Enricher struct {
	client  httpclient.Client
	log     logger.Logger
	headers map[string]string
}

// NewEnricher creates an Enricher with the given HTTP client and logger.
func NewEnricher(client httpclient.Client, userAgent string, log logger.Logger) *Enricher {
	if client == nil {
		client = httpclient.NewRestyClient(defaultTimeout)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	var headers map[string]string
	if strings.TrimSpace(userAgent) != "" {
		headers = map[string]string{"User-Agent": userAgent}
	}
	return &Enricher{client: client, log: log, headers: headers}
}

// Enrich scrapes metadata for the given articles with a bounded worker pool,
// pacing page fetches by delay when it is positive. Failed scrapes leave the
// article unchanged; cancellation returns whatever was enriched so far.
func (e *Enricher) Enrich(ctx context.Context, articles []domain.Article, delay time.Duration) []domain.Article {
	out := make([]domain.Article, len(articles))
	copy(out, articles) // default to originals so partial results are returned on cancel

	if len(articles) == 0 {
		return out
	}

	workerCount := min(len(articles), maxArticleWorkers)

	var limiter <-chan time.Time
	var ticker *time.Ticker
	if delay > 0 {
		ticker = time.NewTicker(delay)
		limiter = ticker.C
		defer ticker.Stop()
	}

	jobCh := make(chan int)
	var wg sync.WaitGroup

	for workerID := range workerCount {
		wg.Add(1)
		go e.articleWorker(ctx, articles, limiter, jobCh, out, &wg, workerID)
	}

	for idx := range articles {
		if ctx.Err() != nil {
			break
		}
		jobCh <- idx
	}
	close(jobCh)

	wg.Wait()

	return out
}

// articleWorker processes articles from the job channel, respecting the rate limiter.
func (e *Enricher) articleWorker(
	ctx context.Context,
	articles []domain.Article,
	limiter <-chan time.Time,
	jobCh <-chan int,
	out []domain.Article,
	wg *sync.WaitGroup,
	workerID int,
) {
	defer wg.Done()

	for idx := range jobCh {
		if ctx.Err() != nil {
			return
		}

		if limiter != nil {
			select {
			case <-ctx.Done():
				return
			case <-limiter:
			}
		}

		art := articles[idx]
		if enriched, err := e.fetchAndParse(ctx, art, workerID); err != nil {
			e.log.WarnObj("article metadata scrape failed", "enrich_error", map[string]any{
				"worker_id": workerID,
				"url":       art.URL,
				"error":     err.Error(),
			})
			out[idx] = art
		} else {
			out[idx] = enriched
		}
	}
}

// fetchAndParse fetches the article HTML and fills metadata from it.
func (e *Enricher) fetchAndParse(ctx context.Context, art domain.Article, workerID int) (domain.Article, error) {
	e.log.DebugObj("scraping article metadata", "enrich_start", map[string]any{
		"worker_id": workerID,
		"url":       art.URL,
	})

	resp, err := e.client.Get(ctx, art.URL, e.headers)
	if err != nil {
		return art, fmt.Errorf("http fetch: %w", err)
	}

	if resp.StatusCode() != 200 {
		snippet := strings.TrimSpace(string(resp.Body()))
		if len(snippet) > 1024 {
			snippet = snippet[:1024]
		}
		return art, fmt.Errorf("status %d body: %s", resp.StatusCode(), snippet)
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		e.log.InfoObj("html body truncated", "enrich_truncation", map[string]any{
			"worker_id": workerID,
			"url":       art.URL,
			"original":  len(body),
			"kept":      maxHTMLBodyBytes,
		})
		body = body[:maxHTMLBodyBytes]
	}

	meta, err := parseMeta(body)
	if err != nil {
		return art, err
	}
	updated := art
	if meta.Description != "" {
		updated.Description = meta.Description
	}
	if meta.ImageURL != "" {
		updated.ImageURL = resolveURL(meta.ImageURL, art.URL)
	}

	return updated, nil
}

// parseMeta extracts page metadata from the HTML body.
func parseMeta(body []byte) (pageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return pageMeta{}, fmt.Errorf("parse html: %w", err)
	}

	pm := pageMeta{}

	extract := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	pm.Description = firstNonEmpty(
		extract(`meta[property="og:description"]`),
		extract(`meta[name="description"]`),
	)
	pm.ImageURL = extract(`meta[property="og:image"]`)

	return pm, nil
}

// pageMeta holds metadata extracted from an HTML page.
type pageMeta struct {
	Description string
	ImageURL    string
}

// firstNonEmpty returns the first non-empty string from the given values.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// resolveURL resolves a possibly relative URL against a base URL.
func resolveURL(raw, base string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if parsed.IsAbs() {
		return parsed.String()
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return raw
	}

	return baseURL.ResolveReference(parsed).String()
}
