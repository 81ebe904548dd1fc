package publishers

import (
	"context"

	"github.com/arthsutra/bazaar-harvester/internal/domain"
)

// PublishArticles sends one event per article to every publisher. A failed
// delivery is logged and skipped; the harvest result on disk is already
// final, so downstream failures never abort the run. Returns the number of
// successful deliveries.
func PublishArticles(ctx context.Context, pubs []Publisher, articles []domain.Article, log Logger) int {
	if len(pubs) == 0 || len(articles) == 0 {
		return 0
	}
	log = ensureLogger(log)

	delivered := 0
	for _, a := range articles {
		evt := NewEvent(a)
		for _, pub := range pubs {
			if ctx.Err() != nil {
				return delivered
			}
			if err := pub.Publish(ctx, evt); err != nil {
				log.WarnObj("event delivery failed", "publisher_delivery_error", map[string]any{
					"publisher_id": pub.ID(),
					"url":          a.URL,
					"error":        err.Error(),
				})
				continue
			}
			delivered++
		}
	}
	return delivered
}
