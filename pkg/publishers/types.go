package publishers

import (
	"context"

	"github.com/arthsutra/bazaar-harvester/internal/domain"
)

// Event is the message published downstream for one exported article.
// Description and ImageURL are only present when the enrichment stage ran.
type Event struct {
	Category       string `json:"category"`
	SeenDate       string `json:"seen_date"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	Domain         string `json:"domain"`
	Language       string `json:"language"`
	SourceCountry  string `json:"source_country"`
	RelevanceScore int    `json:"relevance_score"`
	Description    string `json:"description,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
}

// NewEvent builds the publish payload for one article.
func NewEvent(a domain.Article) Event {
	return Event{
		Category:       string(a.Category),
		SeenDate:       a.SeenDate,
		Title:          a.Title,
		URL:            a.URL,
		Domain:         a.Domain,
		Language:       a.Language,
		SourceCountry:  a.SourceCountry,
		RelevanceScore: a.RelevanceScore,
		Description:    a.Description,
		ImageURL:       a.ImageURL,
	}
}

// Publisher delivers events to one configured sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// Logger is the minimal logging surface publishers require.
type Logger interface {
	DebugObj(msg, event string, fields map[string]any)
	InfoObj(msg, event string, fields map[string]any)
	WarnObj(msg, event string, fields map[string]any)
	ErrorObj(msg, event string, fields map[string]any)
}

type nopLogger struct{}

func (nopLogger) DebugObj(string, string, map[string]any) {}
func (nopLogger) InfoObj(string, string, map[string]any)  {}
func (nopLogger) WarnObj(string, string, map[string]any)  {}
func (nopLogger) ErrorObj(string, string, map[string]any) {}

// ensureLogger substitutes a no-op logger for nil.
func ensureLogger(log Logger) Logger {
	if log == nil {
		return nopLogger{}
	}
	return log
}
