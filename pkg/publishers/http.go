package publishers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// httpPublisher posts events as JSON to a generic HTTP sink.
type httpPublisher struct {
	id     string
	typ    string
	cfg    HTTPPublisherConfig
	client *resty.Client
	log    Logger
}

// newHTTPPublisher builds an HTTP publisher from a config entry.
func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}

	client := resty.New().
		SetTimeout(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second)

	return &httpPublisher{
		id:     cfg.ID,
		typ:    cfg.Type,
		cfg:    *cfg.HTTP,
		client: client,
		log:    ensureLogger(log),
	}, nil
}

func (p *httpPublisher) ID() string   { return p.id }
func (p *httpPublisher) Type() string { return p.typ }

// Publish sends the event to the configured URL. Any 2xx response counts as
// delivered.
func (p *httpPublisher) Publish(ctx context.Context, evt Event) error {
	req := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(evt)
	for k, v := range p.cfg.Headers {
		req.SetHeader(k, v)
	}

	resp, err := req.Execute(p.cfg.Method, p.cfg.URL)
	if err != nil {
		p.log.ErrorObj("http publisher send failed", "publisher_http_error", map[string]any{
			"url":   p.cfg.URL,
			"error": err.Error(),
		})
		return fmt.Errorf("send event to %s: %w", p.cfg.URL, err)
	}

	code := resp.StatusCode()
	if code < http.StatusOK || code >= http.StatusMultipleChoices {
		return fmt.Errorf("http sink %s returned status %d", p.cfg.URL, code)
	}

	p.log.DebugObj("http publisher delivered event", "publisher_http_delivery", map[string]any{
		"url":    p.cfg.URL,
		"status": code,
	})
	return nil
}
