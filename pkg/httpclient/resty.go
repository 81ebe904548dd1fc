package httpclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Response exposes the parts of an HTTP response the harvester consumes.
type Response interface {
	StatusCode() int
	Body() []byte
}

// Client issues GET requests with optional headers.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}

type restyClient struct {
	c *resty.Client
}

// NewRestyClient returns a resty-backed Client with the given request timeout.
func NewRestyClient(timeout time.Duration) Client {
	c := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))
	return &restyClient{c: c}
}

func (r *restyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := r.c.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	return restyResponse{resp: resp}, nil
}

type restyResponse struct {
	resp *resty.Response
}

func (r restyResponse) StatusCode() int { return r.resp.StatusCode() }
func (r restyResponse) Body() []byte    { return r.resp.Body() }
