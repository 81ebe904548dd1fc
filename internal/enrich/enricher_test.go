package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arthsutra/bazaar-harvester/internal/domain"
	"github.com/arthsutra/bazaar-harvester/pkg/httpclient"
)

func TestParseMetaOpenGraph(t *testing.T) {
	body := []byte(`<html><head>
		<meta property="og:description" content=" Bank results beat estimates ">
		<meta property="og:image" content="https://cdn.example.com/img.jpg">
	</head><body></body></html>`)

	meta, err := parseMeta(body)
	if err != nil {
		t.Fatalf("parseMeta: %v", err)
	}
	if meta.Description != "Bank results beat estimates" {
		t.Errorf("Description = %q", meta.Description)
	}
	if meta.ImageURL != "https://cdn.example.com/img.jpg" {
		t.Errorf("ImageURL = %q", meta.ImageURL)
	}
}

func TestParseMetaFallsBackToNameDescription(t *testing.T) {
	body := []byte(`<html><head>
		<meta name="description" content="plain description">
	</head></html>`)

	meta, err := parseMeta(body)
	if err != nil {
		t.Fatalf("parseMeta: %v", err)
	}
	if meta.Description != "plain description" {
		t.Errorf("Description = %q", meta.Description)
	}
}

func TestResolveURLRelative(t *testing.T) {
	got := resolveURL("/img/banner.png", "https://news.example.com/story/1")
	if got != "https://news.example.com/img/banner.png" {
		t.Errorf("resolveURL = %q", got)
	}
}

func TestEnrichFillsMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<meta property="og:description" content="enriched">
			<meta property="og:image" content="/pic.jpg">
		</head></html>`))
	}))
	defer srv.Close()

	e := NewEnricher(httpclient.NewRestyClient(5*time.Second), "bazaar-harvester-test", nil)
	out := e.Enrich(context.Background(), []domain.Article{
		{Title: "HDFC Bank profit", URL: srv.URL + "/story"},
	}, 0)

	if len(out) != 1 {
		t.Fatalf("got %d articles", len(out))
	}
	if out[0].Description != "enriched" {
		t.Errorf("Description = %q", out[0].Description)
	}
	if out[0].ImageURL != srv.URL+"/pic.jpg" {
		t.Errorf("ImageURL = %q", out[0].ImageURL)
	}
	// Title must be untouched.
	if out[0].Title != "HDFC Bank profit" {
		t.Errorf("Title changed to %q", out[0].Title)
	}
}

func TestEnrichLeavesArticleOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	e := NewEnricher(httpclient.NewRestyClient(5*time.Second), "", nil)
	out := e.Enrich(context.Background(), []domain.Article{
		{Title: "kept", URL: srv.URL + "/blocked", RelevanceScore: 2},
	}, 0)

	if len(out) != 1 || out[0].Title != "kept" || out[0].RelevanceScore != 2 {
		t.Fatalf("failed scrape should keep the original article, got %+v", out)
	}
	if out[0].Description != "" {
		t.Errorf("Description = %q, want empty", out[0].Description)
	}
}

func TestEnrichEmptyInput(t *testing.T) {
	e := NewEnricher(nil, "", nil)
	out := e.Enrich(context.Background(), nil, 0)
	if len(out) != 0 {
		t.Fatalf("got %d articles, want 0", len(out))
	}
}
