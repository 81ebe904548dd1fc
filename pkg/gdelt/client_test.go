package gdelt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/arthsutra/bazaar-harvester/pkg/httpclient"
)

func testDay(t *testing.T) time.Time {
	t.Helper()
	day, err := time.Parse("2006-01-02", "2024-03-15")
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	return day
}

func TestSearchMapsArticles(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"mode":          q.Get("mode"),
			"maxrecords":    q.Get("maxrecords"),
			"format":        q.Get("format"),
			"sort":          q.Get("sort"),
			"STARTDATETIME": q.Get("STARTDATETIME"),
			"ENDDATETIME":   q.Get("ENDDATETIME"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"articles":[
			{"title":"HDFC Bank posts profit","url":"https://example.com/a","domain":"example.com","language":"English","sourcecountry":"India","seendate":"20240315T101500Z"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(httpclient.NewRestyClient(5*time.Second), srv.URL, 250)
	records, err := client.Search(context.Background(), `"HDFC Bank"`, testDay(t))

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(records))
	assert.Equal(t, "HDFC Bank posts profit", records[0].Title)
	assert.Equal(t, "https://example.com/a", records[0].URL)
	assert.Equal(t, "example.com", records[0].Domain)
	assert.Equal(t, "English", records[0].Language)
	assert.Equal(t, "India", records[0].SourceCountry)
	assert.Equal(t, "20240315T101500Z", records[0].SeenDate)

	assert.Equal(t, "ArtList", gotQuery["mode"])
	assert.Equal(t, "250", gotQuery["maxrecords"])
	assert.Equal(t, "json", gotQuery["format"])
	assert.Equal(t, "DateDesc", gotQuery["sort"])
	assert.Equal(t, "20240315000000", gotQuery["STARTDATETIME"])
	assert.Equal(t, "20240316235959", gotQuery["ENDDATETIME"])
}

func TestSearchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(httpclient.NewRestyClient(5*time.Second), srv.URL, 0)
	records, err := client.Search(context.Background(), "banks", testDay(t))

	assert.Equal(t, 0, len(records))
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}
}

func TestSearchMissingArticlesField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	client := NewClient(httpclient.NewRestyClient(5*time.Second), srv.URL, 0)
	records, err := client.Search(context.Background(), "banks", testDay(t))

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(records))
}

func TestSearchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>definitely not json</html>`))
	}))
	defer srv.Close()

	client := NewClient(httpclient.NewRestyClient(5*time.Second), srv.URL, 0)
	_, err := client.Search(context.Background(), "banks", testDay(t))
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	client := NewClient(nil, "", 0)
	_, err := client.Search(context.Background(), "  ", testDay(t))
	if err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestResponseSnippetTruncates(t *testing.T) {
	long := make([]byte, 2048)
	for i := range long {
		long[i] = 'x'
	}
	got := responseSnippet(long)
	assert.Equal(t, 512+3, len(got))

	assert.Equal(t, "<empty>", responseSnippet([]byte("   ")))
}
