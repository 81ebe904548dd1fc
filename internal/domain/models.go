package domain

// Domain contains core models shared across the harvest pipeline.

// Category identifies which query produced an article.
type Category string

const (
	CategoryCompany Category = "company"
	CategorySector  Category = "sector"
)

// Article is one harvested news record. SeenDate is kept exactly as the
// upstream API returned it; the export ordering relies on its raw string form.
type Article struct {
	SeenDate       string
	Title          string
	URL            string
	Domain         string
	Language       string
	SourceCountry  string
	RelevanceScore int
	Category       Category

	// Filled by the optional enrichment stage only; never exported to CSV.
	Description string
	ImageURL    string
}

// Key returns the identity of an article for deduplication purposes.
// Articles are considered the same record when both title and URL match.
func (a Article) Key() string {
	return a.Title + "\x00" + a.URL
}
