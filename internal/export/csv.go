package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/arthsutra/bazaar-harvester/internal/domain"
	"github.com/arthsutra/bazaar-harvester/internal/logger"
)

// ErrNoArticles is returned when a run accumulated nothing; no file is
// written in that case.
var ErrNoArticles = errors.New("no articles to export")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// header matches the article record field names, in the order rows are
// written.
var header = []string{
	"date", "title", "url", "domain", "language",
	"source_country", "relevance_score", "category",
}

// Dedupe removes articles sharing both title and URL, keeping the first
// occurrence in accumulation order.
func Dedupe(articles []domain.Article) []domain.Article {
	seen := make(map[string]struct{}, len(articles))
	out := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		key := a.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}

// SortBySeenDate orders articles ascending by the raw seen-date string. The
// field is compared lexically, never parsed; ties keep their current order.
func SortBySeenDate(articles []domain.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].SeenDate < articles[j].SeenDate
	})
}

// Writer persists a harvest as a single CSV file.
type Writer struct {
	path string
	log  logger.Logger
}

// NewWriter builds a Writer targeting the given file path.
func NewWriter(path string, log logger.Logger) *Writer {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Writer{path: path, log: log}
}

// Write deduplicates, sorts, and writes the articles as UTF-8 CSV with a
// byte-order marker, one row per record under a fixed header. It returns the
// number of data rows written. An empty input returns ErrNoArticles and
// leaves the filesystem untouched.
func (w *Writer) Write(articles []domain.Article) (int, error) {
	if len(articles) == 0 {
		return 0, ErrNoArticles
	}

	rows := Dedupe(articles)
	SortBySeenDate(rows)

	file, err := os.Create(w.path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", w.path, err)
	}
	defer file.Close()

	if _, err := file.Write(utf8BOM); err != nil {
		return 0, fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(file)
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	for _, a := range rows {
		record := []string{
			a.SeenDate,
			a.Title,
			a.URL,
			a.Domain,
			a.Language,
			a.SourceCountry,
			strconv.Itoa(a.RelevanceScore),
			string(a.Category),
		}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}

	w.log.InfoObj("export written", "export_done", map[string]any{
		"path": w.path,
		"rows": len(rows),
	})
	return len(rows), nil
}
