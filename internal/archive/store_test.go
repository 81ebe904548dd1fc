package archive

import (
	"path/filepath"
	"testing"

	"github.com/arthsutra/bazaar-harvester/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMarkAndSeen(t *testing.T) {
	s := openTestStore(t)
	a := domain.Article{Title: "HDFC Bank profit", URL: "https://example.com/a"}

	seen, err := s.Seen(a)
	if err != nil {
		t.Fatalf("Seen: %v", err)
	}
	if seen {
		t.Fatal("fresh store should not know the article")
	}

	if err := s.Mark(a); err != nil {
		t.Fatalf("Mark: %v", err)
	}

	seen, err = s.Seen(a)
	if err != nil {
		t.Fatalf("Seen: %v", err)
	}
	if !seen {
		t.Fatal("marked article should be seen")
	}
}

func TestSeenDistinguishesTitleURLPairs(t *testing.T) {
	s := openTestStore(t)
	if err := s.Mark(domain.Article{Title: "same", URL: "https://a"}); err != nil {
		t.Fatalf("Mark: %v", err)
	}

	seen, err := s.Seen(domain.Article{Title: "same", URL: "https://b"})
	if err != nil {
		t.Fatalf("Seen: %v", err)
	}
	if seen {
		t.Error("same title with different URL must be a different record")
	}
}

func TestFilterUnseen(t *testing.T) {
	s := openTestStore(t)
	old := domain.Article{Title: "old", URL: "https://old"}
	fresh := domain.Article{Title: "fresh", URL: "https://fresh"}

	if err := s.MarkAll([]domain.Article{old}); err != nil {
		t.Fatalf("MarkAll: %v", err)
	}

	out, err := s.FilterUnseen([]domain.Article{old, fresh})
	if err != nil {
		t.Fatalf("FilterUnseen: %v", err)
	}
	if len(out) != 1 || out[0].Title != "fresh" {
		t.Fatalf("FilterUnseen = %+v, want only the fresh article", out)
	}
}

func TestMarkAllEmpty(t *testing.T) {
	s := openTestStore(t)
	if err := s.MarkAll(nil); err != nil {
		t.Fatalf("MarkAll(nil): %v", err)
	}
}
