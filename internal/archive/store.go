package archive

import (
	"crypto/sha1" //nolint:gosec // non-cryptographic id generation
	"encoding/hex"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/arthsutra/bazaar-harvester/internal/domain"
)

var bucketExported = []byte("exported")

// Store records which articles previous runs already exported, keyed by a
// hash of (title, url). It backs the optional cross-run skip; single-run
// deduplication never touches it.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the archive at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketExported)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init archive bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Seen reports whether the article was exported by an earlier run.
func (s *Store) Seen(a domain.Article) (bool, error) {
	var seen bool
	err := s.db.View(func(tx *bolt.Tx) error {
		seen = tx.Bucket(bucketExported).Get(articleKey(a)) != nil
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("read archive: %w", err)
	}
	return seen, nil
}

// Mark records a single exported article.
func (s *Store) Mark(a domain.Article) error {
	return s.MarkAll([]domain.Article{a})
}

// MarkAll records a batch of exported articles in one transaction.
func (s *Store) MarkAll(articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketExported)
		stamp := []byte(time.Now().UTC().Format(time.RFC3339))
		for _, a := range articles {
			if err := bucket.Put(articleKey(a), stamp); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

// FilterUnseen returns the articles the archive has no record of, preserving
// input order.
func (s *Store) FilterUnseen(articles []domain.Article) ([]domain.Article, error) {
	out := make([]domain.Article, 0, len(articles))
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketExported)
		for _, a := range articles {
			if bucket.Get(articleKey(a)) == nil {
				out = append(out, a)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	return out, nil
}

func articleKey(a domain.Article) []byte {
	sum := sha1.Sum([]byte(a.Key()))
	return []byte(hex.EncodeToString(sum[:]))
}
