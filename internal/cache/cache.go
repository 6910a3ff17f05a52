// Package cache provides an optional bbolt-backed page cache so repeated
// runs against the same documentation site skip refetching.
package cache

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketPages = []byte("pages")

// PageCache stores fetched page bodies keyed by URL.
type PageCache struct {
	db *bolt.DB
}

// Open opens (or creates) a page cache at the given path.
func Open(path string) (*PageCache, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPages)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache bucket: %w", err)
	}

	return &PageCache{db: db}, nil
}

// Get returns the cached body for a URL, if present.
func (c *PageCache) Get(url string) ([]byte, bool) {
	var body []byte
	_ = c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketPages).Get([]byte(url)); v != nil {
			body = make([]byte, len(v))
			copy(body, v)
		}
		return nil
	})
	return body, body != nil
}

// Put stores the body for a URL, overwriting any previous entry.
func (c *PageCache) Put(url string, body []byte) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPages).Put([]byte(url), body)
	})
}

// Close closes the underlying database.
func (c *PageCache) Close() error {
	return c.db.Close()
}
