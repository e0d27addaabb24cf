package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
)

// BoltStore keeps documents in a local bbolt file, one bucket per
// collection, for single-user setups with no Redis available. Etag checks
// run inside the update transaction.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (creating if needed) the database file at path.
func NewBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Close closes the database file.
func (s *BoltStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetDocuments returns every document in the collection.
func (s *BoltStore) GetDocuments(ctx context.Context, collection string) ([]*bugbash.BugBash, error) {
	docs := []*bugbash.BugBash{}

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(collection))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(_, v []byte) error {
			var doc bugbash.BugBash
			if err := json.Unmarshal(v, &doc); err != nil {
				// Undecodable rows are skipped, not fatal.
				return nil
			}
			docs = append(docs, &doc)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// GetDocument returns the document with the given id.
func (s *BoltStore) GetDocument(ctx context.Context, collection, id string) (*bugbash.BugBash, error) {
	var doc *bugbash.BugBash

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(collection))
		if bucket == nil {
			return ErrNotFound
		}
		v := bucket.Get([]byte(id))
		if v == nil {
			return ErrNotFound
		}
		var d bugbash.BugBash
		if err := json.Unmarshal(v, &d); err != nil {
			return fmt.Errorf("failed to decode document %s: %w", id, err)
		}
		doc = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// SetDocument creates or updates the document under the etag check and
// returns the stored copy with its incremented etag.
func (s *BoltStore) SetDocument(ctx context.Context, collection string, doc *bugbash.BugBash) (*bugbash.BugBash, error) {
	if doc.ID == "" {
		return nil, fmt.Errorf("document id cannot be empty")
	}

	stored := doc.Clone()

	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(collection))
		if err != nil {
			return err
		}

		key := []byte(doc.ID)
		if v := bucket.Get(key); v != nil {
			var current bugbash.BugBash
			if err := json.Unmarshal(v, &current); err != nil {
				return fmt.Errorf("failed to decode current version: %w", err)
			}
			if current.ETag != doc.ETag {
				return ErrConflict
			}
		} else if doc.ETag != 0 {
			return ErrConflict
		}

		stored.ETag = doc.ETag + 1
		data, err := json.Marshal(stored)
		if err != nil {
			return fmt.Errorf("failed to encode document: %w", err)
		}
		return bucket.Put(key, data)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// DeleteDocument removes the document with the given id.
func (s *BoltStore) DeleteDocument(ctx context.Context, collection, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(collection))
		if bucket == nil || bucket.Get([]byte(id)) == nil {
			return ErrNotFound
		}
		return bucket.Delete([]byte(id))
	})
}
