package receipt

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const transcriptBucket = "transcripts"

// TextCache stores recognized text keyed by image content
type TextCache interface {
	// Get returns the cached text for key and whether it was found
	Get(key string) (string, bool, error)

	// Put stores the text for key
	Put(key string, text string) error

	// Close closes the cache
	Close() error
}

// ImageKey derives a cache key from the raw image bytes
func ImageKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// BoltCache implements the TextCache interface using BoltDB
type BoltCache struct {
	db *bbolt.DB
}

// NewBoltCache opens (or creates) the cache file at path
func NewBoltCache(path string) (*BoltCache, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(transcriptBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltCache{db: db}, nil
}

// Get returns the cached transcript for key
func (b *BoltCache) Get(key string) (string, bool, error) {
	var (
		text  string
		found bool
	)
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(transcriptBucket)).Get([]byte(key))
		if data == nil {
			return nil
		}
		// data is only valid inside the transaction
		text = string(data)
		found = true
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("reading transcript: %w", err)
	}
	return text, found, nil
}

// Put stores the transcript for key, replacing any previous value
func (b *BoltCache) Put(key string, text string) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(transcriptBucket)).Put([]byte(key), []byte(text))
	})
	if err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}
	return nil
}

// Close closes the database
func (b *BoltCache) Close() error {
	return b.db.Close()
}

// noCache is used when no cache is configured
type noCache struct{}

func (noCache) Get(string) (string, bool, error) { return "", false, nil }
func (noCache) Put(string, string) error { return nil }
func (noCache) Close() error { return nil }
