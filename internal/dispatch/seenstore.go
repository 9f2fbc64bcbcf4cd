package dispatch

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/karmabot/karmalog/internal/feed"
)

var (
	seenBucket      = []byte("seen")
	watermarkBucket = []byte("watermarks")
)

// Record is the stored trace of one delivered event.
type Record struct {
	ID          string    `json:"id"`
	Project     string    `json:"project"`
	Revision    string    `json:"revision"`
	Updated     string    `json:"updated"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// SeenStore persists which (project, revision) events have already been
// delivered, plus the per-project watermark the sequencer computes.
type SeenStore struct {
	db *bolt.DB
}

// OpenSeenStore opens (creating if needed) the store at path.
func OpenSeenStore(path string) (*SeenStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open seen store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{seenBucket, watermarkBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}

	return &SeenStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SeenStore) Close() error {
	return s.db.Close()
}

func seenKey(project, key string) []byte {
	return []byte(project + "\x00" + key)
}

// Seen reports whether an event was already delivered.
func (s *SeenStore) Seen(project, key string) (bool, error) {
	var seen bool
	err := s.db.View(func(tx *bolt.Tx) error {
		seen = tx.Bucket(seenBucket).Get(seenKey(project, key)) != nil
		return nil
	})
	return seen, err
}

// Mark records a delivered event.
func (s *SeenStore) Mark(project, key, revision string, updated feed.TimeKey) error {
	rec := Record{
		ID:          uuid.NewString(),
		Project:     project,
		Revision:    revision,
		Updated:     string(updated),
		DeliveredAt: time.Now().UTC(),
	}
	buf, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(seenBucket).Put(seenKey(project, key), buf)
	})
}

// SetWatermark stores the latest timestamp key seen for a project.
func (s *SeenStore) SetWatermark(project string, key feed.TimeKey) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(watermarkBucket).Put([]byte(project), []byte(key))
	})
}

// Watermark returns the stored watermark for a project ("" when none).
func (s *SeenStore) Watermark(project string) (feed.TimeKey, error) {
	var key feed.TimeKey
	err := s.db.View(func(tx *bolt.Tx) error {
		key = feed.TimeKey(tx.Bucket(watermarkBucket).Get([]byte(project)))
		return nil
	})
	return key, err
}
