// Package history records recently played stations in a bbolt database.
package history

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"lofigirl-terminal/internal/station"
)

// DefaultLimit caps stored entries when Open is given a non-positive limit.
const DefaultLimit = 50

var historyBucket = []byte("history")

var ErrClosed = errors.New("history store closed")

type Entry struct {
	ID        string    `json:"id"`
	StationID string    `json:"station_id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	PlayedAt  time.Time `json:"played_at"`
}

// Store keeps at most limit entries, one per station, newest last in key order.
type Store struct {
	db    *bbolt.DB
	limit int
	now   func() time.Time
}

func Open(path string, limit int) (*Store, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("could not open history database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(historyBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not create history bucket: %w", err)
	}

	return &Store{db: db, limit: limit, now: time.Now}, nil
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

// Add records rec as the most recent play, replacing any older entry for the
// same station and trimming the oldest entries past the limit.
func (s *Store) Add(rec station.Record) (Entry, error) {
	if s == nil || s.db == nil {
		return Entry{}, ErrClosed
	}

	entry := Entry{
		ID:        uuid.NewString(),
		StationID: rec.ID,
		Name:      rec.Name,
		URL:       rec.URL,
		PlayedAt:  s.now(),
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(historyBucket)

		if err := deleteStation(b, rec.ID); err != nil {
			return err
		}

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		value, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("error serializing history entry: %w", err)
		}
		if err := b.Put(sequenceKey(seq), value); err != nil {
			return err
		}

		return trim(b, s.limit)
	})
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func deleteStation(b *bbolt.Bucket, stationID string) error {
	c := b.Cursor()
	for k, v := c.First(); k != nil; {
		var entry Entry
		if err := json.Unmarshal(v, &entry); err == nil && entry.StationID == stationID {
			if err := c.Delete(); err != nil {
				return err
			}
			// Delete moves the cursor; re-seek to the following key.
			k, v = c.Seek(k)
			continue
		}
		k, v = c.Next()
	}
	return nil
}

func trim(b *bbolt.Bucket, limit int) error {
	count := 0
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		count++
	}

	excess := count - limit
	for k, _ := c.First(); k != nil && excess > 0; k, _ = c.First() {
		if err := c.Delete(); err != nil {
			return err
		}
		excess--
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}

	var entries []Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(historyBucket).Cursor()
		for k, v := c.Last(); k != nil && len(entries) < n; k, v = c.Prev() {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("error deserializing history entry: %w", err)
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Clear removes every entry.
func (s *Store) Clear() error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(historyBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(historyBucket)
		return err
	})
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
