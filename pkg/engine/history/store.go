// Folio: A streamlined CLI tool for searching and downloading web novels.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"Folio/pkg/core"
	"Folio/pkg/errors"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var bucketDownloads = []byte("downloads")

// lockTimeout bounds how long an operation waits for another process
// holding the database.
const lockTimeout = 2 * time.Second

// Store persists download outcomes in a bbolt database, keyed by run ID.
// Run IDs are UUIDv7, so key order is chronological. The database file is
// only held open for the duration of a single operation, so several processes
// can share one history.
type Store struct {
	path string
}

// Open prepares the history database at path. The file itself is created by
// the first write.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Track(err).WithFileContext(path, "mkdir").AsFileSystem().Error()
	}
	return &Store{path: path}, nil
}

// Path returns the database location
func (s *Store) Path() string {
	return s.path
}

func (s *Store) update(fn func(b *bolt.Bucket) error) error {
	db, err := bolt.Open(s.path, 0600, &bolt.Options{Timeout: lockTimeout})
	if err != nil {
		return errors.Track(err).WithFileContext(s.path, "open").AsFileSystem().Error()
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketDownloads)
		if err != nil {
			return err
		}
		return fn(b)
	})
}

// view runs fn under a shared lock. A missing database or bucket yields a nil
// bucket.
func (s *Store) view(fn func(b *bolt.Bucket) error) error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fn(nil)
	}

	db, err := bolt.Open(s.path, 0600, &bolt.Options{Timeout: lockTimeout, ReadOnly: true})
	if err != nil {
		return errors.Track(err).WithFileContext(s.path, "open").AsFileSystem().Error()
	}
	defer db.Close()

	return db.View(func(tx *bolt.Tx) error {
		return fn(tx.Bucket(bucketDownloads))
	})
}

// NewRunID returns a fresh time-ordered run identifier.
func NewRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Record stores outcome under its RunID, assigning one when missing.
func (s *Store) Record(outcome *core.DownloadOutcome) error {
	if outcome.RunID == "" {
		outcome.RunID = NewRunID()
	}

	data, err := json.Marshal(outcome)
	if err != nil {
		return errors.Track(err).AsParser().Error()
	}

	return s.update(func(b *bolt.Bucket) error {
		return b.Put([]byte(outcome.RunID), data)
	})
}

// Get returns the outcome recorded under runID
func (s *Store) Get(runID string) (*core.DownloadOutcome, error) {
	var outcome *core.DownloadOutcome

	err := s.view(func(b *bolt.Bucket) error {
		var v []byte
		if b != nil {
			v = b.Get([]byte(runID))
		}
		if v == nil {
			return errors.Track(errors.ErrNotFound).WithContext("run_id", runID).AsNotFound().Error()
		}
		outcome = &core.DownloadOutcome{}
		return json.Unmarshal(v, outcome)
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// List returns up to limit outcomes, newest first. A non-positive limit
// returns everything. When bookID is not empty only that book's runs are kept.
func (s *Store) List(limit int, bookID string) ([]core.DownloadOutcome, error) {
	var outcomes []core.DownloadOutcome

	err := s.view(func(b *bolt.Bucket) error {
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var o core.DownloadOutcome
			if err := json.Unmarshal(v, &o); err != nil {
				continue
			}
			if bookID != "" && o.BookID != bookID {
				continue
			}
			outcomes = append(outcomes, o)
			if limit > 0 && len(outcomes) >= limit {
				break
			}
		}
		return nil
	})
	return outcomes, err
}

// Clear removes every recorded outcome
func (s *Store) Clear() error {
	return s.update(func(b *bolt.Bucket) error {
		var keys [][]byte
		if err := b.ForEach(func(k, _ []byte) error {
			keys = append(keys, append([]byte(nil), k...))
			return nil
		}); err != nil {
			return err
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}
