// Package store implements the persistent per-target marker store on BoltDB.
package store

import (
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// DBFile is the database file name under the global cache root.
const DBFile = "targets.db"

// Bucket names. Each marker kind gets its own bucket so clearing one never
// scans the other.
const (
	rebuildBucket = "rebuild-after-version-change"
	sourcesBucket = "has-sources"
)

// Store implements ports.TargetDataStore using BoltDB. A missing key reads as
// an unset marker.
type Store struct {
	db *bbolt.DB
}

var _ ports.TargetDataStore = (*Store)(nil)

// Open opens (or creates) the marker database in dir. The open times out
// instead of blocking forever on a concurrent build holding the file lock.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create store directory"), "path", dir)
	}
	path := filepath.Join(dir, DBFile)

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open target data store"), "path", path)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{rebuildBucket, sourcesBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, zerr.Wrap(err, "failed to create marker buckets")
	}

	return &Store{db: db}, nil
}

// SetRebuildAfterVersionChange records that the target must be fully rebuilt.
func (s *Store) SetRebuildAfterVersionChange(id domain.TargetID) error {
	return s.put(rebuildBucket, id, true)
}

// ClearRebuildAfterVersionChange removes the rebuild marker.
func (s *Store) ClearRebuildAfterVersionChange(id domain.TargetID) error {
	return s.delete(rebuildBucket, id)
}

// RebuildAfterVersionChange reports whether the rebuild marker is set.
func (s *Store) RebuildAfterVersionChange(id domain.TargetID) (bool, error) {
	return s.get(rebuildBucket, id)
}

// SetHasSources records whether the target currently owns source files.
func (s *Store) SetHasSources(id domain.TargetID, has bool) error {
	if !has {
		return s.delete(sourcesBucket, id)
	}
	return s.put(sourcesBucket, id, true)
}

// HasSources reports the recorded source presence for the target.
func (s *Store) HasSources(id domain.TargetID) (bool, error) {
	return s.get(sourcesBucket, id)
}

// Close releases the database file lock.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) put(bucket string, id domain.TargetID, value bool) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		data := []byte{0}
		if value {
			data[0] = 1
		}
		return tx.Bucket([]byte(bucket)).Put([]byte(id.String()), data)
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to set target marker"), "target", id.String())
	}
	return nil
}

func (s *Store) delete(bucket string, id domain.TargetID) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Delete([]byte(id.String()))
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to clear target marker"), "target", id.String())
	}
	return nil
}

func (s *Store) get(bucket string, id domain.TargetID) (bool, error) {
	var set bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucket)).Get([]byte(id.String()))
		set = len(data) == 1 && data[0] == 1
		return nil
	})
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to read target marker"), "target", id.String())
	}
	return set, nil
}
