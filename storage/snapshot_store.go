// Package storage caches farm inventory snapshots in BadgerDB so a
// farm that is unreachable can still be reconciled against its last
// known state.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"farmdiff/farm"
)

// ErrNoSnapshot is returned when a farm has no cached snapshot.
var ErrNoSnapshot = errors.New("storage: no snapshot for farm")

// Snapshot describes one cached inventory.
type Snapshot struct {
	ID      string    `json:"id"`
	Farm    string    `json:"farm"`
	TakenAt time.Time `json:"takenAt"`
	Count   int       `json:"count"`
}

// storedSnapshot is the on-disk value: metadata plus the full app list.
type storedSnapshot struct {
	Snapshot
	Apps []farm.PublishedApp `json:"apps"`
}

// SnapshotStore implements the snapshot cache using BadgerDB.
type SnapshotStore struct {
	db *badger.DB
}

// Open creates a snapshot store at the given path.
func Open(path string) (*SnapshotStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: opening badger: %w", err)
	}
	return &SnapshotStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// snapKey orders snapshots of one farm by capture time. The fixed-width
// timestamp keeps lexicographic and chronological order aligned.
func snapKey(farmName string, takenAt time.Time) []byte {
	return []byte(fmt.Sprintf("snap/%s/%020d", farmName, takenAt.UnixNano()))
}

func snapPrefix(farmName string) []byte {
	return []byte("snap/" + farmName + "/")
}

// Save caches an inventory and returns its snapshot metadata.
func (s *SnapshotStore) Save(inv *farm.Inventory) (Snapshot, error) {
	snap := Snapshot{
		ID:      uuid.NewString(),
		Farm:    inv.Farm,
		TakenAt: time.Now().UTC(),
		Count:   len(inv.Apps),
	}
	value, err := json.Marshal(storedSnapshot{Snapshot: snap, Apps: inv.Apps})
	if err != nil {
		return Snapshot{}, fmt.Errorf("storage: encoding snapshot: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapKey(inv.Farm, snap.TakenAt), value)
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("storage: writing snapshot: %w", err)
	}
	return snap, nil
}

// Latest returns the most recent cached inventory for a farm.
func (s *SnapshotStore) Latest(farmName string) (*farm.Inventory, Snapshot, error) {
	var stored storedSnapshot
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = snapPrefix(farmName)

		it := txn.NewIterator(opts)
		defer it.Close()

		// Seek past the end of the prefix range; reverse iteration then
		// lands on the newest key.
		seek := append(snapPrefix(farmName), 0xFF)
		it.Seek(seek)
		if !it.Valid() {
			return nil
		}
		found = true
		return it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		})
	})
	if err != nil {
		return nil, Snapshot{}, fmt.Errorf("storage: reading snapshot: %w", err)
	}
	if !found {
		return nil, Snapshot{}, ErrNoSnapshot
	}
	return &farm.Inventory{Farm: stored.Farm, Apps: stored.Apps}, stored.Snapshot, nil
}

// List returns the snapshot metadata for a farm, oldest first.
func (s *SnapshotStore) List(farmName string) ([]Snapshot, error) {
	var snaps []Snapshot

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = snapPrefix(farmName)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(snapPrefix(farmName)); it.Valid(); it.Next() {
			var stored storedSnapshot
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &stored)
			})
			if err != nil {
				return err
			}
			snaps = append(snaps, stored.Snapshot)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: listing snapshots: %w", err)
	}
	return snaps, nil
}
