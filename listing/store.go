// Package listing tracks coins reserved by the user's open listings.
//
// A coin attached to a live ask or bid must not be selected again as a
// funding input until the listing settles or is cancelled. The store
// persists reservations across sessions keyed by "txid:vout".
package listing

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/ordbook/libordbook-go/tx"
)

var bucketReserved = []byte("reserved")

// Store persists listing reservations in a bbolt database.
type Store struct {
	db *bbolt.DB
}

// OpenStore opens or creates the reservation database at dbPath. The parent
// directory is created if it does not exist.
func OpenStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("listing: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("listing: open bolt db: %w", err)
	}

	err = db.Update(func(btx *bbolt.Tx) error {
		_, err := btx.CreateBucketIfNotExists(bucketReserved)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("listing: create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Reserve marks an outpoint as locked by the given order. Reserving an
// already-reserved outpoint for a different order fails.
func (s *Store) Reserve(outpoint, orderID string) error {
	if outpoint == "" {
		return ErrEmptyOutpoint
	}
	return s.db.Update(func(btx *bbolt.Tx) error {
		b := btx.Bucket(bucketReserved)
		if existing := b.Get([]byte(outpoint)); existing != nil && string(existing) != orderID {
			return fmt.Errorf("%w: %s held by order %s", ErrAlreadyReserved, outpoint, existing)
		}
		return b.Put([]byte(outpoint), []byte(orderID))
	})
}

// Release removes a reservation. Releasing an unknown outpoint is a no-op.
func (s *Store) Release(outpoint string) error {
	return s.db.Update(func(btx *bbolt.Tx) error {
		return btx.Bucket(bucketReserved).Delete([]byte(outpoint))
	})
}

// ReleaseOrder removes every reservation held by the given order.
func (s *Store) ReleaseOrder(orderID string) error {
	return s.db.Update(func(btx *bbolt.Tx) error {
		b := btx.Bucket(bucketReserved)
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if string(v) == orderID {
				if err := c.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Reserved returns all reservations as a map from outpoint to order ID.
func (s *Store) Reserved() (map[string]string, error) {
	out := make(map[string]string)
	err := s.db.View(func(btx *bbolt.Tx) error {
		return btx.Bucket(bucketReserved).ForEach(func(k, v []byte) error {
			out[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("listing: read reservations: %w", err)
	}
	return out, nil
}

// IsReserved reports whether the outpoint is locked by any order.
func (s *Store) IsReserved(outpoint string) (bool, error) {
	var found bool
	err := s.db.View(func(btx *bbolt.Tx) error {
		found = btx.Bucket(bucketReserved).Get([]byte(outpoint)) != nil
		return nil
	})
	return found, err
}

// FilterAvailable returns the coins not present in the reserved set.
func FilterAvailable(coins []*tx.Coin, reserved map[string]string) []*tx.Coin {
	out := make([]*tx.Coin, 0, len(coins))
	for _, c := range coins {
		if _, ok := reserved[c.OutPoint()]; !ok {
			out = append(out, c)
		}
	}
	return out
}
