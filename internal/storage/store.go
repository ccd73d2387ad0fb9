// Package storage provides the key-value persistence layer.  State lives in
// a handful of independently keyed JSON blobs; every write replaces a whole
// blob, so the policy is last-writer-wins with no conflict detection.
package storage

import (
	"context"
	"errors"
)

// Keys for the persisted blobs.  The names match the dashboard's legacy
// browser storage so an exported dump loads unchanged.
const (
	KeyReservations     = "studycafe_reservations"
	KeyFeatureOverrides = "studycafe_seat_features"
	KeyMusicState       = "background-music-storage"
)

// ErrKeyNotFound is returned by Get when the key holds no value yet.
var ErrKeyNotFound = errors.New("storage: key not found")

// Store is the abstract key-value backend.  The in-memory implementation
// backs tests; Redis and MySQL back real deployments.
type Store interface {
	// Get returns the blob stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the blob stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key.  Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
