// Package store keeps declarative plan descriptions by name, so processes
// running online loops can rebuild the same plans after a restart.
package store

import (
	"errors"
	"time"
)

// Store persists plan descriptions.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores data under name. Saving an existing name replaces the
	// data and increments its version.
	Save(name string, data []byte) error

	// Load retrieves the latest data for name.
	// Returns ErrNotFound if nothing is stored under name.
	Load(name string) ([]byte, error)

	// List returns metadata for every stored name, ordered by name.
	// Returns an empty slice (not error) if the store is empty.
	List() ([]Info, error)

	// Delete removes name.
	// Returns nil if nothing is stored under name.
	Delete(name string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides metadata without loading the data.
type Info struct {
	Name      string
	Version   int
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates nothing is stored under the name.
	ErrNotFound = errors.New("plan description not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("plan store closed")

	// ErrEmptyName indicates an empty name was given to Save.
	ErrEmptyName = errors.New("plan name is empty")
)
