// Package store persists labelled OIDs.
//
// Two implementations are provided: filestore keeps all records in a single
// JSON document on an afero filesystem, and sqlstore keeps them in a SQL
// table (MySQL in production, SQLite in tests).
package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Lzww0608/oid"
)

var (
	// ErrNotFound is returned when no record has the requested OID
	ErrNotFound = errors.New("store: record not found")
	// ErrExists is returned by Put when a record with the same OID exists
	ErrExists = errors.New("store: record already exists")
	// ErrZeroID is returned by Put for a record without an OID
	ErrZeroID = errors.New("store: record has no OID")
)

// Record is a stored OID with an optional label.
type Record struct {
	ID        oid.OID   `json:"id"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRecord returns a record for id created at the time embedded in the OID.
func NewRecord(id oid.OID, label string) Record {
	return Record{ID: id, Label: label, CreatedAt: id.Time().UTC()}
}

// Store is implemented by every record backend. Implementations are safe for
// concurrent use.
type Store interface {
	// Put inserts r, failing with ErrExists if r.ID is already stored.
	Put(ctx context.Context, r Record) error
	// Get returns the record for id or ErrNotFound.
	Get(ctx context.Context, id oid.OID) (Record, error)
	// List returns the records whose OID has the given prefix, or all records
	// when prefix is empty, ordered by OID.Compare.
	List(ctx context.Context, prefix string) ([]Record, error)
	// Delete removes the record for id or returns ErrNotFound.
	Delete(ctx context.Context, id oid.OID) error
	Close() error
}

// SortRecords orders records by OID.Compare.
func SortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID.Compare(records[j].ID) < 0
	})
}
