// Package store persists named trees.
//
// A [Record] holds one serialized tree document under a unique name, with
// bookkeeping (ID, timestamps). The [Store] interface has three backends:
//   - [MemoryStore]: in-memory storage for development/testing
//   - [FileStore]: file-based storage for CLI applications
//   - [MongoStore]: MongoDB-backed storage for shared deployments
//
// # Usage
//
//	// CLI
//	st, err := store.NewFileStore("") // Uses ~/.config/treap/trees/
//
//	// Shared deployment
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI: "mongodb://localhost:27017",
//	})
//
//	rec := store.NewRecord("mytree", doc)
//	err = st.Put(ctx, rec)
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Record is a stored tree with its bookkeeping.
type Record struct {
	ID        uuid.UUID       `json:"id" bson:"id"`
	Name      string          `json:"name" bson:"name"`
	Tree      json.RawMessage `json:"tree" bson:"tree"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" bson:"updated_at"`
}

// NewRecord creates a record for the given tree document. ID and timestamps
// are stamped on the first Put.
func NewRecord(name string, tree json.RawMessage) *Record {
	return &Record{Name: name, Tree: tree}
}

// Store is the interface for tree storage backends.
type Store interface {
	// Get retrieves a record by name.
	// Returns nil, nil if no record exists under the name.
	Get(ctx context.Context, name string) (*Record, error)

	// Put stores a record under its name, replacing any existing one.
	// Replacing keeps the original ID and CreatedAt; UpdatedAt is always
	// stamped with the write time.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a record by name. Deleting a missing name is not an
	// error.
	Delete(ctx context.Context, name string) error

	// List returns all records sorted by name.
	List(ctx context.Context) ([]*Record, error)

	// Close releases backend resources.
	Close() error
}

// stamp fills a record's bookkeeping fields before a write. prev is the
// record currently stored under the same name, or nil.
func stamp(rec *Record, prev *Record, now time.Time) {
	if prev != nil {
		rec.ID = prev.ID
		rec.CreatedAt = prev.CreatedAt
	} else {
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
	}
	rec.UpdatedAt = now
}
