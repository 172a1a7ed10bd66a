// Package store defines the persistence boundary of the save subsystem.
//
// A [Store] is a per-user, per-kind key-value collection where existence of
// a key means "saved". Implementations back it with SurrealDB
// ([github.com/newteatrade/saves/pkg/store/surreal]) or plain memory
// ([github.com/newteatrade/saves/pkg/store/memory]); the save logic never
// sees which one it has.
package store

import (
	"context"

	"github.com/newteatrade/saves/pkg/models"
)

// Store is the document-store surface consumed by the save logic.
//
// Semantics shared by all implementations:
//   - Get returns nil without error for a missing record.
//   - Put replaces any existing record at the same (owner, kind, key);
//     last write wins, so a racing double save converges.
//   - Delete of a missing record is a no-op, so a racing double unsave
//     converges too.
//   - Keys and List return empty slices for users with no saves, never nil,
//     and preserve the store's record order.
//
// All methods accept a context and respect its cancellation. None of them
// retry: a failed call is reported once and the caller decides what the
// user sees.
type Store interface {
	// Get fetches the record at (owner, kind, key), or nil if none exists.
	Get(ctx context.Context, owner models.UserID, kind models.Kind, key models.EncodedKey) (*models.SaveRecord, error)

	// Put persists the record under (rec.Owner, rec.Kind, rec.Key).
	Put(ctx context.Context, rec *models.SaveRecord) error

	// Delete removes the record at (owner, kind, key) if present.
	Delete(ctx context.Context, owner models.UserID, kind models.Kind, key models.EncodedKey) error

	// Keys returns the set of encoded keys saved by owner under kind in a
	// single bulk read.
	Keys(ctx context.Context, owner models.UserID, kind models.Kind) ([]models.EncodedKey, error)

	// List returns every record saved by owner under kind.
	List(ctx context.Context, owner models.UserID, kind models.Kind) ([]*models.SaveRecord, error)

	// Close releases the underlying connection. Safe to call twice.
	Close() error
}
