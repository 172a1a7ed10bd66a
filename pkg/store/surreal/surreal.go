// Package surreal implements [store.Store] on SurrealDB.
//
// Save documents live in the user_saves table under an array record ID of
// [owner, kind, key], which maps the logical addressing scheme
// collection(user_saves)/doc(owner)/collection(kind)/doc(key) onto a single
// table while keeping per-document get/set/delete atomic on the server
// side. Owner, kind and key are also stored as fields so the bulk reads can
// stay plain parameterized WHERE queries.
//
// The connection is configured with the surrealcbor codec rather than the
// default marshaler: SurrealDB speaks CBOR natively, and the custom codec
// is what makes time.Time and RecordID fields round-trip correctly.
package surreal

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/surrealdb/surrealdb.go/surrealcbor"

	"github.com/newteatrade/saves/pkg/models"
	"github.com/newteatrade/saves/pkg/store"
)

const table = "user_saves"

// Config carries the connection parameters for the document store.
type Config struct {
	// URL is the SurrealDB endpoint, e.g. "ws://localhost:8000/rpc".
	URL string
	// Namespace and Database select the keyspace to use.
	Namespace string
	Database  string
}

// Connect dials the SurrealDB endpoint with the surrealcbor codec and
// selects the configured namespace and database. The returned DB carries no
// authentication; callers sign in through the auth provider before the
// store is usable for record-scoped data.
func Connect(ctx context.Context, cfg Config) (*surrealdb.DB, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse store URL: %w", err)
	}

	conf := connection.NewConfig(u)
	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	db, err := surrealdb.FromConnection(ctx, gorillaws.New(conf))
	if err != nil {
		return nil, fmt.Errorf("connect to store: %w", err)
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("select namespace/database: %w", err)
	}
	return db, nil
}

// Store is the SurrealDB-backed store.Store.
type Store struct {
	db *surrealdb.DB
}

var _ store.Store = (*Store)(nil)

// New wraps an already-connected DB. The DB is shared with the auth
// provider so store calls run under the signed-in user's session.
func New(db *surrealdb.DB) *Store {
	return &Store{db: db}
}

// row is the wire shape of a save document. Data is typed per kind so the
// CBOR codec can unmarshal it without reflection tricks.
type row[T models.DisplayFields] struct {
	ID      *surrealmodels.RecordID `json:"id,omitempty"`
	Owner   models.UserID           `json:"owner"`
	Kind    models.Kind             `json:"kind"`
	Key     models.EncodedKey       `json:"key"`
	Data    T                       `json:"data"`
	SavedAt time.Time               `json:"saved_at"`
}

func recordID(owner models.UserID, kind models.Kind, key models.EncodedKey) surrealmodels.RecordID {
	return surrealmodels.RecordID{
		Table: table,
		ID:    []any{owner.String(), string(kind), string(key)},
	}
}

func (s *Store) Get(ctx context.Context, owner models.UserID, kind models.Kind, key models.EncodedKey) (*models.SaveRecord, error) {
	switch kind {
	case models.KindProducts:
		return getRecord[models.ProductFields](ctx, s, owner, kind, key)
	case models.KindRecipes:
		return getRecord[models.RecipeFields](ctx, s, owner, kind, key)
	case models.KindJobs:
		return getRecord[models.JobFields](ctx, s, owner, kind, key)
	}
	return nil, fmt.Errorf("get save: unknown kind %q", kind)
}

func getRecord[T models.DisplayFields](ctx context.Context, s *Store, owner models.UserID, kind models.Kind, key models.EncodedKey) (*models.SaveRecord, error) {
	r, err := surrealdb.Select[row[T]](ctx, s.db, recordID(owner, kind, key))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get save %s/%s: %w", kind, key, err)
	}
	if r == nil || r.ID == nil {
		return nil, nil
	}
	return fromRow(r), nil
}

// isNotFound recognizes the errors SurrealDB reports for a select on a
// record that does not exist, which the Store contract maps to nil.
func isNotFound(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Expected a single or multiple results but got 0") ||
		strings.Contains(msg, "cannot unmarshal array into Go value")
}

func fromRow[T models.DisplayFields](r *row[T]) *models.SaveRecord {
	return &models.SaveRecord{
		Owner:   r.Owner,
		Kind:    r.Kind,
		Key:     r.Key,
		Data:    r.Data,
		SavedAt: r.SavedAt,
	}
}

func (s *Store) Put(ctx context.Context, rec *models.SaveRecord) error {
	switch data := rec.Data.(type) {
	case models.ProductFields:
		return putRecord(ctx, s, rec, data)
	case models.RecipeFields:
		return putRecord(ctx, s, rec, data)
	case models.JobFields:
		return putRecord(ctx, s, rec, data)
	}
	return fmt.Errorf("put save: unknown display fields %T", rec.Data)
}

// putRecord upserts so a racing double save converges on the same document.
func putRecord[T models.DisplayFields](ctx context.Context, s *Store, rec *models.SaveRecord, data T) error {
	rid := recordID(rec.Owner, rec.Kind, rec.Key)
	_, err := surrealdb.Upsert[row[T]](ctx, s.db, rid, row[T]{
		Owner:   rec.Owner,
		Kind:    rec.Kind,
		Key:     rec.Key,
		Data:    data,
		SavedAt: rec.SavedAt,
	})
	if err != nil {
		return fmt.Errorf("put save %s/%s: %w", rec.Kind, rec.Key, err)
	}
	return nil
}

// Delete removes the save document. Deleting a record that is already gone
// succeeds, which is what makes a racing double unsave harmless.
func (s *Store) Delete(ctx context.Context, owner models.UserID, kind models.Kind, key models.EncodedKey) error {
	_, err := surrealdb.Delete[any](ctx, s.db, recordID(owner, kind, key))
	if err != nil {
		return fmt.Errorf("delete save %s/%s: %w", kind, key, err)
	}
	return nil
}

type keyRow struct {
	Key models.EncodedKey `json:"key"`
}

func (s *Store) Keys(ctx context.Context, owner models.UserID, kind models.Kind) ([]models.EncodedKey, error) {
	res, err := surrealdb.Query[[]keyRow](ctx, s.db,
		"SELECT key FROM type::table($table) WHERE owner = $owner AND kind = $kind ORDER BY saved_at",
		map[string]any{
			"table": table,
			"owner": owner,
			"kind":  kind,
		})
	if err != nil {
		return nil, fmt.Errorf("list saved keys for %s: %w", kind, err)
	}

	keys := []models.EncodedKey{}
	if res != nil && len(*res) > 0 {
		for _, r := range (*res)[0].Result {
			keys = append(keys, r.Key)
		}
	}
	return keys, nil
}

func (s *Store) List(ctx context.Context, owner models.UserID, kind models.Kind) ([]*models.SaveRecord, error) {
	switch kind {
	case models.KindProducts:
		return listRecords[models.ProductFields](ctx, s, owner, kind)
	case models.KindRecipes:
		return listRecords[models.RecipeFields](ctx, s, owner, kind)
	case models.KindJobs:
		return listRecords[models.JobFields](ctx, s, owner, kind)
	}
	return nil, fmt.Errorf("list saves: unknown kind %q", kind)
}

func listRecords[T models.DisplayFields](ctx context.Context, s *Store, owner models.UserID, kind models.Kind) ([]*models.SaveRecord, error) {
	res, err := surrealdb.Query[[]row[T]](ctx, s.db,
		"SELECT * FROM type::table($table) WHERE owner = $owner AND kind = $kind ORDER BY saved_at",
		map[string]any{
			"table": table,
			"owner": owner,
			"kind":  kind,
		})
	if err != nil {
		return nil, fmt.Errorf("list saves for %s: %w", kind, err)
	}

	recs := []*models.SaveRecord{}
	if res != nil && len(*res) > 0 {
		for i := range (*res)[0].Result {
			recs = append(recs, fromRow(&(*res)[0].Result[i]))
		}
	}
	return recs, nil
}

func (s *Store) Close() error {
	return s.db.Close(context.Background())
}
