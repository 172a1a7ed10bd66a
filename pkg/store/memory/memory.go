// Package memory provides an in-memory [store.Store] used by tests and by
// the CLI's offline mode.
package memory

import (
	"context"
	"sync"

	"github.com/newteatrade/saves/pkg/models"
	"github.com/newteatrade/saves/pkg/store"
)

type bucketKey struct {
	owner string
	kind  models.Kind
}

// bucket keeps records addressable by key while preserving insertion order,
// matching the ordered collection reads of the real store.
type bucket struct {
	order   []models.EncodedKey
	records map[models.EncodedKey]*models.SaveRecord
}

// Store is a map-backed store.Store. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	buckets map[bucketKey]*bucket
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{buckets: make(map[bucketKey]*bucket)}
}

func (s *Store) Get(ctx context.Context, owner models.UserID, kind models.Kind, key models.EncodedKey) (*models.SaveRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.buckets[bucketKey{owner.String(), kind}]
	if !ok {
		return nil, nil
	}
	rec, ok := b.records[key]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *Store) Put(ctx context.Context, rec *models.SaveRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	bk := bucketKey{rec.Owner.String(), rec.Kind}
	b, ok := s.buckets[bk]
	if !ok {
		b = &bucket{records: make(map[models.EncodedKey]*models.SaveRecord)}
		s.buckets[bk] = b
	}
	if _, exists := b.records[rec.Key]; !exists {
		b.order = append(b.order, rec.Key)
	}
	cp := *rec
	b.records[rec.Key] = &cp
	return nil
}

func (s *Store) Delete(ctx context.Context, owner models.UserID, kind models.Kind, key models.EncodedKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[bucketKey{owner.String(), kind}]
	if !ok {
		return nil
	}
	if _, exists := b.records[key]; !exists {
		return nil
	}
	delete(b.records, key)
	for i, k := range b.order {
		if k == key {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) Keys(ctx context.Context, owner models.UserID, kind models.Kind) ([]models.EncodedKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.buckets[bucketKey{owner.String(), kind}]
	if !ok {
		return []models.EncodedKey{}, nil
	}
	keys := make([]models.EncodedKey, len(b.order))
	copy(keys, b.order)
	return keys, nil
}

func (s *Store) List(ctx context.Context, owner models.UserID, kind models.Kind) ([]*models.SaveRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.buckets[bucketKey{owner.String(), kind}]
	if !ok {
		return []*models.SaveRecord{}, nil
	}
	recs := make([]*models.SaveRecord, 0, len(b.order))
	for _, k := range b.order {
		cp := *b.records[k]
		recs = append(recs, &cp)
	}
	return recs, nil
}

func (s *Store) Close() error { return nil }
