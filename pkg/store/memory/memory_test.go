package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newteatrade/saves/pkg/models"
)

func mustUser(t *testing.T, id string) models.UserID {
	t.Helper()
	u, err := models.NewUserID(id)
	require.NoError(t, err)
	return u
}

func mustKey(t *testing.T, natural string) models.EncodedKey {
	t.Helper()
	k, err := models.EncodeKey(natural)
	require.NoError(t, err)
	return k
}

func TestGetMissingReturnsNil(t *testing.T) {
	s := New()
	rec, err := s.Get(context.Background(), mustUser(t, "u1"), models.KindJobs, mustKey(t, "job1"))
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestPutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := New()
	owner := mustUser(t, "u1")
	key := mustKey(t, "job1")

	rec, err := models.NewSaveRecord(owner, key, models.JobFields{
		ID: "job1", Name: "Tea Taster", Company: "NewTeaTrade", Location: "Mombasa",
	})
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, rec))

	got, err := s.Get(ctx, owner, models.KindJobs, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.Data, got.Data)

	require.NoError(t, s.Delete(ctx, owner, models.KindJobs, key))
	got, err = s.Get(ctx, owner, models.KindJobs, key)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteMissingIsNoop(t *testing.T) {
	s := New()
	err := s.Delete(context.Background(), mustUser(t, "u1"), models.KindRecipes, mustKey(t, "gone"))
	require.NoError(t, err)
}

func TestPutReplacesExisting(t *testing.T) {
	ctx := context.Background()
	s := New()
	owner := mustUser(t, "u1")
	key := mustKey(t, "job1")

	first, err := models.NewSaveRecord(owner, key, models.JobFields{ID: "job1", Name: "Tea Taster"})
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, first))

	second, err := models.NewSaveRecord(owner, key, models.JobFields{ID: "job1", Name: "Senior Tea Taster"})
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, second))

	keys, err := s.Keys(ctx, owner, models.KindJobs)
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	got, err := s.Get(ctx, owner, models.KindJobs, key)
	require.NoError(t, err)
	assert.Equal(t, models.JobFields{ID: "job1", Name: "Senior Tea Taster"}, got.Data)
}

func TestKeysAndListEmptyNeverNil(t *testing.T) {
	ctx := context.Background()
	s := New()
	owner := mustUser(t, "u1")

	keys, err := s.Keys(ctx, owner, models.KindProducts)
	require.NoError(t, err)
	require.NotNil(t, keys)
	assert.Empty(t, keys)

	recs, err := s.List(ctx, owner, models.KindProducts)
	require.NoError(t, err)
	require.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	owner := mustUser(t, "u1")

	for _, name := range []string{"masala-chai", "iced-hibiscus", "matcha-latte"} {
		key := mustKey(t, "https://newteatrade.com/recipes/"+name)
		rec, err := models.NewSaveRecord(owner, key, models.RecipeFields{Name: name})
		require.NoError(t, err)
		require.NoError(t, s.Put(ctx, rec))
	}

	recs, err := s.List(ctx, owner, models.KindRecipes)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "masala-chai", recs[0].Data.(models.RecipeFields).Name)
	assert.Equal(t, "iced-hibiscus", recs[1].Data.(models.RecipeFields).Name)
	assert.Equal(t, "matcha-latte", recs[2].Data.(models.RecipeFields).Name)
}

func TestScopedPerOwnerAndKind(t *testing.T) {
	ctx := context.Background()
	s := New()
	alice := mustUser(t, "alice")
	bob := mustUser(t, "bob")
	key := mustKey(t, "job1")

	rec, err := models.NewSaveRecord(alice, key, models.JobFields{ID: "job1"})
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, rec))

	got, err := s.Get(ctx, bob, models.KindJobs, key)
	require.NoError(t, err)
	assert.Nil(t, got)

	keys, err := s.Keys(ctx, alice, models.KindRecipes)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestCanceledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Keys(ctx, mustUser(t, "u1"), models.KindJobs)
	require.ErrorIs(t, err, context.Canceled)
}
