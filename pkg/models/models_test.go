package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("wishlists")
	require.Error(t, err)
	_, err = ParseKind("")
	require.Error(t, err)
}

func TestDisplayFieldsKinds(t *testing.T) {
	assert.Equal(t, KindProducts, ProductFields{}.Kind())
	assert.Equal(t, KindRecipes, RecipeFields{}.Kind())
	assert.Equal(t, KindJobs, JobFields{}.Kind())
}

func TestNewSaveRecord(t *testing.T) {
	owner, err := NewUserID("w9fh3k1s")
	require.NoError(t, err)

	key, err := EncodeKey("job1")
	require.NoError(t, err)

	rec, err := NewSaveRecord(owner, key, JobFields{
		ID:       "job1",
		Name:     "Tea Taster",
		Company:  "NewTeaTrade",
		Location: "Mombasa",
	})
	require.NoError(t, err)
	assert.Equal(t, KindJobs, rec.Kind)
	assert.Equal(t, key, rec.Key)
	assert.False(t, rec.SavedAt.IsZero())
}

func TestNewSaveRecordRejectsMissingParts(t *testing.T) {
	owner, err := NewUserID("w9fh3k1s")
	require.NoError(t, err)
	key, err := EncodeKey("job1")
	require.NoError(t, err)

	_, err = NewSaveRecord(UserID{}, key, JobFields{ID: "job1"})
	require.Error(t, err)

	_, err = NewSaveRecord(owner, key, nil)
	require.Error(t, err)
}

func TestUserIDJSONRoundTrip(t *testing.T) {
	owner, err := NewUserID("w9fh3k1s")
	require.NoError(t, err)

	data, err := owner.MarshalJSON()
	require.NoError(t, err)

	var back UserID
	require.NoError(t, back.UnmarshalJSON(data))
	assert.Equal(t, owner, back)
}

func TestUserIDCBORRoundTrip(t *testing.T) {
	owner, err := NewUserID("w9fh3k1s")
	require.NoError(t, err)

	data, err := owner.MarshalCBOR()
	require.NoError(t, err)

	var back UserID
	require.NoError(t, back.UnmarshalCBOR(data))
	assert.Equal(t, owner, back)
	assert.Equal(t, "user", owner.RecordID().Table)
}
