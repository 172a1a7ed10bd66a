// Package models holds the domain types of the save subsystem: the closed
// set of savable kinds, the reversible encoded key used as the store path
// segment, the per-kind display field shapes, and the persisted SaveRecord.
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// cborTagRecordID is the CBOR tag SurrealDB assigns to record IDs.
const cborTagRecordID = 8

// UserID identifies the owner of a save. The value is the ID part of the
// authenticated record user (the `user:<id>` record the auth provider
// signed in as); it marshals to a SurrealDB RecordID so queries can compare
// it against record links directly.
type UserID struct {
	id string
}

// NewUserID wraps a raw record user ID.
func NewUserID(s string) (UserID, error) {
	if s == "" {
		return UserID{}, fmt.Errorf("empty user ID")
	}
	return UserID{id: s}, nil
}

func (u UserID) String() string { return u.id }
func (u UserID) IsZero() bool   { return u.id == "" }

// RecordID returns the SurrealDB record ID of the owning user record.
func (u UserID) RecordID() surrealmodels.RecordID {
	return surrealmodels.RecordID{Table: "user", ID: u.id}
}

func (u UserID) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.id)
}

func (u *UserID) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &u.id)
}

func (u UserID) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cbor.Tag{
		Number:  cborTagRecordID,
		Content: []any{"user", u.id},
	})
}

func (u *UserID) UnmarshalCBOR(data []byte) error {
	var tag cbor.Tag
	if err := cbor.Unmarshal(data, &tag); err != nil {
		return err
	}
	parts, ok := tag.Content.([]any)
	if !ok || len(parts) != 2 {
		return fmt.Errorf("unexpected record ID shape %v", tag.Content)
	}
	id, ok := parts[1].(string)
	if !ok {
		return fmt.Errorf("unexpected record ID value %v", parts[1])
	}
	u.id = id
	return nil
}

// DisplayFields is the kind-specific payload stored alongside a save so the
// library view can re-render the item without re-fetching its source list.
// The set of implementations is closed and mirrors the Kind constants.
type DisplayFields interface {
	// Kind reports which variant this payload belongs to.
	Kind() Kind
}

// ProductFields is the full catalog record of a saved product. Products are
// resolved from the in-memory catalog at save time, so the whole source
// record is carried over.
type ProductFields struct {
	Link        string  `json:"link"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Price       string  `json:"price"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
	Category    string  `json:"category"`
	Origin      string  `json:"origin"`
	Format      string  `json:"format"`
}

func (ProductFields) Kind() Kind { return KindProducts }

// RecipeFields is the subset of a recipe card needed to re-render it.
type RecipeFields struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Href        string `json:"href"`
}

func (RecipeFields) Kind() Kind { return KindRecipes }

// JobFields carries a job listing's canonical ID plus the card fields.
type JobFields struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Company  string `json:"company"`
	Location string `json:"location"`
}

func (JobFields) Kind() Kind { return KindJobs }

// SaveRecord is the persisted bookmark document. Existence of a record at
// (Owner, Kind, Key) is the single source of truth for "saved"; records are
// created and deleted, never updated in place.
type SaveRecord struct {
	Owner   UserID        `json:"owner"`
	Kind    Kind          `json:"kind"`
	Key     EncodedKey    `json:"key"`
	Data    DisplayFields `json:"data"`
	SavedAt time.Time     `json:"saved_at"`
}

// NewSaveRecord builds a record, checking that the payload variant matches
// the declared kind.
func NewSaveRecord(owner UserID, key EncodedKey, data DisplayFields) (*SaveRecord, error) {
	if owner.IsZero() {
		return nil, fmt.Errorf("save record without owner")
	}
	if data == nil {
		return nil, fmt.Errorf("save record without display fields")
	}
	return &SaveRecord{
		Owner:   owner,
		Kind:    data.Kind(),
		Key:     key,
		Data:    data,
		SavedAt: time.Now(),
	}, nil
}
