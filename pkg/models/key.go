package models

import (
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"
)

// EncodedKey is the storage-safe form of an item's natural key, used as the
// final path segment of the save document's record ID. The transform is a
// plain base64url encoding, not a hash: the original natural key is needed
// again later (to look a product back up in the catalog by URL, or to build
// a job deep link), so the encoding must round-trip exactly.
type EncodedKey string

var (
	// ErrEmptyNaturalKey is returned when an item has no natural key to encode.
	ErrEmptyNaturalKey = errors.New("natural key is empty")

	// ErrInvalidNaturalKey is returned when the natural key is not valid
	// UTF-8 and therefore cannot be encoded without silent corruption.
	ErrInvalidNaturalKey = errors.New("natural key is not valid UTF-8")
)

// EncodeKey derives the EncodedKey for a natural key (a URL for products
// and recipes, an opaque ID for jobs). The result is deterministic and free
// of characters that are illegal in a document-store path segment.
func EncodeKey(naturalKey string) (EncodedKey, error) {
	if naturalKey == "" {
		return "", ErrEmptyNaturalKey
	}
	if !utf8.ValidString(naturalKey) {
		return "", fmt.Errorf("encode %q: %w", naturalKey, ErrInvalidNaturalKey)
	}
	return EncodedKey(base64.RawURLEncoding.EncodeToString([]byte(naturalKey))), nil
}

// Decode recovers the natural key the EncodedKey was derived from.
func (k EncodedKey) Decode() (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(string(k))
	if err != nil {
		return "", fmt.Errorf("decode key %q: %w", string(k), err)
	}
	return string(b), nil
}

func (k EncodedKey) String() string { return string(k) }
