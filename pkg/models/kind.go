package models

import "fmt"

// Kind is the category of a savable item. The set is closed: the three
// constants below are the only valid values, and they double as the
// collection names used by the document store and as the `item-type`
// attribute value on rendered save controls.
type Kind string

const (
	KindProducts Kind = "products"
	KindRecipes  Kind = "recipes"
	KindJobs     Kind = "jobs"
)

// Kinds returns all valid kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindProducts, KindRecipes, KindJobs}
}

// ParseKind converts the string carried by a control's `item-type`
// attribute into a Kind, rejecting anything outside the closed set.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindProducts, KindRecipes, KindJobs:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown item kind %q", s)
}

// Valid reports whether k is one of the three known kinds.
func (k Kind) Valid() bool {
	_, err := ParseKind(string(k))
	return err == nil
}

func (k Kind) String() string { return string(k) }
