package domain

import (
	"slices"
	"strings"
	"unique"

	"github.com/google/uuid"
)

// EID is the stable identity of a domain object.
// It wraps an interned string so that identities compare and hash by value
// and can be used as map keys.
type EID struct {
	h unique.Handle[string]
}

// NewEID creates an EID from its string form.
// Surrounding whitespace is removed. An empty string yields the zero EID.
func NewEID(s string) EID {
	s = strings.TrimSpace(s)
	if s == "" {
		return EID{}
	}
	return EID{h: unique.Make(s)}
}

// NewEIDs creates an EID slice from a string slice, skipping empty values.
func NewEIDs(s []string) []EID {
	res := make([]EID, 0, len(s))
	for _, v := range s {
		if id := NewEID(v); !id.IsZero() {
			res = append(res, id)
		}
	}
	return res
}

// RandomEID returns a new EID backed by a random UUID.
func RandomEID() EID {
	return NewEID("EID" + uuid.NewString())
}

// IsZero reports whether the EID is unset.
func (e EID) IsZero() bool {
	return e == EID{}
}

// String returns the string form of the EID.
func (e EID) String() string {
	if e.IsZero() {
		return ""
	}
	return e.h.Value()
}

// Compare orders EIDs by their string form.
func (e EID) Compare(other EID) int {
	return strings.Compare(e.String(), other.String())
}

// MarshalText implements encoding.TextMarshaler.
func (e EID) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *EID) UnmarshalText(text []byte) error {
	*e = NewEID(string(text))
	return nil
}

// EIDStrings converts ids to their sorted string forms. It is mostly used for
// error metadata and log messages.
func EIDStrings(ids []EID) []string {
	res := make([]string, len(ids))
	for i, id := range ids {
		res[i] = id.String()
	}
	slices.Sort(res)
	return res
}

// Item is any domain object addressable by its EID.
type Item interface {
	ID() EID
}
