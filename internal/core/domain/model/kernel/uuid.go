package kernel

import (
	"strings"

	"fooddispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNil is returned when a zero UUID is used as an identifier.
var ErrUUIDIsNil = errs.NewValueIsRequiredError("uuid")

// UUID identifies orders and couriers.
//
// The zero value is the nil UUID and is never a valid identifier; build one
// with NewUUID, ParseUUID or UUIDFrom.
//
// Example:
//
//	id, err := kernel.ParseUUID(req.OrderID)
//	if err != nil {
//	    return err // *errs.ValueIsInvalidError
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// ParseUUID parses the canonical textual form of an identifier.
//
// Parameters:
//   - s: identifier text; surrounding whitespace is ignored
//
// Returns:
//   - UUID: the parsed identifier
//   - error: *errs.ValueIsRequiredError for blank input,
//     *errs.ValueIsInvalidError when s is not a UUID or is the nil UUID
func ParseUUID(s string) (UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return UUID{}, ErrUUIDIsNil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", err)
	}
	if id == uuid.Nil {
		return UUID{}, errs.NewValueIsInvalidError("uuid")
	}
	return UUID{id: id}, nil
}

// UUIDFrom wraps an identifier read from storage.
func UUIDFrom(id uuid.UUID) UUID {
	return UUID{id: id}
}

func (u UUID) String() string {
	return u.id.String()
}

// Value returns the underlying google/uuid value for persistence.
func (u UUID) Value() uuid.UUID {
	return u.id
}

// Equals reports whether both identifiers are the same.
func (u UUID) Equals(other UUID) bool {
	return u.id == other.id
}

// IsZero reports whether u is the nil UUID.
func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

// Validate returns ErrUUIDIsNil for the zero value.
func (u UUID) Validate() error {
	if u.IsZero() {
		return ErrUUIDIsNil
	}
	return nil
}
