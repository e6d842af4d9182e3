package internal

import "errors"

var (
	// ErrNilPrototype is returned when a declaration is made against a nil prototype.
	ErrNilPrototype = errors.New("prototype must not be nil")

	// ErrUnknownMethod is returned when a declaration names a method the type does not have.
	ErrUnknownMethod = errors.New("unknown reaction method")

	// ErrNoFields is returned when a declaration watches no fields.
	ErrNoFields = errors.New("declaration watches no fields")

	// ErrUnknownType is returned when a sidecar declaration names an unbound type.
	ErrUnknownType = errors.New("unknown type name")

	// ErrInvalidSidecar is returned when sidecar declarations cannot be parsed.
	ErrInvalidSidecar = errors.New("sidecar declarations are not valid")
)
