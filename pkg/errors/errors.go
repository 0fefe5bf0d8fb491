package errors

import (
	"fmt"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrConflict is returned when a uniqueness constraint is violated
// (e.g. registering a vessel whose name+size key already exists)
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

// ErrValidation is returned when operator input fails validation
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrConfiguration is returned when price computation references an
// ingredient that is not present in the catalog. Fatal for the affected
// combination; never masked with a default price.
type ErrConfiguration struct {
	Resource string
	Name     string
}

func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("ingredient configuration missing: %s %q", e.Resource, e.Name)
}
