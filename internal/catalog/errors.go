package catalog

import (
	"fmt"
	"strings"

	"github.com/ashendes/catalog-service/internal/store"
)

// NotFoundError is returned when an id does not resolve to a row
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id=%d not found.", e.Entity, e.ID)
}

// WriteError is a create, update or delete the database rejected. The
// transaction has already been rolled back.
type WriteError struct {
	Op     string
	Entity string
	Err    *store.ConstraintError
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("Error %s %s: %v", gerund(e.Op), strings.ToLower(e.Entity), e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Kind is the constraint kind reported by the store
func (e *WriteError) Kind() string {
	return e.Err.Kind
}

func gerund(op string) string {
	switch op {
	case opCreate:
		return "creating"
	case opDelete:
		return "deleting"
	default:
		return "updating"
	}
}
