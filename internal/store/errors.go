package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup by id matches no row
var ErrNotFound = errors.New("record not found")

// Constraint kinds
const (
	KindDuplicate  = "duplicate"
	KindForeignKey = "foreign_key"
	KindOther      = "other"
)

// ConstraintError is a write the database refused. Its message is the
// driver's own text.
type ConstraintError struct {
	Kind string
	Err  error
}

func (e *ConstraintError) Error() string {
	return e.Err.Error()
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// classify wraps a failed write as a ConstraintError, using the dialect's
// translator to tell unique and foreign key violations apart.
func classify(db *gorm.DB, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	kind := KindOther
	if t, ok := db.Dialector.(gorm.ErrorTranslator); ok {
		translated := t.Translate(err)
		switch {
		case errors.Is(translated, gorm.ErrDuplicatedKey):
			kind = KindDuplicate
		case errors.Is(translated, gorm.ErrForeignKeyViolated):
			kind = KindForeignKey
		}
	}
	return &ConstraintError{Kind: kind, Err: err}
}
