package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Session runs fn inside one transaction. The transaction commits when fn
// returns nil and rolls back when fn returns an error or panics. fn must do all
// of its database work through tx.
func (s *Store) Session(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.sessions.Execute(ctx, func() error {
		var fnErr error
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			fnErr = fn(tx)
			return fnErr
		})
		if err != nil && fnErr == nil {
			// fn succeeded, so this is the commit failing
			return classify(s.db, err)
		}
		return err
	})
}

// GetByID loads the row with primary key id into dest, without relations
func GetByID(tx *gorm.DB, dest interface{}, id uint) error {
	return notFound(tx.First(dest, id).Error)
}

// Add inserts v. Related structs embedded in v are not written.
func Add(tx *gorm.DB, v interface{}) error {
	return classify(tx, tx.Omit(clause.Associations).Create(v).Error)
}

// Save writes every column of v back to its row
func Save(tx *gorm.DB, v interface{}) error {
	return classify(tx, tx.Omit(clause.Associations).Save(v).Error)
}

// Remove deletes the row behind v
func Remove(tx *gorm.DB, v interface{}) error {
	return classify(tx, tx.Delete(v).Error)
}
