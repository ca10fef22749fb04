// Package models holds the catalog entities, their request payloads and the
// response shapes sent back to clients.
package models

// All lists every entity in dependency order, for schema migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Brand{},
		&Category{},
		&Product{},
		&Order{},
		&OrderItem{},
	}
}
