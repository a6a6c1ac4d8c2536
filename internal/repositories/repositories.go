// package repositories implements the persistence layer over the catalog
// cache database.
//
// Each repository implements models.Repository[T] for one entity type,
// handling CRUD, soft deletes, and sequence generation. The cache adapters
// at the end of the package expose the narrow write-through interfaces the
// transfer engine and CLI consume.
package repositories

import (
	"database/sql"
	"fmt"
)

// NextSequence advances and returns the per-table sequence counter.
//
// Sequence numbers give cache rows a stable insertion order for listings;
// they are never exposed as identifiers. Each table owns a single-row
// <table>_sequence counter seeded by the migrations, so the UPDATE below is
// atomic on its own.
func NextSequence(db *sql.DB, table string) (int, error) {
	var sequence int
	query := fmt.Sprintf("UPDATE %s_sequence SET value = value + 1 WHERE id = 1 RETURNING value", table)
	if err := db.QueryRow(query).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to advance %s sequence: %w", table, err)
	}
	return sequence, nil
}
