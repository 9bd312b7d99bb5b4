package store

import (
	"fmt"

	"github.com/starford/naudiz/internal/models"
)

// ListAliases returns a group's aliases ordered case-insensitively by
// display text.
func (db *DB) ListAliases(groupID int64) ([]models.Alias, error) {
	rows, err := db.conn.Query(`
		SELECT id, group_id, alias, normalized_alias
		FROM aliases WHERE group_id = ?
		ORDER BY alias COLLATE NOCASE`, groupID)
	if err != nil {
		return nil, fmt.Errorf("store: list aliases: %w", err)
	}
	defer rows.Close()

	var out []models.Alias
	for rows.Next() {
		var a models.Alias
		if err := rows.Scan(&a.ID, &a.GroupID, &a.Alias, &a.NormalizedAlias); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// AddAlias inserts an alias. A duplicate normalized alias within the group
// is silently ignored.
func (db *DB) AddAlias(groupID int64, alias, normalizedAlias string) error {
	if _, err := db.conn.Exec(`
		INSERT OR IGNORE INTO aliases (group_id, alias, normalized_alias) VALUES (?, ?, ?)`,
		groupID, alias, normalizedAlias); err != nil {
		return fmt.Errorf("store: insert alias: %w", err)
	}
	return nil
}

// RemoveAlias deletes an alias by its normalized form; no error if absent.
func (db *DB) RemoveAlias(groupID int64, normalizedAlias string) error {
	if _, err := db.conn.Exec(`DELETE FROM aliases WHERE group_id = ? AND normalized_alias = ?`,
		groupID, normalizedAlias); err != nil {
		return fmt.Errorf("store: remove alias: %w", err)
	}
	return nil
}
