package store

import (
	"fmt"
	"time"

	"github.com/starford/naudiz/internal/models"
)

// AddNote inserts a note and returns its id.
func (db *DB) AddNote(groupID int64, text string) (int64, error) {
	now := time.Now()
	res, err := db.conn.Exec(`INSERT INTO notes (group_id, text, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		groupID, text, now, now)
	if err != nil {
		return 0, fmt.Errorf("store: insert note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: note id: %w", err)
	}
	return id, nil
}

// UpdateNote replaces a note's text and bumps its updated_at timestamp.
func (db *DB) UpdateNote(noteID int64, text string) error {
	if _, err := db.conn.Exec(`UPDATE notes SET text = ?, updated_at = ? WHERE id = ?`,
		text, time.Now(), noteID); err != nil {
		return fmt.Errorf("store: update note: %w", err)
	}
	return nil
}

// DeleteNote removes a single note.
func (db *DB) DeleteNote(noteID int64) error {
	if _, err := db.conn.Exec(`DELETE FROM notes WHERE id = ?`, noteID); err != nil {
		return fmt.Errorf("store: delete note: %w", err)
	}
	return nil
}

// GetNotes returns a group's notes ordered by creation time ascending.
// Ties on created_at are broken by id so positions stay stable.
func (db *DB) GetNotes(groupID int64) ([]models.Note, error) {
	rows, err := db.conn.Query(`
		SELECT id, group_id, text, created_at, updated_at
		FROM notes WHERE group_id = ?
		ORDER BY created_at, id`, groupID)
	if err != nil {
		return nil, fmt.Errorf("store: get notes: %w", err)
	}
	defer rows.Close()

	var out []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.GroupID, &n.Text, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// ClearNotes removes all notes from a group.
func (db *DB) ClearNotes(groupID int64) error {
	if _, err := db.conn.Exec(`DELETE FROM notes WHERE group_id = ?`, groupID); err != nil {
		return fmt.Errorf("store: clear notes: %w", err)
	}
	return nil
}
