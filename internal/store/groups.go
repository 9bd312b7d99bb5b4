package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/starford/naudiz/internal/models"
)

// EnsureGroup returns the group for (documentID, normalizedTag), inserting it
// when absent. On fetch of an existing group, multi-note mode is force-set to
// true (the ensure path always opens groups in multi-note mode; single-note
// mode is restored by the orchestrator when the count drops to one) and the
// primary tag is refreshed if the display form changed.
func (db *DB) EnsureGroup(documentID int64, primaryTag, normalizedTag string) (*models.Group, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	g, err := getGroupTx(tx, documentID, normalizedTag)
	if err != nil {
		return nil, err
	}
	if g != nil {
		if !g.MultiNoteMode || g.PrimaryTag != primaryTag {
			if _, err := tx.Exec(`UPDATE tag_groups SET multi_note_mode = 1, primary_tag = ? WHERE id = ?`,
				primaryTag, g.ID); err != nil {
				return nil, fmt.Errorf("store: refresh group: %w", err)
			}
			g.MultiNoteMode = true
			g.PrimaryTag = primaryTag
		}
		return g, tx.Commit()
	}

	if _, err := tx.Exec(`INSERT INTO tag_groups (document_id, primary_tag, normalized_tag) VALUES (?, ?, ?)`,
		documentID, primaryTag, normalizedTag); err != nil {
		// Racing duplicate: surface the existing row instead of the error.
		if g, findErr := getGroupTx(tx, documentID, normalizedTag); findErr == nil && g != nil {
			return g, tx.Commit()
		}
		return nil, fmt.Errorf("store: insert group: %w", err)
	}
	g, err = getGroupTx(tx, documentID, normalizedTag)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("store: group vanished after insert")
	}
	return g, tx.Commit()
}

// GetGroup returns the group for (documentID, normalizedTag), or nil when
// absent. Never creates.
func (db *DB) GetGroup(documentID int64, normalizedTag string) (*models.Group, error) {
	row := db.conn.QueryRow(`
		SELECT id, document_id, primary_tag, normalized_tag, multi_note_mode, created_at
		FROM tag_groups WHERE document_id = ? AND normalized_tag = ?`,
		documentID, normalizedTag)
	return scanGroup(row.Scan)
}

// SetGroupMultiNoteMode toggles multi-note mode without touching notes.
func (db *DB) SetGroupMultiNoteMode(groupID int64, enabled bool) error {
	if _, err := db.conn.Exec(`UPDATE tag_groups SET multi_note_mode = ? WHERE id = ?`,
		boolToInt(enabled), groupID); err != nil {
		return fmt.Errorf("store: set multi-note mode: %w", err)
	}
	return nil
}

// DeleteGroup removes a group together with its aliases and notes.
func (db *DB) DeleteGroup(groupID int64) error {
	if _, err := db.conn.Exec(`DELETE FROM tag_groups WHERE id = ?`, groupID); err != nil {
		return fmt.Errorf("store: delete group: %w", err)
	}
	return nil
}

// DeleteGroupsWithoutNotes purges groups having zero notes, optionally
// scoped to one document (documentID > 0). Listing callers run this first so
// transient empty groups never surface.
func (db *DB) DeleteGroupsWithoutNotes(documentID int64) error {
	q := `DELETE FROM tag_groups WHERE id NOT IN (SELECT DISTINCT group_id FROM notes)`
	args := []any{}
	if documentID > 0 {
		q += ` AND document_id = ?`
		args = append(args, documentID)
	}
	if _, err := db.conn.Exec(q, args...); err != nil {
		return fmt.Errorf("store: purge empty groups: %w", err)
	}
	return nil
}

// ListGroups returns group summaries joined with the owning document and
// alias/note counts, ordered case-insensitively by primary tag. A search
// text matches case-insensitive substrings of the primary tag or any alias.
func (db *DB) ListGroups(f GroupFilter) ([]models.GroupSummary, error) {
	q := `
		SELECT g.id, g.document_id, g.primary_tag, g.normalized_tag, g.multi_note_mode, g.created_at,
		       d.identity, d.display_name,
		       (SELECT count(*) FROM aliases a WHERE a.group_id = g.id),
		       (SELECT count(*) FROM notes n WHERE n.group_id = g.id)
		FROM tag_groups g
		JOIN documents d ON d.id = g.document_id`
	var conds []string
	var args []any
	if f.DocumentID > 0 {
		conds = append(conds, `g.document_id = ?`)
		args = append(args, f.DocumentID)
	}
	if f.SearchText != "" {
		like := "%" + strings.ToLower(f.SearchText) + "%"
		conds = append(conds, `(g.normalized_tag LIKE ? OR EXISTS (
			SELECT 1 FROM aliases a WHERE a.group_id = g.id AND a.normalized_alias LIKE ?))`)
		args = append(args, like, like)
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	q += ` ORDER BY g.primary_tag COLLATE NOCASE`

	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list groups: %w", err)
	}
	defer rows.Close()

	var out []models.GroupSummary
	for rows.Next() {
		var s models.GroupSummary
		var multi int
		if err := rows.Scan(&s.ID, &s.DocumentID, &s.PrimaryTag, &s.NormalizedTag, &multi, &s.CreatedAt,
			&s.DocumentIdentity, &s.DocumentDisplay, &s.AliasCount, &s.NoteCount); err != nil {
			return nil, err
		}
		s.MultiNoteMode = multi != 0
		out = append(out, s)
	}
	return out, rows.Err()
}

// AliasInUse reports whether the normalized value already names a group's
// normalized tag or any alias of any group within the document.
func (db *DB) AliasInUse(documentID int64, normalized string) (bool, error) {
	var n int
	err := db.conn.QueryRow(`
		SELECT count(*) FROM tag_groups
		WHERE document_id = ? AND normalized_tag = ?`,
		documentID, normalized).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("store: alias in use: %w", err)
	}
	if n > 0 {
		return true, nil
	}
	err = db.conn.QueryRow(`
		SELECT count(*) FROM aliases a
		JOIN tag_groups g ON g.id = a.group_id
		WHERE g.document_id = ? AND a.normalized_alias = ?`,
		documentID, normalized).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("store: alias in use: %w", err)
	}
	return n > 0, nil
}

type scanFunc func(dest ...any) error

func scanGroup(scan scanFunc) (*models.Group, error) {
	var g models.Group
	var multi int
	err := scan(&g.ID, &g.DocumentID, &g.PrimaryTag, &g.NormalizedTag, &multi, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan group: %w", err)
	}
	g.MultiNoteMode = multi != 0
	return &g, nil
}

func getGroupTx(tx *sql.Tx, documentID int64, normalizedTag string) (*models.Group, error) {
	row := tx.QueryRow(`
		SELECT id, document_id, primary_tag, normalized_tag, multi_note_mode, created_at
		FROM tag_groups WHERE document_id = ? AND normalized_tag = ?`,
		documentID, normalizedTag)
	return scanGroup(row.Scan)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
