package store

import (
	"database/sql"
	"fmt"

	"github.com/starford/naudiz/internal/models"
)

// GetOrCreateDocument returns the document for (identity, identityType),
// inserting it when absent. When the document already exists and a non-empty
// displayName differs from the stored one, the stored name is refreshed.
// A racing duplicate insert is resolved by re-querying the existing row.
func (db *DB) GetOrCreateDocument(identity, identityType, displayName string) (*models.Document, error) {
	doc, err := db.FindDocument(identity, identityType)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		if displayName != "" && displayName != doc.DisplayName {
			if _, err := db.conn.Exec(`UPDATE documents SET display_name = ? WHERE id = ?`,
				displayName, doc.ID); err != nil {
				return nil, fmt.Errorf("store: refresh display name: %w", err)
			}
			doc.DisplayName = displayName
		}
		return doc, nil
	}

	_, err = db.conn.Exec(`INSERT INTO documents (identity, identity_type, display_name) VALUES (?, ?, ?)`,
		identity, identityType, displayName)
	if err != nil {
		// Another writer may have inserted the same identity; fall through
		// to the lookup and surface the error only if that also fails.
		if doc, findErr := db.FindDocument(identity, identityType); findErr == nil && doc != nil {
			return doc, nil
		}
		return nil, fmt.Errorf("store: insert document: %w", err)
	}
	doc, err = db.FindDocument(identity, identityType)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("store: document vanished after insert")
	}
	return doc, nil
}

// FindDocument returns the document for (identity, identityType), or nil
// when absent.
func (db *DB) FindDocument(identity, identityType string) (*models.Document, error) {
	row := db.conn.QueryRow(`
		SELECT id, identity, identity_type, display_name, created_at
		FROM documents WHERE identity = ? AND identity_type = ?`,
		identity, identityType)
	return scanDocument(row)
}

// GetDocumentByID returns the document with the given id, or nil when absent.
func (db *DB) GetDocumentByID(id int64) (*models.Document, error) {
	row := db.conn.QueryRow(`
		SELECT id, identity, identity_type, display_name, created_at
		FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

// ListDocuments returns all documents ordered case-insensitively by
// display name, falling back to identity for unnamed documents.
func (db *DB) ListDocuments() ([]models.Document, error) {
	rows, err := db.conn.Query(`
		SELECT id, identity, identity_type, display_name, created_at
		FROM documents
		ORDER BY CASE WHEN display_name = '' THEN identity ELSE display_name END COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("store: list documents: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.Identity, &d.IdentityType, &d.DisplayName, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DeleteDocument removes a document together with its groups, aliases,
// and notes.
func (db *DB) DeleteDocument(id int64) error {
	if _, err := db.conn.Exec(`DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete document: %w", err)
	}
	return nil
}

func scanDocument(row *sql.Row) (*models.Document, error) {
	var d models.Document
	err := row.Scan(&d.ID, &d.Identity, &d.IdentityType, &d.DisplayName, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan document: %w", err)
	}
	return &d, nil
}
