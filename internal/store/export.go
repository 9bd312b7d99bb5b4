package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/starford/naudiz/internal/models"
)

// exportGroup is the serialized form of one group with its full closure.
type exportGroup struct {
	PrimaryTag    string        `json:"primary_tag"`
	NormalizedTag string        `json:"normalized_tag"`
	MultiNoteMode bool          `json:"multi_note_mode"`
	Aliases       []exportAlias `json:"aliases"`
	Notes         []exportNote  `json:"notes"`
}

type exportAlias struct {
	Alias      string `json:"alias"`
	Normalized string `json:"normalized"`
}

type exportNote struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type exportFile struct {
	Documents map[string]models.Document        `json:"documents"`
	Groups    map[string]map[string]exportGroup `json:"groups"`
}

// ExportTo serializes the relational closure (documents, groups, aliases,
// notes) scoped to one document (documentID > 0) or all documents, and
// writes it to path as JSON, creating parent directories as needed.
func (db *DB) ExportTo(path string, documentID int64) error {
	out := exportFile{
		Documents: make(map[string]models.Document),
		Groups:    make(map[string]map[string]exportGroup),
	}

	docs, err := db.ListDocuments()
	if err != nil {
		return err
	}
	for _, d := range docs {
		if documentID > 0 && d.ID != documentID {
			continue
		}
		out.Documents[strconv.FormatInt(d.ID, 10)] = d
	}

	summaries, err := db.ListGroups(GroupFilter{DocumentID: documentID})
	if err != nil {
		return err
	}
	for _, s := range summaries {
		eg := exportGroup{
			PrimaryTag:    s.PrimaryTag,
			NormalizedTag: s.NormalizedTag,
			MultiNoteMode: s.MultiNoteMode,
			Aliases:       []exportAlias{},
			Notes:         []exportNote{},
		}
		aliases, err := db.ListAliases(s.ID)
		if err != nil {
			return err
		}
		for _, a := range aliases {
			eg.Aliases = append(eg.Aliases, exportAlias{Alias: a.Alias, Normalized: a.NormalizedAlias})
		}
		notes, err := db.GetNotes(s.ID)
		if err != nil {
			return err
		}
		for _, n := range notes {
			eg.Notes = append(eg.Notes, exportNote{
				ID:        n.ID,
				Text:      n.Text,
				CreatedAt: n.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
				UpdatedAt: n.UpdatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
			})
		}
		key := strconv.FormatInt(s.DocumentID, 10)
		if out.Groups[key] == nil {
			out.Groups[key] = make(map[string]exportGroup)
		}
		out.Groups[key][s.NormalizedTag] = eg
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal export: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("store: create export dir: %w", err)
	}
	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("store: write export: %w", err)
	}
	return nil
}

// writeAtomic writes data via tmp file, fsync, rename.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".naudiz-export-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	success = true
	return nil
}
