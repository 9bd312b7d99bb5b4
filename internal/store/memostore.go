package store

import "github.com/starford/naudiz/internal/models"

// GroupFilter narrows ListGroups: zero DocumentID means all documents,
// empty SearchText means no text filter.
type GroupFilter struct {
	DocumentID int64
	SearchText string
}

// MemoStore defines the storage operations the orchestrator depends on.
// Consumers should depend on this interface rather than the concrete *DB
// type to facilitate testing with mocks.
type MemoStore interface {
	GetOrCreateDocument(identity, identityType, displayName string) (*models.Document, error)
	FindDocument(identity, identityType string) (*models.Document, error)
	GetDocumentByID(id int64) (*models.Document, error)
	ListDocuments() ([]models.Document, error)
	DeleteDocument(id int64) error

	EnsureGroup(documentID int64, primaryTag, normalizedTag string) (*models.Group, error)
	GetGroup(documentID int64, normalizedTag string) (*models.Group, error)
	SetGroupMultiNoteMode(groupID int64, enabled bool) error
	DeleteGroup(groupID int64) error
	DeleteGroupsWithoutNotes(documentID int64) error
	ListGroups(f GroupFilter) ([]models.GroupSummary, error)

	AddNote(groupID int64, text string) (int64, error)
	UpdateNote(noteID int64, text string) error
	DeleteNote(noteID int64) error
	GetNotes(groupID int64) ([]models.Note, error)
	ClearNotes(groupID int64) error

	ListAliases(groupID int64) ([]models.Alias, error)
	AddAlias(groupID int64, alias, normalizedAlias string) error
	RemoveAlias(groupID int64, normalizedAlias string) error
	AliasInUse(documentID int64, normalized string) (bool, error)

	ExportTo(path string, documentID int64) error
	Reset() error
	Close() error
}

// Verify *DB satisfies MemoStore at compile time.
var _ MemoStore = (*DB)(nil)
