package store

// schemaVersion gates a destructive reset: when the value persisted in the
// meta table differs from this constant, every table is dropped and recreated.
// There is no forward migration path.
const schemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS documents (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	identity      TEXT NOT NULL,
	identity_type TEXT NOT NULL DEFAULT 'path',
	display_name  TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(identity, identity_type)
);

CREATE TABLE IF NOT EXISTS tag_groups (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	document_id     INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	primary_tag     TEXT NOT NULL,
	normalized_tag  TEXT NOT NULL,
	multi_note_mode INTEGER NOT NULL DEFAULT 0,
	created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(document_id, normalized_tag)
);

CREATE TABLE IF NOT EXISTS aliases (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	group_id         INTEGER NOT NULL REFERENCES tag_groups(id) ON DELETE CASCADE,
	alias            TEXT NOT NULL,
	normalized_alias TEXT NOT NULL,
	UNIQUE(group_id, normalized_alias)
);

CREATE TABLE IF NOT EXISTS notes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	group_id   INTEGER NOT NULL REFERENCES tag_groups(id) ON DELETE CASCADE,
	text       TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_groups_document ON tag_groups(document_id);
CREATE INDEX IF NOT EXISTS idx_aliases_group   ON aliases(group_id);
CREATE INDEX IF NOT EXISTS idx_notes_group     ON notes(group_id);
`

// dropSQL removes every table except meta; used by the version-mismatch reset.
const dropSQL = `
DROP TABLE IF EXISTS notes;
DROP TABLE IF EXISTS aliases;
DROP TABLE IF EXISTS tag_groups;
DROP TABLE IF EXISTS documents;
`
