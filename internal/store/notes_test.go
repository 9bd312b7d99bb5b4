package store

import "testing"

func seedGroup(t *testing.T, db *DB) int64 {
	t.Helper()
	doc, err := db.GetOrCreateDocument("/books/a.epub", "path", "A")
	if err != nil {
		t.Fatal(err)
	}
	g, err := db.EnsureGroup(doc.ID, "Foo", "foo")
	if err != nil {
		t.Fatal(err)
	}
	return g.ID
}

func TestAddAndGetNotes_CreationOrder(t *testing.T) {
	db := testDB(t)
	gid := seedGroup(t, db)

	for _, text := range []string{"first", "second", "third"} {
		if _, err := db.AddNote(gid, text); err != nil {
			t.Fatalf("AddNote(%q): %v", text, err)
		}
	}

	notes, err := db.GetNotes(gid)
	if err != nil {
		t.Fatalf("GetNotes: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("len = %d, want 3", len(notes))
	}
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if notes[i].Text != w {
			t.Errorf("notes[%d] = %q, want %q", i, notes[i].Text, w)
		}
	}
}

func TestUpdateNote_BumpsUpdatedAt(t *testing.T) {
	db := testDB(t)
	gid := seedGroup(t, db)
	id, _ := db.AddNote(gid, "before")

	if err := db.UpdateNote(id, "after"); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	notes, _ := db.GetNotes(gid)
	if notes[0].Text != "after" {
		t.Errorf("text = %q", notes[0].Text)
	}
	if notes[0].UpdatedAt.Before(notes[0].CreatedAt) {
		t.Error("updated_at earlier than created_at")
	}
}

func TestDeleteNote(t *testing.T) {
	db := testDB(t)
	gid := seedGroup(t, db)
	id, _ := db.AddNote(gid, "one")
	_, _ = db.AddNote(gid, "two")

	if err := db.DeleteNote(id); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	notes, _ := db.GetNotes(gid)
	if len(notes) != 1 || notes[0].Text != "two" {
		t.Errorf("remaining notes = %+v", notes)
	}
}

func TestClearNotes(t *testing.T) {
	db := testDB(t)
	gid := seedGroup(t, db)
	_, _ = db.AddNote(gid, "one")
	_, _ = db.AddNote(gid, "two")

	if err := db.ClearNotes(gid); err != nil {
		t.Fatalf("ClearNotes: %v", err)
	}
	notes, _ := db.GetNotes(gid)
	if len(notes) != 0 {
		t.Errorf("notes after clear = %d, want 0", len(notes))
	}
}
