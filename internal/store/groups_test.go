package store

import "testing"

func TestEnsureGroup_CreatesInSingleNoteMode(t *testing.T) {
	db := testDB(t)
	doc, _ := db.GetOrCreateDocument("/books/a.epub", "path", "A")

	g, err := db.EnsureGroup(doc.ID, "Foo", "foo")
	if err != nil {
		t.Fatalf("EnsureGroup: %v", err)
	}
	if g.MultiNoteMode {
		t.Error("fresh group should start in single-note mode")
	}
	if g.PrimaryTag != "Foo" || g.NormalizedTag != "foo" {
		t.Errorf("tags = %q/%q", g.PrimaryTag, g.NormalizedTag)
	}
}

func TestEnsureGroup_FetchForcesMultiAndRefreshesTag(t *testing.T) {
	db := testDB(t)
	doc, _ := db.GetOrCreateDocument("/books/a.epub", "path", "A")
	first, _ := db.EnsureGroup(doc.ID, "Foo", "foo")

	second, err := db.EnsureGroup(doc.ID, "FOO", "foo")
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same group, got %d and %d", first.ID, second.ID)
	}
	if !second.MultiNoteMode {
		t.Error("fetching an existing group must force multi-note mode")
	}
	if second.PrimaryTag != "FOO" {
		t.Errorf("primary tag not refreshed: %q", second.PrimaryTag)
	}
}

func TestGetGroup_NeverCreates(t *testing.T) {
	db := testDB(t)
	doc, _ := db.GetOrCreateDocument("/books/a.epub", "path", "A")
	g, err := db.GetGroup(doc.ID, "missing")
	if err != nil {
		t.Fatal(err)
	}
	if g != nil {
		t.Errorf("expected nil, got %+v", g)
	}
}

func TestDeleteGroup_Cascades(t *testing.T) {
	db := testDB(t)
	doc, _ := db.GetOrCreateDocument("/books/a.epub", "path", "A")
	g, _ := db.EnsureGroup(doc.ID, "Foo", "foo")
	_, _ = db.AddNote(g.ID, "n1")
	_ = db.AddAlias(g.ID, "Bar", "bar")

	if err := db.DeleteGroup(g.ID); err != nil {
		t.Fatalf("DeleteGroup: %v", err)
	}
	notes, _ := db.GetNotes(g.ID)
	if len(notes) != 0 {
		t.Error("notes survived group delete")
	}
	aliases, _ := db.ListAliases(g.ID)
	if len(aliases) != 0 {
		t.Error("aliases survived group delete")
	}
}

func TestDeleteGroupsWithoutNotes(t *testing.T) {
	db := testDB(t)
	docA, _ := db.GetOrCreateDocument("/a", "path", "A")
	docB, _ := db.GetOrCreateDocument("/b", "path", "B")
	empty, _ := db.EnsureGroup(docA.ID, "Empty", "empty")
	full, _ := db.EnsureGroup(docA.ID, "Full", "full")
	_, _ = db.AddNote(full.ID, "n")
	otherEmpty, _ := db.EnsureGroup(docB.ID, "Ghost", "ghost")

	// Scoped purge leaves the other document alone.
	if err := db.DeleteGroupsWithoutNotes(docA.ID); err != nil {
		t.Fatalf("DeleteGroupsWithoutNotes: %v", err)
	}
	if g, _ := db.GetGroup(docA.ID, "empty"); g != nil {
		t.Errorf("empty group %d survived scoped purge", empty.ID)
	}
	if g, _ := db.GetGroup(docA.ID, "full"); g == nil {
		t.Error("group with notes was purged")
	}
	if g, _ := db.GetGroup(docB.ID, "ghost"); g == nil {
		t.Error("scoped purge crossed documents")
	}

	// Unscoped purge sweeps everything.
	if err := db.DeleteGroupsWithoutNotes(0); err != nil {
		t.Fatal(err)
	}
	if g, _ := db.GetGroup(docB.ID, "ghost"); g != nil {
		t.Errorf("empty group %d survived global purge", otherEmpty.ID)
	}
}

func TestListGroups_JoinAndOrder(t *testing.T) {
	db := testDB(t)
	doc, _ := db.GetOrCreateDocument("/books/a.epub", "path", "Book A")
	zebra, _ := db.EnsureGroup(doc.ID, "zebra", "zebra")
	apple, _ := db.EnsureGroup(doc.ID, "Apple", "apple")
	_, _ = db.AddNote(zebra.ID, "n1")
	_, _ = db.AddNote(apple.ID, "n1")
	_, _ = db.AddNote(apple.ID, "n2")
	_ = db.AddAlias(apple.ID, "Pomme", "pomme")

	rows, err := db.ListGroups(GroupFilter{DocumentID: doc.ID})
	if err != nil {
		t.Fatalf("ListGroups: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	if rows[0].PrimaryTag != "Apple" || rows[1].PrimaryTag != "zebra" {
		t.Errorf("order = %q, %q", rows[0].PrimaryTag, rows[1].PrimaryTag)
	}
	if rows[0].NoteCount != 2 || rows[0].AliasCount != 1 {
		t.Errorf("apple counts = %d notes, %d aliases", rows[0].NoteCount, rows[0].AliasCount)
	}
	if rows[0].DocumentDisplay != "Book A" {
		t.Errorf("document display = %q", rows[0].DocumentDisplay)
	}
}

func TestListGroups_SearchMatchesTagOrAlias(t *testing.T) {
	db := testDB(t)
	doc, _ := db.GetOrCreateDocument("/a", "path", "A")
	foo, _ := db.EnsureGroup(doc.ID, "Foo", "foo")
	baz, _ := db.EnsureGroup(doc.ID, "Baz", "baz")
	_, _ = db.AddNote(foo.ID, "n")
	_, _ = db.AddNote(baz.ID, "n")
	_ = db.AddAlias(baz.ID, "Foothold", "foothold")

	rows, err := db.ListGroups(GroupFilter{DocumentID: doc.ID, SearchText: "FOO"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2 (tag match and alias match)", len(rows))
	}

	rows, _ = db.ListGroups(GroupFilter{DocumentID: doc.ID, SearchText: "hold"})
	if len(rows) != 1 || rows[0].PrimaryTag != "Baz" {
		t.Errorf("alias-only search returned %+v", rows)
	}
}

func TestAliasInUse(t *testing.T) {
	db := testDB(t)
	doc, _ := db.GetOrCreateDocument("/a", "path", "A")
	other, _ := db.GetOrCreateDocument("/b", "path", "B")
	foo, _ := db.EnsureGroup(doc.ID, "Foo", "foo")
	_ = db.AddAlias(foo.ID, "Bar", "bar")

	cases := []struct {
		docID      int64
		normalized string
		want       bool
	}{
		{doc.ID, "foo", true},  // a group's own tag
		{doc.ID, "bar", true},  // an alias
		{doc.ID, "baz", false}, // free
		{other.ID, "foo", false}, // other document is an independent namespace
		{other.ID, "bar", false},
	}
	for _, tc := range cases {
		got, err := db.AliasInUse(tc.docID, tc.normalized)
		if err != nil {
			t.Fatalf("AliasInUse(%d, %q): %v", tc.docID, tc.normalized, err)
		}
		if got != tc.want {
			t.Errorf("AliasInUse(%d, %q) = %v, want %v", tc.docID, tc.normalized, got, tc.want)
		}
	}
}

func TestSetGroupMultiNoteMode(t *testing.T) {
	db := testDB(t)
	doc, _ := db.GetOrCreateDocument("/a", "path", "A")
	g, _ := db.EnsureGroup(doc.ID, "Foo", "foo")

	if err := db.SetGroupMultiNoteMode(g.ID, true); err != nil {
		t.Fatal(err)
	}
	got, _ := db.GetGroup(doc.ID, "foo")
	if !got.MultiNoteMode {
		t.Error("mode not enabled")
	}
	_ = db.SetGroupMultiNoteMode(g.ID, false)
	got, _ = db.GetGroup(doc.ID, "foo")
	if got.MultiNoteMode {
		t.Error("mode not disabled")
	}
}
