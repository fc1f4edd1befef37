package model

import "testing"

func TestAppIDStable(t *testing.T) {
	a := NewApp("Safari", "/Applications/Safari.app")
	b := NewApp("Safari (copy)", "/Applications/Safari.app")
	if a.ID != b.ID {
		t.Errorf("same path should give same id: %s vs %s", a.ID, b.ID)
	}
	c := NewApp("Mail", "/Applications/Mail.app")
	if a.ID == c.ID {
		t.Error("different paths should give different ids")
	}
}

func TestNewEmptyDistinctIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		e := NewEmpty()
		if !e.IsEmpty() {
			t.Fatalf("NewEmpty kind = %v", e.Kind)
		}
		if seen[e.ID] {
			t.Fatalf("duplicate placeholder id %s", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestCloneDoesNotShareMembers(t *testing.T) {
	f := NewFolder("Work", NewApp("Mail", "/a/Mail.app"), NewApp("Notes", "/a/Notes.app"))
	c := f.Clone()
	c.Apps[0].Name = "Changed"
	if f.Apps[0].Name != "Mail" {
		t.Error("clone shares member storage with original")
	}
}

func TestKindString(t *testing.T) {
	testCases := []struct {
		kind Kind
		want string
	}{
		{KindApp, "app"},
		{KindFolder, "folder"},
		{KindEmpty, "empty"},
		{Kind(42), "unknown"},
	}
	for _, tc := range testCases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestIndexOfAndCount(t *testing.T) {
	items := []Item{NewApp("A", "/a"), NewEmpty(), NewApp("B", "/b")}
	if got := IndexOf(items, items[2].ID); got != 2 {
		t.Errorf("IndexOf = %d, want 2", got)
	}
	if got := IndexOf(items, "missing"); got != -1 {
		t.Errorf("IndexOf(missing) = %d, want -1", got)
	}
	if got := CountNonEmpty(items); got != 2 {
		t.Errorf("CountNonEmpty = %d, want 2", got)
	}
}
