package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/justyntemme/launchgrid/internal/model"
)

func sampleLayout() []model.Item {
	safari := model.NewApp("Safari", "/Applications/Safari.app")
	mail := model.NewApp("Mail", "/Applications/Mail.app")
	notes := model.NewApp("Notes", "/Applications/Notes.app")
	folder := model.NewFolder("Work", mail, notes)
	return []model.Item{safari, model.NewEmpty(), folder, model.NewApp("Maps", "/Applications/Maps.app")}
}

func assertSameLayout(t *testing.T, got, want []model.Item) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.Kind != w.Kind || g.ID != w.ID || g.Name != w.Name || g.Path != w.Path {
			t.Errorf("item %d = %+v, want %+v", i, g, w)
		}
		if len(g.Apps) != len(w.Apps) {
			t.Errorf("item %d: %d members, want %d", i, len(g.Apps), len(w.Apps))
			continue
		}
		for j := range w.Apps {
			if g.Apps[j].ID != w.Apps[j].ID || g.Apps[j].Name != w.Apps[j].Name || g.Apps[j].Path != w.Apps[j].Path {
				t.Errorf("item %d member %d = %+v, want %+v", i, j, g.Apps[j], w.Apps[j])
			}
		}
	}
}

func openBackends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	sqlite, err := OpenSQLite(filepath.Join(dir, "layout.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{
		BackendJSON:   NewJSONStore(filepath.Join(dir, "layout.json")),
		BackendSQLite: sqlite,
	}
}

func TestRoundTrip(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if _, found, err := s.Load(); err != nil || found {
				t.Fatalf("fresh Load: found=%v err=%v", found, err)
			}

			want := sampleLayout()
			if err := s.Save(want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, found, err := s.Load()
			if err != nil || !found {
				t.Fatalf("Load: found=%v err=%v", found, err)
			}
			assertSameLayout(t, got, want)

			// A second save replaces, not appends.
			shorter := want[:1]
			if err := s.Save(shorter); err != nil {
				t.Fatal(err)
			}
			got, _, _ = s.Load()
			assertSameLayout(t, got, shorter)
		})
	}
}

func TestSaveEmptyLayout(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Save(nil); err != nil {
				t.Fatal(err)
			}
			items, found, err := s.Load()
			if err != nil || !found || len(items) != 0 {
				t.Errorf("Load = %v, %v, %v; want empty saved layout", items, found, err)
			}
		})
	}
}

func TestJSONCorrupt(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"garbage", "{not json"},
		{"unknown kind", `{"version":1,"items":[{"kind":"widget","id":"x"}]}`},
		{"app without path", `{"version":1,"items":[{"kind":"app","id":"x","name":"X"}]}`},
		{"future version", `{"version":99,"items":[]}`},
		{"app twice", `{"version":1,"items":[{"kind":"app","id":"a","name":"A","path":"/a"},{"kind":"app","id":"a","name":"A","path":"/a"}]}`},
		{"app also in folder", `{"version":1,"items":[{"kind":"app","id":"a","name":"A","path":"/a"},{"kind":"folder","id":"f","name":"F","apps":[{"id":"a","name":"A","path":"/a"}]}]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "layout.json")
			os.WriteFile(path, []byte(tc.data), 0o644)
			_, found, err := NewJSONStore(path).Load()
			if !errors.Is(err, ErrCorrupt) || found {
				t.Errorf("Load = found %v, err %v; want ErrCorrupt", found, err)
			}
		})
	}
}

func TestJSONSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewJSONStore(filepath.Join(dir, "nested", "layout.json"))
	for i := 0; i < 3; i++ {
		if err := s.Save(sampleLayout()); err != nil {
			t.Fatal(err)
		}
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "nested"))
	if len(entries) != 1 || entries[0].Name() != "layout.json" {
		t.Errorf("directory holds %v", entries)
	}
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(BackendJSON, filepath.Join(dir, "a.json"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*JSONStore); !ok {
		t.Errorf("json backend = %T", s)
	}
	s, err = Open(BackendSQLite, filepath.Join(dir, "a.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, ok := s.(*SQLiteStore); !ok {
		t.Errorf("sqlite backend = %T", s)
	}
	if _, err := Open("yaml", ""); err == nil {
		t.Error("unknown backend should fail")
	}
}

// blockingStore holds each Save until released so tests can observe
// coalescing.
type blockingStore struct {
	mu      sync.Mutex
	saves   [][]model.Item
	release chan struct{}
	fail    error
}

func (b *blockingStore) Save(items []model.Item) error {
	<-b.release
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saves = append(b.saves, items)
	return b.fail
}

func (b *blockingStore) Load() ([]model.Item, bool, error) { return nil, false, nil }
func (b *blockingStore) Close() error                      { return nil }

func TestWriterCoalesces(t *testing.T) {
	bs := &blockingStore{release: make(chan struct{})}
	w := NewWriter(bs)
	go w.Start()

	layout := sampleLayout()
	w.Submit(layout[:1])
	// Wait until the first save is in progress so later submits queue up.
	time.Sleep(20 * time.Millisecond)
	w.Submit(layout[:2])
	w.Submit(layout[:3])
	w.Submit(layout)

	close(bs.release)
	w.Close()

	bs.mu.Lock()
	defer bs.mu.Unlock()
	if len(bs.saves) != 2 {
		t.Fatalf("saves = %d, want 2 (first, then newest)", len(bs.saves))
	}
	if len(bs.saves[1]) != len(layout) {
		t.Errorf("last save has %d items, want %d", len(bs.saves[1]), len(layout))
	}
}

func TestWriterSnapshotIsolated(t *testing.T) {
	bs := &blockingStore{release: make(chan struct{})}
	close(bs.release)
	w := NewWriter(bs)
	go w.Start()

	layout := sampleLayout()
	w.Submit(layout)
	layout[2].Apps[0].Name = "mutated"
	w.Close()

	if got := bs.saves[0][2].Apps[0].Name; got != "Mail" {
		t.Errorf("saved member name = %q; caller mutation leaked", got)
	}
}

func TestWriterReportsErrors(t *testing.T) {
	boom := errors.New("disk full")
	bs := &blockingStore{release: make(chan struct{}), fail: boom}
	close(bs.release)
	w := NewWriter(bs)
	go w.Start()

	w.Submit(sampleLayout())
	select {
	case resp := <-w.ResponseChan:
		if !errors.Is(resp.Err, boom) || resp.Items != 4 {
			t.Errorf("response = %+v", resp)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no response")
	}
	w.Close()
	w.Submit(sampleLayout()) // dropped, must not panic
}
