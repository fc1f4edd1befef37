package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/justyntemme/launchgrid/internal/board"
	"github.com/justyntemme/launchgrid/internal/catalog"
	"github.com/justyntemme/launchgrid/internal/config"
	"github.com/justyntemme/launchgrid/internal/model"
	"github.com/justyntemme/launchgrid/internal/store"
)

// installApps writes one desktop entry per name and returns their paths.
func installApps(t *testing.T, dir string, names ...string) map[string]string {
	t.Helper()
	paths := make(map[string]string)
	for _, name := range names {
		path := filepath.Join(dir, strings.ToLower(name)+".desktop")
		body := "[Desktop Entry]\nType=Application\nName=" + name + "\nExec=" + strings.ToLower(name) + "\n"
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		paths[name] = path
	}
	return paths
}

func names(items []model.Item) string {
	var out []string
	for _, it := range items {
		out = append(out, it.Name)
	}
	return strings.Join(out, ",")
}

func TestLoadLayout(t *testing.T) {
	apps := t.TempDir()
	paths := installApps(t, apps, "Alpha", "Beta", "Gamma")
	scanner := catalog.NewScanner(catalog.Options{Dirs: []string{apps}})

	saved := []model.Item{
		model.NewApp("Beta", paths["Beta"]),
		model.NewApp("Ghost", filepath.Join(apps, "ghost.desktop")),
		model.NewApp("Alpha", paths["Alpha"]),
	}

	tests := []struct {
		name    string
		setup   func(t *testing.T, path string)
		rescan  bool
		noStore bool
		want    string
	}{
		{
			name: "nothing saved",
			want: "Alpha,Beta,Gamma",
		},
		{
			name: "saved order wins",
			setup: func(t *testing.T, path string) {
				if err := store.NewJSONStore(path).Save(saved); err != nil {
					t.Fatal(err)
				}
			},
			want: "Beta,Alpha,Gamma",
		},
		{
			name: "rescan ignores saved",
			setup: func(t *testing.T, path string) {
				if err := store.NewJSONStore(path).Save(saved); err != nil {
					t.Fatal(err)
				}
			},
			rescan: true,
			want:   "Alpha,Beta,Gamma",
		},
		{
			name: "corrupt file",
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			want: "Alpha,Beta,Gamma",
		},
		{
			name:    "no store",
			noStore: true,
			want:    "Alpha,Beta,Gamma",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "layout.json")
			if tt.setup != nil {
				tt.setup(t, path)
			}
			var st store.Store = store.NewJSONStore(path)
			if tt.noStore {
				st = nil
			}
			got := loadLayout(st, scanner, tt.rescan, board.MainPageSize)
			if names(got) != tt.want {
				t.Errorf("loadLayout = %s, want %s", names(got), tt.want)
			}
		})
	}
}

func TestLoadLayoutKeepsSavedWhenScanEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	saved := []model.Item{model.NewApp("Alpha", "/gone/alpha.desktop")}
	if err := store.NewJSONStore(path).Save(saved); err != nil {
		t.Fatal(err)
	}
	scanner := catalog.NewScanner(catalog.Options{Dirs: []string{filepath.Join(t.TempDir(), "missing")}})

	got := loadLayout(store.NewJSONStore(path), scanner, false, board.MainPageSize)
	if names(got) != "Alpha" {
		t.Errorf("loadLayout = %s, want the saved layout", names(got))
	}
}

func TestRefresh(t *testing.T) {
	apps := t.TempDir()
	installApps(t, apps, "Alpha")
	scanner := catalog.NewScanner(catalog.Options{Dirs: []string{apps}})
	b := board.NewBoard(scanner.Scan(), board.Options{})

	if refresh(b, scanner) {
		t.Error("refresh with no catalog change reported a change")
	}

	installApps(t, apps, "Beta")
	if !refresh(b, scanner) {
		t.Fatal("refresh missed a new app")
	}
	if names(b.Items()) != "Alpha,Beta" {
		t.Errorf("items = %s, want Alpha,Beta", names(b.Items()))
	}
}

func TestMigrateLayout(t *testing.T) {
	dir := t.TempDir()
	from := config.StoreConfig{Backend: store.BackendJSON, Path: filepath.Join(dir, "layout.json")}
	saved := []model.Item{
		model.NewApp("Alpha", "/apps/alpha.desktop"),
		model.NewFolder("Work", model.NewApp("Beta", "/apps/beta.desktop"), model.NewApp("Gamma", "/apps/gamma.desktop")),
	}
	if err := store.NewJSONStore(from.Path).Save(saved); err != nil {
		t.Fatal(err)
	}

	to, err := store.Open(store.BackendSQLite, filepath.Join(dir, "layout.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer to.Close()

	if !migrateLayout(from, to) {
		t.Fatal("migrateLayout did not copy the layout")
	}
	got, found, err := to.Load()
	if err != nil || !found {
		t.Fatalf("Load = found %v, err %v", found, err)
	}
	if names(got) != "Alpha,Work" || len(got[1].Apps) != 2 {
		t.Errorf("migrated layout = %s with %d folder members", names(got), len(got[1].Apps))
	}

	if migrateLayout(from, to) {
		t.Error("migrateLayout overwrote an existing layout")
	}
}
