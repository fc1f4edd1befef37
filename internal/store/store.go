// Package store persists the launcher layout.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/justyntemme/launchgrid/internal/model"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// ErrCorrupt is returned by Load when persisted data cannot be turned back
// into a layout.
var ErrCorrupt = errors.New("corrupt layout")

// Store saves and loads the ordered item collection. Icons are not
// persisted.
type Store interface {
	Save(items []model.Item) error
	// Load returns the saved layout. found is false when nothing has been
	// saved yet.
	Load() (items []model.Item, found bool, err error)
	Close() error
}

// Open returns the backend named by backend. An empty path selects the
// default location under DefaultDir.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendJSON, "":
		if path == "" {
			path = filepath.Join(DefaultDir(), "layout.json")
		}
		return NewJSONStore(path), nil
	case BackendSQLite:
		if path == "" {
			path = filepath.Join(DefaultDir(), "layout.db")
		}
		return OpenSQLite(path)
	}
	return nil, fmt.Errorf("unknown store backend %q", backend)
}

// DefaultDir is where the layout lives when no path is configured.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "launchgrid")
}

// record is the persisted shape of one grid slot.
type record struct {
	Kind string   `json:"kind"`
	ID   string   `json:"id"`
	Name string   `json:"name,omitempty"`
	Path string   `json:"path,omitempty"`
	Apps []member `json:"apps,omitempty"`
}

// member is an app inside a folder record.
type member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

func toRecords(items []model.Item) []record {
	out := make([]record, 0, len(items))
	for _, it := range items {
		rec := record{Kind: it.Kind.String(), ID: it.ID}
		switch it.Kind {
		case model.KindApp:
			rec.Name, rec.Path = it.Name, it.Path
		case model.KindFolder:
			rec.Name = it.Name
			rec.Apps = make([]member, 0, len(it.Apps))
			for _, app := range it.Apps {
				rec.Apps = append(rec.Apps, member{ID: app.ID, Name: app.Name, Path: app.Path})
			}
		}
		out = append(out, rec)
	}
	return out
}

func fromRecords(recs []record) ([]model.Item, error) {
	out := make([]model.Item, 0, len(recs))
	for i, rec := range recs {
		switch rec.Kind {
		case model.KindApp.String():
			if rec.Path == "" {
				return nil, fmt.Errorf("record %d: app without path: %w", i, ErrCorrupt)
			}
			out = append(out, restoreApp(rec.ID, rec.Name, rec.Path))
		case model.KindFolder.String():
			if rec.ID == "" {
				return nil, fmt.Errorf("record %d: folder without id: %w", i, ErrCorrupt)
			}
			folder := model.Item{Kind: model.KindFolder, ID: rec.ID, Name: rec.Name, Apps: make([]model.Item, 0, len(rec.Apps))}
			for _, m := range rec.Apps {
				folder.Apps = append(folder.Apps, restoreApp(m.ID, m.Name, m.Path))
			}
			out = append(out, folder)
		case model.KindEmpty.String():
			empty := model.NewEmpty()
			if rec.ID != "" {
				empty.ID = rec.ID
			}
			out = append(out, empty)
		default:
			return nil, fmt.Errorf("record %d: kind %q: %w", i, rec.Kind, ErrCorrupt)
		}
	}
	if err := checkUniqueIDs(out); err != nil {
		return nil, err
	}
	return out, nil
}

// checkUniqueIDs rejects a layout in which an id appears twice, at the top
// level or inside folders.
func checkUniqueIDs(items []model.Item) error {
	seen := make(map[string]bool)
	add := func(it model.Item) error {
		if seen[it.ID] {
			return fmt.Errorf("duplicate id %q: %w", it.ID, ErrCorrupt)
		}
		seen[it.ID] = true
		return nil
	}
	for _, it := range items {
		if err := add(it); err != nil {
			return err
		}
		for _, app := range it.Apps {
			if err := add(app); err != nil {
				return err
			}
		}
	}
	return nil
}

func restoreApp(id, name, path string) model.Item {
	app := model.NewApp(name, path)
	if id != "" {
		app.ID = id
	}
	return app
}
