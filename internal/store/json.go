package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/justyntemme/launchgrid/internal/debug"
	"github.com/justyntemme/launchgrid/internal/model"
)

const documentVersion = 1

type document struct {
	Version int      `json:"version"`
	Items   []record `json:"items"`
}

// JSONStore keeps the layout in one JSON document.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the document location.
func (s *JSONStore) Path() string {
	return s.path
}

// Save writes the document atomically: a crash mid-write leaves the
// previous layout in place.
func (s *JSONStore) Save(items []model.Item) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(document{Version: documentVersion, Items: toRecords(items)}, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".layout-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	debug.Log(debug.STORE, "saved %d items to %s", len(items), s.path)
	return nil
}

func (s *JSONStore) Load() ([]model.Item, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("parse %s: %v: %w", s.path, err, ErrCorrupt)
	}
	if doc.Version > documentVersion {
		return nil, false, fmt.Errorf("%s has version %d: %w", s.path, doc.Version, ErrCorrupt)
	}
	items, err := fromRecords(doc.Items)
	if err != nil {
		return nil, false, err
	}
	debug.Log(debug.STORE, "loaded %d items from %s", len(items), s.path)
	return items, true, nil
}

func (s *JSONStore) Close() error { return nil }
