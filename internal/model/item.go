// Package model defines the items that occupy launcher grid slots.
package model

import (
	"image"

	"github.com/google/uuid"
)

// Kind discriminates the variants of Item.
type Kind int

const (
	KindApp Kind = iota
	KindFolder
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindApp:
		return "app"
	case KindFolder:
		return "folder"
	case KindEmpty:
		return "empty"
	}
	return "unknown"
}

// DefaultFolderName is given to folders created by dropping one app onto another.
const DefaultFolderName = "New Folder"

// Item is one grid slot: an application, a folder of applications, or an
// empty placeholder. Which fields are meaningful depends on Kind:
//
//	KindApp:    ID, Name, Path, Icon
//	KindFolder: ID, Name, Apps, Icon
//	KindEmpty:  ID
//
// Icon is resolved at runtime and never persisted.
type Item struct {
	Kind Kind
	ID   string
	Name string
	Path string
	Apps []Item
	Icon image.Image
}

// NewApp returns an application item whose id is derived from its path, so
// rescans of the same installation produce the same id.
func NewApp(name, path string) Item {
	return Item{Kind: KindApp, ID: AppID(path), Name: name, Path: path}
}

// AppID returns the stable id for the application at path.
func AppID(path string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+path)).String()
}

// NewFolder returns a folder with a fresh id. apps is copied.
func NewFolder(name string, apps ...Item) Item {
	members := make([]Item, len(apps))
	copy(members, apps)
	return Item{Kind: KindFolder, ID: uuid.NewString(), Name: name, Apps: members}
}

// NewEmpty returns a placeholder with a fresh id.
func NewEmpty() Item {
	return Item{Kind: KindEmpty, ID: uuid.NewString()}
}

func (it Item) IsApp() bool    { return it.Kind == KindApp }
func (it Item) IsFolder() bool { return it.Kind == KindFolder }
func (it Item) IsEmpty() bool  { return it.Kind == KindEmpty }

// Clone returns a copy that shares no slice storage with it.
func (it Item) Clone() Item {
	if it.Apps != nil {
		apps := make([]Item, len(it.Apps))
		copy(apps, it.Apps)
		it.Apps = apps
	}
	return it
}

// IndexOf returns the position of the item with id, or -1.
func IndexOf(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the item with id.
func Find(items []Item, id string) (Item, bool) {
	if i := IndexOf(items, id); i >= 0 {
		return items[i], true
	}
	return Item{}, false
}

// CloneAll returns a deep copy of items.
func CloneAll(items []Item) []Item {
	out := make([]Item, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}

// CountNonEmpty returns the number of items that are not placeholders.
func CountNonEmpty(items []Item) int {
	n := 0
	for _, it := range items {
		if !it.IsEmpty() {
			n++
		}
	}
	return n
}
