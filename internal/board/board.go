package board

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/justyntemme/launchgrid/internal/debug"
	"github.com/justyntemme/launchgrid/internal/drag"
	"github.com/justyntemme/launchgrid/internal/model"
)

// Persister receives every committed collection. Submit must not block;
// failures are the persister's to report and never roll back a commit.
type Persister interface {
	Submit(items []model.Item)
}

// Options configures a Board. Zero page sizes use the defaults.
type Options struct {
	PageSize       int
	FolderPageSize int
	Icons          Icons
	Persister      Persister
}

// Board is the single owner of the ordered collection.
//
// Readers get the current slice from Items and may use it for as long as
// they like: commits never edit a published slice, they swap in a new one.
// Writers are serialized, so the UI goroutine and a background rescan can
// both commit.
type Board struct {
	mu       sync.Mutex // serializes commits and guards expanded
	items    atomic.Pointer[[]model.Item]
	expanded string

	pageSize       int
	folderPageSize int
	icons          Icons
	persister      Persister
}

// NewBoard returns a board holding items. Icons are filled in when an icon
// provider is configured.
func NewBoard(items []model.Item, opts Options) *Board {
	if opts.PageSize <= 0 {
		opts.PageSize = MainPageSize
	}
	if opts.FolderPageSize <= 0 {
		opts.FolderPageSize = FolderPageSize
	}
	b := &Board{
		pageSize:       opts.PageSize,
		folderPageSize: opts.FolderPageSize,
		icons:          opts.Icons,
		persister:      opts.Persister,
	}
	initial := Decorate(items, b.icons)
	b.items.Store(&initial)
	return b
}

// Items returns the current collection. It must not be modified.
func (b *Board) Items() []model.Item {
	return *b.items.Load()
}

func (b *Board) Len() int            { return len(b.Items()) }
func (b *Board) PageSize() int       { return b.pageSize }
func (b *Board) FolderPageSize() int { return b.folderPageSize }

// PageCount returns the number of main grid pages.
func (b *Board) PageCount() int {
	return PageCount(b.Len(), b.pageSize)
}

// Pages returns the main grid pages of the current collection.
func (b *Board) Pages() [][]model.Item {
	return Pages(b.Items(), b.pageSize)
}

// Preview returns the collection as it should be drawn during session.
func (b *Board) Preview(session *drag.Session) []model.Item {
	return Preview(b.Items(), session)
}

// CommitReorder moves draggedID to the absolute slot target.
func (b *Board) CommitReorder(draggedID string, target int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, changed, err := Reorder(b.Items(), draggedID, target, b.pageSize)
	if err != nil {
		return err
	}
	if changed {
		debug.Log(debug.BOARD, "reorder %s -> %d", draggedID, target)
		b.commit(next)
	}
	return nil
}

// CreateFolder merges two apps into a new folder and returns it.
func (b *Board) CreateFolder(draggingID, targetID string) (model.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, folder, err := CreateFolder(b.Items(), draggingID, targetID, b.icons)
	if err != nil {
		return model.Item{}, err
	}
	debug.Log(debug.BOARD, "create folder %s from %s + %s", folder.ID, draggingID, targetID)
	b.commit(next)
	return folder, nil
}

// RenameFolder renames folderID.
func (b *Board) RenameFolder(folderID, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := RenameFolder(b.Items(), folderID, name)
	if err != nil {
		return err
	}
	b.commit(next)
	return nil
}

// ReorderInFolder moves a member within its folder.
func (b *Board) ReorderInFolder(folderID, appID string, target int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, changed, err := ReorderInFolder(b.Items(), folderID, appID, target)
	if err != nil {
		return err
	}
	if changed {
		b.commit(next)
	}
	return nil
}

// RemoveFromFolder drags a member out of its folder onto the main grid.
func (b *Board) RemoveFromFolder(folderID, appID string, target int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := RemoveFromFolder(b.Items(), folderID, appID, target, b.icons)
	if err != nil {
		return err
	}
	b.commit(next)
	return nil
}

// ApplyDrop commits the outcome of a finished drag session: a folder when
// the session ended over another app, a reorder when it has a drop index,
// and nothing otherwise.
func (b *Board) ApplyDrop(s drag.Session) error {
	switch {
	case s.CreatingFolder && s.FolderTarget != nil:
		_, err := b.CreateFolder(s.Dragging.ID, s.FolderTarget.ID)
		return err
	case s.HasDropIndex():
		return b.CommitReorder(s.Dragging.ID, s.DropIndex)
	}
	return nil
}

// Reconcile merges a fresh catalog scan into the collection and reports
// whether anything changed. Icons are resolved without holding the commit
// lock; if another commit lands meanwhile the merge is redone on top of it.
func (b *Board) Reconcile(scanned []model.Item) bool {
	for {
		cur := b.items.Load()
		next, changed := Reconcile(*cur, scanned, b.pageSize)
		if !changed {
			return false
		}
		next = Decorate(next, b.icons)

		b.mu.Lock()
		if b.items.Load() == cur {
			debug.Log(debug.BOARD, "reconcile: %d -> %d items", len(*cur), len(next))
			b.commit(next)
			b.mu.Unlock()
			return true
		}
		b.mu.Unlock()
		debug.Log(debug.BOARD, "reconcile raced a commit, retrying")
	}
}

// Replace swaps in an entirely new collection, for example after a rescan
// that discards the saved layout.
func (b *Board) Replace(items []model.Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commit(Decorate(items, b.icons))
}

// OpenFolder expands folderID. The expanded view reads the folder from the
// live collection; nothing is copied.
func (b *Board) OpenFolder(folderID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if folderIndex(b.Items(), folderID) < 0 {
		return fmt.Errorf("open folder %s: %w", folderID, model.ErrNotFound)
	}
	b.expanded = folderID
	return nil
}

// CloseFolder collapses any expanded folder.
func (b *Board) CloseFolder() {
	b.mu.Lock()
	b.expanded = ""
	b.mu.Unlock()
}

// ExpandedFolder returns the expanded folder as it is in the collection
// right now. A folder that has since disappeared reads as closed.
func (b *Board) ExpandedFolder() (model.Item, bool) {
	b.mu.Lock()
	id := b.expanded
	b.mu.Unlock()
	if id == "" {
		return model.Item{}, false
	}
	items := b.Items()
	if i := folderIndex(items, id); i >= 0 {
		return items[i], true
	}
	return model.Item{}, false
}

// FolderPages paginates the expanded folder's members.
func (b *Board) FolderPages() [][]model.Item {
	folder, ok := b.ExpandedFolder()
	if !ok {
		return nil
	}
	return Pages(folder.Apps, b.folderPageSize)
}

// commit publishes next and hands it to the persister. Caller holds mu.
func (b *Board) commit(next []model.Item) {
	b.items.Store(&next)
	if b.persister != nil {
		b.persister.Submit(next)
	}
}
