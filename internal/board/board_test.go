package board

import (
	"errors"
	"image"
	"slices"
	"sync"
	"testing"
	"time"

	"gioui.org/f32"

	"github.com/justyntemme/launchgrid/internal/drag"
	"github.com/justyntemme/launchgrid/internal/model"
)

type recordingPersister struct {
	mu    sync.Mutex
	saves [][]model.Item
}

func (p *recordingPersister) Submit(items []model.Item) {
	p.mu.Lock()
	p.saves = append(p.saves, items)
	p.mu.Unlock()
}

func (p *recordingPersister) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.saves)
}

func TestBoardCommitReorderPersists(t *testing.T) {
	p := &recordingPersister{}
	b := NewBoard(makeApps(10), Options{Persister: p})
	before := b.Items()

	if err := b.CommitReorder(before[5].ID, 2); err != nil {
		t.Fatal(err)
	}
	if b.Items()[2].ID != before[5].ID {
		t.Error("reorder not applied")
	}
	if before[2].Name != "App02" {
		t.Error("commit edited a published slice")
	}
	if p.count() != 1 {
		t.Errorf("persisted %d times, want 1", p.count())
	}

	// No-op reorders are not persisted.
	if err := b.CommitReorder(before[5].ID, 2); err != nil {
		t.Fatal(err)
	}
	if p.count() != 1 {
		t.Errorf("no-op reorder persisted")
	}
}

func TestBoardErrorsLeaveStateUnchanged(t *testing.T) {
	p := &recordingPersister{}
	b := NewBoard(makeApps(4), Options{Persister: p})
	before := b.Items()

	if err := b.RenameFolder("F1", "Utilities"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("RenameFolder err = %v", err)
	}
	if err := b.CommitReorder("missing", 0); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("CommitReorder err = %v", err)
	}
	if _, err := b.CreateFolder(before[0].ID, before[0].ID); !errors.Is(err, model.ErrInvalidOperation) {
		t.Errorf("CreateFolder err = %v", err)
	}
	if &b.Items()[0] != &before[0] {
		t.Error("failed operations replaced the collection")
	}
	if p.count() != 0 {
		t.Error("failed operations were persisted")
	}
}

func TestBoardPages(t *testing.T) {
	b := NewBoard(makeApps(36), Options{})
	if b.PageCount() != 2 {
		t.Fatalf("PageCount = %d", b.PageCount())
	}
	pages := b.Pages()
	if len(pages[1]) != 1 {
		t.Errorf("second page has %d items", len(pages[1]))
	}
}

func TestBoardApplyDrop(t *testing.T) {
	safari, mail, _, items := dock()
	b := NewBoard(items, Options{})
	c := drag.NewCoordinator(0)

	// Reorder: drag Safari to index 0.
	id, _ := c.StartDrag(safari, f32.Pt(0, 0))
	c.SetDropIndex(id, 0)
	s, _ := c.End()
	if err := b.ApplyDrop(s); err != nil {
		t.Fatal(err)
	}
	if b.Items()[0].ID != safari.ID {
		t.Fatalf("Safari not moved: %v", ids(b.Items()))
	}

	// Folder: drag Safari onto Mail.
	id, _ = c.StartDrag(safari, f32.Pt(0, 0))
	c.SetDropIndex(id, 3)
	c.SetHovered(id, &mail)
	s, _ = c.End()
	if err := b.ApplyDrop(s); err != nil {
		t.Fatal(err)
	}
	if model.IndexOf(b.Items(), safari.ID) >= 0 {
		t.Error("Safari should be inside a folder")
	}

	// Cancelled sessions carry nothing.
	before := b.Items()
	c.StartDrag(before[0], f32.Pt(0, 0))
	c.Cancel()
	if err := b.ApplyDrop(drag.Session{DropIndex: -1}); err != nil {
		t.Fatal(err)
	}
	if &b.Items()[0] != &before[0] {
		t.Error("empty drop changed the collection")
	}
}

func TestBoardExpandedFolderReadsLive(t *testing.T) {
	safari, mail, _, items := dock()
	b := NewBoard(items, Options{})
	folder, err := b.CreateFolder(safari.ID, mail.ID)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := b.ExpandedFolder(); ok {
		t.Error("no folder should be expanded yet")
	}
	if err := b.OpenFolder(safari.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("opening an app: err = %v", err)
	}
	if err := b.OpenFolder(folder.ID); err != nil {
		t.Fatal(err)
	}
	if err := b.RenameFolder(folder.ID, "Web"); err != nil {
		t.Fatal(err)
	}
	got, ok := b.ExpandedFolder()
	if !ok || got.Name != "Web" {
		t.Errorf("expanded folder = %q, %v; want live name Web", got.Name, ok)
	}
	if pages := b.FolderPages(); len(pages) != 1 || len(pages[0]) != 2 {
		t.Errorf("FolderPages = %v", pages)
	}

	b.CloseFolder()
	if _, ok := b.ExpandedFolder(); ok {
		t.Error("folder still expanded after close")
	}
}

func TestBoardFolderPagination(t *testing.T) {
	members := makeApps(13)
	folder := model.NewFolder("Big", members...)
	b := NewBoard([]model.Item{folder}, Options{})
	b.OpenFolder(folder.ID)
	pages := b.FolderPages()
	if len(pages) != 2 || len(pages[0]) != 12 || len(pages[1]) != 1 {
		t.Errorf("folder pages = %d", len(pages))
	}
}

func TestBoardConcurrentReaders(t *testing.T) {
	b := NewBoard(makeApps(35), Options{})
	var wg sync.WaitGroup
	stop := make(chan struct{})
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				items := b.Items()
				if len(items) != 35 {
					t.Errorf("reader saw %d items", len(items))
					return
				}
			}
		}()
	}
	items := b.Items()
	for i := 0; i < 200; i++ {
		b.CommitReorder(items[i%35].ID, (i*7)%35)
	}
	close(stop)
	wg.Wait()
}

// slowIcons blocks the first Resolve of path until release is closed.
type slowIcons struct {
	path    string
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (s *slowIcons) Resolve(path string) image.Image {
	if path == s.path {
		s.once.Do(func() {
			close(s.started)
			<-s.release
		})
	}
	return image.NewNRGBA(image.Rect(0, 0, 1, 1))
}

func (s *slowIcons) Compose(icons []image.Image) image.Image {
	return image.NewNRGBA(image.Rect(0, 0, 2, 2))
}

func TestBoardReconcileResolvesIconsOutsideCommits(t *testing.T) {
	icons := &slowIcons{
		path:    "/Applications/Zed.app",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	apps := makeApps(4)
	b := NewBoard(apps, Options{Icons: icons})
	zed := model.NewApp("Zed", icons.path)

	result := make(chan bool)
	go func() {
		result <- b.Reconcile(append(slices.Clone(apps), zed))
	}()
	<-icons.started

	committed := make(chan error)
	go func() {
		committed <- b.CommitReorder(apps[3].ID, 0)
	}()
	select {
	case err := <-committed:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		close(icons.release)
		t.Fatal("commit waited on icon loading")
	}

	close(icons.release)
	if !<-result {
		t.Fatal("Reconcile reported no change")
	}
	got := b.Items()
	if len(got) != 5 || got[0].ID != apps[3].ID || got[4].ID != zed.ID {
		t.Errorf("items = %v", ids(got))
	}
	if got[4].Icon == nil {
		t.Error("new app has no icon")
	}
}
