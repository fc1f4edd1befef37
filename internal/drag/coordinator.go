// Package drag tracks the single in-flight drag gesture on the launcher grid.
//
// The Coordinator only records intent: which item is being dragged, where the
// pointer is, what it hovers and where it would drop. Applying that intent to
// the collection is the board's job.
package drag

import (
	"errors"

	"gioui.org/f32"

	"github.com/justyntemme/launchgrid/internal/debug"
	"github.com/justyntemme/launchgrid/internal/model"
)

var (
	ErrNotDragging     = errors.New("drag: no active session")
	ErrAlreadyDragging = errors.New("drag: another item is already being dragged")
	ErrStaleSession    = errors.New("drag: event belongs to a finished session")
)

// DefaultThreshold is the pointer travel, in pixels, before a press becomes a drag.
const DefaultThreshold = 8

// State is the coordinator's lifecycle state.
type State int

const (
	Idle State = iota
	Armed
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Dragging:
		return "dragging"
	}
	return "unknown"
}

// Session describes an in-progress drag. A copy is handed out; mutating it
// does not affect the coordinator.
type Session struct {
	ID             uint64
	Dragging       model.Item
	Start          f32.Point
	Position       f32.Point
	Hovered        *model.Item
	DropIndex      int // -1 when no drop target has been computed
	CreatingFolder bool
	FolderTarget   *model.Item
}

// HasDropIndex reports whether a drop index is pending.
func (s Session) HasDropIndex() bool {
	return s.DropIndex >= 0
}

// Coordinator owns at most one Session. It is driven from the UI goroutine
// and is not safe for concurrent use.
type Coordinator struct {
	threshold float32

	state   State
	session Session
	nextID  uint64
}

// NewCoordinator returns an idle coordinator. threshold <= 0 uses DefaultThreshold.
func NewCoordinator(threshold float32) *Coordinator {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Coordinator{threshold: threshold}
}

func (c *Coordinator) State() State { return c.state }

// Active reports whether a drag is in progress.
func (c *Coordinator) Active() bool { return c.state == Dragging }

// Session returns a snapshot of the current session and whether one exists.
func (c *Coordinator) Session() (Session, bool) {
	if c.state != Dragging {
		return Session{}, false
	}
	return c.snapshot(), true
}

// Press arms the coordinator for item at pos. The drag starts once the
// pointer travels past the threshold.
func (c *Coordinator) Press(item model.Item, pos f32.Point) {
	if c.state == Dragging {
		return
	}
	c.state = Armed
	c.session = Session{Dragging: item, Start: pos, Position: pos, DropIndex: -1}
}

// Move feeds pointer motion. While armed it promotes to a drag once the
// threshold is exceeded and reports whether that just happened. While
// dragging it updates the position.
func (c *Coordinator) Move(pos f32.Point) (started bool) {
	switch c.state {
	case Armed:
		d := pos.Sub(c.session.Start)
		if d.X*d.X+d.Y*d.Y < c.threshold*c.threshold {
			return false
		}
		if _, err := c.StartDrag(c.session.Dragging, c.session.Start); err != nil {
			return false
		}
		c.session.Position = pos
		return true
	case Dragging:
		c.session.Position = pos
	}
	return false
}

// StartDrag begins a session for item. Calling it again for the item that
// is already being dragged is a no-op returning the current session id.
func (c *Coordinator) StartDrag(item model.Item, pos f32.Point) (uint64, error) {
	if c.state == Dragging {
		if c.session.Dragging.ID == item.ID {
			return c.session.ID, nil
		}
		return 0, ErrAlreadyDragging
	}
	c.nextID++
	c.state = Dragging
	c.session = Session{
		ID:        c.nextID,
		Dragging:  item,
		Start:     pos,
		Position:  pos,
		DropIndex: -1,
	}
	debug.Log(debug.DRAG, "start session=%d item=%s (%s)", c.session.ID, item.ID, item.Name)
	return c.session.ID, nil
}

// UpdatePosition records the pointer position. It does not change the hover
// or drop target.
func (c *Coordinator) UpdatePosition(id uint64, pos f32.Point) error {
	if err := c.check(id); err != nil {
		return err
	}
	c.session.Position = pos
	return nil
}

// SetHovered records the item under the pointer, or clears it when item is
// nil. Folder creation is proposed only when the hovered item and the
// dragged item are both apps with different ids.
func (c *Coordinator) SetHovered(id uint64, item *model.Item) error {
	if err := c.check(id); err != nil {
		return err
	}
	if item == nil {
		c.session.Hovered = nil
		c.clearFolderIntent()
		return nil
	}
	hovered := *item
	c.session.Hovered = &hovered

	dragging := c.session.Dragging
	if dragging.IsApp() && hovered.IsApp() && dragging.ID != hovered.ID {
		if !c.session.CreatingFolder || c.session.FolderTarget.ID != hovered.ID {
			debug.Log(debug.DRAG, "folder intent: %s onto %s", dragging.Name, hovered.Name)
		}
		c.session.CreatingFolder = true
		c.session.FolderTarget = &hovered
		return nil
	}
	c.clearFolderIntent()
	return nil
}

// SetDropIndex records where the dragged item would land if released now.
func (c *Coordinator) SetDropIndex(id uint64, index int) error {
	if err := c.check(id); err != nil {
		return err
	}
	c.session.DropIndex = index
	return nil
}

// End finishes the session and returns its final state. The caller applies
// the result; the coordinator only announces it.
func (c *Coordinator) End() (Session, error) {
	if c.state != Dragging {
		c.reset()
		return Session{}, ErrNotDragging
	}
	final := c.snapshot()
	debug.Log(debug.DRAG, "end session=%d drop=%d folder=%v", final.ID, final.DropIndex, final.CreatingFolder)
	c.reset()
	return final, nil
}

// Cancel abandons any armed press or active session without a result.
func (c *Coordinator) Cancel() {
	if c.state == Dragging {
		debug.Log(debug.DRAG, "cancel session=%d", c.session.ID)
	}
	c.reset()
}

func (c *Coordinator) check(id uint64) error {
	if c.state != Dragging {
		return ErrNotDragging
	}
	if id != c.session.ID {
		return ErrStaleSession
	}
	return nil
}

func (c *Coordinator) clearFolderIntent() {
	c.session.CreatingFolder = false
	c.session.FolderTarget = nil
}

func (c *Coordinator) reset() {
	c.state = Idle
	c.session = Session{DropIndex: -1}
}

func (c *Coordinator) snapshot() Session {
	s := c.session
	if s.Hovered != nil {
		h := *s.Hovered
		s.Hovered = &h
	}
	if s.FolderTarget != nil {
		t := *s.FolderTarget
		s.FolderTarget = &t
	}
	return s
}
