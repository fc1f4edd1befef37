package ui

import (
	"image"
	"math"
	"time"

	"gioui.org/f32"

	"github.com/justyntemme/launchgrid/internal/board"
	"github.com/justyntemme/launchgrid/internal/debug"
	"github.com/justyntemme/launchgrid/internal/drag"
	"github.com/justyntemme/launchgrid/internal/grid"
	"github.com/justyntemme/launchgrid/internal/model"
)

// wheelNotch is the smallest whole-number delta treated as a mouse wheel
// step. Gio does not report the scroll source.
const wheelNotch = 20

// surface is where a press landed.
type surface int

const (
	surfaceNone surface = iota
	surfaceMain
	surfaceFolder
	surfaceBackground
	surfaceBackdrop // outside an open folder
)

// Frame is the layout pointer input is interpreted against, as drawn in
// the frame that delivered it. Positions share one coordinate space.
type Frame struct {
	Items      []model.Item
	Main       grid.Geometry
	Folder     *model.Item
	FolderGrid grid.Geometry
	FolderRect image.Rectangle // the whole folder panel
	ReadOnly   bool            // items can be clicked but not dragged
	Now        time.Time
}

func (f Frame) mainPageCount() int {
	return board.PageCount(len(f.Items), f.Main.PageSize())
}

func (f Frame) folderPageCount() int {
	if f.Folder == nil {
		return 1
	}
	return board.PageCount(len(f.Folder.Apps), f.FolderGrid.PageSize())
}

// ControllerOptions tunes gesture recognition. Zero values use defaults.
type ControllerOptions struct {
	DragThreshold  float32
	SwipeThreshold float32
	EdgeMargin     float32
	EdgeDelay      time.Duration
	ScrollQuiet    time.Duration
}

// Controller turns pointer and scroll input into drag sessions, page flips
// and UIEvents. It holds no gio state and runs on the UI goroutine.
type Controller struct {
	coord       *drag.Coordinator
	pager       *board.Pager
	folderPager *board.Pager
	opts        ControllerOptions

	pressed   bool
	origin    surface
	pressItem model.Item
	lastPos   f32.Point
	outside   bool // folder member dragged off the panel

	edgeDir   int
	edgeSince time.Time

	scrolling  bool
	lastScroll time.Time
}

func NewController(opts ControllerOptions) *Controller {
	if opts.EdgeMargin <= 0 {
		opts.EdgeMargin = 40
	}
	if opts.EdgeDelay <= 0 {
		opts.EdgeDelay = 600 * time.Millisecond
	}
	if opts.ScrollQuiet <= 0 {
		opts.ScrollQuiet = 120 * time.Millisecond
	}
	return &Controller{
		coord:       drag.NewCoordinator(opts.DragThreshold),
		pager:       board.NewPager(opts.SwipeThreshold),
		folderPager: board.NewPager(opts.SwipeThreshold),
		opts:        opts,
	}
}

// Page is the visible main grid page.
func (c *Controller) Page() int { return c.pager.Page() }

// FolderPage is the visible page of the expanded folder.
func (c *Controller) FolderPage() int { return c.folderPager.Page() }

// Offset is the horizontal swipe distance of the gesture in progress on
// the main grid.
func (c *Controller) Offset() float32 { return c.pager.Offset() }

// FolderOffset is Offset for the folder grid.
func (c *Controller) FolderOffset() float32 { return c.folderPager.Offset() }

// Session returns the active drag session.
func (c *Controller) Session() (drag.Session, bool) { return c.coord.Session() }

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool { return c.coord.Active() }

// FromFolder reports whether the active drag started inside a folder.
func (c *Controller) FromFolder() bool { return c.coord.Active() && c.origin == surfaceFolder }

// OutsideFolder reports whether a folder member is being dragged off the panel.
func (c *Controller) OutsideFolder() bool { return c.FromFolder() && c.outside }

// Sync clamps the pagers to the current collection. Call it once per frame
// before reading Page. While dragging, one extra trailing page is reachable.
func (c *Controller) Sync(f Frame) {
	count := f.mainPageCount()
	if c.coord.Active() && c.origin == surfaceMain {
		count++
	}
	c.pager.Clamp(count)
	if f.Folder == nil {
		c.folderPager.Reset()
	} else {
		c.folderPager.Clamp(f.folderPageCount())
	}
}

// Press starts tracking a primary button press at pos.
func (c *Controller) Press(f Frame, pos f32.Point) {
	c.pressed = true
	c.lastPos = pos
	c.outside = false
	c.edgeDir = 0
	c.pressItem = model.Item{}

	if f.Folder != nil {
		if !inside(pos, f.FolderRect) {
			c.origin = surfaceBackdrop
			return
		}
		if idx, ok := hit(pos, f.FolderGrid, c.folderPager.Page()); ok && idx < len(f.Folder.Apps) {
			c.origin = surfaceFolder
			c.pressItem = f.Folder.Apps[idx]
			c.coord.Press(c.pressItem, pos)
			return
		}
		c.origin = surfaceNone
		return
	}

	if idx, ok := hit(pos, f.Main, c.pager.Page()); ok && idx < len(f.Items) && !f.Items[idx].IsEmpty() {
		c.origin = surfaceMain
		c.pressItem = f.Items[idx]
		if !f.ReadOnly {
			c.coord.Press(c.pressItem, pos)
		}
		return
	}
	c.origin = surfaceBackground
}

// Drag feeds pointer motion with the button held and reports whether the
// frame needs redrawing.
func (c *Controller) Drag(f Frame, pos f32.Point) bool {
	if !c.pressed {
		return false
	}
	c.lastPos = pos
	if c.coord.Move(pos) {
		debug.Log(debug.UI, "drag started on %s", c.pressItem.Name)
	}
	sess, ok := c.coord.Session()
	if !ok {
		return false
	}

	switch c.origin {
	case surfaceMain:
		c.trackMain(f, sess, pos)
	case surfaceFolder:
		c.trackFolder(f, sess, pos)
	}
	return true
}

// Hold re-evaluates the last pointer position. Gio only reports motion, so
// the renderer calls this every frame of a drag to let edge dwell flip
// pages while the pointer rests.
func (c *Controller) Hold(f Frame) bool {
	if !c.coord.Active() {
		return false
	}
	return c.Drag(f, c.lastPos)
}

func (c *Controller) trackMain(f Frame, sess drag.Session, pos f32.Point) {
	c.edgeFlip(f, pos)

	page := c.pager.Page()
	slot, over := grid.OverIcon(pos, f.Main)
	idx := page*f.Main.PageSize() + slot
	if over && idx < len(f.Items) {
		target := f.Items[idx]
		if target.IsApp() && target.ID != sess.Dragging.ID {
			c.coord.SetHovered(sess.ID, &target)
			c.coord.SetDropIndex(sess.ID, -1)
			return
		}
	}
	c.coord.SetHovered(sess.ID, nil)
	c.coord.SetDropIndex(sess.ID, grid.ResolveIndex(pos, f.Main, page))
}

func (c *Controller) trackFolder(f Frame, sess drag.Session, pos f32.Point) {
	if f.Folder == nil || !inside(pos, f.FolderRect) {
		c.outside = true
		c.coord.SetHovered(sess.ID, nil)
		c.coord.SetDropIndex(sess.ID, -1)
		return
	}
	c.outside = false
	c.coord.SetDropIndex(sess.ID, grid.ResolveIndex(pos, f.FolderGrid, c.folderPager.Page()))
}

// edgeFlip turns the page once the pointer has dwelt in an edge strip for
// the configured delay, and again after every further delay.
func (c *Controller) edgeFlip(f Frame, pos f32.Point) bool {
	dir := grid.EdgeZone(pos, f.Main, c.opts.EdgeMargin)
	if dir == 0 {
		c.edgeDir = 0
		return false
	}
	if dir != c.edgeDir {
		c.edgeDir = dir
		c.edgeSince = f.Now
		return false
	}
	if f.Now.Sub(c.edgeSince) < c.opts.EdgeDelay {
		return false
	}
	c.edgeSince = f.Now
	if c.pager.Go(c.pager.Page()+dir, f.mainPageCount()+1) {
		debug.Log(debug.DRAG, "edge flip to page %d", c.pager.Page())
		return true
	}
	return false
}

// NextEdgeFlip returns when a resting pointer in an edge strip will flip
// the page, or the zero time when it will not.
func (c *Controller) NextEdgeFlip() time.Time {
	if !c.coord.Active() || c.edgeDir == 0 || c.origin != surfaceMain {
		return time.Time{}
	}
	return c.edgeSince.Add(c.opts.EdgeDelay)
}

// Release ends the press at pos and returns what it amounted to: a drop,
// a click on an item, or a click on the background.
func (c *Controller) Release(f Frame, pos f32.Point) UIEvent {
	if !c.pressed {
		return UIEvent{}
	}
	defer c.resetPress()

	if c.coord.Active() {
		c.Drag(f, pos)
		sess, err := c.coord.End()
		if err != nil {
			return UIEvent{}
		}
		switch c.origin {
		case surfaceMain:
			return UIEvent{Action: ActionDrop, Session: sess}
		case surfaceFolder:
			if f.Folder == nil {
				return UIEvent{}
			}
			if c.outside {
				return UIEvent{
					Action:   ActionFolderRemove,
					FolderID: f.Folder.ID,
					Item:     sess.Dragging,
					Index:    grid.ResolveIndex(pos, f.Main, c.pager.Page()),
				}
			}
			if sess.HasDropIndex() {
				return UIEvent{Action: ActionFolderReorder, FolderID: f.Folder.ID, Item: sess.Dragging, Index: sess.DropIndex}
			}
		}
		return UIEvent{}
	}

	c.coord.Cancel()
	switch c.origin {
	case surfaceMain:
		if c.pressItem.IsFolder() {
			return UIEvent{Action: ActionOpenFolder, Item: c.pressItem}
		}
		return UIEvent{Action: ActionLaunch, Item: c.pressItem}
	case surfaceFolder:
		return UIEvent{Action: ActionLaunch, Item: c.pressItem}
	case surfaceBackground:
		return UIEvent{Action: ActionHide}
	case surfaceBackdrop:
		return UIEvent{Action: ActionCloseFolder}
	}
	return UIEvent{}
}

// Cancel abandons the press and any drag without a result.
func (c *Controller) Cancel() {
	c.coord.Cancel()
	c.resetPress()
}

func (c *Controller) resetPress() {
	c.pressed = false
	c.origin = surfaceNone
	c.pressItem = model.Item{}
	c.outside = false
	c.edgeDir = 0
}

// Scroll feeds a scroll delta and reports whether the page changed.
// Trackpad deltas are accumulated into a swipe that Flush ends once the
// input goes quiet.
func (c *Controller) Scroll(f Frame, delta f32.Point) bool {
	p, count, width := c.activePager(f)
	if !precise(delta) {
		return p.Scroll(board.ScrollEvent{Phase: board.PhaseChanged, Delta: delta}, width, count)
	}
	phase := board.PhaseChanged
	if !c.scrolling {
		phase = board.PhaseBegan
		c.scrolling = true
	}
	c.lastScroll = f.Now
	return p.Scroll(board.ScrollEvent{Phase: phase, Delta: delta, Precise: true}, width, count)
}

// Flush ends a trackpad swipe once no scroll input arrived for the quiet
// period, and reports whether that flipped the page.
func (c *Controller) Flush(f Frame) bool {
	if !c.scrolling || f.Now.Sub(c.lastScroll) < c.opts.ScrollQuiet {
		return false
	}
	c.scrolling = false
	p, count, width := c.activePager(f)
	return p.Scroll(board.ScrollEvent{Phase: board.PhaseEnded, Precise: true}, width, count)
}

// NextFlush returns when Flush will end the current swipe, or the zero
// time when no swipe is in progress.
func (c *Controller) NextFlush() time.Time {
	if !c.scrolling {
		return time.Time{}
	}
	return c.lastScroll.Add(c.opts.ScrollQuiet)
}

// GoPage moves the visible grid, main or folder, to page.
func (c *Controller) GoPage(f Frame, page int) bool {
	p, count, _ := c.activePager(f)
	return p.Go(page, count)
}

// StepPage moves the visible grid by delta pages.
func (c *Controller) StepPage(f Frame, delta int) bool {
	p, count, _ := c.activePager(f)
	return p.Go(p.Page()+delta, count)
}

// LastPage returns the index of the last page of the visible grid.
func (c *Controller) LastPage(f Frame) int {
	_, count, _ := c.activePager(f)
	return count - 1
}

func (c *Controller) activePager(f Frame) (*board.Pager, int, float32) {
	if f.Folder != nil {
		return c.folderPager, f.folderPageCount(), f.FolderGrid.Size.X
	}
	return c.pager, f.mainPageCount(), f.Main.Size.X
}

// hit returns the absolute index of the cell strictly under pos.
func hit(pos f32.Point, g grid.Geometry, page int) (int, bool) {
	slot := grid.Slot(pos, g)
	if !inside(pos, grid.CellBounds(g, slot)) {
		return -1, false
	}
	return page*g.PageSize() + slot, true
}

func inside(pos f32.Point, r image.Rectangle) bool {
	return image.Pt(int(math.Floor(float64(pos.X))), int(math.Floor(float64(pos.Y)))).In(r)
}

// precise guesses whether delta came from a trackpad: wheels scroll in
// large whole steps, trackpads in small or fractional ones.
func precise(d f32.Point) bool {
	for _, v := range []float32{d.X, d.Y} {
		if v == 0 {
			continue
		}
		if v != float32(math.Trunc(float64(v))) {
			return true
		}
		if v > -wheelNotch && v < wheelNotch {
			return true
		}
	}
	return false
}
