package ui

import (
	"image"
	"strings"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/launchgrid/internal/board"
	"github.com/justyntemme/launchgrid/internal/config"
	"github.com/justyntemme/launchgrid/internal/debug"
	"github.com/justyntemme/launchgrid/internal/grid"
)

const (
	searchBarHeight = unit.Dp(56)
	dotsHeight      = unit.Dp(40)
	folderTitle     = unit.Dp(52)
	folderPadding   = unit.Dp(16)
	folderDots      = unit.Dp(28)
)

// Metrics sizes the grids. Lengths are in dp and converted per frame.
type Metrics struct {
	Columns, Rows             int
	FolderColumns, FolderRows int
	IconSize                  unit.Dp
	LabelHeight               unit.Dp
	ColumnSpacing             unit.Dp
	RowSpacing                unit.Dp
	HPadding                  unit.Dp
	VPadding                  unit.Dp
	FolderWidth               unit.Dp

	DragThreshold  unit.Dp
	EdgeMargin     unit.Dp
	SwipeThreshold float32
	gesture        config.GestureConfig
}

// MetricsFromConfig reads the grid and gesture settings.
func MetricsFromConfig(cfg config.Config) Metrics {
	return Metrics{
		Columns:        cfg.Grid.Columns,
		Rows:           cfg.Grid.Rows,
		FolderColumns:  cfg.Folder.Columns,
		FolderRows:     cfg.Folder.Rows,
		IconSize:       unit.Dp(cfg.Grid.IconSize),
		LabelHeight:    unit.Dp(cfg.Grid.LabelHeight),
		ColumnSpacing:  unit.Dp(cfg.Grid.ColumnSpacing),
		RowSpacing:     unit.Dp(cfg.Grid.RowSpacing),
		HPadding:       unit.Dp(cfg.Grid.HPadding),
		VPadding:       unit.Dp(cfg.Grid.VPadding),
		FolderWidth:    unit.Dp(cfg.Folder.Width),
		DragThreshold:  unit.Dp(cfg.Gesture.DragThreshold),
		EdgeMargin:     unit.Dp(cfg.Gesture.EdgeMargin),
		SwipeThreshold: cfg.Gesture.SwipeThreshold,
		gesture:        cfg.Gesture,
	}
}

type Renderer struct {
	Theme *material.Theme
	Debug bool

	metrics Metrics
	ctrl    *Controller
	hotkeys *config.HotkeyMatcher
	images  *imageCache

	rootTag   struct{}
	focusInit bool

	nameEditor  widget.Editor
	editingName bool
	titleClick  widget.Clickable

	searchEditor widget.Editor
}

func NewRenderer(cfg config.Config) *Renderer {
	r := &Renderer{
		Theme:   material.NewTheme(),
		metrics: MetricsFromConfig(cfg),
		hotkeys: config.NewHotkeyMatcher(cfg.Hotkeys),
		images:  newImageCache(),
	}
	if cfg.Window.Theme == "light" {
		useLightColors()
	}
	r.Theme.Palette.Fg = colLabel

	r.nameEditor.SingleLine = true
	r.nameEditor.Submit = true
	r.nameEditor.Alignment = text.Middle

	r.searchEditor.SingleLine = true
	r.searchEditor.Submit = true
	return r
}

// Controller exposes the gesture state, created on the first frame once
// the display density is known.
func (r *Renderer) Controller() *Controller { return r.ctrl }

// Reset drops transient UI state: a drag in progress, a rename and the
// search query. The launcher calls it when it hides.
func (r *Renderer) Reset() {
	if r.ctrl != nil {
		r.ctrl.Cancel()
	}
	r.editingName = false
	r.searchEditor.SetText("")
}

// Query is the trimmed search text.
func (r *Renderer) Query() string {
	return strings.TrimSpace(r.searchEditor.Text())
}

// Layout draws one frame and returns what the frame asks the application
// to do.
func (r *Renderer) Layout(gtx layout.Context, state *State) UIEvent {
	if r.ctrl == nil {
		m := r.metrics
		r.ctrl = NewController(ControllerOptions{
			DragThreshold:  float32(gtx.Dp(m.DragThreshold)),
			SwipeThreshold: m.SwipeThreshold,
			EdgeMargin:     float32(gtx.Dp(m.EdgeMargin)),
			EdgeDelay:      m.gesture.EdgeDelay(),
			ScrollQuiet:    m.gesture.ScrollQuiet(),
		})
	}
	if state.Folder == nil {
		r.editingName = false
	}

	f := r.frame(gtx, state)
	r.ctrl.Sync(f)

	eventOut := r.processInput(gtx, state, f)
	if r.ctrl.Flush(f) {
		debug.Log(debug.UI, "swipe settled on page %d", r.ctrl.Page())
	}
	r.ctrl.Hold(f)

	paint.Fill(gtx.Ops, colBackground)

	// The root area sits below every widget so presses on the search bar
	// and the folder title reach them first.
	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, &r.rootTag)
	area.Pop()
	if !r.focusInit {
		gtx.Execute(key.FocusCmd{Tag: &r.rootTag})
		r.focusInit = true
	}

	r.layoutSearchBar(gtx)
	r.layoutMainGrid(gtx, f)
	count := f.mainPageCount()
	if r.ctrl.Page() >= count {
		count = r.ctrl.Page() + 1
	}
	dotsY := gtx.Constraints.Max.Y - gtx.Dp(dotsHeight)/2
	r.layoutPageDots(gtx, count, r.ctrl.Page(), image.Pt(gtx.Constraints.Max.X/2, dotsY))

	if f.Folder != nil && !r.ctrl.OutsideFolder() {
		r.layoutFolder(gtx, f)
	}
	r.layoutDragGhost(gtx, f)
	if state.ConfigError != nil {
		r.layoutErrorBanner(gtx, state.ConfigError)
	}

	r.scheduleRedraw(gtx)
	r.images.endFrame()
	return eventOut
}

// frame computes this frame's geometry in pixels. An active search shows
// the flattened results read-only and hides the folder overlay.
func (r *Renderer) frame(gtx layout.Context, state *State) Frame {
	m := r.metrics
	size := gtx.Constraints.Max
	top := gtx.Dp(searchBarHeight)
	bottom := gtx.Dp(dotsHeight)

	main := grid.Geometry{
		Origin:        f32.Pt(0, float32(top)),
		Size:          f32.Pt(float32(size.X), float32(size.Y-top-bottom)),
		Columns:       m.Columns,
		Rows:          m.Rows,
		ColumnSpacing: float32(gtx.Dp(m.ColumnSpacing)),
		RowSpacing:    float32(gtx.Dp(m.RowSpacing)),
		IconSize:      float32(gtx.Dp(m.IconSize)),
		LabelHeight:   float32(gtx.Dp(m.LabelHeight)),
		HPadding:      float32(gtx.Dp(m.HPadding)),
		VPadding:      float32(gtx.Dp(m.VPadding)),
	}
	f := Frame{Items: state.Items, Main: main, Now: gtx.Now}
	debug.Log(debug.UI_LAYOUT, "frame %dx%d cell %.0fx%.0f", size.X, size.Y, main.CellWidth(), main.CellHeight())

	if q := r.Query(); q != "" {
		f.Items = board.Search(state.Items, q)
		f.ReadOnly = true
		return f
	}
	if state.Folder != nil {
		f.Folder = state.Folder
		f.FolderRect, f.FolderGrid = r.folderLayout(gtx, main)
	}
	return f
}

// folderLayout centres the folder panel in the window and returns it with
// the geometry of its member grid.
func (r *Renderer) folderLayout(gtx layout.Context, main grid.Geometry) (image.Rectangle, grid.Geometry) {
	m := r.metrics
	size := gtx.Constraints.Max
	pad := gtx.Dp(folderPadding)

	width := min(gtx.Dp(m.FolderWidth), size.X-2*pad)
	cellH := int(main.IconSize + main.RowSpacing + main.LabelHeight)
	height := gtx.Dp(folderTitle) + m.FolderRows*cellH + gtx.Dp(folderDots) + pad

	minPt := image.Pt((size.X-width)/2, max((size.Y-height)/2, 0))
	rect := image.Rectangle{Min: minPt, Max: minPt.Add(image.Pt(width, height))}

	g := main
	g.Columns = m.FolderColumns
	g.Rows = m.FolderRows
	g.Origin = f32.Pt(float32(rect.Min.X), float32(rect.Min.Y+gtx.Dp(folderTitle)))
	g.Size = f32.Pt(float32(width), float32(m.FolderRows*cellH))
	g.HPadding = float32(pad)
	g.VPadding = 0
	return rect, g
}

func (r *Renderer) layoutSearchBar(gtx layout.Context) {
	h := gtx.Dp(searchBarHeight)
	w := min(gtx.Dp(280), gtx.Constraints.Max.X)
	x := (gtx.Constraints.Max.X - w) / 2
	rect := image.Rect(x, gtx.Dp(12), x+w, h-gtx.Dp(8))
	paint.FillShape(gtx.Ops, colSearchBg, clip.UniformRRect(rect, rect.Dy()/2).Op(gtx.Ops))

	inset := gtx.Dp(14)
	defer op.Offset(rect.Min.Add(image.Pt(inset, 0))).Push(gtx.Ops).Pop()
	gtx.Constraints = layout.Exact(image.Pt(rect.Dx()-2*inset, rect.Dy()))
	ed := material.Editor(r.Theme, &r.searchEditor, "Search")
	ed.Color = colLabel
	ed.HintColor = colDot
	ed.TextSize = unit.Sp(14)
	layout.W.Layout(gtx, ed.Layout)
}

func (r *Renderer) layoutErrorBanner(gtx layout.Context, err error) {
	h := gtx.Dp(28)
	rect := image.Rect(0, gtx.Constraints.Max.Y-h, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)
	paint.FillShape(gtx.Ops, colErrorBannerBg, clip.Rect(rect).Op())

	defer op.Offset(rect.Min).Push(gtx.Ops).Pop()
	gtx.Constraints = layout.Exact(rect.Size())
	lbl := material.Body2(r.Theme, "config.json: "+err.Error()+" (using defaults)")
	lbl.Color = colErrorBannerText
	lbl.MaxLines = 1
	layout.Center.Layout(gtx, lbl.Layout)
}

// scheduleRedraw asks for a frame when a timed gesture is due: an edge
// dwell page flip or the end of a trackpad swipe.
func (r *Renderer) scheduleRedraw(gtx layout.Context) {
	if at := r.ctrl.NextEdgeFlip(); !at.IsZero() {
		gtx.Execute(op.InvalidateCmd{At: at})
	}
	if at := r.ctrl.NextFlush(); !at.IsZero() {
		gtx.Execute(op.InvalidateCmd{At: at})
	}
}
