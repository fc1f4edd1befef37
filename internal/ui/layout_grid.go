package ui

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/launchgrid/internal/board"
	"github.com/justyntemme/launchgrid/internal/grid"
	"github.com/justyntemme/launchgrid/internal/model"
)

// layoutMainGrid draws the visible page and, during a swipe, the
// neighbour sliding in. A drag shows the preview order with the dragged
// item lifted out.
func (r *Renderer) layoutMainGrid(gtx layout.Context, f Frame) {
	items := f.Items
	var hide, target string
	if sess, ok := r.ctrl.Session(); ok && !r.ctrl.FromFolder() {
		items = board.Preview(f.Items, &sess)
		hide = sess.Dragging.ID
		if sess.CreatingFolder && sess.FolderTarget != nil {
			target = sess.FolderTarget.ID
		}
	}
	r.layoutPages(gtx, items, f.Main, r.ctrl.Page(), r.ctrl.Offset(), hide, target)
}

// layoutPages draws page and its neighbours shifted left by offset pixels.
func (r *Renderer) layoutPages(gtx layout.Context, items []model.Item, g grid.Geometry, page int, offset float32, hide, target string) {
	width := g.Size.X
	for p := page - 1; p <= page+1; p++ {
		dx := float32(p-page)*width - offset
		if p < 0 || dx <= -width || dx >= width {
			continue
		}
		stack := op.Offset(image.Pt(int(dx), 0)).Push(gtx.Ops)
		for slot, it := range board.Page(items, g.PageSize(), p) {
			if it.IsEmpty() || it.ID == hide {
				continue
			}
			r.layoutCell(gtx, it, g, slot, it.ID == target)
		}
		stack.Pop()
	}
}

// layoutCell draws one item: the icon square at the top of the cell and
// the label under it. highlighted marks a pending folder target.
func (r *Renderer) layoutCell(gtx layout.Context, it model.Item, g grid.Geometry, slot int, highlighted bool) {
	cell := grid.CellBounds(g, slot)
	icon := grid.IconBounds(g, slot)
	if highlighted {
		grow := icon.Dx() / 8
		halo := icon.Inset(-grow)
		paint.FillShape(gtx.Ops, colFolderTarget, clip.UniformRRect(halo, halo.Dx()/4).Op(gtx.Ops))
	}
	r.layoutIcon(gtx, it, icon)

	top := icon.Max.Y + int(g.RowSpacing)/2
	label := image.Rect(cell.Min.X, top, cell.Max.X, top+int(g.LabelHeight))
	r.layoutLabel(gtx, it.Name, label)
}

func (r *Renderer) layoutIcon(gtx layout.Context, it model.Item, rect image.Rectangle) {
	defer op.Offset(rect.Min).Push(gtx.Ops).Pop()
	size := rect.Size()
	if it.Icon == nil {
		paint.FillShape(gtx.Ops, colPlaceholder, clip.UniformRRect(image.Rectangle{Max: size}, size.X/5).Op(gtx.Ops))
		return
	}
	gtx.Constraints = layout.Exact(size)
	widget.Image{
		Src:      r.images.get(it.ID, it.Icon),
		Fit:      widget.Contain,
		Position: layout.Center,
	}.Layout(gtx)
}

func (r *Renderer) layoutLabel(gtx layout.Context, name string, rect image.Rectangle) {
	defer op.Offset(rect.Min).Push(gtx.Ops).Pop()
	gtx.Constraints = layout.Exact(rect.Size())

	lbl := material.Label(r.Theme, unit.Sp(12), name)
	lbl.Alignment = text.Middle
	lbl.MaxLines = 1
	if colLabelShadow.A > 0 {
		shadow := lbl
		shadow.Color = colLabelShadow
		s := op.Offset(image.Pt(0, 1)).Push(gtx.Ops)
		layout.Center.Layout(gtx, shadow.Layout)
		s.Pop()
	}
	lbl.Color = colLabel
	layout.Center.Layout(gtx, lbl.Layout)
}

// layoutPageDots draws one dot per page centred on center. A single page
// has no indicator.
func (r *Renderer) layoutPageDots(gtx layout.Context, count, current int, center image.Point) {
	if count < 2 {
		return
	}
	d := gtx.Dp(8)
	gap := gtx.Dp(10)
	total := count*d + (count-1)*gap
	x := center.X - total/2
	for i := 0; i < count; i++ {
		c := colDot
		if i == current {
			c = colDotActive
		}
		dot := image.Rect(x, center.Y-d/2, x+d, center.Y+d/2)
		paint.FillShape(gtx.Ops, c, clip.Ellipse(dot).Op(gtx.Ops))
		x += d + gap
	}
}

// layoutDragGhost draws the dragged item, slightly enlarged and
// translucent, centred on the pointer.
func (r *Renderer) layoutDragGhost(gtx layout.Context, f Frame) {
	sess, ok := r.ctrl.Session()
	if !ok {
		return
	}
	g := f.Main
	if r.ctrl.FromFolder() && !r.ctrl.OutsideFolder() {
		g = f.FolderGrid
	}
	size := int(g.IconSize * 1.15)
	at := image.Pt(int(sess.Position.X)-size/2, int(sess.Position.Y)-size/2)

	defer paint.PushOpacity(gtx.Ops, 0.85).Pop()
	r.layoutIcon(gtx, sess.Dragging, image.Rectangle{Min: at, Max: at.Add(image.Pt(size, size))})
}
