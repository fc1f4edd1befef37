package ui

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/justyntemme/launchgrid/internal/board"
)

// layoutFolder draws the expanded folder over a dimmed grid: the title,
// editable on click, the member pages and their dots.
func (r *Renderer) layoutFolder(gtx layout.Context, f Frame) {
	paint.FillShape(gtx.Ops, colBackdrop, clip.Rect{Max: gtx.Constraints.Max}.Op())

	rect := f.FolderRect
	radius := gtx.Dp(18)
	paint.FillShape(gtx.Ops, colPanel, clip.UniformRRect(rect, radius).Op(gtx.Ops))

	title := image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+gtx.Dp(folderTitle))
	r.layoutFolderTitle(gtx, f.Folder.Name, title)

	members := f.Folder.Apps
	var hide string
	if sess, ok := r.ctrl.Session(); ok && r.ctrl.FromFolder() {
		members = board.Preview(members, &sess)
		hide = sess.Dragging.ID
	}

	// Neighbouring pages slide in from under the panel edges.
	panel := clip.UniformRRect(rect, radius).Push(gtx.Ops)
	r.layoutPages(gtx, members, f.FolderGrid, r.ctrl.FolderPage(), r.ctrl.FolderOffset(), hide, "")
	panel.Pop()

	center := image.Pt(rect.Min.X+rect.Dx()/2, rect.Max.Y-gtx.Dp(folderDots)/2)
	r.layoutPageDots(gtx, f.folderPageCount(), r.ctrl.FolderPage(), center)
}

func (r *Renderer) layoutFolderTitle(gtx layout.Context, name string, rect image.Rectangle) {
	defer op.Offset(rect.Min).Push(gtx.Ops).Pop()
	gtx.Constraints = layout.Exact(rect.Size())

	if r.editingName {
		inset := layout.UniformInset(unit.Dp(10))
		inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			ed := material.Editor(r.Theme, &r.nameEditor, "Folder name")
			ed.Color = colLabel
			ed.HintColor = colDot
			ed.TextSize = unit.Sp(20)
			return layout.Center.Layout(gtx, ed.Layout)
		})
		return
	}

	layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return r.titleClick.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			lbl := material.Label(r.Theme, unit.Sp(20), name)
			lbl.Color = colLabel
			lbl.MaxLines = 1
			return lbl.Layout(gtx)
		})
	})
}
