// Package grid converts between pointer positions and grid slots.
package grid

import (
	"image"

	"gioui.org/f32"
)

// Main grid and folder grid dimensions.
const (
	MainColumns   = 7
	MainRows      = 5
	FolderColumns = 4
	FolderRows    = 3
)

// Geometry is a snapshot of one page's layout as rendered. The renderer
// supplies it per page; nothing here assumes a screen resolution.
type Geometry struct {
	Origin        f32.Point // page origin in the pointer's coordinate space
	Size          f32.Point // page width and height
	Columns       int
	Rows          int
	ColumnSpacing float32
	RowSpacing    float32
	IconSize      float32
	LabelHeight   float32
	HPadding      float32
	VPadding      float32
}

// PageSize returns the number of slots on one page.
func (g Geometry) PageSize() int {
	return g.Columns * g.Rows
}

// CellWidth is the width of one column. Columns share the available width
// equally, like flexed children, rather than having a fixed pixel width.
func (g Geometry) CellWidth() float32 {
	if g.Columns <= 0 {
		return 0
	}
	w := (g.Size.X - 2*g.HPadding) / float32(g.Columns)
	if w < 0 {
		return 0
	}
	return w
}

// CellHeight is the fixed height of one row: icon, spacing and label.
func (g Geometry) CellHeight() float32 {
	return g.IconSize + g.RowSpacing + g.LabelHeight
}

// ResolveIndex maps a pointer position to the absolute collection index of
// the slot under it on the given page. Positions outside the grid clamp to
// the nearest edge cell.
func ResolveIndex(pos f32.Point, g Geometry, page int) int {
	if g.Columns <= 0 || g.Rows <= 0 {
		return 0
	}
	if page < 0 {
		page = 0
	}
	col, row := cellAt(pos, g)
	return page*g.PageSize() + row*g.Columns + col
}

// cellAt returns the clamped column and row under pos.
func cellAt(pos f32.Point, g Geometry) (col, row int) {
	local := pos.Sub(g.Origin)
	x := local.X - g.HPadding
	y := local.Y - g.VPadding

	col = clamp(floorDiv(x, g.CellWidth()), 0, g.Columns-1)
	row = clamp(floorDiv(y, g.CellHeight()), 0, g.Rows-1)
	return col, row
}

// Slot returns the page-local slot under pos.
func Slot(pos f32.Point, g Geometry) int {
	if g.Columns <= 0 || g.Rows <= 0 {
		return 0
	}
	col, row := cellAt(pos, g)
	return row*g.Columns + col
}

// CellBounds returns the rectangle of a page-local slot in the pointer's
// coordinate space. It is the forward layout that ResolveIndex inverts.
func CellBounds(g Geometry, slot int) image.Rectangle {
	if g.Columns <= 0 {
		return image.Rectangle{}
	}
	col := slot % g.Columns
	row := slot / g.Columns
	minX := g.Origin.X + g.HPadding + float32(col)*g.CellWidth()
	minY := g.Origin.Y + g.VPadding + float32(row)*g.CellHeight()
	return image.Rect(
		int(minX), int(minY),
		int(minX+g.CellWidth()), int(minY+g.CellHeight()),
	)
}

// IconBounds returns the icon square inside a cell, horizontally centered
// and anchored to the top of the cell.
func IconBounds(g Geometry, slot int) image.Rectangle {
	cell := CellBounds(g, slot)
	size := int(g.IconSize)
	x := cell.Min.X + (cell.Dx()-size)/2
	return image.Rect(x, cell.Min.Y, x+size, cell.Min.Y+size)
}

// OverIcon reports whether pos is inside the icon square of the slot it
// resolves to. Hovering the icon proper, rather than the label or spacing,
// is what proposes a folder.
func OverIcon(pos f32.Point, g Geometry) (slot int, over bool) {
	slot = Slot(pos, g)
	icon := IconBounds(g, slot)
	p := image.Pt(int(pos.X), int(pos.Y))
	return slot, p.In(icon)
}

// EdgeZone reports whether pos is within margin of the page's left (-1) or
// right (+1) edge, and 0 otherwise. Used to flip pages while dragging.
func EdgeZone(pos f32.Point, g Geometry, margin float32) int {
	x := pos.X - g.Origin.X
	switch {
	case x < margin:
		return -1
	case x > g.Size.X-margin:
		return 1
	}
	return 0
}

func floorDiv(v, size float32) int {
	if size <= 0 {
		return 0
	}
	q := v / size
	if q < 0 {
		// int() truncates toward zero; anything left of the grid is column -1 or lower.
		return -1
	}
	return int(q)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
