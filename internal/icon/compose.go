package icon

import (
	"hash/fnv"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// folderGrid is the number of member icons per row of a folder icon.
const folderGrid = 3

var folderBackground = color.NRGBA{R: 0xE8, G: 0xE8, B: 0xEE, A: 0xC0}

// Compose draws up to nine member icons as a 3x3 grid on a translucent
// tile. Nil entries leave their cell blank.
func (p *Provider) Compose(icons []image.Image) image.Image {
	return Compose(icons, p.size)
}

// Compose is Provider.Compose for an explicit tile size.
func Compose(icons []image.Image, size int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: folderBackground}, image.Point{}, draw.Src)

	pad := size / 12
	cell := (size - pad*(folderGrid+1)) / folderGrid
	if cell <= 0 {
		return dst
	}
	for i, icon := range icons {
		if i >= folderGrid*folderGrid {
			break
		}
		if icon == nil {
			continue
		}
		col, row := i%folderGrid, i/folderGrid
		x := pad + col*(cell+pad)
		y := pad + row*(cell+pad)
		draw.BiLinear.Scale(dst, image.Rect(x, y, x+cell, y+cell), icon, icon.Bounds(), draw.Over, nil)
	}
	return dst
}

// Placeholder returns a solid tile whose color is derived from name, so the
// same app always gets the same placeholder.
func Placeholder(name string, size int) image.Image {
	h := fnv.New32a()
	h.Write([]byte(name))
	sum := h.Sum32()
	c := color.NRGBA{
		R: 0x40 + uint8(sum)%0x80,
		G: 0x40 + uint8(sum>>8)%0x80,
		B: 0x40 + uint8(sum>>16)%0x80,
		A: 0xFF,
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	inset := size / 10
	draw.Draw(dst, image.Rect(inset, inset, size-inset, size-inset), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return dst
}
