package ui

import (
	"image"

	"gioui.org/op/paint"

	"github.com/justyntemme/launchgrid/internal/debug"
)

// staleFrames is how many frames an unused entry survives, so flipping
// back and forth between pages does not re-upload textures.
const staleFrames = 300

// imageCache keeps one paint.ImageOp per item so icon textures are uploaded
// once, not every frame.
type imageCache struct {
	entries map[string]*imageEntry
	frame   uint64
}

type imageEntry struct {
	src  image.Image
	op   paint.ImageOp
	seen uint64
}

func newImageCache() *imageCache {
	return &imageCache{entries: make(map[string]*imageEntry)}
}

// get returns the ImageOp for the item id showing img. A changed img, such
// as a recomposed folder icon, replaces the entry.
func (c *imageCache) get(id string, img image.Image) paint.ImageOp {
	e, ok := c.entries[id]
	if !ok || e.src != img {
		e = &imageEntry{src: img, op: paint.NewImageOp(img)}
		c.entries[id] = e
	}
	e.seen = c.frame
	return e.op
}

// endFrame drops entries that have not been drawn for staleFrames frames.
func (c *imageCache) endFrame() {
	for id, e := range c.entries {
		if c.frame-e.seen > staleFrames {
			delete(c.entries, id)
			debug.Log(debug.UI, "image cache: dropped %s", id)
		}
	}
	c.frame++
}
