package board

import (
	"gioui.org/f32"
)

// DefaultSwipeThreshold is the fraction of the page width a trackpad swipe
// must travel to flip the page.
const DefaultSwipeThreshold = 0.15

// Phase is the stage of a scroll gesture.
type Phase int

const (
	PhaseBegan Phase = iota
	PhaseChanged
	PhaseEnded
	PhaseCancelled
)

// ScrollEvent is one scroll input. Precise events come from trackpads and
// arrive as a phased gesture; imprecise ones come from mouse wheels.
type ScrollEvent struct {
	Phase   Phase
	Delta   f32.Point
	Precise bool
}

// Pager tracks the visible page of a paginated grid and turns scroll input
// into page flips.
type Pager struct {
	page      int
	threshold float32

	swiping bool
	offset  float32
}

// NewPager returns a pager on page 0. threshold <= 0 uses DefaultSwipeThreshold.
func NewPager(threshold float32) *Pager {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	return &Pager{threshold: threshold}
}

// Page returns the current page.
func (p *Pager) Page() int { return p.page }

// Offset is the horizontal distance accumulated by the swipe in progress,
// for drawing the page following the fingers.
func (p *Pager) Offset() float32 { return p.offset }

// Swiping reports whether a trackpad gesture is being accumulated.
func (p *Pager) Swiping() bool { return p.swiping }

// Go moves to page, clamped to [0, count-1], and reports whether it moved.
func (p *Pager) Go(page, count int) bool {
	page = max(0, min(page, count-1))
	if page == p.page {
		return false
	}
	p.page = page
	return true
}

func (p *Pager) Next(count int) bool { return p.Go(p.page+1, count) }
func (p *Pager) Prev(count int) bool { return p.Go(p.page-1, count) }

// Clamp keeps the current page valid after the page count changed.
func (p *Pager) Clamp(count int) {
	p.page = max(0, min(p.page, count-1))
}

// Reset returns to page 0 and drops any gesture in progress.
func (p *Pager) Reset() {
	p.page = 0
	p.swiping = false
	p.offset = 0
}

// Scroll feeds one scroll event and reports whether the page changed.
//
// Wheel events flip immediately in the direction of the dominant axis.
// Trackpad events accumulate until the gesture ends and flip only when the
// total exceeds the threshold fraction of pageWidth.
func (p *Pager) Scroll(ev ScrollEvent, pageWidth float32, count int) bool {
	if !ev.Precise {
		switch d := dominant(ev.Delta); {
		case d > 0:
			return p.Next(count)
		case d < 0:
			return p.Prev(count)
		}
		return false
	}

	switch ev.Phase {
	case PhaseBegan:
		p.swiping = true
		p.offset = dominant(ev.Delta)
	case PhaseChanged:
		if !p.swiping {
			p.swiping = true
			p.offset = 0
		}
		p.offset += dominant(ev.Delta)
	case PhaseEnded:
		total := p.offset
		if p.swiping {
			total += dominant(ev.Delta)
		}
		p.swiping = false
		p.offset = 0
		limit := p.threshold * pageWidth
		switch {
		case total > limit:
			return p.Next(count)
		case total < -limit:
			return p.Prev(count)
		}
	case PhaseCancelled:
		p.swiping = false
		p.offset = 0
	}
	return false
}

// dominant returns the component of d along its larger axis.
func dominant(d f32.Point) float32 {
	if abs(d.X) >= abs(d.Y) {
		return d.X
	}
	return d.Y
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
