package board

import (
	"testing"

	"gioui.org/f32"
)

func TestPagerGoClamps(t *testing.T) {
	p := NewPager(0)
	if !p.Go(5, 3) || p.Page() != 2 {
		t.Errorf("Go(5) page = %d, want 2", p.Page())
	}
	if p.Next(3) {
		t.Error("Next on last page should not move")
	}
	if !p.Prev(3) || p.Page() != 1 {
		t.Errorf("Prev page = %d", p.Page())
	}
	p.Clamp(1)
	if p.Page() != 0 {
		t.Errorf("Clamp page = %d", p.Page())
	}
}

func TestPagerTrackpadSwipe(t *testing.T) {
	const width = 600 // threshold 90
	testCases := []struct {
		name   string
		deltas []float32
		want   int
	}{
		{"past threshold forward", []float32{50, 60}, 2},
		{"under threshold", []float32{40, 40}, 1},
		{"past threshold backward", []float32{-50, -50}, 0},
		{"no movement", []float32{0}, 1},
	}
	for _, tc := range testCases {
		p := NewPager(0)
		p.Go(1, 3)
		p.Scroll(ScrollEvent{Phase: PhaseBegan, Precise: true}, width, 3)
		for _, d := range tc.deltas {
			if p.Scroll(ScrollEvent{Phase: PhaseChanged, Delta: f32.Pt(d, 0), Precise: true}, width, 3) {
				t.Fatalf("%s: page flipped before the gesture ended", tc.name)
			}
		}
		p.Scroll(ScrollEvent{Phase: PhaseEnded, Precise: true}, width, 3)
		if p.Page() != tc.want {
			t.Errorf("%s: page = %d, want %d", tc.name, p.Page(), tc.want)
		}
		if p.Swiping() || p.Offset() != 0 {
			t.Errorf("%s: gesture state not reset", tc.name)
		}
	}
}

func TestPagerSwipeAccumulatesOffset(t *testing.T) {
	p := NewPager(0)
	p.Scroll(ScrollEvent{Phase: PhaseChanged, Delta: f32.Pt(10, 2), Precise: true}, 600, 3)
	p.Scroll(ScrollEvent{Phase: PhaseChanged, Delta: f32.Pt(15, 0), Precise: true}, 600, 3)
	if !p.Swiping() || p.Offset() != 25 {
		t.Errorf("offset = %v swiping = %v", p.Offset(), p.Swiping())
	}
	p.Scroll(ScrollEvent{Phase: PhaseCancelled, Precise: true}, 600, 3)
	if p.Swiping() || p.Offset() != 0 || p.Page() != 0 {
		t.Error("cancel should discard the gesture")
	}
}

func TestPagerWheel(t *testing.T) {
	p := NewPager(0)
	if !p.Scroll(ScrollEvent{Delta: f32.Pt(0, 3)}, 600, 2) || p.Page() != 1 {
		t.Errorf("wheel down should flip forward, page = %d", p.Page())
	}
	if p.Scroll(ScrollEvent{Delta: f32.Pt(0, 3)}, 600, 2) {
		t.Error("wheel past last page should not flip")
	}
	if !p.Scroll(ScrollEvent{Delta: f32.Pt(-1, 0.5)}, 600, 2) || p.Page() != 0 {
		t.Errorf("wheel left should flip back, page = %d", p.Page())
	}
	if p.Scroll(ScrollEvent{}, 600, 2) {
		t.Error("zero delta should not flip")
	}
}
