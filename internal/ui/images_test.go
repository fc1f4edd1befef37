package ui

import (
	"image"
	"testing"
)

func TestImageCacheReuseAndExpiry(t *testing.T) {
	c := newImageCache()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	c.get("a", img)
	first := c.entries["a"]
	c.endFrame()
	c.get("a", img)
	if c.entries["a"] != first {
		t.Fatal("same source should reuse the entry")
	}

	other := image.NewRGBA(image.Rect(0, 0, 4, 4))
	c.get("a", other)
	if c.entries["a"] == first {
		t.Fatal("changed source should replace the entry")
	}

	for i := 0; i < staleFrames+2; i++ {
		c.endFrame()
	}
	if len(c.entries) != 0 {
		t.Fatalf("entries = %d, want 0 after expiry", len(c.entries))
	}
}

func TestUIActionString(t *testing.T) {
	tests := []struct {
		action UIAction
		want   string
	}{
		{ActionNone, "none"},
		{ActionDrop, "drop"},
		{ActionFolderRemove, "folder-remove"},
		{UIAction(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.action, got, tt.want)
		}
	}
}
