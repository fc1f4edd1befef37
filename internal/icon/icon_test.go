package icon

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

var red = color.RGBA{R: 0xFF, A: 0xFF}

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

// isRed tolerates rounding in bilinear scaling.
func isRed(c color.RGBA) bool {
	return c.R > 0xF0 && c.G < 0x10 && c.B < 0x10 && c.A > 0xF0
}

func centre(img image.Image) color.RGBA {
	b := img.Bounds()
	r, g, bl, a := img.At(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2).RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: uint8(a >> 8)}
}

func TestResolveSources(t *testing.T) {
	dir := t.TempDir()
	theme := filepath.Join(dir, "icons")

	direct := filepath.Join(dir, "direct.png")
	writePNG(t, direct, 300, 150, red)

	bundle := filepath.Join(dir, "Editor.app")
	writePNG(t, filepath.Join(bundle, "Contents", "Resources", "AppIcon.png"), 64, 64, red)

	absIcon := filepath.Join(dir, "abs.png")
	writePNG(t, absIcon, 32, 32, red)
	absDesktop := filepath.Join(dir, "abs.desktop")
	os.WriteFile(absDesktop, []byte("[Desktop Entry]\nType=Application\nName=Abs\nIcon="+absIcon+"\n"), 0o644)

	writePNG(t, filepath.Join(theme, "hicolor", "48x48", "apps", "themed.png"), 48, 48, red)
	themedDesktop := filepath.Join(dir, "themed.desktop")
	os.WriteFile(themedDesktop, []byte("[Desktop Entry]\nType=Application\nName=Themed\nIcon=themed\n"), 0o644)

	p := NewProvider(Options{Size: 64, ThemeDirs: []string{theme}})
	for _, path := range []string{direct, bundle, absDesktop, themedDesktop} {
		img := p.Resolve(path)
		if img == nil {
			t.Fatalf("%s: nil icon", path)
		}
		if got := img.Bounds().Size(); got != image.Pt(64, 64) {
			t.Errorf("%s: size %v, want 64x64", path, got)
		}
		if c := centre(img); !isRed(c) {
			t.Errorf("%s: centre %v, want red (placeholder used?)", path, c)
		}
	}
}

func TestResolvePlaceholder(t *testing.T) {
	p := NewProvider(Options{Size: 32, ThemeDirs: []string{}})
	a := p.Resolve("/nowhere/Missing.app")
	if a == nil {
		t.Fatal("Resolve returned nil")
	}
	want := Placeholder("Missing", 32)
	if centre(a) != centre(want) {
		t.Errorf("placeholder not derived from name: %v vs %v", centre(a), centre(want))
	}
}

func TestResolveUndecodable(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	os.WriteFile(bad, []byte("not a png"), 0o644)

	p := NewProvider(Options{Size: 16})
	if img := p.Resolve(bad); img == nil || img.Bounds().Dx() != 16 {
		t.Errorf("undecodable icon should fall back to a 16px placeholder, got %v", img)
	}
}

func TestCacheHitsAndEviction(t *testing.T) {
	p := NewProvider(Options{Size: 8, MaxEntries: 2, ThemeDirs: []string{}})

	a := p.Resolve("/x/A.app")
	if p.Resolve("/x/A.app") != a {
		t.Error("second Resolve should hit the cache")
	}
	p.Resolve("/x/B.app")
	p.Resolve("/x/A.app") // A is now most recent
	p.Resolve("/x/C.app") // evicts B

	if p.Len() != 2 {
		t.Fatalf("Len = %d, want 2", p.Len())
	}
	p.mu.Lock()
	_, hasA := p.cache["/x/A.app"]
	_, hasB := p.cache["/x/B.app"]
	p.mu.Unlock()
	if !hasA || hasB {
		t.Errorf("eviction order wrong: hasA=%v hasB=%v", hasA, hasB)
	}

	p.Clear()
	if p.Len() != 0 {
		t.Errorf("Len after Clear = %d", p.Len())
	}
}

func TestUnboundedCache(t *testing.T) {
	p := NewProvider(Options{Size: 4, ThemeDirs: []string{}})
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		p.Resolve("/x/" + name + ".app")
	}
	if p.Len() != 5 {
		t.Errorf("Len = %d, want 5", p.Len())
	}
}

func TestCompose(t *testing.T) {
	solid := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			solid.SetRGBA(x, y, red)
		}
	}

	const size = 120
	icons := make([]image.Image, 12)
	icons[0] = solid
	icons[8] = solid
	icons[11] = solid // beyond nine, ignored
	img := Compose(icons, size)

	if img.Bounds().Size() != image.Pt(size, size) {
		t.Fatalf("size = %v", img.Bounds().Size())
	}

	pad := size / 12
	cell := (size - pad*4) / 3
	at := func(col, row int) color.RGBA {
		x := pad + col*(cell+pad) + cell/2
		y := pad + row*(cell+pad) + cell/2
		return img.(*image.RGBA).RGBAAt(x, y)
	}
	if !isRed(at(0, 0)) {
		t.Errorf("cell 0 = %v, want red", at(0, 0))
	}
	if !isRed(at(2, 2)) {
		t.Errorf("cell 8 = %v, want red", at(2, 2))
	}
	if isRed(at(1, 1)) {
		t.Error("empty cell should show the background")
	}
}
