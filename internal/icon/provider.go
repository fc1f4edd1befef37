// Package icon loads application icons and composes folder icons.
package icon

import (
	"container/list"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/justyntemme/launchgrid/internal/catalog"
	"github.com/justyntemme/launchgrid/internal/debug"
)

// DefaultSize is the edge length, in pixels, icons are scaled to.
const DefaultSize = 128

// Options configures a Provider.
type Options struct {
	// Size is the edge length icons are scaled down to.
	Size int
	// MaxEntries bounds the cache. Zero keeps every resolved icon.
	MaxEntries int
	// ThemeDirs are searched for named icons referenced by desktop entries.
	ThemeDirs []string
}

// Provider resolves icons by application path and caches the scaled
// result. It is safe for concurrent use.
type Provider struct {
	mu         sync.Mutex
	cache      map[string]*entry
	lru        *list.List // front = most recently used
	maxEntries int
	size       int
	themeDirs  []string
}

type entry struct {
	path    string
	img     image.Image
	element *list.Element
}

func NewProvider(opts Options) *Provider {
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if opts.ThemeDirs == nil {
		opts.ThemeDirs = DefaultThemeDirs()
	}
	return &Provider{
		cache:      make(map[string]*entry),
		lru:        list.New(),
		maxEntries: opts.MaxEntries,
		size:       opts.Size,
		themeDirs:  opts.ThemeDirs,
	}
}

// Size returns the edge length of resolved icons.
func (p *Provider) Size() int {
	return p.size
}

// Resolve returns the icon for the application at path. It never returns
// nil: when no icon file can be found or decoded a generated placeholder
// is returned and cached in its place.
func (p *Provider) Resolve(path string) image.Image {
	p.mu.Lock()
	if e, ok := p.cache[path]; ok {
		p.lru.MoveToFront(e.element)
		p.mu.Unlock()
		return e.img
	}
	p.mu.Unlock()

	img := p.load(path)

	p.mu.Lock()
	defer p.mu.Unlock()
	// Another caller may have loaded it meanwhile; keep the first.
	if e, ok := p.cache[path]; ok {
		p.lru.MoveToFront(e.element)
		return e.img
	}
	p.put(path, img)
	return img
}

// Len returns the number of cached icons.
func (p *Provider) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cache)
}

// Clear drops every cached icon, e.g. after apps were reinstalled.
func (p *Provider) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = make(map[string]*entry)
	p.lru = list.New()
	debug.Log(debug.ICON, "cache cleared")
}

// put must be called with p.mu held.
func (p *Provider) put(path string, img image.Image) {
	for p.maxEntries > 0 && p.lru.Len() >= p.maxEntries {
		oldest := p.lru.Back()
		if oldest == nil {
			break
		}
		old := oldest.Value.(*entry)
		delete(p.cache, old.path)
		p.lru.Remove(oldest)
		debug.Log(debug.ICON, "evicted %s", old.path)
	}
	e := &entry{path: path, img: img}
	e.element = p.lru.PushFront(e)
	p.cache[path] = e
}

func (p *Provider) load(path string) image.Image {
	file := p.locate(path)
	if file == "" {
		debug.Log(debug.ICON, "no icon for %s, using placeholder", path)
		return Placeholder(appName(path), p.size)
	}

	img, err := decode(file)
	if err != nil {
		debug.Log(debug.ICON, "decode %s: %v", file, err)
		return Placeholder(appName(path), p.size)
	}
	debug.Log(debug.ICON, "loaded %s (%dx%d)", file, img.Bounds().Dx(), img.Bounds().Dy())
	return scale(img, p.size)
}

// locate finds the image file to use for the application at path, or ""
// if there is none.
func (p *Provider) locate(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case isImage(ext):
		return path
	case ext == ".desktop":
		entry, err := catalog.ReadDesktopEntry(path)
		if err != nil || entry.Icon == "" {
			return ""
		}
		return p.themeIcon(entry.Icon)
	case ext == ".app":
		return bundleIcon(path)
	}
	return ""
}

// themeIcon resolves the Icon= value of a desktop entry. Absolute paths are
// used as-is; names are looked up under the theme directories, largest
// size first, then in the flat pixmaps style layout.
func (p *Provider) themeIcon(name string) string {
	if filepath.IsAbs(name) {
		if fileExists(name) {
			return name
		}
		return ""
	}
	for _, dir := range p.themeDirs {
		for _, sz := range []string{"256x256", "128x128", "96x96", "64x64", "48x48", "32x32"} {
			candidate := filepath.Join(dir, "hicolor", sz, "apps", name+".png")
			if fileExists(candidate) {
				return candidate
			}
		}
		candidate := filepath.Join(dir, name+".png")
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

// bundleIcon picks a decodable image from an application bundle's
// resources, preferring one named after the bundle or AppIcon.
func bundleIcon(bundle string) string {
	resources := filepath.Join(bundle, "Contents", "Resources")
	entries, err := os.ReadDir(resources)
	if err != nil {
		return ""
	}
	base := appName(bundle)
	var fallback string
	for _, e := range entries {
		if e.IsDir() || !isImage(strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if strings.EqualFold(stem, base) || strings.EqualFold(stem, "AppIcon") {
			return filepath.Join(resources, e.Name())
		}
		if fallback == "" {
			fallback = filepath.Join(resources, e.Name())
		}
	}
	return fallback
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// scale fits src into a size x size square, preserving aspect ratio.
// Smaller images are scaled up so every icon has the same footprint.
func scale(src image.Image, size int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return Placeholder("", size)
	}
	if w == size && h == size {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	var fit image.Rectangle
	if w >= h {
		nh := h * size / w
		off := (size - nh) / 2
		fit = image.Rect(0, off, size, off+nh)
	} else {
		nw := w * size / h
		off := (size - nw) / 2
		fit = image.Rect(off, 0, off+nw, size)
	}
	draw.BiLinear.Scale(dst, fit, src, b, draw.Over, nil)
	return dst
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

func isImage(ext string) bool {
	return imageExts[ext]
}

func appName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DefaultThemeDirs returns the icon directories searched for named icons.
func DefaultThemeDirs() []string {
	return []string{
		catalog.ExpandHome("~/.local/share/icons"),
		"/usr/local/share/icons",
		"/usr/share/icons",
		"/usr/share/pixmaps",
	}
}
