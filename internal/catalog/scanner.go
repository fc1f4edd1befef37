// Package catalog discovers installed applications and arranges them into
// the launcher's default layout.
package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"

	"github.com/justyntemme/launchgrid/internal/debug"
	"github.com/justyntemme/launchgrid/internal/model"
)

const (
	bundleExt  = ".app"
	desktopExt = ".desktop"
)

// Options configures a Scanner.
type Options struct {
	// Dirs are walked recursively in order; when two apps share a name the
	// one found in the earlier directory wins.
	Dirs []string
	// FirstPage names lead the layout in this order.
	FirstPage []string
	// Tools names are gathered into one folder appended at the end.
	Tools       []string
	ToolsFolder string
}

// Scanner finds application bundles (*.app directories) and desktop entries
// (*.desktop files) under its directories.
type Scanner struct {
	opts Options
}

func NewScanner(opts Options) *Scanner {
	if opts.ToolsFolder == "" {
		opts.ToolsFolder = "Tools"
	}
	return &Scanner{opts: opts}
}

// Dirs returns the expanded directories the scanner walks.
func (s *Scanner) Dirs() []string {
	dirs := make([]string, 0, len(s.opts.Dirs))
	for _, d := range s.opts.Dirs {
		dirs = append(dirs, ExpandHome(d))
	}
	return dirs
}

// discovered is one app found by a walk, before ordering.
type discovered struct {
	dir  int
	name string
	path string
}

// Scan walks every directory and returns the arranged layout. Directories
// that are missing or unreadable are skipped.
func (s *Scanner) Scan() []model.Item {
	var (
		mu    sync.Mutex
		found []discovered
	)

	for i, dir := range s.Dirs() {
		if _, err := os.Stat(dir); err != nil {
			debug.Log(debug.CATALOG, "skip %q: %v", dir, err)
			continue
		}

		dirIdx := i
		conf := &fastwalk.Config{Follow: false}
		err := fastwalk.Walk(conf, dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				debug.Log(debug.CATALOG, "walk error at %q: %v", path, err)
				return nil
			}
			name := d.Name()
			if d.IsDir() && path != dir && strings.HasSuffix(name, bundleExt) {
				mu.Lock()
				found = append(found, discovered{dir: dirIdx, name: strings.TrimSuffix(name, bundleExt), path: path})
				mu.Unlock()
				// Bundles are opaque; never descend into Contents/.
				return fastwalk.SkipDir
			}
			if !d.IsDir() && strings.HasSuffix(name, desktopExt) {
				entry, err := ReadDesktopEntry(path)
				if err != nil || !entry.Launchable() {
					return nil
				}
				display := entry.Name
				if display == "" {
					display = strings.TrimSuffix(name, desktopExt)
				}
				mu.Lock()
				found = append(found, discovered{dir: dirIdx, name: display, path: path})
				mu.Unlock()
			}
			return nil
		})
		if err != nil {
			debug.Log(debug.CATALOG, "walk %q aborted: %v", dir, err)
		}
	}

	// fastwalk visits in parallel; restore a deterministic order before
	// deduplicating so "first directory wins" holds.
	sort.Slice(found, func(i, j int) bool {
		if found[i].dir != found[j].dir {
			return found[i].dir < found[j].dir
		}
		return found[i].path < found[j].path
	})

	apps := make([]model.Item, 0, len(found))
	for _, f := range found {
		apps = append(apps, model.NewApp(f.name, f.path))
	}
	debug.Log(debug.CATALOG, "scan found %d apps in %d dirs", len(apps), len(s.opts.Dirs))
	return Arrange(apps, s.opts.FirstPage, s.opts.ToolsFolder, s.opts.Tools)
}

// Arrange builds the default layout from discovered apps: duplicates by name
// are dropped (first wins), the firstPage names come first in their listed
// order, everything else follows alphabetically ignoring case, and the
// tools names are pulled out into a folder appended at the end.
func Arrange(apps []model.Item, firstPage []string, toolsFolder string, tools []string) []model.Item {
	byName := make(map[string]model.Item, len(apps))
	var unique []model.Item
	for _, app := range apps {
		if _, dup := byName[app.Name]; dup {
			continue
		}
		byName[app.Name] = app
		unique = append(unique, app)
	}

	isTool := make(map[string]bool, len(tools))
	for _, name := range tools {
		isTool[name] = true
	}

	placed := make(map[string]bool)
	out := make([]model.Item, 0, len(unique)+1)
	for _, name := range firstPage {
		if app, ok := byName[name]; ok && !isTool[name] && !placed[name] {
			out = append(out, app)
			placed[name] = true
		}
	}

	var rest []model.Item
	for _, app := range unique {
		if !placed[app.Name] && !isTool[app.Name] {
			rest = append(rest, app)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		a, b := strings.ToLower(rest[i].Name), strings.ToLower(rest[j].Name)
		if a != b {
			return a < b
		}
		return rest[i].Name < rest[j].Name
	})
	out = append(out, rest...)

	var members []model.Item
	for _, name := range tools {
		if app, ok := byName[name]; ok && !placed[name] {
			members = append(members, app)
			placed[name] = true
		}
	}
	if len(members) > 0 {
		out = append(out, model.NewFolder(toolsFolder, members...))
	}
	return out
}

// DefaultDirs returns the application directories for the running OS.
func DefaultDirs() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			"/Applications",
			"/System/Applications",
			"/System/Applications/Utilities",
			"~/Applications",
		}
	case "linux", "freebsd", "openbsd", "netbsd":
		return []string{
			"/usr/share/applications",
			"/usr/local/share/applications",
			"/var/lib/flatpak/exports/share/applications",
			"~/.local/share/applications",
		}
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
