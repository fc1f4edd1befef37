// Package debug is category-filtered trace logging for development builds.
// Without -tags debug every call compiles to nothing.
package debug

import "strings"

// Category tags a trace line with the subsystem that wrote it.
type Category string

const (
	APP       Category = "APP"     // startup, window events, dispatched actions
	CATALOG   Category = "CATALOG" // application scanning
	STORE     Category = "STORE"   // layout persistence
	DRAG      Category = "DRAG"    // drag session transitions
	BOARD     Category = "BOARD"   // commits and paging
	ICON      Category = "ICON"    // icon resolution and the cache
	UI        Category = "UI"      // input handling
	WATCH     Category = "WATCH"   // application directory watcher
	UI_LAYOUT Category = "UI_LAYOUT"
)

// Categories lists every category. UI_LAYOUT traces each frame and is only
// on when asked for by name or with "all".
var Categories = []Category{APP, CATALOG, STORE, DRAG, BOARD, ICON, UI, WATCH, UI_LAYOUT}

// ParseCategories reads a LAUNCHGRID_DEBUG value: empty for the defaults,
// "all", "none", or a comma-separated list such as "drag,board".
func ParseCategories(spec string) map[Category]bool {
	on := make(map[Category]bool, len(Categories))
	spec = strings.ToUpper(strings.TrimSpace(spec))
	switch spec {
	case "":
		for _, c := range Categories {
			on[c] = c != UI_LAYOUT
		}
	case "ALL":
		for _, c := range Categories {
			on[c] = true
		}
	case "NONE":
	default:
		for _, name := range strings.Split(spec, ",") {
			if name = strings.TrimSpace(name); name != "" {
				on[Category(name)] = true
			}
		}
	}
	return on
}
