// Package board owns the launcher's ordered collection and the operations
// that reshape it: paging, reordering, folders and reconciliation with the
// installed applications.
//
// The functions in this package are pure: they never modify the slice they
// are given and return a new slice when something changed. Board wraps them
// and publishes each result as a single atomic replacement.
package board

import (
	"fmt"
	"slices"

	"github.com/justyntemme/launchgrid/internal/model"
)

// Page sizes for the main grid and an expanded folder.
const (
	MainPageSize   = 35
	FolderPageSize = 12
)

// PageCount returns how many pages n items occupy. An empty collection
// still has one page.
func PageCount(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// Pages slices items into consecutive windows of pageSize. The windows
// alias items and must not be modified.
func Pages(items []model.Item, pageSize int) [][]model.Item {
	if pageSize <= 0 {
		return [][]model.Item{items}
	}
	pages := make([][]model.Item, 0, PageCount(len(items), pageSize))
	for start := 0; start < len(items); start += pageSize {
		end := min(start+pageSize, len(items))
		pages = append(pages, items[start:end:end])
	}
	if len(pages) == 0 {
		pages = append(pages, nil)
	}
	return pages
}

// Page returns page p of items, or nil when p is out of range.
func Page(items []model.Item, pageSize, p int) []model.Item {
	if pageSize <= 0 || p < 0 {
		return nil
	}
	start := p * pageSize
	if start >= len(items) {
		return nil
	}
	end := min(start+pageSize, len(items))
	return items[start:end:end]
}

// Reorder moves the item draggedID to the absolute slot target.
//
// A move within one page splices only that page. A move to another page
// removes the item, pads with placeholders when the target page starts past
// the end of the collection, inserts it, and then compacts every page so
// placeholders trail the real items.
//
// Targets inside the collection, or on the slots of the last page and one
// new trailing page, are accepted; targets that land past the end of their
// page's items clamp to its end. Negative targets, targets beyond that
// range and target == source leave the collection unchanged. A missing
// draggedID is ErrNotFound.
func Reorder(items []model.Item, draggedID string, target, pageSize int) ([]model.Item, bool, error) {
	src := model.IndexOf(items, draggedID)
	if src < 0 {
		return items, false, fmt.Errorf("reorder %s: %w", draggedID, model.ErrNotFound)
	}
	if pageSize <= 0 || target < 0 || target == src {
		return items, false, nil
	}
	if target >= (PageCount(len(items), pageSize)+1)*pageSize {
		return items, false, nil
	}

	if src/pageSize == target/pageSize {
		out, changed := moveWithinPage(items, src, target, pageSize)
		return out, changed, nil
	}
	return moveAcrossPages(items, src, target, pageSize), true, nil
}

func moveWithinPage(items []model.Item, src, target, pageSize int) ([]model.Item, bool) {
	start := (src / pageSize) * pageSize
	end := min(start+pageSize, len(items))

	page := slices.Clone(items[start:end])
	local := src - start
	item := page[local]
	page = slices.Delete(page, local, local+1)
	at := min(target-start, len(page))
	if at == local {
		return items, false
	}
	page = slices.Insert(page, at, item)

	out := slices.Clone(items)
	copy(out[start:end], page)
	return out, true
}

func moveAcrossPages(items []model.Item, src, target, pageSize int) []model.Item {
	item := items[src]
	out := slices.Delete(slices.Clone(items), src, src+1)

	pageStart := (target / pageSize) * pageSize
	for len(out) < pageStart {
		out = append(out, model.NewEmpty())
	}
	out = slices.Insert(out, min(target, len(out)), item)

	Compact(out, pageSize)
	return out
}

// Compact moves the placeholders of every page to the end of that page,
// keeping the relative order of the real items. It works in place.
func Compact(items []model.Item, pageSize int) {
	if pageSize <= 0 {
		return
	}
	for start := 0; start < len(items); start += pageSize {
		page := items[start:min(start+pageSize, len(items))]
		slices.SortStableFunc(page, func(a, b model.Item) int {
			return rank(a) - rank(b)
		})
	}
}

func rank(it model.Item) int {
	if it.IsEmpty() {
		return 1
	}
	return 0
}
