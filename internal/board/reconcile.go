package board

import (
	"slices"

	"github.com/justyntemme/launchgrid/internal/model"
	"github.com/justyntemme/launchgrid/internal/search"
)

// Reconcile brings a saved layout in line with a fresh catalog scan. The
// saved order wins: apps that are no longer installed are dropped (from
// folders too, and folders left empty disappear), and newly installed apps
// are appended at the end in scan order. Pages holding only placeholders
// are removed and every page keeps its placeholders last.
func Reconcile(items, scanned []model.Item, pageSize int) ([]model.Item, bool) {
	if pageSize <= 0 {
		pageSize = MainPageSize
	}
	installed := make(map[string]model.Item)
	var order []string
	for _, app := range flatten(scanned) {
		if _, dup := installed[app.ID]; !dup {
			installed[app.ID] = app
			order = append(order, app.ID)
		}
	}

	changed := false
	present := make(map[string]bool)
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		switch it.Kind {
		case model.KindApp:
			if _, ok := installed[it.ID]; !ok {
				changed = true
				continue
			}
			present[it.ID] = true
			out = append(out, it)
		case model.KindFolder:
			members := slices.DeleteFunc(slices.Clone(it.Apps), func(app model.Item) bool {
				_, ok := installed[app.ID]
				return !ok
			})
			if len(members) != len(it.Apps) {
				changed = true
				it.Apps = members
				it.Icon = nil
			}
			if len(members) == 0 {
				continue
			}
			for _, app := range members {
				present[app.ID] = true
			}
			out = append(out, it)
		default:
			out = append(out, it)
		}
	}

	out = dropBlankPages(out, pageSize)
	for _, id := range order {
		if !present[id] {
			out = append(out, installed[id])
		}
	}
	Compact(out, pageSize)

	if !changed && slices.Equal(itemIDs(out), itemIDs(items)) {
		return items, false
	}
	return out, true
}

// dropBlankPages removes pages made up of placeholders only, then the
// placeholders ending the collection, so appended apps never land behind
// an empty slot.
func dropBlankPages(items []model.Item, pageSize int) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, page := range Pages(items, pageSize) {
		if slices.ContainsFunc(page, func(it model.Item) bool { return !it.IsEmpty() }) {
			out = append(out, page...)
		}
	}
	for len(out) > 0 && out[len(out)-1].IsEmpty() {
		out = out[:len(out)-1]
	}
	return out
}

func itemIDs(items []model.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// Search returns every app, including folder members, matching query in
// display order. Bare words match names case-insensitively; see
// search.Parse for directives. A blank query matches nothing.
func Search(items []model.Item, query string) []model.Item {
	q := search.Parse(query)
	if q.IsEmpty() {
		return nil
	}
	var matches []model.Item
	for _, it := range items {
		switch it.Kind {
		case model.KindApp:
			if q.Match(it, "") {
				matches = append(matches, it)
			}
		case model.KindFolder:
			for _, app := range it.Apps {
				if q.Match(app, it.Name) {
					matches = append(matches, app)
				}
			}
		}
	}
	return matches
}

// flatten returns the apps of items in display order, expanding folders.
func flatten(items []model.Item) []model.Item {
	var apps []model.Item
	for _, it := range items {
		switch it.Kind {
		case model.KindApp:
			apps = append(apps, it)
		case model.KindFolder:
			apps = append(apps, it.Apps...)
		}
	}
	return apps
}
