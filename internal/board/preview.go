package board

import (
	"slices"

	"github.com/justyntemme/launchgrid/internal/drag"
	"github.com/justyntemme/launchgrid/internal/model"
)

// Preview is what the grid shows while a drag is in flight: items with the
// dragged item moved to the pending drop index. Without a session or drop
// index, or when the dragged item is not in items, items is returned as is.
// The result must be treated as read-only; items is never modified.
func Preview(items []model.Item, session *drag.Session) []model.Item {
	if session == nil || !session.HasDropIndex() || len(items) == 0 {
		return items
	}
	src := model.IndexOf(items, session.Dragging.ID)
	if src < 0 {
		return items
	}
	at := min(session.DropIndex, len(items)-1)
	if at == src {
		return items
	}
	item := items[src]
	out := slices.Delete(slices.Clone(items), src, src+1)
	return slices.Insert(out, at, item)
}
