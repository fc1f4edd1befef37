package app

import (
	"github.com/rs/zerolog/log"

	"github.com/justyntemme/launchgrid/internal/board"
	"github.com/justyntemme/launchgrid/internal/catalog"
	"github.com/justyntemme/launchgrid/internal/config"
	"github.com/justyntemme/launchgrid/internal/debug"
	"github.com/justyntemme/launchgrid/internal/model"
	"github.com/justyntemme/launchgrid/internal/store"
)

// loadLayout returns the collection to start with. A saved layout is kept
// in its order and reconciled with a fresh scan; a missing or unreadable
// one, or rescan, falls back to the scan's default arrangement.
func loadLayout(st store.Store, sc *catalog.Scanner, rescan bool, pageSize int) []model.Item {
	scanned := sc.Scan()
	if rescan || st == nil {
		return scanned
	}

	saved, found, err := st.Load()
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("saved layout unreadable, using catalog order")
		return scanned
	case !found:
		log.Info().Int("apps", len(scanned)).Msg("no saved layout, using catalog order")
		return scanned
	case len(scanned) == 0:
		// Every catalog directory failed to read. Dropping every saved app
		// would wipe the layout on the next save.
		log.Warn().Msg("catalog scan found nothing, keeping saved layout")
		return saved
	}

	items, changed := board.Reconcile(saved, scanned, pageSize)
	if changed {
		debug.Log(debug.APP, "saved layout reconciled: %d -> %d items", len(saved), len(items))
	}
	return items
}

// migrateLayout copies the layout saved by the from backend into to, unless
// to already holds one.
func migrateLayout(from config.StoreConfig, to store.Store) bool {
	if _, found, err := to.Load(); err == nil && found {
		return false
	}
	old, err := store.Open(from.Backend, from.Path)
	if err != nil {
		log.Warn().Err(err).Str("backend", from.Backend).Msg("open previous layout store")
		return false
	}
	defer old.Close()

	items, found, err := old.Load()
	if err != nil || !found {
		return false
	}
	if err := to.Save(items); err != nil {
		log.Error().Err(err).Msg("migrate layout")
		return false
	}
	log.Info().Int("items", len(items)).Str("from", from.Backend).Msg("layout migrated")
	return true
}

// refresh rescans the catalog and merges the result into b.
func refresh(b *board.Board, sc *catalog.Scanner) bool {
	scanned := sc.Scan()
	if len(scanned) == 0 {
		log.Warn().Msg("catalog scan found nothing, layout unchanged")
		return false
	}
	return b.Reconcile(scanned)
}

func (o *Orchestrator) rescan() {
	if refresh(o.board, o.scanner) {
		log.Info().Int("items", o.board.Len()).Msg("catalog changed")
		o.window.Invalidate()
	}
}

// watchCatalog rescans whenever the watcher reports installed apps
// changing.
func (o *Orchestrator) watchCatalog() {
	for range o.watcher.Changes() {
		debug.Log(debug.WATCH, "catalog change signalled")
		o.rescan()
	}
}

// drainSaves consumes the writer's save results so failures surface in
// debug builds as well as the log.
func (o *Orchestrator) drainSaves() {
	for resp := range o.writer.ResponseChan {
		if resp.Err == nil {
			debug.Log(debug.STORE, "saved layout: %d items", resp.Items)
		}
	}
}
