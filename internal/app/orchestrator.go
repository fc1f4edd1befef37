package app

import (
	"errors"
	"os"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/op"
	"gioui.org/unit"
	"github.com/rs/zerolog/log"

	"github.com/justyntemme/launchgrid/internal/board"
	"github.com/justyntemme/launchgrid/internal/catalog"
	"github.com/justyntemme/launchgrid/internal/config"
	"github.com/justyntemme/launchgrid/internal/debug"
	"github.com/justyntemme/launchgrid/internal/icon"
	"github.com/justyntemme/launchgrid/internal/model"
	"github.com/justyntemme/launchgrid/internal/store"
	"github.com/justyntemme/launchgrid/internal/ui"
)

// Options are the command-line settings.
type Options struct {
	Debug      bool
	ConfigPath string // empty uses config.ConfigPath()
	Rescan     bool   // ignore the saved layout
	Store      string // switch the persistence backend, carrying the layout over
}

type Orchestrator struct {
	window  *app.Window
	cfg     config.Config
	manager *config.Manager
	scanner *catalog.Scanner
	icons   *icon.Provider
	store   store.Store
	writer  *store.Writer
	board   *board.Board
	watcher *catalog.Watcher
	ui      *ui.Renderer
	state   ui.State
	opts    Options

	previous config.StoreConfig // backend being switched away from
}

func NewOrchestrator(opts Options) *Orchestrator {
	manager := config.NewManager()
	var err error
	if opts.ConfigPath != "" {
		err = manager.LoadFrom(opts.ConfigPath)
	} else {
		err = manager.Load()
	}
	if err != nil {
		log.Warn().Err(err).Msg("config not loaded, using defaults")
	}
	cfg := manager.Get()

	previous := cfg.Store
	if opts.Store != "" && opts.Store != cfg.Store.Backend {
		if err := manager.SetStoreBackend(opts.Store); err != nil {
			log.Warn().Err(err).Msg("store backend not switched")
		}
		cfg = manager.Get()
		if cfg.Store.Backend != previous.Backend {
			log.Info().Str("from", previous.Backend).Str("to", cfg.Store.Backend).Msg("switching layout store")
		}
	}

	r := ui.NewRenderer(cfg)
	r.Debug = opts.Debug
	return &Orchestrator{
		window:  new(app.Window),
		cfg:     cfg,
		manager: manager,
		scanner: newScanner(cfg.Catalog),
		icons: icon.NewProvider(icon.Options{
			Size:       cfg.Icons.Size,
			MaxEntries: cfg.Icons.MaxEntries,
			ThemeDirs:  cfg.Icons.ThemeDirs,
		}),
		ui:       r,
		state:    ui.State{ConfigError: manager.ParseError()},
		opts:     opts,
		previous: previous,
	}
}

func newScanner(c config.CatalogConfig) *catalog.Scanner {
	return catalog.NewScanner(catalog.Options{
		Dirs:        c.Dirs,
		FirstPage:   c.FirstPage,
		Tools:       c.Tools,
		ToolsFolder: c.ToolsFolder,
	})
}

func (o *Orchestrator) Run() error {
	log.Info().Bool("debug", o.opts.Debug).Msg("starting launchgrid")

	// Without a store the launcher still works; the layout just is not kept.
	if st, err := store.Open(o.cfg.Store.Backend, o.cfg.Store.Path); err != nil {
		log.Error().Err(err).Str("backend", o.cfg.Store.Backend).Msg("open layout store")
	} else {
		o.store = st
		defer o.store.Close()
		if o.previous.Backend != o.cfg.Store.Backend {
			migrateLayout(o.previous, st)
		}
		o.writer = store.NewWriter(st)
		go o.writer.Start()
		go o.drainSaves()
		defer o.writer.Close()
	}

	items := loadLayout(o.store, o.scanner, o.opts.Rescan, o.cfg.Grid.PageSize())
	opts := board.Options{
		PageSize:       o.cfg.Grid.PageSize(),
		FolderPageSize: o.cfg.Folder.PageSize(),
		Icons:          o.icons,
	}
	if o.writer != nil {
		opts.Persister = o.writer
	}
	o.board = board.NewBoard(items, opts)
	if o.opts.Rescan && o.writer != nil {
		o.writer.Submit(o.board.Items())
	}

	if o.cfg.Catalog.Watch {
		w, err := catalog.NewWatcher(o.scanner.Dirs(), o.cfg.Catalog.Debounce())
		if err != nil {
			log.Warn().Err(err).Msg("catalog watcher unavailable")
		} else {
			o.watcher = w
			defer o.watcher.Close()
			go o.watchCatalog()
		}
	}

	o.configureWindow()

	var ops op.Ops
	for {
		switch e := o.window.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.ConfigEvent:
			if !e.Config.Focused && o.cfg.Window.HideOnFocusLoss {
				debug.Log(debug.APP, "focus lost, hiding")
				o.hide()
			}
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			o.syncState()
			evt := o.ui.Layout(gtx, &o.state)
			if evt.Action != ui.ActionNone {
				debug.Log(debug.APP, "action: %s item=%q folder=%q index=%d", evt.Action, evt.Item.Name, evt.FolderID, evt.Index)
			}
			o.handleUIEvent(evt)
			e.Frame(gtx.Ops)
		}
	}
}

func (o *Orchestrator) configureWindow() {
	w := o.cfg.Window
	options := []app.Option{
		app.Title("Launchgrid"),
		app.Size(unit.Dp(w.Width), unit.Dp(w.Height)),
	}
	if w.Fullscreen {
		options = append(options, app.Fullscreen.Option())
	}
	o.window.Option(options...)
}

// syncState points the frame state at the board's current collection.
func (o *Orchestrator) syncState() {
	o.state.Items = o.board.Items()
	if folder, ok := o.board.ExpandedFolder(); ok {
		o.state.Folder = &folder
	} else {
		o.state.Folder = nil
	}
}

func (o *Orchestrator) handleUIEvent(evt ui.UIEvent) {
	var err error
	switch evt.Action {
	case ui.ActionNone:
		return
	case ui.ActionLaunch:
		err = o.launch(evt.Item)
	case ui.ActionDrop:
		err = o.board.ApplyDrop(evt.Session)
	case ui.ActionOpenFolder:
		err = o.board.OpenFolder(evt.Item.ID)
	case ui.ActionCloseFolder:
		o.board.CloseFolder()
	case ui.ActionRenameFolder:
		err = o.board.RenameFolder(evt.FolderID, evt.Name)
	case ui.ActionFolderReorder:
		err = o.board.ReorderInFolder(evt.FolderID, evt.Item.ID, evt.Index)
	case ui.ActionFolderRemove:
		err = o.board.RemoveFromFolder(evt.FolderID, evt.Item.ID, evt.Index)
	case ui.ActionHide:
		o.hide()
	case ui.ActionRescan:
		go o.rescan()
	}
	if err != nil {
		logActionError(evt, err)
	}
	o.window.Invalidate()
}

// logActionError reports a rejected action. Rejections caused by the user,
// such as a blank folder name, are not failures.
func logActionError(evt ui.UIEvent, err error) {
	ev := log.Error()
	if errors.Is(err, model.ErrInvalidOperation) || errors.Is(err, model.ErrNotFound) {
		ev = log.Warn()
	}
	ev.Err(err).Str("action", evt.Action.String()).Msg("action rejected")
}

func (o *Orchestrator) launch(it model.Item) error {
	if !it.IsApp() {
		return nil
	}
	log.Info().Str("app", it.Name).Str("path", it.Path).Msg("launch")
	if err := platformOpen(it.Path); err != nil {
		return err
	}
	o.hide()
	return nil
}

// hide minimizes the window and forgets transient state, so the launcher
// reopens on a closed folder and an empty search.
func (o *Orchestrator) hide() {
	o.ui.Reset()
	o.board.CloseFolder()
	o.window.Perform(system.ActionMinimize)
}

func Main(opts Options) {
	setupLogging(opts.Debug)
	go func() {
		o := NewOrchestrator(opts)
		if err := o.Run(); err != nil {
			log.Fatal().Err(err).Msg("launchgrid exited")
		}
		os.Exit(0)
	}()
	app.Main()
}
