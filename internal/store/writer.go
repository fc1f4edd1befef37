package store

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/justyntemme/launchgrid/internal/debug"
	"github.com/justyntemme/launchgrid/internal/model"
)

// Response reports the outcome of one save.
type Response struct {
	Items int
	Err   error
}

// Writer saves layouts on its own goroutine so the UI never waits on disk.
// Requests that arrive while a save is running are coalesced: only the
// newest snapshot is written.
type Writer struct {
	store        Store
	RequestChan  chan []model.Item
	ResponseChan chan Response

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

func NewWriter(s Store) *Writer {
	return &Writer{
		store:        s,
		RequestChan:  make(chan []model.Item, 1),
		ResponseChan: make(chan Response, 10),
		done:         make(chan struct{}),
	}
}

// Submit queues items for saving, replacing any snapshot still waiting.
// It never blocks on I/O. Submits after Close are dropped.
func (w *Writer) Submit(items []model.Item) {
	snapshot := model.CloneAll(items)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	for {
		select {
		case w.RequestChan <- snapshot:
			return
		default:
		}
		select {
		case stale := <-w.RequestChan:
			debug.Log(debug.STORE, "coalesced save of %d items", len(stale))
		default:
		}
	}
}

// Start runs the save loop until Close. Call it on its own goroutine.
func (w *Writer) Start() {
	defer close(w.done)
	for items := range w.RequestChan {
		err := w.store.Save(items)
		if err != nil {
			log.Error().Err(err).Int("items", len(items)).Msg("save layout")
		}
		select {
		case w.ResponseChan <- Response{Items: len(items), Err: err}:
		default:
			// Nobody is listening; the log line above is enough.
		}
	}
}

// Close stops accepting requests and waits for Start to write the last
// pending snapshot.
func (w *Writer) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.RequestChan)
	w.mu.Unlock()
	<-w.done
}
