package session

import (
	"context"
	"sync"
	"time"

	"github.com/huangsam/cvsspop/internal/contract"
	"github.com/huangsam/cvsspop/schema"
)

// Writer persists popup records and history entries in the background.
// Only the latest record is kept while a write is in flight; history entries queue up.
type Writer struct {
	kv      contract.StateStore
	history contract.HistoryStore
	logger  contract.Logger
	format  schema.RecordFormat
	now     func() time.Time

	mu      sync.Mutex
	pending *schema.PersistedRecord
	entries []schema.HistoryEntry
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// newWriter starts the background loop. kv and history may be nil.
func newWriter(kv contract.StateStore, history contract.HistoryStore, logger contract.Logger, format schema.RecordFormat, now func() time.Time) *Writer {
	w := &Writer{
		kv:      kv,
		history: history,
		logger:  logger,
		format:  format,
		now:     now,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w
}

// Enqueue schedules a record write and an optional history entry without waiting.
func (w *Writer) Enqueue(rec schema.PersistedRecord, entry *schema.HistoryEntry) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.kv != nil {
		w.pending = &rec
	}
	if entry != nil && w.history != nil {
		w.entries = append(w.entries, *entry)
	}
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Close stops accepting work and waits until everything queued is written.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.wake)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Writer) loop() {
	defer close(w.done)
	for range w.wake {
		w.flush()
	}
	w.flush()
}

// flush writes whatever is queued. Failures are logged and dropped.
func (w *Writer) flush() {
	w.mu.Lock()
	rec := w.pending
	entries := w.entries
	w.pending = nil
	w.entries = nil
	w.mu.Unlock()

	if rec != nil {
		data, err := schema.EncodeRecord(w.format, *rec)
		if err != nil {
			w.logger.Warn("encoding popup state", err)
		} else if err := w.kv.Set(schema.RecordKey, data, schema.RecordVersion, w.now().Unix()); err != nil {
			w.logger.Warn("saving popup state", err)
		}
	}

	for _, entry := range entries {
		if err := w.history.Record(entry); err != nil {
			w.logger.Warn("recording history", err)
		}
	}
}
