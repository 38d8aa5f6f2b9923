// Package session drives one popup session: it loads the persisted record,
// applies user intents to the state store and writes the result back.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/cvsspop/core/oracle"
	"github.com/huangsam/cvsspop/core/state"
	"github.com/huangsam/cvsspop/core/vector"
	"github.com/huangsam/cvsspop/internal/contract"
	"github.com/huangsam/cvsspop/schema"
)

// Errors returned by intents.
var (
	ErrInvalidDisplay = errors.New("display holds the invalid sentinel")
	ErrCopyInvalid    = fmt.Errorf("%w: cannot copy", ErrInvalidDisplay)
	ErrEditInvalid    = fmt.Errorf("%w: cannot edit", ErrInvalidDisplay)
	ErrNoVector       = errors.New("no vector on this tab")
	ErrUnknownTab     = errors.New("unknown tab")
)

// Session owns the state store for one popup lifetime.
// Intents must be called from a single goroutine.
type Session struct {
	store   *state.Store
	tab     schema.Tab
	display schema.Evaluation
	writer  *Writer
	now     func() time.Time
	newID   func() string
}

type options struct {
	history contract.HistoryStore
	logger  contract.Logger
	format  schema.RecordFormat
	now     func() time.Time
	newID   func() string
}

// Option configures Open.
type Option func(*options)

// WithHistory records successful evaluations to h.
func WithHistory(h contract.HistoryStore) Option {
	return func(o *options) { o.history = h }
}

// WithLogger sends load and write warnings to l instead of stderr.
func WithLogger(l contract.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithFormat selects the encoding of the persisted record.
func WithFormat(f schema.RecordFormat) Option {
	return func(o *options) { o.format = f }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides how history ids are generated.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// Open loads the persisted record from kv and returns a ready session.
// No intent is accepted before the load finishes. kv may be nil to disable persistence.
func Open(ctx context.Context, reg *oracle.Registry, kv contract.StateStore, opts ...Option) (*Session, error) {
	o := options{
		logger: contract.StderrLogger{},
		format: schema.JSONFormat,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}

	snap, tab, err := load(ctx, kv, o.format, o.logger)
	if err != nil {
		return nil, err
	}

	store, issues := state.Restore(reg, snap)
	for _, issue := range issues {
		o.logger.Warn(fmt.Sprintf("restoring %s metrics", issue.Standard.Title()), issue.Err)
	}

	s := &Session{
		store:  store,
		tab:    tab,
		writer: newWriter(kv, o.history, o.logger, o.format, o.now),
		now:    o.now,
		newID:  o.newID,
	}
	s.display = s.store.Evaluate()
	return s, nil
}

type loadResult struct {
	data    []byte
	version int
	err     error
}

// load reads the persisted record once. Anything unusable falls back to defaults.
func load(ctx context.Context, kv contract.StateStore, format schema.RecordFormat, logger contract.Logger) (schema.ApplicationState, schema.Tab, error) {
	defaults := schema.DefaultState()
	if kv == nil {
		return defaults, schema.TabCVSS3, nil
	}

	ch := make(chan loadResult, 1)
	go func() {
		data, version, _, err := kv.Get(schema.RecordKey)
		ch <- loadResult{data: data, version: version, err: err}
	}()

	var res loadResult
	select {
	case res = <-ch:
	case <-ctx.Done():
		return defaults, "", fmt.Errorf("loading popup state: %w", ctx.Err())
	}

	switch {
	case res.err != nil:
		logger.Warn("loading popup state", res.err)
		return defaults, schema.TabCVSS3, nil
	case res.data == nil:
		return defaults, schema.TabCVSS3, nil
	case res.version != schema.RecordVersion:
		logger.Warn("loading popup state", fmt.Errorf("record version %d, expected %d", res.version, schema.RecordVersion))
		return defaults, schema.TabCVSS3, nil
	}

	rec, err := schema.DecodeRecord(format, res.data)
	if err != nil {
		logger.Warn("decoding popup state", err)
		return defaults, schema.TabCVSS3, nil
	}
	return fromRecord(rec, logger)
}

// fromRecord converts the persisted layout back into an application state.
func fromRecord(rec schema.PersistedRecord, logger contract.Logger) (schema.ApplicationState, schema.Tab, error) {
	snap := schema.ApplicationState{
		Assignments: make(map[schema.Standard]schema.Assignment, len(schema.AllStandards)),
		Active:      schema.V3,
	}
	for _, std := range schema.AllStandards {
		if set := rec.CVSSState.Set(std); set != nil {
			snap.Assignments[std] = set.Metrics
		}
	}

	tab := schema.Tab(rec.ActiveTab)
	if _, ok := schema.ValidTabs[tab]; !ok {
		if rec.ActiveTab != "" {
			logger.Warn("loading popup state", fmt.Errorf("%w %q", ErrUnknownTab, rec.ActiveTab))
		}
		tab = schema.TabCVSS3
	}
	if std, ok := schema.StandardFor(tab); ok {
		snap.Active = std
	}
	return snap, tab, nil
}

// Display returns the score, severity and vector currently shown.
func (s *Session) Display() schema.Evaluation {
	return s.display
}

// Tab returns the current tab.
func (s *Session) Tab() schema.Tab {
	return s.tab
}

// Active returns the active standard. It is kept while the about tab is open.
func (s *Session) Active() schema.Standard {
	return s.store.Active()
}

// Selection returns the current assignment of a standard.
func (s *Session) Selection(std schema.Standard) schema.Assignment {
	return s.store.Assignment(std)
}

// Snapshot returns a copy of the application state.
func (s *Session) Snapshot() schema.ApplicationState {
	return s.store.Snapshot()
}

// Report evaluates every standard for display outside the popup.
func (s *Session) Report() schema.StateReport {
	report := schema.StateReport{
		ActiveTab: s.tab,
		Active:    s.store.Active(),
		Standards: make([]schema.StandardReport, 0, len(schema.AllStandards)),
	}
	for _, std := range schema.AllStandards {
		report.Standards = append(report.Standards, schema.StandardReport{
			Evaluation: s.store.EvaluateStandard(std),
			Title:      std.Title(),
			Metrics:    s.store.Assignment(std),
		})
	}
	return report
}

// SelectMetric applies a button click.
func (s *Session) SelectMetric(std schema.Standard, key, value string) error {
	if err := s.store.SetMetricValue(std, key, value); err != nil {
		return err
	}
	s.commit(std, true)
	return nil
}

// Reset restores the defaults of one standard.
func (s *Session) Reset(std schema.Standard) error {
	if err := s.store.ResetStandard(std); err != nil {
		return err
	}
	s.commit(std, true)
	return nil
}

// SwitchTab changes the visible tab. Standard tabs also change the active standard.
func (s *Session) SwitchTab(tab schema.Tab) error {
	if _, ok := schema.ValidTabs[tab]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownTab, tab)
	}
	if std, ok := schema.StandardFor(tab); ok {
		if err := s.store.SetActiveStandard(std); err != nil {
			return err
		}
	}
	s.tab = tab
	s.commit(s.store.Active(), false)
	return nil
}

// SubmitVector applies manually edited vector text. Blank text is ignored.
//
// Invalid values put the display into the invalid sentinel without changing
// any assignment; the next button click on that standard starts from defaults.
func (s *Session) SubmitVector(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	std, err := s.store.ApplyVectorText(text)
	switch {
	case errors.Is(err, vector.ErrInvalidValue):
		s.display = schema.InvalidEvaluation(std)
		return err
	case err != nil:
		return err
	}

	s.tab = schema.TabFor(std)
	s.commit(std, true)
	return nil
}

// CopyText returns the vector to copy, refusing the invalid sentinel.
func (s *Session) CopyText() (string, error) {
	if s.tab == schema.TabAbout {
		return "", ErrNoVector
	}
	if !s.display.Valid {
		return "", ErrCopyInvalid
	}
	return s.display.Vector, nil
}

// EditText returns the vector to prefill the editor, refusing the invalid sentinel.
func (s *Session) EditText() (string, error) {
	if s.tab == schema.TabAbout {
		return "", ErrNoVector
	}
	if !s.display.Valid {
		return "", ErrEditInvalid
	}
	return s.display.Vector, nil
}

// Close waits for queued writes to finish.
func (s *Session) Close(ctx context.Context) error {
	return s.writer.Close(ctx)
}

// commit re-evaluates after a mutation of changed and enqueues the write.
func (s *Session) commit(changed schema.Standard, record bool) {
	ev := s.store.EvaluateStandard(changed)
	if changed == s.store.Active() {
		s.display = ev
	} else {
		s.display = s.store.Evaluate()
	}

	var entry *schema.HistoryEntry
	if record && ev.Valid {
		entry = &schema.HistoryEntry{
			ID:        s.newID(),
			Standard:  ev.Standard,
			Vector:    ev.Vector,
			Score:     ev.Score,
			Severity:  ev.Severity,
			CreatedAt: s.now().UTC(),
		}
	}
	s.writer.Enqueue(schema.NewPersistedRecord(s.store.Snapshot(), s.tab), entry)
}
