// Package state holds the metric state store for both CVSS standards.
package state

import (
	"errors"
	"fmt"

	"github.com/huangsam/cvsspop/core/oracle"
	"github.com/huangsam/cvsspop/core/vector"
	"github.com/huangsam/cvsspop/schema"
)

// Errors returned by store mutations.
var (
	ErrUnknownStandard = errors.New("unknown standard")
	ErrUnknownMetric   = errors.New("unknown metric")
	ErrIllegalValue    = errors.New("illegal metric value")
)

// Store owns the application state. Every assignment it holds is schema-complete.
// It is not safe for concurrent use; callers serialize access.
type Store struct {
	reg         *oracle.Registry
	assignments map[schema.Standard]schema.Assignment
	active      schema.Standard
	lastFailed  map[schema.Standard]bool
}

// RestoreIssue describes a persisted assignment that was replaced by defaults.
type RestoreIssue struct {
	Standard schema.Standard
	Err      error
}

// New creates a store holding the default assignment for every standard.
func New(reg *oracle.Registry) *Store {
	s, _ := Restore(reg, schema.DefaultState())
	return s
}

// Restore creates a store from a snapshot. Any standard whose assignment is
// missing, incomplete or illegal starts from its default instead.
func Restore(reg *oracle.Registry, snap schema.ApplicationState) (*Store, []RestoreIssue) {
	s := &Store{
		reg:         reg,
		assignments: make(map[schema.Standard]schema.Assignment, len(schema.AllStandards)),
		active:      schema.V3,
		lastFailed:  make(map[schema.Standard]bool, len(schema.AllStandards)),
	}

	var issues []RestoreIssue
	for _, std := range schema.AllStandards {
		a := snap.Assignments[std]
		if err := oracle.Check(std, a); err != nil {
			issues = append(issues, RestoreIssue{Standard: std, Err: err})
			a = schema.DefaultAssignment(std)
		}
		s.assignments[std] = onlySchemaKeys(std, a)
	}
	if _, ok := schema.SchemaFor(snap.Active); ok {
		s.active = snap.Active
	}
	return s, issues
}

// onlySchemaKeys copies the schema keys of a, dropping anything the schema does not define.
func onlySchemaKeys(std schema.Standard, a schema.Assignment) schema.Assignment {
	ms, _ := schema.SchemaFor(std)
	out := make(schema.Assignment, len(ms.Metrics))
	for _, key := range ms.Keys() {
		out[key] = a[key]
	}
	return out
}

// Active returns the active standard.
func (s *Store) Active() schema.Standard {
	return s.active
}

// Assignment returns a copy of the assignment for a standard.
func (s *Store) Assignment(std schema.Standard) schema.Assignment {
	return s.assignments[std].Clone()
}

// Value returns the selected value code of one metric.
func (s *Store) Value(std schema.Standard, key string) string {
	return s.assignments[std][key]
}

// Snapshot returns a deep copy of the application state.
func (s *Store) Snapshot() schema.ApplicationState {
	return schema.ApplicationState{
		Assignments: s.assignments,
		Active:      s.active,
	}.Clone()
}

// LastFailed reports whether the most recent evaluation recorded for std failed.
func (s *Store) LastFailed(std schema.Standard) bool {
	return s.lastFailed[std]
}

// SetActiveStandard switches the active standard without touching any assignment.
func (s *Store) SetActiveStandard(std schema.Standard) error {
	if _, ok := schema.SchemaFor(std); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStandard, std)
	}
	s.active = std
	return nil
}

// SetMetricValue selects a value for one metric of a standard.
//
// If the most recent evaluation for std failed, the standard is reset to its
// default first so a state left behind by a bad manual edit does not survive.
func (s *Store) SetMetricValue(std schema.Standard, key, value string) error {
	ms, ok := schema.SchemaFor(std)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStandard, std)
	}
	if !ms.HasKey(key) {
		return fmt.Errorf("%w: %s has no metric %s", ErrUnknownMetric, ms.Title, key)
	}
	if !ms.IsLegal(key, value) {
		return fmt.Errorf("%w: %s:%s for %s", ErrIllegalValue, key, value, ms.Title)
	}

	if s.lastFailed[std] {
		s.assignments[std] = ms.Defaults()
		s.lastFailed[std] = false
	}
	s.assignments[std][key] = value
	return nil
}

// ResetStandard replaces the assignment of std with its default.
func (s *Store) ResetStandard(std schema.Standard) error {
	ms, ok := schema.SchemaFor(std)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStandard, std)
	}
	s.assignments[std] = ms.Defaults()
	return nil
}

// ApplyVectorText applies a manually entered vector.
//
// The change is all-or-nothing: an unknown prefix or any illegal value leaves
// every assignment and the active standard untouched. On success the parsed
// standard becomes active and only the keys mentioned are overwritten.
func (s *Store) ApplyVectorText(text string) (schema.Standard, error) {
	parsed, err := vector.Parse(text)
	if err != nil {
		if errors.Is(err, vector.ErrInvalidValue) {
			// Counts as a failed evaluation of that standard.
			s.lastFailed[parsed.Standard] = true
		}
		return parsed.Standard, err
	}

	s.active = parsed.Standard
	target := s.assignments[parsed.Standard]
	for key, value := range parsed.Pairs {
		target[key] = value
	}
	return parsed.Standard, nil
}

// Evaluate scores the active standard and records whether it succeeded.
func (s *Store) Evaluate() schema.Evaluation {
	return s.EvaluateStandard(s.active)
}

// EvaluateStandard scores a specific standard and records whether it succeeded.
func (s *Store) EvaluateStandard(std schema.Standard) schema.Evaluation {
	ev := s.reg.Evaluate(std, s.assignments[std])
	s.lastFailed[std] = !ev.Valid
	return ev
}
