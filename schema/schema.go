// Package schema has models, metric schemas and shared constants for all parts of cvsspop.
package schema

import (
	"maps"
	"time"
)

// Assignment maps metric keys to their selected value codes.
type Assignment map[string]string

// Clone returns a deep copy of the assignment.
func (a Assignment) Clone() Assignment {
	if a == nil {
		return nil
	}
	return maps.Clone(a)
}

// Equal reports whether both assignments hold the same pairs.
func (a Assignment) Equal(other Assignment) bool {
	return maps.Equal(a, other)
}

// ApplicationState is the complete in-memory state of the popup.
type ApplicationState struct {
	Assignments map[Standard]Assignment `json:"assignments"`
	Active      Standard                `json:"active"`
}

// Clone returns a deep copy of the state.
func (s ApplicationState) Clone() ApplicationState {
	clone := ApplicationState{
		Assignments: make(map[Standard]Assignment, len(s.Assignments)),
		Active:      s.Active,
	}
	for std, a := range s.Assignments {
		clone.Assignments[std] = a.Clone()
	}
	return clone
}

// DefaultState returns the default assignment for every standard with V3 active.
func DefaultState() ApplicationState {
	s := ApplicationState{
		Assignments: make(map[Standard]Assignment, len(AllStandards)),
		Active:      V3,
	}
	for _, std := range AllStandards {
		s.Assignments[std] = DefaultAssignment(std)
	}
	return s
}

// Evaluation is the score/severity/vector triple shown to the user.
type Evaluation struct {
	Standard Standard `json:"standard"`
	Valid    bool     `json:"valid"`
	Score    float64  `json:"score"`
	Severity Severity `json:"severity"`
	Vector   string   `json:"vector"`
}

// InvalidEvaluation returns the sentinel shown when the oracle rejects an assignment.
func InvalidEvaluation(std Standard) Evaluation {
	return Evaluation{
		Standard: std,
		Valid:    false,
		Severity: SeverityNA,
		Vector:   InvalidVector,
	}
}

// ScoreText returns the score formatted with one decimal, or the error marker.
func (e Evaluation) ScoreText() string {
	if !e.Valid {
		return ErrorScore
	}
	return FormatScore(e.Score)
}

// MetricSet wraps an assignment in the persisted layout.
type MetricSet struct {
	Metrics Assignment `json:"metrics" msgpack:"metrics"`
}

// PersistedState holds one MetricSet per standard.
type PersistedState struct {
	CVSS3 *MetricSet `json:"cvss3,omitempty" msgpack:"cvss3,omitempty"`
	CVSS4 *MetricSet `json:"cvss4,omitempty" msgpack:"cvss4,omitempty"`
}

// PersistedRecord is the single record written to the key-value store.
type PersistedRecord struct {
	CVSSState *PersistedState `json:"cvssState,omitempty" msgpack:"cvssState,omitempty"`
	ActiveTab string          `json:"activeTab,omitempty" msgpack:"activeTab,omitempty"`
}

// Set returns the persisted metric set for a standard.
func (ps *PersistedState) Set(std Standard) *MetricSet {
	if ps == nil {
		return nil
	}
	switch std {
	case V3:
		return ps.CVSS3
	case V4:
		return ps.CVSS4
	default:
		return nil
	}
}

// NewPersistedRecord converts an application state and tab into the persisted layout.
func NewPersistedRecord(state ApplicationState, tab Tab) PersistedRecord {
	return PersistedRecord{
		CVSSState: &PersistedState{
			CVSS3: &MetricSet{Metrics: state.Assignments[V3].Clone()},
			CVSS4: &MetricSet{Metrics: state.Assignments[V4].Clone()},
		},
		ActiveTab: string(tab),
	}
}

// HistoryEntry is a single successful evaluation recorded after a mutation.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Standard  Standard  `json:"standard"`
	Vector    string    `json:"vector"`
	Score     float64   `json:"score"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}
