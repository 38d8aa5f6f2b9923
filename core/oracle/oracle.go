// Package oracle wraps the external CVSS calculators behind a per-standard capability interface.
package oracle

import (
	"errors"
	"fmt"

	"github.com/huangsam/cvsspop/schema"
	gocvss31 "github.com/pandatix/go-cvss/31"
	gocvss40 "github.com/pandatix/go-cvss/40"
)

// Errors produced while configuring or invoking oracles.
var (
	ErrMissingOracle    = errors.New("missing scoring oracle")
	ErrDuplicateOracle  = errors.New("duplicate scoring oracle")
	ErrOracleRejected   = errors.New("scoring oracle rejected the vector")
	ErrSchemaIncomplete = errors.New("assignment is not schema-complete")
)

// Result is the raw output of a successful oracle call.
type Result struct {
	Score  float64
	Vector string
}

// ScoringOracle scores canonical vectors for exactly one standard.
type ScoringOracle interface {
	Standard() schema.Standard
	Score(vector string) (Result, error)
}

// CVSS31 scores CVSS v3.1 base vectors with github.com/pandatix/go-cvss.
type CVSS31 struct{}

var _ ScoringOracle = CVSS31{} // Compile-time check

// Standard implements the ScoringOracle interface.
func (CVSS31) Standard() schema.Standard { return schema.V3 }

// Score implements the ScoringOracle interface.
func (CVSS31) Score(vector string) (Result, error) {
	cvss, err := gocvss31.ParseVector(vector)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrOracleRejected, err)
	}
	return Result{Score: cvss.BaseScore(), Vector: cvss.Vector()}, nil
}

// CVSS40 scores CVSS v4.0 base vectors with github.com/pandatix/go-cvss.
type CVSS40 struct{}

var _ ScoringOracle = CVSS40{} // Compile-time check

// Standard implements the ScoringOracle interface.
func (CVSS40) Standard() schema.Standard { return schema.V4 }

// Score implements the ScoringOracle interface.
func (CVSS40) Score(vector string) (Result, error) {
	cvss, err := gocvss40.ParseVector(vector)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrOracleRejected, err)
	}
	return Result{Score: cvss.Score(), Vector: cvss.Vector()}, nil
}

// Registry holds exactly one oracle per standard.
type Registry struct {
	oracles map[schema.Standard]ScoringOracle
}

// NewRegistry builds a registry and fails unless every standard has one oracle.
func NewRegistry(oracles ...ScoringOracle) (*Registry, error) {
	reg := &Registry{oracles: make(map[schema.Standard]ScoringOracle, len(oracles))}
	for _, o := range oracles {
		if o == nil {
			return nil, fmt.Errorf("%w: nil oracle", ErrMissingOracle)
		}
		std := o.Standard()
		if _, dup := reg.oracles[std]; dup {
			return nil, fmt.Errorf("%w for %s", ErrDuplicateOracle, std.Title())
		}
		reg.oracles[std] = o
	}
	for _, std := range schema.AllStandards {
		if _, ok := reg.oracles[std]; !ok {
			return nil, fmt.Errorf("%w for %s", ErrMissingOracle, std.Title())
		}
	}
	return reg, nil
}

// DefaultRegistry returns the go-cvss backed registry.
func DefaultRegistry() *Registry {
	reg, err := NewRegistry(CVSS31{}, CVSS40{})
	if err != nil {
		panic(err) // both standards are always covered
	}
	return reg
}

// Oracle returns the oracle for a standard.
func (r *Registry) Oracle(std schema.Standard) (ScoringOracle, bool) {
	o, ok := r.oracles[std]
	return o, ok
}
