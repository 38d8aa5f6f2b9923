package oracle

import (
	"fmt"

	"github.com/huangsam/cvsspop/core/vector"
	"github.com/huangsam/cvsspop/schema"
)

// Check verifies that an assignment is schema-complete and legal for a standard.
func Check(std schema.Standard, a schema.Assignment) error {
	ms, ok := schema.SchemaFor(std)
	if !ok {
		return fmt.Errorf("%w: unknown standard %s", ErrSchemaIncomplete, std)
	}
	for _, m := range ms.Metrics {
		v, ok := a[m.Key]
		if !ok {
			return fmt.Errorf("%w: %s is unset", ErrSchemaIncomplete, m.Key)
		}
		if !ms.IsLegal(m.Key, v) {
			return fmt.Errorf("%w: %s:%s is not legal", ErrSchemaIncomplete, m.Key, v)
		}
	}
	return nil
}

// Run serializes the assignment and scores it, returning the first failure.
func (r *Registry) Run(std schema.Standard, a schema.Assignment) (schema.Evaluation, error) {
	o, ok := r.Oracle(std)
	if !ok {
		return schema.InvalidEvaluation(std), fmt.Errorf("%w for %s", ErrMissingOracle, std)
	}
	if err := Check(std, a); err != nil {
		return schema.InvalidEvaluation(std), err
	}

	res, err := o.Score(vector.Serialize(std, a))
	if err != nil {
		return schema.InvalidEvaluation(std), err
	}

	score := schema.RoundScore(res.Score)
	return schema.Evaluation{
		Standard: std,
		Valid:    true,
		Score:    score,
		Severity: schema.SeverityFor(score),
		Vector:   res.Vector,
	}, nil
}

// Evaluate is Run with every failure folded into the invalid sentinel.
func (r *Registry) Evaluate(std schema.Standard, a schema.Assignment) schema.Evaluation {
	ev, _ := r.Run(std, a)
	return ev
}
