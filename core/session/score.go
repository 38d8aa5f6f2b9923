package session

import (
	"github.com/huangsam/cvsspop/core/oracle"
	"github.com/huangsam/cvsspop/core/state"
	"github.com/huangsam/cvsspop/schema"
)

// Score evaluates a standalone vector. Metrics the vector omits take their default value.
func Score(reg *oracle.Registry, text string) (schema.Evaluation, error) {
	store := state.New(reg)
	if _, err := store.ApplyVectorText(text); err != nil {
		return schema.Evaluation{}, err
	}
	return store.Evaluate(), nil
}
