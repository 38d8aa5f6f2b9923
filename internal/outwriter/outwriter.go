// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/cvsspop/internal/contract"
	"github.com/huangsam/cvsspop/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the commands.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScore prints a single evaluation using the configured output format.
func (ow *OutWriter) WriteScore(ev schema.Evaluation, cfg *contract.Config) error {
	return PrintScore(ev, cfg)
}

// WriteMetrics prints metric schemas using the configured output format.
func (ow *OutWriter) WriteMetrics(schemas []*schema.MetricSchema, cfg *contract.Config) error {
	return PrintMetrics(schemas, cfg)
}

// WriteState prints the persisted popup state using the configured output format.
func (ow *OutWriter) WriteState(report schema.StateReport, cfg *contract.Config) error {
	return PrintState(report, cfg)
}

// WriteHistory prints history entries using the configured output format.
func (ow *OutWriter) WriteHistory(entries []schema.HistoryEntry, cfg *contract.Config) error {
	return PrintHistory(entries, cfg)
}
