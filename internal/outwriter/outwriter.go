// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/pynyc/tripmap/internal/contract"
	"github.com/pynyc/tripmap/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the commands.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSurface prints a composed map using the configured output format.
func (ow *OutWriter) WriteSurface(res schema.SurfaceResult, cfg *contract.Config) error {
	return WriteSurfaceResult(res, cfg)
}

// WriteQuery prints a backend query string and the window it encodes.
func (ow *OutWriter) WriteQuery(query string, w schema.TimeWindow, cfg *contract.Config) error {
	return WriteQueryResult(query, w, cfg)
}
