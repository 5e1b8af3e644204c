// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/bannerkit/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool { return false }

func (s *Sink) SaveSource(img image.Image) error             { return nil }
func (s *Sink) SaveCropped(data []byte) error                { return nil }
func (s *Sink) SaveCapture(index int, img image.Image) error { return nil }
func (s *Sink) SaveSettingsJSON(data []byte) error           { return nil }

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
