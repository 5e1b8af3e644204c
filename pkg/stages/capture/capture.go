// Package capture implements the region capture stage.
package capture

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/disintegration/imaging"

	"github.com/user/bannerkit/pkg/pipeline"
	"github.com/user/bannerkit/pkg/ports"
)

// Stage rasterizes the current appearance of a region into a lossless bitmap
// at one pixel per logical pixel. It never modifies the region.
type Stage struct {
	capturer ports.RegionCapturer
	sink     ports.DebugSink
	logger   ports.Logger
	captures atomic.Int64
}

// NewStage creates a new capture stage.
func NewStage(capturer ports.RegionCapturer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		capturer: capturer,
		sink:     sink,
		logger:   logger.WithComponent("capture"),
	}
}

// Execute captures the region. An empty or unattached region yields
// pipeline.ErrCaptureUnavailable.
func (s *Stage) Execute(ctx context.Context, input pipeline.CaptureInput) (pipeline.CaptureResult, error) {
	result := pipeline.CaptureResult{}

	if input.Region == nil {
		return result, pipeline.ErrCaptureUnavailable
	}
	scene, ok := input.Region.Scene()
	if !ok {
		return result, pipeline.ErrCaptureUnavailable
	}

	s.logger.Debug("Capturing %dx%d region", scene.Width, scene.Height)

	img, err := s.capturer.Capture(ctx, scene)
	if err != nil {
		return result, fmt.Errorf("capture region: %w", err)
	}
	if img == nil || img.Bounds().Empty() {
		return result, fmt.Errorf("%w: empty capture", pipeline.ErrEncodeFailure)
	}

	// Clone also moves the origin to 0,0.
	bitmap := imaging.Clone(img)

	index := int(s.captures.Add(1)) - 1
	if s.sink.Enabled() {
		s.sink.SaveCapture(index, bitmap)
	}

	result.Bitmap = bitmap
	result.Scene = scene
	s.logger.Debug("Captured: %dx%d", bitmap.Bounds().Dx(), bitmap.Bounds().Dy())
	return result, nil
}
