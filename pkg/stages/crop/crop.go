// Package crop implements the crop-and-resize stage.
package crop

import (
	"context"
	"fmt"
	"math"

	"github.com/user/bannerkit/pkg/pipeline"
	"github.com/user/bannerkit/pkg/ports"
	"github.com/user/bannerkit/pkg/raster"
)

// DefaultQuality matches the quality browsers use for lossy canvas output.
const DefaultQuality = 92

// Stage extracts a rectangle from a source image and resamples it to the
// output dimensions in a single blit, then encodes the result as JPEG.
type Stage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
	quality  int
}

// NewStage creates a new crop stage. A non-positive quality uses DefaultQuality.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger, quality int) *Stage {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("crop"),
		quality:  quality,
	}
}

// Execute crops input.Rect out of input.Source. Neither input is modified.
func (s *Stage) Execute(ctx context.Context, input pipeline.CropInput) (pipeline.CropResult, error) {
	result := pipeline.CropResult{}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	data, err := input.Source.Bytes()
	if err != nil {
		return result, fmt.Errorf("%w: %v", pipeline.ErrDecodeFailure, err)
	}
	src, format, err := s.renderer.DecodeImage(data)
	if err != nil {
		return result, fmt.Errorf("%w: %v", pipeline.ErrDecodeFailure, err)
	}
	if s.sink.Enabled() {
		s.sink.SaveSource(src)
	}

	bounds := src.Bounds()
	if !input.Rect.Within(bounds.Dx(), bounds.Dy()) {
		return result, fmt.Errorf("%w: %s in %dx%d", pipeline.ErrInvalidCrop, input.Rect, bounds.Dx(), bounds.Dy())
	}

	out := input.Output
	if out.IsZero() {
		out = pipeline.Dimension{Width: input.Rect.Width, Height: input.Rect.Height}
	}

	s.logger.Debug("Cropping %s from %dx%d %s to %dx%d",
		input.Rect, bounds.Dx(), bounds.Dy(), format.MIME(), out.Width, out.Height)

	region := input.Rect.Bounds().Add(bounds.Min)
	scaled := s.renderer.ScaleRegion(src, region, out.Width, out.Height)

	encoded, err := s.renderer.EncodeImage(scaled, ports.FormatJPEG, s.quality)
	if err != nil {
		return result, fmt.Errorf("%w: %v", pipeline.ErrEncodeFailure, err)
	}
	if len(encoded) == 0 {
		return result, fmt.Errorf("%w: empty output", pipeline.ErrEncodeFailure)
	}
	if s.sink.Enabled() {
		s.sink.SaveCropped(encoded)
	}

	result.Image = raster.FromBytes(encoded, ports.FormatJPEG.MIME(), out.Width, out.Height)
	s.logger.Debug("Cropped: %d bytes", len(encoded))
	return result, nil
}

// CenteredRect returns the largest rectangle of the given aspect ratio
// (width / height) centered in a srcWidth x srcHeight image.
func CenteredRect(srcWidth, srcHeight int, aspect float64) pipeline.Rectangle {
	if srcWidth <= 0 || srcHeight <= 0 {
		return pipeline.Rectangle{}
	}
	if aspect <= 0 {
		return pipeline.Rectangle{Width: srcWidth, Height: srcHeight}
	}

	w, h := srcWidth, int(math.Round(float64(srcWidth)/aspect))
	if h > srcHeight {
		w, h = int(math.Round(float64(srcHeight)*aspect)), srcHeight
	}
	w = max(1, min(w, srcWidth))
	h = max(1, min(h, srcHeight))

	return pipeline.Rectangle{
		X:      (srcWidth - w) / 2,
		Y:      (srcHeight - h) / 2,
		Width:  w,
		Height: h,
	}
}
