// Package export implements the export stage: capture, encode, download.
package export

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/user/bannerkit/pkg/pipeline"
	"github.com/user/bannerkit/pkg/ports"
)

// Stage re-captures the region on every call and hands the encoded artifact
// to the download surface.
type Stage struct {
	capture   pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult]
	renderer  ports.Renderer
	documents ports.DocumentWriter
	downloads ports.DownloadSink
	logger    ports.Logger
	quality   int
}

// NewStage creates a new export stage.
func NewStage(
	capture pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult],
	renderer ports.Renderer,
	documents ports.DocumentWriter,
	downloads ports.DownloadSink,
	logger ports.Logger,
	quality int,
) *Stage {
	if quality <= 0 || quality > 100 {
		quality = 92
	}
	return &Stage{
		capture:   capture,
		renderer:  renderer,
		documents: documents,
		downloads: downloads,
		logger:    logger.WithComponent("export"),
		quality:   quality,
	}
}

// Execute captures the region as it is now, encodes it and downloads it.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExportInput) (pipeline.ExportResult, error) {
	result := pipeline.ExportResult{}

	captured, err := s.capture.Execute(ctx, pipeline.CaptureInput{Region: input.Region})
	if err != nil {
		return result, err
	}

	payload, err := s.Encode(captured.Bitmap, input.Format)
	if err != nil {
		return result, err
	}

	path, err := s.downloads.Download(payload.Filename, payload.Data)
	if err != nil {
		return result, fmt.Errorf("download %s: %w", payload.Filename, err)
	}

	result.Payload = payload
	result.Path = path
	s.logger.Debug("Exported %s (%d bytes)", payload.Filename, len(payload.Data))
	return result, nil
}

// Encode turns a captured bitmap into a downloadable payload.
func (s *Stage) Encode(bitmap image.Image, format pipeline.Format) (pipeline.Payload, error) {
	bounds := bitmap.Bounds()
	payload := pipeline.Payload{
		Filename: format.Filename(),
		MIME:     format.MIME(),
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case pipeline.FormatRasterLossless:
		data, err = s.renderer.EncodeImage(bitmap, ports.FormatPNG, 0)

	case pipeline.FormatRasterLossy:
		data, err = s.renderer.EncodeImage(Flatten(bitmap), ports.FormatJPEG, s.quality)

	case pipeline.FormatDocument:
		payload.Orientation = ports.OrientationFor(payload.Width, payload.Height)
		var png []byte
		png, err = s.renderer.EncodeImage(bitmap, ports.FormatPNG, 0)
		if err == nil {
			data, err = s.documents.SinglePage(png, payload.Width, payload.Height, payload.Orientation)
		}

	default:
		return payload, fmt.Errorf("%w: %q", pipeline.ErrUnknownFormat, format)
	}

	if err != nil {
		return payload, fmt.Errorf("%w: %s: %v", pipeline.ErrEncodeFailure, format, err)
	}
	if len(data) == 0 {
		return payload, fmt.Errorf("%w: %s: empty output", pipeline.ErrEncodeFailure, format)
	}

	payload.Data = data
	return payload, nil
}

// Flatten composites img onto an opaque white background of the same size.
func Flatten(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	bg := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(bg, imaging.Clone(img), image.Point{}, 1.0)
}
