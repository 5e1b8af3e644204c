// Package orchestrator runs the user actions of the banner widget: upload,
// crop, remove image, preview and export.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/user/bannerkit/pkg/composition"
	"github.com/user/bannerkit/pkg/pipeline"
	"github.com/user/bannerkit/pkg/ports"
	"github.com/user/bannerkit/pkg/preview"
	"github.com/user/bannerkit/pkg/raster"
	"github.com/user/bannerkit/pkg/stages/crop"
	"github.com/user/bannerkit/pkg/summarizer"
)

// ErrNoImage is returned by Crop when there is no image to crop from.
var ErrNoImage = errors.New("orchestrator: no background image")

// CaptureScale is the fixed device scale of every capture.
const CaptureScale = 1.0

// Options describe the environment for summaries.
type Options struct {
	CaptureBackend string
}

// Orchestrator wires the composition store, the visual region and the stages.
type Orchestrator struct {
	store     *composition.Store
	region    ports.Region
	kv        ports.KeyValueStore
	fs        ports.FileSystem
	cropStage pipeline.Stage[pipeline.CropInput, pipeline.CropResult]
	export    pipeline.Stage[pipeline.ExportInput, pipeline.ExportResult]
	previewer *preview.Previewer
	sink      ports.DebugSink
	logger    ports.Logger
	opts      Options
}

func New(
	store *composition.Store,
	region ports.Region,
	kv ports.KeyValueStore,
	fs ports.FileSystem,
	cropStage pipeline.Stage[pipeline.CropInput, pipeline.CropResult],
	export pipeline.Stage[pipeline.ExportInput, pipeline.ExportResult],
	previewer *preview.Previewer,
	sink ports.DebugSink,
	logger ports.Logger,
	opts Options,
) *Orchestrator {
	return &Orchestrator{
		store:     store,
		region:    region,
		kv:        kv,
		fs:        fs,
		cropStage: cropStage,
		export:    export,
		previewer: previewer,
		sink:      sink,
		logger:    logger,
		opts:      opts,
	}
}

// Store returns the composition store the orchestrator mutates.
func (o *Orchestrator) Store() *composition.Store {
	return o.store
}

// UploadOptions control the crop that follows an upload.
type UploadOptions struct {
	Rect     *pipeline.Rectangle // Nil selects the centered rectangle of the preset aspect
	SkipCrop bool                // Keep the uploaded image as is
}

// Upload reads an image file, shows it as the background and keeps it as the
// re-crop source. Unless opts.SkipCrop is set it is cropped right away.
func (o *Orchestrator) Upload(ctx context.Context, path string, opts UploadOptions) (raster.Image, error) {
	o.logger.Info("Uploading %s", path)

	img, err := raster.FromFile(o.fs, path)
	if err != nil {
		o.logger.Error("Upload failed: %v", err)
		return raster.Image{}, fmt.Errorf("upload %s: %w", path, err)
	}

	if _, err := o.store.SetField(ctx, composition.FieldBackgroundImage, img); err != nil {
		o.logger.Error("Upload failed: %v", err)
		return raster.Image{}, fmt.Errorf("upload %s: %w", path, err)
	}
	o.saveOriginal(ctx, img)
	o.logger.Info("Uploaded %s (%dx%d)", img.MIME(), img.Width, img.Height)

	if opts.SkipCrop {
		return img, nil
	}
	return o.Crop(ctx, opts.Rect)
}

// Crop re-crops the retained original (or the current background image) to
// the output dimensions of the selected size. rect nil selects the centered
// rectangle of the preset aspect. The result replaces the background image and
// becomes the next re-crop source only after the crop succeeded.
func (o *Orchestrator) Crop(ctx context.Context, rect *pipeline.Rectangle) (raster.Image, error) {
	source, err := o.cropSource(ctx)
	if err != nil {
		return raster.Image{}, err
	}

	state := o.store.Snapshot()
	width, height := state.BannerSize.OutputDimensions()

	r := crop.CenteredRect(source.Width, source.Height, float64(width)/float64(height))
	if rect != nil {
		r = *rect
	}

	o.logger.Info("Cropping %s to %dx%d", r, width, height)
	result, err := o.cropStage.Execute(ctx, pipeline.CropInput{
		Source: source,
		Rect:   r,
		Output: pipeline.Dimension{Width: width, Height: height},
	})
	if err != nil {
		o.logger.Error("Crop failed: %v", err)
		return raster.Image{}, fmt.Errorf("crop stage: %w", err)
	}

	if _, err := o.store.SetField(ctx, composition.FieldBackgroundImage, result.Image); err != nil {
		return raster.Image{}, fmt.Errorf("apply crop: %w", err)
	}
	o.saveOriginal(ctx, result.Image)
	o.logger.Info("Background image set: %dx%d", result.Image.Width, result.Image.Height)
	return result.Image, nil
}

func (o *Orchestrator) cropSource(ctx context.Context) (raster.Image, error) {
	source, ok, err := composition.LoadOriginal(ctx, o.kv)
	if err != nil {
		o.logger.Warn("Failed to read original image: %v", err)
	}
	if !ok {
		source = o.store.Snapshot().BackgroundImage
	}
	if source.IsZero() {
		return raster.Image{}, ErrNoImage
	}
	if source.Width <= 0 || source.Height <= 0 {
		return raster.Image{}, fmt.Errorf("%w: unreadable %s header", pipeline.ErrDecodeFailure, source.MIME())
	}
	return source, nil
}

// RemoveImage clears the background image and the re-crop source. The
// background color becomes visible again.
func (o *Orchestrator) RemoveImage(ctx context.Context) error {
	if _, err := o.store.SetField(ctx, composition.FieldBackgroundImage, nil); err != nil {
		return err
	}
	o.saveOriginal(ctx, raster.Image{})
	o.logger.Info("Background image removed")
	return nil
}

func (o *Orchestrator) saveOriginal(ctx context.Context, img raster.Image) {
	if err := composition.SaveOriginal(ctx, o.kv, img); err != nil {
		o.logger.Warn("Failed to save original image: %v", err)
	}
}

// Preview opens a fresh preview of the region. While the region is not yet
// attached the preview stays loading and pipeline.ErrCaptureUnavailable is
// returned.
func (o *Orchestrator) Preview(ctx context.Context) (preview.Snapshot, error) {
	o.saveSettings()

	snap, err := o.previewer.Open(ctx, o.region)
	if err != nil {
		if errors.Is(err, pipeline.ErrCaptureUnavailable) {
			o.logger.Warn("Preview not yet available")
		} else {
			o.logger.Error("Preview failed: %v", err)
		}
		return preview.Snapshot{}, err
	}
	o.logger.Info("Preview ready: %dx%d", snap.Image.Width, snap.Image.Height)
	return snap, nil
}

// ClosePreview discards the preview snapshot.
func (o *Orchestrator) ClosePreview() {
	o.previewer.Close()
}

// Export re-captures the region and downloads it in format.
func (o *Orchestrator) Export(ctx context.Context, format pipeline.Format) (ExportOutcome, error) {
	o.logger.Info("Exporting %s", format.Filename())
	o.saveSettings()

	state := o.store.Snapshot()
	result, err := o.export.Execute(ctx, pipeline.ExportInput{Region: o.region, Format: format})
	if err != nil {
		o.logger.Error("Export failed: %v", err)
		return ExportOutcome{}, fmt.Errorf("export stage: %w", err)
	}
	o.logger.Info("Output saved to %s", result.Path)

	return ExportOutcome{
		Result:   result,
		Format:   format,
		State:    state,
		DarkMode: o.store.DarkMode(),
	}, nil
}

func (o *Orchestrator) saveSettings() {
	if !o.sink.Enabled() {
		return
	}
	if data, err := json.MarshalIndent(o.store.Snapshot(), "", "  "); err == nil {
		o.sink.SaveSettingsJSON(data)
	}
}

// ExportOutcome is an export plus the composition it was rendered from.
type ExportOutcome struct {
	Result   pipeline.ExportResult
	Format   pipeline.Format
	State    composition.State
	DarkMode bool
}

// Summary builds the export report.
func (o *Orchestrator) Summary(out ExportOutcome) *summarizer.Summary {
	banner := summarizer.BannerInfo{
		Text:       out.State.BannerText,
		Font:       out.State.Font.Label,
		Animation:  out.State.Animation.Label,
		Background: out.State.BackgroundColor,
		Filter:     out.State.Filter.Value,
		Opacity:    out.State.Opacity,
		SizeLabel:  out.State.BannerSize.Label,
		DarkMode:   out.DarkMode,
	}
	if bg := out.State.EffectiveBackground(); !bg.Image.IsZero() {
		banner.Background = "image"
		banner.ImageWidth = bg.Image.Width
		banner.ImageHeight = bg.Image.Height
	}

	p := out.Result.Payload
	return summarizer.NewBuilder().
		WithBanner(banner).
		WithCapture(o.opts.CaptureBackend, CaptureScale).
		WithExport(summarizer.ExportInfo{
			Format:      string(out.Format),
			Filename:    p.Filename,
			Path:        out.Result.Path,
			MIME:        p.MIME,
			FileSize:    int64(len(p.Data)),
			Width:       p.Width,
			Height:      p.Height,
			Orientation: string(p.Orientation),
		}).
		Build()
}
