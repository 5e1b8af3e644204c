package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/user/bannerkit/pkg/adapters/ggrenderer"
	"github.com/user/bannerkit/pkg/mocks"
	"github.com/user/bannerkit/pkg/pipeline"
	"github.com/user/bannerkit/pkg/ports"
	"github.com/user/bannerkit/pkg/stages/capture"
)

// cornerCapturer draws an opaque red scene with a transparent 16x16 top-left corner.
func cornerCapturer() *mocks.RegionCapturer {
	return &mocks.RegionCapturer{
		CaptureFunc: func(ctx context.Context, scene ports.Scene) (image.Image, error) {
			img := image.NewNRGBA(image.Rect(0, 0, scene.Width, scene.Height))
			for y := 0; y < scene.Height; y++ {
				for x := 0; x < scene.Width; x++ {
					if x < 16 && y < 16 {
						continue
					}
					img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 20, B: 20, A: 255})
				}
			}
			return img, nil
		},
	}
}

type fixture struct {
	stage     *Stage
	capturer  *mocks.RegionCapturer
	documents *mocks.DocumentWriter
	downloads *mocks.DownloadSink
}

func newFixture(capturer *mocks.RegionCapturer) fixture {
	logger := mocks.NewLogger()
	f := fixture{
		capturer:  capturer,
		documents: &mocks.DocumentWriter{},
		downloads: mocks.NewDownloadSink(),
	}
	captureStage := capture.NewStage(capturer, &mocks.NullSink{}, logger)
	f.stage = NewStage(captureStage, ggrenderer.New(), f.documents, f.downloads, logger, 0)
	return f
}

func TestStage_Execute_Lossless(t *testing.T) {
	f := newFixture(cornerCapturer())
	region := mocks.NewRegion(ports.Scene{Width: 40, Height: 30})

	result, err := f.stage.Execute(context.Background(), pipeline.ExportInput{Region: region, Format: pipeline.FormatRasterLossless})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Payload.Filename != "banner.png" || result.Payload.MIME != "image/png" {
		t.Errorf("payload = %s %s", result.Payload.Filename, result.Payload.MIME)
	}
	if result.Path != "mem://banner.png" {
		t.Errorf("Path = %q", result.Path)
	}

	decoded, err := png.Decode(bytes.NewReader(f.downloads.Files["banner.png"]))
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds().Dx() != 40 || decoded.Bounds().Dy() != 30 {
		t.Errorf("decoded %v", decoded.Bounds())
	}
	if _, _, _, a := decoded.At(0, 0).RGBA(); a != 0 {
		t.Error("lossless export should keep transparency")
	}
	if r, _, _, _ := decoded.At(20, 20).RGBA(); r>>8 != 200 {
		t.Errorf("lossless pixel changed: r=%d", r>>8)
	}
}

func TestStage_Execute_LossyIsOpaqueWithWhiteCorner(t *testing.T) {
	f := newFixture(cornerCapturer())
	region := mocks.NewRegion(ports.Scene{Width: 40, Height: 30})

	_, err := f.stage.Execute(context.Background(), pipeline.ExportInput{Region: region, Format: pipeline.FormatRasterLossy})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	decoded, err := jpeg.Decode(bytes.NewReader(f.downloads.Files["banner.jpeg"]))
	if err != nil {
		t.Fatal(err)
	}

	b := decoded.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := decoded.At(x, y).RGBA(); a != 0xffff {
				t.Fatalf("pixel %d,%d not opaque", x, y)
			}
		}
	}

	r, g, bl, _ := decoded.At(2, 2).RGBA()
	if r>>8 < 240 || g>>8 < 240 || bl>>8 < 240 {
		t.Errorf("corner = %d,%d,%d, want white", r>>8, g>>8, bl>>8)
	}
}

func TestStage_Execute_DocumentOrientation(t *testing.T) {
	tests := []struct {
		w, h int
		want ports.Orientation
	}{
		{300, 200, ports.OrientationLandscape},
		{200, 300, ports.OrientationPortrait},
		{250, 250, ports.OrientationPortrait},
		{711, 400, ports.OrientationLandscape},
	}

	for _, tt := range tests {
		f := newFixture(mocks.NewRegionCapturer())
		region := mocks.NewRegion(ports.Scene{Width: tt.w, Height: tt.h})

		result, err := f.stage.Execute(context.Background(), pipeline.ExportInput{Region: region, Format: pipeline.FormatDocument})
		if err != nil {
			t.Fatalf("%dx%d: %v", tt.w, tt.h, err)
		}

		if result.Payload.Orientation != tt.want {
			t.Errorf("%dx%d: orientation %s, want %s", tt.w, tt.h, result.Payload.Orientation, tt.want)
		}
		call := f.documents.Calls[0]
		if call.Width != tt.w || call.Height != tt.h || call.Orientation != tt.want {
			t.Errorf("%dx%d: SinglePage(%d, %d, %s)", tt.w, tt.h, call.Width, call.Height, call.Orientation)
		}
		if _, ok := f.downloads.Files["banner.pdf"]; !ok {
			t.Error("banner.pdf not downloaded")
		}
	}
}

func TestStage_Execute_RecapturesEveryTime(t *testing.T) {
	f := newFixture(mocks.NewRegionCapturer())
	region := mocks.NewRegion(ports.Scene{Width: 10, Height: 10})
	ctx := context.Background()

	f.stage.Execute(ctx, pipeline.ExportInput{Region: region, Format: pipeline.FormatRasterLossless})
	region.Set(ports.Scene{Width: 20, Height: 5})
	result, err := f.stage.Execute(ctx, pipeline.ExportInput{Region: region, Format: pipeline.FormatRasterLossless})
	if err != nil {
		t.Fatal(err)
	}

	if f.capturer.Calls() != 2 {
		t.Errorf("captures = %d, want 2", f.capturer.Calls())
	}
	if result.Payload.Width != 20 || result.Payload.Height != 5 {
		t.Errorf("export used stale bitmap: %dx%d", result.Payload.Width, result.Payload.Height)
	}
}

func TestStage_Execute_Unavailable(t *testing.T) {
	f := newFixture(mocks.NewRegionCapturer())
	region := mocks.NewRegion(ports.Scene{Width: 10, Height: 10})
	region.Detach()

	_, err := f.stage.Execute(context.Background(), pipeline.ExportInput{Region: region, Format: pipeline.FormatRasterLossless})
	if !errors.Is(err, pipeline.ErrCaptureUnavailable) {
		t.Errorf("err = %v", err)
	}
	if len(f.downloads.Order) != 0 {
		t.Error("nothing should be downloaded")
	}
}

func TestStage_Execute_Errors(t *testing.T) {
	region := mocks.NewRegion(ports.Scene{Width: 10, Height: 10})

	t.Run("unknown format", func(t *testing.T) {
		f := newFixture(mocks.NewRegionCapturer())
		_, err := f.stage.Execute(context.Background(), pipeline.ExportInput{Region: region, Format: "svg"})
		if !errors.Is(err, pipeline.ErrUnknownFormat) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("document writer fails", func(t *testing.T) {
		f := newFixture(mocks.NewRegionCapturer())
		f.documents.SinglePageFunc = func([]byte, int, int, ports.Orientation) ([]byte, error) {
			return nil, errors.New("page too large")
		}
		_, err := f.stage.Execute(context.Background(), pipeline.ExportInput{Region: region, Format: pipeline.FormatDocument})
		if !errors.Is(err, pipeline.ErrEncodeFailure) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("download fails", func(t *testing.T) {
		f := newFixture(mocks.NewRegionCapturer())
		disk := errors.New("disk full")
		f.downloads.DownloadFunc = func(string, []byte) (string, error) { return "", disk }
		_, err := f.stage.Execute(context.Background(), pipeline.ExportInput{Region: region, Format: pipeline.FormatRasterLossy})
		if !errors.Is(err, disk) {
			t.Errorf("err = %v", err)
		}
	})
}

func TestFlatten(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 9, 9))
	img.SetNRGBA(6, 6, color.NRGBA{B: 255, A: 128})

	flat := Flatten(img)
	if flat.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("bounds = %v", flat.Bounds())
	}
	if got := flat.NRGBAAt(0, 0); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("transparent pixel = %v, want white", got)
	}
	got := flat.NRGBAAt(1, 1)
	if got.A != 255 || got.B != 255 || got.R > 130 || got.R < 125 {
		t.Errorf("half blue pixel = %v", got)
	}
}
