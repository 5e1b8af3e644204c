package pipeline

import (
	"fmt"
	"image"

	"github.com/user/bannerkit/pkg/ports"
	"github.com/user/bannerkit/pkg/raster"
)

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents width and height.
type Dimension struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// IsZero reports whether either side is unset.
func (d Dimension) IsZero() bool {
	return d.Width <= 0 || d.Height <= 0
}

// Rectangle represents a rectangular area in source pixel space.
type Rectangle struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Bounds converts the rectangle to an image.Rectangle.
func (r Rectangle) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Within reports whether the rectangle is non-empty, non-negative and lies
// inside a width x height source.
func (r Rectangle) Within(width, height int) bool {
	if r.X < 0 || r.Y < 0 || r.Width <= 0 || r.Height <= 0 {
		return false
	}
	return r.X+r.Width <= width && r.Y+r.Height <= height
}

// String formats the rectangle as x,y,wxh.
func (r Rectangle) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}

// =============================================================================
// Crop Stage Types
// =============================================================================

// CropInput contains the source image and the region to extract.
type CropInput struct {
	Source raster.Image
	Rect   Rectangle
	Output Dimension // Zero falls back to the rectangle's own size
}

// CropResult contains the lossy encoded crop.
type CropResult struct {
	Image raster.Image
}

// =============================================================================
// Capture Stage Types
// =============================================================================

// CaptureInput names the region to rasterize.
type CaptureInput struct {
	Region ports.Region
}

// CaptureResult contains the lossless intermediate bitmap.
type CaptureResult struct {
	Bitmap *image.NRGBA
	Scene  ports.Scene
}

// =============================================================================
// Export Stage Types
// =============================================================================

// Format is an export format.
type Format string

const (
	FormatRasterLossless Format = "raster-lossless"
	FormatRasterLossy    Format = "raster-lossy"
	FormatDocument       Format = "document"
)

// ParseFormat accepts the format names and their file extensions.
func ParseFormat(s string) (Format, error) {
	switch s {
	case string(FormatRasterLossless), "png":
		return FormatRasterLossless, nil
	case string(FormatRasterLossy), "jpeg", "jpg":
		return FormatRasterLossy, nil
	case string(FormatDocument), "pdf":
		return FormatDocument, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Filename returns the download name for the format.
func (f Format) Filename() string {
	switch f {
	case FormatRasterLossless:
		return "banner.png"
	case FormatRasterLossy:
		return "banner.jpeg"
	case FormatDocument:
		return "banner.pdf"
	default:
		return "banner"
	}
}

// MIME returns the media type of the exported artifact.
func (f Format) MIME() string {
	switch f {
	case FormatRasterLossless:
		return "image/png"
	case FormatRasterLossy:
		return "image/jpeg"
	case FormatDocument:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// ExportInput names the region and the format to export.
type ExportInput struct {
	Region ports.Region
	Format Format
}

// Payload is a downloadable artifact.
type Payload struct {
	Filename    string
	MIME        string
	Data        []byte
	Width       int
	Height      int
	Orientation ports.Orientation // Set for documents only
}

// ExportResult contains the payload and where the download surface put it.
type ExportResult struct {
	Payload Payload
	Path    string
}
