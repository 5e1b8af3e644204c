package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts raster operations: decoding, encoding, resampling and canvases.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas. A nil bg leaves the canvas transparent.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage decodes image data, detecting the format from its signature.
	DecodeImage(data []byte) (image.Image, ImageFormat, error)

	// EncodeImage encodes an image to the specified format.
	// quality is only used by lossy formats.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ScaleRegion copies src from img into a new width x height image,
	// resampling so the region fills the destination exactly.
	ScaleRegion(img image.Image, src image.Rectangle, width, height int) image.Image
}

// Canvas provides drawing operations for composing a banner.
type Canvas interface {
	// DrawImage draws an image at the specified position.
	DrawImage(img image.Image, x, y int)

	// DrawRect draws a filled rectangle.
	DrawRect(x, y, w, h int, c color.Color)

	// DrawRoundedRect draws a filled rounded rectangle.
	DrawRoundedRect(x, y, w, h, radius int, c color.Color)

	// DrawLinearGradient fills a rectangle with a gradient along its diagonal.
	DrawLinearGradient(x, y, w, h int, from, to color.Color)

	// DrawText draws text anchored at the specified position.
	DrawText(text string, x, y int, style TextStyle)

	// MeasureText returns the width and height of the text.
	MeasureText(text string, style TextStyle) (width, height float64)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize   float64
	FontFamily string // Family name from the font catalog, e.g. "Courier New"
	Color      color.Color
	Align      TextAlign
}

// TextAlign specifies text alignment.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatUnknown ImageFormat = iota
	FormatJPEG
	FormatPNG
	FormatGIF
	FormatWebP
	FormatBMP
)

// MIME returns the media type of the format.
func (f ImageFormat) MIME() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatGIF:
		return "image/gif"
	case FormatWebP:
		return "image/webp"
	case FormatBMP:
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}

// ParseImageFormat maps a decoder name as returned by image.Decode ("jpeg", "png", ...).
func ParseImageFormat(name string) ImageFormat {
	switch name {
	case "jpeg", "jpg":
		return FormatJPEG
	case "png":
		return FormatPNG
	case "gif":
		return FormatGIF
	case "webp":
		return FormatWebP
	case "bmp":
		return FormatBMP
	default:
		return FormatUnknown
	}
}
