package mocks

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/user/bannerkit/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	DecodeImageFunc  func(data []byte) (image.Image, ports.ImageFormat, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ScaleRegionFunc  func(img image.Image, src image.Rectangle, width, height int) image.Image

	// Track calls for assertions
	EncodeCalls []struct {
		Format  ports.ImageFormat
		Quality int
		Bounds  image.Rectangle
	}
	ScaleCalls []struct {
		Src           image.Rectangle
		Width, Height int
	}
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	return NewCanvas(width, height, bg)
}

func (m *Renderer) DecodeImage(data []byte) (image.Image, ports.ImageFormat, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), ports.FormatPNG, nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	m.EncodeCalls = append(m.EncodeCalls, struct {
		Format  ports.ImageFormat
		Quality int
		Bounds  image.Rectangle
	}{format, quality, img.Bounds()})
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{0x01}, nil
}

func (m *Renderer) ScaleRegion(img image.Image, src image.Rectangle, width, height int) image.Image {
	m.ScaleCalls = append(m.ScaleCalls, struct {
		Src           image.Rectangle
		Width, Height int
	}{src, width, height})
	if m.ScaleRegionFunc != nil {
		return m.ScaleRegionFunc(img, src, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas backed by a plain RGBA
// image. Rectangles are filled for real; everything else is only recorded.
type Canvas struct {
	img *image.RGBA

	Texts     []string
	Images    int
	Gradients int
}

// NewCanvas creates a canvas filled with bg, or transparent when bg is nil.
func NewCanvas(width, height int, bg color.Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if bg != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	return &Canvas{img: img}
}

func (m *Canvas) DrawImage(img image.Image, x, y int) { m.Images++ }

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {
	draw.Draw(m.img, image.Rect(x, y, x+w, y+h), image.NewUniform(c), image.Point{}, draw.Over)
}

func (m *Canvas) DrawRoundedRect(x, y, w, h, radius int, c color.Color) {
	m.DrawRect(x, y, w, h, c)
}

func (m *Canvas) DrawLinearGradient(x, y, w, h int, from, to color.Color) { m.Gradients++ }

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	m.Texts = append(m.Texts, text)
}

func (m *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	return float64(len(text)) * style.FontSize * 0.5, style.FontSize
}

func (m *Canvas) ToImage() image.Image {
	return m.img
}

var _ ports.Canvas = (*Canvas)(nil)
