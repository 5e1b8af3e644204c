package ports

import (
	"context"
	"image"
	"image/color"
)

// Scene is everything a visual region currently displays, already resolved
// from the composition record. Capturers rasterize a Scene; they never look
// at the composition record itself.
type Scene struct {
	Width  int
	Height int

	// BackgroundColor is nil when no color is set; renderers then fall back to
	// the default gradient.
	BackgroundColor    color.Color
	BackgroundCSS      string
	BackgroundImage    image.Image // nil when absent or undecodable
	BackgroundImageURI string      // data URI, empty when no image is set

	Filter string // CSS filter expression, "none" or empty for no filter

	Text         string
	FontFamily   string
	FontSize     float64
	TextColor    color.Color
	TextColorCSS string
	Opacity      float64
	Animation    string
	DarkMode     bool
}

// HasImage reports whether the scene shows a background image.
// The color is ignored while an image is set, even if the image is unreadable.
func (s Scene) HasImage() bool {
	return s.BackgroundImageURI != ""
}

// Region is a handle to a live visual region.
type Region interface {
	// Scene returns what the region currently displays.
	// ok is false while the region is not attached.
	Scene() (scene Scene, ok bool)
}

// RegionCapturer rasterizes a scene into a bitmap at one output pixel per
// logical pixel.
type RegionCapturer interface {
	Capture(ctx context.Context, scene Scene) (image.Image, error)
}

// BrowserOptions configures the headless browser used for HTML capture.
type BrowserOptions struct {
	Headless   bool
	ChromePath string
	NoSandbox  bool // Required when running as root in containers
}
