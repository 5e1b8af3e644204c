// Package composition holds the banner composition record, its option
// catalogs and the single mutation entry point observers subscribe to.
package composition

import "math"

// Option is one entry of a selectable catalog.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func plain(values ...string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Value: v, Label: v}
	}
	return opts
}

var (
	// Fonts lists the selectable font families.
	Fonts = plain("Arial", "Courier New", "Georgia", "Times New Roman", "Verdana")

	// Animations lists the named animation variants.
	Animations = plain("none", "fade", "bounce", "typewriter")

	// Filters lists CSS filter expressions applied to the banner.
	Filters = []Option{
		{Value: "none", Label: "None"},
		{Value: "grayscale(100%)", Label: "Grayscale"},
		{Value: "sepia(100%)", Label: "Sepia"},
		{Value: "blur(5px)", Label: "Blur"},
		{Value: "brightness(1.5)", Label: "Brightness"},
	}
)

// BannerSize is a size preset. Width is derived from Height and Aspect.
type BannerSize struct {
	Value  string  `json:"value"`
	Label  string  `json:"label"`
	Height int     `json:"height"`
	Aspect float64 `json:"aspect"`
}

// BannerSizes lists the size presets.
var BannerSizes = []BannerSize{
	{Value: "small", Label: "Small (300px)", Height: 300, Aspect: 16.0 / 9},
	{Value: "medium", Label: "Medium (400px)", Height: 400, Aspect: 16.0 / 9},
	{Value: "large", Label: "Large (500px)", Height: 500, Aspect: 16.0 / 9},
	{Value: "vertical", Label: "Vertical (600px)", Height: 850, Aspect: 9.0 / 16},
	{Value: "xlarge", Label: "Extra Large (800px)", Height: 800, Aspect: 16.0 / 9},
	{Value: "square", Label: "Square (400px)", Height: 400, Aspect: 1},
}

const (
	fallbackHeight = 400
	fallbackAspect = 16.0 / 9
)

// OutputDimensions returns the pixel size a cropped background is resampled to.
// Unset height or aspect fall back to 400px at 16:9.
func (b BannerSize) OutputDimensions() (width, height int) {
	height = b.Height
	if height <= 0 {
		height = fallbackHeight
	}
	aspect := b.Aspect
	if aspect <= 0 {
		aspect = fallbackAspect
	}
	return int(math.Round(float64(height) * aspect)), height
}

// Option returns the preset as a catalog entry.
func (b BannerSize) Option() Option {
	return Option{Value: b.Value, Label: b.Label}
}

// LookupOption finds value in catalog.
func LookupOption(catalog []Option, value string) (Option, bool) {
	for _, o := range catalog {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// LookupSize finds a size preset by value.
func LookupSize(value string) (BannerSize, bool) {
	for _, s := range BannerSizes {
		if s.Value == value {
			return s, true
		}
	}
	return BannerSize{}, false
}

// SizeOptions returns the size presets as catalog entries.
func SizeOptions() []Option {
	opts := make([]Option, len(BannerSizes))
	for i, s := range BannerSizes {
		opts[i] = s.Option()
	}
	return opts
}
