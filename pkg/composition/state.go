package composition

import (
	"fmt"

	"github.com/user/bannerkit/pkg/raster"
)

// DefaultText is the banner text of a fresh composition.
const DefaultText = "Exploring new places is my passion!"

// Opacity range of the text.
const (
	OpacityMin  = 0.1
	OpacityMax  = 1.0
	OpacityStep = 0.1
)

// State is the banner composition record.
// BackgroundColor is kept while BackgroundImage is set, but only the image is rendered.
type State struct {
	BannerText      string       `json:"bannerText"`
	Font            Option       `json:"font"`
	Animation       Option       `json:"animation"`
	BackgroundColor string       `json:"bgColor"`
	BackgroundImage raster.Image `json:"bgImage"`
	Opacity         float64      `json:"opacity"`
	Filter          Option       `json:"filter"`
	BannerSize      BannerSize   `json:"bannerSize"`
}

// Defaults returns the composition of a first session.
func Defaults() State {
	return State{
		BannerText:      DefaultText,
		Font:            Fonts[0],
		Animation:       Animations[0],
		BackgroundColor: "#ffffff",
		Opacity:         1,
		Filter:          Filters[0],
		// The stored default differs from the "vertical" preset's height.
		BannerSize: BannerSize{Value: "vertical", Label: "Vertical (600px)", Height: 600, Aspect: 9.0 / 16},
	}
}

// Background names what is visible behind the text.
type Background struct {
	Image raster.Image // Set when an image is shown
	Color string       // Set when no image is shown; empty means the default gradient
}

// EffectiveBackground resolves the image-over-color precedence.
func (s State) EffectiveBackground() Background {
	if !s.BackgroundImage.IsZero() {
		return Background{Image: s.BackgroundImage}
	}
	return Background{Color: s.BackgroundColor}
}

// Field names one member of State.
type Field string

const (
	FieldBannerText      Field = "bannerText"
	FieldFont            Field = "font"
	FieldAnimation       Field = "animation"
	FieldBackgroundColor Field = "bgColor"
	FieldBackgroundImage Field = "bgImage"
	FieldOpacity         Field = "opacity"
	FieldFilter          Field = "filter"
	FieldBannerSize      Field = "bannerSize"
)

// Fields lists every field in record order.
var Fields = []Field{
	FieldBannerText,
	FieldFont,
	FieldAnimation,
	FieldBackgroundColor,
	FieldBackgroundImage,
	FieldOpacity,
	FieldFilter,
	FieldBannerSize,
}

// ParseField maps a record key to a Field.
func ParseField(key string) (Field, error) {
	for _, f := range Fields {
		if string(f) == key {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, key)
}

// Get returns the current value of a field.
func (s State) Get(field Field) (any, error) {
	switch field {
	case FieldBannerText:
		return s.BannerText, nil
	case FieldFont:
		return s.Font, nil
	case FieldAnimation:
		return s.Animation, nil
	case FieldBackgroundColor:
		return s.BackgroundColor, nil
	case FieldBackgroundImage:
		return s.BackgroundImage, nil
	case FieldOpacity:
		return s.Opacity, nil
	case FieldFilter:
		return s.Filter, nil
	case FieldBannerSize:
		return s.BannerSize, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}
