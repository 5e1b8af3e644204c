package canvascapture

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// ErrUnsupportedFilter is returned for CSS filter functions that cannot be emulated.
var ErrUnsupportedFilter = errors.New("canvascapture: unsupported filter")

// ApplyFilter emulates a single CSS filter function on img.
// "none" and "" return img unchanged.
func ApplyFilter(img image.Image, expr string) (image.Image, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || expr == "none" {
		return img, nil
	}

	name, arg, err := parseFilter(expr)
	if err != nil {
		return img, err
	}

	switch name {
	case "grayscale":
		return mix(img, keepAlpha(effect.Grayscale(img), img), arg), nil
	case "sepia":
		return mix(img, effect.Sepia(img), arg), nil
	case "blur":
		if arg <= 0 {
			return img, nil
		}
		return blur.Gaussian(img, arg), nil
	case "brightness":
		// CSS multiplies each channel; bild takes the relative change.
		return adjust.Brightness(img, arg-1), nil
	default:
		return img, fmt.Errorf("%w: %q", ErrUnsupportedFilter, expr)
	}
}

// parseFilter splits "name(arg)" and normalizes the argument: percentages
// become fractions, "px" is dropped.
func parseFilter(expr string) (string, float64, error) {
	open := strings.IndexByte(expr, '(')
	if open <= 0 || !strings.HasSuffix(expr, ")") {
		return "", 0, fmt.Errorf("%w: %q", ErrUnsupportedFilter, expr)
	}
	name := strings.TrimSpace(expr[:open])
	raw := strings.TrimSpace(expr[open+1 : len(expr)-1])

	scale := 1.0
	switch {
	case strings.HasSuffix(raw, "%"):
		raw = strings.TrimSuffix(raw, "%")
		scale = 0.01
	case strings.HasSuffix(raw, "px"):
		raw = strings.TrimSuffix(raw, "px")
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrUnsupportedFilter, expr)
	}
	return name, v * scale, nil
}

// mix blends filtered over original by amount in [0, 1].
func mix(original, filtered image.Image, amount float64) image.Image {
	if amount >= 1 {
		return filtered
	}
	if amount <= 0 {
		return original
	}
	return imaging.Overlay(imaging.Clone(original), filtered, image.Point{}, amount)
}

// keepAlpha copies the alpha channel of src onto gray, which has none.
func keepAlpha(gray image.Image, src image.Image) *image.NRGBA {
	out := imaging.Clone(gray)
	alpha := imaging.Clone(src)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = alpha.Pix[i]
	}
	return out
}
