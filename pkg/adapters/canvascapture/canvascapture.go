// Package canvascapture rasterizes banner scenes natively on a gg canvas,
// emulating the banner's CSS: cover-fit background image, 30% dark overlay
// on color banners, a translucent rounded text pill and CSS filters.
package canvascapture

import (
	"context"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/user/bannerkit/pkg/ports"
)

// Banner styling.
const (
	overlayAlpha = 77  // 30% black over color banners
	pillAlpha    = 128 // 50% black behind the text
	pillPadding  = 24
	pillRadius   = 8
	lineHeight   = 1.2
	maxTextRatio = 0.9 // text wraps at 90% of the banner width
)

var (
	gradientFrom = color.RGBA{0x66, 0x7e, 0xea, 0xff}
	gradientTo   = color.RGBA{0x76, 0x4b, 0xa2, 0xff}
)

// Capturer implements ports.RegionCapturer without a browser.
type Capturer struct {
	renderer ports.Renderer
	logger   ports.Logger
}

// New creates a canvas capturer drawing through renderer.
func New(renderer ports.Renderer, logger ports.Logger) *Capturer {
	return &Capturer{
		renderer: renderer,
		logger:   logger.WithComponent("canvascapture"),
	}
}

// Ensure Capturer implements ports.RegionCapturer
var _ ports.RegionCapturer = (*Capturer)(nil)

// Capture draws scene at one pixel per logical pixel. A background image that
// could not be decoded is skipped; the rest of the scene is still drawn.
// Animations are drawn at rest.
func (c *Capturer) Capture(ctx context.Context, scene ports.Scene) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var base image.Image
	if scene.HasImage() {
		base = c.imageBackground(scene)
	} else {
		base = c.colorBackground(scene)
	}

	out := imaging.Overlay(imaging.Clone(base), c.textLayer(scene), image.Point{}, clampOpacity(scene.Opacity))

	if !scene.HasImage() {
		// The filter covers the whole color banner, text included.
		out = c.filter(out, scene.Filter)
	}
	return out, nil
}

func (c *Capturer) colorBackground(scene ports.Scene) image.Image {
	canvas := c.renderer.CreateCanvas(scene.Width, scene.Height, scene.BackgroundColor)
	if scene.BackgroundColor == nil {
		canvas.DrawLinearGradient(0, 0, scene.Width, scene.Height, gradientFrom, gradientTo)
	}
	canvas.DrawRect(0, 0, scene.Width, scene.Height, color.NRGBA{A: overlayAlpha})
	return canvas.ToImage()
}

func (c *Capturer) imageBackground(scene ports.Scene) image.Image {
	if scene.BackgroundImage == nil {
		c.logger.Debug("Skipping unreadable background image")
		return imaging.New(scene.Width, scene.Height, color.Transparent)
	}
	cover := imaging.Fill(scene.BackgroundImage, scene.Width, scene.Height, imaging.Center, imaging.Lanczos)
	canvas := c.renderer.CreateCanvas(scene.Width, scene.Height, nil)
	canvas.DrawImage(c.filter(cover, scene.Filter), 0, 0)
	return canvas.ToImage()
}

func (c *Capturer) filter(img *image.NRGBA, expr string) *image.NRGBA {
	filtered, err := ApplyFilter(img, expr)
	if err != nil {
		c.logger.Warn("Filter not applied: %v", err)
		return img
	}
	return imaging.Clone(filtered)
}

// textLayer draws the pill and text fully opaque on a transparent canvas so
// the scene opacity applies to both at once.
func (c *Capturer) textLayer(scene ports.Scene) image.Image {
	canvas := c.renderer.CreateCanvas(scene.Width, scene.Height, nil)
	if strings.TrimSpace(scene.Text) == "" {
		return canvas.ToImage()
	}

	textColor := scene.TextColor
	if textColor == nil {
		textColor = color.White
	}
	style := ports.TextStyle{
		FontSize:   scene.FontSize,
		FontFamily: scene.FontFamily,
		Color:      textColor,
		Align:      ports.AlignCenter,
	}

	maxWidth := float64(scene.Width)*maxTextRatio - 2*pillPadding
	lines := wrapText(scene.Text, maxWidth, func(s string) float64 {
		w, _ := canvas.MeasureText(s, style)
		return w
	})

	textWidth := 0.0
	for _, line := range lines {
		if w, _ := canvas.MeasureText(line, style); w > textWidth {
			textWidth = w
		}
	}
	step := style.FontSize * lineHeight
	textHeight := step * float64(len(lines))

	pillW := int(textWidth) + 2*pillPadding
	pillH := int(textHeight) + 2*pillPadding
	pillX := (scene.Width - pillW) / 2
	pillY := (scene.Height - pillH) / 2
	canvas.DrawRoundedRect(pillX, pillY, pillW, pillH, pillRadius, color.NRGBA{A: pillAlpha})

	centerX := scene.Width / 2
	for i, line := range lines {
		y := float64(pillY+pillPadding) + step*(float64(i)+0.5)
		canvas.DrawText(line, centerX, int(y), style)
	}
	return canvas.ToImage()
}

// wrapText breaks text into lines no wider than maxWidth, splitting on
// spaces. Explicit newlines are kept. Single words wider than maxWidth get a
// line of their own.
func wrapText(text string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if measure(candidate) <= maxWidth {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}

func clampOpacity(v float64) float64 {
	if v <= 0 || v > 1 {
		return 1
	}
	return v
}
