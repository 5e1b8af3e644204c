package ggrenderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/user/bannerkit/pkg/ports"
)

func TestRenderer_CreateCanvas(t *testing.T) {
	r := New()

	canvas := r.CreateCanvas(100, 100, color.White)
	if canvas == nil {
		t.Fatal("expected canvas to be created")
	}

	img := canvas.ToImage()
	bounds := img.Bounds()

	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Errorf("expected 100x100, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderer_CreateCanvas_Transparent(t *testing.T) {
	r := New()
	img := r.CreateCanvas(10, 10, nil).ToImage()

	if _, _, _, a := img.At(5, 5).RGBA(); a != 0 {
		t.Errorf("expected transparent canvas, alpha %d", a)
	}
}

func TestRenderer_EncodeDecodeJPEG(t *testing.T) {
	r := New()

	// Create test image
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 0, B: 0, A: 255})
		}
	}

	// Encode
	data, err := r.EncodeImage(img, ports.FormatJPEG, 80)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty data")
	}

	// Decode
	decoded, format, err := r.DecodeImage(data)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if format != ports.FormatJPEG {
		t.Errorf("expected JPEG, got %v", format)
	}

	bounds := decoded.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 50 {
		t.Errorf("expected 50x50, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderer_EncodeDecodePNG(t *testing.T) {
	r := New()

	img := image.NewRGBA(image.Rect(0, 0, 30, 30))

	// Encode
	data, err := r.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}

	// Decode
	decoded, format, err := r.DecodeImage(data)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if format != ports.FormatPNG {
		t.Errorf("expected PNG, got %v", format)
	}

	bounds := decoded.Bounds()
	if bounds.Dx() != 30 || bounds.Dy() != 30 {
		t.Errorf("expected 30x30, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderer_DecodeGarbage(t *testing.T) {
	r := New()
	if _, _, err := r.DecodeImage([]byte("definitely not pixels")); err == nil {
		t.Error("expected decode error")
	}
}

func TestRenderer_EncodeUnsupported(t *testing.T) {
	r := New()
	if _, err := r.EncodeImage(image.NewRGBA(image.Rect(0, 0, 1, 1)), ports.FormatWebP, 0); err == nil {
		t.Error("expected error for WebP encoding")
	}
}

func TestRenderer_ScaleRegion(t *testing.T) {
	r := New()

	// Left half red, right half blue
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			c := color.RGBA{R: 255, A: 255}
			if x >= 50 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}

	// Blue half scaled up to 200x80
	scaled := r.ScaleRegion(img, image.Rect(50, 0, 100, 100), 200, 80)

	bounds := scaled.Bounds()
	if bounds.Dx() != 200 || bounds.Dy() != 80 {
		t.Errorf("expected 200x80, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	red, _, blue, _ := scaled.At(100, 40).RGBA()
	if red > 0x1000 || blue < 0xf000 {
		t.Errorf("expected blue center pixel, got r=%x b=%x", red, blue)
	}
}

func TestCanvas_DrawRect(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(100, 100, color.White)

	// Draw red rectangle
	canvas.DrawRect(10, 10, 30, 30, color.RGBA{R: 255, A: 255})

	img := canvas.ToImage()

	// Check that pixel inside rectangle is red
	c := img.At(20, 20)
	red, green, _, _ := c.RGBA()
	if red == 0 || green != 0 {
		t.Error("expected red pixel inside rectangle")
	}
}

func TestCanvas_DrawRoundedRect(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(100, 100, nil)

	canvas.DrawRoundedRect(10, 10, 80, 80, 20, color.Black)

	img := canvas.ToImage()
	if _, _, _, a := img.At(50, 50).RGBA(); a == 0 {
		t.Error("expected filled center")
	}
	if _, _, _, a := img.At(11, 11).RGBA(); a != 0 {
		t.Error("expected rounded corner to stay transparent")
	}
}

func TestCanvas_DrawLinearGradient(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(100, 100, nil)

	canvas.DrawLinearGradient(0, 0, 100, 100, color.RGBA{R: 255, A: 255}, color.RGBA{B: 255, A: 255})

	img := canvas.ToImage()
	r0, _, b0, _ := img.At(1, 1).RGBA()
	r1, _, b1, _ := img.At(98, 98).RGBA()
	if r0 <= b0 || b1 <= r1 {
		t.Errorf("gradient direction wrong: start r=%x b=%x, end r=%x b=%x", r0, b0, r1, b1)
	}
}

func TestCanvas_DrawImage(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(100, 100, color.White)

	// Create small red image
	small := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			small.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	// Draw at position (10, 10)
	canvas.DrawImage(small, 10, 10)

	img := canvas.ToImage()

	// Check pixel at (15, 15) should be red
	c := img.At(15, 15)
	_, green, _, _ := c.RGBA()
	if green != 0 {
		t.Error("expected red pixel from drawn image")
	}
}

func TestCanvas_DrawText(t *testing.T) {
	r := New()

	for _, family := range []string{"Arial", "Courier New", "Georgia", "Unknown Family"} {
		t.Run(family, func(t *testing.T) {
			canvas := r.CreateCanvas(300, 60, color.White)
			style := ports.TextStyle{
				FontSize:   24,
				FontFamily: family,
				Color:      color.Black,
				Align:      ports.AlignCenter,
			}

			w, h := canvas.MeasureText("Hello World", style)
			if w <= 0 || h <= 0 {
				t.Fatalf("MeasureText = %vx%v", w, h)
			}

			canvas.DrawText("Hello World", 150, 30, style)

			img := canvas.ToImage()
			dark := 0
			for y := 0; y < 60; y++ {
				for x := 0; x < 300; x++ {
					if r, _, _, _ := img.At(x, y).RGBA(); r < 0x8000 {
						dark++
					}
				}
			}
			if dark == 0 {
				t.Error("expected text pixels")
			}
		})
	}
}

func TestFontBook_MissingFileFallsBack(t *testing.T) {
	r := NewWithFonts(map[string]string{"Georgia": "/nonexistent/georgia.ttf"})
	canvas := r.CreateCanvas(10, 10, nil)

	w, _ := canvas.MeasureText("abc", ports.TextStyle{FontSize: 12, FontFamily: "Georgia"})
	if w <= 0 {
		t.Error("expected embedded fallback face")
	}
}
