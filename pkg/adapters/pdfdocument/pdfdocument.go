// Package pdfdocument writes single-page PDF documents with fpdf.
package pdfdocument

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/user/bannerkit/pkg/ports"
)

// ErrEmptyPage is returned for a page without area.
var ErrEmptyPage = errors.New("pdfdocument: page has no area")

// Writer implements ports.DocumentWriter. One image pixel maps to one point.
type Writer struct {
	creator string
}

// New creates a document writer. creator is written to the document info.
func New(creator string) *Writer {
	return &Writer{creator: creator}
}

// Ensure Writer implements ports.DocumentWriter
var _ ports.DocumentWriter = (*Writer)(nil)

// SinglePage places png unscaled on a page of exactly width x height.
func (w *Writer) SinglePage(png []byte, width, height int, orientation ports.Orientation) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyPage
	}

	orientationStr := "P"
	size := fpdf.SizeType{Wd: float64(width), Ht: float64(height)}
	if orientation == ports.OrientationLandscape {
		orientationStr = "L"
		// fpdf swaps the sides for landscape pages.
		size = fpdf.SizeType{Wd: float64(height), Ht: float64(width)}
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientationStr,
		UnitStr:        "pt",
		Size:           size,
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	if w.creator != "" {
		pdf.SetCreator(w.creator, true)
	}
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("banner", opts, bytes.NewReader(png))
	pdf.ImageOptions("banner", 0, 0, float64(width), float64(height), false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
