// Package summarizer builds a human-readable report of an export.
package summarizer

import "time"

// Summary describes one exported banner.
type Summary struct {
	GeneratedAt time.Time

	Banner  BannerInfo
	Capture CaptureInfo
	Export  ExportInfo
}

// BannerInfo is the composition that was rendered.
type BannerInfo struct {
	Text        string
	Font        string
	Animation   string
	Background  string // Color value, or "image" when a background image is shown
	ImageWidth  int    // Zero without an image
	ImageHeight int
	Filter      string
	Opacity     float64
	SizeLabel   string
	DarkMode    bool
}

// CaptureInfo describes how the region was rasterized.
type CaptureInfo struct {
	Backend string
	Scale   float64
}

// ExportInfo describes the produced artifact.
type ExportInfo struct {
	Format      string
	Filename    string
	Path        string
	MIME        string
	FileSize    int64
	Width       int
	Height      int
	Orientation string // Documents only
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

func (b *Builder) WithBanner(banner BannerInfo) *Builder {
	b.summary.Banner = banner
	return b
}

func (b *Builder) WithCapture(backend string, scale float64) *Builder {
	b.summary.Capture = CaptureInfo{Backend: backend, Scale: scale}
	return b
}

func (b *Builder) WithExport(export ExportInfo) *Builder {
	b.summary.Export = export
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
