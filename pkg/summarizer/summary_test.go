package summarizer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/user/bannerkit/pkg/mocks"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder(t *testing.T) {
	summary := NewBuilder().
		WithBanner(BannerInfo{Text: "Hi", Font: "Arial", Opacity: 0.5}).
		WithCapture("canvas", 1).
		WithExport(ExportInfo{Format: "png", Filename: "banner.png", Width: 400, Height: 225}).
		Build()

	if summary.Banner.Text != "Hi" || summary.Banner.Opacity != 0.5 {
		t.Errorf("unexpected banner %+v", summary.Banner)
	}
	if summary.Capture.Backend != "canvas" || summary.Capture.Scale != 1 {
		t.Errorf("unexpected capture %+v", summary.Capture)
	}
	if summary.Export.Filename != "banner.png" {
		t.Errorf("unexpected export %+v", summary.Export)
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string {
		return "# " + s.Export.Filename
	}), fs)

	summary := NewBuilder().WithExport(ExportInfo{Filename: "banner.pdf"}).Build()
	if err := w.Write("out/summary.md", summary); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, ok := fs.GetFile("out/summary.md")
	if !ok || string(data) != "# banner.pdf" {
		t.Errorf("written %q", data)
	}
}

func TestWriter_WriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error {
		return errors.New("read-only")
	}
	w := NewWriter(NewMarkdownFormatter(), fs)

	err := w.Write("summary.md", NewSummary())
	if err == nil || !strings.Contains(err.Error(), "read-only") {
		t.Errorf("expected wrapped write error, got %v", err)
	}
}
