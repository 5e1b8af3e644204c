package filesink

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/bannerkit/pkg/mocks"
	"github.com/user/bannerkit/pkg/ports"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func TestDownloads_Download(t *testing.T) {
	fs := mocks.NewFileSystem()
	downloads := NewDownloads("out", fs)

	path, err := downloads.Download("banner.png", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}

	expected := filepath.Join("out", "banner.png")
	if path != expected {
		t.Errorf("path = %q, want %q", path, expected)
	}
	saved, ok := fs.GetFile(expected)
	if !ok || len(saved) != 3 {
		t.Errorf("file not saved: %v", saved)
	}

	// A second export of the same format replaces the first
	downloads.Download("banner.png", []byte{9})
	saved, _ = fs.GetFile(expected)
	if len(saved) != 1 || saved[0] != 9 {
		t.Errorf("expected replaced file, got %v", saved)
	}
}

func TestDownloads_InvalidName(t *testing.T) {
	downloads := NewDownloads("out", mocks.NewFileSystem())

	for _, name := range []string{"", "../banner.png", filepath.Join("sub", "banner.png")} {
		if _, err := downloads.Download(name, []byte{1}); err == nil {
			t.Errorf("expected error for %q", name)
		}
	}
}

func TestDownloads_WriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error {
		return errors.New("read-only")
	}

	if _, err := NewDownloads("out", fs).Download("banner.pdf", []byte{1}); err == nil {
		t.Error("expected write error")
	}
}

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem(), &mocks.Renderer{})

	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SaveFiles(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			return []byte("png"), nil
		},
	}
	sink := New(testBaseDir, fs, renderer)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	if err := sink.SaveSource(img); err != nil {
		t.Fatal(err)
	}
	if err := sink.SaveCropped([]byte("jpeg")); err != nil {
		t.Fatal(err)
	}
	if err := sink.SaveCapture(3, img); err != nil {
		t.Fatal(err)
	}
	if err := sink.SaveSettingsJSON([]byte(`{"bannerText":"x"}`)); err != nil {
		t.Fatal(err)
	}

	for path, want := range map[string]string{
		filepath.Join(testBaseDir, "source.png"):                   "png",
		filepath.Join(testBaseDir, "cropped.jpeg"):                 "jpeg",
		filepath.Join(testBaseDir, "captures", "capture-0003.png"): "png",
		filepath.Join(testBaseDir, "settings.json"):                `{"bannerText":"x"}`,
	} {
		saved, ok := fs.GetFile(path)
		if !ok {
			t.Errorf("expected file at %s", path)
			continue
		}
		if string(saved) != want {
			t.Errorf("%s = %q, want %q", path, saved, want)
		}
	}

	for _, call := range renderer.EncodeCalls {
		if call.Format != ports.FormatPNG {
			t.Errorf("debug images should be PNG, got %v", call.Format)
		}
	}
}

func TestSink_EncodeError(t *testing.T) {
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			return nil, errors.New("encode failed")
		},
	}
	sink := New(testBaseDir, mocks.NewFileSystem(), renderer)

	if err := sink.SaveCapture(0, image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected error")
	}
}
