// Package filesink writes downloads and debug output to the file system.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/bannerkit/pkg/ports"
)

// Downloads is the download surface: each artifact is written under its
// download name inside dir, replacing an earlier export of the same format.
type Downloads struct {
	dir string
	fs  ports.FileSystem
}

// NewDownloads creates a download sink writing into dir.
func NewDownloads(dir string, fs ports.FileSystem) *Downloads {
	return &Downloads{dir: dir, fs: fs}
}

// Download writes data to dir/name and returns the path.
func (d *Downloads) Download(name string, data []byte) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid download name %q", name)
	}
	path := filepath.Join(d.dir, name)
	if err := d.fs.WriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// Ensure Downloads implements ports.DownloadSink
var _ ports.DownloadSink = (*Downloads)(nil)

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new debug Sink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveSource saves the decoded crop source as PNG.
func (s *Sink) SaveSource(img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode source: %w", err)
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, "source.png"), data)
}

// SaveCropped saves the encoded crop result.
func (s *Sink) SaveCropped(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "cropped.jpeg"), data)
}

// SaveCapture saves a captured bitmap.
func (s *Sink) SaveCapture(index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "captures")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode capture: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("capture-%04d.png", index))
	return s.fs.WriteFile(path, data)
}

// SaveSettingsJSON saves the composition record.
func (s *Sink) SaveSettingsJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "settings.json"), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
