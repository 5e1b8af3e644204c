package ports

import (
	"image"
)

// DownloadSink is the download surface: it receives a finished artifact under
// its download name (banner.png, banner.jpeg, banner.pdf).
type DownloadSink interface {
	// Download stores data under name and returns where it ended up.
	Download(name string, data []byte) (string, error)
}

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveSource saves the decoded source image handed to the crop engine.
	SaveSource(img image.Image) error

	// SaveCropped saves the encoded crop result.
	SaveCropped(data []byte) error

	// SaveCapture saves a captured bitmap.
	SaveCapture(index int, img image.Image) error

	// SaveSettingsJSON saves the composition record used for a capture.
	SaveSettingsJSON(data []byte) error
}
