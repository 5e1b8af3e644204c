package mocks

import (
	"fmt"
	"image"
	"sync"

	"github.com/user/bannerkit/pkg/ports"
)

// DownloadSink is a mock implementation of ports.DownloadSink.
type DownloadSink struct {
	mu sync.Mutex

	DownloadFunc func(name string, data []byte) (string, error)

	Files map[string][]byte
	Order []string
}

// NewDownloadSink creates a new mock DownloadSink.
func NewDownloadSink() *DownloadSink {
	return &DownloadSink{Files: make(map[string][]byte)}
}

func (m *DownloadSink) Download(name string, data []byte) (string, error) {
	if m.DownloadFunc != nil {
		return m.DownloadFunc(name, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Files[name] = data
	m.Order = append(m.Order, name)
	return fmt.Sprintf("mem://%s", name), nil
}

var _ ports.DownloadSink = (*DownloadSink)(nil)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Source       image.Image
	Cropped      []byte
	Captures     map[int]image.Image
	SettingsJSON []byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:  enabled,
		Captures: make(map[int]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveSource(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Source = img
	return nil
}

func (m *DebugSink) SaveCropped(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cropped = data
	return nil
}

func (m *DebugSink) SaveCapture(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Captures[index] = img
	return nil
}

func (m *DebugSink) SaveSettingsJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SettingsJSON = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

// NullSink is a no-op implementation of ports.DebugSink.
type NullSink struct{}

func (m *NullSink) Enabled() bool                                { return false }
func (m *NullSink) SaveSource(img image.Image) error             { return nil }
func (m *NullSink) SaveCropped(data []byte) error                { return nil }
func (m *NullSink) SaveCapture(index int, img image.Image) error { return nil }
func (m *NullSink) SaveSettingsJSON(data []byte) error           { return nil }

var _ ports.DebugSink = (*NullSink)(nil)
