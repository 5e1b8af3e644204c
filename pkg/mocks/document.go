package mocks

import (
	"github.com/user/bannerkit/pkg/ports"
)

// DocumentWriter is a mock implementation of ports.DocumentWriter.
type DocumentWriter struct {
	SinglePageFunc func(png []byte, width, height int, orientation ports.Orientation) ([]byte, error)

	// Track calls for assertions
	Calls []struct {
		Width, Height int
		Orientation   ports.Orientation
	}
}

func (m *DocumentWriter) SinglePage(png []byte, width, height int, orientation ports.Orientation) ([]byte, error) {
	m.Calls = append(m.Calls, struct {
		Width, Height int
		Orientation   ports.Orientation
	}{width, height, orientation})
	if m.SinglePageFunc != nil {
		return m.SinglePageFunc(png, width, height, orientation)
	}
	return []byte("%PDF-1.3\n"), nil
}

var _ ports.DocumentWriter = (*DocumentWriter)(nil)
