package mocks

import (
	"context"
	"image"
	"sync"

	"github.com/user/bannerkit/pkg/ports"
)

// RegionCapturer is a mock implementation of ports.RegionCapturer.
type RegionCapturer struct {
	mu sync.Mutex

	CaptureFunc func(ctx context.Context, scene ports.Scene) (image.Image, error)

	// Track calls for assertions
	CaptureCalls []ports.Scene
}

// NewRegionCapturer creates a mock that returns a transparent scene-sized bitmap.
func NewRegionCapturer() *RegionCapturer {
	return &RegionCapturer{}
}

// Capture implements ports.RegionCapturer.
func (m *RegionCapturer) Capture(ctx context.Context, scene ports.Scene) (image.Image, error) {
	m.mu.Lock()
	m.CaptureCalls = append(m.CaptureCalls, scene)
	m.mu.Unlock()
	if m.CaptureFunc != nil {
		return m.CaptureFunc(ctx, scene)
	}
	return image.NewNRGBA(image.Rect(0, 0, scene.Width, scene.Height)), nil
}

// Calls returns the number of captures so far.
func (m *RegionCapturer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.CaptureCalls)
}

var _ ports.RegionCapturer = (*RegionCapturer)(nil)

// Region is a mock implementation of ports.Region.
type Region struct {
	mu       sync.Mutex
	scene    ports.Scene
	attached bool
}

// NewRegion creates an attached region showing scene.
func NewRegion(scene ports.Scene) *Region {
	return &Region{scene: scene, attached: true}
}

// Scene implements ports.Region.
func (m *Region) Scene() (ports.Scene, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scene, m.attached
}

// Set replaces the displayed scene.
func (m *Region) Set(scene ports.Scene) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scene = scene
}

// Detach makes the region unavailable.
func (m *Region) Detach() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attached = false
}

var _ ports.Region = (*Region)(nil)
