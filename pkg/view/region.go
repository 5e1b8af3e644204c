// Package view derives what the banner region displays from the composition
// record and exposes it as a capturable handle.
package view

import (
	"sync"

	"github.com/user/bannerkit/pkg/composition"
	"github.com/user/bannerkit/pkg/config"
	"github.com/user/bannerkit/pkg/ports"
)

// Text metrics of the banner headline.
const (
	FontSize = 48
)

// Text colors for light and dark mode.
const (
	LightTextCSS = "#ffffff"
	DarkTextCSS  = "#111827"
)

// Source is what a Region observes.
type Source interface {
	Snapshot() composition.State
	DarkMode() bool
	Subscribe(o composition.Observer) (unsubscribe func())
}

// Region is the live banner region. It is unattached until Mount and
// re-derives its scene synchronously on every state change.
type Region struct {
	mu          sync.RWMutex
	scene       ports.Scene
	attached    bool
	source      Source
	unsubscribe func()
	logger      ports.Logger
}

// NewRegion creates an unattached region.
func NewRegion(logger ports.Logger) *Region {
	return &Region{logger: logger.WithComponent("view")}
}

// Mount attaches the region to src and renders the current snapshot.
func (r *Region) Mount(src Source) {
	r.Unmount()

	unsubscribe := src.Subscribe(func(state composition.State) {
		r.update(state, src.DarkMode())
	})

	r.mu.Lock()
	r.source = src
	r.unsubscribe = unsubscribe
	r.attached = true
	r.mu.Unlock()

	r.update(src.Snapshot(), src.DarkMode())
}

// Unmount detaches the region. Captures report it as unavailable afterwards.
func (r *Region) Unmount() {
	r.mu.Lock()
	unsubscribe := r.unsubscribe
	r.unsubscribe = nil
	r.source = nil
	r.attached = false
	r.scene = ports.Scene{}
	r.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Scene implements ports.Region.
func (r *Region) Scene() (ports.Scene, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scene, r.attached
}

func (r *Region) update(state composition.State, dark bool) {
	scene := SceneFor(state, dark, r.logger)

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.attached {
		return
	}
	r.scene = scene
}

// SceneFor resolves a composition record into the scene it displays.
// An unreadable background image still hides the color; it just draws nothing.
func SceneFor(state composition.State, dark bool, logger ports.Logger) ports.Scene {
	width, height := state.BannerSize.OutputDimensions()

	scene := ports.Scene{
		Width:      width,
		Height:     height,
		Filter:     state.Filter.Value,
		Text:       state.BannerText,
		FontFamily: state.Font.Value,
		FontSize:   FontSize,
		Opacity:    state.Opacity,
		Animation:  state.Animation.Value,
		DarkMode:   dark,
	}
	if scene.FontFamily == "" {
		scene.FontFamily = "Arial"
	}
	if scene.Filter == "" {
		scene.Filter = "none"
	}

	scene.TextColorCSS = LightTextCSS
	if dark {
		scene.TextColorCSS = DarkTextCSS
	}
	scene.TextColor, _ = config.ParseColor(scene.TextColorCSS)

	bg := state.EffectiveBackground()
	if !bg.Image.IsZero() {
		scene.BackgroundImageURI = bg.Image.DataURI
		img, err := bg.Image.Decode()
		if err != nil {
			logger.Warn("Background image could not be decoded: %v", err)
		} else {
			scene.BackgroundImage = img
		}
		return scene
	}

	if c, ok := config.ParseColor(bg.Color); ok {
		scene.BackgroundColor = c
		scene.BackgroundCSS = bg.Color
	}
	return scene
}
