// Package preview holds the preview slot: a fresh capture per open, shown as a
// loading placeholder until the first capture resolves and discarded on close.
package preview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/user/bannerkit/pkg/pipeline"
	"github.com/user/bannerkit/pkg/ports"
	"github.com/user/bannerkit/pkg/raster"
)

// Status of the preview slot.
type Status int

const (
	Closed Status = iota
	Loading
	Ready
)

func (s Status) String() string {
	switch s {
	case Closed:
		return "closed"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Snapshot is one captured preview.
type Snapshot struct {
	Image  raster.Image // PNG data URI
	Bitmap *image.NRGBA
	Scene  ports.Scene
}

// Holder is the preview slot. Every Open starts a new session; results of
// captures started in an earlier session are dropped. Within a session the
// last capture to finish wins.
type Holder struct {
	mu       sync.Mutex
	session  uint64
	open     bool
	snapshot *Snapshot
	lastErr  error
}

func NewHolder() *Holder {
	return &Holder{}
}

// Open clears the slot and returns the new session id.
func (h *Holder) Open() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session++
	h.open = true
	h.snapshot = nil
	h.lastErr = nil
	return h.session
}

// Close discards the snapshot.
func (h *Holder) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.open = false
	h.snapshot = nil
	h.lastErr = nil
}

// Put stores snap if session is still the open one. It reports whether the
// snapshot was kept.
func (h *Holder) Put(session uint64, snap Snapshot) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.open || session != h.session {
		return false
	}
	h.snapshot = &snap
	h.lastErr = nil
	return true
}

// Fail records err for session. The slot keeps showing its last snapshot, or
// the placeholder when there is none.
func (h *Holder) Fail(session uint64, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.open || session != h.session {
		return
	}
	h.lastErr = err
}

// Status reports Closed, Loading or Ready.
func (h *Holder) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch {
	case !h.open:
		return Closed
	case h.snapshot == nil:
		return Loading
	default:
		return Ready
	}
}

// Snapshot returns the current snapshot, if any.
func (h *Holder) Snapshot() (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.snapshot == nil {
		return Snapshot{}, false
	}
	return *h.snapshot, true
}

// Err returns the error of the latest failed capture in this session.
func (h *Holder) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastErr
}

// Previewer captures a region into a Holder.
type Previewer struct {
	capture  pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult]
	renderer ports.Renderer
	holder   *Holder
	logger   ports.Logger
}

func NewPreviewer(
	capture pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult],
	renderer ports.Renderer,
	holder *Holder,
	logger ports.Logger,
) *Previewer {
	return &Previewer{
		capture:  capture,
		renderer: renderer,
		holder:   holder,
		logger:   logger.WithComponent("preview"),
	}
}

// Holder returns the slot the previewer writes to.
func (p *Previewer) Holder() *Holder {
	return p.holder
}

// Open starts a new preview session and captures region into it.
func (p *Previewer) Open(ctx context.Context, region ports.Region) (Snapshot, error) {
	return p.Refresh(ctx, p.holder.Open(), region)
}

// Refresh captures region into session. An unattached region leaves the slot
// loading and returns pipeline.ErrCaptureUnavailable.
func (p *Previewer) Refresh(ctx context.Context, session uint64, region ports.Region) (Snapshot, error) {
	captured, err := p.capture.Execute(ctx, pipeline.CaptureInput{Region: region})
	if err != nil {
		if errors.Is(err, pipeline.ErrCaptureUnavailable) {
			p.logger.Debug("Preview not yet available")
		}
		p.holder.Fail(session, err)
		return Snapshot{}, err
	}

	data, err := p.renderer.EncodeImage(captured.Bitmap, ports.FormatPNG, 0)
	if err == nil && len(data) == 0 {
		err = errors.New("empty output")
	}
	if err != nil {
		err = fmt.Errorf("%w: preview: %v", pipeline.ErrEncodeFailure, err)
		p.holder.Fail(session, err)
		return Snapshot{}, err
	}

	bounds := captured.Bitmap.Bounds()
	snap := Snapshot{
		Image:  raster.FromBytes(data, ports.FormatPNG.MIME(), bounds.Dx(), bounds.Dy()),
		Bitmap: captured.Bitmap,
		Scene:  captured.Scene,
	}
	if !p.holder.Put(session, snap) {
		p.logger.Debug("Discarding preview of closed session %d", session)
	}
	return snap, nil
}

// Close discards the current preview.
func (p *Previewer) Close() {
	p.holder.Close()
}
