// Package bannerkit assembles the banner widget from configuration: persistence
// backend, capture backend, stages and the orchestrator.
package bannerkit

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/bannerkit/pkg/adapters/canvascapture"
	"github.com/user/bannerkit/pkg/adapters/capturehtml"
	"github.com/user/bannerkit/pkg/adapters/filesink"
	"github.com/user/bannerkit/pkg/adapters/ggrenderer"
	"github.com/user/bannerkit/pkg/adapters/jsonstore"
	"github.com/user/bannerkit/pkg/adapters/nullsink"
	"github.com/user/bannerkit/pkg/adapters/osfilesystem"
	"github.com/user/bannerkit/pkg/adapters/pdfdocument"
	"github.com/user/bannerkit/pkg/adapters/redisstore"
	"github.com/user/bannerkit/pkg/composition"
	"github.com/user/bannerkit/pkg/config"
	"github.com/user/bannerkit/pkg/orchestrator"
	"github.com/user/bannerkit/pkg/ports"
	"github.com/user/bannerkit/pkg/preview"
	"github.com/user/bannerkit/pkg/stages/capture"
	"github.com/user/bannerkit/pkg/stages/crop"
	"github.com/user/bannerkit/pkg/stages/export"
	"github.com/user/bannerkit/pkg/view"
)

var (
	// ErrUnknownStore is returned for a store backend other than file or redis.
	ErrUnknownStore = errors.New("bannerkit: unknown store backend")

	// ErrUnknownCapture is returned for a capture backend other than canvas or chrome.
	ErrUnknownCapture = errors.New("bannerkit: unknown capture backend")
)

// Creator is written into exported documents.
const Creator = "bannerkit"

// App is a mounted banner widget.
type App struct {
	Config       config.Config
	Store        *composition.Store
	Region       *view.Region
	Orchestrator *orchestrator.Orchestrator
	FileSystem   ports.FileSystem
	Downloads    ports.DownloadSink

	logger  ports.Logger
	closers []func() error
}

// Deps overrides adapters. Nil fields are built from the configuration.
type Deps struct {
	FileSystem ports.FileSystem
	Store      ports.KeyValueStore
	Capturer   ports.RegionCapturer
	Downloads  ports.DownloadSink
}

// Open builds every adapter named by cfg, loads the stored composition and
// mounts the visual region on it.
func Open(ctx context.Context, cfg config.Config, logger ports.Logger, deps Deps) (*App, error) {
	app := &App{Config: cfg, logger: logger}

	fs := deps.FileSystem
	if fs == nil {
		fs = osfilesystem.New()
	}
	app.FileSystem = fs

	renderer := ggrenderer.NewWithFonts(cfg.Fonts)

	kv := deps.Store
	if kv == nil {
		var err error
		kv, err = app.openStore(ctx, fs)
		if err != nil {
			return nil, err
		}
	}

	capturer := deps.Capturer
	if capturer == nil {
		var err error
		capturer, err = newCapturer(cfg.Capture, renderer, logger)
		if err != nil {
			app.Close()
			return nil, err
		}
	}

	var sink ports.DebugSink = nullsink.New()
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			app.Close()
			return nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	}

	downloads := deps.Downloads
	if downloads == nil {
		downloads = filesink.NewDownloads(cfg.OutputDir, fs)
	}
	app.Downloads = downloads

	app.Store = composition.Open(ctx, kv, logger)
	app.Region = view.NewRegion(logger)
	app.Region.Mount(app.Store)

	cropStage := crop.NewStage(renderer, sink, logger, cfg.JPEGQuality)
	captureStage := capture.NewStage(capturer, sink, logger)
	exportStage := export.NewStage(captureStage, renderer, pdfdocument.New(Creator), downloads, logger, cfg.JPEGQuality)
	previewer := preview.NewPreviewer(captureStage, renderer, preview.NewHolder(), logger)

	app.Orchestrator = orchestrator.New(
		app.Store,
		app.Region,
		kv,
		fs,
		cropStage,
		exportStage,
		previewer,
		sink,
		logger,
		orchestrator.Options{CaptureBackend: cfg.Capture.Backend},
	)
	return app, nil
}

func (a *App) openStore(ctx context.Context, fs ports.FileSystem) (ports.KeyValueStore, error) {
	sc := a.Config.Store
	switch sc.Backend {
	case "", config.StoreFile:
		return jsonstore.New(sc.Path, fs), nil
	case config.StoreRedis:
		store, closeFn, err := redisstore.Dial(ctx, redisstore.Options{
			Addr:     sc.RedisAddr,
			Password: sc.RedisPassword,
			DB:       sc.RedisDB,
			Prefix:   sc.KeyPrefix,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, closeFn)
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, sc.Backend)
	}
}

func newCapturer(cc config.CaptureConfig, renderer ports.Renderer, logger ports.Logger) (ports.RegionCapturer, error) {
	switch cc.Backend {
	case "", config.CaptureCanvas:
		return canvascapture.New(renderer, logger), nil
	case config.CaptureChrome:
		return capturehtml.New(ports.BrowserOptions{
			Headless:   cc.Headless,
			ChromePath: cc.ChromePath,
			NoSandbox:  cc.NoSandbox,
		}, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCapture, cc.Backend)
	}
}

// Close unmounts the region and releases backend connections.
func (a *App) Close() error {
	if a.Region != nil {
		a.Region.Unmount()
	}
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
