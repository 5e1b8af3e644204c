// Package capturehtml renders a banner scene as HTML in headless Chrome and
// screenshots the banner element.
package capturehtml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"

	"github.com/user/bannerkit/pkg/ports"
)

// ErrChromeNotFound is returned when no browser executable can be resolved.
var ErrChromeNotFound = errors.New("capturehtml: chrome not found: install Chrome/Chromium, set CHROME_PATH or use --chrome-path")

// captureScale is fixed: one output pixel per CSS pixel, whatever the display density.
const captureScale = 1.0

// Capturer implements ports.RegionCapturer with chromedp.
type Capturer struct {
	opts   ports.BrowserOptions
	logger ports.Logger
}

// New creates a new HTML capturer.
func New(opts ports.BrowserOptions, logger ports.Logger) *Capturer {
	return &Capturer{
		opts:   opts,
		logger: logger.WithComponent("capturehtml"),
	}
}

// Ensure Capturer implements ports.RegionCapturer
var _ ports.RegionCapturer = (*Capturer)(nil)

// Capture renders scene and returns a screenshot of the banner element with a
// transparent page background. Animations are captured at rest.
func (c *Capturer) Capture(ctx context.Context, scene ports.Scene) (image.Image, error) {
	html, err := RenderHTML(NewTemplateVars(scene))
	if err != nil {
		return nil, fmt.Errorf("render HTML: %w", err)
	}

	// Write HTML to a temporary file
	tmp, err := os.CreateTemp("", "bannerkit_*.html")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	allocOpts, err := c.allocatorOptions()
	if err != nil {
		return nil, err
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	c.logger.Debug("Capturing %dx%d scene in browser", scene.Width, scene.Height)

	var buf []byte
	if err := chromedp.Run(browserCtx,
		emulation.SetDeviceMetricsOverride(int64(scene.Width), int64(scene.Height), captureScale, false),
		emulation.SetDefaultBackgroundColorOverride().WithColor(&cdp.RGBA{R: 0, G: 0, B: 0, A: 0}),
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.WaitReady(BannerSelector, chromedp.ByQuery),
		chromedp.ScreenshotScale(BannerSelector, captureScale, &buf, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}

	return img, nil
}

func (c *Capturer) allocatorOptions() ([]chromedp.ExecAllocatorOption, error) {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-gpu", true),
		// Hide scrollbars for cleaner screenshots
		chromedp.Flag("hide-scrollbars", true),
		// data: images inside a file:// page
		chromedp.Flag("allow-file-access-from-files", true),
	}

	if c.opts.Headless {
		opts = append(opts, chromedp.Flag("headless", "new"))
	}
	if c.opts.NoSandbox {
		opts = append(opts,
			chromedp.NoSandbox,
			chromedp.Flag("disable-setuid-sandbox", true),
		)
	}

	chromePath := ResolveChromePath(c.opts.ChromePath)
	if chromePath == "" {
		return nil, ErrChromeNotFound
	}
	opts = append(opts, chromedp.ExecPath(chromePath))

	return opts, nil
}
