// Package main provides the CLI entry point for bannerkit.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/bannerkit/pkg/adapters/logger"
	"github.com/user/bannerkit/pkg/bannerkit"
	"github.com/user/bannerkit/pkg/composition"
	"github.com/user/bannerkit/pkg/config"
	"github.com/user/bannerkit/pkg/orchestrator"
	"github.com/user/bannerkit/pkg/pipeline"
	"github.com/user/bannerkit/pkg/ports"
	"github.com/user/bannerkit/pkg/summarizer"
)

var version = "dev"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %v", err))
		os.Exit(1)
	}
}

func newApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "bannerkit",
		Usage:     l10n.T("Compose, crop and export banners."),
		Version:   version,
		Writer:    out,
		ErrWriter: errOut,
		Flags:     globalFlags(),
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  l10n.T("Show the current composition."),
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "json", Usage: l10n.T("Print the record as JSON")}},
				Action: withApp(showAction),
			},
			{
				Name:      "set",
				Usage:     l10n.T("Set one composition field."),
				ArgsUsage: "<field> <value>",
				Action:    withApp(setAction),
			},
			{
				Name:   "reset",
				Usage:  l10n.T("Restore the default composition."),
				Action: withApp(resetAction),
			},
			{
				Name:   "presets",
				Usage:  l10n.T("List fonts, animations, filters and sizes."),
				Action: presetsAction,
			},
			{
				Name:      "upload",
				Usage:     l10n.T("Upload a background image and crop it."),
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					rectFlag(),
					&cli.BoolFlag{Name: "no-crop", Usage: l10n.T("Keep the uploaded image uncropped")},
				},
				Action: withApp(uploadAction),
			},
			{
				Name:   "crop",
				Usage:  l10n.T("Re-crop the background image to the selected size."),
				Flags:  []cli.Flag{rectFlag()},
				Action: withApp(cropAction),
			},
			{
				Name:   "remove-image",
				Usage:  l10n.T("Remove the background image."),
				Action: withApp(removeImageAction),
			},
			{
				Name:   "preview",
				Usage:  l10n.T("Capture the banner and save preview.png."),
				Action: withApp(previewAction),
			},
			{
				Name:  "export",
				Usage: l10n.T("Capture the banner and save it as PNG, JPEG or PDF."),
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "png", Usage: l10n.T("Export format (png, jpeg, pdf)")},
					&cli.StringFlag{Name: "summary", Usage: l10n.T("Output execution summary to file (Markdown format)")},
				},
				Action: withApp(exportAction),
			},
			{
				Name:      "dark-mode",
				Usage:     l10n.T("Show or switch the dark mode flag."),
				ArgsUsage: "[on|off]",
				Action:    withApp(darkModeAction),
			},
			{
				Name:   "version",
				Usage:  l10n.T("Show version information."),
				Action: versionAction,
			},
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "bannerkit.yaml", Usage: l10n.T("Path to YAML configuration file")},

		// Persistence
		&cli.StringFlag{Name: "store", Usage: l10n.T("Store backend (file, redis)")},
		&cli.StringFlag{Name: "state", Usage: l10n.T("Path of the composition file")},
		&cli.StringFlag{Name: "redis-addr", Usage: l10n.T("Redis server address")},

		// Capture
		&cli.StringFlag{Name: "capture", Usage: l10n.T("Capture backend (canvas, chrome)")},
		&cli.StringFlag{Name: "chrome-path", Usage: l10n.T("Path to Chrome executable")},
		&cli.BoolFlag{Name: "no-headless", Usage: l10n.T("Run browser in non-headless mode")},

		// Output
		&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Usage: l10n.T("Directory for downloads")},

		// Debug
		&cli.BoolFlag{Name: "debug", Usage: l10n.T("Enable debug output")},
		&cli.StringFlag{Name: "debug-dir", Usage: l10n.T("Directory for debug output")},

		// Logging
		&cli.StringFlag{Name: "log-level", Usage: l10n.T("Log level (debug, info, warn, error)")},
		&cli.StringFlag{Name: "log-format", Usage: l10n.T("Log format (console, json)")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: l10n.T("Suppress all log output")},
	}
}

func rectFlag() cli.Flag {
	return &cli.StringFlag{Name: "rect", Usage: l10n.T("Crop rectangle in source pixels (x,y,width,height)")}
}

// loadConfig layers command-line flags over the configuration file.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	if c.IsSet("store") {
		cfg.Store.Backend = c.String("store")
	}
	if c.IsSet("state") {
		cfg.Store.Path = c.String("state")
	}
	if c.IsSet("redis-addr") {
		cfg.Store.RedisAddr = c.String("redis-addr")
	}
	if c.IsSet("capture") {
		cfg.Capture.Backend = c.String("capture")
	}
	if c.IsSet("chrome-path") {
		cfg.Capture.ChromePath = c.String("chrome-path")
	}
	if c.Bool("no-headless") {
		cfg.Capture.Headless = false
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	return cfg, nil
}

func newLogger(c *cli.Context, cfg config.Config) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	level := ports.ParseLogLevel(cfg.LogLevel)
	if cfg.LogFormat == "json" {
		return logger.NewStructured(level, c.App.ErrWriter)
	}
	if c.App.Writer == os.Stdout {
		return logger.NewConsole(level)
	}
	return logger.NewConsoleTo(level, c.App.Writer, c.App.ErrWriter)
}

type appAction func(c *cli.Context, app *bannerkit.App) error

// withApp opens the widget for the duration of one command.
func withApp(fn appAction) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		log := newLogger(c, cfg)
		if s, ok := log.(*logger.StructuredLogger); ok {
			defer s.Sync()
		}

		app, err := bannerkit.Open(c.Context, cfg, log, bannerkit.Deps{})
		if err != nil {
			return err
		}
		defer app.Close()

		return fn(c, app)
	}
}

func showAction(c *cli.Context, app *bannerkit.App) error {
	state := app.Store.Snapshot()
	w := c.App.Writer

	if c.Bool("json") {
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	width, height := state.BannerSize.OutputDimensions()
	fmt.Fprintf(w, "%s: %s\n", composition.FieldBannerText, state.BannerText)
	fmt.Fprintf(w, "%s: %s\n", composition.FieldFont, state.Font.Value)
	fmt.Fprintf(w, "%s: %s\n", composition.FieldAnimation, state.Animation.Value)
	fmt.Fprintf(w, "%s: %s\n", composition.FieldBackgroundColor, state.BackgroundColor)
	fmt.Fprintf(w, "%s: %s\n", composition.FieldBackgroundImage, describeImage(state))
	fmt.Fprintf(w, "%s: %s\n", composition.FieldOpacity, strconv.FormatFloat(state.Opacity, 'f', -1, 64))
	fmt.Fprintf(w, "%s: %s\n", composition.FieldFilter, state.Filter.Value)
	fmt.Fprintf(w, "%s: %s (%dx%d)\n", composition.FieldBannerSize, state.BannerSize.Value, width, height)
	fmt.Fprintf(w, "darkMode: %t\n", app.Store.DarkMode())
	return nil
}

func describeImage(state composition.State) string {
	img := state.BackgroundImage
	if img.IsZero() {
		return l10n.T("none")
	}
	return fmt.Sprintf("%s %dx%d", img.MIME(), img.Width, img.Height)
}

// setAction routes catalog fields and opacity through their controls so a
// typed value is validated and snapped the same way a dropdown or slider is.
func setAction(c *cli.Context, app *bannerkit.App) error {
	if c.NArg() != 2 {
		return errors.New(l10n.T("field and value arguments are required"))
	}
	field, err := composition.ParseField(c.Args().Get(0))
	if err != nil {
		return err
	}
	value, err := composition.ParseValue(field, c.Args().Get(1))
	if err != nil {
		return err
	}

	switch v := value.(type) {
	case composition.Option:
		control, err := app.Store.Select(field)
		if err != nil {
			return err
		}
		err = control.OnChange(c.Context, v)
		if err != nil {
			return err
		}
	case float64:
		if err := app.Store.Opacity().OnChange(c.Context, v); err != nil {
			return err
		}
	default:
		if _, err := app.Store.SetField(c.Context, field, value); err != nil {
			return err
		}
	}

	current, _ := app.Store.Snapshot().Get(field)
	fmt.Fprintln(c.App.Writer, l10n.F("Set %s to %s", field, formatValue(current)))
	return nil
}

func formatValue(v any) string {
	switch v := v.(type) {
	case composition.Option:
		return v.Value
	case composition.BannerSize:
		return v.Value
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprint(v)
	}
}

func resetAction(c *cli.Context, app *bannerkit.App) error {
	app.Store.Reset(c.Context)
	fmt.Fprintln(c.App.Writer, l10n.T("Composition reset to defaults"))
	return nil
}

func presetsAction(c *cli.Context) error {
	w := c.App.Writer
	list := func(title string, options []composition.Option) {
		fmt.Fprintf(w, "%s:\n", l10n.T(title))
		for _, o := range options {
			if o.Label == o.Value {
				fmt.Fprintf(w, "  %s\n", o.Value)
			} else {
				fmt.Fprintf(w, "  %s (%s)\n", o.Value, o.Label)
			}
		}
	}

	list("Fonts", composition.Fonts)
	list("Animations", composition.Animations)
	list("Filters", composition.Filters)

	fmt.Fprintf(w, "%s:\n", l10n.T("Sizes"))
	for _, s := range composition.BannerSizes {
		width, height := s.OutputDimensions()
		fmt.Fprintf(w, "  %s (%s) %dx%d\n", s.Value, s.Label, width, height)
	}
	return nil
}

func uploadAction(c *cli.Context, app *bannerkit.App) error {
	if c.NArg() != 1 {
		return errors.New(l10n.T("file argument is required"))
	}
	rect, err := rectOption(c)
	if err != nil {
		return err
	}

	img, err := app.Orchestrator.Upload(c.Context, c.Args().First(), orchestrator.UploadOptions{
		Rect:     rect,
		SkipCrop: c.Bool("no-crop"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, l10n.F("Background image set: %dx%d", img.Width, img.Height))
	return nil
}

func cropAction(c *cli.Context, app *bannerkit.App) error {
	rect, err := rectOption(c)
	if err != nil {
		return err
	}
	img, err := app.Orchestrator.Crop(c.Context, rect)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, l10n.F("Background image set: %dx%d", img.Width, img.Height))
	return nil
}

func rectOption(c *cli.Context) (*pipeline.Rectangle, error) {
	if !c.IsSet("rect") {
		return nil, nil
	}
	r, err := parseRect(c.String("rect"))
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// parseRect reads "x,y,width,height".
func parseRect(s string) (pipeline.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return pipeline.Rectangle{}, fmt.Errorf("invalid rectangle %q: want x,y,width,height", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return pipeline.Rectangle{}, fmt.Errorf("invalid rectangle %q: %w", s, err)
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return pipeline.Rectangle{}, fmt.Errorf("invalid rectangle %q: empty area", s)
	}
	return pipeline.Rectangle{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

func removeImageAction(c *cli.Context, app *bannerkit.App) error {
	if err := app.Orchestrator.RemoveImage(c.Context); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, l10n.T("Background image removed"))
	return nil
}

func previewAction(c *cli.Context, app *bannerkit.App) error {
	snap, err := app.Orchestrator.Preview(c.Context)
	if err != nil {
		return err
	}
	defer app.Orchestrator.ClosePreview()

	data, err := snap.Image.Bytes()
	if err != nil {
		return err
	}
	path, err := app.Downloads.Download("preview.png", data)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, l10n.F("Output saved to %s", path))
	return nil
}

func exportAction(c *cli.Context, app *bannerkit.App) error {
	format, err := pipeline.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	outcome, err := app.Orchestrator.Export(c.Context, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, l10n.F("Output saved to %s", outcome.Result.Path))

	if path := c.String("summary"); path != "" {
		writer := summarizer.NewWriter(
			summarizer.NewMarkdownFormatter(
				summarizer.WithTranslator(l10n.T),
				summarizer.WithVersion(version),
			),
			app.FileSystem,
		)
		if err := writer.Write(path, app.Orchestrator.Summary(outcome)); err != nil {
			// The export itself succeeded.
			fmt.Fprintln(c.App.ErrWriter, l10n.F("Failed to write summary: %s", err))
		} else {
			fmt.Fprintln(c.App.Writer, l10n.F("Summary saved to %s", path))
		}
	}
	return nil
}

func darkModeAction(c *cli.Context, app *bannerkit.App) error {
	switch arg := c.Args().First(); arg {
	case "":
	case "on", "true":
		app.Store.SetDarkMode(c.Context, true)
	case "off", "false":
		app.Store.SetDarkMode(c.Context, false)
	default:
		return fmt.Errorf("invalid dark mode %q: want on or off", arg)
	}
	fmt.Fprintf(c.App.Writer, "darkMode: %t\n", app.Store.DarkMode())
	return nil
}

func versionAction(c *cli.Context) error {
	fmt.Fprintln(c.App.Writer, l10n.F("bannerkit version %s", version))
	fmt.Fprintln(c.App.Writer, l10n.F("Go version: %s", runtime.Version()))
	fmt.Fprintln(c.App.Writer, l10n.F("OS/Arch: %s/%s", runtime.GOOS, runtime.GOARCH))
	return nil
}
