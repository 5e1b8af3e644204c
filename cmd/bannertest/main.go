package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/bannerkit/pkg/adapters/canvascapture"
	"github.com/user/bannerkit/pkg/adapters/ggrenderer"
	"github.com/user/bannerkit/pkg/adapters/logger"
	"github.com/user/bannerkit/pkg/composition"
	"github.com/user/bannerkit/pkg/ports"
	"github.com/user/bannerkit/pkg/view"
)

// Renders every size preset once per filter so layouts can be checked by eye.
func main() {
	log := logger.NewNoop()
	renderer := ggrenderer.New()
	capturer := canvascapture.New(renderer, log)

	if err := os.MkdirAll("tmp", 0755); err != nil {
		fmt.Printf("Error creating tmp: %v\n", err)
		os.Exit(1)
	}

	for i, size := range composition.BannerSizes {
		state := composition.Defaults()
		state.BannerSize = size
		state.BannerText = "サンプルバナー - " + size.Label
		state.Font = composition.Fonts[i%len(composition.Fonts)]

		for _, filter := range composition.Filters {
			state.Filter = filter
			scene := view.SceneFor(state, i%2 == 1, log)

			img, err := capturer.Capture(context.Background(), scene)
			if err != nil {
				fmt.Printf("Error capturing %s: %v\n", size.Value, err)
				continue
			}

			data, err := renderer.EncodeImage(img, ports.FormatPNG, 0)
			if err != nil {
				fmt.Printf("Error encoding PNG: %v\n", err)
				continue
			}

			filename := filepath.Join("tmp", fmt.Sprintf("banner_%s_%s.png", size.Value, filter.Label))
			if err := os.WriteFile(filename, data, 0644); err != nil {
				fmt.Printf("Error writing file: %v\n", err)
				continue
			}

			fmt.Printf("Generated %s (%dx%d)\n", filename, img.Bounds().Dx(), img.Bounds().Dy())
		}
	}
}
