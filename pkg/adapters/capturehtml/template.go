package capturehtml

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/user/bannerkit/pkg/ports"
)

// DefaultGradient is the background when neither image nor color is set.
const DefaultGradient = "linear-gradient(135deg, #667eea 0%, #764ba2 100%)"

// BannerSelector selects the element that is captured.
const BannerSelector = "#banner"

// TemplateVars contains variables for the banner HTML template.
// CSS and URL fields come from validated settings, so they are marked safe.
type TemplateVars struct {
	Width      int
	Height     int
	Background template.CSS // Color or gradient; empty for image banners
	Filter     template.CSS
	ImageSrc   template.URL // Empty for color banners
	Text       string
	FontFamily template.CSS
	FontSize   int
	TextColor  template.CSS
	Opacity    string
}

// NewTemplateVars resolves a scene into template variables.
func NewTemplateVars(scene ports.Scene) TemplateVars {
	vars := TemplateVars{
		Width:      scene.Width,
		Height:     scene.Height,
		Filter:     template.CSS(cssOr(scene.Filter, "none")),
		Text:       scene.Text,
		FontFamily: template.CSS(familyList(cssOr(scene.FontFamily, "Arial"))),
		FontSize:   int(scene.FontSize),
		TextColor:  template.CSS(cssOr(scene.TextColorCSS, "#ffffff")),
		Opacity:    strconv.FormatFloat(scene.Opacity, 'f', -1, 64),
	}

	if scene.HasImage() {
		vars.ImageSrc = template.URL(scene.BackgroundImageURI)
	} else {
		vars.Background = template.CSS(cssOr(scene.BackgroundCSS, DefaultGradient))
	}
	return vars
}

func cssOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// familyList leaves the family unquoted; multi-word names are valid CSS
// identifier sequences and quotes would be entity-escaped in the attribute.
func familyList(family string) string {
	family = strings.NewReplacer(`'`, "", `"`, "", ";", "", ",", "").Replace(family)
	return family + ", sans-serif"
}

var bannerTemplate = template.Must(template.New("banner").Parse(defaultHTMLTemplate))

// RenderHTML renders the banner HTML template with the given variables.
func RenderHTML(vars TemplateVars) (string, error) {
	var buf bytes.Buffer
	if err := bannerTemplate.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// defaultHTMLTemplate mirrors the live banner: a color banner gets a 30%
// black overlay and the filter on the whole container; an image banner
// cover-fits the image and filters only the image.
const defaultHTMLTemplate = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <style>
      * {
        margin: 0;
        padding: 0;
        box-sizing: border-box;
      }
      html, body {
        background: transparent;
      }
      #banner {
        position: relative;
        width: {{.Width}}px;
        height: {{.Height}}px;
        overflow: hidden;
        display: flex;
        align-items: center;
        justify-content: center;
      }
      .bg, .overlay {
        position: absolute;
        inset: 0;
      }
      .bg img {
        display: block;
        width: 100%;
        height: 100%;
        object-fit: cover;
      }
      .overlay {
        background-color: #000;
        opacity: 0.3;
      }
      .text {
        position: relative;
        max-width: 90%;
        padding: 24px;
        border-radius: 8px;
        background-color: rgba(0, 0, 0, 0.5);
        box-shadow: 0 25px 50px -12px rgba(0, 0, 0, 0.25);
        font-size: {{.FontSize}}px;
        font-weight: 800;
        line-height: 1.2;
        text-align: center;
        white-space: pre-wrap;
      }
    </style>
  </head>
  <body>
{{- if .ImageSrc}}
    <div id="banner">
      <div class="bg"><img src="{{.ImageSrc}}" alt="Banner" style="filter: {{.Filter}}"></div>
{{- else}}
    <div id="banner" style="background: {{.Background}}; filter: {{.Filter}}">
      <div class="overlay"></div>
{{- end}}
      <p class="text" style="font-family: {{.FontFamily}}; color: {{.TextColor}}; opacity: {{.Opacity}}">{{.Text}}</p>
    </div>
  </body>
</html>`
