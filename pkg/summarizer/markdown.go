package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator translates headings and labels.
func WithTranslator(t func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(v string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = v
	}
}

func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Banner Export Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), s.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "## %s\n\n", t("Banner"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	row(&b, t("Text"), escapeCell(s.Banner.Text))
	row(&b, t("Font"), s.Banner.Font)
	row(&b, t("Animation"), s.Banner.Animation)
	if s.Banner.Background == "image" {
		row(&b, t("Background"), fmt.Sprintf("%s (%dx%d)", t("Image"), s.Banner.ImageWidth, s.Banner.ImageHeight))
	} else {
		row(&b, t("Background"), s.Banner.Background)
	}
	row(&b, t("Filter"), s.Banner.Filter)
	row(&b, t("Opacity"), fmt.Sprintf("%.1f", s.Banner.Opacity))
	row(&b, t("Size"), s.Banner.SizeLabel)
	if s.Banner.DarkMode {
		row(&b, t("Dark Mode"), t("On"))
	} else {
		row(&b, t("Dark Mode"), t("Off"))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Output"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	row(&b, t("Format"), s.Export.Format)
	row(&b, t("File"), s.Export.Filename)
	if s.Export.Path != "" {
		row(&b, t("Path"), s.Export.Path)
	}
	row(&b, t("Dimensions"), fmt.Sprintf("%dx%d", s.Export.Width, s.Export.Height))
	if s.Export.Orientation != "" {
		row(&b, t("Orientation"), t(s.Export.Orientation))
	}
	row(&b, t("File Size"), formatBytes(s.Export.FileSize))
	if s.Capture.Backend != "" {
		row(&b, t("Capture"), fmt.Sprintf("%s @ %.1fx", s.Capture.Backend, s.Capture.Scale))
	}

	if f.version != "" {
		fmt.Fprintf(&b, "\n---\nbannerkit %s\n", f.version)
	}
	return b.String()
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", label, value)
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit && exp < 2; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}
