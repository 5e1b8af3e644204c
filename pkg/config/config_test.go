package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in     string
		want   color.RGBA
		wantOK bool
	}{
		{"#ffffff", color.RGBA{255, 255, 255, 255}, true},
		{"#667eea", color.RGBA{0x66, 0x7e, 0xea, 255}, true},
		{"#FFF", color.RGBA{255, 255, 255, 255}, true},
		{"#000", color.RGBA{0, 0, 0, 255}, true},
		{"red", color.RGBA{}, false},
		{"", color.RGBA{}, false},
		{"#12345", color.RGBA{}, false},
		{"#1234567", color.RGBA{}, false},
		{"#12345g", color.RGBA{}, false},
		{"#ggg", color.RGBA{}, false},
		{"ffffff", color.RGBA{}, false},
		{"#", color.RGBA{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bannerkit.yaml")
	content := `
output_dir: ./exports
jpeg_quality: 80
capture:
  backend: chrome
store:
  backend: redis
  redis_addr: cache:6379
fonts:
  Georgia: /fonts/georgia.ttf
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.OutputDir != "./exports" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.JPEGQuality != 80 {
		t.Errorf("JPEGQuality = %d", cfg.JPEGQuality)
	}
	if cfg.Capture.Backend != CaptureChrome {
		t.Errorf("Capture.Backend = %q", cfg.Capture.Backend)
	}
	if !cfg.Capture.Headless {
		t.Error("expected Headless default to survive partial capture section")
	}
	if cfg.Store.Backend != StoreRedis || cfg.Store.RedisAddr != "cache:6379" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Store.KeyPrefix != "bannerkit:" {
		t.Errorf("KeyPrefix default lost: %q", cfg.Store.KeyPrefix)
	}
	if cfg.Fonts["Georgia"] != "/fonts/georgia.ttf" {
		t.Errorf("Fonts = %v", cfg.Fonts)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.JPEGQuality != 92 {
		t.Errorf("JPEGQuality = %d, want default 92", cfg.JPEGQuality)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BANNERKIT_OUTPUT_DIR", "/tmp/out")
	t.Setenv("BANNERKIT_REDIS_DB", "3")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Store.RedisDB != 3 {
		t.Errorf("RedisDB = %d", cfg.Store.RedisDB)
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("capture: [unclosed"), 0644)

	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected YAML error")
	}
}
