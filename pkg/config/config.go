// Package config provides configuration loading and management.
package config

import (
	"errors"
	"image/color"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Capture backends.
const (
	CaptureCanvas = "canvas"
	CaptureChrome = "chrome"
)

// Store backends.
const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

// Config represents the full configuration for bannerkit.
type Config struct {
	// Persistence
	Store StoreConfig `yaml:"store"`

	// Capture
	Capture CaptureConfig `yaml:"capture"`

	// Export
	OutputDir   string `yaml:"output_dir"`
	JPEGQuality int    `yaml:"jpeg_quality"`

	// Fonts maps a font family from the catalog to a TTF file that replaces
	// the embedded face.
	Fonts map[string]string `yaml:"fonts"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // "console" or "json"

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// StoreConfig selects where the composition record and dark mode flag live.
type StoreConfig struct {
	Backend       string `yaml:"backend"`
	Path          string `yaml:"path"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	KeyPrefix     string `yaml:"key_prefix"`
}

// CaptureConfig selects how the visual region is rasterized.
type CaptureConfig struct {
	Backend    string `yaml:"backend"`
	ChromePath string `yaml:"chrome_path"`
	Headless   bool   `yaml:"headless"`
	NoSandbox  bool   `yaml:"no_sandbox"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Store: StoreConfig{
			Backend:   StoreFile,
			Path:      "./bannerkit.json",
			RedisAddr: "localhost:6379",
			KeyPrefix: "bannerkit:",
		},
		Capture: CaptureConfig{
			Backend:  CaptureCanvas,
			Headless: true,
		},
		OutputDir:   ".",
		JPEGQuality: 92,
		LogLevel:    "info",
		LogFormat:   "console",
		DebugDir:    "./debug",
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment (including a .env file in the working directory).
// A missing file at path is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		loaded, err := LoadFromFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
		if err == nil {
			cfg = loaded
		}
	}

	// .env is optional
	_ = godotenv.Load()
	cfg.applyEnv()

	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Store.Backend = getEnv("BANNERKIT_STORE", c.Store.Backend)
	c.Store.Path = getEnv("BANNERKIT_STATE", c.Store.Path)
	c.Store.RedisAddr = getEnv("BANNERKIT_REDIS_ADDR", c.Store.RedisAddr)
	c.Store.RedisPassword = getEnv("BANNERKIT_REDIS_PASSWORD", c.Store.RedisPassword)
	c.Store.RedisDB = getEnvAsInt("BANNERKIT_REDIS_DB", c.Store.RedisDB)
	c.Capture.Backend = getEnv("BANNERKIT_CAPTURE", c.Capture.Backend)
	c.Capture.ChromePath = getEnv("CHROME_PATH", c.Capture.ChromePath)
	c.OutputDir = getEnv("BANNERKIT_OUTPUT_DIR", c.OutputDir)
	c.LogLevel = getEnv("BANNERKIT_LOG_LEVEL", c.LogLevel)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// ParseColor parses a CSS hex color ("#rgb" or "#rrggbb").
// ok is false for anything else.
func ParseColor(hex string) (c color.Color, ok bool) {
	if !isHexColor(hex) {
		return color.Black, false
	}
	if len(hex) == 4 {
		hex = string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	parsed, err := colorful.Hex(hex)
	if err != nil {
		return color.Black, false
	}
	r, g, b := parsed.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, true
}

// isHexColor reports whether s is '#' followed by exactly 3 or 6 hex digits.
func isHexColor(s string) bool {
	if (len(s) != 4 && len(s) != 7) || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
