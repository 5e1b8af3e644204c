package composition

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/user/bannerkit/pkg/ports"
	"github.com/user/bannerkit/pkg/raster"
)

// Keys under which the record, the dark mode flag and the re-crop source are stored.
const (
	SettingsKey = "bannerSettings"
	DarkModeKey = "darkMode"
	OriginalKey = "bannerOriginal"
)

// Load reads the record from kv. A missing, unreadable or invalid value
// yields Defaults; the cause is only logged.
func Load(ctx context.Context, kv ports.KeyValueStore, logger ports.Logger) State {
	data, found, err := kv.Get(ctx, SettingsKey)
	if err != nil {
		logger.Warn("Failed to read settings: %v", err)
		return Defaults()
	}
	if !found {
		return Defaults()
	}

	state, err := decodeState(data)
	if err != nil {
		logger.Warn("Stored settings are malformed, using defaults: %v", err)
		return Defaults()
	}
	return state
}

// Save writes the record to kv as JSON.
func Save(ctx context.Context, kv ports.KeyValueStore, state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return kv.Set(ctx, SettingsKey, data)
}

// LoadDarkMode reads the dark mode flag; anything but a JSON boolean is false.
func LoadDarkMode(ctx context.Context, kv ports.KeyValueStore, logger ports.Logger) bool {
	data, found, err := kv.Get(ctx, DarkModeKey)
	if err != nil {
		logger.Warn("Failed to read dark mode: %v", err)
		return false
	}
	if !found {
		return false
	}
	var on bool
	if err := json.Unmarshal(data, &on); err != nil {
		return false
	}
	return on
}

// SaveDarkMode writes the dark mode flag.
func SaveDarkMode(ctx context.Context, kv ports.KeyValueStore, on bool) error {
	data, _ := json.Marshal(on)
	return kv.Set(ctx, DarkModeKey, data)
}

// LoadOriginal reads the image that the next re-crop starts from.
// ok is false when none is stored or the value is unreadable.
func LoadOriginal(ctx context.Context, kv ports.KeyValueStore) (img raster.Image, ok bool, err error) {
	data, found, err := kv.Get(ctx, OriginalKey)
	if err != nil || !found {
		return raster.Image{}, false, err
	}
	if err := json.Unmarshal(data, &img); err != nil {
		return raster.Image{}, false, nil
	}
	return img, !img.IsZero(), nil
}

// SaveOriginal stores the re-crop source. A zero image clears it.
func SaveOriginal(ctx context.Context, kv ports.KeyValueStore, img raster.Image) error {
	data, err := json.Marshal(img)
	if err != nil {
		return fmt.Errorf("marshal original: %w", err)
	}
	return kv.Set(ctx, OriginalKey, data)
}

// decodeState parses a stored record on top of the defaults and re-validates
// every field through the same rules SetField applies.
func decodeState(data []byte) (State, error) {
	decoded := Defaults()
	if err := json.Unmarshal(data, &decoded); err != nil {
		return State{}, err
	}

	state := Defaults()
	for _, f := range Fields {
		v, _ := decoded.Get(f)
		next, err := apply(state, f, v)
		if err != nil {
			return State{}, err
		}
		state = next
	}
	return state, nil
}
