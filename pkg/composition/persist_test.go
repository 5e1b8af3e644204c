package composition

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/user/bannerkit/pkg/mocks"
	"github.com/user/bannerkit/pkg/raster"
)

func TestOpen_MissingUsesDefaults(t *testing.T) {
	s := Open(context.Background(), mocks.NewKeyValueStore(), mocks.NewLogger())

	if s.Snapshot() != Defaults() {
		t.Errorf("Snapshot() = %+v, want defaults", s.Snapshot())
	}
	if s.DarkMode() {
		t.Error("dark mode should default to off")
	}
}

func TestOpen_MalformedUsesDefaults(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not json", "{oops"},
		{"wrong type", `"just a string"`},
		{"bad image", `{"bgImage":"not-a-data-uri"}`},
		{"opacity out of range", `{"opacity":7}`},
		{"unknown font", `{"font":{"value":"Papyrus","label":"Papyrus"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := mocks.NewKeyValueStore()
			kv.Put(SettingsKey, tt.value)
			kv.Put(DarkModeKey, `"yes"`)
			log := mocks.NewLogger()

			s := Open(context.Background(), kv, log)
			if s.Snapshot() != Defaults() {
				t.Errorf("Snapshot() = %+v, want defaults", s.Snapshot())
			}
			if s.DarkMode() {
				t.Error("malformed dark mode should read as off")
			}
		})
	}
}

func TestOpen_ReadErrorUsesDefaults(t *testing.T) {
	kv := mocks.NewKeyValueStore()
	kv.GetFunc = func(ctx context.Context, key string) ([]byte, bool, error) {
		return nil, false, errors.New("connection refused")
	}
	log := mocks.NewLogger()

	s := Open(context.Background(), kv, log)
	if s.Snapshot() != Defaults() {
		t.Error("expected defaults")
	}
	if log.WarnCount() != 2 {
		t.Errorf("warnings = %d, want 2", log.WarnCount())
	}
}

func TestOpen_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := mocks.NewKeyValueStore()

	s := Open(ctx, kv, mocks.NewLogger())
	s.SetField(ctx, FieldBannerText, "Persisted")
	s.SetField(ctx, FieldBackgroundColor, "#123456")
	s.SetField(ctx, FieldBackgroundImage, testImage(t, 8, 6))
	s.SetField(ctx, FieldBannerSize, "large")
	s.SetDarkMode(ctx, true)

	raw, ok := kv.Raw(SettingsKey)
	if !ok {
		t.Fatal("settings not stored")
	}
	if !strings.Contains(raw, `"bgImage":"data:image/png;base64,`) {
		t.Errorf("bgImage not stored as data URI: %s", raw)
	}
	if dm, _ := kv.Raw(DarkModeKey); dm != "true" {
		t.Errorf("darkMode = %q", dm)
	}

	reopened := Open(ctx, kv, mocks.NewLogger())
	got := reopened.Snapshot()
	if got != s.Snapshot() {
		t.Errorf("reopened = %+v, want %+v", got, s.Snapshot())
	}
	if got.BackgroundImage.Width != 8 || got.BackgroundImage.Height != 6 {
		t.Errorf("image dims = %dx%d", got.BackgroundImage.Width, got.BackgroundImage.Height)
	}
	if !reopened.DarkMode() {
		t.Error("dark mode lost")
	}
}

func TestOpen_PartialRecordKeepsDefaults(t *testing.T) {
	kv := mocks.NewKeyValueStore()
	kv.Put(SettingsKey, `{"bannerText":"Only text","bgImage":null}`)

	got := Open(context.Background(), kv, mocks.NewLogger()).Snapshot()
	want := Defaults()
	want.BannerText = "Only text"
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSetField_PersistFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	kv := mocks.NewKeyValueStore()
	log := mocks.NewLogger()
	s := Open(ctx, kv, log)
	kv.SetFunc = func(ctx context.Context, key string, value []byte) error {
		return errors.New("quota exceeded")
	}

	state, err := s.SetField(ctx, FieldBannerText, "kept")
	if err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if state.BannerText != "kept" {
		t.Error("in-memory state not updated")
	}
	if log.WarnCount() != 1 {
		t.Errorf("warnings = %d, want 1", log.WarnCount())
	}
}

func TestState_JSONKeys(t *testing.T) {
	data, err := json.Marshal(Defaults())
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	json.Unmarshal(data, &m)

	for _, key := range []string{"bannerText", "font", "animation", "bgColor", "bgImage", "opacity", "filter", "bannerSize"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	if m["bgImage"] != nil {
		t.Errorf("bgImage = %v, want null", m["bgImage"])
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		field   Field
		text    string
		want    any
		wantErr bool
	}{
		{FieldBannerText, "Hi", "Hi", false},
		{FieldFilter, "Grayscale", Filters[1], false},
		{FieldFilter, "blur(5px)", Filters[3], false},
		{FieldBannerSize, "square", Option{Value: "square", Label: "Square (400px)"}, false},
		{FieldOpacity, "0.5", 0.5, false},
		{FieldOpacity, "half", nil, true},
		{FieldFont, "Papyrus", nil, true},
		{FieldBackgroundImage, "null", nil, false},
		{FieldBackgroundImage, "data:...", nil, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.field)+"="+tt.text, func(t *testing.T) {
			got, err := ParseValue(tt.field, tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestOriginal_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	kv := mocks.NewKeyValueStore()

	if _, ok, err := LoadOriginal(ctx, kv); ok || err != nil {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	img := testImage(t, 40, 30)
	if err := SaveOriginal(ctx, kv, img); err != nil {
		t.Fatalf("SaveOriginal failed: %v", err)
	}
	got, ok, err := LoadOriginal(ctx, kv)
	if err != nil || !ok {
		t.Fatalf("LoadOriginal: ok=%v err=%v", ok, err)
	}
	if got.DataURI != img.DataURI || got.Width != 40 || got.Height != 30 {
		t.Errorf("LoadOriginal = %dx%d", got.Width, got.Height)
	}

	if err := SaveOriginal(ctx, kv, raster.Image{}); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if raw, _ := kv.Raw(OriginalKey); raw != "null" {
		t.Errorf("stored %q, want null", raw)
	}
	if _, ok, _ := LoadOriginal(ctx, kv); ok {
		t.Error("expected cleared original")
	}
}

func TestOriginal_MalformedIsAbsent(t *testing.T) {
	kv := mocks.NewKeyValueStore()
	kv.Put(OriginalKey, `"data:nonsense"`)

	if _, ok, err := LoadOriginal(context.Background(), kv); ok || err != nil {
		t.Errorf("ok=%v err=%v, want absent", ok, err)
	}
}
