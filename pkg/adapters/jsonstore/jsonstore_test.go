package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/user/bannerkit/pkg/mocks"
)

func TestStore_GetMissingFile(t *testing.T) {
	s := New("/state/bannerkit.json", mocks.NewFileSystem())

	v, found, err := s.Get(context.Background(), "bannerSettings")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found || v != nil {
		t.Errorf("expected missing key, got %q found=%v", v, found)
	}
}

func TestStore_SetKeepsOtherKeys(t *testing.T) {
	fs := mocks.NewFileSystem()
	s := New("/state/bannerkit.json", fs)
	ctx := context.Background()

	if err := s.Set(ctx, "darkMode", []byte("true")); err != nil {
		t.Fatalf("Set darkMode: %v", err)
	}
	if err := s.Set(ctx, "bannerSettings", []byte(`{"font":"Georgia"}`)); err != nil {
		t.Fatalf("Set bannerSettings: %v", err)
	}

	v, found, err := s.Get(ctx, "darkMode")
	if err != nil || !found || string(v) != "true" {
		t.Errorf("darkMode = %q, %v, %v", v, found, err)
	}

	raw, ok := fs.GetFile("/state/bannerkit.json")
	if !ok {
		t.Fatal("expected the document to be written")
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("document is not JSON: %v", err)
	}
	if len(doc) != 2 {
		t.Errorf("expected 2 keys, got %d", len(doc))
	}

	var settings map[string]string
	if err := json.Unmarshal(doc["bannerSettings"], &settings); err != nil || settings["font"] != "Georgia" {
		t.Errorf("unexpected settings %s", doc["bannerSettings"])
	}
}

func TestStore_CorruptFileReadsEmpty(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("/state/bannerkit.json", []byte("{not json"))
	s := New("/state/bannerkit.json", fs)
	ctx := context.Background()

	if _, found, err := s.Get(ctx, "bannerSettings"); err != nil || found {
		t.Errorf("expected missing key, got found=%v err=%v", found, err)
	}

	if err := s.Set(ctx, "darkMode", []byte("false")); err != nil {
		t.Fatalf("Set over corrupt file: %v", err)
	}
	if v, found, _ := s.Get(ctx, "darkMode"); !found || string(v) != "false" {
		t.Errorf("darkMode = %q, %v", v, found)
	}
}

func TestStore_SetRejectsInvalidJSON(t *testing.T) {
	s := New("/state/bannerkit.json", mocks.NewFileSystem())

	err := s.Set(context.Background(), "bannerSettings", []byte("{oops"))
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}

func TestStore_WriteFailure(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error {
		return errors.New("disk full")
	}
	s := New("/state/bannerkit.json", fs)

	if err := s.Set(context.Background(), "darkMode", []byte("true")); err == nil {
		t.Error("expected write error")
	}
}

func TestStore_CanceledContext(t *testing.T) {
	s := New("/state/bannerkit.json", mocks.NewFileSystem())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := s.Get(ctx, "darkMode"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
