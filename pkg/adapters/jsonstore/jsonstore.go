// Package jsonstore keeps key-value records in a single JSON document on disk,
// one top-level member per key.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/user/bannerkit/pkg/ports"
)

// ErrInvalidValue is returned by Set when the value is not a JSON document.
var ErrInvalidValue = errors.New("jsonstore: value is not valid JSON")

// Store implements ports.KeyValueStore on top of ports.FileSystem.
type Store struct {
	mu   sync.Mutex
	path string
	fs   ports.FileSystem
}

func New(path string, fs ports.FileSystem) *Store {
	return &Store{path: path, fs: fs}
}

// Get returns the raw JSON stored under key. A missing or unparseable file
// reads as empty.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, false, err
	}
	v, ok := doc[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

// Set stores value under key and rewrites the file. Other keys are kept.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("%w: key %s", ErrInvalidValue, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc[key] = json.RawMessage(value)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", s.path, err)
	}
	if err := s.fs.WriteFile(s.path, append(data, '\n')); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) read() (map[string]json.RawMessage, error) {
	doc := make(map[string]json.RawMessage)

	exists, err := s.fs.Exists(s.path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", s.path, err)
	}
	if !exists {
		return doc, nil
	}

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return make(map[string]json.RawMessage), nil
	}
	return doc, nil
}

var _ ports.KeyValueStore = (*Store)(nil)
