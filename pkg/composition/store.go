package composition

import (
	"context"
	"fmt"
	"sync"

	"github.com/user/bannerkit/pkg/config"
	"github.com/user/bannerkit/pkg/ports"
	"github.com/user/bannerkit/pkg/raster"
)

// Observer receives the snapshot produced by each mutation.
type Observer func(State)

// Store owns the composition record. All writes go through SetField; every
// successful write notifies observers synchronously with the new snapshot.
type Store struct {
	mu        sync.Mutex
	state     State
	darkMode  bool
	observers map[int]Observer
	nextID    int

	kv     ports.KeyValueStore
	logger ports.Logger
}

// NewStore creates an in-memory store seeded with initial.
func NewStore(initial State, logger ports.Logger) *Store {
	return &Store{
		state:     initial,
		observers: make(map[int]Observer),
		logger:    logger.WithComponent("composition"),
	}
}

// Open loads the record and the dark mode flag from kv and persists every
// later write back to it. Missing or malformed values fall back to defaults.
func Open(ctx context.Context, kv ports.KeyValueStore, logger ports.Logger) *Store {
	s := NewStore(Defaults(), logger)
	s.kv = kv
	s.state = Load(ctx, kv, s.logger)
	s.darkMode = LoadDarkMode(ctx, kv, s.logger)
	return s
}

// Snapshot returns a copy of the current record.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// DarkMode reports the dark mode flag.
func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

// Subscribe registers an observer and returns a function that removes it.
func (s *Store) Subscribe(o Observer) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = o
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// SetField replaces exactly one field and leaves all others untouched.
// Setting the background image keeps the background color for later.
func (s *Store) SetField(ctx context.Context, field Field, value any) (State, error) {
	s.mu.Lock()
	next, err := apply(s.state, field, value)
	if err != nil {
		s.mu.Unlock()
		return next, err
	}
	s.state = next
	observers := s.snapshotObservers()
	s.mu.Unlock()

	s.logger.Debug("Set %s", field)
	s.persist(ctx, next)
	notify(observers, next)
	return next, nil
}

// Reset restores the default record.
func (s *Store) Reset(ctx context.Context) State {
	s.mu.Lock()
	s.state = Defaults()
	next := s.state
	observers := s.snapshotObservers()
	s.mu.Unlock()

	s.persist(ctx, next)
	notify(observers, next)
	return next
}

// SetDarkMode updates the dark mode flag and re-notifies observers.
func (s *Store) SetDarkMode(ctx context.Context, on bool) {
	s.mu.Lock()
	s.darkMode = on
	current := s.state
	observers := s.snapshotObservers()
	s.mu.Unlock()

	if s.kv != nil {
		if err := SaveDarkMode(ctx, s.kv, on); err != nil {
			s.logger.Warn("Failed to save dark mode: %v", err)
		}
	}
	notify(observers, current)
}

func (s *Store) snapshotObservers() []Observer {
	list := make([]Observer, 0, len(s.observers))
	for i := 0; i < s.nextID; i++ {
		if o, ok := s.observers[i]; ok {
			list = append(list, o)
		}
	}
	return list
}

func (s *Store) persist(ctx context.Context, state State) {
	if s.kv == nil {
		return
	}
	if err := Save(ctx, s.kv, state); err != nil {
		// The in-memory record stays authoritative.
		s.logger.Warn("Failed to save settings: %v", err)
	}
}

func notify(observers []Observer, state State) {
	for _, o := range observers {
		o(state)
	}
}

func apply(s State, field Field, value any) (State, error) {
	invalid := func() (State, error) {
		return s, fmt.Errorf("%w: %s = %v (%T)", ErrInvalidValue, field, value, value)
	}

	switch field {
	case FieldBannerText:
		v, ok := value.(string)
		if !ok {
			return invalid()
		}
		s.BannerText = v

	case FieldFont, FieldAnimation, FieldFilter:
		opt, ok := catalogValue(catalogFor(field), value)
		if !ok {
			return invalid()
		}
		switch field {
		case FieldFont:
			s.Font = opt
		case FieldAnimation:
			s.Animation = opt
		default:
			s.Filter = opt
		}

	case FieldBackgroundColor:
		v, ok := value.(string)
		if !ok {
			return invalid()
		}
		if _, ok := config.ParseColor(v); !ok {
			return invalid()
		}
		s.BackgroundColor = v

	case FieldBackgroundImage:
		switch v := value.(type) {
		case nil:
			s.BackgroundImage = raster.Image{}
		case raster.Image:
			s.BackgroundImage = v
		case *raster.Image:
			if v == nil {
				s.BackgroundImage = raster.Image{}
			} else {
				s.BackgroundImage = *v
			}
		default:
			return invalid()
		}

	case FieldOpacity:
		var v float64
		switch n := value.(type) {
		case float64:
			v = n
		case int:
			v = float64(n)
		default:
			return invalid()
		}
		if !inOpacityRange(v) {
			return invalid()
		}
		s.Opacity = v

	case FieldBannerSize:
		switch v := value.(type) {
		case BannerSize:
			if v.Height <= 0 || v.Aspect <= 0 {
				return invalid()
			}
			s.BannerSize = v
		case string:
			size, ok := LookupSize(v)
			if !ok {
				return invalid()
			}
			s.BannerSize = size
		case Option:
			size, ok := LookupSize(v.Value)
			if !ok {
				return invalid()
			}
			s.BannerSize = size
		default:
			return invalid()
		}

	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	return s, nil
}

func catalogFor(field Field) []Option {
	switch field {
	case FieldFont:
		return Fonts
	case FieldAnimation:
		return Animations
	case FieldFilter:
		return Filters
	case FieldBannerSize:
		return SizeOptions()
	default:
		return nil
	}
}

func catalogValue(catalog []Option, value any) (Option, bool) {
	switch v := value.(type) {
	case Option:
		return LookupOption(catalog, v.Value)
	case string:
		return LookupOption(catalog, v)
	default:
		return Option{}, false
	}
}

const opacityEpsilon = 1e-9

func inOpacityRange(v float64) bool {
	return v >= OpacityMin-opacityEpsilon && v <= OpacityMax+opacityEpsilon
}
