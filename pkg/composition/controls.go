package composition

import (
	"context"
	"fmt"
	"math"
)

// Selectable is a dropdown-style control bound to one catalog field.
type Selectable interface {
	Options() []Option
	Value() Option
	OnChange(ctx context.Context, o Option) error
}

// Ranged is a slider-style numeric control.
type Ranged interface {
	Bounds() (min, max, step float64)
	Value() float64
	OnChange(ctx context.Context, v float64) error
}

type selectControl struct {
	store *Store
	field Field
}

// Select returns the control for a catalog field: font, animation, filter
// or bannerSize.
func (s *Store) Select(field Field) (Selectable, error) {
	if catalogFor(field) == nil {
		return nil, fmt.Errorf("%w: %s is not selectable", ErrUnknownField, field)
	}
	return &selectControl{store: s, field: field}, nil
}

func (c *selectControl) Options() []Option {
	return catalogFor(c.field)
}

func (c *selectControl) Value() Option {
	state := c.store.Snapshot()
	switch c.field {
	case FieldFont:
		return state.Font
	case FieldAnimation:
		return state.Animation
	case FieldFilter:
		return state.Filter
	default:
		return state.BannerSize.Option()
	}
}

func (c *selectControl) OnChange(ctx context.Context, o Option) error {
	_, err := c.store.SetField(ctx, c.field, o)
	return err
}

type opacityControl struct {
	store *Store
}

// Opacity returns the text opacity control.
func (s *Store) Opacity() Ranged {
	return opacityControl{store: s}
}

func (c opacityControl) Bounds() (min, max, step float64) {
	return OpacityMin, OpacityMax, OpacityStep
}

func (c opacityControl) Value() float64 {
	return c.store.Snapshot().Opacity
}

// OnChange snaps v to the nearest step inside the bounds.
func (c opacityControl) OnChange(ctx context.Context, v float64) error {
	snapped := math.Round(v/OpacityStep) * OpacityStep
	snapped = math.Max(OpacityMin, math.Min(OpacityMax, snapped))
	// Trim float noise such as 0.30000000000000004.
	snapped = math.Round(snapped*10) / 10
	_, err := c.store.SetField(ctx, FieldOpacity, snapped)
	return err
}
