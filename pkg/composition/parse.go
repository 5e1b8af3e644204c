package composition

import (
	"fmt"
	"strconv"
)

// ParseValue converts a textual value, as typed on a command line, into the
// value SetField expects for field. Background images are set through the
// upload and crop operations, not as text.
func ParseValue(field Field, text string) (any, error) {
	switch field {
	case FieldBannerText, FieldBackgroundColor:
		return text, nil
	case FieldFont, FieldAnimation, FieldFilter, FieldBannerSize:
		catalog := catalogFor(field)
		if o, ok := LookupOption(catalog, text); ok {
			return o, nil
		}
		// Labels are accepted too: "Grayscale" as well as "grayscale(100%)".
		for _, o := range catalog {
			if o.Label == text {
				return o, nil
			}
		}
		return nil, fmt.Errorf("%w: %s has no option %q", ErrInvalidValue, field, text)
	case FieldOpacity:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: opacity %q: %v", ErrInvalidValue, text, err)
		}
		return v, nil
	case FieldBackgroundImage:
		if text == "" || text == "null" {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: bgImage can only be cleared as text", ErrInvalidValue)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}
