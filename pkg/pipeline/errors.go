package pipeline

import "errors"

var (
	// ErrDecodeFailure is returned when a source image cannot be decoded.
	ErrDecodeFailure = errors.New("pipeline: source image could not be decoded")

	// ErrEncodeFailure is returned when a destination surface cannot be
	// finalized into an encoded payload.
	ErrEncodeFailure = errors.New("pipeline: output could not be encoded")

	// ErrCaptureUnavailable is returned when the visual region is not attached yet.
	// Callers show a loading state instead of treating it as a failure.
	ErrCaptureUnavailable = errors.New("pipeline: visual region not available")

	// ErrInvalidCrop is returned when a crop rectangle lies outside the source.
	ErrInvalidCrop = errors.New("pipeline: crop rectangle outside source bounds")

	// ErrUnknownFormat is returned for an export format that is not supported.
	ErrUnknownFormat = errors.New("pipeline: unknown export format")
)
