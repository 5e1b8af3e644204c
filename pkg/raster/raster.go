// Package raster holds encoded image payloads in their portable data URI form.
package raster

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/user/bannerkit/pkg/ports"
)

var (
	// ErrNotDataURI is returned when a payload is not a base64 data URI.
	ErrNotDataURI = errors.New("raster: not a base64 data URI")

	// ErrEmpty is returned when a payload carries no bytes.
	ErrEmpty = errors.New("raster: empty payload")
)

const dataURIPrefix = "data:"

// Image is an encoded raster payload plus its pixel dimensions.
// Width and Height are zero when the payload could not be inspected.
type Image struct {
	DataURI string
	Width   int
	Height  int
}

// IsZero reports whether the image carries no payload.
func (img Image) IsZero() bool {
	return img.DataURI == ""
}

// FromBytes wraps encoded image bytes as a data URI. An empty mime is sniffed
// from the content.
func FromBytes(data []byte, mime string, width, height int) Image {
	if mime == "" {
		// Drop parameters such as "; charset=utf-8" from text sniffs.
		mime, _, _ = strings.Cut(mimetype.Detect(data).String(), ";")
	}
	return Image{
		DataURI: dataURIPrefix + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
		Width:   width,
		Height:  height,
	}
}

// Parse wraps encoded bytes, reading dimensions from the image header.
// Unreadable headers leave the dimensions at zero; decoding is the crop
// engine's job and fails there.
func Parse(data []byte) Image {
	img := FromBytes(data, "", 0, 0)
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		img.Width = cfg.Width
		img.Height = cfg.Height
	}
	return img
}

// FromFile reads an uploaded file and converts it to a data URI payload.
func FromFile(fs ports.FileSystem, path string) (Image, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return Image{}, ErrEmpty
	}
	return Parse(data), nil
}

// FromDataURI parses a stored data URI and fills in its dimensions.
func FromDataURI(uri string) (Image, error) {
	img := Image{DataURI: uri}
	data, err := img.Bytes()
	if err != nil {
		return Image{}, err
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		img.Width = cfg.Width
		img.Height = cfg.Height
	}
	return img, nil
}

// MIME returns the media type declared by the data URI.
func (img Image) MIME() string {
	rest, ok := strings.CutPrefix(img.DataURI, dataURIPrefix)
	if !ok {
		return ""
	}
	mime, _, _ := strings.Cut(rest, ";")
	return mime
}

// Bytes returns the encoded payload.
func (img Image) Bytes() ([]byte, error) {
	rest, ok := strings.CutPrefix(img.DataURI, dataURIPrefix)
	if !ok {
		return nil, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrNotDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDataURI, err)
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	return data, nil
}

// Decode decodes the payload into pixels.
func (img Image) Decode() (image.Image, error) {
	data, err := img.Bytes()
	if err != nil {
		return nil, err
	}
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", img.MIME(), err)
	}
	return decoded, nil
}

// MarshalJSON stores the image as its data URI string, or null when empty.
func (img Image) MarshalJSON() ([]byte, error) {
	if img.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(img.DataURI)
}

// UnmarshalJSON accepts a data URI string or null.
func (img *Image) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*img = Image{}
		return nil
	}
	var uri string
	if err := json.Unmarshal(data, &uri); err != nil {
		return err
	}
	if uri == "" {
		*img = Image{}
		return nil
	}
	parsed, err := FromDataURI(uri)
	if err != nil {
		return err
	}
	*img = parsed
	return nil
}
