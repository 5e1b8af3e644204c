package ggrenderer

import (
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomonobold"
)

// Embedded stand-ins for the catalog families. Banner text is extra bold.
var embedded = map[string][]byte{
	"Arial":           gobold.TTF,
	"Verdana":         gobold.TTF,
	"Courier New":     gomonobold.TTF,
	"Georgia":         gomedium.TTF,
	"Times New Roman": gomedium.TTF,
}

type faceKey struct {
	family string
	size   float64
}

// fontBook parses each font once and caches faces per size.
type fontBook struct {
	mu     sync.Mutex
	paths  map[string]string
	parsed map[string]*truetype.Font
	faces  map[faceKey]font.Face
}

func newFontBook(paths map[string]string) *fontBook {
	return &fontBook{
		paths:  paths,
		parsed: make(map[string]*truetype.Font),
		faces:  make(map[faceKey]font.Face),
	}
}

func (b *fontBook) face(family string, size float64) font.Face {
	if size <= 0 {
		size = 16
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	key := faceKey{family, size}
	if f, ok := b.faces[key]; ok {
		return f
	}

	f := truetype.NewFace(b.font(family), &truetype.Options{Size: size})
	b.faces[key] = f
	return f
}

// font resolves a family: configured file, then embedded stand-in, then Go Bold.
func (b *fontBook) font(family string) *truetype.Font {
	if f, ok := b.parsed[family]; ok {
		return f
	}

	var f *truetype.Font
	if path, ok := b.paths[family]; ok {
		if data, err := os.ReadFile(path); err == nil {
			f, _ = truetype.Parse(data)
		}
	}
	if f == nil {
		data, ok := embedded[family]
		if !ok {
			data = gobold.TTF
		}
		// The embedded fonts are known to parse.
		f, _ = truetype.Parse(data)
	}

	b.parsed[family] = f
	return f
}
