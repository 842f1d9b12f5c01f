// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gogpu/gg"

	// Decoders for background formats gg does not register itself.
	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/pdiddy/versedeck/internal/apperr"
	"github.com/pdiddy/versedeck/pkg/types"
)

// Synthesizer produces the solid-color fallback background.
type Synthesizer interface {
	Synthesize(color types.RGB, widthPx, heightPx int) (types.MediaAsset, error)
}

// GGSynthesizer paints the fallback with gg's software renderer. The PNG is
// written to a private directory under TempDir that is removed before
// Synthesize returns, on every path.
type GGSynthesizer struct {
	// TempDir is the parent of the scratch directory; empty means os.TempDir.
	TempDir string
}

// Synthesize implements Synthesizer.
func (s GGSynthesizer) Synthesize(c types.RGB, widthPx, heightPx int) (types.MediaAsset, error) {
	if widthPx <= 0 || heightPx <= 0 {
		return types.MediaAsset{}, fmt.Errorf("canvas %dx%d is empty", widthPx, heightPx)
	}

	dir, err := os.MkdirTemp(s.TempDir, "versedeck-bg-*")
	if err != nil {
		return types.MediaAsset{}, fmt.Errorf("creating scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	dc := gg.NewContext(widthPx, heightPx)
	defer dc.Close()
	dc.ClearWithColor(gg.RGB(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255))

	path := filepath.Join(dir, "background.png")
	if err := dc.SavePNG(path); err != nil {
		return types.MediaAsset{}, fmt.Errorf("encoding background: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.MediaAsset{}, fmt.Errorf("reading background: %w", err)
	}
	return types.MediaAsset{Data: data, ContentType: "image/png", Extension: ".png"}, nil
}

// loadImage reads the background image at path. Formats every presentation
// viewer understands are embedded as is; other decodable images are
// re-encoded to PNG. Any failure is an *apperr.AssetFallback.
func loadImage(path string) (types.MediaAsset, error) {
	switch path {
	case "":
		return types.MediaAsset{}, &apperr.AssetFallback{Path: path, Reason: "no image selected"}
	case types.PlaceholderImage:
		return types.MediaAsset{}, &apperr.AssetFallback{Path: path, Reason: "placeholder value"}
	}

	info, err := os.Stat(path)
	if err != nil {
		return types.MediaAsset{}, &apperr.AssetFallback{Path: path, Reason: "cannot stat", Err: err}
	}
	if !info.Mode().IsRegular() {
		return types.MediaAsset{}, &apperr.AssetFallback{Path: path, Reason: "not a regular file"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.MediaAsset{}, &apperr.AssetFallback{Path: path, Reason: "cannot read", Err: err}
	}

	mt := mimetype.Detect(data)
	switch {
	case mt.Is("image/png"), mt.Is("image/jpeg"), mt.Is("image/gif"):
		if _, err := gg.LoadImage(path); err != nil {
			return types.MediaAsset{}, &apperr.AssetFallback{Path: path, Reason: "cannot decode " + mt.String(), Err: err}
		}
		return types.MediaAsset{Data: data, ContentType: mt.String(), Extension: mt.Extension()}, nil

	case mt.Is("image/webp"):
		img, err := gg.LoadWebP(path)
		if err != nil {
			return types.MediaAsset{}, &apperr.AssetFallback{Path: path, Reason: "cannot decode webp", Err: err}
		}
		return encodePNG(path, img)

	case hasImagePrefix(mt):
		img, err := gg.LoadImage(path)
		if err != nil {
			return types.MediaAsset{}, &apperr.AssetFallback{Path: path, Reason: "cannot decode " + mt.String(), Err: err}
		}
		return encodePNG(path, img)
	}

	return types.MediaAsset{}, &apperr.AssetFallback{Path: path, Reason: "not an image (" + mt.String() + ")"}
}

func encodePNG(path string, img *gg.ImageBuf) (types.MediaAsset, error) {
	var buf bytes.Buffer
	if err := img.EncodePNG(&buf); err != nil {
		return types.MediaAsset{}, &apperr.AssetFallback{Path: path, Reason: "cannot re-encode as png", Err: err}
	}
	return types.MediaAsset{Data: buf.Bytes(), ContentType: "image/png", Extension: ".png"}, nil
}

// hasImagePrefix walks the detected type and its parents looking for an
// image/* media type.
func hasImagePrefix(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return true
		}
	}
	return false
}
