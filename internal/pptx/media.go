// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"encoding/hex"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/zeebo/blake3"

	"github.com/pdiddy/versedeck/pkg/types"
)

// mediaStore content-addresses media parts so identical images shared by
// several slides are stored once.
type mediaStore struct {
	names map[[32]byte]string
	parts []mediaPart

	// contentTypes maps extension (without dot) to content type.
	contentTypes map[string]string
}

type mediaPart struct {
	name string
	data []byte
}

func newMediaStore() *mediaStore {
	return &mediaStore{
		names:        make(map[[32]byte]string),
		contentTypes: make(map[string]string),
	}
}

// add stores asset and returns its part name under ppt/media. Empty assets
// are not stored and return "".
func (m *mediaStore) add(asset types.MediaAsset) string {
	if len(asset.Data) == 0 {
		return ""
	}
	sum := blake3.Sum256(asset.Data)
	if name, ok := m.names[sum]; ok {
		return name
	}

	ct, ext := asset.ContentType, asset.Extension
	if ct == "" || ext == "" {
		mt := mimetype.Detect(asset.Data)
		ct, ext = mt.String(), mt.Extension()
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "bin"
	}

	name := "image-" + hex.EncodeToString(sum[:8]) + "." + ext
	m.names[sum] = name
	m.contentTypes[ext] = ct
	m.parts = append(m.parts, mediaPart{name: name, data: asset.Data})
	return name
}
