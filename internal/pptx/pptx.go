// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pptx writes a SlideDocument as an Office Open XML presentation
// and reads such a presentation back.
//
// The package is assembled entirely in memory. Writing it to disk is a
// separate, atomic step so a failed render never leaves a partial deck.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/versedeck/internal/apperr"
	"github.com/pdiddy/versedeck/pkg/types"
)

// Metadata is written to the package's document properties.
type Metadata struct {
	Title   string
	Creator string
	Created time.Time

	// Identifier is generated when zero.
	Identifier uuid.UUID
}

// Build encodes doc as a .pptx package.
func Build(doc *types.SlideDocument, meta Metadata) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("building deck: nil document")
	}
	if meta.Title == "" {
		meta.Title = doc.Title
	}
	if meta.Created.IsZero() {
		meta.Created = time.Now()
	}
	if meta.Identifier == uuid.Nil {
		meta.Identifier = uuid.New()
	}

	canvas := types.Rect{W: doc.WidthEMU, H: doc.HeightEMU}
	media := newMediaStore()
	slideParts := make([]string, len(doc.Slides))
	slideRels := make([]string, len(doc.Slides))
	for i, s := range doc.Slides {
		target := media.add(s.Background.Media)
		slideParts[i] = slideXML(s, canvas, target != "")
		slideRels[i] = slideRelsXML(target)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	n := len(doc.Slides)

	parts := []part{
		{"[Content_Types].xml", contentTypesXML(n, media.contentTypes)},
		{"_rels/.rels", rootRelsXML()},
		{"docProps/core.xml", corePropsXML(meta)},
		{"docProps/app.xml", appPropsXML(n)},
		{"ppt/presentation.xml", presentationXML(n, doc.WidthEMU, doc.HeightEMU)},
		{"ppt/_rels/presentation.xml.rels", presentationRelsXML(n)},
		{"ppt/presProps.xml", presPropsXML()},
		{"ppt/tableStyles.xml", tableStylesXML()},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML()},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML()},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML()},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML()},
		{"ppt/theme/theme1.xml", themeXML()},
	}
	for i := range doc.Slides {
		parts = append(parts,
			part{fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideParts[i]},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), slideRels[i]},
		)
	}

	for _, p := range parts {
		if err := writePart(zw, p.name, []byte(p.body), meta.Created); err != nil {
			return nil, err
		}
	}
	for _, m := range media.parts {
		if err := writePart(zw, "ppt/media/"+m.name, m.data, meta.Created); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing package: %w", err)
	}
	return buf.Bytes(), nil
}

// part is one XML part of the package.
type part struct {
	name string
	body string
}

func writePart(zw *zip.Writer, name string, data []byte, modified time.Time) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return fmt.Errorf("creating part %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing part %s: %w", name, err)
	}
	return nil
}

// WriteFile writes data to path through a temporary file in the same
// directory. On failure path is left untouched and the error is an
// *apperr.OutputWriteError.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".versedeck-*.pptx.tmp")
	if err != nil {
		return &apperr.OutputWriteError{Path: path, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &apperr.OutputWriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &apperr.OutputWriteError{Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return &apperr.OutputWriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &apperr.OutputWriteError{Path: path, Err: err}
	}
	return nil
}
