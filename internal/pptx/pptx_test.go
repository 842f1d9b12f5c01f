// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/antchfx/xmlquery"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/versedeck/internal/apperr"
	"github.com/pdiddy/versedeck/pkg/types"
)

var pngStub = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func sampleDoc() *types.SlideDocument {
	bg := types.Background{
		Kind:  types.BackgroundSynthesized,
		Color: types.RGB{},
		Media: types.MediaAsset{Data: pngStub, ContentType: "image/png", Extension: ".png"},
	}
	body := func(text string) types.TextBox {
		return types.TextBox{
			Name:     "Body",
			Frame:    types.Rect{X: 0, Y: types.Points(100), W: 12192000, H: 5000000},
			WordWrap: true,
			AutoFit:  types.AutoFitShrink,
			Align:    types.AlignCenter,
			Style: types.RunStyle{
				FontFamily: "Arial",
				SizePt:     40,
				Color:      types.RGB{R: 255, G: 255, B: 255},
				Bold:       true,
				Underline:  true,
			},
			Paragraphs: []types.Paragraph{{Text: text}},
			FontScale:  0.625,
		}
	}
	title := types.TextBox{
		Name:       "Title",
		Frame:      types.Rect{W: 12192000, H: types.Points(50)},
		WordWrap:   true,
		AutoFit:    types.AutoFitShrink,
		Align:      types.AlignCenter,
		Style:      types.RunStyle{FontFamily: "Arial", SizePt: 24, Color: types.RGB{B: 255}, Italic: true},
		Paragraphs: []types.Paragraph{{Text: "John 3:16"}},
		FontScale:  1,
	}
	return &types.SlideDocument{
		Title:     "John 3",
		WidthEMU:  12192000,
		HeightEMU: 6858000,
		Slides: []types.Slide{
			{Background: bg, Body: body("16.  For God so loved the world"), Title: &title},
			{Background: bg, Body: body("17.  Fish & <chips>\nsecond line")},
		},
	}
}

func parts(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		out[f.Name] = b
	}
	return out
}

func TestBuildPackageLayout(t *testing.T) {
	data, err := Build(sampleDoc(), Metadata{Creator: "versedeck", Created: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)})
	require.NoError(t, err)

	p := parts(t, data)
	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"docProps/app.xml",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/_rels/slide2.xml.rels",
	} {
		assert.Contains(t, p, name)
	}

	var media []string
	for name := range p {
		if strings.HasPrefix(name, "ppt/media/") {
			media = append(media, name)
		}
	}
	assert.Len(t, media, 1, "shared background is stored once")

	// Every part must be well-formed XML.
	for name, body := range p {
		if strings.HasSuffix(name, ".xml") || strings.HasSuffix(name, ".rels") {
			_, err := xmlquery.Parse(bytes.NewReader(body))
			assert.NoError(t, err, name)
		}
	}

	ct, err := xmlquery.Parse(bytes.NewReader(p["[Content_Types].xml"]))
	require.NoError(t, err)
	png := xmlquery.FindOne(ct, "//*[local-name()='Default'][@Extension='png']")
	require.NotNil(t, png)
	assert.Equal(t, "image/png", png.SelectAttr("ContentType"))
	assert.Len(t, xmlquery.Find(ct, "//*[local-name()='Override'][@ContentType='"+ctSlide+"']"), 2)

	core := string(p["docProps/core.xml"])
	assert.Contains(t, core, "<dc:title>John 3</dc:title>")
	assert.Contains(t, core, "urn:uuid:")
	assert.Contains(t, core, "2026-01-02T03:04:05Z")
}

func TestBuildSlideXML(t *testing.T) {
	data, err := Build(sampleDoc(), Metadata{})
	require.NoError(t, err)
	p := parts(t, data)

	slide, err := xmlquery.Parse(bytes.NewReader(p["ppt/slides/slide1.xml"]))
	require.NoError(t, err)

	pic := findNamed(slide, "pic", nameBackground)
	require.NotNil(t, pic)
	ext := findOne(pic, "ext")
	assert.Equal(t, "12192000", ext.SelectAttr("cx"))
	assert.Equal(t, "6858000", ext.SelectAttr("cy"))

	fit := xmlquery.FindOne(slide, "//*[local-name()='normAutofit']")
	require.NotNil(t, fit)
	assert.Equal(t, "62500", fit.SelectAttr("fontScale"))

	rpr := xmlquery.FindOne(slide, "//*[local-name()='rPr']")
	require.NotNil(t, rpr)
	assert.Equal(t, "4000", rpr.SelectAttr("sz"))
	assert.Equal(t, "1", rpr.SelectAttr("b"))
	assert.Equal(t, "sng", rpr.SelectAttr("u"))

	second := string(p["ppt/slides/slide2.xml"])
	assert.Contains(t, second, "Fish &amp; &lt;chips&gt;")
	assert.Contains(t, second, "<a:br>")
	assert.NotContains(t, second, `name="Title"`)
}

func TestRoundTrip(t *testing.T) {
	doc := sampleDoc()
	data, err := Build(doc, Metadata{Creator: "versedeck", Identifier: uuid.New()})
	require.NoError(t, err)

	got, err := Read(data)
	require.NoError(t, err)

	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, doc.WidthEMU, got.WidthEMU)
	assert.Equal(t, doc.HeightEMU, got.HeightEMU)
	require.Len(t, got.Slides, len(doc.Slides))

	for i, want := range doc.Slides {
		s := got.Slides[i]
		assert.Equal(t, want.Background.Kind, s.Background.Kind)
		assert.Equal(t, want.Background.Media.Data, s.Background.Media.Data)
		assert.Equal(t, want.Body.Text(), s.Body.Text())
		assert.Equal(t, want.Body.Style, s.Body.Style)
		assert.Equal(t, want.Body.Frame, s.Body.Frame)
		assert.Equal(t, want.Body.Align, s.Body.Align)
		assert.Equal(t, want.Body.AutoFit, s.Body.AutoFit)
		assert.Equal(t, want.Body.FontScale, s.Body.FontScale)
		assert.True(t, s.Body.WordWrap)
	}

	require.NotNil(t, got.Slides[0].Title)
	assert.Equal(t, "John 3:16", got.Slides[0].Title.Text())
	assert.Equal(t, types.RGB{B: 255}, got.Slides[0].Title.Style.Color)
	assert.True(t, got.Slides[0].Title.Style.Italic)
	assert.Nil(t, got.Slides[1].Title)
}

func TestRoundTripOverlayAndSeparator(t *testing.T) {
	doc := sampleDoc()
	doc.Slides[0].Background.Kind = types.BackgroundImage
	doc.Slides[0].Overlay = &types.Fill{Frame: types.Rect{W: doc.WidthEMU, H: doc.HeightEMU}, Alpha: 0.5}
	doc.Slides[0].Separator = &types.Line{
		Frame:   types.Rect{X: types.Inches(1), Y: 5000000, W: 10363200},
		Color:   types.RGB{R: 10, G: 20, B: 30},
		WidthPt: 1,
	}
	doc.Slides[1].Body.AutoFit = types.AutoFitNone
	doc.Slides[1].Body.Paragraphs = []types.Paragraph{{Text: "one"}, {Text: "two", SpaceBeforePt: 12}}

	data, err := Build(doc, Metadata{})
	require.NoError(t, err)
	got, err := Read(data)
	require.NoError(t, err)

	s := got.Slides[0]
	assert.Equal(t, types.BackgroundImage, s.Background.Kind)
	require.NotNil(t, s.Overlay)
	assert.Equal(t, 0.5, s.Overlay.Alpha)
	require.NotNil(t, s.Separator)
	assert.Equal(t, *doc.Slides[0].Separator, *s.Separator)

	body := got.Slides[1].Body
	assert.Equal(t, types.AutoFitNone, body.AutoFit)
	assert.Equal(t, 1.0, body.FontScale)
	require.Len(t, body.Paragraphs, 2)
	assert.Equal(t, 12.0, body.Paragraphs[1].SpaceBeforePt)
	assert.Zero(t, body.Paragraphs[0].SpaceBeforePt)
}

func TestBuildEmptyDeck(t *testing.T) {
	data, err := Build(&types.SlideDocument{WidthEMU: 12192000, HeightEMU: 6858000}, Metadata{})
	require.NoError(t, err)

	p := parts(t, data)
	assert.NotContains(t, string(p["ppt/presentation.xml"]), "sldIdLst")

	got, err := Read(data)
	require.NoError(t, err)
	assert.Empty(t, got.Slides)
	assert.Equal(t, int64(12192000), got.WidthEMU)
}

func TestBuildNilDocument(t *testing.T) {
	_, err := Build(nil, Metadata{})
	assert.Error(t, err)
}

func TestMediaStoreDedupe(t *testing.T) {
	m := newMediaStore()
	a := m.add(types.MediaAsset{Data: pngStub, ContentType: "image/png", Extension: ".png"})
	b := m.add(types.MediaAsset{Data: append([]byte(nil), pngStub...), ContentType: "image/png", Extension: ".png"})
	c := m.add(types.MediaAsset{Data: []byte("GIF89a......")})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasSuffix(c, ".gif"))
	assert.Equal(t, "image/gif", m.contentTypes["gif"])
	assert.Len(t, m.parts, 2)
	assert.Empty(t, m.add(types.MediaAsset{}))
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read([]byte("not a zip"))
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.pptx")

	require.NoError(t, WriteFile(path, []byte("first")))
	require.NoError(t, WriteFile(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteFileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "deck.pptx")
	err := WriteFile(path, []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrOutputWrite))

	var we *apperr.OutputWriteError
	require.True(t, errors.As(err, &we))
	assert.Equal(t, path, we.Path)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
