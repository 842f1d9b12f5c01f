// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/versedeck/pkg/types"
)

// countingSynth records calls and returns a fixed asset.
type countingSynth struct {
	calls int
	color types.RGB
	err   error
}

func (s *countingSynth) Synthesize(c types.RGB, w, h int) (types.MediaAsset, error) {
	s.calls++
	s.color = c
	if s.err != nil {
		return types.MediaAsset{}, s.err
	}
	return types.MediaAsset{Data: []byte("png"), ContentType: "image/png", Extension: ".png"}, nil
}

func smallCanvas() types.CanvasConfig {
	return types.CanvasConfig{WidthPx: 192, HeightPx: 108}
}

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestRenderEmptyVerses(t *testing.T) {
	synth := &countingSynth{}
	e := NewEngine(types.DefaultStyleConfig(), smallCanvas(), WithSynthesizer(synth))

	doc, err := e.Render(types.RenderRequest{FilePath: "out.pptx", BookName: "John", ChapterNumber: "3"})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Empty(t, doc.Slides)
	assert.Equal(t, "John 3", doc.Title)
	assert.Zero(t, synth.calls)
}

func TestRenderOneSlidePerVerse(t *testing.T) {
	synth := &countingSynth{}
	e := NewEngine(types.DefaultStyleConfig(), smallCanvas(), WithSynthesizer(synth))

	req := types.RenderRequest{
		BookName:      "John",
		ChapterNumber: "3",
		Verses: []types.VerseInput{
			{Label: "16", Content: "For God so loved the world"},
			{Label: "17", Content: "For God sent not his Son"},
			{Label: "18", Content: "He that believeth on him"},
		},
	}
	doc, err := e.Render(req)
	require.NoError(t, err)
	require.Len(t, doc.Slides, 3)

	assert.Equal(t, 1, synth.calls, "fallback background is synthesized once per render")
	for i, s := range doc.Slides {
		assert.Equal(t, types.BackgroundSynthesized, s.Background.Kind)
		assert.Equal(t, "Body", s.Body.Name)
		require.NotNil(t, s.Title)
		assert.Equal(t, types.AlignCenter, s.Title.Align)
		assert.Nil(t, s.Overlay)
		assert.True(t, strings.HasPrefix(s.Body.Text(), string(req.Verses[i].Label)+".  "))
	}
	assert.Equal(t, "16.  For God so loved the world", doc.Slides[0].Body.Text())
	assert.Equal(t, "John 3:16", doc.Slides[0].Title.Text())
	assert.Equal(t, int64(192*6350), doc.WidthEMU)
}

func TestRenderTitleModes(t *testing.T) {
	tests := []struct {
		name     string
		typeShow int
		want     string
	}{
		{"book chapter verse", 0, "John 3:16"},
		{"chapter book", 1, "3 John"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(types.DefaultStyleConfig(), smallCanvas(), WithSynthesizer(&countingSynth{}))
			ts := tt.typeShow
			doc, err := e.Render(types.RenderRequest{
				BookName:      "John",
				ChapterNumber: "3",
				Verses:        []types.VerseInput{{Label: "16", Content: "text"}},
				Config:        &types.StyleInput{TypeShow: &ts},
			})
			require.NoError(t, err)
			require.NotNil(t, doc.Slides[0].Title)
			assert.Equal(t, tt.want, doc.Slides[0].Title.Text())
		})
	}
}

func TestComposeTitle(t *testing.T) {
	assert.Equal(t, "John 3:16", ComposeTitle(types.TitleBookChapterVerse, "John", "3", "16"))
	assert.Equal(t, "3 John", ComposeTitle(types.TitleChapterBook, "John", "3", "16"))
	assert.Equal(t, "16.  text", ComposeBody("16", "text"))
}

func TestRenderNoTitleContext(t *testing.T) {
	e := NewEngine(types.DefaultStyleConfig(), smallCanvas(), WithSynthesizer(&countingSynth{}))
	doc, err := e.Render(types.RenderRequest{Verses: []types.VerseInput{{Label: "1", Content: "x"}}})
	require.NoError(t, err)
	assert.Nil(t, doc.Slides[0].Title)
	assert.Nil(t, doc.Slides[0].Separator)
}

func TestRenderMissingImageFallsBack(t *testing.T) {
	tmp := t.TempDir()
	missing := filepath.Join(tmp, "does-not-exist.png")

	e := NewEngine(types.DefaultStyleConfig(), smallCanvas(), WithTempDir(tmp))
	doc, err := e.Render(types.RenderRequest{
		BookName: "John",
		Verses:   []types.VerseInput{{Label: "1", Content: "x"}},
		Config:   &types.StyleInput{ImagePath: &missing},
	})
	require.NoError(t, err)
	require.Len(t, doc.Slides, 1)

	bg := doc.Slides[0].Background
	assert.Equal(t, types.BackgroundSynthesized, bg.Kind)
	assert.Equal(t, "image/png", bg.Media.ContentType)
	assert.True(t, bytes.HasPrefix(bg.Media.Data, []byte("\x89PNG")))

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries, "no scratch files remain after render")
}

func TestRenderPlaceholderAndNonImage(t *testing.T) {
	tmp := t.TempDir()
	textFile := filepath.Join(tmp, "notes.txt")
	require.NoError(t, os.WriteFile(textFile, []byte("not an image"), 0o644))

	for _, p := range []string{types.PlaceholderImage, textFile, tmp, ""} {
		path := p
		synth := &countingSynth{}
		e := NewEngine(types.DefaultStyleConfig(), smallCanvas(), WithSynthesizer(synth))
		doc, err := e.Render(types.RenderRequest{
			Verses: []types.VerseInput{{Label: "1", Content: "x"}},
			Config: &types.StyleInput{ImagePath: &path},
		})
		require.NoError(t, err, "path %q", path)
		assert.Equal(t, types.BackgroundSynthesized, doc.Slides[0].Background.Kind, "path %q", path)
		assert.Equal(t, 1, synth.calls)
	}
}

func TestRenderImageBackgroundWithOverlay(t *testing.T) {
	path := writePNG(t, t.TempDir(), "bg.png")
	overlay := true
	synth := &countingSynth{}
	e := NewEngine(types.DefaultStyleConfig(), smallCanvas(), WithSynthesizer(synth))

	doc, err := e.Render(types.RenderRequest{
		Verses: []types.VerseInput{{Label: "1", Content: "a"}, {Label: "2", Content: "b"}},
		Config: &types.StyleInput{ImagePath: &path, Overlay: &overlay},
	})
	require.NoError(t, err)
	assert.Zero(t, synth.calls)

	for _, s := range doc.Slides {
		assert.Equal(t, types.BackgroundImage, s.Background.Kind)
		assert.Equal(t, path, s.Background.Source)
		assert.Equal(t, ".png", s.Background.Media.Extension)
		require.NotNil(t, s.Overlay)
		assert.Equal(t, 0.5, s.Overlay.Alpha)
		assert.Equal(t, doc.WidthEMU, s.Overlay.Frame.W)
	}
}

func TestRenderOverlayOnlyOverImages(t *testing.T) {
	overlay := true
	e := NewEngine(types.DefaultStyleConfig(), smallCanvas(), WithSynthesizer(&countingSynth{}))
	doc, err := e.Render(types.RenderRequest{
		Verses: []types.VerseInput{{Label: "1", Content: "a"}},
		Config: &types.StyleInput{Overlay: &overlay},
	})
	require.NoError(t, err)
	assert.Nil(t, doc.Slides[0].Overlay)
}

func TestRenderSynthesisFailure(t *testing.T) {
	boom := errors.New("disk full")
	e := NewEngine(types.DefaultStyleConfig(), smallCanvas(), WithSynthesizer(&countingSynth{err: boom}))
	_, err := e.Render(types.RenderRequest{Verses: []types.VerseInput{{Label: "1", Content: "a"}}})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestRenderBackgroundColor(t *testing.T) {
	synth := &countingSynth{}
	e := NewEngine(types.DefaultStyleConfig(), smallCanvas(), WithSynthesizer(synth))
	_, err := e.Render(types.RenderRequest{
		Verses: []types.VerseInput{{Label: "1", Content: "a"}},
		Config: &types.StyleInput{BackgroundColor: &types.ColorValue{Name: "White"}},
	})
	require.NoError(t, err)
	assert.Equal(t, types.RGB{R: 255, G: 255, B: 255}, synth.color)
}

func TestRenderAutoFitBody(t *testing.T) {
	e := NewEngine(types.DefaultStyleConfig(), types.DefaultAppConfig().Canvas, WithSynthesizer(&countingSynth{}))
	long := strings.Repeat("word ", 400)
	doc, err := e.Render(types.RenderRequest{
		Verses: []types.VerseInput{{Label: "1", Content: "short"}, {Label: "2", Content: long}},
	})
	require.NoError(t, err)

	short := doc.Slides[0].Body
	assert.Equal(t, types.AutoFitShrink, short.AutoFit)
	assert.True(t, short.WordWrap)
	require.Len(t, short.Paragraphs, 1)
	assert.Equal(t, 1.0, short.FontScale)
	assert.Equal(t, types.Points(100), short.Frame.Y)
	assert.Equal(t, doc.WidthEMU, short.Frame.W)
	assert.True(t, short.Style.Bold)

	big := doc.Slides[1].Body
	assert.Less(t, big.FontScale, 1.0)
	assert.GreaterOrEqual(t, big.FontScale, 0.25)
}

func TestRenderWrappedBody(t *testing.T) {
	policy := "wrapped"
	placement := "bottom"
	sep := true
	content := "For God so loved the world, that he gave his only begotten Son, " +
		"that whosoever believeth in him should not perish, but have everlasting life."

	e := NewEngine(types.DefaultStyleConfig(), types.DefaultAppConfig().Canvas, WithSynthesizer(&countingSynth{}))
	doc, err := e.Render(types.RenderRequest{
		BookName:      "John",
		ChapterNumber: "3",
		Verses:        []types.VerseInput{{Label: "16", Content: content}},
		Config: &types.StyleInput{
			LayoutPolicy:   &policy,
			TitlePlacement: &placement,
			TitleSeparator: &sep,
		},
	})
	require.NoError(t, err)
	s := doc.Slides[0]

	body := s.Body
	assert.Equal(t, types.AutoFitNone, body.AutoFit)
	require.GreaterOrEqual(t, len(body.Paragraphs), 2)
	var joined strings.Builder
	for i, p := range body.Paragraphs {
		assert.LessOrEqual(t, len([]rune(p.Text)), 60)
		if i == 0 {
			assert.Zero(t, p.SpaceBeforePt)
		} else {
			assert.Equal(t, 12.0, p.SpaceBeforePt)
		}
		joined.WriteString(p.Text)
	}
	assert.Equal(t, stripSpace(ComposeBody("16", content)), stripSpace(joined.String()))

	require.NotNil(t, s.Title)
	assert.Equal(t, doc.HeightEMU-types.Inches(1), s.Title.Frame.Y)
	require.NotNil(t, s.Separator)
	assert.Less(t, s.Separator.Frame.Y, s.Title.Frame.Y)
	assert.LessOrEqual(t, body.Frame.Y+body.Frame.H, s.Separator.Frame.Y)
}

func TestTitleInheritsAndOverrides(t *testing.T) {
	d := types.DefaultStyleConfig()
	d.Color = types.RGB{R: 169, G: 194, B: 26}
	e := NewEngine(d, smallCanvas(), WithSynthesizer(&countingSynth{}))

	doc, err := e.Render(types.RenderRequest{BookName: "Ruth", Verses: []types.VerseInput{{Label: "1", Content: "a"}}})
	require.NoError(t, err)
	assert.Equal(t, d.Color, doc.Slides[0].Title.Style.Color)
	assert.Equal(t, 24.0, doc.Slides[0].Title.Style.SizePt)

	doc, err = e.Render(types.RenderRequest{
		BookName: "Ruth",
		Verses:   []types.VerseInput{{Label: "1", Content: "a"}},
		Config:   &types.StyleInput{TitleColor: &types.ColorValue{Name: "Blue"}, TextAlign: ptrString("left")},
	})
	require.NoError(t, err)
	assert.Equal(t, types.RGB{B: 255}, doc.Slides[0].Title.Style.Color)
	assert.Equal(t, types.AlignCenter, doc.Slides[0].Title.Align)
	assert.Equal(t, types.AlignLeft, doc.Slides[0].Body.Align)
}

func TestGGSynthesizer(t *testing.T) {
	tmp := t.TempDir()
	asset, err := GGSynthesizer{TempDir: tmp}.Synthesize(types.RGB{R: 255, G: 255, B: 255}, 16, 9)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(asset.Data))
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 9, img.Bounds().Dy())
	r, g, b, _ := img.At(3, 3).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = GGSynthesizer{TempDir: tmp}.Synthesize(types.RGB{}, 0, 9)
	assert.Error(t, err)
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func ptrString(s string) *string { return &s }
