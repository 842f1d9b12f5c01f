// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Unit conversions for the deck's native unit, the English Metric Unit.
const (
	EMUPerInch  int64 = 914400
	EMUPerPoint int64 = 12700
	// EMUPerPixel maps a 1920x1080 canvas onto a standard 16:9 slide.
	EMUPerPixel int64 = 6350
)

// Inches converts inches to EMU.
func Inches(v float64) int64 { return int64(v * float64(EMUPerInch)) }

// Points converts points to EMU.
func Points(v float64) int64 { return int64(v * float64(EMUPerPoint)) }

// SlideDocument is the complete output of one render. It is built once and
// not mutated after the engine returns it.
type SlideDocument struct {
	// Title is the document title ("John 3").
	Title string `json:"title" yaml:"title"`

	WidthEMU  int64 `json:"width_emu" yaml:"width_emu"`
	HeightEMU int64 `json:"height_emu" yaml:"height_emu"`

	Slides []Slide `json:"slides" yaml:"slides"`
}

// Slide is one rendered page.
type Slide struct {
	Background Background `json:"background" yaml:"background"`

	// Overlay is a translucent full-bleed fill drawn over the background.
	Overlay *Fill `json:"overlay,omitempty" yaml:"overlay,omitempty"`

	Body TextBox `json:"body" yaml:"body"`

	// Title is nil when the request carries no title context.
	Title *TextBox `json:"title,omitempty" yaml:"title,omitempty"`

	// Separator is the optional rule between the body and a bottom title.
	Separator *Line `json:"separator,omitempty" yaml:"separator,omitempty"`
}

// BackgroundKind tells an image background from a synthesized one.
type BackgroundKind string

const (
	BackgroundImage       BackgroundKind = "image"
	BackgroundSynthesized BackgroundKind = "synthesized"
)

// Background is the full-canvas picture behind a slide.
type Background struct {
	Kind BackgroundKind `json:"kind" yaml:"kind"`

	// Source is the image path for image backgrounds.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Color is the fill color of a synthesized background.
	Color RGB `json:"color" yaml:"color"`

	Media MediaAsset `json:"-" yaml:"-"`
}

// MediaAsset is an encoded image embedded in the deck.
type MediaAsset struct {
	Data        []byte
	ContentType string
	// Extension includes the leading dot (".png").
	Extension string
}

// Rect is a frame in EMU.
type Rect struct {
	X int64 `json:"x" yaml:"x"`
	Y int64 `json:"y" yaml:"y"`
	W int64 `json:"w" yaml:"w"`
	H int64 `json:"h" yaml:"h"`
}

// AutoFit is the overflow behavior of a text box.
type AutoFit string

const (
	AutoFitNone   AutoFit = "none"
	AutoFitShrink AutoFit = "shrink"
)

// RunStyle is the character formatting applied to every run of a text box.
type RunStyle struct {
	FontFamily string  `json:"font_family" yaml:"font_family"`
	SizePt     float64 `json:"size_pt" yaml:"size_pt"`
	Color      RGB     `json:"color" yaml:"color"`
	Bold       bool    `json:"bold" yaml:"bold"`
	Italic     bool    `json:"italic" yaml:"italic"`
	Underline  bool    `json:"underline" yaml:"underline"`
}

// TextBox is a positioned block of paragraphs sharing one style.
type TextBox struct {
	Name       string      `json:"name" yaml:"name"`
	Frame      Rect        `json:"frame" yaml:"frame"`
	WordWrap   bool        `json:"word_wrap" yaml:"word_wrap"`
	AutoFit    AutoFit     `json:"auto_fit" yaml:"auto_fit"`
	Align      TextAlign   `json:"align" yaml:"align"`
	Style      RunStyle    `json:"style" yaml:"style"`
	Paragraphs []Paragraph `json:"paragraphs" yaml:"paragraphs"`

	// FontScale is the shrink factor applied by AutoFitShrink; 1 means none.
	FontScale float64 `json:"font_scale" yaml:"font_scale"`
}

// Text joins the box's paragraphs with newlines.
func (t TextBox) Text() string {
	lines := make([]string, len(t.Paragraphs))
	for i, p := range t.Paragraphs {
		lines[i] = p.Text
	}
	return strings.Join(lines, "\n")
}

// Paragraph is one block of text within a TextBox.
type Paragraph struct {
	Text string `json:"text" yaml:"text"`

	// SpaceBeforePt is the vertical gap above the paragraph.
	SpaceBeforePt float64 `json:"space_before_pt,omitempty" yaml:"space_before_pt,omitempty"`
}

// Fill is a solid translucent fill.
type Fill struct {
	Frame Rect `json:"frame" yaml:"frame"`
	Color RGB  `json:"color" yaml:"color"`
	// Alpha is the opacity in [0,1].
	Alpha float64 `json:"alpha" yaml:"alpha"`
}

// Line is a straight rule.
type Line struct {
	Frame   Rect    `json:"frame" yaml:"frame"`
	Color   RGB     `json:"color" yaml:"color"`
	WidthPt float64 `json:"width_pt" yaml:"width_pt"`
}
