// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"

	"github.com/creasty/defaults"
)

// RGB is a 24-bit color.
type RGB struct {
	R uint8 `json:"R" yaml:"r"`
	G uint8 `json:"G" yaml:"g"`
	B uint8 `json:"B" yaml:"b"`
}

// Hex returns the color as six upper-case hex digits ("FFFFFF").
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// FontStyle packs bold, italic and underline into bits 1, 2 and 4.
// Normalized styles are always in [1,7]; 0 decodes to plain text.
type FontStyle int

const (
	FontBold      FontStyle = 1
	FontItalic    FontStyle = 2
	FontUnderline FontStyle = 4
)

// Bold reports whether bit 1 is set.
func (s FontStyle) Bold() bool { return s&FontBold != 0 }

// Italic reports whether bit 2 is set.
func (s FontStyle) Italic() bool { return s&FontItalic != 0 }

// Underline reports whether bit 4 is set.
func (s FontStyle) Underline() bool { return s&FontUnderline != 0 }

// Valid reports whether s is one of the seven accepted combinations.
func (s FontStyle) Valid() bool { return s >= 1 && s <= 7 }

// TextAlign is the horizontal alignment of body paragraphs.
type TextAlign string

const (
	AlignLeft    TextAlign = "left"
	AlignCenter  TextAlign = "center"
	AlignRight   TextAlign = "right"
	AlignJustify TextAlign = "justify"
)

// TitleMode selects how a slide title is composed.
type TitleMode string

const (
	// TitleBookChapterVerse renders "{book} {chapter}:{label}".
	TitleBookChapterVerse TitleMode = "book-chapter-verse"
	// TitleChapterBook renders "{chapter} {book}".
	TitleChapterBook TitleMode = "chapter-book"
)

// LayoutPolicy selects how body text is laid onto a slide.
type LayoutPolicy string

const (
	// LayoutAutoFit places the whole body in one shrink-to-fit paragraph.
	LayoutAutoFit LayoutPolicy = "auto-fit"
	// LayoutWrapped reflows the body into fixed-width paragraph blocks.
	LayoutWrapped LayoutPolicy = "wrapped"
)

// TitlePlacement selects the vertical position of the title box.
type TitlePlacement string

const (
	TitleTop    TitlePlacement = "top"
	TitleBottom TitlePlacement = "bottom"
)

// PlaceholderImage is the value a caller sends when no background was picked.
const PlaceholderImage = "Choose Image"

// StyleConfig is the normalized style applied uniformly to a render.
// DefaultStyleConfig fills it from the default tags; a render never sees a
// partially populated value.
type StyleConfig struct {
	FontFamily  string    `json:"font_family" yaml:"font_family" default:"Arial"`
	FontSizePt  float64   `json:"font_size_pt" yaml:"font_size_pt" default:"40"`
	FontStyle   FontStyle `json:"font_style" yaml:"font_style" default:"1"`
	Color       RGB       `json:"color" yaml:"color" default:"{\"R\":255,\"G\":255,\"B\":255}"`
	TextAlign   TextAlign `json:"text_align" yaml:"text_align" default:"center"`
	TitleMode   TitleMode `json:"title_mode" yaml:"title_mode" default:"book-chapter-verse"`

	// BackgroundImagePath is optional; an empty, missing or unreadable path
	// falls back to a synthesized solid background.
	BackgroundImagePath string `json:"background_image_path,omitempty" yaml:"background_image_path,omitempty"`

	// BackgroundColor is the color of the synthesized background.
	BackgroundColor RGB `json:"background_color" yaml:"background_color" default:"{\"R\":0,\"G\":0,\"B\":0}"`

	// Overlay composites a 50% black fill over image backgrounds.
	Overlay bool `json:"overlay" yaml:"overlay" default:"false"`

	LayoutPolicy   LayoutPolicy   `json:"layout_policy" yaml:"layout_policy" default:"auto-fit"`
	TitlePlacement TitlePlacement `json:"title_placement" yaml:"title_placement" default:"top"`

	// TitleFontFamily is empty when the title inherits the body font.
	TitleFontFamily string  `json:"title_font_family,omitempty" yaml:"title_font_family,omitempty"`
	TitleFontSizePt float64 `json:"title_font_size_pt" yaml:"title_font_size_pt" default:"24"`

	// TitleColor is nil when the title inherits the body color.
	TitleColor *RGB `json:"title_color,omitempty" yaml:"title_color,omitempty"`

	// TitleSeparator draws a thin line between the body and a bottom title.
	TitleSeparator bool `json:"title_separator" yaml:"title_separator" default:"false"`

	// WrapWidth is the character width used by the wrapped layout policy.
	WrapWidth int `json:"wrap_width" yaml:"wrap_width" default:"60"`

	// ParagraphSpacingPt is the gap before every wrapped block after the first.
	ParagraphSpacingPt float64 `json:"paragraph_spacing_pt" yaml:"paragraph_spacing_pt" default:"12"`
}

// DefaultStyleConfig returns the built-in style declared by the default tags.
func DefaultStyleConfig() StyleConfig {
	var s StyleConfig
	if err := defaults.Set(&s); err != nil {
		// The tags are compile-time constants; a failure is a programming error.
		panic(fmt.Sprintf("types: default style tags: %v", err))
	}
	return s
}

// TitleStyleColor returns the effective title color.
func (s StyleConfig) TitleStyleColor() RGB {
	if s.TitleColor != nil {
		return *s.TitleColor
	}
	return s.Color
}

// TitleStyleFont returns the effective title font family.
func (s StyleConfig) TitleStyleFont() string {
	if s.TitleFontFamily != "" {
		return s.TitleFontFamily
	}
	return s.FontFamily
}
