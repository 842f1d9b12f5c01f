// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RenderRequest is the single structured input of a render. Field names
// follow the JSON object the calling application writes.
type RenderRequest struct {
	// FilePath is the output destination of the deck.
	FilePath string `json:"FilePath" mod:"trim" validate:"required"`

	// BookName and ChapterNumber form the title context. Both empty means
	// slides carry no title.
	BookName      string `json:"BookName" mod:"trim"`
	ChapterNumber Label  `json:"ChapterNumber"`

	// Verses are rendered one slide each, in order.
	Verses []VerseInput `json:"Verses" mod:"dive" validate:"dive"`

	// Config is optional; nil renders with the default style.
	Config *StyleInput `json:"Config,omitempty"`
}

// VerseInput is one verse of a RenderRequest.
type VerseInput struct {
	Label   Label  `json:"label"`
	Content string `json:"content" mod:"trim"`
}

// Label is a verse or chapter label. Callers send it either as a JSON number
// or as a string; both decode to the same text.
type Label string

// UnmarshalJSON accepts a string, a number or null. Strings are trimmed.
func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Label(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("label must be a string or number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*l = Label(strconv.FormatInt(i, 10))
		return nil
	}
	*l = Label(n.String())
	return nil
}

// String returns the label text.
func (l Label) String() string { return string(l) }

// StyleInput is the optional, partially populated style a caller sends.
// Absent fields fall back to the configured defaults during normalization.
type StyleInput struct {
	FontFamily *string     `json:"FontFamily,omitempty"`
	FontSize   *float64    `json:"FontSize,omitempty"`
	FontStyle  *int        `json:"FontStyle,omitempty"`
	Color      *ColorValue `json:"Color,omitempty"`
	TextAlign  *string     `json:"TextAlign,omitempty"`
	ImagePath  *string     `json:"ImagePath,omitempty"`

	// TypeShow selects the title mode: 0 book-chapter-verse, 1 chapter-book.
	TypeShow *int `json:"TypeShow,omitempty"`

	LayoutPolicy     *string     `json:"LayoutPolicy,omitempty"`
	TitlePlacement   *string     `json:"TitlePlacement,omitempty"`
	TitleFontFamily  *string     `json:"TitleFontFamily,omitempty"`
	TitleFontSize    *float64    `json:"TitleFontSize,omitempty"`
	TitleColor       *ColorValue `json:"TitleColor,omitempty"`
	BackgroundColor  *ColorValue `json:"BackgroundColor,omitempty"`
	Overlay          *bool       `json:"Overlay,omitempty"`
	TitleSeparator   *bool       `json:"TitleSeparator,omitempty"`
	WrapWidth        *int        `json:"WrapWidth,omitempty"`
	ParagraphSpacing *float64    `json:"ParagraphSpacing,omitempty"`
}

// ColorValue is either an {R,G,B} triple or a color name.
type ColorValue struct {
	RGB  *RGB
	Name string
}

// colorTriple decodes the object form with wide ints so out-of-range
// components can be clamped instead of rejected.
type colorTriple struct {
	R int `json:"R"`
	G int `json:"G"`
	B int `json:"B"`
}

// UnmarshalJSON accepts {"R":..,"G":..,"B":..}, a string, or null.
func (c *ColorValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = ColorValue{}
	case len(data) > 0 && data[0] == '{':
		var t colorTriple
		if err := json.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("decoding color triple: %w", err)
		}
		*c = ColorValue{RGB: &RGB{R: clampByte(t.R), G: clampByte(t.G), B: clampByte(t.B)}}
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ColorValue{Name: s}
	default:
		return fmt.Errorf("color must be an {R,G,B} object or a name, got %s", data)
	}
	return nil
}

// MarshalJSON writes the form the value was decoded from.
func (c ColorValue) MarshalJSON() ([]byte, error) {
	if c.RGB != nil {
		return json.Marshal(colorTriple{R: int(c.RGB.R), G: int(c.RGB.G), B: int(c.RGB.B)})
	}
	if c.Name == "" {
		return []byte("null"), nil
	}
	return json.Marshal(c.Name)
}

func clampByte(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
