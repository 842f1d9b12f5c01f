// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package style normalizes a caller's partial style into a complete
// StyleConfig. Every field falls back to the configured default on its own;
// nothing in this package returns an error.
package style

import (
	"strings"

	"github.com/pdiddy/versedeck/pkg/types"
)

// Sizes a deck can carry: run sizes are 1..4000pt, paragraph spacing
// 0..1584pt. Values outside fall back to the default.
const (
	minFontSizePt = 1.0
	maxFontSizePt = 4000.0
	maxSpacingPt  = 1584.0
)

func validFontSize(pt float64) bool {
	return pt >= minFontSizePt && pt <= maxFontSizePt
}

// Normalize merges in over d. A nil input yields d unchanged.
func Normalize(in *types.StyleInput, d types.StyleConfig) types.StyleConfig {
	out := d
	if in == nil {
		return out
	}

	if in.FontFamily != nil && strings.TrimSpace(*in.FontFamily) != "" {
		out.FontFamily = strings.TrimSpace(*in.FontFamily)
	}
	if in.FontSize != nil && validFontSize(*in.FontSize) {
		out.FontSizePt = *in.FontSize
	}
	if in.FontStyle != nil {
		if fs := types.FontStyle(*in.FontStyle); fs.Valid() {
			out.FontStyle = fs
		}
	}
	if in.Color != nil {
		out.Color = ResolveColor(in.Color, d.Color)
	}
	if in.TextAlign != nil {
		out.TextAlign = ParseAlign(*in.TextAlign, d.TextAlign)
	}
	if in.ImagePath != nil {
		out.BackgroundImagePath = strings.TrimSpace(*in.ImagePath)
	}
	if in.TypeShow != nil {
		out.TitleMode = TitleModeFromTypeShow(*in.TypeShow, d.TitleMode)
	}
	if in.LayoutPolicy != nil {
		out.LayoutPolicy = ParseLayoutPolicy(*in.LayoutPolicy, d.LayoutPolicy)
	}
	if in.TitlePlacement != nil {
		out.TitlePlacement = ParseTitlePlacement(*in.TitlePlacement, d.TitlePlacement)
	}
	if in.TitleFontFamily != nil && strings.TrimSpace(*in.TitleFontFamily) != "" {
		out.TitleFontFamily = strings.TrimSpace(*in.TitleFontFamily)
	}
	if in.TitleFontSize != nil && validFontSize(*in.TitleFontSize) {
		out.TitleFontSizePt = *in.TitleFontSize
	}
	if in.TitleColor != nil {
		c := ResolveColor(in.TitleColor, out.TitleStyleColor())
		out.TitleColor = &c
	}
	if in.BackgroundColor != nil {
		out.BackgroundColor = ResolveColor(in.BackgroundColor, d.BackgroundColor)
	}
	if in.Overlay != nil {
		out.Overlay = *in.Overlay
	}
	if in.TitleSeparator != nil {
		out.TitleSeparator = *in.TitleSeparator
	}
	if in.WrapWidth != nil && *in.WrapWidth > 0 {
		out.WrapWidth = *in.WrapWidth
	}
	if in.ParagraphSpacing != nil && *in.ParagraphSpacing >= 0 && *in.ParagraphSpacing <= maxSpacingPt {
		out.ParagraphSpacingPt = *in.ParagraphSpacing
	}
	return out
}

// ParseAlign maps an alignment name to a TextAlign, ignoring case.
// Unknown names return fallback.
func ParseAlign(s string, fallback types.TextAlign) types.TextAlign {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return types.AlignLeft
	case "center", "centre", "middle":
		return types.AlignCenter
	case "right":
		return types.AlignRight
	case "justify", "justified", "distribute":
		return types.AlignJustify
	}
	return fallback
}

// TitleModeFromTypeShow maps the numeric TypeShow selector to a TitleMode.
func TitleModeFromTypeShow(v int, fallback types.TitleMode) types.TitleMode {
	switch v {
	case 0:
		return types.TitleBookChapterVerse
	case 1:
		return types.TitleChapterBook
	}
	return fallback
}

// ParseLayoutPolicy accepts the policy value or its descriptive alias.
func ParseLayoutPolicy(s string, fallback types.LayoutPolicy) types.LayoutPolicy {
	switch normalizeKey(s) {
	case "autofit", "autofitsingleblock", "single":
		return types.LayoutAutoFit
	case "wrapped", "wrappedmultiparagraph", "wrap":
		return types.LayoutWrapped
	}
	return fallback
}

// ParseTitlePlacement accepts "top" or "bottom" in any case.
func ParseTitlePlacement(s string, fallback types.TitlePlacement) types.TitlePlacement {
	switch normalizeKey(s) {
	case "top":
		return types.TitleTop
	case "bottom":
		return types.TitleBottom
	}
	return fallback
}

// normalizeKey lower-cases s and drops separators so "Auto-Fit",
// "auto_fit" and "AutoFit" compare equal.
func normalizeKey(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
