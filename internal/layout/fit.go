// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"math"

	"github.com/pdiddy/versedeck/pkg/types"
)

// Text metrics used to estimate how a shrink-to-fit box will render.
// Viewers recompute the scale on open; the estimate only seeds it.
const (
	avgCharWidthEm = 0.5
	lineHeightEm   = 1.2
	minFontScale   = 0.25
	fontScaleStep  = 0.025

	insetXPt = 7.2
	insetYPt = 3.6
)

// FitScale returns the largest font scale in [minFontScale, 1], stepping by
// fontScaleStep, at which text wrapped into frame fits its height.
func FitScale(text string, sizePt float64, frame types.Rect) float64 {
	if sizePt <= 0 || text == "" {
		return 1
	}
	widthPt := float64(frame.W)/float64(types.EMUPerPoint) - 2*insetXPt
	heightPt := float64(frame.H)/float64(types.EMUPerPoint) - 2*insetYPt
	if widthPt <= 0 || heightPt <= 0 {
		return minFontScale
	}

	for scale := 1.0; scale > minFontScale; scale -= fontScaleStep {
		if estimateHeightPt(text, sizePt*scale, widthPt) <= heightPt {
			return round3(scale)
		}
	}
	return minFontScale
}

// estimateHeightPt is the height of text set at sizePt and wrapped to widthPt.
func estimateHeightPt(text string, sizePt, widthPt float64) float64 {
	perLine := int(widthPt / (sizePt * avgCharWidthEm))
	if perLine < 1 {
		perLine = 1
	}
	lines := len(Wrap(text, perLine))
	if lines == 0 {
		lines = 1
	}
	return float64(lines) * sizePt * lineHeightEm
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
