// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"strconv"
	"strings"

	"github.com/pdiddy/versedeck/pkg/types"
)

// namedColors is keyed by lower-case name.
var namedColors = map[string]types.RGB{
	"black":   {R: 0, G: 0, B: 0},
	"white":   {R: 255, G: 255, B: 255},
	"red":     {R: 255, G: 0, B: 0},
	"green":   {R: 0, G: 255, B: 0},
	"blue":    {R: 0, G: 0, B: 255},
	"yellow":  {R: 255, G: 255, B: 0},
	"cyan":    {R: 0, G: 255, B: 255},
	"magenta": {R: 255, G: 0, B: 255},
	"gray":    {R: 128, G: 128, B: 128},
	"grey":    {R: 128, G: 128, B: 128},
	"orange":  {R: 255, G: 165, B: 0},
	"purple":  {R: 128, G: 0, B: 128},
}

// ResolveColor returns the RGB a ColorValue denotes. Triples are used as is;
// names match the fixed table case-insensitively, and "#RRGGBB" is parsed as
// hex. Absent or unrecognized values return fallback.
func ResolveColor(v *types.ColorValue, fallback types.RGB) types.RGB {
	if v == nil {
		return fallback
	}
	if v.RGB != nil {
		return *v.RGB
	}
	name := strings.ToLower(strings.TrimSpace(v.Name))
	if c, ok := namedColors[name]; ok {
		return c
	}
	if c, ok := parseHex(name); ok {
		return c
	}
	return fallback
}

func parseHex(s string) (types.RGB, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return types.RGB{}, false
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return types.RGB{}, false
	}
	return types.RGB{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, true
}
