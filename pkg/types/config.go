// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"

	"github.com/creasty/defaults"
)

// CanvasConfig is the slide canvas in device pixels. The slide size in EMU
// and the synthesized background size both derive from it.
type CanvasConfig struct {
	WidthPx  int `json:"width_px" yaml:"width_px" mapstructure:"width_px" default:"1920"`
	HeightPx int `json:"height_px" yaml:"height_px" mapstructure:"height_px" default:"1080"`
}

// WidthEMU returns the canvas width in EMU.
func (c CanvasConfig) WidthEMU() int64 { return int64(c.WidthPx) * EMUPerPixel }

// HeightEMU returns the canvas height in EMU.
func (c CanvasConfig) HeightEMU() int64 { return int64(c.HeightPx) * EMUPerPixel }

// InputConfig locates the request file of the file-based input channel.
type InputConfig struct {
	// Dir is the directory holding the request file. Empty means
	// $TEMP/HMZPresentation, or the OS temp directory when TEMP is unset.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// File is the request file name within Dir.
	File string `json:"file" yaml:"file" mapstructure:"file" default:"show_pptx.json"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level" default:"info"`

	// Format is text or json.
	Format string `json:"format" yaml:"format" mapstructure:"format" default:"text"`
}

// AppConfig groups the process-wide settings read once at startup.
// Style defaults are loaded separately because they share the request's
// color and enum decoding.
type AppConfig struct {
	Canvas CanvasConfig `json:"canvas" yaml:"canvas" mapstructure:"canvas"`
	Input  InputConfig  `json:"input" yaml:"input" mapstructure:"input"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`

	// ErrorLog is the append-only file receiving fatal error lines.
	ErrorLog string `json:"error_log" yaml:"error_log" mapstructure:"error_log" default:"error_py.log"`

	// Creator is written to the deck's document properties.
	Creator string `json:"creator" yaml:"creator" mapstructure:"creator" default:"versedeck"`
}

// DefaultAppConfig returns the built-in application settings.
func DefaultAppConfig() AppConfig {
	var c AppConfig
	if err := defaults.Set(&c); err != nil {
		panic(fmt.Sprintf("types: default config tags: %v", err))
	}
	return c
}
