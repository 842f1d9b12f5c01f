// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config reads application settings and the default render style
// through viper.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/versedeck/internal/style"
	"github.com/pdiddy/versedeck/pkg/types"
)

// EnvPrefix prefixes every environment override (VERSEDECK_LOG_LEVEL).
const EnvPrefix = "VERSEDECK"

// styleKey holds the default style section.
const styleKey = "style"

// Setup points v at the config file and environment. An empty cfgFile
// searches ./versedeck.yaml and ~/.config/versedeck/versedeck.yaml.
func Setup(v *viper.Viper, cfgFile string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("versedeck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "versedeck"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
}

// SetDefaults registers the built-in application settings so that every
// key is known to viper and can be overridden from the environment.
func SetDefaults(v *viper.Viper) {
	d := types.DefaultAppConfig()
	v.SetDefault("canvas.width_px", d.Canvas.WidthPx)
	v.SetDefault("canvas.height_px", d.Canvas.HeightPx)
	v.SetDefault("input.dir", d.Input.Dir)
	v.SetDefault("input.file", d.Input.File)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("error_log", d.ErrorLog)
	v.SetDefault("creator", d.Creator)
}

// Read loads the config file if one is found. A missing file is not an
// error; a malformed one is. It returns the file used, if any.
func Read(v *viper.Viper) (string, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// App decodes the application settings over the built-in defaults.
func App(v *viper.Viper) (types.AppConfig, error) {
	cfg := types.DefaultAppConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return types.AppConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Canvas.WidthPx <= 0 || cfg.Canvas.HeightPx <= 0 {
		return types.AppConfig{}, fmt.Errorf("canvas must be positive, got %dx%d",
			cfg.Canvas.WidthPx, cfg.Canvas.HeightPx)
	}
	return cfg, nil
}

// Style returns the default render style: the style section of the config
// normalized over the built-in defaults. Section keys use the request's
// Config field names, in any case and with optional underscores or dashes
// (FontSize, fontsize, font_size).
func Style(v *viper.Viper) (types.StyleConfig, error) {
	d := types.DefaultStyleConfig()
	section := v.GetStringMap(styleKey)
	if len(section) == 0 {
		return d, nil
	}

	flat := make(map[string]any, len(section))
	for k, val := range section {
		flat[strings.NewReplacer("_", "", "-", "").Replace(k)] = val
	}
	data, err := json.Marshal(flat)
	if err != nil {
		return types.StyleConfig{}, fmt.Errorf("encoding style section: %w", err)
	}
	var in types.StyleInput
	if err := json.Unmarshal(data, &in); err != nil {
		return types.StyleConfig{}, fmt.Errorf("decoding style section: %w", err)
	}
	return style.Normalize(&in, d), nil
}
