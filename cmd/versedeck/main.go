// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the versedeck CLI.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/versedeck/internal/config"
	"github.com/pdiddy/versedeck/internal/logging"
	"github.com/pdiddy/versedeck/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Process-wide settings, resolved once before any command runs.
var (
	appCfg        types.AppConfig
	styleDefaults types.StyleConfig
	logger        = logging.Nop()
	configErr     error
)

// errReported marks a failure already written to the error log and stderr.
var errReported = errors.New("error reported")

// rootCmd is the base command for the versedeck CLI.
var rootCmd = &cobra.Command{
	Use:   "versedeck",
	Short: "Render verses and song text into PowerPoint decks",
	Long: `versedeck turns scripture verses and numbered song text into slide decks.

The render command reads a JSON request from the presentation channel (or
stdin) and writes a .pptx with one slide per verse. The parse, reflow and
songbook commands prepare song text files; inspect reads a deck back.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadSettings(cmd); err != nil {
			if cmd.Annotations[annotationErrorLog] == "true" {
				return reportFatal(cmd, err)
			}
			return err
		}
		return nil
	},
}

// annotationErrorLog marks commands whose every failure, including
// configuration failures, is appended to the error log.
const annotationErrorLog = "versedeck/error-log"

// loadSettings resolves the application config, default style and logger.
func loadSettings(cmd *cobra.Command) error {
	if configErr != nil {
		return configErr
	}
	var err error
	if appCfg, err = config.App(viper.GetViper()); err != nil {
		return err
	}
	if styleDefaults, err = config.Style(viper.GetViper()); err != nil {
		return err
	}
	l, err := logging.New(appCfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger = l
	slog.SetDefault(logger)
	gg.SetLogger(logger)
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./versedeck.yaml or ~/.config/versedeck/versedeck.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, or error")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	config.Setup(viper.GetViper(), cfgFile)
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	used, err := config.Read(viper.GetViper())
	configErr = err
	if err != nil {
		return
	}
	if used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
