// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/versedeck/internal/errorlog"
	"github.com/pdiddy/versedeck/internal/layout"
	"github.com/pdiddy/versedeck/internal/pptx"
	"github.com/pdiddy/versedeck/internal/request"
	"github.com/pdiddy/versedeck/internal/viewer"
	"github.com/pdiddy/versedeck/pkg/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a verse request into a PowerPoint deck",
	Long: `Render reads one JSON request and writes a deck with one slide per verse
to the request's FilePath.

By default the request is read from show_pptx.json in the HMZPresentation
directory under $TEMP, and the file is deleted once read. Use --stdin to pipe
the request instead. Failures are appended to the error log and exit 1.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationErrorLog: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runRender(cmd); err != nil {
			return reportFatal(cmd, err)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().String("input", "", "request file (default: $TEMP/HMZPresentation/show_pptx.json)")
	renderCmd.Flags().Bool("stdin", false, "read the request from standard input")
	renderCmd.Flags().String("output", "", "write the deck here instead of the request's FilePath")
	renderCmd.Flags().Bool("open", false, "open the deck in the default viewer when done")
	renderCmd.MarkFlagsMutuallyExclusive("input", "stdin")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command) error {
	ctx := cmd.Context()
	useStdin, _ := cmd.Flags().GetBool("stdin")
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	open, _ := cmd.Flags().GetBool("open")

	binder := request.NewBinder()
	var (
		req *types.RenderRequest
		err error
	)
	if useStdin {
		req, err = binder.LoadReader(ctx, cmd.InOrStdin())
	} else {
		if input == "" {
			input = request.InputPath(appCfg.Input)
		}
		logger.Debug("reading request", "path", input)
		req, err = binder.LoadFile(ctx, input)
	}
	if err != nil {
		return err
	}
	if output != "" {
		req.FilePath = output
	}

	engine := layout.NewEngine(styleDefaults, appCfg.Canvas, layout.WithLogger(logger))
	doc, err := engine.Render(*req)
	if err != nil {
		return fmt.Errorf("rendering deck: %w", err)
	}

	data, err := pptx.Build(doc, pptx.Metadata{Creator: appCfg.Creator})
	if err != nil {
		return err
	}
	if err := pptx.WriteFile(req.FilePath, data); err != nil {
		return err
	}
	logger.Info("deck written", "path", req.FilePath, "slides", len(doc.Slides))
	fmt.Fprintln(cmd.OutOrStdout(), req.FilePath)

	if open {
		v := viewer.Default()
		if err := v.Open(req.FilePath); err != nil {
			logger.Warn("opening deck", "viewer", v.Name(), "error", err)
		}
	}
	return nil
}

// reportFatal appends err to the error log and prints the same line to
// stderr. Before the config is loaded the default log path is used.
func reportFatal(cmd *cobra.Command, err error) error {
	path := appCfg.ErrorLog
	if path == "" {
		path = types.DefaultAppConfig().ErrorLog
	}
	line, logErr := errorlog.New(path).Append(err)
	if logErr != nil {
		logger.Warn("writing error log", "error", logErr)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), line)
	return errReported
}
