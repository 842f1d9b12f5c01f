// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/versedeck/internal/songbook"
)

var songbookCmd = &cobra.Command{
	Use:   "songbook <files...>",
	Short: "Convert song text files into reflowed text and structured entries",
	Long: `Songbook converts each file into <name>_format.txt, the reflowed text,
and <name>_format.json (or .yaml), the parsed entries. Files whose structured
output already exists are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("out-dir")
		format, _ := cmd.Flags().GetString("format")

		result := songbook.ConvertBatch(args, songbook.Options{OutDir: outDir, Format: format}, cmd.OutOrStdout())
		if result.HasFailures() {
			return fmt.Errorf("%d of %d files failed", result.Failed, result.Total())
		}
		return nil
	},
}

func init() {
	songbookCmd.Flags().String("out-dir", "", "output directory (default: next to each file)")
	songbookCmd.Flags().String("format", songbook.FormatJSON, "structured output format: json or yaml")

	rootCmd.AddCommand(songbookCmd)
}
