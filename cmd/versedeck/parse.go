// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/versedeck/internal/apperr"
	"github.com/pdiddy/versedeck/internal/songbook"
	"github.com/pdiddy/versedeck/internal/textparse"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse numbered song text into structured entries",
	Long: `Parse reads a song text file in which lines like "12. Title" open an
entry and every other non-blank line is a verse, and prints the entries as
JSON or YAML. Text before the first entry is ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		reflow, _ := cmd.Flags().GetBool("reflow")

		text, err := readText(args[0])
		if err != nil {
			return err
		}
		if reflow {
			text = textparse.Reflow(text)
		}
		entries, err := textparse.Parse(text)
		if err != nil {
			var pe *apperr.ParseError
			if errors.As(err, &pe) {
				pe.Source = args[0]
			}
			return err
		}
		data, err := songbook.Encode(entries, format)
		if err != nil {
			return err
		}
		logger.Debug("parsed", "file", args[0], "entries", len(entries))
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	parseCmd.Flags().String("format", songbook.FormatJSON, "output format: json or yaml")
	parseCmd.Flags().Bool("reflow", false, "reflow the text into paragraphs before parsing")

	rootCmd.AddCommand(parseCmd)
}

// readText reads a text file as UTF-8, falling back to Latin-1.
func readText(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return textparse.Decode(raw)
}
