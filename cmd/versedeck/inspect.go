// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/versedeck/internal/pptx"
	"github.com/pdiddy/versedeck/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <deck.pptx>",
	Short: "List the slides, titles and body text of a deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		doc, err := pptx.ReadFile(args[0])
		if err != nil {
			return err
		}
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}
		printDeck(cmd.OutOrStdout(), doc)
		return nil
	},
}

func init() {
	inspectCmd.Flags().Bool("json", false, "output the deck as JSON")

	rootCmd.AddCommand(inspectCmd)
}

func printDeck(w io.Writer, doc *types.SlideDocument) {
	fmt.Fprintf(w, "Title:  %s\n", doc.Title)
	fmt.Fprintf(w, "Size:   %d x %d EMU\n", doc.WidthEMU, doc.HeightEMU)
	fmt.Fprintf(w, "Slides: %d\n", len(doc.Slides))
	for i, s := range doc.Slides {
		fmt.Fprintf(w, "\n[%d] background: %s", i+1, s.Background.Kind)
		if s.Overlay != nil {
			fmt.Fprint(w, " + overlay")
		}
		fmt.Fprintln(w)
		if s.Title != nil {
			fmt.Fprintf(w, "    title: %s\n", s.Title.Text())
		}
		for _, p := range s.Body.Paragraphs {
			fmt.Fprintf(w, "    | %s\n", p.Text)
		}
	}
}
