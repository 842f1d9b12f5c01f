// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/versedeck/internal/textparse"
)

var reflowCmd = &cobra.Command{
	Use:   "reflow <file>",
	Short: "Regroup song text into blank-line separated paragraphs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readText(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), textparse.Reflow(text))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reflowCmd)
}
