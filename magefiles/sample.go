//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const sampleRequest = `{
  "FilePath": %q,
  "BookName": "John",
  "ChapterNumber": 3,
  "Verses": [
    {"label": 16, "content": "For God so loved the world, that he gave his only begotten Son, that whosoever believeth in him should not perish, but have everlasting life."},
    {"label": 17, "content": "For God sent not his Son into the world to condemn the world; but that the world through him might be saved."}
  ],
  "Config": {"FontFamily": "Georgia", "FontStyle": 1, "Color": "white", "TextAlign": "center", "TypeShow": 0}
}
`

// Sample builds the CLI and renders a two-verse request into samples/sample.pptx.
func Sample() error {
	mg.SerialDeps(Init, Build)

	deck, err := filepath.Abs(filepath.Join(sampleDir, "sample.pptx"))
	if err != nil {
		return err
	}
	// render deletes the request once read, so it is written fresh every run.
	reqPath := filepath.Join(sampleDir, "sample_request.json")
	if err := os.WriteFile(reqPath, []byte(fmt.Sprintf(sampleRequest, deck)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", reqPath, err)
	}

	if err := sh.RunV(filepath.Join(binDir, binName), "render", "--input", reqPath); err != nil {
		return fmt.Errorf("rendering sample: %w", err)
	}
	return sh.RunV(filepath.Join(binDir, binName), "inspect", deck)
}
