//go:build mage

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Songbook converts every samples/*.txt song file into reflowed text and JSON.
func Songbook() error {
	mg.Deps(Build)
	files, err := filepath.Glob(filepath.Join(sampleDir, "*.txt"))
	if err != nil {
		return err
	}
	var sources []string
	for _, f := range files {
		if !strings.HasSuffix(f, "_format.txt") {
			sources = append(sources, f)
		}
	}
	if len(sources) == 0 {
		fmt.Println("[songbook] No song files in", sampleDir)
		return nil
	}
	args := append([]string{"songbook"}, sources...)
	return sh.RunV(filepath.Join(binDir, binName), args...)
}
