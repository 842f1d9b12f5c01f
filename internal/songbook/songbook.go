// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package songbook converts song text files into reflowed text and
// structured entry files, one pair per source file.
package songbook

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/versedeck/internal/textparse"
	"github.com/pdiddy/versedeck/pkg/types"
)

// Output formats for the structured file.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// outputSuffix is appended to the source base name of every output file.
const outputSuffix = "_format"

// Status is the outcome of converting one file.
type Status int

const (
	StatusConverted Status = iota
	StatusSkipped
	StatusFailed
)

// Options control where and how outputs are written.
type Options struct {
	// OutDir receives the outputs. Empty means next to each source file.
	OutDir string

	// Format is FormatJSON or FormatYAML. Empty means FormatJSON.
	Format string
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Encode serializes entries in the given format.
func Encode(entries []types.Entry, format string) ([]byte, error) {
	switch format {
	case "", FormatJSON:
		data, err := json.MarshalIndent(entries, "", "    ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

// OutputPaths returns the reflowed text and structured output paths for src.
func OutputPaths(src string, opts Options) (textPath, dataPath string) {
	dir := opts.OutDir
	if dir == "" {
		dir = filepath.Dir(src)
	}
	format := opts.Format
	if format == "" {
		format = FormatJSON
	}
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + outputSuffix
	return filepath.Join(dir, base+".txt"), filepath.Join(dir, base+"."+format)
}

// ConvertFile reflows and parses one source file. If the structured output
// already exists, the file is skipped.
func ConvertFile(src string, opts Options, w io.Writer) Status {
	textPath, dataPath := OutputPaths(src, opts)
	base := filepath.Base(src)

	if _, err := os.Stat(dataPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
		return StatusSkipped
	}

	entries, reflowed, err := convert(src, opts.Format)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	data, err := Encode(entries, opts.Format)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}
	if err := os.WriteFile(textPath, []byte(reflowed+"\n"), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}
	if err := os.WriteFile(dataPath, data, 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s (%d entries)\n", base, len(entries))
	return StatusConverted
}

func convert(src, format string) ([]types.Entry, string, error) {
	if format != "" && format != FormatJSON && format != FormatYAML {
		return nil, "", fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
	raw, err := os.ReadFile(src)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", src, err)
	}
	text, err := textparse.Decode(raw)
	if err != nil {
		return nil, "", err
	}
	reflowed := textparse.Reflow(text)
	entries, err := textparse.Parse(reflowed)
	if err != nil {
		return nil, "", err
	}
	return entries, reflowed, nil
}

// ConvertBatch processes every source file, printing per-file status to w
// and returning a summary.
func ConvertBatch(paths []string, opts Options, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range paths {
		switch ConvertFile(p, opts, w) {
		case StatusConverted:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
