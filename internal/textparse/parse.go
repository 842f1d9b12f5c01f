// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textparse turns numbered song text into structured entries and
// reflows it into readable paragraphs.
//
// A line such as "12. Title" opens an entry; every other non-blank line is a
// verse of the open entry. Text before the first entry marker is dropped.
package textparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/versedeck/internal/apperr"
	"github.com/pdiddy/versedeck/pkg/types"
)

// entryPattern matches an entry marker: digits, a literal period, then the name.
var entryPattern = regexp.MustCompile(`^(\d+)\.\s*(.*)`)

// Parse scans raw text into entries. Blank lines are skipped and do not close
// an entry. It returns a ParseError only when raw holds no text at all; text
// without any entry marker yields an empty, non-nil slice.
func Parse(raw string) ([]types.Entry, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &apperr.ParseError{Message: "input is empty"}
	}

	entries := []types.Entry{}
	var current *types.Entry

	for _, line := range splitLines(raw) {
		if line == "" {
			continue
		}

		if label, name, ok := matchEntry(line); ok {
			if current != nil {
				entries = append(entries, *current)
			}
			current = &types.Entry{
				ID:     len(entries) + 1,
				Label:  label,
				Name:   name,
				Verses: []types.Verse{},
			}
			continue
		}

		if current == nil {
			continue
		}
		current.Verses = append(current.Verses, types.Verse{
			SongID:  current.ID,
			ID:      len(current.Verses) + 1,
			Content: line,
		})
	}

	if current != nil {
		entries = append(entries, *current)
	}
	return entries, nil
}

// matchEntry reports whether line opens an entry. A label too large for an
// int is treated as ordinary content.
func matchEntry(line string) (label int, name string, ok bool) {
	m := entryPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	label, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return label, strings.TrimSpace(m[2]), true
}

// splitLines splits raw on newlines and trims each line. Carriage returns
// are trimmed with the rest of the surrounding whitespace.
func splitLines(raw string) []string {
	lines := strings.Split(raw, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}
