// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Wrap breaks text into lines of at most width runes. Lines break at
// whitespace; a word longer than width is split across lines. Whitespace at
// a line break is dropped, whitespace inside a line is kept as is.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	chunks := splitChunks(strings.TrimSpace(text))

	var lines []string
	for len(chunks) > 0 {
		if len(lines) > 0 && isSpace(chunks[0]) {
			chunks = chunks[1:]
			continue
		}

		var cur []string
		n := 0
		for len(chunks) > 0 {
			l := utf8.RuneCountInString(chunks[0])
			if n+l > width {
				break
			}
			cur = append(cur, chunks[0])
			n += l
			chunks = chunks[1:]
		}

		if len(chunks) > 0 && utf8.RuneCountInString(chunks[0]) > width {
			// Fill the rest of the line with the head of the long word.
			head, tail := splitRunes(chunks[0], width-n)
			if head != "" {
				cur = append(cur, head)
			}
			chunks[0] = tail
		}

		if len(cur) > 0 && isSpace(cur[len(cur)-1]) {
			cur = cur[:len(cur)-1]
		}
		if len(cur) > 0 {
			lines = append(lines, strings.Join(cur, ""))
		}
	}
	return lines
}

// Pack greedily joins consecutive lines with single spaces into blocks of
// at most width runes.
func Pack(lines []string, width int) []string {
	var blocks []string
	cur := ""
	for _, line := range lines {
		switch {
		case cur == "":
			cur = line
		case utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(line) > width:
			blocks = append(blocks, cur)
			cur = line
		default:
			cur += " " + line
		}
	}
	if cur != "" {
		blocks = append(blocks, cur)
	}
	return blocks
}

// splitChunks splits s into alternating runs of whitespace and non-whitespace.
// Whitespace runes are normalized to plain spaces.
func splitChunks(s string) []string {
	var chunks []string
	var b strings.Builder
	inSpace := false
	for i, r := range s {
		space := unicode.IsSpace(r)
		if i > 0 && space != inSpace {
			chunks = append(chunks, b.String())
			b.Reset()
		}
		inSpace = space
		if space {
			r = ' '
		}
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}

func isSpace(chunk string) bool {
	return strings.TrimSpace(chunk) == ""
}

// splitRunes splits s after n runes.
func splitRunes(s string, n int) (head, tail string) {
	if n <= 0 {
		return "", s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}
