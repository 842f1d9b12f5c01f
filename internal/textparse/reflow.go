// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textparse

import (
	"regexp"
	"strings"
)

// headingPattern matches lines that force a paragraph break: a bare number,
// or a number immediately followed by a period.
var headingPattern = regexp.MustCompile(`^\d+(\.|$)`)

// Reflow regroups raw text into paragraphs separated by one blank line.
//
// Consecutive non-blank lines are joined with single spaces. A heading line
// (see headingPattern) closes the current paragraph even without a blank
// line before it and stays on a line of its own at the top of the next one,
// so that Parse reads each reflowed paragraph as one verse.
func Reflow(raw string) string {
	var out []string
	var heading string
	var body []string

	flush := func() {
		if heading == "" && len(body) == 0 {
			return
		}
		text := strings.Join(body, " ")
		if heading != "" {
			text = strings.TrimSpace(heading + "\n" + text)
		}
		out = append(out, text)
		heading, body = "", nil
	}

	for _, line := range splitLines(raw) {
		switch {
		case line == "":
			flush()
		case headingPattern.MatchString(line):
			flush()
			heading = line
		default:
			body = append(body, line)
		}
	}
	flush()

	return strings.Join(out, "\n\n")
}
