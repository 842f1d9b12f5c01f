// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"fmt"
	"strings"

	"github.com/pdiddy/versedeck/pkg/types"
)

// ComposeTitle builds the slide title for one verse.
func ComposeTitle(mode types.TitleMode, book, chapter, label string) string {
	switch mode {
	case types.TitleChapterBook:
		return strings.TrimSpace(fmt.Sprintf("%s %s", chapter, book))
	default:
		return strings.TrimSpace(fmt.Sprintf("%s %s:%s", book, chapter, label))
	}
}

// DocumentTitle is the deck-level title, "{book} {chapter}".
func DocumentTitle(book, chapter string) string {
	return strings.TrimSpace(book + " " + chapter)
}

// ComposeBody builds the body text for one verse.
func ComposeBody(label, content string) string {
	return fmt.Sprintf("%s.  %s", label, content)
}
