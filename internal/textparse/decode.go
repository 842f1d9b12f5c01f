// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textparse

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts raw file bytes to a string. Valid UTF-8 is used as is with
// any byte order mark removed; anything else is read as ISO-8859-1.
func Decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}

	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding latin-1 text: %w", err)
	}
	return string(out), nil
}
