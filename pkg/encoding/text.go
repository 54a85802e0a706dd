// Package encoding normalizes text input to UTF-8.
package encoding

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ToUTF8 converts document bytes to a UTF-8 string.
//
// A byte order mark selects UTF-8 or UTF-16 and is stripped. Without one,
// valid UTF-8 is kept and anything else is read as ISO-8859-1. Each input
// byte then decodes to exactly one character, so fixed columns survive when
// counted in characters. Returns the input bytes as a string if conversion
// fails.
func ToUTF8(data []byte) string {
	var fallback transform.Transformer = transform.Nop
	if !utf8.Valid(data) {
		fallback = charmap.ISO8859_1.NewDecoder()
	}

	result, _, err := transform.Bytes(unicode.BOMOverride(fallback), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

