package diag

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CamelCase returns name with its first rune lower-cased, e.g. "MinLength"
// becomes "minLength". Names that already start in lower case, or with a
// symbol such as "$ref", are returned unchanged.
func CamelCase(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return name
	}

	return string(unicode.ToLower(r)) + name[size:]
}

// Format renders v for embedding in a diagnostic message.
//
// Strings and [fmt.Stringer] values are written as-is. Values implementing
// [json.Marshaler] are written as 2-space indented JSON without HTML
// escaping. A nil value renders as "null".
func Format(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case json.Marshaler:
		out, err := MarshalIndent(val, "  ")
		if err != nil {
			return fmt.Sprintf("%v", v)
		}

		return string(out)
	case fmt.Stringer:
		return val.String()
	}

	return fmt.Sprintf("%v", v)
}

// MarshalIndent encodes v as JSON indented by indent, without escaping
// HTML characters and without a trailing newline.
func MarshalIndent(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)

	err := enc.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Quote wraps s in single quotes, the delimiter used for every value
// embedded in a diagnostic message.
func Quote(s string) string {
	var sb strings.Builder

	sb.Grow(len(s) + 2)
	sb.WriteByte('\'')
	sb.WriteString(s)
	sb.WriteByte('\'')

	return sb.String()
}
