package jsonvalue

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON writes v as compact JSON, keeping object member order and
// number literals. HTML characters are not escaped.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	err := v.encode(&buf)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")

	case KindBool:
		if v.boolean {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}

	case KindNumber:
		buf.WriteString(v.text)

	case KindString:
		return encodeString(buf, v.text)

	case KindArray:
		buf.WriteByte('[')

		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}

			err := item.encode(buf)
			if err != nil {
				return err
			}
		}

		buf.WriteByte(']')

	case KindObject:
		buf.WriteByte('{')

		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}

			err := encodeString(buf, m.Key)
			if err != nil {
				return err
			}

			buf.WriteByte(':')

			err = m.Value.encode(buf)
			if err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	}

	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	err := enc.Encode(s)
	if err != nil {
		return err //nolint:wrapcheck // Strings always encode.
	}

	// Drop the newline Encode appends.
	buf.Truncate(buf.Len() - 1)

	return nil
}
