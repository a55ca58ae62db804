package diag

import (
	"strconv"
	"strings"
)

// Segment is one step of a [Path]: either an object key or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key returns a [Segment] selecting an object member.
func Key(name string) Segment {
	return Segment{Key: name}
}

// Index returns a [Segment] selecting an array element.
func Index(i int) Segment {
	return Segment{Index: i, IsIndex: true}
}

// Path is a JSON path from a document root to a nested value. The zero
// value is the root.
type Path []Segment

// Child returns a new path extending p by seg. It never modifies p.
func (p Path) Child(seg Segment) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)

	return append(child, seg)
}

// String renders p in dotted/bracketed form: identifier-like keys are
// joined with dots, indices use [n], and any other key uses ['key'].
// The root path renders as an empty string.
func (p Path) String() string {
	var sb strings.Builder

	for _, seg := range p {
		switch {
		case seg.IsIndex:
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(seg.Index))
			sb.WriteByte(']')
		case isPlainKey(seg.Key):
			if sb.Len() > 0 {
				sb.WriteByte('.')
			}

			sb.WriteString(seg.Key)
		default:
			sb.WriteString("['")
			sb.WriteString(strings.ReplaceAll(seg.Key, "'", `\'`))
			sb.WriteString("']")
		}
	}

	return sb.String()
}

// Suffix returns " at path '<path>'" for use at the end of a message, or an
// empty string for the root path.
func (p Path) Suffix() string {
	if len(p) == 0 {
		return ""
	}

	return " at path " + Quote(p.String())
}

// isPlainKey reports whether key can be written in dotted form.
func isPlainKey(key string) bool {
	if key == "" {
		return false
	}

	for _, r := range key {
		switch {
		case r == '_' || r == '$' || r == '-':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return false
		}
	}

	return true
}
