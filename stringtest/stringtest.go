// Package stringtest provides helpers for building multi-line test inputs
// and expectations, mainly inline JSON fixtures whose line and column
// numbers show up in diagnostics.
package stringtest

import "strings"

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//		"line3",
//	) // -> "line1\nline2\nline3"
func JoinLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}

// Input dedents a raw string literal so it can be indented along with the
// surrounding test code. It drops one leading newline and one trailing
// whitespace-only line, blanks whitespace-only lines, and removes the
// indentation shared by all remaining non-blank lines. Tabs and spaces
// each count as one column.
//
// Example:
//
//	doc := stringtest.Input(`
//		{
//		  "type": "string"
//		}
//	`) // -> "{\n  \"type\": \"string\"\n}"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	lines := strings.Split(s, "\n")

	if last := len(lines) - 1; last > 0 && strings.TrimSpace(lines[last]) == "" {
		lines = lines[:last]
	}

	margin := -1

	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			lines[i] = ""

			continue
		}

		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	if margin > 0 {
		for i, line := range lines {
			if line != "" {
				lines[i] = line[margin:]
			}
		}
	}

	return strings.Join(lines, "\n")
}
