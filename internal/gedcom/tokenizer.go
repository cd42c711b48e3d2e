// Package gedcom reads GEDCOM-style genealogical records into a family tree.
//
// Parsing is tolerant: lines that cannot be interpreted are skipped, records
// of unsupported types are ignored, and references to records that do not
// exist are dropped. The worst outcome of malformed input is an individual
// with empty fields, never a failed parse.
package gedcom

import (
	"strconv"
	"strings"
)

// Line is one tokenized record line: "<level> <tag> [value]".
type Line struct {
	Level  int
	Tag    string
	Value  string
	Number int // 1-based position in the source text
}

// Tokenize splits record text into leveled lines. Blank lines, lines whose
// level is not a non-negative integer, and lines without a tag are skipped.
// Runs of whitespace inside the value collapse to a single space.
func Tokenize(text string) []Line {
	var lines []Line
	for i, raw := range strings.Split(text, "\n") {
		if line, ok := tokenizeLine(raw); ok {
			line.Number = i + 1
			lines = append(lines, line)
		}
	}
	return lines
}

func tokenizeLine(raw string) (Line, bool) {
	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return Line{}, false
	}
	level, err := strconv.Atoi(fields[0])
	if err != nil || level < 0 {
		return Line{}, false
	}
	return Line{
		Level: level,
		Tag:   fields[1],
		Value: strings.Join(fields[2:], " "),
	}, true
}

// isPointer reports whether s is a cross-reference such as "@I1@".
func isPointer(s string) bool {
	return len(s) >= 3 && strings.HasPrefix(s, "@") && strings.HasSuffix(s, "@")
}

// unwrapPointer strips the pointer delimiters. Values that are not
// delimited are returned as-is.
func unwrapPointer(s string) string {
	if isPointer(s) {
		return s[1 : len(s)-1]
	}
	return s
}
