// Package matches loads DNA match exports: delimited text with a header row.
//
// Rows are split on the delimiter without any quote handling, so a value
// containing the delimiter shifts the columns after it. Exports from the
// major testing sites do not quote names, and a partial row is more useful
// than a rejected file.
package matches

import (
	"strings"

	"github.com/agenthands/lineage/internal/core/model"
)

// DefaultNameAliases lists the columns that may carry a match's name, in
// priority order.
var DefaultNameAliases = []string{"name", "match name", "display name"}

type Options struct {
	Delimiter   string
	NameAliases []string
}

type Loader struct {
	delimiter string
	aliases   []string
}

func NewLoader(opts Options) *Loader {
	l := &Loader{delimiter: opts.Delimiter}
	if l.delimiter == "" {
		l.delimiter = ","
	}
	aliases := opts.NameAliases
	if len(aliases) == 0 {
		aliases = DefaultNameAliases
	}
	for _, a := range aliases {
		l.aliases = append(l.aliases, strings.ToLower(strings.TrimSpace(a)))
	}
	return l
}

// ParseMatchTable parses comma-separated match text with the default aliases.
func ParseMatchTable(text string) []model.DnaMatch {
	return NewLoader(Options{}).Parse(text)
}

// Parse treats the first non-blank line as the header and maps every later
// non-blank line onto it by position. Missing trailing fields become "".
func (l *Loader) Parse(text string) []model.DnaMatch {
	matches := []model.DnaMatch{}

	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return matches
	}

	headers := l.split(lines[0])
	for i, h := range headers {
		headers[i] = strings.ToLower(h)
	}

	for _, line := range lines[1:] {
		values := l.split(line)
		fields := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(values) {
				fields[h] = values[i]
			} else {
				fields[h] = ""
			}
		}
		matches = append(matches, model.DnaMatch{
			Fields:         fields,
			NormalizedName: l.normalizedName(fields),
		})
	}
	return matches
}

func (l *Loader) normalizedName(fields map[string]string) string {
	for _, alias := range l.aliases {
		if v := fields[alias]; v != "" {
			return v
		}
	}
	return ""
}

func (l *Loader) split(line string) []string {
	parts := strings.Split(line, l.delimiter)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
