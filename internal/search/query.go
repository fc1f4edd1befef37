// Package search parses launcher search text into directives and matches
// applications against them.
package search

import (
	"path/filepath"
	"strings"

	"github.com/justyntemme/launchgrid/internal/model"
)

// Directive types
type DirectiveType int

const (
	DirName   DirectiveType = iota // display name contains the value
	DirPath                        // install path contains the value
	DirFolder                      // the app sits in a folder whose name contains the value
	DirKind                        // "app" bundle or "desktop" entry
)

// Directive represents a single search directive
type Directive struct {
	Type   DirectiveType
	Value  string // lower-cased
	Negate bool   // written with a leading '-'
}

// Query holds parsed search directives
type Query struct {
	Directives []Directive
	Raw        string
}

// Parse parses a search string into directives.
// Examples:
//   - "term" -> name contains "term"
//   - "\"visual studio\"" -> name contains the quoted phrase
//   - "in:tools" -> apps inside a folder named like "tools"
//   - "path:/opt" -> apps installed under /opt
//   - "kind:desktop" -> desktop entries only
//   - "-beta" -> name does not contain "beta"
func Parse(input string) *Query {
	q := &Query{Raw: input}
	input = strings.TrimSpace(input)
	if input == "" {
		return q
	}
	for _, part := range splitRespectingQuotes(input) {
		if d, ok := parseDirective(part); ok {
			q.Directives = append(q.Directives, d)
		}
	}
	return q
}

func splitRespectingQuotes(s string) []string {
	var parts []string
	var current strings.Builder
	inQuotes := false
	quoteChar := rune(0)

	for _, r := range s {
		switch {
		case (r == '"' || r == '\'') && !inQuotes:
			inQuotes = true
			quoteChar = r
		case r == quoteChar && inQuotes:
			inQuotes = false
			quoteChar = 0
		case r == ' ' && !inQuotes:
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func parseDirective(s string) (Directive, bool) {
	var d Directive
	if len(s) > 1 && s[0] == '-' {
		d.Negate = true
		s = s[1:]
	}

	d.Type = DirName
	if idx := strings.Index(s, ":"); idx > 0 {
		value := strings.Trim(s[idx+1:], "\"'")
		switch strings.ToLower(s[:idx]) {
		case "name":
			s = value
		case "path":
			d.Type, s = DirPath, value
		case "in", "folder":
			d.Type, s = DirFolder, value
		case "kind", "type":
			d.Type, s = DirKind, strings.TrimPrefix(value, ".")
		}
	}

	d.Value = strings.ToLower(s)
	return d, d.Value != ""
}

// IsEmpty returns true if query has no directives
func (q *Query) IsEmpty() bool {
	return len(q.Directives) == 0
}

// Match reports whether app satisfies every directive (implicit AND).
// folder is the name of the folder holding app, or "" on the main grid.
// An empty query matches nothing.
func (q *Query) Match(app model.Item, folder string) bool {
	if q.IsEmpty() {
		return false
	}
	for _, d := range q.Directives {
		if matchDirective(d, app, folder) == d.Negate {
			return false
		}
	}
	return true
}

func matchDirective(d Directive, app model.Item, folder string) bool {
	switch d.Type {
	case DirPath:
		return strings.Contains(strings.ToLower(app.Path), d.Value)
	case DirFolder:
		return folder != "" && strings.Contains(strings.ToLower(folder), d.Value)
	case DirKind:
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(app.Path)), ".") == d.Value
	}
	return matchGlob(strings.ToLower(app.Name), d.Value)
}

// matchGlob does simple glob matching with * wildcards
func matchGlob(name, pattern string) bool {
	// If pattern has no wildcards, do substring match
	if !strings.Contains(pattern, "*") {
		return strings.Contains(name, pattern)
	}
	parts := strings.Split(pattern, "*")

	if parts[0] != "" && !strings.HasPrefix(name, parts[0]) {
		return false
	}
	last := parts[len(parts)-1]
	if last != "" && !strings.HasSuffix(name, last) {
		return false
	}

	// Middle parts must appear in order between prefix and suffix.
	pos := len(parts[0])
	for _, part := range parts[1 : len(parts)-1] {
		if part == "" {
			continue
		}
		idx := strings.Index(name[pos:], part)
		if idx < 0 {
			return false
		}
		pos += idx + len(part)
	}
	return pos <= len(name)-len(last)
}
