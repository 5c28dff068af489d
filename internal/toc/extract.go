// Package toc builds the table of contents for an article: heading identifiers,
// the duplicate-identifier policy, and extraction of section headings from markdown.
package toc

import (
	"bufio"
	"strings"
	"unicode/utf8"
)

// Heading levels that take part in the table of contents. The level-1 heading is the
// document title and is never listed.
const (
	MinLevel = 2
	MaxLevel = 3
)

// Entry is one table of contents line.
type Entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Level int    `json:"level"`
}

// Extract scans article text and returns its section headings in document order.
// Malformed input yields fewer entries, never an error.
func Extract(text string) []Entry {
	var entries []Entry
	slugger := NewSlugger()
	fence := ""

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if marker := fenceMarker(line); marker != "" {
			switch {
			case fence == "":
				fence = marker
			case strings.HasPrefix(marker, fence[:1]) && len(marker) >= len(fence):
				fence = ""
			}
			continue
		}
		if fence != "" {
			continue
		}

		level, title, ok := ParseHeading(line)
		if !ok || !Qualifies(title) {
			continue
		}
		id := slugger.Next(title)
		if id == "" {
			continue
		}
		entries = append(entries, Entry{ID: id, Title: title, Level: level})
	}
	return entries
}

// ParseHeading reports whether line is a level 2 or 3 heading ("## text", "### text")
// and returns the level and the trimmed heading text. Up to three leading spaces are
// allowed and a closing run of '#' is dropped, the same way the markdown renderer
// treats them.
func ParseHeading(line string) (level int, title string, ok bool) {
	line, ok = trimIndent(line)
	if !ok {
		return 0, "", false
	}
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level < MinLevel || level > MaxLevel || level == len(line) {
		return 0, "", false
	}
	if line[level] != ' ' && line[level] != '\t' {
		return 0, "", false
	}

	title = strings.TrimSpace(line[level:])
	if title == "" {
		return 0, "", false
	}
	title = stripClosingSequence(title)
	return level, title, true
}

// Qualifies reports whether a heading title is a real section rather than noise:
// empty titles, separator-like titles ("---") and single characters are skipped.
func Qualifies(title string) bool {
	if title == "" || strings.HasPrefix(title, "---") {
		return false
	}
	return utf8.RuneCountInString(title) > 1
}

func stripClosingSequence(title string) string {
	trimmed := strings.TrimRight(title, "#")
	if trimmed == title {
		return title
	}
	if trimmed == "" {
		// "## ##" is an empty heading.
		return ""
	}
	last := trimmed[len(trimmed)-1]
	if last != ' ' && last != '\t' {
		// "C#" keeps its hash.
		return title
	}
	return strings.TrimSpace(trimmed)
}

// trimIndent strips the leading spaces of a block line. More than three spaces make
// an indented code line, which is never a heading or a fence.
func trimIndent(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " ")
	return trimmed, len(line)-len(trimmed) <= 3
}

// fenceMarker returns the opening run of a fenced code block line ("```", "~~~~"), or "".
func fenceMarker(line string) string {
	trimmed, ok := trimIndent(line)
	if !ok || len(trimmed) < 3 {
		return ""
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return ""
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return ""
	}
	return trimmed[:n]
}
