package toc

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugify derives a heading identifier from its text. Both the ToC extractor and the
// markdown renderer go through this function, so an anchor and its ToC link always agree.
//
// The steps are applied in order: lowercase, drop every rune that is not an ASCII word
// character, whitespace or '-', turn whitespace runs into a single '-', collapse '-' runs,
// then trim '-' and whitespace from both ends.
func Slugify(text string) string {
	lower := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lower))
	inSpace := false
	for _, r := range lower {
		switch {
		case unicode.IsSpace(r):
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
			continue
		case isWordRune(r):
			b.WriteRune(r)
		case r == '-':
			b.WriteByte('-')
		default:
			// Stripped characters do not end a whitespace run: "a ! b" is "a-b".
			continue
		}
		inSpace = false
	}

	return strings.TrimSpace(strings.Trim(collapseHyphens(b.String()), "-"))
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func collapseHyphens(s string) string {
	if !strings.Contains(s, "--") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	prev := rune(0)
	for _, r := range s {
		if r == '-' && prev == '-' {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// Slugger hands out identifiers that are unique within one document.
//
// The first heading to produce a given identifier keeps it. Later ones get an occurrence
// suffix ("-1", "-2", ...), skipping any suffixed form that is already taken. Headings
// whose text has no word characters get an empty identifier and are never registered.
type Slugger struct {
	seen map[string]int
}

// NewSlugger returns an empty Slugger for a new document.
func NewSlugger() *Slugger {
	return &Slugger{seen: make(map[string]int)}
}

// Next returns the identifier for the next heading with the given title.
func (s *Slugger) Next(title string) string {
	base := Slugify(title)
	if base == "" {
		return ""
	}
	n, taken := s.seen[base]
	if !taken {
		s.seen[base] = 0
		return base
	}

	id := base
	for {
		n++
		id = base + "-" + strconv.Itoa(n)
		if _, dup := s.seen[id]; !dup {
			break
		}
	}
	s.seen[base] = n
	s.seen[id] = 0
	return id
}
