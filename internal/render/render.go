// Package render converts article markdown to HTML. Section headings are tagged with
// the identifiers of the article's table of contents.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/zenifieduk/techhub/internal/toc"
)

var (
	entriesKey = parser.NewContextKey()
	resultKey  = parser.NewContextKey()
)

// Result is a rendered article body.
type Result struct {
	HTML string
	// Anchors lists the heading identifiers present in HTML, in document order.
	// It is the payload of the "content mounted" signal sent to the tracker.
	Anchors []string
	// Entries are the table of contents entries that received an anchor.
	Entries []toc.Entry
}

// Renderer converts markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer with GFM and syntax highlighting enabled.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(headingAnchors{}, 100)),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Render converts source to HTML. Level 2 and 3 headings matching entries get the
// entry's identifier as their id; level 1 headings are dropped since pages show the
// title separately.
func (r *Renderer) Render(source string, entries []toc.Entry) (*Result, error) {
	pc := newContext(entries)

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf, parser.WithContext(pc)); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	res := contextResult(pc)
	res.HTML = buf.String()
	return res, nil
}

// Anchored parses source without producing HTML and returns the entries that Render
// would tag with an anchor. Entries for "##" lines the markdown parser does not treat
// as headings, such as lines inside an HTML comment, are left out.
func (r *Renderer) Anchored(source string, entries []toc.Entry) []toc.Entry {
	if len(entries) == 0 {
		return entries
	}
	pc := newContext(entries)
	r.md.Parser().Parse(text.NewReader([]byte(source)), parser.WithContext(pc))
	return contextResult(pc).Entries
}

func newContext(entries []toc.Entry) parser.Context {
	pc := parser.NewContext()
	pc.Set(entriesKey, entries)
	return pc
}

func contextResult(pc parser.Context) *Result {
	res, _ := pc.Get(resultKey).(*Result)
	if res == nil {
		res = &Result{}
	}
	return res
}

// headingAnchors assigns ToC identifiers to headings. Entries and headings are both
// in document order. Each ATX heading is paired with the next entry of the same level
// and title; entries passed over had no rendered heading and are dropped. Headings
// that are not in the ToC (separators, setext headings) get no id and are never tracked.
type headingAnchors struct{}

func (headingAnchors) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	entries, _ := pc.Get(entriesKey).([]toc.Entry)
	source := reader.Source()

	var (
		next   int
		res    Result
		titles []ast.Node
	)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level == 1 {
			titles = append(titles, h)
			return ast.WalkSkipChildren, nil
		}
		if !isATX(h, source) {
			return ast.WalkSkipChildren, nil
		}
		title := headingText(h, source)
		for i := next; i < len(entries); i++ {
			e := entries[i]
			if e.Level != h.Level || e.Title != title {
				continue
			}
			h.SetAttributeString("id", []byte(e.ID))
			res.Anchors = append(res.Anchors, e.ID)
			res.Entries = append(res.Entries, e)
			next = i + 1
			break
		}
		return ast.WalkSkipChildren, nil
	})

	for _, n := range titles {
		n.Parent().RemoveChild(n.Parent(), n)
	}
	pc.Set(resultKey, &res)
}

// isATX reports whether h was written with a leading '#' run rather than underlined.
func isATX(h *ast.Heading, source []byte) bool {
	lines := h.Lines()
	if lines.Len() == 0 {
		return false
	}
	start := lines.At(0).Start
	lineStart := bytes.LastIndexByte(source[:start], '\n') + 1
	return bytes.HasPrefix(bytes.TrimLeft(source[lineStart:start], " \t"), []byte("#"))
}

func headingText(h *ast.Heading, source []byte) string {
	var b strings.Builder
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimSpace(b.String())
}
