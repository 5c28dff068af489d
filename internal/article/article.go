// Package article parses blog-style markdown articles and keeps the catalog of
// articles served by the content repository.
package article

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/zenifieduk/techhub/internal/render"
	"github.com/zenifieduk/techhub/internal/toc"
)

// ErrNotFound is returned for unknown or malformed article slugs.
var ErrNotFound = errors.New("article not found")

// outline narrows extracted headings to the ones the page actually anchors.
var outline = render.New()

// Status is the editorial state of a piece of content.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusReview    Status = "review"
	StatusApproved  Status = "approved"
	StatusPublished Status = "published"
)

// Category is the channel a piece of content is written for.
type Category string

const (
	CategoryNews   Category = "News & Insights Post"
	CategorySocial Category = "Social Post"
	CategoryEmail  Category = "Email"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryNews, CategorySocial, CategoryEmail}

var validStatuses = map[Status]bool{
	StatusDraft:     true,
	StatusReview:    true,
	StatusApproved:  true,
	StatusPublished: true,
}

// wordsPerMinute drives the reading time estimate when an article does not state one.
const wordsPerMinute = 200

// excerptLimit is the maximum excerpt length in bytes before truncation.
const excerptLimit = 240

// Article is a parsed markdown article.
type Article struct {
	Slug     string      `json:"slug"`
	Title    string      `json:"title"`
	Date     string      `json:"date"`
	ReadTime string      `json:"read_time"`
	Excerpt  string      `json:"excerpt"`
	Status   Status      `json:"status"`
	Category Category    `json:"category"`
	Content  string      `json:"-"`
	TOC      []toc.Entry `json:"toc"`
}

// Parse builds an Article from raw markdown. The first line is the title ("# text");
// the lines containing "Published:" and "Reading time:" supply the display date and
// reading time. Optional "Status:" and "Category:" lines override the defaults.
func Parse(slug, content string) (*Article, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("article %s: empty content", slug)
	}

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	a := &Article{
		Slug:     slug,
		Title:    strings.TrimSpace(strings.TrimPrefix(lines[0], "# ")),
		Status:   StatusPublished,
		Category: CategoryNews,
		Content:  content,
		TOC:      outline.Anchored(content, toc.Extract(content)),
	}

	for _, line := range lines {
		if a.Date == "" {
			if v, ok := valueAfter(line, "Published: "); ok {
				v, _, _ = strings.Cut(v, " |")
				a.Date = cleanMeta(v)
			}
		}
		if a.ReadTime == "" {
			if v, ok := valueAfter(line, "Reading time: "); ok {
				a.ReadTime = cleanMeta(v)
			}
		}
		if v, ok := strings.CutPrefix(strings.TrimSpace(line), "Status: "); ok && validStatuses[Status(cleanMeta(v))] {
			a.Status = Status(cleanMeta(v))
		}
		if v, ok := strings.CutPrefix(strings.TrimSpace(line), "Category: "); ok {
			if c, known := parseCategory(cleanMeta(v)); known {
				a.Category = c
			}
		}
	}

	if a.ReadTime == "" {
		a.ReadTime = EstimateReadTime(content)
	}
	a.Excerpt = excerpt(lines[1:])
	return a, nil
}

// EstimateReadTime returns a display reading time for text at 200 words per minute.
func EstimateReadTime(text string) string {
	words := len(strings.Fields(text))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes <= 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// HasTOC reports whether the article has any section headings.
func (a *Article) HasTOC() bool { return len(a.TOC) > 0 }

func valueAfter(line, marker string) (string, bool) {
	idx := strings.Index(line, marker)
	if idx == -1 {
		return "", false
	}
	return line[idx+len(marker):], true
}

func cleanMeta(v string) string {
	return strings.TrimSpace(strings.ReplaceAll(v, "*", ""))
}

func parseCategory(v string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), v) {
			return c, true
		}
	}
	return "", false
}

// excerpt returns the first prose paragraph, skipping metadata, headings and rules.
func excerpt(lines []string) string {
	var para []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(para) > 0 {
				break
			}
			continue
		}
		if isMetaLine(trimmed) {
			continue
		}
		para = append(para, trimmed)
	}

	text := strings.Join(para, " ")
	if len(text) <= excerptLimit {
		return text
	}
	cut := strings.LastIndex(text[:excerptLimit], " ")
	if cut <= 0 {
		cut = excerptLimit
	}
	return strings.TrimRight(text[:cut], ",.;:") + "..."
}

func isMetaLine(line string) bool {
	switch {
	case strings.HasPrefix(line, "#"),
		strings.HasPrefix(line, "---"),
		strings.HasPrefix(line, ">"),
		strings.Contains(line, "Published:"),
		strings.Contains(line, "Reading time:"),
		strings.HasPrefix(line, "Status: "),
		strings.HasPrefix(line, "Category: "):
		return true
	}
	return false
}
