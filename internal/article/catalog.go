package article

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gosimple/slug"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// DefaultPattern matches article files in a content filesystem.
const DefaultPattern = "**/*.md"

//go:embed content/*.md
var sampleContent embed.FS

// SampleFS returns the articles bundled with the binary.
func SampleFS() fs.FS {
	sub, err := fs.Sub(sampleContent, "content")
	if err != nil {
		// content/ is embedded at build time.
		panic(err)
	}
	return sub
}

// Catalog holds every article found in a content filesystem, keyed by slug.
type Catalog struct {
	fsys    fs.FS
	pattern string
	logger  *zap.Logger

	mu       sync.RWMutex
	articles map[string]*Article
	files    map[string]string // slug -> file path
}

// NewCatalog creates a catalog over fsys. Files are matched with the doublestar
// pattern; an empty pattern means DefaultPattern. Call Reload to populate it.
func NewCatalog(fsys fs.FS, pattern string, logger *zap.Logger) *Catalog {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		fsys:     fsys,
		pattern:  pattern,
		logger:   logger.Named("catalog"),
		articles: make(map[string]*Article),
		files:    make(map[string]string),
	}
}

// Reload re-reads all article files. Articles that fail to load keep their previously
// loaded version, if any; the failures are returned combined.
func (c *Catalog) Reload() error {
	paths, err := doublestar.Glob(c.fsys, c.pattern)
	if err != nil {
		return fmt.Errorf("matching %q: %w", c.pattern, err)
	}
	sort.Strings(paths)

	c.mu.RLock()
	previous := c.articles
	c.mu.RUnlock()

	articles := make(map[string]*Article, len(paths))
	files := make(map[string]string, len(paths))
	var errs error
	for _, p := range paths {
		s := slugFromPath(p)
		if !slug.IsSlug(s) {
			normalized := slug.Make(s)
			c.logger.Warn("Article file name is not a slug", zap.String("file", p), zap.String("slug", normalized))
			s = normalized
		}
		if s == "" {
			errs = multierr.Append(errs, fmt.Errorf("%s: no usable slug", p))
			continue
		}
		if other, dup := files[s]; dup {
			errs = multierr.Append(errs, fmt.Errorf("%s: slug %q already used by %s", p, s, other))
			continue
		}
		files[s] = p

		a, err := c.load(s, p)
		if err != nil {
			errs = multierr.Append(errs, err)
			if old, ok := previous[s]; ok {
				articles[s] = old
			}
			continue
		}
		articles[s] = a
	}

	c.mu.Lock()
	c.articles = articles
	c.files = files
	c.mu.Unlock()

	c.logger.Debug("Catalog reloaded", zap.Int("articles", len(articles)), zap.Int("files", len(paths)))
	return errs
}

func (c *Catalog) load(s, p string) (*Article, error) {
	data, err := fs.ReadFile(c.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}
	a, err := Parse(s, string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", p, err)
	}
	return a, nil
}

// Get returns the article with the given slug, or ErrNotFound.
func (c *Catalog) Get(s string) (*Article, error) {
	if !slug.IsSlug(s) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, s)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.articles[s]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, s)
	}
	return a, nil
}

// List returns all articles ordered by slug.
func (c *Catalog) List() []*Article {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Article, 0, len(c.articles))
	for _, a := range c.articles {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// Len returns the number of loaded articles.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.articles)
}

// CategoryCount is the number of articles in one category.
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// CategoryStats counts articles per category, in Categories order.
func (c *Catalog) CategoryStats() []CategoryCount {
	counts := make(map[Category]int)
	for _, a := range c.List() {
		counts[a.Category]++
	}
	stats := make([]CategoryCount, len(Categories))
	for i, cat := range Categories {
		stats[i] = CategoryCount{Category: cat, Count: counts[cat]}
	}
	return stats
}

func slugFromPath(p string) string {
	return strings.TrimSuffix(path.Base(p), path.Ext(p))
}
