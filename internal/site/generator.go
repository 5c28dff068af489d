package site

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/zenifieduk/techhub/internal/markets"
	"github.com/zenifieduk/techhub/internal/progress"
)

// exportFile is one file of the static site.
type exportFile struct {
	path  string // slash-separated, relative to the output directory
	build func() ([]byte, error)
}

// Export writes every page, the raw article sources and the assets to outputDir.
// Exported article pages have no tracking endpoint, so their table of contents
// navigates without highlighting. Returns the number of files written.
func (s *Site) Export(outputDir string, reporter progress.Reporter) (n int, err error) {
	files := s.exportFiles()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output dir: %w", err)
	}

	reporter.Start(outputDir, len(files))
	defer func() { reporter.Finish(err) }()

	for i, f := range files {
		data, err := f.build()
		if err != nil {
			return i, fmt.Errorf("building %s: %w", f.path, err)
		}
		out := filepath.Join(outputDir, filepath.FromSlash(f.path))
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return i, err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return i, fmt.Errorf("writing %s: %w", f.path, err)
		}
		reporter.Written(f.path, len(data))
	}
	return len(files), nil
}

func (s *Site) exportFiles() []exportFile {
	files := []exportFile{
		{path: "static/style.css", build: static(cssContent)},
		{path: "static/techhub.js", build: static(jsContent)},
		{path: "index.html", build: func() ([]byte, error) {
			data := s.page(s.cfg.Name, "home", basePathFor("index.html"))
			data.Articles = latest(s.catalog.List(), latestCount)
			return s.execute("home", data)
		}},
		{path: "content/index.html", build: func() ([]byte, error) {
			data := s.page("Content Repository", "content", basePathFor("content/index.html"))
			data.Articles = s.catalog.List()
			data.Stats = s.catalog.CategoryStats()
			return s.execute("content", data)
		}},
		{path: "markets/index.html", build: func() ([]byte, error) {
			data := s.page("Weekly Market Report", "markets", basePathFor("markets/index.html"))
			data.Report = markets.Sample()
			return s.execute("markets", data)
		}},
		{path: "seo/index.html", build: func() ([]byte, error) {
			return s.execute("seo", s.page("SEO", "seo", basePathFor("seo/index.html")))
		}},
		// Served for any missing path, so links must not be relative.
		{path: "404.html", build: func() ([]byte, error) {
			return s.execute("notfound", s.page("Content Not Found", "content", "/"))
		}},
	}

	for _, a := range s.catalog.List() {
		a := a
		page := path.Join("content", a.Slug, "index.html")
		files = append(files,
			exportFile{path: page, build: func() ([]byte, error) {
				data, err := s.articlePage(a, basePathFor(page), "")
				if err != nil {
					return nil, err
				}
				return s.execute("article", data)
			}},
			exportFile{path: path.Join("articles", a.Slug+".md"), build: static(a.Content)},
		)
	}
	return files
}

func (s *Site) execute(name string, data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("executing %s template: %w", name, err)
	}
	return buf.Bytes(), nil
}

func static(content string) func() ([]byte, error) {
	return func() ([]byte, error) { return []byte(content), nil }
}

// basePathFor returns the relative prefix from a page back to the site root.
func basePathFor(rel string) string {
	depth := strings.Count(rel, "/")
	if depth == 0 {
		return "./"
	}
	return strings.Repeat("../", depth)
}
