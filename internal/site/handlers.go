package site

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zenifieduk/techhub/internal/article"
	"github.com/zenifieduk/techhub/internal/markets"
	"github.com/zenifieduk/techhub/internal/toc"
)

// latestCount is how many articles the home page lists.
const latestCount = 3

func (s *Site) handleHome(w http.ResponseWriter, r *http.Request) {
	data := s.page(s.cfg.Name, "home", "/")
	data.Articles = latest(s.catalog.List(), latestCount)
	s.renderPage(w, http.StatusOK, "home", data)
}

func (s *Site) handleContent(w http.ResponseWriter, r *http.Request) {
	data := s.page("Content Repository", "content", "/")
	data.Articles = s.catalog.List()
	data.Stats = s.catalog.CategoryStats()
	s.renderPage(w, http.StatusOK, "content", data)
}

func (s *Site) handleArticle(w http.ResponseWriter, r *http.Request) {
	a, err := s.catalog.Get(chi.URLParam(r, "slug"))
	if err != nil {
		s.handleNotFound(w, r)
		return
	}
	data, err := s.articlePage(a, "/", trackPath(a.Slug))
	if err != nil {
		s.logger.Error("Unable to render article", zap.String("slug", a.Slug), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.renderPage(w, http.StatusOK, "article", data)
}

func (s *Site) handleMarkets(w http.ResponseWriter, r *http.Request) {
	data := s.page("Weekly Market Report", "markets", "/")
	data.Report = markets.Sample()
	s.renderPage(w, http.StatusOK, "markets", data)
}

func (s *Site) handleSEO(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "seo", s.page("SEO", "seo", "/"))
}

func (s *Site) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	s.renderPage(w, http.StatusNotFound, "notfound", s.page("Content Not Found", "content", "/"))
}

// handleRawArticle serves the markdown source at /articles/<slug>.md.
func (s *Site) handleRawArticle(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(chi.URLParam(r, "file"), ".md")
	if !ok {
		http.NotFound(w, r)
		return
	}
	a, err := s.catalog.Get(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(a.Content))
}

func (s *Site) handleAsset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.Write([]byte(body))
	}
}

// articleSummary is an article without its body, as listed by the API.
type articleSummary struct {
	Slug     string           `json:"slug"`
	Title    string           `json:"title"`
	Date     string           `json:"date"`
	ReadTime string           `json:"read_time"`
	Excerpt  string           `json:"excerpt"`
	Status   article.Status   `json:"status"`
	Category article.Category `json:"category"`
}

type listResponse struct {
	Articles   []articleSummary        `json:"articles"`
	Categories []article.CategoryCount `json:"categories"`
}

type tocResponse struct {
	Slug    string      `json:"slug"`
	Entries []toc.Entry `json:"entries"`
}

func (s *Site) handleListArticles(w http.ResponseWriter, r *http.Request) {
	list := s.catalog.List()
	resp := listResponse{
		Articles:   make([]articleSummary, 0, len(list)),
		Categories: s.catalog.CategoryStats(),
	}
	for _, a := range list {
		resp.Articles = append(resp.Articles, summarize(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Site) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	a, ok := s.lookup(w, chi.URLParam(r, "slug"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Site) handleGetTOC(w http.ResponseWriter, r *http.Request) {
	a, ok := s.lookup(w, chi.URLParam(r, "slug"))
	if !ok {
		return
	}
	entries := a.TOC
	if entries == nil {
		entries = []toc.Entry{}
	}
	writeJSON(w, http.StatusOK, tocResponse{Slug: a.Slug, Entries: entries})
}

func (s *Site) handleGetMarkets(w http.ResponseWriter, r *http.Request) {
	report := markets.Sample()
	writeJSON(w, http.StatusOK, struct {
		*markets.Report
		Health string `json:"health"`
	}{report, report.Health()})
}

func (s *Site) lookup(w http.ResponseWriter, slug string) (*article.Article, bool) {
	a, err := s.catalog.Get(slug)
	if errors.Is(err, article.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": article.ErrNotFound.Error()})
		return nil, false
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	return a, true
}

// renderPage executes a page template into a buffer first so a template error
// never leaves a half-written page.
func (s *Site) renderPage(w http.ResponseWriter, status int, name string, data pageData) {
	body, err := s.execute(name, data)
	if err != nil {
		s.logger.Error("Unable to execute template", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

func summarize(a *article.Article) articleSummary {
	return articleSummary{
		Slug:     a.Slug,
		Title:    a.Title,
		Date:     a.Date,
		ReadTime: a.ReadTime,
		Excerpt:  a.Excerpt,
		Status:   a.Status,
		Category: a.Category,
	}
}

func latest(list []*article.Article, n int) []*article.Article {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
