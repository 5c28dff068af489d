// Package site serves the Technology Hub pages, the article JSON API and the
// reading-position tracking websocket, and exports the pages as a static site.
package site

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zenifieduk/techhub/internal/article"
	"github.com/zenifieduk/techhub/internal/config"
	"github.com/zenifieduk/techhub/internal/markets"
	"github.com/zenifieduk/techhub/internal/render"
	"github.com/zenifieduk/techhub/internal/tracker"
)

// timeout bounds page and API requests; the websocket route is exempt.
const timeout = 60 * time.Second

// Site renders pages from an article catalog.
type Site struct {
	catalog  *article.Catalog
	renderer *render.Renderer
	cfg      config.SiteConfig
	tracking tracker.Config
	logger   *zap.Logger
	pages    *template.Template
	upgrader websocket.Upgrader
}

// New creates a Site over catalog.
func New(catalog *article.Catalog, cfg config.SiteConfig, tracking tracker.Config, logger *zap.Logger) (*Site, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pages, err := template.New("site").Funcs(funcs).Parse(pageTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}
	return &Site{
		catalog:  catalog,
		renderer: render.New(),
		cfg:      cfg,
		tracking: tracking,
		logger:   logger.Named("site"),
		pages:    pages,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}, nil
}

// RegisterRoutes mounts pages, assets, the JSON API and the tracking websocket.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(timeout))

		r.Get("/", s.handleHome)
		r.Get("/content", s.handleContent)
		r.Get("/content/{slug}", s.handleArticle)
		r.Get("/markets", s.handleMarkets)
		r.Get("/seo", s.handleSEO)
		r.Get("/articles/{file}", s.handleRawArticle)
		r.Get("/static/style.css", s.handleAsset("text/css; charset=utf-8", cssContent))
		r.Get("/static/techhub.js", s.handleAsset("text/javascript; charset=utf-8", jsContent))

		r.Route("/api", func(r chi.Router) {
			r.Get("/articles", s.handleListArticles)
			r.Get("/articles/{slug}", s.handleGetArticle)
			r.Get("/articles/{slug}/toc", s.handleGetTOC)
			r.Get("/markets", s.handleGetMarkets)
		})

		r.NotFound(s.handleNotFound)
	})

	r.Get("/ws/articles/{slug}/track", s.handleTrack)
}

// pageData holds the data passed to the page templates.
type pageData struct {
	SiteName string
	Tagline  string
	Title    string
	Nav      string
	BasePath string

	Articles []*article.Article
	Stats    []article.CategoryCount

	Article  *article.Article
	Content  template.HTML
	TOC      *tocData
	TrackURL string

	Report *markets.Report
}

// tocData feeds the sidebar and the tracking script.
type tocData struct {
	Entries    []tocEntry
	RootMargin string
	Thresholds string
}

type tocEntry struct {
	ID    string
	Title string
	Level int
}

func (s *Site) page(title, nav, basePath string) pageData {
	return pageData{
		SiteName: s.cfg.Name,
		Tagline:  s.cfg.Tagline,
		Title:    title,
		Nav:      nav,
		BasePath: basePath,
	}
}

// articlePage builds the article template data. trackURL is empty when the page
// has no tracking endpoint to talk to.
func (s *Site) articlePage(a *article.Article, basePath, trackURL string) (pageData, error) {
	res, err := s.renderer.Render(a.Content, a.TOC)
	if err != nil {
		return pageData{}, fmt.Errorf("rendering %s: %w", a.Slug, err)
	}

	data := s.page(a.Title, "content", basePath)
	data.Article = a
	data.Content = template.HTML(res.HTML)
	if a.HasTOC() {
		t := &tocData{
			RootMargin: s.tracking.RootMargin(),
			Thresholds: joinFloats(s.tracking.Thresholds),
		}
		for _, e := range a.TOC {
			t.Entries = append(t.Entries, tocEntry{ID: e.ID, Title: e.Title, Level: e.Level})
		}
		data.TOC = t
		data.TrackURL = trackURL
	}
	return data, nil
}

func trackPath(slug string) string {
	return "/ws/articles/" + slug + "/track"
}

func joinFloats(fs []float64) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

var funcs = template.FuncMap{
	"currency": markets.FormatCurrency,
	"number":   markets.FormatNumber,
	"health":   markets.HealthStatus,
	"lower":    strings.ToLower,
	"percent": func(f float64) string {
		return strconv.FormatFloat(f, 'f', 1, 64) + "%"
	},
	"dict": dict,
}

// dict builds a map from alternating keys and values for passing several values
// to a nested template.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[k] = pairs[i+1]
	}
	return m, nil
}
