package site

// pageTemplates holds every page of the site. Each page is a named template
// sharing the header and footer.
const pageTemplates = `
{{define "header"}}<!DOCTYPE html>
<html lang="en-GB">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{if ne .Title .SiteName}}{{.Title}} | {{end}}{{.SiteName}}</title>
  <link rel="stylesheet" href="{{.BasePath}}static/style.css">
</head>
<body>
  <header class="site-header">
    <a class="brand" href="{{.BasePath}}">{{.SiteName}}</a>
    <nav class="site-nav">
      <a href="{{.BasePath}}"{{if eq .Nav "home"}} class="current"{{end}}>Home</a>
      <a href="{{.BasePath}}content"{{if eq .Nav "content"}} class="current"{{end}}>Content</a>
      <a href="{{.BasePath}}seo"{{if eq .Nav "seo"}} class="current"{{end}}>SEO</a>
      <a href="{{.BasePath}}markets"{{if eq .Nav "markets"}} class="current"{{end}}>Markets</a>
    </nav>
  </header>
  <main class="container">
{{end}}

{{define "footer"}}
  </main>
  <footer class="site-footer">{{.SiteName}}</footer>
</body>
</html>
{{end}}

{{define "card"}}
      <a class="card" href="{{.Base}}content/{{.Article.Slug}}">
        <div class="badges">
          {{with .Article.Category}}<span class="badge category">{{.}}</span>{{end}}
          {{with .Article.Status}}<span class="badge status status-{{.}}">{{.}}</span>{{end}}
        </div>
        <h3>{{.Article.Title}}</h3>
        <p class="excerpt">{{.Article.Excerpt}}</p>
        <p class="meta">{{with .Article.Date}}<span>{{.}}</span>{{end}}{{with .Article.ReadTime}}<span>{{.}}</span>{{end}}</p>
      </a>
{{end}}

{{define "home"}}{{template "header" .}}
    <section class="hero">
      <h1>{{.SiteName}}</h1>
      {{with .Tagline}}<p class="tagline">{{.}}</p>{{end}}
      <div class="hero-links">
        <a class="button" href="{{.BasePath}}content">Browse content</a>
        <a class="button secondary" href="{{.BasePath}}markets">Market report</a>
      </div>
    </section>
    <section>
      <h2>Latest articles</h2>
      <div class="cards">
      {{- $base := .BasePath}}
      {{range .Articles}}{{template "card" (dict "Base" $base "Article" .)}}{{else}}
        <p class="empty">No articles published yet.</p>
      {{end}}
      </div>
    </section>
{{template "footer" .}}{{end}}

{{define "content"}}{{template "header" .}}
    <h1>Content Repository</h1>
    <div class="stats">
      {{range .Stats}}<div class="stat"><span class="stat-count">{{.Count}}</span><span class="stat-label">{{.Category}}</span></div>{{end}}
    </div>
    <div class="cards">
    {{- $base := .BasePath}}
    {{range .Articles}}{{template "card" (dict "Base" $base "Article" .)}}{{else}}
      <p class="empty">No content found.</p>
    {{end}}
    </div>
{{template "footer" .}}{{end}}

{{define "article"}}{{template "header" .}}
    <p><a class="back" href="{{.BasePath}}content">&larr; Back to Content</a></p>
    <div class="article-layout{{if .TOC}} with-toc{{end}}">
      {{with .TOC}}
      <aside class="toc-panel">
        <h3>Table of Contents</h3>
        <nav id="toc" class="toc" data-track-url="{{$.TrackURL}}" data-root-margin="{{.RootMargin}}" data-thresholds="{{.Thresholds}}">
          {{range .Entries}}<a href="#{{.ID}}" data-anchor="{{.ID}}" class="toc-level-{{.Level}}">{{.Title}}</a>
          {{end}}
        </nav>
        <p class="toc-hint">Click any heading to jump to that section. Your progress is automatically tracked.</p>
      </aside>
      {{end}}
      <article class="article">
        <header class="article-header">
          <h1>{{.Article.Title}}</h1>
          <p class="meta">
            {{with .Article.Date}}<span>{{.}}</span>{{end}}
            {{with .Article.ReadTime}}<span>{{.}}</span>{{end}}
            {{with .Article.Category}}<span class="badge category">{{.}}</span>{{end}}
            {{with .Article.Status}}<span class="badge status status-{{.}}">{{.}}</span>{{end}}
          </p>
        </header>
        <div class="article-body">
{{.Content}}
        </div>
      </article>
    </div>
    {{if .TOC}}<script src="{{.BasePath}}static/techhub.js" defer></script>{{end}}
{{template "footer" .}}{{end}}

{{define "notfound"}}{{template "header" .}}
    <section class="not-found">
      <h1>Content Not Found</h1>
      <p>The content you're looking for doesn't exist or has been moved.</p>
      <a class="button" href="{{.BasePath}}content">Return to Repository</a>
    </section>
{{template "footer" .}}{{end}}

{{define "markets"}}{{template "header" .}}
    {{with .Report}}
    <section class="report-header">
      <h1>Weekly Market Report</h1>
      <p class="meta"><span>Week {{.WeekNumber}}</span><span>Week ending {{.WeekEnding}}</span></p>
      <div class="health health-{{lower (health .HealthScore)}}">
        <span class="health-label">Market health</span>
        <span class="health-status">{{health .HealthScore}}</span>
        <span class="health-score">{{.HealthScore}}/100</span>
      </div>
    </section>

    <div class="metrics">
      {{range .KeyMetrics}}
      <div class="metric">
        <p class="metric-label">{{.Label}}</p>
        <p class="metric-value">{{.Value}}</p>
        <p class="metric-change trend-{{.Trend}}">{{.Change}} <span>{{.Period}}</span></p>
      </div>
      {{end}}
    </div>

    <h2>Average prices</h2>
    <table>
      <thead><tr><th>Month</th><th>Wigan</th><th>North West</th><th>UK</th></tr></thead>
      <tbody>
      {{range .Prices}}<tr><td>{{.Month}}</td><td>{{currency .WiganPrice}}</td><td>{{currency .NorthWestPrice}}</td><td>{{currency .UKPrice}}</td></tr>
      {{end}}
      </tbody>
    </table>

    <h2>Weekly transactions</h2>
    <table>
      <thead><tr><th>Week</th><th>Sales</th><th>Lettings</th></tr></thead>
      <tbody>
      {{range .Transactions}}<tr><td>{{.Week}}</td><td>{{number .Sales}}</td><td>{{number .Lettings}}</td></tr>
      {{end}}
      </tbody>
    </table>

    <h2>Sales by property type</h2>
    <table>
      <thead><tr><th>Type</th><th>Sales</th><th>Share</th><th>Average price</th></tr></thead>
      <tbody>
      {{range .PropertyTypes}}<tr><td>{{.Type}}</td><td>{{number .Sales}}</td><td>{{percent .Percentage}}</td><td>{{currency .AvgPrice}}</td></tr>
      {{end}}
      </tbody>
    </table>

    <h2>Lettings</h2>
    <table>
      <thead><tr><th>Type</th><th>Average rent</th><th>Yield</th><th>Demand</th></tr></thead>
      <tbody>
      {{range .Lettings}}<tr><td>{{.Type}}</td><td>{{currency .AvgRent}} pcm</td><td>{{percent .Yield}}</td><td>{{.Demand}}</td></tr>
      {{end}}
      </tbody>
    </table>

    <h2>Mortgages</h2>
    <table>
      <thead><tr><th>Month</th><th>Average rate</th><th>Approvals</th></tr></thead>
      <tbody>
      {{range .Mortgages}}<tr><td>{{.Month}}</td><td>{{percent .Rate}}</td><td>{{number .Approvals}}</td></tr>
      {{end}}
      </tbody>
    </table>
    {{end}}
{{template "footer" .}}{{end}}

{{define "seo"}}{{template "header" .}}
    <section class="hero">
      <h1>SEO &amp; Search Optimisation</h1>
      <p class="tagline">Optimise your website's search engine performance and improve your online visibility.</p>
    </section>
    <div class="cards">
      <div class="card"><h3>Keyword Research</h3><p>Discover high-value keywords and analyse search trends to shape your content strategy.</p></div>
      <div class="card"><h3>Technical SEO</h3><p>Site audits and technical fixes that help search engines crawl and index your pages.</p></div>
      <div class="card"><h3>Performance Analytics</h3><p>Monitor rankings and measure the success of your SEO campaigns.</p></div>
    </div>
    <section class="coming-soon">
      <h2>Coming Soon</h2>
      <p>Advanced SEO tools and an analytics dashboard are in development.</p>
    </section>
{{template "footer" .}}{{end}}
`

// cssContent is the stylesheet shared by every page.
const cssContent = `/* ============ Variables ============ */
:root {
  --bg: #f8fafc;
  --surface: #ffffff;
  --text: #0f172a;
  --text-secondary: #475569;
  --text-muted: #94a3b8;
  --border: #e2e8f0;
  --accent: #7c3aed;
  --accent-light: #f3e8ff;
  --success: #16a34a;
  --warning: #d97706;
  --danger: #dc2626;
  --radius: 12px;
  --shadow: 0 1px 3px rgba(15, 23, 42, 0.08);
  --toc-width: 300px;
}

/* ============ Base ============ */
* { box-sizing: border-box; }
html { scroll-behavior: smooth; }
body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  background: var(--bg);
  color: var(--text);
  line-height: 1.6;
}
a { color: var(--accent); text-decoration: none; }
a:hover { text-decoration: underline; }
.container { max-width: 1200px; margin: 0 auto; padding: 2rem 1rem; }

/* ============ Header ============ */
.site-header {
  display: flex;
  align-items: center;
  justify-content: space-between;
  max-width: 1200px;
  margin: 0 auto;
  padding: 1.25rem 1rem;
}
.brand { font-size: 1.25rem; font-weight: 700; color: var(--text); }
.site-nav a { margin-left: 1.5rem; color: var(--text-secondary); }
.site-nav a.current { color: var(--accent); font-weight: 600; }
.site-footer { text-align: center; color: var(--text-muted); padding: 2rem 1rem; font-size: 0.875rem; }

/* ============ Components ============ */
.button {
  display: inline-block;
  padding: 0.6rem 1.2rem;
  border-radius: 8px;
  background: var(--accent);
  color: #fff;
  font-weight: 600;
}
.button.secondary { background: var(--surface); color: var(--accent); border: 1px solid var(--border); }
.button:hover { text-decoration: none; opacity: 0.9; }
.badge {
  display: inline-block;
  padding: 0.1rem 0.6rem;
  border-radius: 999px;
  font-size: 0.75rem;
  font-weight: 600;
  background: var(--accent-light);
  color: var(--accent);
}
.status-published, .status-approved { background: #dcfce7; color: var(--success); }
.status-review { background: #fef3c7; color: var(--warning); }
.status-draft { background: #f1f5f9; color: var(--text-secondary); }
.meta span + span::before { content: "\00B7"; margin: 0 0.5rem; color: var(--text-muted); }
.meta { color: var(--text-secondary); font-size: 0.875rem; }
.empty { color: var(--text-muted); }

/* ============ Home & listing ============ */
.hero { text-align: center; padding: 3rem 0; }
.hero h1 { font-size: 2.75rem; margin: 0 0 0.5rem; }
.tagline { color: var(--text-secondary); font-size: 1.125rem; }
.hero-links .button { margin: 0.5rem; }
.coming-soon { text-align: center; margin: 3rem 0; }
.cards { display: grid; grid-template-columns: repeat(auto-fill, minmax(320px, 1fr)); gap: 1.5rem; }
.card {
  display: block;
  background: var(--surface);
  border: 1px solid var(--border);
  border-radius: var(--radius);
  box-shadow: var(--shadow);
  padding: 1.5rem;
  color: var(--text);
}
.card:hover { text-decoration: none; border-color: var(--accent); }
.card h3 { margin: 0.75rem 0 0.5rem; }
.excerpt { color: var(--text-secondary); }
.badges .badge + .badge { margin-left: 0.5rem; }
.stats { display: flex; gap: 1rem; margin-bottom: 2rem; flex-wrap: wrap; }
.stat { background: var(--surface); border: 1px solid var(--border); border-radius: var(--radius); padding: 1rem 1.5rem; }
.stat-count { display: block; font-size: 1.75rem; font-weight: 700; }
.stat-label { color: var(--text-secondary); font-size: 0.875rem; }

/* ============ Article ============ */
.back { color: var(--text-secondary); }
.article-layout { display: block; }
.article-layout.with-toc { display: grid; grid-template-columns: var(--toc-width) minmax(0, 1fr); gap: 2rem; align-items: start; }
.toc-panel {
  position: sticky;
  top: 2rem;
  background: var(--surface);
  border: 1px solid var(--border);
  border-radius: var(--radius);
  padding: 1.5rem;
  max-height: calc(100vh - 4rem);
  overflow-y: auto;
}
.toc-panel h3 { margin-top: 0; }
.toc a {
  display: block;
  padding: 0.35rem 0.75rem;
  border-left: 2px solid transparent;
  border-radius: 0 6px 6px 0;
  color: var(--text-secondary);
  font-size: 0.875rem;
}
.toc a.toc-level-3 { padding-left: 1.75rem; font-size: 0.8125rem; }
.toc a:hover { text-decoration: none; background: var(--bg); }
.toc a.active { border-left-color: var(--accent); background: var(--accent-light); color: var(--accent); font-weight: 600; }
.toc-hint { margin-top: 1.5rem; padding-top: 1rem; border-top: 1px solid var(--border); color: var(--text-muted); font-size: 0.75rem; }
.article { background: var(--surface); border: 1px solid var(--border); border-radius: var(--radius); padding: 2.5rem; }
.article-header h1 { font-size: 2.5rem; line-height: 1.2; margin-top: 0; }
.article-body h2, .article-body h3 { scroll-margin-top: 100px; }
.article-body pre { background: #f6f8fa; padding: 1rem; border-radius: 8px; overflow-x: auto; }
.article-body blockquote { margin: 1.5rem 0; padding: 0.5rem 1rem; border-left: 4px solid var(--accent); background: var(--accent-light); }
.not-found { text-align: center; padding: 4rem 0; }

/* ============ Tables & markets ============ */
table { width: 100%; border-collapse: collapse; background: var(--surface); margin-bottom: 2rem; }
th, td { text-align: left; padding: 0.6rem 0.9rem; border-bottom: 1px solid var(--border); }
th { color: var(--text-secondary); font-size: 0.8125rem; text-transform: uppercase; }
.health { display: inline-flex; gap: 1rem; align-items: center; padding: 0.75rem 1.25rem; border-radius: var(--radius); margin: 1rem 0; }
.health-strong { background: #dcfce7; color: var(--success); }
.health-stable { background: #fef3c7; color: var(--warning); }
.health-weak { background: #fee2e2; color: var(--danger); }
.health-status { font-weight: 700; }
.metrics { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 1rem; margin-bottom: 2rem; }
.metric { background: var(--surface); border: 1px solid var(--border); border-radius: var(--radius); padding: 1.25rem; }
.metric p { margin: 0; }
.metric-label { color: var(--text-secondary); font-size: 0.875rem; }
.metric-value { font-size: 1.75rem; font-weight: 700; }
.trend-up { color: var(--success); }
.trend-down { color: var(--danger); }
.metric-change span { color: var(--text-muted); font-size: 0.75rem; }

/* ============ Responsive ============ */
@media (max-width: 1024px) {
  .article-layout.with-toc { display: block; }
  .toc-panel { position: static; margin-bottom: 2rem; max-height: none; }
}
`

// jsContent drives the table of contents on article pages. Highlighting needs the
// tracking websocket; without it, clicking an entry still scrolls to its heading.
const jsContent = `(function () {
  'use strict';

  var toc = document.getElementById('toc');
  if (!toc) {
    return;
  }

  var links = Array.prototype.slice.call(toc.querySelectorAll('a[data-anchor]'));
  var trackURL = toc.getAttribute('data-track-url');
  var rootMargin = toc.getAttribute('data-root-margin') || '0px';
  var thresholds = (toc.getAttribute('data-thresholds') || '0').split(',').map(Number);

  var socket = null;
  var connected = false;
  var headings = [];

  function setActive(id) {
    links.forEach(function (link) {
      var on = link.getAttribute('data-anchor') === id;
      link.classList.toggle('active', on);
      if (on) {
        link.setAttribute('aria-current', 'location');
      } else {
        link.removeAttribute('aria-current');
      }
    });
  }

  function scrollToHeading(id) {
    var el = document.getElementById(id);
    if (el) {
      el.scrollIntoView({ behavior: 'smooth', block: 'start' });
    }
  }

  function send(msg) {
    if (connected) {
      socket.send(JSON.stringify(msg));
    }
  }

  links.forEach(function (link) {
    link.addEventListener('click', function (e) {
      e.preventDefault();
      var id = link.getAttribute('data-anchor');
      if (connected) {
        send({ type: 'navigate', id: id });
      } else {
        scrollToHeading(id);
      }
    });
  });

  function positions() {
    return headings.map(function (el) {
      return { id: el.id, top: el.getBoundingClientRect().top };
    });
  }

  // The article body is in the DOM before this deferred script runs, so every
  // heading that will ever exist can be reported as mounted right away.
  function start() {
    headings = [];
    links.forEach(function (link) {
      var el = document.getElementById(link.getAttribute('data-anchor'));
      if (el) {
        headings.push(el);
      }
    });
    send({ type: 'mounted', anchors: headings.map(function (el) { return el.id; }) });
    // A page opened at an anchor or reloaded mid-article gets no scroll event.
    send({ type: 'scroll', headings: positions() });

    if ('IntersectionObserver' in window) {
      var observer = new IntersectionObserver(function (entries) {
        send({
          type: 'intersect',
          entries: entries.map(function (entry) {
            return {
              id: entry.target.id,
              intersecting: entry.isIntersecting,
              ratio: entry.intersectionRatio,
              top: entry.boundingClientRect.top
            };
          })
        });
      }, { rootMargin: rootMargin, threshold: thresholds });
      headings.forEach(function (el) { observer.observe(el); });
    }

    var ticking = false;
    window.addEventListener('scroll', function () {
      if (ticking) {
        return;
      }
      ticking = true;
      window.requestAnimationFrame(function () {
        ticking = false;
        send({ type: 'scroll', headings: positions() });
      });
    }, { passive: true });
  }

  if (!trackURL || !('WebSocket' in window)) {
    return;
  }

  var scheme = window.location.protocol === 'https:' ? 'wss://' : 'ws://';
  socket = new WebSocket(scheme + window.location.host + trackURL);
  socket.addEventListener('open', function () {
    connected = true;
    start();
  });
  socket.addEventListener('message', function (ev) {
    var msg;
    try {
      msg = JSON.parse(ev.data);
    } catch (err) {
      return;
    }
    switch (msg.type) {
      case 'active':
        setActive(msg.id);
        break;
      case 'scroll_to':
        scrollToHeading(msg.id);
        break;
      case 'error':
        console.warn('techhub tracker:', msg.message);
        break;
    }
  });
  socket.addEventListener('close', function () {
    connected = false;
    setActive('');
  });
})();
`
