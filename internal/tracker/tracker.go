// Package tracker decides which article section the reader is currently at.
//
// The browser reports two kinds of samples: visibility changes of heading elements
// inside a reading band near the top of the viewport, and heading positions on scroll.
// A single Tracker owns the active section and applies both, one event at a time, so
// the active identifier is always the outcome of the most recently processed event.
package tracker

import (
	"fmt"
	"math"
	"time"

	"github.com/zenifieduk/techhub/internal/toc"
)

// Config holds the geometry of both detection strategies. Distances are CSS pixels
// relative to the top of the viewport.
type Config struct {
	// BandTop shrinks the reading band from the top of the viewport.
	BandTop float64 `json:"band_top" yaml:"band_top" koanf:"band_top"`
	// BandBottomPercent shrinks the reading band from the bottom, in percent of the
	// viewport height.
	BandBottomPercent float64 `json:"band_bottom_percent" yaml:"band_bottom_percent" koanf:"band_bottom_percent"`
	// Thresholds are the intersection ratios at which the browser reports changes.
	Thresholds []float64 `json:"thresholds" yaml:"thresholds" koanf:"thresholds"`
	// MinTop is the lowest heading top a visible heading may have to become active.
	MinTop float64 `json:"min_top" yaml:"min_top" koanf:"min_top"`
	// ReferenceLine is the line scroll samples measure heading distance from.
	ReferenceLine float64 `json:"reference_line" yaml:"reference_line" koanf:"reference_line"`
	// ScrollCutoff excludes headings whose top is still below it.
	ScrollCutoff float64 `json:"scroll_cutoff" yaml:"scroll_cutoff" koanf:"scroll_cutoff"`
	// FrameInterval bounds scroll evaluation to one per frame.
	FrameInterval time.Duration `json:"frame_interval" yaml:"frame_interval" koanf:"frame_interval"`
}

// DefaultConfig returns the reading band and scroll geometry used by the site.
func DefaultConfig() Config {
	return Config{
		BandTop:           100,
		BandBottomPercent: 60,
		Thresholds:        []float64{0, 0.25, 0.5, 0.75, 1},
		MinTop:            -100,
		ReferenceLine:     150,
		ScrollCutoff:      200,
		FrameInterval:     16 * time.Millisecond,
	}
}

// RootMargin renders the reading band as an IntersectionObserver rootMargin.
func (c Config) RootMargin() string {
	return fmt.Sprintf("-%gpx 0px -%g%% 0px", c.BandTop, c.BandBottomPercent)
}

// Validate checks that the geometry is usable.
func (c Config) Validate() error {
	if c.BandTop < 0 {
		return fmt.Errorf("band_top must be non-negative")
	}
	if c.BandBottomPercent < 0 || c.BandBottomPercent >= 100 {
		return fmt.Errorf("band_bottom_percent must be in [0, 100)")
	}
	for _, th := range c.Thresholds {
		if th < 0 || th > 1 {
			return fmt.Errorf("threshold %g out of range [0, 1]", th)
		}
	}
	if c.ScrollCutoff < c.ReferenceLine {
		return fmt.Errorf("scroll_cutoff must not be above reference_line")
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("frame_interval must be positive")
	}
	return nil
}

// Intersection is one visibility change reported for a heading element.
type Intersection struct {
	ID           string  `json:"id"`
	Intersecting bool    `json:"intersecting"`
	Ratio        float64 `json:"ratio"`
	Top          float64 `json:"top"`
}

// Position is the current top of a heading element.
type Position struct {
	ID  string  `json:"id"`
	Top float64 `json:"top"`
}

// Tracker holds the active-section state of one article view. It is not safe for
// concurrent use; Session serializes access to it.
type Tracker struct {
	cfg     Config
	order   map[string]int
	mounted map[string]bool
	visible map[string]bool
	tops    map[string]float64
	active  string
}

// New creates a tracker for an article's table of contents.
func New(entries []toc.Entry, cfg Config) *Tracker {
	order := make(map[string]int, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			continue
		}
		if _, dup := order[e.ID]; !dup {
			order[e.ID] = i
		}
	}
	t := &Tracker{cfg: cfg, order: order}
	t.Reset()
	return t
}

// Reset forgets everything observed, including the mounted anchors.
func (t *Tracker) Reset() {
	t.mounted = nil
	t.visible = make(map[string]bool)
	t.tops = make(map[string]float64)
	t.active = ""
}

// Mount records the heading anchors that exist in the rendered page. Until Mount is
// called with at least one known anchor the tracker ignores all samples. Mounting
// again replaces the anchor set and clears observed state.
func (t *Tracker) Mount(anchors []string) bool {
	t.Reset()
	mounted := make(map[string]bool, len(anchors))
	for _, id := range anchors {
		if _, known := t.order[id]; known {
			mounted[id] = true
		}
	}
	if len(mounted) == 0 {
		return false
	}
	t.mounted = mounted
	return true
}

// Mounted reports whether the tracker is active.
func (t *Tracker) Mounted() bool { return len(t.mounted) > 0 }

// Active returns the current section identifier, possibly empty.
func (t *Tracker) Active() string { return t.active }

// Intersect applies visibility changes and re-selects the active section among the
// headings currently inside the reading band: the topmost one whose top is not above
// MinTop. With no candidate the active section is left unchanged.
func (t *Tracker) Intersect(changes []Intersection) (active string, changed bool) {
	if !t.Mounted() {
		return t.active, false
	}
	for _, c := range changes {
		if !t.mounted[c.ID] {
			continue
		}
		t.tops[c.ID] = c.Top
		if c.Intersecting && c.Ratio > 0 {
			t.visible[c.ID] = true
		} else {
			delete(t.visible, c.ID)
		}
	}

	candidates := make([]Position, 0, len(t.visible))
	for id := range t.visible {
		candidates = append(candidates, Position{ID: id, Top: t.tops[id]})
	}
	return t.set(SelectVisible(candidates, t.cfg.MinTop, t.order))
}

// Scroll applies a full set of heading positions and selects the heading closest to
// the reference line among those at or above the scroll cutoff.
func (t *Tracker) Scroll(positions []Position) (active string, changed bool) {
	if !t.Mounted() {
		return t.active, false
	}
	known := make([]Position, 0, len(positions))
	for _, p := range positions {
		if !t.mounted[p.ID] {
			continue
		}
		t.tops[p.ID] = p.Top
		known = append(known, p)
	}
	return t.set(SelectNearest(known, t.cfg.ReferenceLine, t.cfg.ScrollCutoff, t.order))
}

// Navigate resolves a ToC click. It returns the anchor to bring to the top of the
// viewport, or false when the heading is not on the page. It never changes the active
// section; the scroll it causes does.
func (t *Tracker) Navigate(id string) (string, bool) {
	if id == "" || !t.mounted[id] {
		return "", false
	}
	return id, true
}

func (t *Tracker) set(id string) (string, bool) {
	if id == "" || id == t.active {
		return t.active, false
	}
	t.active = id
	return id, true
}

// SelectVisible picks the heading with the smallest top not less than minTop. Ties go
// to the heading earlier in the document.
func SelectVisible(visible []Position, minTop float64, order map[string]int) string {
	best := ""
	bestTop := math.Inf(1)
	for _, p := range visible {
		if p.Top < minTop {
			continue
		}
		if p.Top < bestTop || (p.Top == bestTop && before(p.ID, best, order)) {
			best, bestTop = p.ID, p.Top
		}
	}
	return best
}

// SelectNearest picks the heading with the smallest distance to referenceLine among
// those whose top is at or above cutoff. Ties go to the heading earlier in the document.
func SelectNearest(positions []Position, referenceLine, cutoff float64, order map[string]int) string {
	best := ""
	bestDist := math.Inf(1)
	for _, p := range positions {
		if p.Top > cutoff {
			continue
		}
		d := math.Abs(p.Top - referenceLine)
		if d < bestDist || (d == bestDist && before(p.ID, best, order)) {
			best, bestDist = p.ID, d
		}
	}
	return best
}

func before(a, b string, order map[string]int) bool {
	if b == "" {
		return true
	}
	ia, oka := order[a]
	ib, okb := order[b]
	if oka && okb {
		return ia < ib
	}
	return a < b
}
