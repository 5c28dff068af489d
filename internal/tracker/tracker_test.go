package tracker

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenifieduk/techhub/internal/toc"
)

var testEntries = []toc.Entry{
	{ID: "intro", Title: "Intro", Level: 2},
	{ID: "details", Title: "Details", Level: 3},
	{ID: "summary", Title: "Summary", Level: 2},
	{ID: "appendix", Title: "Appendix", Level: 2},
}

func mountedTracker(t *testing.T) *Tracker {
	t.Helper()
	tr := New(testEntries, DefaultConfig())
	require.True(t, tr.Mount([]string{"intro", "details", "summary", "appendix"}))
	return tr
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "-100px 0px -60% 0px", cfg.RootMargin())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative band top", func(c *Config) { c.BandTop = -1 }},
		{"bottom percent too large", func(c *Config) { c.BandBottomPercent = 100 }},
		{"threshold out of range", func(c *Config) { c.Thresholds = []float64{0, 1.5} }},
		{"cutoff above reference", func(c *Config) { c.ScrollCutoff = 100 }},
		{"zero frame", func(c *Config) { c.FrameInterval = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestIgnoresEventsBeforeMount(t *testing.T) {
	tr := New(testEntries, DefaultConfig())
	assert.False(t, tr.Mounted())

	_, changed := tr.Intersect([]Intersection{{ID: "intro", Intersecting: true, Ratio: 1, Top: 120}})
	assert.False(t, changed)
	_, changed = tr.Scroll([]Position{{ID: "intro", Top: 150}})
	assert.False(t, changed)
	_, ok := tr.Navigate("intro")
	assert.False(t, ok)
	assert.Empty(t, tr.Active())
}

func TestMountIgnoresUnknownAnchors(t *testing.T) {
	tr := New(testEntries, DefaultConfig())
	assert.False(t, tr.Mount([]string{"not-in-toc"}))
	assert.False(t, tr.Mounted())
	assert.False(t, tr.Mount(nil))

	assert.True(t, tr.Mount([]string{"not-in-toc", "summary"}))
	_, ok := tr.Navigate("not-in-toc")
	assert.False(t, ok)
}

func TestIntersectPicksTopmostVisible(t *testing.T) {
	tr := mountedTracker(t)

	id, changed := tr.Intersect([]Intersection{
		{ID: "details", Intersecting: true, Ratio: 1, Top: 250},
		{ID: "intro", Intersecting: true, Ratio: 0.5, Top: 110},
	})
	assert.True(t, changed)
	assert.Equal(t, "intro", id)

	// intro leaves the band; details is the only visible heading.
	id, changed = tr.Intersect([]Intersection{{ID: "intro", Intersecting: false, Top: 40}})
	assert.True(t, changed)
	assert.Equal(t, "details", id)
}

func TestIntersectZeroRatioIsNotVisible(t *testing.T) {
	tr := mountedTracker(t)
	_, changed := tr.Intersect([]Intersection{{ID: "intro", Intersecting: true, Ratio: 0, Top: 120}})
	assert.False(t, changed)
	assert.Empty(t, tr.Active())
}

func TestIntersectEmptySetKeepsActive(t *testing.T) {
	tr := mountedTracker(t)
	tr.Intersect([]Intersection{{ID: "summary", Intersecting: true, Ratio: 1, Top: 130}})
	require.Equal(t, "summary", tr.Active())

	id, changed := tr.Intersect([]Intersection{{ID: "summary", Intersecting: false, Top: 90}})
	assert.False(t, changed)
	assert.Equal(t, "summary", id)
}

func TestIntersectRespectsMinTop(t *testing.T) {
	tr := mountedTracker(t)
	_, changed := tr.Intersect([]Intersection{{ID: "intro", Intersecting: true, Ratio: 1, Top: -150}})
	assert.False(t, changed)

	id, changed := tr.Intersect([]Intersection{{ID: "details", Intersecting: true, Ratio: 1, Top: -100}})
	assert.True(t, changed)
	assert.Equal(t, "details", id)
}

func TestScrollPicksNearestAboveCutoff(t *testing.T) {
	tr := mountedTracker(t)

	id, changed := tr.Scroll([]Position{
		{ID: "intro", Top: -400},
		{ID: "details", Top: 120},
		{ID: "summary", Top: 190},
		{ID: "appendix", Top: 900},
	})
	assert.True(t, changed)
	assert.Equal(t, "details", id)

	// Nothing at or above the cutoff: unchanged.
	id, changed = tr.Scroll([]Position{{ID: "intro", Top: 300}, {ID: "details", Top: 600}})
	assert.False(t, changed)
	assert.Equal(t, "details", id)

	// Exactly on the cutoff counts.
	id, changed = tr.Scroll([]Position{{ID: "summary", Top: 200}, {ID: "appendix", Top: 201}})
	assert.True(t, changed)
	assert.Equal(t, "summary", id)
}

func TestScrollSameResultDoesNotChange(t *testing.T) {
	tr := mountedTracker(t)
	tr.Scroll([]Position{{ID: "intro", Top: 150}})
	_, changed := tr.Scroll([]Position{{ID: "intro", Top: 149}})
	assert.False(t, changed)
}

func TestScrollIgnoresUnmountedHeadings(t *testing.T) {
	tr := New(testEntries, DefaultConfig())
	require.True(t, tr.Mount([]string{"intro"}))
	id, _ := tr.Scroll([]Position{{ID: "summary", Top: 150}, {ID: "intro", Top: -50}})
	assert.Equal(t, "intro", id)
}

func TestTiesGoToDocumentOrder(t *testing.T) {
	order := map[string]int{"a": 0, "b": 1}
	assert.Equal(t, "a", SelectNearest([]Position{{ID: "b", Top: 100}, {ID: "a", Top: 200}}, 150, 200, order))
	assert.Equal(t, "a", SelectVisible([]Position{{ID: "b", Top: 120}, {ID: "a", Top: 120}}, -100, order))
}

func TestNavigate(t *testing.T) {
	tr := mountedTracker(t)
	id, ok := tr.Navigate("summary")
	assert.True(t, ok)
	assert.Equal(t, "summary", id)
	assert.Empty(t, tr.Active(), "navigation does not set the active section")

	_, ok = tr.Navigate("missing")
	assert.False(t, ok)
	_, ok = tr.Navigate("")
	assert.False(t, ok)
}

func TestRemountResetsState(t *testing.T) {
	tr := mountedTracker(t)
	tr.Scroll([]Position{{ID: "intro", Top: 150}})
	require.Equal(t, "intro", tr.Active())

	require.True(t, tr.Mount([]string{"summary"}))
	assert.Empty(t, tr.Active())
	_, ok := tr.Navigate("intro")
	assert.False(t, ok)
}

func TestEntriesWithEmptyIDAreNeverTracked(t *testing.T) {
	tr := New([]toc.Entry{{ID: "", Title: "??", Level: 2}, {ID: "real", Title: "Real", Level: 2}}, DefaultConfig())
	assert.False(t, tr.Mount([]string{""}))
	assert.True(t, tr.Mount([]string{"", "real"}))
}

// Interleaved scroll and intersection events: after each event the active section is
// the result of that event's strategy, or unchanged when the strategy found nothing.
func TestInterleavedEventsActiveIsLatestResult(t *testing.T) {
	cfg := DefaultConfig()
	tr := mountedTracker(t)
	order := map[string]int{}
	ids := make([]string, len(testEntries))
	for i, e := range testEntries {
		order[e.ID] = i
		ids[i] = e.ID
	}

	rng := rand.New(rand.NewSource(42))
	visible := map[string]bool{}
	tops := map[string]float64{}

	for step := 0; step < 2000; step++ {
		before := tr.Active()
		var want string

		if rng.Intn(2) == 0 {
			var changes []Intersection
			for _, id := range ids {
				if rng.Intn(3) != 0 {
					continue
				}
				c := Intersection{ID: id, Intersecting: rng.Intn(2) == 0, Ratio: rng.Float64(), Top: float64(rng.Intn(800) - 300)}
				changes = append(changes, c)
				tops[id] = c.Top
				if c.Intersecting && c.Ratio > 0 {
					visible[id] = true
				} else {
					delete(visible, id)
				}
			}
			var candidates []Position
			for id := range visible {
				candidates = append(candidates, Position{ID: id, Top: tops[id]})
			}
			want = SelectVisible(candidates, cfg.MinTop, order)
			tr.Intersect(changes)
		} else {
			var positions []Position
			for _, id := range ids {
				p := Position{ID: id, Top: float64(rng.Intn(1600) - 600)}
				positions = append(positions, p)
				tops[id] = p.Top
			}
			want = SelectNearest(positions, cfg.ReferenceLine, cfg.ScrollCutoff, order)
			tr.Scroll(positions)
		}

		if want == "" {
			require.Equal(t, before, tr.Active(), "step %d: empty result must keep the active section", step)
		} else {
			require.Equal(t, want, tr.Active(), "step %d", step)
		}
	}
}
