package article

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSlug = "uk-house-price-data-lag-2025"

func TestParseMetadata(t *testing.T) {
	content := "# A Title\n\n*Published: 3rd June 2025 | Reading time: 5 minutes*\n\nFirst paragraph\ncontinues here.\n\n## Section One\n"
	a, err := Parse("a-title", content)
	require.NoError(t, err)

	assert.Equal(t, "A Title", a.Title)
	assert.Equal(t, "3rd June 2025", a.Date)
	assert.Equal(t, "5 minutes", a.ReadTime)
	assert.Equal(t, "First paragraph continues here.", a.Excerpt)
	assert.Equal(t, StatusPublished, a.Status)
	assert.Equal(t, CategoryNews, a.Category)
	require.Len(t, a.TOC, 1)
	assert.Equal(t, "section-one", a.TOC[0].ID)
}

func TestParseTOCOnlyListsRenderedHeadings(t *testing.T) {
	content := "# Title\n\n## Intro\n\n<!--\n## Draft notes\n-->\n\n## Market Data\n\ntext\n\n### Outlook\n"
	a, err := Parse("title", content)
	require.NoError(t, err)

	var ids []string
	for _, e := range a.TOC {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"intro", "market-data", "outlook"}, ids)
}

func TestParseOverrides(t *testing.T) {
	content := "# Weekly Email\nStatus: review\nCategory: email\n\nBody text.\n"
	a, err := Parse("weekly-email", content)
	require.NoError(t, err)
	assert.Equal(t, StatusReview, a.Status)
	assert.Equal(t, CategoryEmail, a.Category)
	assert.Equal(t, "Body text.", a.Excerpt)
	assert.False(t, a.HasTOC())
}

func TestParseUnknownStatusKeepsDefault(t *testing.T) {
	a, err := Parse("x", "# X\nStatus: archived\n")
	require.NoError(t, err)
	assert.Equal(t, StatusPublished, a.Status)
}

func TestParseEstimatesReadTime(t *testing.T) {
	body := strings.Repeat("word ", 450)
	a, err := Parse("long", "# Long\n\n"+body)
	require.NoError(t, err)
	assert.Equal(t, "3 minutes", a.ReadTime)
	assert.Empty(t, a.Date)
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse("empty", "  \n")
	assert.Error(t, err)
}

func TestExcerptTruncates(t *testing.T) {
	long := strings.Repeat("lorem ipsum ", 40)
	a, err := Parse("l", "# L\n\n"+long)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(a.Excerpt, "..."))
	assert.LessOrEqual(t, len(a.Excerpt), excerptLimit+3)
}

func TestEstimateReadTime(t *testing.T) {
	assert.Equal(t, "1 minute", EstimateReadTime(""))
	assert.Equal(t, "1 minute", EstimateReadTime(strings.Repeat("w ", 200)))
	assert.Equal(t, "2 minutes", EstimateReadTime(strings.Repeat("w ", 201)))
}

func TestSampleArticle(t *testing.T) {
	c := NewCatalog(SampleFS(), "", nil)
	require.NoError(t, c.Reload())

	a, err := c.Get(sampleSlug)
	require.NoError(t, err)
	assert.Equal(t, "3rd June 2025", a.Date)
	assert.Equal(t, "5 minutes", a.ReadTime)
	assert.Contains(t, a.Title, "Why UK House Price Data")

	var ids []string
	for _, e := range a.TOC {
		ids = append(ids, e.ID)
		assert.NotEqual(t, "---", e.Title)
	}
	assert.Equal(t, []string{
		"the-problem-with-official-house-price-data",
		"how-the-land-registry-index-is-built",
		"mortgage-approval-figures",
		"uk-house-prices-whats-next",
		"regional-differences",
		"reading-real-time-market-signals",
		"working-with-a-local-agent",
		"what-this-means-for-buyers-and-sellers-in-2025",
		"key-takeaways",
	}, ids)
}

func TestCatalogNotFound(t *testing.T) {
	c := NewCatalog(SampleFS(), "", nil)
	require.NoError(t, c.Reload())

	for _, s := range []string{"missing-post", "../etc/passwd", "Not A Slug", ""} {
		_, err := c.Get(s)
		assert.True(t, errors.Is(err, ErrNotFound), "Get(%q) = %v", s, err)
	}
}

func TestCatalogReloadAggregatesErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"good.md":        {Data: []byte("# Good\n\n## Part One\n")},
		"empty.md":       {Data: []byte("")},
		"blank-again.md": {Data: []byte("   ")},
		"notes.txt":      {Data: []byte("ignored")},
	}
	c := NewCatalog(fsys, "", nil)
	err := c.Reload()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty.md")
	assert.Contains(t, err.Error(), "blank-again.md")
	assert.Equal(t, 1, c.Len())
}

func TestCatalogReloadKeepsPreviousVersionOnFailure(t *testing.T) {
	fsys := fstest.MapFS{
		"post.md": {Data: []byte("# First Version\n")},
	}
	c := NewCatalog(fsys, "", nil)
	require.NoError(t, c.Reload())

	fsys["post.md"] = &fstest.MapFile{Data: []byte("")}
	require.Error(t, c.Reload())

	a, err := c.Get("post")
	require.NoError(t, err)
	assert.Equal(t, "First Version", a.Title)
}

func TestCatalogNormalizesFileNames(t *testing.T) {
	fsys := fstest.MapFS{
		"drafts/My Draft Post.md": {Data: []byte("# Draft\nStatus: draft\nCategory: Social Post\n")},
		"market-update.md":        {Data: []byte("# Update\n")},
	}
	c := NewCatalog(fsys, "", nil)
	require.NoError(t, c.Reload())

	a, err := c.Get("my-draft-post")
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, a.Status)

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "market-update", list[0].Slug)
	assert.Equal(t, "my-draft-post", list[1].Slug)

	assert.Equal(t, []CategoryCount{
		{Category: CategoryNews, Count: 1},
		{Category: CategorySocial, Count: 1},
		{Category: CategoryEmail, Count: 0},
	}, c.CategoryStats())
}

func TestCatalogDuplicateSlugs(t *testing.T) {
	fsys := fstest.MapFS{
		"a/post.md": {Data: []byte("# A\n")},
		"b/post.md": {Data: []byte("# B\n")},
	}
	c := NewCatalog(fsys, "", nil)
	err := c.Reload()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already used")

	a, getErr := c.Get("post")
	require.NoError(t, getErr)
	assert.Equal(t, "A", a.Title)
}
