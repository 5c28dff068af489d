package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenifieduk/techhub/internal/article"
	"github.com/zenifieduk/techhub/internal/toc"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	cfg := filepath.Join(t.TempDir(), "missing.yml")
	rootCmd.SetArgs(append([]string{"--config", cfg}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestArticleTOCCommandJSON(t *testing.T) {
	out, err := execute(t, "article", "toc", "--json", "uk-house-price-data-lag-2025")
	require.NoError(t, err)

	var entries []toc.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 9)
	assert.Equal(t, "the-problem-with-official-house-price-data", entries[0].ID)
	assert.Equal(t, "mortgage-approval-figures", entries[2].ID)
}

func TestArticleTOCCommandUnknownSlug(t *testing.T) {
	_, err := execute(t, "article", "toc", "no-such-article")
	require.Error(t, err)
	assert.ErrorIs(t, err, article.ErrNotFound)
}

func TestArticleListCommand(t *testing.T) {
	out, err := execute(t, "article", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "SLUG")
	assert.Contains(t, out, "uk-house-price-data-lag-2025")
}
