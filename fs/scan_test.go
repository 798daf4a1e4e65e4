package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/viewdocs"
	"github.com/fwojciec/viewdocs/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFiles creates files under dir from a map of slash paths to content.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func dirTarget(dir string) *viewdocs.Target {
	return &viewdocs.Target{Root: dir, Mode: viewdocs.ModeDirectory, DefaultFile: viewdocs.DefaultFile}
}

// Story: Building the document set

func TestScan_OrdersReadmeFirstThenAlphabetical(t *testing.T) {
	t.Parallel()

	// Given a directory with several markdown files
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"zeta.md":        "z",
		"README.md":      "r",
		"alpha.md":       "a",
		"docs/README.md": "d",
		"main.go":        "package main",
	})

	// When I scan it
	paths, err := fs.Scan(context.Background(), dirTarget(dir), fs.ScanOptions{})

	// Then README.md comes first and only markdown is collected
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "alpha.md", "docs/README.md", "zeta.md"}, paths)
}

func TestScan_SkipsExcludedDirectories(t *testing.T) {
	t.Parallel()

	// Given markdown inside excluded directories
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"README.md":                  "r",
		"node_modules/pkg/README.md": "x",
		"Archive/old.md":             "x",
		"guide/intro.md":             "i",
	})

	// When I scan with the default exclusions
	paths, err := fs.Scan(context.Background(), dirTarget(dir), fs.ScanOptions{
		Exclude: viewdocs.ParseExcludeSet(viewdocs.DefaultExclude),
	})

	// Then excluded directories are skipped case-insensitively
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "guide/intro.md"}, paths)
}

func TestScan_EmptyExcludeDisablesExclusion(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"archive/old.md": "x"})

	paths, err := fs.Scan(context.Background(), dirTarget(dir), fs.ScanOptions{
		Exclude: viewdocs.ParseExcludeSet(""),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"archive/old.md"}, paths)
}

func TestScan_ShallowIgnoresSubdirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"README.md":    "r",
		"sub/inner.md": "i",
	})

	paths, err := fs.Scan(context.Background(), dirTarget(dir), fs.ScanOptions{Shallow: true})

	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, paths)
}

func TestScan_FileModeReturnsOnlyTheFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": "a", "b.md": "b"})

	target := &viewdocs.Target{Root: dir, Mode: viewdocs.ModeFile, DefaultFile: "b.md"}
	paths, err := fs.Scan(context.Background(), target, fs.ScanOptions{})

	require.NoError(t, err)
	assert.Equal(t, []string{"b.md"}, paths)
}

func TestScan_EmptyDirectoryYieldsEmptySet(t *testing.T) {
	t.Parallel()

	paths, err := fs.Scan(context.Background(), dirTarget(t.TempDir()), fs.ScanOptions{})

	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestScan_CancelledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": "a"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fs.Scan(ctx, dirTarget(dir), fs.ScanOptions{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestScan_InvalidTarget(t *testing.T) {
	t.Parallel()

	_, err := fs.Scan(context.Background(), &viewdocs.Target{}, fs.ScanOptions{})

	assert.Equal(t, viewdocs.EINVALID, viewdocs.ErrorCode(err))
}
