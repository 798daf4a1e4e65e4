package viewdocs_test

import (
	"testing"

	"github.com/fwojciec/viewdocs"
	"github.com/stretchr/testify/assert"
)

func TestParseExcludeSet(t *testing.T) {
	t.Parallel()

	t.Run("parses default list", func(t *testing.T) {
		t.Parallel()

		set := viewdocs.ParseExcludeSet(viewdocs.DefaultExclude)

		assert.Len(t, set, 8)
		assert.True(t, set.Contains("node_modules"))
		assert.True(t, set.Contains(".git"))
	})

	t.Run("trims and lower-cases entries", func(t *testing.T) {
		t.Parallel()

		set := viewdocs.ParseExcludeSet(" Drafts , OLD,,")

		assert.Equal(t, []string{"drafts", "old"}, set.Names())
		assert.True(t, set.Contains("DRAFTS"))
	})

	t.Run("empty string disables exclusion", func(t *testing.T) {
		t.Parallel()

		set := viewdocs.ParseExcludeSet("")

		assert.Empty(t, set)
		assert.False(t, set.MatchPath("archive/old.md"))
	})
}

func TestExcludeSet_MatchPath(t *testing.T) {
	t.Parallel()

	set := viewdocs.ParseExcludeSet("archive,node_modules")

	assert.True(t, set.MatchPath("archive/old.md"))
	assert.True(t, set.MatchPath("pkg/node_modules/lib/README.md"))
	assert.True(t, set.MatchPath("Archive/old.md"))
	assert.False(t, set.MatchPath("archive.md"))
	assert.False(t, set.MatchPath("guides/setup.md"))
}

func TestExcludeSet_Summary(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "(none)", viewdocs.ParseExcludeSet("").Summary(5))
	assert.Equal(t, "a, b", viewdocs.ParseExcludeSet("b,a").Summary(5))
	assert.Equal(t, "a, b (+2 more)", viewdocs.ParseExcludeSet("a,b,c,d").Summary(2))
}
