package viewdocs_test

import (
	"testing"

	"github.com/fwojciec/viewdocs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTarget_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts directory target", func(t *testing.T) {
		t.Parallel()

		target := &viewdocs.Target{Root: "/docs", Mode: viewdocs.ModeDirectory, DefaultFile: viewdocs.DefaultFile}

		require.NoError(t, target.Validate())
	})

	t.Run("requires root", func(t *testing.T) {
		t.Parallel()

		target := &viewdocs.Target{Mode: viewdocs.ModeFile, DefaultFile: "notes.md"}

		err := target.Validate()

		assert.Equal(t, viewdocs.EINVALID, viewdocs.ErrorCode(err))
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		t.Parallel()

		target := &viewdocs.Target{Root: "/docs", Mode: "zip", DefaultFile: "a.md"}

		err := target.Validate()

		assert.Equal(t, viewdocs.EINVALID, viewdocs.ErrorCode(err))
		assert.Contains(t, viewdocs.ErrorMessage(err), "zip")
	})
}

func TestDocument_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, (&viewdocs.Document{Path: "guides/setup.md"}).Validate())
	assert.Equal(t, viewdocs.EINVALID, viewdocs.ErrorCode((&viewdocs.Document{}).Validate()))
	assert.Equal(t, viewdocs.EINVALID, viewdocs.ErrorCode((&viewdocs.Document{Path: "logo.png"}).Validate()))
}

func TestRenderFallback(t *testing.T) {
	t.Parallel()

	html := viewdocs.RenderFallback([]byte("# <script>alert(1)</script>"))

	assert.Equal(t, "<pre class=\"render-fallback\"># &lt;script&gt;alert(1)&lt;/script&gt;</pre>\n", string(html))
}
