package goquery_test

import (
	"testing"

	"github.com/fwojciec/viewdocs"
	"github.com/fwojciec/viewdocs/goquery"
	"github.com/fwojciec/viewdocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(html string) *mock.Renderer {
	return &mock.Renderer{
		RenderFn: func([]byte) ([]byte, error) {
			return []byte(html), nil
		},
	}
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("opens external links in a new tab", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(fixed(`<p><a href="https://example.com/x">ext</a> <a href="other.md">local</a> <a href="#top">anchor</a></p>`))

		out, err := r.Render(nil)

		require.NoError(t, err)
		got := string(out)
		assert.Contains(t, got, `<a href="https://example.com/x" target="_blank" rel="noopener noreferrer">ext</a>`)
		assert.Contains(t, got, `<a href="other.md">local</a>`)
		assert.Contains(t, got, `<a href="#top">anchor</a>`)
	})

	t.Run("leaves mailto links alone", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(fixed(`<a href="mailto:a@example.com">mail</a>`))

		out, err := r.Render(nil)

		require.NoError(t, err)
		assert.NotContains(t, string(out), "target=")
	})

	t.Run("lazy loads images", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(fixed(`<p><img src="a.png" alt="a"/><img src="b.png" loading="eager"/></p>`))

		out, err := r.Render(nil)

		require.NoError(t, err)
		got := string(out)
		assert.Contains(t, got, `<img src="a.png" alt="a" loading="lazy"/>`)
		assert.Contains(t, got, `<img src="b.png" loading="eager"/>`)
	})

	t.Run("wraps tables", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(fixed(`<table><thead><tr><th>a</th></tr></thead><tbody><tr><td>1</td></tr></tbody></table>`))

		out, err := r.Render(nil)

		require.NoError(t, err)
		assert.Contains(t, string(out), `<div class="table-wrapper"><table>`)
	})

	t.Run("keeps leading raw html in place", func(t *testing.T) {
		t.Parallel()

		// Given output that starts with a style block and a comment
		r := goquery.NewRenderer(fixed("<style>\n.note{color:red}\n</style>\n<!-- draft -->\n<p>Hello</p>\n"))

		// When it is post-processed
		out, err := r.Render(nil)

		// Then nothing is moved or dropped
		require.NoError(t, err)
		assert.Equal(t, "<style>\n.note{color:red}\n</style>\n<!-- draft -->\n<p>Hello</p>\n", string(out))
	})

	t.Run("keeps leading script and meta tags", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(fixed(`<meta name="x" content="y"/><script>var a = 1 < 2;</script><p>Body</p>`))

		out, err := r.Render(nil)

		require.NoError(t, err)
		assert.Equal(t, `<meta name="x" content="y"/><script>var a = 1 < 2;</script><p>Body</p>`, string(out))
	})

	t.Run("preserves heading ids", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(fixed(`<h1 id="title">Title</h1>`))

		out, err := r.Render(nil)

		require.NoError(t, err)
		assert.Equal(t, `<h1 id="title">Title</h1>`, string(out))
	})

	t.Run("propagates render errors", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(&mock.Renderer{
			RenderFn: func([]byte) ([]byte, error) {
				return nil, viewdocs.Errorf(viewdocs.ERENDER, "broken")
			},
		})

		_, err := r.Render(nil)

		assert.Equal(t, viewdocs.ERENDER, viewdocs.ErrorCode(err))
	})
}
