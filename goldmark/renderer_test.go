package goldmark_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/viewdocs"
	"github.com/fwojciec/viewdocs/goldmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, source string) string {
	t.Helper()

	out, err := goldmark.NewRenderer().Render([]byte(source))
	require.NoError(t, err)
	return string(out)
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("heading gets an id", func(t *testing.T) {
		t.Parallel()

		got := render(t, "# Title\n\nSome text.\n")

		assert.Contains(t, got, `<h1 id="title">Title</h1>`)
		assert.Contains(t, got, "<p>Some text.</p>")
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		source := []byte("# Doc\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n```go\nfunc main() {}\n```\n\nSee https://example.com.\n")
		r := goldmark.NewRenderer()

		first, err := r.Render(source)
		require.NoError(t, err)
		second, err := r.Render(source)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("renders tables", func(t *testing.T) {
		t.Parallel()

		got := render(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")

		assert.Contains(t, got, "<table>")
		assert.Contains(t, got, "<td>1</td>")
	})

	t.Run("renders task lists", func(t *testing.T) {
		t.Parallel()

		got := render(t, "- [x] done\n- [ ] todo\n")

		assert.Contains(t, got, `type="checkbox"`)
	})

	t.Run("renders footnotes", func(t *testing.T) {
		t.Parallel()

		got := render(t, "Claim[^1].\n\n[^1]: Source.\n")

		assert.Contains(t, got, "footnotes")
	})

	t.Run("passes raw HTML through", func(t *testing.T) {
		t.Parallel()

		got := render(t, "<div class=\"note\">hi</div>\n")

		assert.Contains(t, got, `<div class="note">hi</div>`)
	})

	t.Run("normalizes CRLF line endings", func(t *testing.T) {
		t.Parallel()

		got := render(t, "# A\r\n\r\ntext\r\n")

		assert.Contains(t, got, `<h1 id="a">A</h1>`)
		assert.Contains(t, got, "<p>text</p>")
		assert.NotContains(t, got, "\r")
	})

	t.Run("handles empty input", func(t *testing.T) {
		t.Parallel()

		got := render(t, "")

		assert.Empty(t, strings.TrimSpace(got))
	})
}

func TestRenderer_CodeBlocks(t *testing.T) {
	t.Parallel()

	t.Run("highlights known languages with classes", func(t *testing.T) {
		t.Parallel()

		got := render(t, "```go\nfunc main() {}\n```\n")

		assert.Contains(t, got, `<div class="highlight language-go">`)
		assert.Contains(t, got, `class="chroma"`)
		assert.NotContains(t, got, "style=")
	})

	t.Run("tags plantuml blocks for the diagram script", func(t *testing.T) {
		t.Parallel()

		got := render(t, "```plantuml\n@startuml\nA -> B\n@enduml\n```\n")

		assert.Contains(t, got, `<pre><code class="language-plantuml plantuml">@startuml`)
		assert.Contains(t, got, "A -&gt; B")
	})

	t.Run("treats puml as plantuml", func(t *testing.T) {
		t.Parallel()

		got := render(t, "```puml\nA -> B\n```\n")

		assert.Contains(t, got, `class="language-plantuml plantuml"`)
	})

	t.Run("escapes unknown languages", func(t *testing.T) {
		t.Parallel()

		got := render(t, "```nosuchlanguage\na < b\n```\n")

		assert.Contains(t, got, `<pre><code class="language-nosuchlanguage">a &lt; b`)
	})

	t.Run("escapes blocks without a language", func(t *testing.T) {
		t.Parallel()

		got := render(t, "```\n<b>bold</b>\n```\n")

		assert.Contains(t, got, "<pre><code>&lt;b&gt;bold&lt;/b&gt;")
	})

	t.Run("dedents indented fences", func(t *testing.T) {
		t.Parallel()

		got := render(t, "Intro\n\n    ```go\n    x := 1\n    ```\n\nAfter\n")

		assert.Contains(t, got, `<div class="highlight language-go">`)
		assert.NotContains(t, got, "```")
		assert.Contains(t, got, "<p>After</p>")
	})

	t.Run("dedents after a longer backtick fence", func(t *testing.T) {
		t.Parallel()

		// Given a four-backtick block quoting a three-backtick fence
		source := "````md\n```go\nx := 1\n```\n````\n\nIntro\n\n    ```go\n    y := 2\n    ```\n"

		// When it is rendered
		got := render(t, source)

		// Then the later indented fence is still dedented
		assert.Contains(t, got, `language-md`)
		assert.Contains(t, got, `<div class="highlight language-go">`)
		assert.Contains(t, got, "<p>Intro</p>")
	})

	t.Run("dedents after a tilde fence", func(t *testing.T) {
		t.Parallel()

		got := render(t, "~~~\n```\n~~~\n\nIntro\n\n    ```go\n    y := 2\n    ```\n")

		assert.Contains(t, got, "<pre><code>```\n</code></pre>")
		assert.Contains(t, got, `<div class="highlight language-go">`)
	})

	t.Run("dedents indented tilde fences", func(t *testing.T) {
		t.Parallel()

		got := render(t, "Intro\n\n    ~~~go\n    x := 1\n    ~~~\n")

		assert.Contains(t, got, `<div class="highlight language-go">`)
		assert.NotContains(t, got, "~~~")
	})

	t.Run("keeps fences nested in list items", func(t *testing.T) {
		t.Parallel()

		got := render(t, "- step one\n\n  ```go\n  x := 1\n  ```\n\n- step two\n")

		assert.Contains(t, got, `<div class="highlight language-go">`)
		assert.Contains(t, got, "step two")
		assert.Equal(t, 1, strings.Count(got, "<ul>"))
	})
}

func TestRenderer_Stylesheet(t *testing.T) {
	t.Parallel()

	t.Run("emits chroma classes", func(t *testing.T) {
		t.Parallel()

		css, err := goldmark.NewRenderer().Stylesheet()

		require.NoError(t, err)
		assert.Contains(t, css, ".chroma")
	})

	t.Run("unknown style falls back", func(t *testing.T) {
		t.Parallel()

		css, err := goldmark.NewRenderer(goldmark.WithStyle("no-such-style")).Stylesheet()

		require.NoError(t, err)
		assert.NotEmpty(t, css)
	})
}

func TestRenderer_Version(t *testing.T) {
	t.Parallel()

	a := goldmark.NewRenderer(goldmark.WithStyle("github"))
	b := goldmark.NewRenderer(goldmark.WithStyle("monokai"))

	assert.NotEqual(t, a.Version(), b.Version())
	assert.Equal(t, "goldmark/github", goldmark.NewRenderer().Version())
}

func TestRenderer_HeadingIDsMatchSections(t *testing.T) {
	t.Parallel()

	// Given headings with underscores, punctuation, accents and repeats
	source := `# Guide

## snake_case names

## C++ & Go

## Café

## Setup ##

## Setup

   ### Indented heading

## **Bold** and ` + "`code`" + `
`

	// When the document is rendered
	got := render(t, source)

	// Then every table of contents anchor names a heading id
	sections := viewdocs.ExtractSections(source)
	require.Len(t, sections, 8)
	for _, sec := range sections {
		assert.Contains(t, got, `id="`+sec.Anchor+`"`, "heading %q", sec.Title)
	}
	assert.Contains(t, got, `id="snake_case-names"`)
	assert.Contains(t, got, `id="setup-1"`)
}
