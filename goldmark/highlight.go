package goldmark

import (
	"bytes"
	"html"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// highlighter renders fenced code blocks. Blocks in a known language are
// tokenised by chroma and emitted with CSS classes; PlantUML blocks are
// tagged for the client-side diagram script; anything else is escaped as is.
type highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

func newHighlighter(style string) *highlighter {
	return &highlighter{
		style:     styles.Get(style),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (h *highlighter) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, h.renderFencedCodeBlock)
}

func (h *highlighter) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ast.FencedCodeBlock)
	lang := strings.ToLower(string(n.Language(source)))

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(source))
	}

	switch {
	case lang == "plantuml" || lang == "puml":
		writePlain(w, "language-plantuml plantuml", code.String())
		return ast.WalkSkipChildren, nil
	case lang == "":
		writePlain(w, "", code.String())
		return ast.WalkSkipChildren, nil
	}

	lexer := lexers.Get(lang)
	if lexer == nil {
		writePlain(w, "language-"+lang, code.String())
		return ast.WalkSkipChildren, nil
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code.String())
	if err != nil {
		writePlain(w, "language-"+lang, code.String())
		return ast.WalkSkipChildren, nil
	}

	_, _ = w.WriteString(`<div class="highlight language-` + html.EscapeString(lang) + `">`)
	if err := h.formatter.Format(w, h.style, iterator); err != nil {
		return ast.WalkStop, err
	}
	_, _ = w.WriteString("</div>\n")

	return ast.WalkSkipChildren, nil
}

func (h *highlighter) writeCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}

func writePlain(w util.BufWriter, class, code string) {
	if class == "" {
		_, _ = w.WriteString("<pre><code>")
	} else {
		_, _ = w.WriteString(`<pre><code class="` + html.EscapeString(class) + `">`)
	}
	_, _ = w.WriteString(html.EscapeString(code))
	_, _ = w.WriteString("</code></pre>\n")
}
