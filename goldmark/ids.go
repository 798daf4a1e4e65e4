package goldmark

import (
	"github.com/fwojciec/viewdocs"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
)

var _ parser.IDs = (*headingIDs)(nil)

// headingIDs assigns heading ids with viewdocs.Anchors so they match the
// anchors in Document.Sections.
type headingIDs struct {
	anchors *viewdocs.Anchors
}

func newHeadingIDs() *headingIDs {
	return &headingIDs{anchors: viewdocs.NewAnchors()}
}

func (ids *headingIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	return []byte(ids.anchors.Next(string(value)))
}

func (ids *headingIDs) Put(value []byte) {
	ids.anchors.Reserve(string(value))
}
