package viewdocs

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Section represents a heading in a markdown document.
type Section struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

var (
	headingRe   = regexp.MustCompile(`(?m)^ {0,3}(#{1,6})[ \t]+(.+?)(?:[ \t]+#+)?[ \t]*$`)
	codeBlockRe = regexp.MustCompile("(?ms)^[ \t]*(```|~~~).*?^[ \t]*(```|~~~)[ \t]*$")
)

// ExtractSections parses markdown and returns all headings (H1-H6).
// It generates URL-safe anchors and handles duplicates with numeric suffixes.
func ExtractSections(markdown string) []Section {
	if markdown == "" {
		return nil
	}

	// Remove code blocks to avoid matching # in code
	cleaned := removeCodeBlocks(markdown)

	matches := headingRe.FindAllStringSubmatch(cleaned, -1)
	if len(matches) == 0 {
		return nil
	}

	sections := make([]Section, 0, len(matches))
	anchors := NewAnchors()
	for _, match := range matches {
		title := strings.TrimSpace(match[2])
		sections = append(sections, Section{
			Level:  len(match[1]),
			Title:  title,
			Anchor: anchors.Next(title),
		})
	}

	return sections
}

// Anchors hands out unique heading anchors within one document. The
// markdown renderer uses the same rules for heading ids, so anchors from
// ExtractSections link to the rendered headings.
type Anchors struct {
	used map[string]bool
}

// NewAnchors returns an empty Anchors.
func NewAnchors() *Anchors {
	return &Anchors{used: make(map[string]bool)}
}

// Next returns the anchor for a raw heading title. Repeated anchors get
// "-1", "-2" and so on appended.
func (a *Anchors) Next(title string) string {
	base := generateAnchor(title)
	if base == "" {
		base = "section"
	}
	anchor := base
	for i := 1; a.used[anchor]; i++ {
		anchor = base + "-" + strconv.Itoa(i)
	}
	a.used[anchor] = true
	return anchor
}

// Reserve marks anchor as taken.
func (a *Anchors) Reserve(anchor string) {
	a.used[anchor] = true
}

// removeCodeBlocks removes fenced code blocks from markdown.
func removeCodeBlocks(s string) string {
	return codeBlockRe.ReplaceAllString(strings.ReplaceAll(s, "\r\n", "\n"), "")
}

// generateAnchor creates a URL-safe anchor from a title.
// Letters, digits and underscores are kept in lower case; runs of spaces and
// hyphens become a single hyphen; everything else is dropped.
func generateAnchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	result := sb.String()
	// Trim trailing hyphen
	return strings.TrimSuffix(result, "-")
}
