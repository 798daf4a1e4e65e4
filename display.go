package viewdocs

import (
	"path"
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// IsMarkdown reports whether name has a markdown file extension.
func IsMarkdown(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// SortPaths orders document paths for navigation: the root README.md comes
// first, everything else follows in lexical order.
func SortPaths(paths []string) {
	slices.SortFunc(paths, func(a, b string) int {
		ra, rb := a == DefaultFile, b == DefaultFile
		switch {
		case ra && !rb:
			return -1
		case rb && !ra:
			return 1
		}
		return strings.Compare(a, b)
	})
}

// DisplayName formats a markdown file name for navigation.
// Example: HLD_HIGH_LEVEL_DESIGN.md → HLD - HIGH LEVEL Design
func DisplayName(filename string) string {
	name := path.Base(filename)
	if IsMarkdown(name) {
		name = strings.TrimSuffix(name, path.Ext(name))
	}

	if strings.ToUpper(name) == "README" {
		return "README"
	}

	parts := strings.Split(name, "_")
	firstIsAbbrev := len(parts) > 1 && isAbbrev(parts[0])

	formatted := make([]string, 0, len(parts))
	for _, part := range parts {
		if isAbbrev(part) {
			formatted = append(formatted, part)
		} else {
			formatted = append(formatted, capitalize(part))
		}
	}

	if firstIsAbbrev {
		return formatted[0] + " - " + strings.Join(formatted[1:], " ")
	}
	return strings.Join(formatted, " ")
}

// isAbbrev reports whether s is a short all-caps token such as API or HLD.
func isAbbrev(s string) bool {
	return len([]rune(s)) <= 5 && isUpper(s)
}

// isUpper reports whether s has at least one cased letter and no lower-case ones.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

var titleRe = regexp.MustCompile(`(?m)^#[ \t]+(.+?)(?:[ \t]+#+)?[ \t]*$`)

// ExtractTitle returns the text of the first level-1 ATX heading, ignoring
// fenced code blocks. Returns an empty string if there is none.
func ExtractTitle(markdown string) string {
	m := titleRe.FindStringSubmatch(removeCodeBlocks(markdown))
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ProjectName derives a human-readable project name from a directory name.
// Example: my_cool-docs → My Cool Docs
func ProjectName(dir string) string {
	name := path.Base(strings.ReplaceAll(dir, "\\", "/"))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)

	var sb strings.Builder
	prevLetter := false
	for _, r := range name {
		if unicode.IsLetter(r) {
			if prevLetter {
				sb.WriteRune(unicode.ToLower(r))
			} else {
				sb.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		sb.WriteRune(r)
		prevLetter = false
	}
	return sb.String()
}
