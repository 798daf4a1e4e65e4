package goldmark

import (
	"bytes"
	"regexp"
	"strings"
)

var (
	fenceRe         = regexp.MustCompile("^([ \t]*)(`{3,}|~{3,})(.*)$")
	listItemRe      = regexp.MustCompile(`^[ \t]*([-*+]|\d+[.)])[ \t]+`)
)

// preprocess prepares source for the parser: line endings are normalized
// and fenced blocks indented by two or more spaces are pulled back to the
// left margin, unless they continue a list item where the indentation is
// meaningful.
func preprocess(source []byte) []byte {
	source = normalizeNewlines(source)
	if !bytes.Contains(source, []byte("```")) && !bytes.Contains(source, []byte("~~~")) {
		return source
	}

	lines := strings.Split(string(source), "\n")
	out := make([]string, 0, len(lines))

	var (
		inBlock  bool
		fence    string
		indent   string
		inList   bool
		dedented bool
	)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if inBlock {
			if closesFence(trimmed, fence) {
				inBlock = false
				if dedented {
					out = append(out, trimmed)
					continue
				}
				out = append(out, line)
				continue
			}
			if dedented {
				out = append(out, strings.TrimPrefix(line, indent))
				continue
			}
			out = append(out, line)
			continue
		}

		if m := fenceRe.FindStringSubmatch(line); m != nil && !(m[2][0] == '`' && strings.Contains(m[3], "`")) {
			inBlock, fence, indent = true, m[2], m[1]
			dedented = len(indent) >= 2 && !inList
			if dedented {
				out = append(out, m[2]+m[3])
			} else {
				out = append(out, line)
			}
			continue
		}

		switch {
		case listItemRe.MatchString(line):
			inList = true
		case trimmed == "":
		case line[0] != ' ' && line[0] != '\t':
			inList = false
		}
		out = append(out, line)
	}

	return []byte(strings.Join(out, "\n"))
}

// closesFence reports whether trimmed ends a block opened by fence: a run
// of the same character at least as long, with nothing after it.
func closesFence(trimmed, fence string) bool {
	if len(trimmed) < len(fence) {
		return false
	}
	return strings.Trim(trimmed, fence[:1]) == ""
}

// normalizeNewlines converts CRLF and lone CR line endings to LF.
func normalizeNewlines(source []byte) []byte {
	if !bytes.ContainsRune(source, '\r') {
		return source
	}
	out := bytes.ReplaceAll(source, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(out, []byte("\r"), []byte("\n"))
}
