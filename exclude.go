package viewdocs

import (
	"fmt"
	"path"
	"slices"
	"strings"
)

// DefaultExclude lists directories left out of the document set by default.
const DefaultExclude = "archive,node_modules,.git,__pycache__,venv,.venv,dist,build"

// ExcludeSet is a set of lower-cased directory names excluded from scanning.
type ExcludeSet map[string]struct{}

// ParseExcludeSet parses a comma-separated list of directory names.
// Entries are trimmed and lower-cased; empty entries are dropped, so an
// empty string yields an empty set.
func ParseExcludeSet(s string) ExcludeSet {
	set := make(ExcludeSet)
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

// Contains reports whether the directory name is excluded.
func (s ExcludeSet) Contains(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

// MatchPath reports whether any directory segment of the slash-separated
// relative path is excluded. The final element is treated as a file name
// and is not checked.
func (s ExcludeSet) MatchPath(rel string) bool {
	if len(s) == 0 {
		return false
	}
	dir := path.Dir(rel)
	if dir == "." {
		return false
	}
	for _, seg := range strings.Split(dir, "/") {
		if s.Contains(seg) {
			return true
		}
	}
	return false
}

// Names returns the excluded names in sorted order.
func (s ExcludeSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Summary returns a short description for display, listing at most limit names.
func (s ExcludeSet) Summary(limit int) string {
	names := s.Names()
	if len(names) == 0 {
		return "(none)"
	}
	if len(names) <= limit {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s (+%d more)", strings.Join(names[:limit], ", "), len(names)-limit)
}
