// Package viewdocs provides a local documentation viewer. It resolves a
// directory or a single markdown file, renders markdown to HTML and serves
// the result as a browsable site on a local port.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goldmark/, sqlite/, fsnotify/).
package viewdocs
