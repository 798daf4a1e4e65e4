package main

import (
	"context"
	"io"
	"log/slog"

	vdhttp "github.com/fwojciec/viewdocs/http"
)

// Dependencies holds services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Ready  func(s *vdhttp.Server)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Path      string `arg:"" optional:"" help:"Directory or markdown file to serve (default: current directory)"`
	Port      int    `short:"p" env:"PORT" default:"8000" help:"Port to listen on; the next 9 ports are tried if it is taken"`
	Host      string `default:"localhost" help:"Interface to listen on"`
	Exclude   string `env:"EXCLUDE_DIRS" help:"Comma-separated directory names to skip (default: ${default_exclude})"`
	NoExclude bool   `help:"Do not skip any directories"`
	Shallow   bool   `help:"Only serve markdown files in the top-level directory"`
	NoWatch   bool   `help:"Do not watch for added or removed files"`
	NoWarm    bool   `help:"Do not pre-render documents at startup"`
	Cache     string `env:"VIEWDOCS_CACHE" help:"SQLite file used to persist rendered pages between runs"`
	Style     string `help:"Code highlighting style (default: github)"`
	Config    string `help:"TOML configuration file (default: <root>/.viewdocs.toml if present)"`
	Verbose   bool   `short:"v" help:"Enable debug logging"`
}
