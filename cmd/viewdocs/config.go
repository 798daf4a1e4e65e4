package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/viewdocs"
)

// ConfigFile is the per-directory configuration file name.
const ConfigFile = ".viewdocs.toml"

// Config holds settings read from a TOML configuration file. Command-line
// flags take precedence over everything here.
type Config struct {
	// Title replaces the project name derived from the directory.
	Title string `toml:"title"`

	// Exclude lists directory names to skip. An empty list disables
	// exclusion; leaving it out keeps the default.
	Exclude []string `toml:"exclude"`

	// Default is the document served at "/" in directory mode.
	Default string `toml:"default"`

	// Style is the code highlighting style.
	Style string `toml:"style"`

	// Path is the file the configuration was read from, if any.
	Path string `toml:"-"`

	// Undecoded lists keys in the file that were not recognized.
	Undecoded []string `toml:"-"`

	hasExclude bool
}

// LoadConfig reads the configuration at path. An empty path looks for
// ConfigFile in root and returns an empty Config if there is none.
func LoadConfig(path, root string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, ConfigFile)
	}

	cfg := &Config{}
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return &Config{}, nil
	} else if errors.Is(err, fs.ErrNotExist) {
		return nil, viewdocs.Errorf(viewdocs.EINVALID, "config file %q does not exist", path)
	} else if err != nil {
		return nil, viewdocs.Errorf(viewdocs.EINVALID, "invalid config file %q: %v", path, err)
	}

	cfg.Path = path
	cfg.hasExclude = md.IsDefined("exclude")
	for _, key := range md.Undecoded() {
		cfg.Undecoded = append(cfg.Undecoded, key.String())
	}
	return cfg, nil
}

// ExcludeSet returns the effective exclusion set: flags first, then the
// config file, then the built-in default.
func (c *CLI) ExcludeSet(cfg *Config) viewdocs.ExcludeSet {
	switch {
	case c.NoExclude:
		return viewdocs.ExcludeSet{}
	case c.Exclude != "":
		return viewdocs.ParseExcludeSet(c.Exclude)
	case cfg.hasExclude:
		return viewdocs.ParseExcludeSet(strings.Join(cfg.Exclude, ","))
	}
	return viewdocs.ParseExcludeSet(viewdocs.DefaultExclude)
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
