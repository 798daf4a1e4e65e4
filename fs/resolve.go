// Package fs resolves the served target and reads markdown documents from
// the local filesystem.
package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/viewdocs"
)

// Resolve turns the command-line argument into a validated Target.
//
// An empty argument serves the current working directory. A directory is
// served in directory mode with README.md as the default document. A
// markdown file is served in file mode from its parent directory.
// A missing path or a file that is not markdown returns EINVALID.
func Resolve(arg string) (*viewdocs.Target, error) {
	if arg == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		arg = wd
	}

	abs, err := filepath.Abs(arg)
	if err != nil {
		return nil, viewdocs.Errorf(viewdocs.EINVALID, "invalid path %q: %v", arg, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, viewdocs.Errorf(viewdocs.EINVALID, "path %q does not exist", arg)
	}

	var target *viewdocs.Target
	switch {
	case info.IsDir():
		target = &viewdocs.Target{
			Root:        abs,
			Mode:        viewdocs.ModeDirectory,
			DefaultFile: viewdocs.DefaultFile,
		}
	case viewdocs.IsMarkdown(abs):
		target = &viewdocs.Target{
			Root:        filepath.Dir(abs),
			Mode:        viewdocs.ModeFile,
			DefaultFile: filepath.Base(abs),
		}
	default:
		return nil, viewdocs.Errorf(viewdocs.EINVALID, "path %q is not a directory or markdown file", arg)
	}

	if err := target.Validate(); err != nil {
		return nil, err
	}
	return target, nil
}
