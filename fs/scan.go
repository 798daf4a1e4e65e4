package fs

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fwojciec/viewdocs"
)

// ScanOptions controls which files Scan collects.
type ScanOptions struct {
	// Shallow limits directory mode to the root directory itself.
	Shallow bool

	// Exclude lists directory names that are never descended into.
	Exclude viewdocs.ExcludeSet
}

// Scan returns the slash-separated paths, relative to the target root, of
// every markdown document in the target, in navigation order.
func Scan(ctx context.Context, target *viewdocs.Target, opts ScanOptions) ([]string, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	if target.Mode == viewdocs.ModeFile {
		return []string{target.DefaultFile}, nil
	}

	var paths []string
	err := filepath.WalkDir(target.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries below the root are skipped.
			if p == target.Root {
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if p == target.Root {
				return nil
			}
			if opts.Shallow || opts.Exclude.Contains(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}

		if !viewdocs.IsMarkdown(d.Name()) || !(d.Type().IsRegular() || d.Type()&fs.ModeSymlink != 0) {
			return nil
		}

		rel, err := filepath.Rel(target.Root, p)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", target.Root, err)
	}

	viewdocs.SortPaths(paths)
	return paths, nil
}
