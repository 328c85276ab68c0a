package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Collect walks root depth-first and returns the files to scan, in
// lexical directory-entry order. Built-in exclusions always apply; cfg adds
// include/exclude globs, the ignore matcher and the size cap. The root
// directory itself is never excluded by name. Unreadable entries are
// skipped. Symlinks to regular files are collected under the link's own
// path; symlinked directories are not descended into.
func Collect(ctx context.Context, root string, cfg Config) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("collect %s: not a directory", root)
	}
	log := cfg.logger()

	var out []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			log.Debugw("skip unreadable entry", "path", p, "error", err)
			if d != nil && d.IsDir() && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != root && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		size := int64(-1)
		switch {
		case d.Type().IsRegular():
		case d.Type()&fs.ModeSymlink != 0:
			fi, serr := os.Stat(p)
			if serr != nil || !fi.Mode().IsRegular() {
				return nil
			}
			size = fi.Size()
		default:
			return nil
		}
		rel, rerr := filepath.Rel(root, p)
		if rerr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !isTargetFile(d.Name()) || isDefaultFileExcluded(rel) {
			return nil
		}
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		if cfg.Ignore.Match(rel) {
			return nil
		}
		if cfg.MaxBytes > 0 {
			if size < 0 {
				if fi, ierr := d.Info(); ierr == nil {
					size = fi.Size()
				}
			}
			if size > cfg.MaxBytes {
				log.Debugw("skip oversized file", "path", rel, "size", size)
				return nil
			}
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return out, err
		}
		return out, fmt.Errorf("collect %s: %w", root, err)
	}
	return out, nil
}

// Select applies Collect's file policy to root-relative paths obtained
// elsewhere (for example from git) and returns the surviving ones joined to
// root, preserving input order. Paths that no longer exist are dropped.
func Select(root string, rels []string, cfg Config) []string {
	var out []string
	for _, rel := range rels {
		rel = filepath.ToSlash(filepath.Clean(rel))
		if !Eligible(rel) || !allowedByGlobs(rel, cfg) || cfg.Ignore.Match(rel) {
			continue
		}
		p := filepath.Join(root, filepath.FromSlash(rel))
		fi, err := os.Stat(p)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		if cfg.MaxBytes > 0 && fi.Size() > cfg.MaxBytes {
			continue
		}
		out = append(out, p)
	}
	return out
}
