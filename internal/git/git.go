// Package git discovers repository state with go-git: the files changed in
// the working tree and basic repository metadata.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when root is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// validateRoot validates and normalizes a repository root path.
// Returns the cleaned absolute path or an error if invalid.
func validateRoot(root string) (string, error) {
	if strings.ContainsRune(root, 0) {
		return "", fmt.Errorf("invalid path: contains null byte")
	}
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}
	return abs, nil
}

func realPath(p string) string {
	if r, err := filepath.EvalSymlinks(p); err == nil {
		return r
	}
	return p
}

func open(root string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(root, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", root, ErrNotRepository)
		}
		return nil, err
	}
	return repo, nil
}

// ChangedFiles returns files under root that are modified, added, renamed
// or untracked in the working tree or index, as slash-separated paths
// relative to root, sorted. Deleted files are omitted.
func ChangedFiles(root string) ([]string, error) {
	validRoot, err := validateRoot(root)
	if err != nil {
		return nil, err
	}
	repo, err := open(validRoot)
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("worktree: %w", err)
	}
	st, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	wtRoot := realPath(wt.Filesystem.Root())
	base := realPath(validRoot)

	var out []string
	for p, fs := range st {
		if fs.Worktree == gogit.Deleted || (fs.Staging == gogit.Deleted && fs.Worktree != gogit.Untracked) {
			continue
		}
		if fs.Worktree == gogit.Unmodified && fs.Staging == gogit.Unmodified {
			continue
		}
		rel, err := filepath.Rel(base, filepath.Join(wtRoot, filepath.FromSlash(p)))
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out, nil
}

// Metadata describes the repository a scan ran in. Fields are empty when
// unknown.
type Metadata struct {
	Repo   string
	Commit string
	Branch string
}

// RepoMetadata returns best-effort repository metadata for root. The zero
// value is returned when root is not a repository.
func RepoMetadata(root string) Metadata {
	validRoot, err := validateRoot(root)
	if err != nil {
		return Metadata{}
	}
	repo, err := open(validRoot)
	if err != nil {
		return Metadata{}
	}
	var md Metadata
	if head, err := repo.Head(); err == nil {
		md.Commit = head.Hash().String()
		if head.Name().IsBranch() {
			md.Branch = head.Name().Short()
		}
	}
	if remote, err := repo.Remote("origin"); err == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			md.Repo = shortRepo(urls[0])
		}
	}
	return md
}

// shortRepo reduces a remote URL to owner/name when possible.
func shortRepo(u string) string {
	s := strings.TrimSuffix(strings.TrimSpace(u), ".git")
	if i := strings.Index(s, "github.com/"); i >= 0 {
		return s[i+len("github.com/"):]
	}
	if i := strings.LastIndex(s, ":"); i >= 0 && !strings.Contains(s[i:], "//") {
		return s[i+1:]
	}
	return s
}
