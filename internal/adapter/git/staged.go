// Package git discovers staged files in the working repository so the CLI
// can gate a commit without explicit path arguments.
package git

import (
	"fmt"
	"sort"

	goGit "github.com/go-git/go-git/v5"
)

// Engine lists staged files using go-git.
type Engine struct {
	repoDir string
}

// NewEngine constructs a Git engine for the provided repository directory.
func NewEngine(repoDir string) *Engine {
	return &Engine{repoDir: repoDir}
}

// StagedFiles returns the paths of files staged for commit (added or
// modified in the index), relative to the repository root, sorted for
// deterministic review order. Deleted files are excluded: there is nothing
// left to review.
func (e *Engine) StagedFiles() ([]string, error) {
	repo, err := goGit.PlainOpenWithOptions(e.repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repo: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("read status: %w", err)
	}

	var paths []string
	for path, fileStatus := range status {
		switch fileStatus.Staging {
		case goGit.Added, goGit.Modified, goGit.Renamed, goGit.Copied:
			paths = append(paths, path)
		}
	}

	sort.Strings(paths)
	return paths, nil
}
