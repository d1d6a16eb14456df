package git_test

import (
	"os"
	"path/filepath"
	"testing"

	goGit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/smart-code-reviewer/internal/adapter/git"
)

func initRepo(t *testing.T) (string, *goGit.Worktree) {
	t.Helper()

	dir := t.TempDir()
	repo, err := goGit.PlainInit(dir, false)
	require.NoError(t, err)

	worktree, err := repo.Worktree()
	require.NoError(t, err)

	return dir, worktree
}

func stage(t *testing.T, dir string, worktree *goGit.Worktree, name, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	_, err := worktree.Add(name)
	require.NoError(t, err)
}

func TestStagedFiles_ListsStagedSorted(t *testing.T) {
	dir, worktree := initRepo(t)
	stage(t, dir, worktree, "zeta.py", "print('z')")
	stage(t, dir, worktree, "alpha.go", "package alpha")

	engine := git.NewEngine(dir)
	paths, err := engine.StagedFiles()

	require.NoError(t, err)
	assert.Equal(t, []string{"alpha.go", "zeta.py"}, paths)
}

func TestStagedFiles_IgnoresUnstaged(t *testing.T) {
	dir, worktree := initRepo(t)
	stage(t, dir, worktree, "staged.py", "print('s')")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.py"), []byte("print('u')"), 0644))

	engine := git.NewEngine(dir)
	paths, err := engine.StagedFiles()

	require.NoError(t, err)
	assert.Equal(t, []string{"staged.py"}, paths)
}

func TestStagedFiles_EmptyIndex(t *testing.T) {
	dir, _ := initRepo(t)

	engine := git.NewEngine(dir)
	paths, err := engine.StagedFiles()

	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestStagedFiles_NotARepo(t *testing.T) {
	engine := git.NewEngine(t.TempDir())

	_, err := engine.StagedFiles()
	assert.Error(t, err)
}
