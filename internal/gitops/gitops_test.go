package gitops

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func gitLog(t *testing.T, dir, format string) string {
	t.Helper()
	cmd := exec.Command("git", "log", "--format="+format, "-1")
	cmd.Dir = dir
	out, err := cmd.Output()
	require.NoError(t, err)
	return string(out)
}

func TestInit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	_, err := os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git directory should exist")
}

func TestIsRepo(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	assert.False(t, IsRepo(dir), "empty dir should not be a repo")

	require.NoError(t, Init(dir))
	assert.True(t, IsRepo(dir), "initialized dir should be a repo")
}

func TestCommitFile(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	ledger := filepath.Join(dir, "transactions.csv")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(ledger, []byte("2024-01-05|10:00:00|Coffee|Cafe|-4.5\n"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("untracked"), 0o644))

	author := Author{Name: "Test Author", Email: "test@example.com"}
	hash, err := CommitFile(ledger, "payment: Coffee", author)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.Contains(t, gitLog(t, dir, "%s"), "payment: Coffee")
	assert.Contains(t, gitLog(t, dir, "%an <%ae>"), author.String())

	// Only the ledger file is committed.
	ls := exec.Command("git", "ls-files")
	ls.Dir = dir
	out, err := ls.Output()
	require.NoError(t, err)
	assert.Equal(t, "transactions.csv\n", string(out))
}
