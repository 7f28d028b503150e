package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivePaths(t *testing.T) {
	preview, debug, printed := DerivePaths("/data/dumps/finance_checks.txt")

	assert.Equal(t, "/data/dumps/finance_checks_print.txt", preview)
	assert.Equal(t, "/data/dumps/finance_checks_debug.txt", debug)
	assert.Regexp(t, `^/data/dumps/finance_checks_printed_\d{8}_\d{2}_\d{2}\.txt$`, printed)
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	assert.Equal(t, path, UniquePath(path))

	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.Equal(t, filepath.Join(dir, "out_1.txt"), UniquePath(path))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "out_1.txt"), []byte("x"), 0644))
	assert.Equal(t, filepath.Join(dir, "out_2.txt"), UniquePath(path))
}

func TestExpandName(t *testing.T) {
	assert.Regexp(t, `^checks_register_\d{8}_\d{6}\.xlsx$`,
		ExpandName("{stem}_register_{timestamp}.xlsx", "checks"))
	assert.Regexp(t, `^reg_[0-9a-f-]{36}\.xlsx$`, ExpandName("reg_{uuid}.xlsx", ""))
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}_\d{6}$`, ExpandName("{date}_{time}", ""))
	assert.Equal(t, "plain.xlsx", ExpandName("plain.xlsx", "checks"))
}

func TestStem(t *testing.T) {
	assert.Equal(t, "report", Stem("/a/b/report.txt"))
	assert.Equal(t, "noext", Stem("noext"))
	assert.Equal(t, "archive.tar", Stem("archive.tar.gz"))
}

func TestIsGeneratedOutput(t *testing.T) {
	generated := []string{
		"x_print.txt",
		"x_debug.txt",
		"x_printed_20250807_10_30.txt",
		"x_printed_20250807_10_30_1.txt",
	}
	for _, name := range generated {
		assert.True(t, IsGeneratedOutput(name), "%s should be recognized as generated", name)
	}

	fresh := []string{"checks.txt", "reprint.txt", "debug_notes.txt"}
	for _, name := range fresh {
		assert.False(t, IsGeneratedOutput(name), "%s should not be recognized as generated", name)
	}
}

func TestDiscoverReports(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"a.txt", "b.txt", "a_print.txt", "a_debug.txt",
		"c_printed_20250807_10_30.txt", "notes.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0755))

	files, err := DiscoverReports(dir, "*.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
	}, files)
}

func TestDiscoverReports_DefaultPattern(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "r.txt"), []byte("x"), 0644))

	files, err := DiscoverReports(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "r.txt")}, files)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")

	assert.False(t, FileExists(path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.True(t, FileExists(path))
	assert.False(t, FileExists(dir))
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0644))

	require.NoError(t, MoveFile(src, dst))

	assert.False(t, FileExists(src))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}
