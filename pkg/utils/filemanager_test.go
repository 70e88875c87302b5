package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestExpandName(t *testing.T) {
	plain := ExpandName("report.txt")
	assert.Equal(t, "report.txt", plain)

	stamped := ExpandName("report_{timestamp}.txt")
	assert.True(t, strings.HasPrefix(stamped, "report_"))
	assert.True(t, strings.HasSuffix(stamped, ".txt"))
	assert.False(t, strings.Contains(stamped, "{timestamp}"))

	unique := ExpandName("report_{uuid}.txt")
	assert.False(t, strings.Contains(unique, "{uuid}"))
	// Two expansions never collide.
	assert.NotEqual(t, unique, ExpandName("report_{uuid}.txt"))
}

func TestOutputManagerWriteReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	m := NewOutputManager(dir)

	assert.NoError(t, m.EnsureDir())

	path, err := m.WriteReport("summary.txt", "hello report\n")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "summary.txt"), path)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "hello report\n", string(data))
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	assert.False(t, FileExists(path))

	assert.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.True(t, FileExists(path))
}
