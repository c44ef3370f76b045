package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByExtension(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".hidden"), 0o755))

	files := map[string]string{
		"b.hcl":             "",
		"a.hcl":             "",
		"notes.txt":         "",
		"sub/c.hcl":         "",
		".hidden/skip.hcl":  "",
		"sub/ignored.hcl.x": "",
	}
	for name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	got, err := FindByExtension(dir, ".hcl")
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "a.hcl"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "sub", "c.hcl"),
	}
	assert.Equal(t, want, got)
}

func TestFindByExtension_MissingRoot(t *testing.T) {
	t.Parallel()
	_, err := FindByExtension(filepath.Join(t.TempDir(), "nope"), ".hcl")
	assert.Error(t, err)
}

func TestFindByExtension_EmptyExtensionPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		_, _ = FindByExtension(t.TempDir(), "")
	})
}
