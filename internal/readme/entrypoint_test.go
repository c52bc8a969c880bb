package readme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindEntrypointPrefersLibrary(t *testing.T) {
	fsys := newFS(t, `
-- foo/src/lib.rs --
//! lib
-- foo/src/main.rs --
//! main
`)
	path, err := FindEntrypoint(fsys, "foo")
	require.NoError(t, err)
	assert.Equal(t, "foo/src/lib.rs", path)
}

func TestFindEntrypointFallsBackToMain(t *testing.T) {
	fsys := newFS(t, `
-- foo/src/main.rs --
//! main
`)
	path, err := FindEntrypoint(fsys, "foo")
	require.NoError(t, err)
	assert.Equal(t, "foo/src/main.rs", path)
}

func TestFindEntrypointSkipsDirectories(t *testing.T) {
	fsys := newFS(t, `
-- foo/src/lib.rs/mod.rs --
-- foo/src/main.rs --
fn main() {}
`)
	path, err := FindEntrypoint(fsys, "foo")
	require.NoError(t, err)
	assert.Equal(t, "foo/src/main.rs", path)
}

func TestFindEntrypointNotFound(t *testing.T) {
	fsys := newFS(t, `
-- foo/src/other.rs --
-- foo/lib.rs --
`)
	_, err := FindEntrypoint(fsys, "foo")
	assert.ErrorIs(t, err, ErrEntrypointNotFound)
	assert.True(t, IsEntrypointNotFound(err))
}
