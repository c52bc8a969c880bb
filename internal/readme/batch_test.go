package readme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const batchArchive = `
-- a/src/lib.rs --
//! Alpha.
-- a/README.md --
//! Alpha.
-- b/Cargo.toml --
-- c/src/main.rs --
//! Gamma.
`

var batchPkgs = []Package{
	{Name: "a", Dir: "a"},
	{Name: "b", Dir: "b"},
	{Name: "c", Dir: "c"},
}

func TestCheckAllContinuesPastFailures(t *testing.T) {
	e, _, _ := newEngine(t, batchArchive)
	b := &Batch{Engine: e}

	outcomes, err := b.CheckAll(context.Background(), batchPkgs)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	assert.Equal(t, "Up-to-date", outcomes[0].Status())
	assert.False(t, outcomes[0].Failed())

	assert.Equal(t, "Failed", outcomes[1].Status())
	assert.ErrorIs(t, outcomes[1].Err, ErrEntrypointNotFound)

	assert.Equal(t, Missing, outcomes[2].Result)
	assert.True(t, outcomes[2].Failed())
	assert.Equal(t, "c/README.md", outcomes[2].Readme)

	failures := Failures(outcomes)
	require.Error(t, failures)
	assert.ErrorIs(t, failures, ErrEntrypointNotFound)
	assert.ErrorIs(t, failures, ErrReadmeMissing)
	assert.Contains(t, failures.Error(), "c: Missing")
}

func TestGenerateAllFailFast(t *testing.T) {
	e, _, _ := newEngine(t, batchArchive)
	b := &Batch{Engine: e, FailFast: true}

	outcomes, err := b.GenerateAll(context.Background(), batchPkgs, Overwrite)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEntrypointNotFound)
	require.Len(t, outcomes, 2)
	assert.Equal(t, "Replaced", outcomes[0].Status())
	assert.False(t, exists(e.fs, "c/README.md"))
}

func TestGenerateAllKeepsGoing(t *testing.T) {
	e, _, m := newEngine(t, batchArchive)
	b := &Batch{Engine: e}

	outcomes, err := b.GenerateAll(context.Background(), batchPkgs, IfMissing)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)
	assert.Equal(t, Kept, outcomes[0].Action)
	assert.Equal(t, Created, outcomes[2].Action)
	assert.Equal(t, "//! Gamma.\n", readFile(t, e.fs, "c/README.md"))
	assert.Equal(t, []string{"a=README.md", "c=README.md"}, m.updated)

	failures := Failures(outcomes)
	require.Error(t, failures)
	assert.NotContains(t, failures.Error(), "a:")
}

func TestGenerateAllDryRun(t *testing.T) {
	e, _, m := newEngine(t, batchArchive)
	b := &Batch{Engine: e, DryRun: true}

	outcomes, err := b.GenerateAll(context.Background(), []Package{batchPkgs[2]}, Overwrite)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, Created, outcomes[0].Action)
	assert.Equal(t, "//! Gamma.\n", string(outcomes[0].Content))
	assert.False(t, exists(e.fs, "c/README.md"))
	assert.Empty(t, m.updated)
	assert.NoError(t, Failures(outcomes))
}

func TestBatchStopsOnCancel(t *testing.T) {
	e, _, _ := newEngine(t, batchArchive)
	b := &Batch{Engine: e}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	outcomes, err := b.CheckAll(ctx, batchPkgs)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, outcomes)
}

func TestFailuresEmpty(t *testing.T) {
	assert.NoError(t, Failures(nil))
	assert.NoError(t, Failures([]Outcome{{Package: "a", Result: UpToDate}, {Package: "b", Result: Skipped}}))
}
