package readme

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// newFS returns an in-memory filesystem holding the files of a txtar
// archive.
func newFS(t *testing.T, archive string) billy.Filesystem {
	t.Helper()
	fsys := memfs.New()
	for _, f := range txtar.Parse([]byte(archive)).Files {
		require.NoError(t, util.WriteFile(fsys, f.Name, f.Data, 0o644))
	}
	return fsys
}

func readFile(t *testing.T, fsys billy.Filesystem, path string) string {
	t.Helper()
	data, err := util.ReadFile(fsys, path)
	require.NoError(t, err)
	return string(data)
}

func exists(fsys billy.Filesystem, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// echoRenderer returns the entrypoint verbatim, substituted into the
// template's {{readme}} tag when a template is given.
type echoRenderer struct {
	calls int
	opts  []RenderOptions
	err   error
}

func (r *echoRenderer) Render(_ Package, entrypoint io.Reader, template io.Reader, opts RenderOptions) (string, error) {
	r.calls++
	r.opts = append(r.opts, opts)
	if r.err != nil {
		return "", r.err
	}
	body, err := io.ReadAll(entrypoint)
	if err != nil {
		return "", err
	}
	if template == nil {
		return string(body), nil
	}
	tpl, err := io.ReadAll(template)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(tpl), "{{readme}}", string(body)), nil
}

type recordingManifest struct {
	updated []string
	err     error
}

func (m *recordingManifest) SetReadme(_ context.Context, pkg Package, file string) error {
	if m.err != nil {
		return m.err
	}
	m.updated = append(m.updated, pkg.Name+"="+file)
	return nil
}

type recordingStatus struct {
	lines []string
}

func (s *recordingStatus) Status(verb, message string) {
	s.lines = append(s.lines, verb+" "+message)
}

var errBoom = errors.New("boom")
