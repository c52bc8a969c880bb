package cargo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/agentflare-ai/readme-sync/internal/readme"
)

// Workspace is a loaded Cargo workspace, or a single package treated as a
// workspace of one.
type Workspace struct {
	// Root is the directory of the root manifest.
	Root string
	// Packages are the members, root package first, then members in the
	// order their patterns appear in [workspace].members.
	Packages []readme.Package
}

// Load reads the manifest at manifestPath and returns its workspace.
func Load(fsys billy.Filesystem, manifestPath string) (*Workspace, error) {
	manifestPath = filepath.Clean(manifestPath)
	root := filepath.Dir(manifestPath)
	m, err := readManifest(fsys, manifestPath)
	if err != nil {
		return nil, err
	}
	ws := &Workspace{Root: root}

	var inherited inheritedFields
	if m.Workspace != nil {
		inherited = m.Workspace.Package
	}
	if m.Package != nil {
		pkg, err := m.toPackage(manifestPath, inherited)
		if err != nil {
			return nil, err
		}
		ws.Packages = append(ws.Packages, pkg)
	}
	if m.Workspace == nil {
		if m.Package == nil {
			return nil, &ManifestError{Path: manifestPath, Err: ErrNoPackage}
		}
		return ws, nil
	}

	dirs, err := memberDirs(fsys, root, m.Workspace.Members, m.Workspace.Exclude)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{root: {}}
	for _, dir := range dirs {
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		path := filepath.Join(dir, ManifestFile)
		member, err := readManifest(fsys, path)
		if err != nil {
			return nil, err
		}
		pkg, err := member.toPackage(path, inherited)
		if err != nil {
			return nil, err
		}
		ws.Packages = append(ws.Packages, pkg)
	}
	return ws, nil
}

// Select returns the packages named in names, in workspace order. An empty
// names selects every package.
func (w *Workspace) Select(names []string) ([]readme.Package, error) {
	if len(names) == 0 {
		return w.Packages, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = false
	}
	var out []readme.Package
	for _, pkg := range w.Packages {
		if _, ok := want[pkg.Name]; ok {
			want[pkg.Name] = true
			out = append(out, pkg)
		}
	}
	var missing []string
	for n, found := range want {
		if !found {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("package(s) not found in workspace: %s", strings.Join(missing, ", "))
	}
	return out, nil
}

// memberDirs expands member patterns into package directories. Every
// pattern contributes its matches in lexical order; directories matching an
// exclude pattern or lacking a manifest are dropped.
func memberDirs(fsys billy.Filesystem, root string, members, exclude []string) ([]string, error) {
	candidates, err := manifestDirs(fsys, root)
	if err != nil {
		return nil, err
	}
	for _, p := range append(append([]string{}, members...), exclude...) {
		if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
			return nil, fmt.Errorf("invalid workspace pattern %q", p)
		}
	}
	var out []string
	for _, pattern := range members {
		pattern = cleanPattern(pattern)
		for _, rel := range candidates {
			if !doublestar.MatchUnvalidated(pattern, rel) || excluded(rel, exclude) {
				continue
			}
			out = append(out, filepath.Join(root, filepath.FromSlash(rel)))
		}
	}
	return out, nil
}

func excluded(rel string, exclude []string) bool {
	for _, pattern := range exclude {
		pattern = cleanPattern(pattern)
		if rel == pattern || doublestar.MatchUnvalidated(pattern, rel) || strings.HasPrefix(rel, pattern+"/") {
			return true
		}
	}
	return false
}

func cleanPattern(p string) string {
	p = filepath.ToSlash(filepath.Clean(p))
	return strings.TrimPrefix(p, "./")
}

// manifestDirs lists, relative to root and slash-separated, every directory
// below root that holds a manifest. Hidden directories and target/ are not
// descended into.
func manifestDirs(fsys billy.Filesystem, root string) ([]string, error) {
	var dirs []string
	err := util.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if !info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		name := info.Name()
		if strings.HasPrefix(name, ".") || name == "target" {
			return filepath.SkipDir
		}
		if _, err := fsys.Stat(filepath.Join(path, ManifestFile)); err == nil {
			dirs = append(dirs, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking workspace %s: %w", root, err)
	}
	sort.Strings(dirs)
	return dirs, nil
}
