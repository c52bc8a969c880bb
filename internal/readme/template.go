package readme

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// TemplateFile is the name of the README template looked up by FindTemplate.
const TemplateFile = "README.tpl"

// FindTemplate searches for TemplateFile starting at pkgDir and walking up
// through its parents. The walk stops at root, which is itself checked. It
// returns false when no template exists up to and including root.
func FindTemplate(fsys billy.Filesystem, root, pkgDir string) (string, bool) {
	root = filepath.Clean(root)
	cur := filepath.Clean(pkgDir)
	for {
		candidate := filepath.Join(cur, TemplateFile)
		if info, err := fsys.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		if cur == root {
			return "", false
		}
		parent := filepath.Dir(cur)
		if parent == cur || !within(root, parent) {
			return "", false
		}
		cur = parent
	}
}

// within reports whether path is root or one of its descendants.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
