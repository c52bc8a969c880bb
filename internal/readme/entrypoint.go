package readme

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
)

// SourceDir is the conventional source subdirectory of a package.
const SourceDir = "src"

// entrypoints are tried in order: library documentation wins over
// executable documentation.
var entrypoints = []string{"lib.rs", "main.rs"}

// FindEntrypoint returns the path of the file whose doc comments seed the
// README of the package rooted at pkgDir.
func FindEntrypoint(fsys billy.Filesystem, pkgDir string) (string, error) {
	for _, name := range entrypoints {
		candidate := filepath.Join(pkgDir, SourceDir, name)
		info, err := fsys.Stat(candidate)
		switch {
		case err == nil:
			if info.IsDir() {
				continue
			}
			return candidate, nil
		case errors.Is(err, os.ErrNotExist):
			continue
		default:
			return "", &IOError{Operation: "stat", Path: candidate, Err: err}
		}
	}
	return "", ErrEntrypointNotFound
}
