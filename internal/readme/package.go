package readme

import "path/filepath"

// ReadmeFile is the README file name, relative to a package root. It is
// also the value written into the manifest's readme field.
const ReadmeFile = "README.md"

// Package is a workspace member whose README is managed.
type Package struct {
	// Name is unique within the workspace.
	Name string
	// Dir is the package root, relative to the workspace filesystem.
	Dir string
	// DocURL is the declared documentation base URL, if any.
	DocURL string
	// Version and License are exposed to README templates.
	Version string
	License string
	// ManifestPath is the package manifest, relative to the workspace
	// filesystem.
	ManifestPath string
	// ReadmeDisabled is set when the manifest opts out with readme = false.
	ReadmeDisabled bool
}

// ReadmePath returns the path of the package README.
func (p Package) ReadmePath() string {
	return filepath.Join(p.Dir, ReadmeFile)
}
