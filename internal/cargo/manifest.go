// Package cargo discovers the members of a Cargo workspace and records the
// README file name in their manifests.
package cargo

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pelletier/go-toml/v2"

	"github.com/agentflare-ai/readme-sync/internal/readme"
)

// ManifestFile is the name of a package or workspace manifest.
const ManifestFile = "Cargo.toml"

// ErrNoPackage indicates a manifest without a [package] table where one is
// required.
var ErrNoPackage = errors.New("manifest has no [package] table")

// ManifestError represents a manifest that could not be read or parsed.
type ManifestError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *ManifestError) Error() string {
	return fmt.Sprintf("manifest %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ManifestError) Unwrap() error {
	return e.Err
}

type manifest struct {
	Package   *packageTable   `toml:"package"`
	Workspace *workspaceTable `toml:"workspace"`
}

// packageTable fields that may be inherited from [workspace.package] are
// decoded loosely: either a string or { workspace = true }.
type packageTable struct {
	Name          string `toml:"name"`
	Version       any    `toml:"version"`
	License       any    `toml:"license"`
	Documentation any    `toml:"documentation"`
	Readme        any    `toml:"readme"`
}

type workspaceTable struct {
	Members []string        `toml:"members"`
	Exclude []string        `toml:"exclude"`
	Package inheritedFields `toml:"package"`
}

type inheritedFields struct {
	Version       string `toml:"version"`
	License       string `toml:"license"`
	Documentation string `toml:"documentation"`
}

func readManifest(fsys billy.Filesystem, path string) (*manifest, error) {
	data, err := util.ReadFile(fsys, path)
	if err != nil {
		return nil, &ManifestError{Path: path, Err: err}
	}
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, &ManifestError{Path: path, Err: err}
	}
	return &m, nil
}

// toPackage builds a readme.Package from the [package] table of the
// manifest at path. inherited supplies [workspace.package] values.
func (m *manifest) toPackage(path string, inherited inheritedFields) (readme.Package, error) {
	if m.Package == nil {
		return readme.Package{}, &ManifestError{Path: path, Err: ErrNoPackage}
	}
	if m.Package.Name == "" {
		return readme.Package{}, &ManifestError{Path: path, Err: errors.New("package has no name")}
	}
	disabled := false
	if b, ok := m.Package.Readme.(bool); ok && !b {
		disabled = true
	}
	return readme.Package{
		Name:           m.Package.Name,
		Dir:            filepath.Dir(path),
		DocURL:         inheritable(m.Package.Documentation, inherited.Documentation),
		Version:        inheritable(m.Package.Version, inherited.Version),
		License:        inheritable(m.Package.License, inherited.License),
		ManifestPath:   path,
		ReadmeDisabled: disabled,
	}, nil
}

func inheritable(v any, fallback string) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if ws, ok := val["workspace"].(bool); ok && ws {
			return fallback
		}
	}
	return ""
}
