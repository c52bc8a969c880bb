// Package readme keeps a package's README.md in sync with the crate-level doc
// comments of its entrypoint source file.
//
// The package resolves the entrypoint (src/lib.rs, then src/main.rs) and the
// nearest README.tpl template, hands both to a [Renderer], rewrites relative
// rustdoc links into absolute documentation URLs, and then either compares
// the candidate against the README on disk ([Engine.Check]) or writes it
// under a merge policy ([Engine.Generate]).
//
// All file access goes through a billy.Filesystem rooted at the workspace
// root, so package directories are workspace-relative paths.
package readme
