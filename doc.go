// # readme-sync
//
// `readme-sync` keeps the `README.md` of every package in a Cargo workspace in
// sync with the crate-level doc comments of that package. Doc comments are the
// source of truth; READMEs are generated from them and CI can fail when the two
// drift apart.
//
// Key capabilities:
//
//   - read the `//!` and `/*! */` comments of `src/lib.rs`, falling back to
//     `src/main.rs` for binary crates.
//   - frame the result with the nearest `README.tpl`, searched from the package
//     directory up to the workspace root, using the `{{readme}}`, `{{crate}}`,
//     `{{version}}` and `{{license}}` tags.
//   - rewrite relative rustdoc links (`../other_crate/index.html`,
//     `./struct.Foo.html`) into absolute documentation URLs.
//   - check mode: byte-for-byte comparison of each README with a freshly
//     generated one, without writing anything.
//   - generate mode: `if-missing`, `overwrite` or `append` merge policies, plus
//     `readme = "README.md"` recorded in each package's `Cargo.toml`.
//
// ## Usage
//
//	readme-sync [--manifest-path Cargo.toml] [-p NAME]... check
//	readme-sync [--manifest-path Cargo.toml] [-p NAME]... generate --mode overwrite
//
// Examples:
//
//   - Fail CI when a README is stale:
//
//     readme-sync check
//
//   - Regenerate the README of one package:
//
//     readme-sync -p my-crate generate --mode overwrite
//
//   - Preview what would be written:
//
//     readme-sync generate --mode append --dry-run
//
// ## Links
//
// Markdown inline links whose target starts with `../` are read as a sibling
// crate at the documentation host root: `[Foo](../bar_baz/index.html)` becomes
// `[Foo](https://docs.rs/bar-baz)`. Targets starting with `./` point into the
// crate's own docs: for `my-crate`, `[Foo](./quux.html "See also")` becomes
// `[Foo](https://docs.rs/my-crate/latest/my_crate/quux.html "See also")`. Any
// other link is left untouched.
//
// The host is the package's `documentation` field when set, otherwise
// `--doc-url-default` (default `https://docs.rs/`).
//
// ## Configuration
//
// Flags override `READMESYNC_*` environment variables, which override values
// from `.env`/`.env.local`, which override `.readme-sync.yaml` in the
// workspace root or home directory:
//
//	mode: overwrite
//	format: json
//	doc_url_default: https://docs.internal.example/
//	fail_fast: true
//
// ## Shell Completion
//
//	readme-sync completion bash        # bash
//	readme-sync completion zsh         # zsh
//	readme-sync completion fish | source
//	readme-sync completion powershell | Out-String | Invoke-Expression
//
// ## CLI Docs
//
//	readme-sync gen-docs ./docs/cli
//
// Every command becomes its own Markdown file under the provided directory.
package main
