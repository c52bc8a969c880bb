// Package render turns the crate-level doc comments of a Rust entrypoint
// into a README body.
//
// The rendering follows cargo-readme: `//!` and `/*! */` comments before the
// first item are the document; Rust code fences are normalised to
// ```rust and lose their hidden `# ` lines; an optional README.tpl frames
// the result through the {{readme}}, {{crate}}, {{version}} and
// {{license}} tags.
package render
