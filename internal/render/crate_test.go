package render

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/readme-sync/internal/readme"
)

var pkgFoo = readme.Package{Name: "foo", Version: "1.2.3", License: "MIT OR Apache-2.0"}

const libSource = "//! # Foo\n" +
	"//!\n" +
	"//! Does things with [Bar](../bar/index.html).\n" +
	"//!\n" +
	"//! ```\n" +
	"//! # use foo::x;\n" +
	"//! let x = 1;\n" +
	"//! ##[derive(Debug)]\n" +
	"//! ```\n" +
	"#![deny(missing_docs)]\n" +
	"\n" +
	"pub fn f() {}\n" +
	"//! after the first item\n"

func render(t *testing.T, src string, tpl io.Reader, opts readme.RenderOptions) string {
	t.Helper()
	out, err := Crate{}.Render(pkgFoo, strings.NewReader(src), tpl, opts)
	require.NoError(t, err)
	return out
}

func TestRenderPlain(t *testing.T) {
	got := render(t, libSource, nil, readme.RenderOptions{License: true})
	want := "# Foo\n" +
		"\n" +
		"Does things with [Bar](../bar/index.html).\n" +
		"\n" +
		"```rust\n" +
		"let x = 1;\n" +
		"#[derive(Debug)]\n" +
		"```\n" +
		"\n" +
		"License: MIT OR Apache-2.0\n"
	assert.Equal(t, want, got)
}

func TestRenderOptions(t *testing.T) {
	src := "//! # Heading\n//! text\n"
	tests := []struct {
		name string
		pkg  readme.Package
		opts readme.RenderOptions
		want string
	}{
		{
			name: "no options",
			pkg:  pkgFoo,
			want: "# Heading\ntext\n",
		},
		{
			name: "title",
			pkg:  pkgFoo,
			opts: readme.RenderOptions{Title: true},
			want: "# foo\n\n# Heading\ntext\n",
		},
		{
			name: "indented headings",
			pkg:  pkgFoo,
			opts: readme.RenderOptions{IndentHeadings: true},
			want: "## Heading\ntext\n",
		},
		{
			name: "license requested but unset",
			pkg:  readme.Package{Name: "foo"},
			opts: readme.RenderOptions{License: true},
			want: "# Heading\ntext\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Crate{}.Render(tt.pkg, strings.NewReader(src), nil, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderTemplate(t *testing.T) {
	tpl := "# {{crate}} {{version}}\n\n{{readme}}\n\nLicense: {{license}}\n\n\n"
	got := render(t, "//! Hello.\n", strings.NewReader(tpl), readme.RenderOptions{License: true})
	assert.Equal(t, "# foo 1.2.3\n\nHello.\n\nLicense: MIT OR Apache-2.0\n", got)
}

func TestRenderTemplateDropsBadges(t *testing.T) {
	got := render(t, "//! Hello.\n", strings.NewReader("{{badges}}# {{crate}}\n\n{{readme}}\n"), readme.RenderOptions{})
	assert.Equal(t, "# foo\n\nHello.\n", got)
}

func TestRenderTemplateErrors(t *testing.T) {
	_, err := Crate{}.Render(pkgFoo, strings.NewReader("//! x\n"), strings.NewReader("# {{crate}}\n"), readme.RenderOptions{})
	assert.ErrorIs(t, err, errMissingReadmeTag)

	noLicense := readme.Package{Name: "foo"}
	_, err = Crate{}.Render(noLicense, strings.NewReader("//! x\n"), strings.NewReader("{{readme}}\n{{license}}\n"), readme.RenderOptions{})
	assert.ErrorIs(t, err, errMissingLicense)
}

func TestRenderUnclosedFence(t *testing.T) {
	_, err := Crate{}.Render(pkgFoo, strings.NewReader("//! ```\n//! let x = 1;\n"), nil, readme.RenderOptions{})
	assert.ErrorIs(t, err, errUnclosedFence)
}

func TestRenderEmptyDoc(t *testing.T) {
	assert.Equal(t, "\n", render(t, "fn main() {}\n", nil, readme.RenderOptions{}))
}
