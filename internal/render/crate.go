package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/agentflare-ai/readme-sync/internal/readme"
)

const (
	tagReadme  = "{{readme}}"
	tagCrate   = "{{crate}}"
	tagVersion = "{{version}}"
	tagLicense = "{{license}}"
	tagBadges  = "{{badges}}"
)

var (
	errMissingReadmeTag = errors.New("missing " + tagReadme + " tag in template")
	errMissingLicense   = errors.New(tagLicense + " was found in template but no license was provided")
)

// Crate renders READMEs from Rust crate doc comments. Its errors are plain;
// the engine attributes them to the entrypoint as render failures.
type Crate struct{}

// Render implements readme.Renderer.
func (Crate) Render(pkg readme.Package, entrypoint io.Reader, template io.Reader, opts readme.RenderOptions) (string, error) {
	doc, err := extractDoc(entrypoint)
	if err != nil {
		return "", err
	}
	lines, err := processDoc(doc, opts.IndentHeadings)
	if err != nil {
		return "", err
	}
	body := strings.Join(lines, "\n")

	if template == nil {
		return finish(plain(pkg, body, opts)), nil
	}
	raw, err := io.ReadAll(template)
	if err != nil {
		return "", fmt.Errorf("reading template: %w", err)
	}
	out, err := fill(string(raw), pkg, body)
	if err != nil {
		return "", err
	}
	return finish(out), nil
}

func plain(pkg readme.Package, body string, opts readme.RenderOptions) string {
	var b strings.Builder
	if opts.Title {
		fmt.Fprintf(&b, "# %s\n\n", pkg.Name)
	}
	b.WriteString(body)
	if opts.License && pkg.License != "" {
		fmt.Fprintf(&b, "\n\nLicense: %s", pkg.License)
	}
	return b.String()
}

func fill(tpl string, pkg readme.Package, body string) (string, error) {
	if !strings.Contains(tpl, tagReadme) {
		return "", errMissingReadmeTag
	}
	if strings.Contains(tpl, tagLicense) && pkg.License == "" {
		return "", errMissingLicense
	}
	r := strings.NewReplacer(
		tagCrate, pkg.Name,
		tagVersion, pkg.Version,
		tagLicense, pkg.License,
		tagBadges, "",
		tagReadme, body,
	)
	return r.Replace(tpl), nil
}

// finish ends the document with exactly one newline.
func finish(s string) string {
	return strings.TrimRight(s, "\n") + "\n"
}
