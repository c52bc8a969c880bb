package readme

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/agentflare-ai/readme-sync/internal/logging"
)

// RenderOptions are the flags handed to a Renderer. The engine always passes
// the same fixed set (License only) to Check and Generate; Title and
// IndentHeadings stay off and exist for Renderer implementations and their
// callers outside the engine.
type RenderOptions struct {
	// Title prepends a "# <name>" heading when no template is used.
	Title bool
	// License appends a "License: <license>" line when no template is used.
	License bool
	// IndentHeadings pushes every doc heading down one level.
	IndentHeadings bool
}

// renderOptions is used for both Check and Generate so that their output
// compares byte for byte.
var renderOptions = RenderOptions{License: true}

// Renderer turns the doc comments of an entrypoint into a README body.
// template is nil when no template applies.
type Renderer interface {
	Render(pkg Package, entrypoint io.Reader, template io.Reader, opts RenderOptions) (string, error)
}

// ManifestUpdater records the README file name in a package manifest.
type ManifestUpdater interface {
	SetReadme(ctx context.Context, pkg Package, file string) error
}

// StatusWriter receives human-readable progress lines.
type StatusWriter interface {
	Status(verb, message string)
}

// Engine checks and generates package READMEs.
type Engine struct {
	fs       billy.Filesystem
	root     string
	renderer Renderer
	manifest ManifestUpdater
	docURL   string
	status   StatusWriter
}

// Option configures an Engine.
type Option func(*Engine)

// WithRoot sets the workspace root that bounds template lookup. It defaults
// to the filesystem root ".".
func WithRoot(root string) Option {
	return func(e *Engine) { e.root = root }
}

// WithDefaultDocURL sets the documentation host used for packages that do
// not declare one.
func WithDefaultDocURL(url string) Option {
	return func(e *Engine) {
		if url != "" {
			e.docURL = url
		}
	}
}

// WithStatus sets where progress lines go.
func WithStatus(w StatusWriter) Option {
	return func(e *Engine) { e.status = w }
}

// New returns an Engine working on fsys.
func New(fsys billy.Filesystem, renderer Renderer, manifest ManifestUpdater, opts ...Option) *Engine {
	e := &Engine{
		fs:       fsys,
		root:     ".",
		renderer: renderer,
		manifest: manifest,
		docURL:   DefaultDocURL,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Check compares the README of pkg against a freshly generated candidate.
// It never writes.
func (e *Engine) Check(ctx context.Context, pkg Package) (CheckResult, error) {
	log := logging.FromContext(ctx).With().Str("package", pkg.Name).Logger()
	if pkg.ReadmeDisabled {
		log.Debug().Msg("readme disabled in manifest")
		return Skipped, nil
	}
	entry, err := FindEntrypoint(e.fs, pkg.Dir)
	if err != nil {
		return 0, wrapPackage(pkg.Name, err)
	}
	e.report("Checking", "Readme for "+pkg.Name)

	existing, exists, err := e.readExisting(pkg)
	if err != nil {
		return 0, wrapPackage(pkg.Name, err)
	}
	if !exists {
		log.Debug().Str("readme", pkg.ReadmePath()).Msg("readme missing")
		return Missing, nil
	}

	candidate, _, err := e.candidate(ctx, pkg, entry)
	if err != nil {
		return 0, wrapPackage(pkg.Name, err)
	}
	result := Compare(existing, candidate)
	log.Debug().Stringer("result", result).Msg("checked readme")
	return result, nil
}

// Compare classifies an existing README against a candidate by content
// digest. Any byte difference is UpdateNeeded.
func Compare(existing, candidate []byte) CheckResult {
	if sha1.Sum(existing) == sha1.Sum(candidate) {
		return UpToDate
	}
	return UpdateNeeded
}

// Generate writes the README of pkg according to mode and records it in the
// package manifest. Under IfMissing an existing README is kept, but the
// manifest is still updated.
func (e *Engine) Generate(ctx context.Context, pkg Package, mode Mode) (Action, error) {
	log := logging.FromContext(ctx).With().Str("package", pkg.Name).Stringer("mode", mode).Logger()
	content, action, err := e.Plan(ctx, pkg, mode)
	if err != nil {
		return 0, err
	}
	if action == Ignored {
		return action, nil
	}
	if action != Kept {
		path := pkg.ReadmePath()
		if err := util.WriteFile(e.fs, path, content, 0o644); err != nil {
			return 0, wrapPackage(pkg.Name, &IOError{Operation: "write", Path: path, Err: err})
		}
		log.Debug().Str("readme", path).Int("bytes", len(content)).Stringer("action", action).Msg("wrote readme")
	}
	if e.manifest != nil {
		if err := e.manifest.SetReadme(ctx, pkg, ReadmeFile); err != nil {
			return 0, wrapPackage(pkg.Name, err)
		}
	}
	return action, nil
}

// Plan returns the bytes Generate would write for pkg under mode, and the
// action it would take, without touching the filesystem or the manifest.
// For Kept and Ignored the content is nil.
func (e *Engine) Plan(ctx context.Context, pkg Package, mode Mode) ([]byte, Action, error) {
	if pkg.ReadmeDisabled {
		return nil, Ignored, nil
	}
	entry, err := FindEntrypoint(e.fs, pkg.Dir)
	if err != nil {
		return nil, 0, wrapPackage(pkg.Name, err)
	}
	existing, exists, err := e.readExisting(pkg)
	if err != nil {
		return nil, 0, wrapPackage(pkg.Name, err)
	}
	if mode == IfMissing && exists {
		e.report("Skipping", pkg.Name+": Readme already exists.")
		return nil, Kept, nil
	}

	candidate, tpl, err := e.candidate(ctx, pkg, entry)
	if err != nil {
		return nil, 0, wrapPackage(pkg.Name, err)
	}
	e.report("Generating", fmt.Sprintf("Readme for %s (template: %s)", pkg.Name, e.displayTemplate(tpl)))

	switch {
	case !exists:
		return candidate, Created, nil
	case mode == Append:
		merged := make([]byte, 0, len(existing)+1+len(candidate))
		merged = append(merged, existing...)
		merged = append(merged, '\n')
		merged = append(merged, candidate...)
		return merged, Extended, nil
	default:
		return candidate, Replaced, nil
	}
}

// candidate renders and relinks the README for pkg. It returns the template
// path used, or "" when none was found.
func (e *Engine) candidate(ctx context.Context, pkg Package, entry string) ([]byte, string, error) {
	log := logging.FromContext(ctx).With().Str("package", pkg.Name).Logger()

	src, err := e.fs.Open(entry)
	if err != nil {
		return nil, "", &IOError{Operation: "open", Path: entry, Err: err}
	}
	defer src.Close()

	var tplReader io.Reader
	tpl, found := FindTemplate(e.fs, e.root, pkg.Dir)
	if found {
		f, err := e.fs.Open(tpl)
		if err != nil {
			return nil, "", &IOError{Operation: "open", Path: tpl, Err: err}
		}
		defer f.Close()
		tplReader = f
	}
	log.Debug().Str("entrypoint", entry).Str("template", tpl).Msg("rendering readme")

	body, err := e.renderer.Render(pkg, src, tplReader, renderOptions)
	if err != nil {
		var re *RenderError
		if !errors.As(err, &re) {
			err = &RenderError{Entrypoint: entry, Err: err}
		}
		return nil, "", err
	}
	return []byte(RewriteLinks(pkg.Name, body, e.baseURL(pkg))), tpl, nil
}

func (e *Engine) baseURL(pkg Package) string {
	if pkg.DocURL != "" {
		return pkg.DocURL
	}
	return e.docURL
}

func (e *Engine) readExisting(pkg Package) ([]byte, bool, error) {
	path := pkg.ReadmePath()
	data, err := util.ReadFile(e.fs, path)
	switch {
	case err == nil:
		return data, true, nil
	case errors.Is(err, os.ErrNotExist):
		return nil, false, nil
	default:
		return nil, false, &IOError{Operation: "read", Path: path, Err: err}
	}
}

func (e *Engine) displayTemplate(tpl string) string {
	if tpl == "" {
		return "none found"
	}
	if rel, err := filepath.Rel(e.root, tpl); err == nil {
		return filepath.ToSlash(rel)
	}
	return tpl
}

func (e *Engine) report(verb, message string) {
	if e.status != nil {
		e.status.Status(verb, message)
	}
}
