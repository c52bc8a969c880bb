package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/agentflare-ai/readme-sync/internal/cargo"
	"github.com/agentflare-ai/readme-sync/internal/config"
	"github.com/agentflare-ai/readme-sync/internal/logging"
	"github.com/agentflare-ai/readme-sync/internal/readme"
	"github.com/agentflare-ai/readme-sync/internal/render"
	"github.com/agentflare-ai/readme-sync/internal/report"
	"github.com/agentflare-ai/readme-sync/internal/shell"
)

type options struct {
	configFile    string
	manifestPath  string
	packages      []string
	format        string
	docURLDefault string
	verbose       bool
	quiet         bool
	noColor       bool

	mode     readme.Mode
	dryRun   bool
	failFast bool
}

type cliApp struct {
	stdout io.Writer
	stderr io.Writer
	opts   options
}

// session is everything a subcommand needs once configuration and the
// workspace are loaded.
type session struct {
	ctx      context.Context
	cfg      *config.Config
	shell    *shell.Shell
	packages []readme.Package
	batch    *readme.Batch
	format   report.Format
}

func run(ctx context.Context, argv []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(normalizeLegacyArgs(argv))
	return cmd.ExecuteContext(ctx)
}

func (app *cliApp) open(ctx context.Context, cmd *cobra.Command) (*session, error) {
	manifest, err := resolveManifest(app.opts.manifestPath)
	if err != nil {
		return nil, err
	}
	root := filepath.Dir(manifest)

	searchPaths := []string{root}
	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, home)
	}
	cfg, err := config.Load(config.Options{
		ConfigFile:  app.opts.configFile,
		SearchPaths: searchPaths,
		Flags:       cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Output:  app.stderr,
		NoColor: cfg.NoColor,
	})
	ctx = logging.WithLogger(ctx, &logger)
	if cfg.ConfigFile != "" {
		logger.Debug().Str("config", cfg.ConfigFile).Msg("using config file")
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	fsys := osfs.New(root)
	ws, err := cargo.Load(fsys, filepath.Base(manifest))
	if err != nil {
		return nil, err
	}
	pkgs, err := ws.Select(app.opts.packages)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("root", root).Int("packages", len(pkgs)).Msg("loaded workspace")

	sh := shell.New(app.stderr, cfg.NoColor, cfg.Quiet)
	engine := readme.New(fsys, render.Crate{}, cargo.ManifestWriter{FS: fsys},
		readme.WithRoot(ws.Root),
		readme.WithDefaultDocURL(cfg.DocURLDefault),
		readme.WithStatus(sh),
	)
	return &session{
		ctx:      ctx,
		cfg:      cfg,
		shell:    sh,
		packages: pkgs,
		batch:    &readme.Batch{Engine: engine, FailFast: cfg.FailFast, DryRun: cfg.DryRun},
		format:   report.DetectFormat(format, app.stdout),
	}, nil
}

func (app *cliApp) check(ctx context.Context, cmd *cobra.Command) error {
	s, err := app.open(ctx, cmd)
	if err != nil {
		return err
	}
	outcomes, err := s.batch.CheckAll(s.ctx, s.packages)
	if err != nil {
		return err
	}
	if err := report.Write(app.stdout, s.format, outcomes); err != nil {
		return err
	}
	return summarize(outcomes, "README check")
}

func (app *cliApp) generate(ctx context.Context, cmd *cobra.Command) error {
	s, err := app.open(ctx, cmd)
	if err != nil {
		return err
	}
	mode, err := readme.ParseMode(s.cfg.Mode)
	if err != nil {
		return err
	}

	s.shell.Status("Generating", "Readme files")
	outcomes, err := s.batch.GenerateAll(s.ctx, s.packages, mode)
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			s.shell.Error(fmt.Sprintf("Failure generating Readme for %v", o.Err))
		case o.Action == readme.Ignored:
			s.shell.Warn(o.Package + ": readme = false in manifest, skipping")
		case s.cfg.DryRun && o.Content != nil:
			s.shell.Status("Would write", fmt.Sprintf("%s (%d bytes)", o.Readme, len(o.Content)))
		}
	}
	if err != nil {
		return err
	}
	if err := report.Write(app.stdout, s.format, outcomes); err != nil {
		return err
	}
	return summarize(outcomes, "README generation")
}

func summarize(outcomes []readme.Outcome, what string) error {
	failed := 0
	for _, o := range outcomes {
		if o.Failed() {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%s failed for %d of %d package(s):\n%w", what, failed, len(outcomes), readme.Failures(outcomes))
}

// resolveManifest turns the --manifest-path argument into an absolute path
// to a Cargo.toml. A directory argument means its Cargo.toml.
func resolveManifest(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = cargo.ManifestFile
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("could not find %s", abs)
		}
		return "", err
	}
	if info.IsDir() {
		return resolveManifest(filepath.Join(abs, cargo.ManifestFile))
	}
	return abs, nil
}

var legacyLongFlagSet = map[string]struct{}{
	"config":          {},
	"manifest-path":   {},
	"package":         {},
	"format":          {},
	"doc-url-default": {},
	"verbose":         {},
	"quiet":           {},
	"no-color":        {},
	"mode":            {},
	"dry-run":         {},
	"fail-fast":       {},
}

// normalizeLegacyArgs rewrites single-dash long flags such as -mode=append
// into their --mode=append form.
func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	modified := false
	converted := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			converted = append(converted, args[i:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") || len(arg) <= 2 {
			converted = append(converted, arg)
			continue
		}
		name := arg[1:]
		if idx := strings.Index(name, "="); idx > 0 {
			name = name[:idx]
		}
		if _, ok := legacyLongFlagSet[name]; ok {
			converted = append(converted, "-"+arg)
			modified = true
			continue
		}
		converted = append(converted, arg)
	}
	if !modified {
		return args
	}
	return converted
}
