package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"

	"github.com/agentflare-ai/readme-sync/internal/cargo"
)

const rootLongDesc = `
readme-sync keeps the README.md of every package in a Cargo workspace in sync with
the crate-level doc comments (//! and /*! */) of the package entrypoint
(src/lib.rs, falling back to src/main.rs).

  • check compares each README with a freshly generated one and fails when any is
    missing or stale, which makes it a good CI gate
  • generate writes READMEs using one of three merge modes: if-missing, overwrite,
    append
  • README.tpl templates are looked up from the package directory up to the
    workspace root; relative rustdoc links are rewritten to absolute docs.rs URLs
`

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:           "readme-sync [command]",
		Short:         "Keep workspace READMEs in sync with crate doc comments",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.opts.configFile, "config", "", "config file (default is .readme-sync.yaml in the workspace root or $HOME)")
	flags.StringVar(&app.opts.manifestPath, "manifest-path", cargo.ManifestFile, "path to the workspace or package Cargo.toml")
	flags.StringSliceVarP(&app.opts.packages, "package", "p", nil, "only process the named package (repeatable)")
	flags.StringVar(&app.opts.format, "format", "", "report format: text, table, json, yaml (default: table on a terminal, text otherwise)")
	flags.StringVar(&app.opts.docURLDefault, "doc-url-default", "", "documentation host for packages without a documentation URL (default https://docs.rs/)")
	flags.BoolVarP(&app.opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVarP(&app.opts.quiet, "quiet", "q", false, "only print errors")
	flags.BoolVar(&app.opts.noColor, "no-color", false, "disable colored status output")

	cmd.AddCommand(newCheckCmd(app))
	cmd.AddCommand(newGenerateCmd(app))
	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newCheckCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report packages whose README is missing or out of date",
		Long: strings.TrimSpace(`
Regenerate every selected README in memory and compare it byte for byte with
the file on disk. Nothing is written.

Exits non-zero when any package is missing its README, has a stale README, or
could not be rendered.
`),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return app.check(commandContext(cmd), cmd)
	}
	return cmd
}

func newGenerateCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write package READMEs from crate doc comments",
		Long: strings.TrimSpace(`
Render the README of every selected package and write it to <package>/README.md.

Modes:

  if-missing  only write READMEs that do not exist yet (default)
  overwrite   replace existing READMEs
  append      keep existing READMEs and append the generated content

Every successful run also sets readme = "README.md" in the package Cargo.toml.
`),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.Flags()
	flags.Var(&app.opts.mode, "mode", "merge mode: if-missing, overwrite, append")
	flags.BoolVar(&app.opts.dryRun, "dry-run", false, "show what would be written without touching any file")
	flags.BoolVar(&app.opts.failFast, "fail-fast", false, "stop at the first package that fails")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return app.generate(commandContext(cmd), cmd)
	}
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const (
		longDesc = `Generate shell completion scripts for readme-sync.

The output should be evaluated by your shell. For example:

  # bash
  readme-sync completion bash > /usr/local/etc/bash_completion.d/readme-sync

  # zsh
  readme-sync completion zsh > "${fpath[1]}/_readme-sync"

  # fish
  readme-sync completion fish | source

  # PowerShell
  readme-sync completion powershell | Out-String | Invoke-Expression
`
	)
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a Markdown file per command (suitable for publishing CLI docs).

Example:

  readme-sync gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}
