package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/readme-sync/internal/readme"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("mode", "if-missing", "")
	fs.String("doc-url-default", "", "")
	fs.Bool("verbose", false, "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(Options{SearchPaths: []string{dir}, EnvDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "if-missing", cfg.Mode)
	assert.Equal(t, readme.DefaultDocURL, cfg.DocURLDefault)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName+".yaml"), "mode: append\ndoc_url_default: https://docs.example.com/\nfail_fast: true\n")

	cfg, err := Load(Options{SearchPaths: []string{dir}, EnvDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "append", cfg.Mode)
	assert.Equal(t, "https://docs.example.com/", cfg.DocURLDefault)
	assert.True(t, cfg.FailFast)
	assert.Equal(t, filepath.Join(dir, FileName+".yaml"), cfg.ConfigFile)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName+".yaml"), "mode: append\ndoc_url_default: https://file.example/\n")
	t.Setenv("READMESYNC_MODE", "overwrite")

	t.Run("env over file", func(t *testing.T) {
		cfg, err := Load(Options{SearchPaths: []string{dir}, EnvDir: dir, Flags: newFlags()})
		require.NoError(t, err)
		assert.Equal(t, "overwrite", cfg.Mode)
		assert.Equal(t, "https://file.example/", cfg.DocURLDefault)
	})

	t.Run("flag over env", func(t *testing.T) {
		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"--mode", "if-missing", "--verbose"}))
		cfg, err := Load(Options{SearchPaths: []string{dir}, EnvDir: dir, Flags: flags})
		require.NoError(t, err)
		assert.Equal(t, "if-missing", cfg.Mode)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, "debug", cfg.LogLevel)
	})
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "READMESYNC_FORMAT=json\nREADMESYNC_DOC_URL_DEFAULT=https://env.example/\n")
	writeFile(t, filepath.Join(dir, ".env.local"), "READMESYNC_FORMAT=yaml\n")
	t.Setenv("READMESYNC_DOC_URL_DEFAULT", "https://process.example/")
	t.Cleanup(func() { _ = os.Unsetenv("READMESYNC_FORMAT") })

	cfg, err := Load(Options{SearchPaths: []string{dir}, EnvDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "https://process.example/", cfg.DocURLDefault)
}

func TestLoadUnreadableEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".env"), 0o755))

	_, err := Load(Options{SearchPaths: []string{dir}, EnvDir: dir})
	assert.ErrorContains(t, err, ".env")
}

func TestLoadExplicitConfigMustExist(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(Options{ConfigFile: filepath.Join(dir, "missing.yaml"), EnvDir: dir})
	assert.Error(t, err)
}
