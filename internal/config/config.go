// Package config loads readme-sync settings from, in order of precedence:
//
//  1. command-line flags
//  2. READMESYNC_* environment variables
//  3. .env and .env.local files in the working directory
//  4. a .readme-sync.yaml file (workspace root, then home directory)
//  5. defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentflare-ai/readme-sync/internal/readme"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "READMESYNC"

// FileName is the base name of the configuration file, without extension.
const FileName = ".readme-sync"

// Config holds the resolved settings.
type Config struct {
	Mode          string
	Format        string
	DocURLDefault string
	FailFast      bool
	DryRun        bool

	Verbose   bool
	Quiet     bool
	NoColor   bool
	LogLevel  string
	LogFormat string

	// ConfigFile is the configuration file that was read, if any.
	ConfigFile string
}

// Options tells Load where to look.
type Options struct {
	// ConfigFile is an explicit configuration file. Unlike the searched
	// locations it must exist.
	ConfigFile string
	// SearchPaths are directories searched for FileName.yaml, in order.
	SearchPaths []string
	// EnvDir holds the .env files. Empty means the working directory.
	EnvDir string
	// Flags are bound over every other source. May be nil.
	Flags *pflag.FlagSet
}

// flagKeys maps configuration keys to the flags that override them.
var flagKeys = map[string]string{
	"mode":            "mode",
	"format":          "format",
	"doc_url_default": "doc-url-default",
	"fail_fast":       "fail-fast",
	"dry_run":         "dry-run",
	"verbose":         "verbose",
	"quiet":           "quiet",
	"no_color":        "no-color",
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFiles(opts.EnvDir); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", "if-missing")
	v.SetDefault("format", "")
	v.SetDefault("doc_url_default", readme.DefaultDocURL)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "auto")

	if opts.Flags != nil {
		for key, name := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		for _, dir := range opts.SearchPaths {
			if dir != "" {
				v.AddConfigPath(dir)
			}
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{
		Mode:          v.GetString("mode"),
		Format:        v.GetString("format"),
		DocURLDefault: v.GetString("doc_url_default"),
		FailFast:      v.GetBool("fail_fast"),
		DryRun:        v.GetBool("dry_run"),
		Verbose:       v.GetBool("verbose"),
		Quiet:         v.GetBool("quiet"),
		NoColor:       v.GetBool("no_color"),
		LogLevel:      v.GetString("log_level"),
		LogFormat:     v.GetString("log_format"),
		ConfigFile:    v.ConfigFileUsed(),
	}
	switch {
	case cfg.Verbose:
		cfg.LogLevel = "debug"
	case cfg.Quiet:
		cfg.LogLevel = "error"
	}
	return cfg, nil
}

// loadEnvFiles loads .env and then .env.local, which overrides it. Values
// already present in the process environment win over both.
// Missing files are fine; unreadable ones are an error.
func loadEnvFiles(dir string) error {
	merged := map[string]string{}
	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(dir, name)
		values, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for k, val := range values {
			merged[k] = val
		}
	}
	for k, val := range merged {
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return fmt.Errorf("setting %s from env file: %w", k, err)
		}
	}
	return nil
}
