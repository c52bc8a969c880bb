package cargo

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pelletier/go-toml/v2"

	"github.com/agentflare-ai/readme-sync/internal/logging"
	"github.com/agentflare-ai/readme-sync/internal/readme"
)

var readmeKey = regexp.MustCompile(`^\s*readme\s*(=|\.)`)

// ManifestWriter sets the readme field of package manifests. Edits are made
// line by line so that comments and formatting in the manifest survive.
type ManifestWriter struct {
	FS billy.Filesystem
}

// SetReadme implements readme.ManifestUpdater.
func (w ManifestWriter) SetReadme(ctx context.Context, pkg readme.Package, file string) error {
	path := pkg.ManifestPath
	data, err := util.ReadFile(w.FS, path)
	if err != nil {
		return &readme.IOError{Operation: "read", Path: path, Err: err}
	}
	updated, changed, err := setReadmeField(data, file)
	if err != nil {
		return &ManifestError{Path: path, Err: err}
	}
	if !changed {
		return nil
	}
	if err := util.WriteFile(w.FS, path, updated, 0o644); err != nil {
		return &readme.IOError{Operation: "write", Path: path, Err: err}
	}
	logging.FromContext(ctx).Debug().Str("package", pkg.Name).Str("manifest", path).Msg("set readme field")
	return nil
}

// setReadmeField returns data with package.readme set to file. An existing
// readme key in [package] is replaced in place; otherwise the key is
// inserted right after the [package] header.
func setReadmeField(data []byte, file string) ([]byte, bool, error) {
	want := "readme = " + strconv.Quote(file)
	lines := strings.SplitAfter(string(data), "\n")

	header := -1
	for i, line := range lines {
		if tableHeader(line) == "package" {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, false, ErrNoPackage
	}

	insertAt := header + 1
	for i := header + 1; i < len(lines); i++ {
		if tableHeader(lines[i]) != "" {
			break
		}
		if !readmeKey.MatchString(lines[i]) {
			continue
		}
		eol := lineEnding(lines[i])
		body := strings.TrimSuffix(lines[i], eol)
		value, comment := splitComment(body)
		if strings.TrimSpace(value) == want {
			return data, false, nil
		}
		lines[i] = want + comment + eol
		insertAt = -1
		break
	}
	if insertAt >= 0 {
		eol := lineEnding(lines[header])
		if eol == "" {
			lines[header] += "\n"
			eol = "\n"
		}
		lines = append(lines[:insertAt], append([]string{want + eol}, lines[insertAt:]...)...)
	}

	out := []byte(strings.Join(lines, ""))
	var check map[string]any
	if err := toml.Unmarshal(out, &check); err != nil {
		return nil, false, fmt.Errorf("updated manifest is not valid TOML: %w", err)
	}
	return out, !bytes.Equal(out, data), nil
}

// tableHeader returns the name of the table a header line opens, or "".
func tableHeader(line string) string {
	t := strings.TrimSpace(line)
	if i := strings.Index(t, "#"); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	if !strings.HasPrefix(t, "[") || !strings.HasSuffix(t, "]") {
		return ""
	}
	return strings.TrimSpace(strings.Trim(t, "[]"))
}

// splitComment splits a key/value line at the start of its trailing comment.
// The comment keeps the whitespace that precedes the "#".
func splitComment(line string) (string, string) {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' && quote == '"' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			start := i
			for start > 0 && (line[start-1] == ' ' || line[start-1] == '\t') {
				start--
			}
			return line[:start], line[start:]
		}
	}
	return line, ""
}

func lineEnding(line string) string {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(line, "\n"):
		return "\n"
	default:
		return ""
	}
}
