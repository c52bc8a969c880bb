package render

import (
	"errors"
	"strings"
)

var errUnclosedFence = errors.New("unclosed code block in doc comments")

// rustFenceAttrs are the rustdoc code block attributes that still denote
// Rust code.
var rustFenceAttrs = map[string]struct{}{
	"rust":         {},
	"no_run":       {},
	"ignore":       {},
	"should_panic": {},
	"compile_fail": {},
	"test_harness": {},
	"allow_fail":   {},
	"edition2015":  {},
	"edition2018":  {},
	"edition2021":  {},
	"edition2024":  {},
}

// processDoc rewrites doc lines into README Markdown.
func processDoc(lines []string, indentHeadings bool) ([]string, error) {
	out := make([]string, 0, len(lines))
	var (
		inCode bool
		isRust bool
		fence  string
	)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !inCode {
			if f, info, ok := openFence(trimmed); ok {
				inCode, fence = true, f
				isRust = isRustInfo(info)
				if isRust {
					out = append(out, f+"rust")
				} else {
					out = append(out, line)
				}
				continue
			}
			if indentHeadings && isHeading(line) {
				line = "#" + line
			}
			out = append(out, line)
			continue
		}

		if closesFence(trimmed, fence) {
			inCode = false
			out = append(out, fence)
			continue
		}
		if isRust {
			switch {
			case trimmed == "#" || strings.HasPrefix(trimmed, "# "):
				continue
			case strings.HasPrefix(trimmed, "##"):
				idx := strings.Index(line, "##")
				line = line[:idx] + line[idx+1:]
			}
		}
		out = append(out, line)
	}
	if inCode {
		return nil, errUnclosedFence
	}
	return out, nil
}

// openFence reports whether line opens a fenced code block, returning the
// fence and its info string.
func openFence(line string) (string, string, bool) {
	for _, marker := range []string{"```", "~~~"} {
		if !strings.HasPrefix(line, marker) {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, marker[:1]))
		return line[:n], strings.TrimSpace(line[n:]), true
	}
	return "", "", false
}

func closesFence(line, fence string) bool {
	if !strings.HasPrefix(line, fence) {
		return false
	}
	return strings.Trim(line, fence[:1]) == ""
}

func isRustInfo(info string) bool {
	if info == "" {
		return true
	}
	for _, attr := range strings.FieldsFunc(info, func(r rune) bool { return r == ',' || r == ' ' }) {
		if _, ok := rustFenceAttrs[attr]; !ok {
			return false
		}
	}
	return true
}

func isHeading(line string) bool {
	rest := strings.TrimLeft(line, "#")
	level := len(line) - len(rest)
	return level > 0 && level <= 6 && (rest == "" || rest[0] == ' ')
}
