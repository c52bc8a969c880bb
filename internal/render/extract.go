package render

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var errUnterminatedBlock = errors.New("unterminated /*! doc comment")

// extractDoc returns the crate doc lines of a Rust source file: inner line
// comments (//!) and inner block comments (/*! */) that appear before the
// first item. Inner attributes, blank lines and ordinary comments in that
// prelude are skipped.
func extractDoc(r io.Reader) ([]string, error) {
	var (
		lines   []string
		block   []string
		inDoc   bool // inside /*! */
		inPlain bool // inside /* */
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimLeft(line, " \t")

		if inDoc {
			if idx := strings.Index(line, "*/"); idx >= 0 {
				block = append(block, strings.TrimRight(line[:idx], " \t"))
				lines = append(lines, closeBlock(block)...)
				block, inDoc = nil, false
				continue
			}
			block = append(block, line)
			continue
		}
		if inPlain {
			if strings.Contains(line, "*/") {
				inPlain = false
			}
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "//!"):
			text := strings.TrimPrefix(trimmed, "//!")
			lines = append(lines, strings.TrimPrefix(text, " "))
		case strings.HasPrefix(trimmed, "/*!"):
			rest := strings.TrimPrefix(trimmed, "/*!")
			if idx := strings.Index(rest, "*/"); idx >= 0 {
				if text := strings.TrimSpace(rest[:idx]); text != "" {
					lines = append(lines, text)
				}
				continue
			}
			block = []string{rest}
			inDoc = true
		case strings.HasPrefix(trimmed, "/*"):
			inPlain = !strings.Contains(trimmed[2:], "*/")
		case trimmed == "",
			strings.HasPrefix(trimmed, "//"),
			strings.HasPrefix(trimmed, "#!["):
			continue
		default:
			return trimBlankLines(lines), sc.Err()
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if inDoc {
		return nil, errUnterminatedBlock
	}
	return trimBlankLines(lines), nil
}

// closeBlock turns the raw lines of a /*! */ comment into doc lines: the
// opening line keeps its text, the rest is dedented, and a leading " * "
// gutter is dropped when every continuation line carries one.
func closeBlock(raw []string) []string {
	first := strings.TrimSpace(raw[0])
	rest := raw[1:]
	if hasGutter(rest) {
		for i, line := range rest {
			t := strings.TrimLeft(line, " \t")
			t = strings.TrimPrefix(t, "*")
			rest[i] = strings.TrimPrefix(t, " ")
		}
	} else {
		rest = strings.Split(dedent(strings.Join(rest, "\n")), "\n")
	}
	var out []string
	if first != "" {
		out = append(out, first)
	}
	return append(out, rest...)
}

func hasGutter(lines []string) bool {
	seen := false
	for _, line := range lines {
		t := strings.TrimLeft(line, " \t")
		if t == "" {
			continue
		}
		if !strings.HasPrefix(t, "*") {
			return false
		}
		seen = true
	}
	return seen
}

func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

func dedent(src string) string {
	lines := strings.Split(src, "\n")
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := leadingWhitespace(line)
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return src
	}
	for i, line := range lines {
		if len(line) >= minIndent {
			lines[i] = line[minIndent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

func leadingWhitespace(line string) int {
	count := 0
	for _, r := range line {
		if r == ' ' || r == '\t' {
			count++
			continue
		}
		break
	}
	return count
}
