// Package shell prints cargo-style status lines: a right-aligned, colored
// verb followed by a message.
//
//	   Checking Readme for my-crate
//	 Generating Readme for my-crate (template: README.tpl)
package shell

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const verbWidth = 12

// Shell writes status lines to a writer.
type Shell struct {
	mu    sync.Mutex
	out   io.Writer
	quiet bool

	status *color.Color
	warn   *color.Color
	err    *color.Color
}

// New returns a Shell writing to out. Color is used only when out is a
// terminal and noColor is false.
func New(out io.Writer, noColor, quiet bool) *Shell {
	s := &Shell{
		out:    out,
		quiet:  quiet,
		status: color.New(color.FgGreen, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		err:    color.New(color.FgRed, color.Bold),
	}
	useColor := !noColor && isTerminal(out)
	for _, c := range []*color.Color{s.status, s.warn, s.err} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// Status prints a status line. It is silent in quiet mode.
func (s *Shell) Status(verb, message string) {
	if s.quiet {
		return
	}
	s.print(s.status, fmt.Sprintf("%*s", verbWidth, verb), message)
}

// Warn prints a warning line. It is silent in quiet mode.
func (s *Shell) Warn(message string) {
	if s.quiet {
		return
	}
	s.print(s.warn, "warning:", message)
}

// Error prints an error line, even in quiet mode.
func (s *Shell) Error(message string) {
	s.print(s.err, "error:", message)
}

func (s *Shell) print(c *color.Color, prefix, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "%s %s\n", c.Sprint(prefix), message)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
