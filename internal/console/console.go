// Package console writes report text with optional ANSI color.
package console

import (
	"fmt"
	"io"
	"os"
)

// Color selects the ANSI foreground used for a report tag.
type Color int

const (
	None Color = iota
	Red
	Green
	Yellow
)

func (c Color) ansi() string {
	switch c {
	case Red:
		return "\x1b[0;31m"
	case Green:
		return "\x1b[0;32m"
	case Yellow:
		return "\x1b[0;33m"
	default:
		return ""
	}
}

// colorTerms are the TERM values known to understand the color codes.
var colorTerms = map[string]bool{
	"xterm":                 true,
	"xterm-color":           true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
	"linux":                 true,
	"cygwin":                true,
}

// Colorable reports whether w is a terminal whose TERM advertises color
// support. Redirected output and log files never get color codes.
func Colorable(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice == 0 {
		return false
	}
	return colorTerms[os.Getenv("TERM")]
}

// Printer writes formatted text, coloring tagged segments when enabled.
type Printer struct {
	out     io.Writer
	colored bool
}

// NewPrinter creates a printer on w. Color codes are emitted only when
// colored is true.
func NewPrinter(w io.Writer, colored bool) *Printer {
	return &Printer{out: w, colored: colored}
}

// Printf writes plain formatted text.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Colorf writes formatted text in the given color, resetting afterward.
// Without color support it degrades to Printf.
func (p *Printer) Colorf(c Color, format string, args ...any) {
	if !p.colored || c == None {
		p.Printf(format, args...)
		return
	}
	fmt.Fprintf(p.out, "%s", c.ansi())
	fmt.Fprintf(p.out, format, args...)
	fmt.Fprintf(p.out, "\x1b[m")
}
