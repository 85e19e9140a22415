package app

import (
	"fmt"
	"io"
	"strings"
)

var rule = strings.Repeat("=", 50)

// console writes operator-facing progress lines.
type console struct {
	w io.Writer
}

func (c console) line(tag, format string, args ...any) {
	if c.w == nil {
		return
	}
	fmt.Fprintf(c.w, "[%s] %s\n", tag, fmt.Sprintf(format, args...))
}

func (c console) ok(format string, args ...any)   { c.line("OK", format, args...) }
func (c console) info(format string, args ...any) { c.line("INFO", format, args...) }
func (c console) warn(format string, args ...any) { c.line("WARN", format, args...) }
func (c console) err(format string, args ...any)  { c.line("ERROR", format, args...) }

func (c console) plain(format string, args ...any) {
	if c.w == nil {
		return
	}
	fmt.Fprintf(c.w, format+"\n", args...)
}

func (c console) banner(title string) {
	c.plain("%s", rule)
	c.plain("%s", title)
	c.plain("%s", rule)
}
