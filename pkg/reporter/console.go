// Package reporter renders step banners, status lines and a progress
// counter for the operator.
package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const panelPadding = 1

// Console writes human-readable progress to out. Colors and the live
// progress bar are only rendered when out is a terminal.
type Console struct {
	out      io.Writer
	terminal bool
	progress *progress
}

func NewConsole(out io.Writer) *Console {
	terminal := false
	if f, ok := out.(interface{ Fd() uintptr }); ok {
		terminal = term.IsTerminal(int(f.Fd()))
	}
	return &Console{out: out, terminal: terminal}
}

// Title prints a boxed banner.
func (c *Console) Title(text string) {
	c.println(panel("", text))
}

// Step prints a boxed banner labelled "Step <number>".
func (c *Console) Step(number int, title string) {
	c.println(panel(fmt.Sprintf("Step %d", number), title))
}

func (c *Console) Infof(format string, args ...interface{}) {
	c.println(fmt.Sprintf(format, args...))
}

func (c *Console) Successf(format string, args ...interface{}) {
	c.println(c.paint(color.Green, fmt.Sprintf(format, args...)))
}

func (c *Console) Errorf(format string, args ...interface{}) {
	c.println(c.paint(color.Red, fmt.Sprintf(format, args...)))
}

// Highlight returns s in blue on terminals.
func (c *Console) Highlight(s string) string {
	return c.paint(color.Blue, s)
}

func (c *Console) NetworkStarted(name string, index, total int) {
	c.Infof("Processing Network: %s (%d of %d)", c.Highlight(name), index, total)
}

func (c *Console) paint(style color.Color, s string) string {
	if !c.terminal {
		return s
	}
	return style.Sprint(s)
}

// println writes one line, keeping an active progress bar below it.
func (c *Console) println(line string) {
	if c.progress != nil && c.terminal {
		_, _ = io.WriteString(c.out, "\r\033[K")
	}
	_, _ = fmt.Fprintln(c.out, line)
	if c.progress != nil && c.terminal {
		c.progress.draw(c.out)
	}
}

func panel(title, text string) string {
	lines := strings.Split(text, "\n")
	inner := runewidth.StringWidth(title) + 2
	for _, l := range lines {
		inner = max(inner, runewidth.StringWidth(l)+2*panelPadding)
	}

	var b strings.Builder
	if title == "" {
		b.WriteString("╭" + strings.Repeat("─", inner) + "╮\n")
	} else {
		label := " " + title + " "
		left := (inner - runewidth.StringWidth(label)) / 2
		right := inner - left - runewidth.StringWidth(label)
		b.WriteString("╭" + strings.Repeat("─", left) + label + strings.Repeat("─", right) + "╮\n")
	}
	for _, l := range lines {
		pad := inner - runewidth.StringWidth(l) - panelPadding
		b.WriteString("│" + strings.Repeat(" ", panelPadding) + l + strings.Repeat(" ", pad) + "│\n")
	}
	b.WriteString("╰" + strings.Repeat("─", inner) + "╯")
	return b.String()
}
