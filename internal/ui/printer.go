package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// CheckStatus represents the outcome of a single prerequisite or install check.
type CheckStatus string

const (
	StatusPresent CheckStatus = "present"
	StatusMissing CheckStatus = "missing"
	StatusUnknown CheckStatus = "unknown"
)

// Printer renders rich terminal UI fragments used by the CLI.
type Printer struct {
	output       io.Writer
	colorEnabled bool
	success      *color.Color
	info         *color.Color
	warn         *color.Color
	error        *color.Color
}

// NewPrinter constructs a Printer with colour automatically enabled for TTY outputs.
func NewPrinter(output io.Writer) *Printer {
	if output == nil {
		output = os.Stdout
	}

	enabled := false
	if f, ok := output.(*os.File); ok {
		enabled = supportsColor(f) && os.Getenv("NO_COLOR") == ""
	}

	p := &Printer{
		output:       output,
		colorEnabled: enabled,
		success:      color.New(color.FgGreen, color.Bold),
		info:         color.New(color.FgBlue, color.Bold),
		warn:         color.New(color.FgYellow, color.Bold),
		error:        color.New(color.FgRed, color.Bold),
	}

	if !enabled {
		p.success.DisableColor()
		p.info.DisableColor()
		p.warn.DisableColor()
		p.error.DisableColor()
	}

	return p
}

// PrintSeparator prints a repeated character separator.
func (p *Printer) PrintSeparator(char string, length int) {
	if length <= 0 {
		return
	}
	fmt.Fprintln(p.output, strings.Repeat(char, length))
}

// PrintCheckStatus renders one prerequisite result line.
func (p *Printer) PrintCheckStatus(name string, status CheckStatus, detail string) {
	var mark string
	switch status {
	case StatusPresent:
		mark = p.success.Sprint("✓")
	case StatusMissing:
		mark = p.error.Sprint("✕")
	default:
		mark = p.warn.Sprint("?")
	}

	line := fmt.Sprintf("[ %s ] %s", mark, name)
	if detail != "" {
		line += fmt.Sprintf(" (%s)", detail)
	}
	fmt.Fprintln(p.output, line)
}

// PrintTable renders rows under a header with columns padded to the widest
// cell. Widths are measured in terminal cells so wide runes stay aligned.
func (p *Printer) PrintTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && runewidth.StringWidth(cell) > widths[i] {
				widths[i] = runewidth.StringWidth(cell)
			}
		}
	}

	p.printRow(headers, widths, p.info)
	for _, row := range rows {
		p.printRow(row, widths, nil)
	}
}

func (p *Printer) printRow(cells []string, widths []int, c *color.Color) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		padded := runewidth.FillRight(cell, widths[i])
		if c != nil {
			padded = c.Sprint(padded)
		}
		parts[i] = padded
	}
	fmt.Fprintln(p.output, strings.TrimRight(strings.Join(parts, "  "), " "))
}

func supportsColor(w *os.File) bool {
	return term.IsTerminal(int(w.Fd()))
}
