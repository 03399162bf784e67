// Package errors formats Wrench diagnostics — type errors and runtime
// errors alike — with source context and a caret pointing at the
// offending position, the way the teacher project's internal/errors
// package formats compiler diagnostics.
package errors

import (
	"fmt"
	"strings"

	"github.com/AAUP4-Projekt/wrench/internal/token"
)

// Diagnostic is a single error with position and source context.
type Diagnostic struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// New creates a Diagnostic.
func New(pos token.Position, message, source, file string) *Diagnostic {
	return &Diagnostic{Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return d.Format(false)
}

// Format renders the diagnostic with a source line and caret. If color is
// true, ANSI escapes highlight the caret and message for a terminal.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", d.File, d.Pos.Line, d.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at %d:%d\n", d.Pos.Line, d.Pos.Column)
	}

	if line := d.sourceLine(d.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+d.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (d *Diagnostic) sourceLine(line int) string {
	if d.Source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// FormatAll renders one or more diagnostics, numbering them when there is
// more than one.
func FormatAll(diags []*Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "failed with %d error(s):\n\n", len(diags))
	for i, d := range diags {
		fmt.Fprintf(&sb, "[%d of %d]\n", i+1, len(diags))
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
