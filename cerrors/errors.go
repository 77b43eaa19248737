// Package cerrors formats compiler diagnostics with source context,
// mirroring the three error kinds spec.md §7 describes: fatal lex/parse
// errors, codegen-time semantic errors, and external tool failures.
package cerrors

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// CompilerError is a single positioned diagnostic.
type CompilerError struct {
	Line    int
	Message string
	Source  string
	File    string
}

// New builds a CompilerError.
func New(line int, message, source, file string) *CompilerError {
	return &CompilerError{Line: line, Message: message, Source: source, File: file}
}

// Error implements the error interface with an uncolored rendering.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error with a source-line-and-caret block, the way
// the teacher's internal/errors.CompilerError does. When color is true and
// the destination is a terminal, the prefix and caret are colorized via
// fatih/color instead of raw ANSI escapes.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	tag := "[ERROR]"
	if color {
		tag = errorCaret.Sprint(tag)
	}
	if e.File != "" {
		sb.WriteString(fmt.Sprintf("%s %s:%d: %s\n", tag, e.File, e.Line, e.Message))
	} else {
		sb.WriteString(fmt.Sprintf("%s line %d: %s\n", tag, e.Line, e.Message))
	}

	if line := e.sourceLine(); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)))
		if color {
			sb.WriteString(errorCaret.Sprint("^"))
		} else {
			sb.WriteString("^")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (e *CompilerError) sourceLine() string {
	if e.Source == "" || e.Line < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if e.Line > len(lines) {
		return ""
	}
	return lines[e.Line-1]
}

var errorCaret = color.New(color.FgRed, color.Bold)

// FormatErrors renders a batch of errors separated by blank lines.
// useColor is passed to every Format call as given; it is not checked
// against ColorEnabled here.
func FormatErrors(errs []*CompilerError, useColor bool) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Format(useColor))
	}
	return strings.Join(parts, "\n")
}

// ColorEnabled reports whether fd should receive ANSI color: the caller
// must want it, NO_COLOR must be unset, and fd must be a terminal. This is
// the policy the CLI applies before formatting a diagnostic.
func ColorEnabled(fd uintptr, wanted bool) bool {
	return wanted && os.Getenv("NO_COLOR") == "" && isatty.IsTerminal(fd)
}

// Plain renders a simple `[ERROR] message` line with no source context,
// used for stage-level failures (a failed import, a missing main) that
// have no single source line to point at. nasm/ld failures do not go
// through Plain: the CLI returns them as *toolchain.StageError, whose
// message names the stage but carries no `[ERROR]` prefix.
func Plain(message string) string {
	return fmt.Sprintf("[ERROR] %s", message)
}
