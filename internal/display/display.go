// Package display renders CLI output: errors, spinners, styled terminal lines
// and Markdown summaries of file records.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Output writers, replaceable in tests
var (
	Out    io.Writer = os.Stdout
	ErrOut io.Writer = os.Stderr
)

var renderer *glamour.TermRenderer

// InitRenderer prepares the Markdown renderer used by ShowContentRendered.
func InitRenderer() error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	renderer = r
	return nil
}

// ShowError prints an error message to stderr.
func ShowError(msg string) {
	fmt.Fprintln(ErrOut, ErrorStyle.Render("Error: "+msg))
}

// ShowInfo prints a dimmed informational line.
func ShowInfo(msg string) {
	fmt.Fprintln(Out, InfoStyle.Render(msg))
}

// ShowContent prints content as is.
func ShowContent(content string) {
	fmt.Fprintln(Out, strings.TrimRight(content, "\n"))
}

// ShowContentRendered prints Markdown through glamour, falling back to plain
// output when the renderer is not initialized or fails.
func ShowContentRendered(content string) {
	if renderer == nil {
		ShowContent(content)
		return
	}
	out, err := renderer.Render(content)
	if err != nil {
		ShowContent(content)
		return
	}
	fmt.Fprint(Out, out)
}
