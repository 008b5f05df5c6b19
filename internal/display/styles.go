package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quocvuong92/remote-hub/internal/files"
	"github.com/quocvuong92/remote-hub/internal/terminal"
)

// Styles shared by the REPL and the describe command
var (
	PromptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	CommandStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	ResponseStyle = lipgloss.NewStyle()
	InfoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	statusStyles = map[files.Status]lipgloss.Style{
		files.StatusUploading:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		files.StatusDescribing: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		files.StatusComplete:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		files.StatusError:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

// FormatLine renders one transcript line. Command lines carry the prompt that
// was current when they are shown.
func FormatLine(prompt string, line terminal.Line) string {
	if line.Kind == terminal.KindCommand {
		return PromptStyle.Render(prompt) + " " + CommandStyle.Render(line.Text)
	}
	return ResponseStyle.Render(line.Text)
}

// ShowLines prints transcript lines.
func ShowLines(prompt string, lines []terminal.Line) {
	for _, line := range lines {
		fmt.Fprintln(Out, FormatLine(prompt, line))
	}
}

// StatusLabel renders a record status in its color.
func StatusLabel(s files.Status) string {
	style, ok := statusStyles[s]
	if !ok {
		return string(s)
	}
	return style.Render(string(s))
}

// ShowRecord prints a one-line summary of a record.
func ShowRecord(r files.Record) {
	fmt.Fprintf(Out, "%s  %s (%s, %s)\n", StatusLabel(r.Status), r.Name, r.Type, r.Size)
	if r.Description != "" {
		fmt.Fprintln(Out, "  "+r.Description)
	}
}

// RecordsMarkdown summarizes records as a Markdown table.
func RecordsMarkdown(records []files.Record) string {
	var b strings.Builder
	b.WriteString("| Name | Type | Size | Status | Description |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, r := range records {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			escapeCell(r.Name), r.Type, r.Size, r.Status, escapeCell(r.Description))
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
