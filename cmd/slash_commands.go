package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quocvuong92/remote-hub/internal/display"
	"github.com/quocvuong92/remote-hub/internal/settings"
)

// handleCommand processes slash commands in interactive mode.
// Returns true if the session should exit, false otherwise.
func (s *InteractiveSession) handleCommand(input string) bool {
	parts := strings.SplitN(input, " ", 2)
	cmd := strings.ToLower(parts[0])

	switch cmd {
	case "/exit", "/quit", "/q":
		fmt.Fprintln(display.Out, "Goodbye!")
		return true

	case "/help", "/h":
		s.showHelp()

	case "/history":
		s.showHistory()

	case "/settings":
		s.showSettings(s.term.OpenSettings().Staged, true)

	case "/set":
		s.handleSetCommand(parts)

	case "/save":
		if _, open := s.stagedSettings(); !open {
			display.ShowError("Settings editor is not open. Use /settings first.")
			return false
		}
		s.show(s.term.SaveSettings())

	case "/cancel":
		if _, open := s.stagedSettings(); !open {
			display.ShowError("Settings editor is not open.")
			return false
		}
		s.term.CancelSettings()
		fmt.Fprintln(display.Out, "Staged settings discarded.")

	default:
		fmt.Fprintf(display.Out, "Unknown command: %s\n", cmd)
		fmt.Fprintln(display.Out, "Type /help for available commands")
	}

	return false
}

// showHelp displays the slash commands and the terminal commands.
func (s *InteractiveSession) showHelp() {
	out := display.Out
	fmt.Fprintln(out, "\nSession commands:")
	fmt.Fprintf(out, "  %-28s %s\n", "/settings", "Open the connection settings editor")
	fmt.Fprintf(out, "  %-28s %s\n", "/set host|port|username V", "Edit a staged setting")
	fmt.Fprintf(out, "  %-28s %s\n", "/save", "Save staged settings")
	fmt.Fprintf(out, "  %-28s %s\n", "/cancel", "Discard staged settings")
	fmt.Fprintf(out, "  %-28s %s\n", "/history", "Show command history")
	fmt.Fprintf(out, "  %-28s %s\n", "/exit, /quit, /q", "Exit the terminal")
	fmt.Fprintf(out, "  %-28s %s\n", "/help, /h", "Show this help")
	fmt.Fprintln(out, "\nTerminal commands: type help")
	fmt.Fprintln(out)
}

// showHistory lists submitted commands, most recent first.
func (s *InteractiveSession) showHistory() {
	entries := s.term.State().History.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(display.Out, "No commands yet.")
		return
	}
	for i, entry := range entries {
		fmt.Fprintf(display.Out, "  %3d  %s\n", i, entry)
	}
}

func (s *InteractiveSession) stagedSettings() (settings.Connection, bool) {
	return s.term.State().Settings.Staged()
}

// showSettings prints the live settings and, if given, the staged copy.
func (s *InteractiveSession) showSettings(staged *settings.Connection, hint bool) {
	live := s.term.State().Settings.Live()
	fmt.Fprintf(display.Out, "Live:   %s\n", live.Address())
	if staged != nil {
		fmt.Fprintf(display.Out, "Staged: %s\n", staged.Address())
	}
	if hint {
		fmt.Fprintln(display.Out, "Edit with /set host|port|username VALUE, then /save or /cancel.")
	}
}

// handleSetCommand edits one staged field: /set host|port|username VALUE
func (s *InteractiveSession) handleSetCommand(parts []string) {
	if len(parts) < 2 {
		display.ShowError("Usage: /set host|port|username VALUE")
		return
	}
	field, value, _ := strings.Cut(strings.TrimSpace(parts[1]), " ")
	value = strings.TrimSpace(value)

	var edit func(c *settings.Connection)
	switch strings.ToLower(field) {
	case "host":
		edit = func(c *settings.Connection) { c.Host = value }
	case "username":
		edit = func(c *settings.Connection) { c.Username = value }
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil {
			display.ShowError(fmt.Sprintf("Port must be an integer: %q", value))
			return
		}
		edit = func(c *settings.Connection) { c.Port = port }
	default:
		display.ShowError("Usage: /set host|port|username VALUE")
		return
	}

	snap, ok := s.term.EditSettings(edit)
	if !ok {
		display.ShowError("Settings editor is not open. Use /settings first.")
		return
	}
	s.showSettings(snap.Staged, false)
}
