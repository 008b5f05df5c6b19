// Package terminal implements the simulated terminal: a transcript of command
// and response lines, a command history, and a fixed table of canned commands.
//
// State is an explicit value. Every operation takes a State and returns the
// next one, which keeps the interpreter deterministic and easy to test. Session
// wraps a State for callers that share one terminal, such as the HTTP server.
package terminal

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/quocvuong92/remote-hub/internal/history"
	"github.com/quocvuong92/remote-hub/internal/settings"
)

// State is the complete terminal state.
type State struct {
	Transcript Transcript
	History    history.Buffer
	Input      string
	Settings   settings.Store
	// StartedAt is captured once when the terminal opens and drives the date command
	StartedAt time.Time
}

// New creates a terminal showing the welcome banner.
func New(conn settings.Connection, startedAt time.Time) State {
	var t Transcript
	t = t.Append(KindResponse, welcomeBanner)
	t = t.Append(KindResponse, welcomeHint)
	return State{
		Transcript: t,
		Settings:   settings.NewStore(conn),
		StartedAt:  startedAt,
	}
}

// Table returns the command table for the current live settings.
func (s State) Table() Table {
	return DefaultTable(s.Settings.Live(), s.StartedAt)
}

// Prompt returns the prompt string for the current live settings.
func (s State) Prompt() string {
	return s.Settings.Live().Prompt()
}

// Submit runs one line of input.
//
// Blank input only echoes an empty command line. Otherwise the trimmed input
// is echoed, the command is dispatched, and the input is pushed to history.
// clear wipes the transcript, including the echoed line, but keeps history.
func (s State) Submit(raw string) State {
	input := strings.TrimSpace(raw)
	if input == "" {
		s.Transcript = s.Transcript.Append(KindCommand, "")
		s.Input = ""
		return s
	}

	name, args := splitCommand(input)
	s.Transcript = s.Transcript.Append(KindCommand, input)

	if name == CmdClear {
		s.Transcript = s.Transcript.Clear()
	} else if entry, ok := s.Table()[name]; ok {
		s.Transcript = appendResponse(s.Transcript, entry.Respond(args))
	} else {
		s.Transcript = s.Transcript.Append(KindResponse, fmt.Sprintf(notFoundFmt, name))
	}

	s.History = s.History.Push(input)
	s.Input = ""
	return s
}

// SetInput replaces the input buffer, as typing would.
func (s State) SetInput(text string) State {
	s.Input = text
	return s
}

// Previous recalls the next older history entry into the input buffer.
func (s State) Previous() State {
	h, text, ok := s.History.Previous()
	if !ok {
		return s
	}
	s.History = h
	s.Input = text
	return s
}

// Next recalls the next newer history entry, or clears the input after the newest.
func (s State) Next() State {
	h, text, ok := s.History.Next()
	if !ok {
		return s
	}
	s.History = h
	s.Input = text
	return s
}

// OpenSettings opens the settings editor seeded from the live settings.
func (s State) OpenSettings() State {
	s.Settings = s.Settings.Open()
	return s
}

// StageSettings replaces the staged settings. ok is false when the editor is closed.
func (s State) StageSettings(c settings.Connection) (next State, ok bool) {
	s.Settings, ok = s.Settings.Stage(c)
	return s, ok
}

// EditSettings edits the staged settings in place. ok is false when the editor is closed.
func (s State) EditSettings(fn func(c *settings.Connection)) (next State, ok bool) {
	s.Settings, ok = s.Settings.Edit(fn)
	return s, ok
}

// SaveSettings makes the staged settings live and announces the new address
// in the transcript. Without an open editor nothing happens.
func (s State) SaveSettings() State {
	store, saved := s.Settings.Save()
	if !saved {
		return s
	}
	s.Settings = store
	s.Transcript = s.Transcript.Append(KindResponse, SavedMessage(store.Live()))
	return s
}

// CancelSettings discards staged edits.
func (s State) CancelSettings() State {
	s.Settings = s.Settings.Cancel()
	return s
}

// SavedMessage is the transcript line announcing saved settings.
func SavedMessage(c settings.Connection) string {
	return "Connection settings saved: " + c.Address()
}

// splitCommand splits input at its first whitespace run. args is the rest of
// the line verbatim, so inner spacing survives.
func splitCommand(input string) (name, args string) {
	i := strings.IndexFunc(input, unicode.IsSpace)
	if i < 0 {
		return input, ""
	}
	return input[:i], strings.TrimLeftFunc(input[i:], unicode.IsSpace)
}

func appendResponse(t Transcript, text string) Transcript {
	if text == "" {
		return t
	}
	for _, line := range strings.Split(text, "\n") {
		t = t.Append(KindResponse, line)
	}
	return t
}
