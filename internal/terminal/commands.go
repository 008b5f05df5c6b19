package terminal

import (
	"fmt"
	"time"

	"github.com/quocvuong92/remote-hub/internal/settings"
)

// EntryKind tags the variant held by an Entry.
type EntryKind int

const (
	// EntryLiteral responds with a fixed string
	EntryLiteral EntryKind = iota
	// EntryHandler computes the response from the command arguments
	EntryHandler
)

// Entry is one command table value: either a literal response or a handler
// of the argument remainder.
type Entry struct {
	kind    EntryKind
	literal string
	handler func(args string) string
}

// Literal creates an entry that always responds with text.
func Literal(text string) Entry {
	return Entry{kind: EntryLiteral, literal: text}
}

// Handler creates an entry that responds with fn(args).
func Handler(fn func(args string) string) Entry {
	return Entry{kind: EntryHandler, handler: fn}
}

// Kind returns the entry variant.
func (e Entry) Kind() EntryKind {
	return e.kind
}

// Respond produces the response text for args.
func (e Entry) Respond(args string) string {
	switch e.kind {
	case EntryHandler:
		if e.handler == nil {
			return ""
		}
		return e.handler(args)
	default:
		return e.literal
	}
}

// Table maps command names to entries.
type Table map[string]Entry

// Command names understood by the default table
const (
	CmdHelp   = "help"
	CmdLs     = "ls"
	CmdPwd    = "pwd"
	CmdWhoami = "whoami"
	CmdDate   = "date"
	CmdEcho   = "echo"
	CmdClear  = "clear"
)

// Canned responses
const (
	HelpText      = "Available commands: help, ls, pwd, whoami, date, echo [text], clear"
	EchoUsage     = "Usage: echo [text]"
	lsListing     = "-rw-r--r-- 1 user group 4.5K Jan 1 12:30 project-alpha\n-rwxr-xr-x 1 user group 1.2M Jan 2 09:00 app.exe\ndrwxr-xr-x 2 user group 4.0K Dec 28 15:00 documents"
	notFoundFmt   = "command not found: %s"
	dateLayout    = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"
	welcomeBanner = "Welcome to Remote Hub SSH Terminal."
	welcomeHint   = `Type "help" to see available commands.`
)

// DefaultTable builds the command table for the given settings. startedAt is
// the time the terminal was opened; date reports it rather than the current time.
func DefaultTable(conn settings.Connection, startedAt time.Time) Table {
	return Table{
		CmdHelp:   Literal(HelpText),
		CmdLs:     Literal(lsListing),
		CmdPwd:    Literal(fmt.Sprintf("/home/%s/remote-hub", conn.Username)),
		CmdWhoami: Literal(conn.Username),
		CmdDate:   Literal(FormatDate(startedAt)),
		CmdEcho: Handler(func(args string) string {
			if args == "" {
				return EchoUsage
			}
			return args
		}),
		CmdClear: Literal(""),
	}
}

// FormatDate formats t the way a browser prints a Date.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Names returns the command names in help order.
func Names() []string {
	return []string{CmdHelp, CmdLs, CmdPwd, CmdWhoami, CmdDate, CmdEcho, CmdClear}
}
