package cmd

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"
	"github.com/spf13/cobra"

	"github.com/quocvuong92/remote-hub/internal/display"
	"github.com/quocvuong92/remote-hub/internal/logging"
	"github.com/quocvuong92/remote-hub/internal/terminal"
)

// clearScreen is the ANSI sequence that clears the screen and homes the cursor
const clearScreen = "\033[H\033[2J"

// NewTerminalCmd creates the terminal command
func NewTerminalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "terminal",
		Short: "Run the simulated terminal in this shell",
		Long: `Run the simulated SSH terminal as an interactive prompt.

Terminal commands are typed as is (help, ls, pwd, whoami, date, echo, clear).
Slash commands manage the session; type /help to list them.

Examples:
  remote-hub terminal
  remote-hub terminal --username alice --host devbox`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.loadConfig(); err != nil {
				return err
			}
			app.runInteractive()
			return nil
		},
	}

	cmd.Flags().StringVar(&app.cfg.Host, "host", "", "Initial host (default remote-hub)")
	cmd.Flags().IntVar(&app.cfg.Port, "port", 0, "Initial port (default 22)")
	cmd.Flags().StringVar(&app.cfg.Username, "username", "", "Initial username (default user)")

	return cmd
}

// InteractiveSession is one REPL over a terminal session.
type InteractiveSession struct {
	app      *App
	term     *terminal.Session
	lastID   int // ID of the last transcript line shown
	exitFlag bool
}

// newInteractiveSession wraps term and shows nothing yet.
func newInteractiveSession(app *App, term *terminal.Session) *InteractiveSession {
	return &InteractiveSession{app: app, term: term}
}

// completer suggests terminal commands, or slash commands once input starts with "/".
func (s *InteractiveSession) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)
	return suggest(d.TextBeforeCursor()), startIndex, endIndex
}

// suggest returns completions for the text before the cursor.
func suggest(text string) []prompt.Suggest {
	if text == "" {
		return []prompt.Suggest{}
	}
	word := text[strings.LastIndex(text, " ")+1:]

	// Only the first word completes, plus the field name of /set
	if strings.Contains(strings.TrimLeft(text, " "), " ") {
		if strings.HasPrefix(text, "/set ") && strings.Count(text, " ") == 1 {
			return prompt.FilterHasPrefix(setFieldSuggestions, word, true)
		}
		return []prompt.Suggest{}
	}

	if strings.HasPrefix(text, "/") {
		return prompt.FilterHasPrefix(slashSuggestions, word, true)
	}
	return prompt.FilterHasPrefix(commandSuggestions, word, false)
}

var commandSuggestions = []prompt.Suggest{
	{Text: terminal.CmdHelp, Description: "List available commands"},
	{Text: terminal.CmdLs, Description: "List files"},
	{Text: terminal.CmdPwd, Description: "Print working directory"},
	{Text: terminal.CmdWhoami, Description: "Print user name"},
	{Text: terminal.CmdDate, Description: "Print the session start time"},
	{Text: terminal.CmdEcho, Description: "Print text"},
	{Text: terminal.CmdClear, Description: "Clear the screen"},
}

var slashSuggestions = []prompt.Suggest{
	{Text: "/settings", Description: "Open the connection settings editor"},
	{Text: "/set", Description: "Edit a staged setting: /set host|port|username VALUE"},
	{Text: "/save", Description: "Save staged settings"},
	{Text: "/cancel", Description: "Discard staged settings"},
	{Text: "/history", Description: "Show command history"},
	{Text: "/help", Description: "Show slash commands"},
	{Text: "/exit", Description: "Exit the terminal"},
	{Text: "/q", Description: "Exit (alias)"},
}

var setFieldSuggestions = []prompt.Suggest{
	{Text: "host", Description: "Remote host name"},
	{Text: "port", Description: "Remote port"},
	{Text: "username", Description: "Login name"},
}

// runInteractive starts the terminal REPL and blocks until the user exits.
func (app *App) runInteractive() {
	term := terminal.NewSession(terminal.New(app.cfg.Connection(), time.Now()), logging.DefaultLogger)
	session := newInteractiveSession(app, term)

	display.ShowInfo("Remote Hub terminal. Type /help for session commands, Ctrl+D to quit.")
	session.show(term.Snapshot())

	p := prompt.New(
		session.executor,
		prompt.WithCompleter(session.completer),
		prompt.WithPrefixCallback(session.prefix),
		prompt.WithTitle("Remote Hub"),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithSuggestionBGColor(prompt.DarkBlue),
		prompt.WithSuggestionTextColor(prompt.White),
		prompt.WithSelectedSuggestionBGColor(prompt.Cyan),
		prompt.WithSelectedSuggestionTextColor(prompt.Black),
		prompt.WithDescriptionBGColor(prompt.DarkBlue),
		prompt.WithDescriptionTextColor(prompt.LightGray),
		prompt.WithSelectedDescriptionBGColor(prompt.Cyan),
		prompt.WithSelectedDescriptionTextColor(prompt.Black),
		prompt.WithScrollbarBGColor(prompt.DarkGray),
		prompt.WithScrollbarThumbColor(prompt.White),
		prompt.WithMaxSuggestion(10),
		prompt.WithCustomHistory(sessionHistory{term: term}),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return session.exitFlag
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				fmt.Fprintln(display.Out, "\nGoodbye!")
				session.exitFlag = true
				return false
			},
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					fmt.Fprintln(display.Out, "Goodbye!")
					session.exitFlag = true
				}
				return false
			},
		}),
	)

	p.Run()
}

// sessionHistory hands the Up and Down keys to the terminal's own history
// cursor. Submit records commands, so Add and Clear have nothing to do.
type sessionHistory struct {
	term *terminal.Session
}

var _ prompt.HistoryInterface = sessionHistory{}

func (h sessionHistory) Add(string) {}

func (h sessionHistory) Clear() {}

func (h sessionHistory) DeleteAll() {}

// Older recalls the previous command, keeping what was typed as the input.
func (h sessionHistory) Older(buf *prompt.Buffer, columns istrings.Width, rows int) (*prompt.Buffer, bool) {
	h.term.SetInput(buf.Text())
	return recalled(h.term.Previous(), buf, columns, rows)
}

// Newer recalls the next command, or an empty line past the newest.
func (h sessionHistory) Newer(buf *prompt.Buffer, columns istrings.Width, rows int) (*prompt.Buffer, bool) {
	h.term.SetInput(buf.Text())
	return recalled(h.term.Next(), buf, columns, rows)
}

// Get returns entry i, oldest first.
func (h sessionHistory) Get(i int) (string, bool) {
	entries := h.Entries()
	if i < 0 || i >= len(entries) {
		return "", false
	}
	return entries[i], true
}

// Entries returns the commands oldest first.
func (h sessionHistory) Entries() []string {
	entries := h.term.State().History.Entries()
	slices.Reverse(entries)
	return entries
}

func recalled(snap terminal.Snapshot, buf *prompt.Buffer, columns istrings.Width, rows int) (*prompt.Buffer, bool) {
	if snap.Input == buf.Text() {
		return buf, false
	}
	next := prompt.NewBuffer()
	next.InsertTextMoveCursor(snap.Input, columns, rows, false)
	return next, true
}

// prefix is the live prompt, following saved connection settings.
func (s *InteractiveSession) prefix() string {
	return s.term.Snapshot().Prompt + " "
}

// executor handles one line of REPL input.
func (s *InteractiveSession) executor(input string) {
	if s.exitFlag {
		return
	}

	if strings.HasPrefix(strings.TrimSpace(input), "/") {
		if s.handleCommand(strings.TrimSpace(input)) {
			s.exitFlag = true
		}
		return
	}

	s.show(s.term.Submit(input))
}

// show prints transcript lines not shown yet. Command lines are skipped since
// the prompt already echoed them. An emptied transcript clears the screen.
func (s *InteractiveSession) show(snap terminal.Snapshot) {
	if len(snap.Lines) == 0 {
		fmt.Fprint(display.Out, clearScreen)
		return
	}

	var fresh []terminal.Line
	for _, line := range snap.Lines {
		if line.ID <= s.lastID {
			continue
		}
		s.lastID = line.ID
		if line.Kind == terminal.KindCommand {
			continue
		}
		fresh = append(fresh, line)
	}
	display.ShowLines(snap.Prompt, fresh)
}
