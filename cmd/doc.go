// Package cmd implements the CLI commands for Remote Hub.
//
// # Commands
//
//   - root.go: App struct, cobra command tree, persistent flags, init-config
//   - serve.go: HTTP and websocket server with graceful shutdown
//   - interactive.go: the simulated terminal as a go-prompt REPL
//   - slash_commands.go: session commands (/settings, /set, /save, /history, ...)
//   - describe.go: one-shot description of local files
//
// # Interactive Mode
//
// InteractiveSession drives a terminal.Session from the prompt. Terminal
// commands are submitted as typed and only transcript lines not yet printed
// are shown; an emptied transcript clears the screen. The prompt prefix
// follows the live connection settings, so saving new settings changes it.
//
// # Usage
//
//	func main() {
//	    cmd.Execute()
//	}
package cmd
