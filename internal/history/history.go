// Package history provides the command history buffer of the simulated terminal.
//
// A Buffer is a value: every operation returns a new Buffer and never mutates
// the receiver, so terminal states can be kept and compared freely.
package history

import "slices"

// NoSelection is the cursor value when no history entry is selected.
const NoSelection = -1

// Buffer holds previously submitted commands, most recent first, and the
// navigation cursor. The zero value is an empty buffer with no selection.
type Buffer struct {
	entries []string
	// selected is the cursor plus one, so that the zero value selects nothing
	selected int
}

// FromEntries creates a buffer from entries ordered most recent first.
func FromEntries(entries []string) Buffer {
	return Buffer{entries: slices.Clone(entries)}
}

// Len returns the number of entries.
func (b Buffer) Len() int {
	return len(b.entries)
}

// Entries returns a copy of the entries, most recent first.
func (b Buffer) Entries() []string {
	return slices.Clone(b.entries)
}

// Cursor returns the selected index in [-1, Len()-1].
func (b Buffer) Cursor() int {
	return b.selected - 1
}

// Push records a submitted command at the front and resets the cursor.
// Empty commands are not recorded, but the cursor is still reset.
func (b Buffer) Push(command string) Buffer {
	if command == "" {
		return b.Reset()
	}
	entries := make([]string, 0, len(b.entries)+1)
	entries = append(entries, command)
	entries = append(entries, b.entries...)
	return Buffer{entries: entries}
}

// Reset clears the selection.
func (b Buffer) Reset() Buffer {
	return Buffer{entries: b.entries}
}

// Previous moves the cursor one entry toward the oldest command and returns
// the selected text. ok is false when the buffer is empty, in which case the
// input should be left alone.
func (b Buffer) Previous() (next Buffer, text string, ok bool) {
	if len(b.entries) == 0 {
		return b, "", false
	}
	cursor := min(b.Cursor()+1, len(b.entries)-1)
	return Buffer{entries: b.entries, selected: cursor + 1}, b.entries[cursor], true
}

// Next moves the cursor one entry toward the newest command. Leaving the
// newest entry selects nothing and yields empty text. ok is false when nothing
// was selected to begin with.
func (b Buffer) Next() (next Buffer, text string, ok bool) {
	if b.Cursor() == NoSelection {
		return b, "", false
	}
	cursor := max(b.Cursor()-1, NoSelection)
	next = Buffer{entries: b.entries, selected: cursor + 1}
	if cursor == NoSelection {
		return next, "", true
	}
	return next, b.entries[cursor], true
}
