package terminal

import "slices"

// LineKind tells command lines from response lines.
type LineKind string

const (
	KindCommand  LineKind = "command"
	KindResponse LineKind = "response"
)

// Line is one transcript entry. Lines are never modified after they are appended.
type Line struct {
	ID   int      `json:"id"`
	Kind LineKind `json:"kind"`
	Text string   `json:"text"`
}

// Transcript is the ordered, append-only log shown in the terminal view.
// IDs come from a counter owned by the transcript, so they strictly increase
// and are not reused after Clear.
type Transcript struct {
	lines  []Line
	nextID int
}

// Lines returns a copy of the lines in order.
func (t Transcript) Lines() []Line {
	return slices.Clone(t.lines)
}

// Len returns the number of lines.
func (t Transcript) Len() int {
	return len(t.lines)
}

// Append returns a transcript with one more line.
func (t Transcript) Append(kind LineKind, text string) Transcript {
	id := t.nextID + 1
	// Clip forces append to copy, so earlier transcripts keep their own backing array.
	return Transcript{
		lines:  append(slices.Clip(t.lines), Line{ID: id, Kind: kind, Text: text}),
		nextID: id,
	}
}

// Clear returns an empty transcript that keeps counting IDs.
func (t Transcript) Clear() Transcript {
	return Transcript{nextID: t.nextID}
}
