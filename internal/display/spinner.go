package display

import (
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows progress on stderr while a blocking call runs.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a stopped spinner with message.
func NewSpinner(message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(ErrOut))
	s.Suffix = " " + message
	return &Spinner{s: s}
}

// Start starts the animation.
func (sp *Spinner) Start() {
	sp.s.Start()
}

// Stop stops the animation and clears the line.
func (sp *Spinner) Stop() {
	sp.s.Stop()
}

// UpdateMessage replaces the text next to the spinner.
func (sp *Spinner) UpdateMessage(message string) {
	sp.s.Lock()
	sp.s.Suffix = " " + message
	sp.s.Unlock()
}
