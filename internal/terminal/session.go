package terminal

import (
	"sync"

	"github.com/quocvuong92/remote-hub/internal/logging"
	"github.com/quocvuong92/remote-hub/internal/settings"
)

// Snapshot is a read-only view of a terminal, shaped for JSON clients.
type Snapshot struct {
	Prompt       string               `json:"prompt"`
	Input        string               `json:"input"`
	Lines        []Line               `json:"lines"`
	HistoryIndex int                  `json:"history_index"`
	Settings     settings.Connection  `json:"settings"`
	Staged       *settings.Connection `json:"staged,omitempty"`
}

// SnapshotOf builds the snapshot of s.
func SnapshotOf(s State) Snapshot {
	snap := Snapshot{
		Prompt:       s.Prompt(),
		Input:        s.Input,
		Lines:        s.Transcript.Lines(),
		HistoryIndex: s.History.Cursor(),
		Settings:     s.Settings.Live(),
	}
	if staged, ok := s.Settings.Staged(); ok {
		snap.Staged = &staged
	}
	if snap.Lines == nil {
		snap.Lines = []Line{}
	}
	return snap
}

// Session serializes operations on one shared terminal.
type Session struct {
	mu       sync.Mutex
	state    State
	logger   *logging.Logger
	observer func(Snapshot)
}

// NewSession wraps state. A nil logger uses logging.DefaultLogger.
func NewSession(state State, logger *logging.Logger) *Session {
	if logger == nil {
		logger = logging.DefaultLogger
	}
	return &Session{state: state, logger: logger}
}

// SetObserver registers fn to receive the snapshot after every operation.
// fn runs while the session is locked, so it sees snapshots in operation
// order; it must not call back into the session.
func (s *Session) SetObserver(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = fn
}

// View runs fn with the current snapshot while no operation can run.
func (s *Session) View(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(SnapshotOf(s.state))
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a view of the current state.
func (s *Session) Snapshot() Snapshot {
	return SnapshotOf(s.State())
}

// apply runs op under the lock and returns the resulting snapshot
func (s *Session) apply(op func(State) State) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = op(s.state)
	snap := SnapshotOf(s.state)
	if s.observer != nil {
		s.observer(snap)
	}
	return snap
}

// Submit runs one line of input.
func (s *Session) Submit(raw string) Snapshot {
	s.logger.Debug("terminal command", logging.Fields{"input": raw})
	return s.apply(func(st State) State { return st.Submit(raw) })
}

// SetInput replaces the input buffer.
func (s *Session) SetInput(text string) Snapshot {
	return s.apply(func(st State) State { return st.SetInput(text) })
}

// Previous recalls an older history entry.
func (s *Session) Previous() Snapshot {
	return s.apply(State.Previous)
}

// Next recalls a newer history entry.
func (s *Session) Next() Snapshot {
	return s.apply(State.Next)
}

// OpenSettings opens the settings editor.
func (s *Session) OpenSettings() Snapshot {
	return s.apply(State.OpenSettings)
}

// StageSettings replaces the staged settings; ok is false when the editor is closed.
func (s *Session) StageSettings(c settings.Connection) (snap Snapshot, ok bool) {
	snap = s.apply(func(st State) State {
		st, ok = st.StageSettings(c)
		return st
	})
	return snap, ok
}

// EditSettings edits the staged settings; ok is false when the editor is closed.
func (s *Session) EditSettings(fn func(c *settings.Connection)) (snap Snapshot, ok bool) {
	snap = s.apply(func(st State) State {
		st, ok = st.EditSettings(fn)
		return st
	})
	return snap, ok
}

// SaveSettings makes the staged settings live.
func (s *Session) SaveSettings() Snapshot {
	var saved bool
	snap := s.apply(func(st State) State {
		saved = st.Settings.IsOpen()
		return st.SaveSettings()
	})
	if saved {
		s.logger.Info("connection settings saved", logging.Fields{"address": snap.Settings.Address()})
	}
	return snap
}

// CancelSettings discards staged edits.
func (s *Session) CancelSettings() Snapshot {
	return s.apply(State.CancelSettings)
}
