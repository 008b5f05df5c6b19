package terminal

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/quocvuong92/remote-hub/internal/logging"
	"github.com/quocvuong92/remote-hub/internal/settings"
)

func newTestSession(buf *bytes.Buffer) *Session {
	logger := logging.New(logging.Options{Level: logging.LevelDebug, Output: buf})
	return NewSession(newTestState(), logger)
}

func TestSession_SubmitAndNavigate(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSession(&buf)

	s.Submit("a")
	snap := s.Submit("echo b")
	if got := snap.Lines[len(snap.Lines)-1].Text; got != "b" {
		t.Errorf("last line = %q, want b", got)
	}

	if snap := s.Previous(); snap.Input != "echo b" || snap.HistoryIndex != 0 {
		t.Errorf("Previous() = input %q index %d", snap.Input, snap.HistoryIndex)
	}
	if snap := s.Next(); snap.Input != "" || snap.HistoryIndex != -1 {
		t.Errorf("Next() = input %q index %d", snap.Input, snap.HistoryIndex)
	}
	if !strings.Contains(buf.String(), "terminal command") {
		t.Errorf("expected debug log of commands, got %q", buf.String())
	}
}

func TestSession_SettingsFlow(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSession(&buf)

	if _, ok := s.StageSettings(settings.Connection{Host: "x"}); ok {
		t.Error("StageSettings() before open should fail")
	}

	snap := s.OpenSettings()
	if snap.Staged == nil || *snap.Staged != settings.DefaultConnection() {
		t.Fatalf("Staged = %+v, want defaults", snap.Staged)
	}

	snap, ok := s.EditSettings(func(c *settings.Connection) { c.Port = 2222 })
	if !ok || snap.Staged.Port != 2222 || snap.Settings.Port != 22 {
		t.Errorf("EditSettings() = staged %+v live %+v", snap.Staged, snap.Settings)
	}

	snap = s.SaveSettings()
	if snap.Staged != nil {
		t.Error("Staged should be nil after save")
	}
	if snap.Settings.Port != 2222 {
		t.Errorf("live port = %d, want 2222", snap.Settings.Port)
	}
	if snap.Prompt != "user@remote-hub:~$" {
		t.Errorf("Prompt = %q", snap.Prompt)
	}
	if !strings.Contains(buf.String(), "connection settings saved") {
		t.Errorf("expected info log on save, got %q", buf.String())
	}
}

func TestSession_SnapshotLinesNeverNil(t *testing.T) {
	s := NewSession(newTestState(), nil)
	if s.Snapshot().Lines == nil {
		t.Error("Lines should be an empty slice, not nil")
	}
}

func TestSession_ConcurrentSubmits(t *testing.T) {
	s := NewSession(newTestState(), logging.New(logging.Options{Level: logging.LevelNone}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Submit("whoami")
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	if len(snap.Lines) != 40 {
		t.Errorf("len(Lines) = %d, want 40", len(snap.Lines))
	}
	if s.State().History.Len() != 20 {
		t.Errorf("history len = %d, want 20", s.State().History.Len())
	}
}

func TestSession_ObserverSeesOperationOrder(t *testing.T) {
	s := NewSession(newTestState(), logging.New(logging.Options{Level: logging.LevelNone}))

	var lastIDs []int
	s.SetObserver(func(snap Snapshot) {
		// Runs under the session lock, so no extra locking is needed
		lastIDs = append(lastIDs, snap.Lines[len(snap.Lines)-1].ID)
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Submit("pwd")
		}()
	}
	wg.Wait()

	if len(lastIDs) != 50 {
		t.Fatalf("observer called %d times, want 50", len(lastIDs))
	}
	for i := 1; i < len(lastIDs); i++ {
		if lastIDs[i] <= lastIDs[i-1] {
			t.Fatalf("snapshot %d has last id %d after %d", i, lastIDs[i], lastIDs[i-1])
		}
	}
	if want := s.Snapshot().Lines; lastIDs[49] != want[len(want)-1].ID {
		t.Errorf("last observed id = %d, want the final state's", lastIDs[49])
	}
}

func TestSession_ObserverOnEveryOperation(t *testing.T) {
	s := NewSession(newTestState(), logging.New(logging.Options{Level: logging.LevelNone}))
	calls := 0
	s.SetObserver(func(Snapshot) { calls++ })

	s.Submit("ls")
	s.SetInput("x")
	s.Previous()
	s.Next()
	s.OpenSettings()
	s.EditSettings(func(c *settings.Connection) { c.Port = 2200 })
	s.SaveSettings()
	s.CancelSettings()
	s.Snapshot()

	if calls != 8 {
		t.Errorf("observer called %d times, want 8", calls)
	}
}

func TestSession_View(t *testing.T) {
	s := NewSession(newTestState(), logging.New(logging.Options{Level: logging.LevelNone}))
	s.Submit("whoami")

	var got Snapshot
	s.View(func(snap Snapshot) { got = snap })

	if len(got.Lines) != 2 || got.Lines[1].Text != "user" {
		t.Errorf("View snapshot lines = %+v", got.Lines)
	}
}
