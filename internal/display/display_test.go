package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/quocvuong92/remote-hub/internal/files"
	"github.com/quocvuong92/remote-hub/internal/terminal"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := Out, ErrOut
	Out, ErrOut = &out, &errOut
	t.Cleanup(func() {
		Out, ErrOut = oldOut, oldErr
	})
	return &out, &errOut
}

func TestShowError(t *testing.T) {
	out, errOut := captureOutput(t)

	ShowError("boom")

	if out.Len() != 0 {
		t.Errorf("stdout = %q, want nothing", out.String())
	}
	if !strings.Contains(errOut.String(), "Error: boom") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestShowContentRendered_FallsBackWithoutRenderer(t *testing.T) {
	out, _ := captureOutput(t)
	renderer = nil

	ShowContentRendered("# Title\n")

	if got := out.String(); got != "# Title\n" {
		t.Errorf("output = %q, want plain content", got)
	}
}

func TestFormatLine(t *testing.T) {
	cmd := FormatLine("user@remote-hub:~$", terminal.Line{Kind: terminal.KindCommand, Text: "ls"})
	if !strings.Contains(cmd, "user@remote-hub:~$") || !strings.Contains(cmd, "ls") {
		t.Errorf("command line = %q", cmd)
	}

	resp := FormatLine("user@remote-hub:~$", terminal.Line{Kind: terminal.KindResponse, Text: "hello"})
	if strings.Contains(resp, "user@remote-hub") || !strings.Contains(resp, "hello") {
		t.Errorf("response line = %q", resp)
	}
}

func TestStatusLabel(t *testing.T) {
	for _, s := range []files.Status{files.StatusUploading, files.StatusDescribing, files.StatusComplete, files.StatusError} {
		if got := StatusLabel(s); !strings.Contains(got, string(s)) {
			t.Errorf("StatusLabel(%q) = %q", s, got)
		}
	}
	if got := StatusLabel("other"); got != "other" {
		t.Errorf("StatusLabel(other) = %q", got)
	}
}

func TestRecordsMarkdown(t *testing.T) {
	md := RecordsMarkdown([]files.Record{
		{Name: "a|b.txt", Type: files.TypeText, Size: "1 KB", Status: files.StatusComplete, Description: "Line one.\nLine two."},
	})

	lines := strings.Split(strings.TrimSpace(md), "\n")
	if len(lines) != 3 {
		t.Fatalf("markdown has %d lines, want 3:\n%s", len(lines), md)
	}
	want := `| a\|b.txt | text | 1 KB | complete | Line one. Line two. |`
	if lines[2] != want {
		t.Errorf("row = %q, want %q", lines[2], want)
	}
}

func TestSpinner_UpdateMessage(t *testing.T) {
	captureOutput(t)
	sp := NewSpinner("Describing...")
	sp.UpdateMessage("Still describing...")
	if sp.s.Suffix != " Still describing..." {
		t.Errorf("Suffix = %q", sp.s.Suffix)
	}
}
