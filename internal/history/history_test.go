package history

import (
	"slices"
	"testing"
)

func TestBuffer_ZeroValue(t *testing.T) {
	var b Buffer
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
	if b.Cursor() != NoSelection {
		t.Errorf("Cursor() = %d, want %d", b.Cursor(), NoSelection)
	}
	if _, _, ok := b.Previous(); ok {
		t.Error("Previous() on empty buffer should not select anything")
	}
	if _, _, ok := b.Next(); ok {
		t.Error("Next() without selection should not select anything")
	}
}

func TestBuffer_PushMostRecentFirst(t *testing.T) {
	b := Buffer{}.Push("a").Push("b").Push("c")

	want := []string{"c", "b", "a"}
	if got := b.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestBuffer_PushEmptyIsIgnored(t *testing.T) {
	b := Buffer{}.Push("a")
	b, _, _ = b.Previous()

	b = b.Push("")
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
	if b.Cursor() != NoSelection {
		t.Errorf("Cursor() = %d, want reset to %d", b.Cursor(), NoSelection)
	}
}

func TestBuffer_Navigation(t *testing.T) {
	b := Buffer{}.Push("a").Push("b")

	steps := []struct {
		name       string
		previous   bool
		wantText   string
		wantCursor int
	}{
		{"previous to newest", true, "b", 0},
		{"previous to oldest", true, "a", 1},
		{"previous saturates", true, "a", 1},
		{"next to newest", false, "b", 0},
		{"next clears selection", false, "", NoSelection},
	}

	for _, step := range steps {
		var text string
		var ok bool
		if step.previous {
			b, text, ok = b.Previous()
		} else {
			b, text, ok = b.Next()
		}
		if !ok {
			t.Fatalf("%s: ok = false, want true", step.name)
		}
		if text != step.wantText {
			t.Errorf("%s: text = %q, want %q", step.name, text, step.wantText)
		}
		if b.Cursor() != step.wantCursor {
			t.Errorf("%s: cursor = %d, want %d", step.name, b.Cursor(), step.wantCursor)
		}
	}

	if _, _, ok := b.Next(); ok {
		t.Error("Next() at no selection should be a no-op")
	}
}

func TestBuffer_OperationsDoNotMutateReceiver(t *testing.T) {
	base := FromEntries([]string{"x", "y"})

	moved, _, _ := base.Previous()
	_ = base.Push("z")

	if base.Cursor() != NoSelection {
		t.Errorf("base cursor changed to %d", base.Cursor())
	}
	if base.Len() != 2 {
		t.Errorf("base Len() changed to %d", base.Len())
	}
	if moved.Cursor() != 0 {
		t.Errorf("moved cursor = %d, want 0", moved.Cursor())
	}
}

func TestFromEntries_Copies(t *testing.T) {
	src := []string{"one", "two"}
	b := FromEntries(src)
	src[0] = "changed"

	if got := b.Entries()[0]; got != "one" {
		t.Errorf("Entries()[0] = %q, want %q", got, "one")
	}
}
