package core

import "testing"

func TestQueueInsertFront(t *testing.T) {
	q := NewQueue()
	q.Append(Track{ID: "a", Title: "A"})
	q.Append(Track{ID: "b", Title: "B"})
	q.InsertFront(Track{ID: "c", Title: "C"})

	if q.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", q.Len())
	}
	if got, _ := q.At(0); got.ID != "c" {
		t.Errorf("At(0).ID = %q, want %q", got.ID, "c")
	}
	if got, _ := q.At(2); got.ID != "b" {
		t.Errorf("At(2).ID = %q, want %q", got.ID, "b")
	}
}

func TestQueueInsertFrontExistingIDKeepsPosition(t *testing.T) {
	q := NewQueue()
	q.Append(Track{ID: "a"})
	q.Append(Track{ID: "b"})

	// Re-inserting an already queued ID must not move it.
	q.InsertFront(Track{ID: "b"})

	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
	if q.IndexOf("b") != 1 {
		t.Errorf("IndexOf(b) = %d, want 1", q.IndexOf("b"))
	}
}

func TestQueueAppendDuplicate(t *testing.T) {
	q := NewQueue()
	q.Append(Track{ID: "a"})
	q.Append(Track{ID: "a"})

	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after duplicate append", q.Len())
	}
}

func TestQueueIndexOfMissing(t *testing.T) {
	q := NewQueue()
	if got := q.IndexOf("nope"); got != -1 {
		t.Errorf("IndexOf(missing) = %d, want -1", got)
	}
}

func TestQueueAtOutOfRange(t *testing.T) {
	q := NewQueue()
	q.Append(Track{ID: "a"})

	if _, ok := q.At(-1); ok {
		t.Error("At(-1) ok = true, want false")
	}
	if _, ok := q.At(1); ok {
		t.Error("At(1) ok = true, want false")
	}
}

func TestQueueTracksIsCopy(t *testing.T) {
	q := NewQueue()
	q.Append(Track{ID: "a"})

	snapshot := q.Tracks()
	snapshot[0].ID = "mutated"

	if got, _ := q.At(0); got.ID != "a" {
		t.Errorf("queue mutated through snapshot: At(0).ID = %q", got.ID)
	}
}

func TestParseTheme(t *testing.T) {
	for _, name := range []string{"violet", "cyan", "rose", "amber", "emerald"} {
		if _, err := ParseTheme(name); err != nil {
			t.Errorf("ParseTheme(%q) error = %v", name, err)
		}
	}
	if _, err := ParseTheme("magenta"); err == nil {
		t.Error("ParseTheme(magenta) error = nil, want error")
	}
}

func TestThemeNextWraps(t *testing.T) {
	seen := map[Theme]bool{}
	cur := DefaultTheme
	for range Themes() {
		seen[cur] = true
		cur = cur.Next()
	}
	if cur != DefaultTheme {
		t.Errorf("cycling all themes ended at %q, want %q", cur, DefaultTheme)
	}
	if len(seen) != len(Themes()) {
		t.Errorf("cycle visited %d themes, want %d", len(seen), len(Themes()))
	}
}

func TestHintQuery(t *testing.T) {
	h := Hint{Title: "Song X", Artist: "Band Y"}
	if got := h.Query(); got != "Song X Band Y" {
		t.Errorf("Query() = %q", got)
	}
	h = Hint{Title: "Solo"}
	if got := h.Query(); got != "Solo" {
		t.Errorf("Query() = %q", got)
	}
}
