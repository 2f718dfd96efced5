package diff

import "testing"

func TestStats(t *testing.T) {
	added, removed := Stats("hello world", "hello brave world")
	if added != 6 {
		t.Errorf("added = %d, want 6", added)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}

	added, removed = Stats("hello world", "hello")
	if added != 0 {
		t.Errorf("added = %d, want 0", added)
	}
	if removed != 6 {
		t.Errorf("removed = %d, want 6", removed)
	}
}

func TestPatchRoundTrip(t *testing.T) {
	oldText := "<p>first</p><p>second</p>"
	newText := "<p>first</p><h1>second</h1><p>third</p>"

	patch := Patch(oldText, newText)
	if patch == "" {
		t.Fatal("expected non-empty patch")
	}

	result, ok := ApplyPatch(oldText, patch)
	if !ok {
		t.Fatal("patch did not apply cleanly")
	}
	if result != newText {
		t.Errorf("result = %q, want %q", result, newText)
	}
}

func TestApplyPatchInvalid(t *testing.T) {
	result, ok := ApplyPatch("base", "not a patch")
	if ok {
		t.Error("expected failure for malformed patch text")
	}
	if result != "base" {
		t.Errorf("result = %q, want base unchanged", result)
	}
}
