package session

import "testing"

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()

	if _, ok := store.Get(42); ok {
		t.Errorf("Get() found a session before Start()")
	}

	sess := store.Start(42)
	if sess.Step != StepName {
		t.Errorf("new session step = %s, want %s", sess.Step, StepName)
	}

	sess.FullName = "Alice"
	sess.Step = StepGroup

	got, ok := store.Get(42)
	if !ok {
		t.Fatalf("Get() lost the session")
	}
	if got.FullName != "Alice" || got.Step != StepGroup {
		t.Errorf("session = %+v, want progress to be visible through Get()", got)
	}

	store.Delete(42)
	if _, ok := store.Get(42); ok {
		t.Errorf("session survived Delete()")
	}
}

func TestStartReplacesExistingSession(t *testing.T) {
	store := NewStore()

	first := store.Start(42)
	first.FullName = "Alice"
	first.Step = StepPreferences

	second := store.Start(42)
	if second.Step != StepName || second.FullName != "" {
		t.Errorf("restarted session = %+v, want a fresh one", second)
	}
}
