package app

import (
	"testing"
	"time"
)

func TestSessionStore_OwnerAndExpiry(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	st := NewSessionStore(30 * time.Minute)
	st.now = func() time.Time { return now }

	s := &EditSession{UserID: 70, ServiceID: 42, state: StateReady}
	id := st.Put(s)
	if id == "" || s.ID != id {
		t.Fatalf("id not assigned: %q / %q", id, s.ID)
	}

	if _, ok := st.Get(id, 71, 42); ok {
		t.Fatalf("another user got the session")
	}
	if _, ok := st.Get(id, 70, 43); ok {
		t.Fatalf("session returned for another hotel")
	}
	if got, ok := st.Get(id, 70, 42); !ok || got != s {
		t.Fatalf("owner lookup failed")
	}

	// Get refreshes the timestamp.
	now = now.Add(20 * time.Minute)
	if _, ok := st.Get(id, 70, 42); !ok {
		t.Fatalf("session expired early")
	}
	now = now.Add(31 * time.Minute)
	if _, ok := st.Get(id, 70, 42); ok {
		t.Fatalf("expired session returned")
	}
	if st.Len() != 0 {
		t.Fatalf("expired session kept, len=%d", st.Len())
	}
}

func TestSessionStore_PutSweepsButKeepsSubmitting(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	st := NewSessionStore(time.Minute)
	st.now = func() time.Time { return now }

	idle := &EditSession{UserID: 1, ServiceID: 1, state: StateReady}
	busy := &EditSession{UserID: 2, ServiceID: 2, state: StateSubmitting}
	st.Put(idle)
	busyID := st.Put(busy)

	now = now.Add(5 * time.Minute)
	st.Put(&EditSession{UserID: 3, ServiceID: 3, state: StateReady})

	if st.Len() != 2 {
		t.Fatalf("len = %d, want 2", st.Len())
	}
	if _, ok := st.Get(busyID, 2, 2); !ok {
		t.Fatalf("submitting session was swept")
	}
	st.Delete(busyID)
	if st.Len() != 1 {
		t.Fatalf("delete did not remove the session")
	}
}
