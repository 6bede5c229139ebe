package identity

import (
	"testing"
	"time"
)

func TestSignalStartsAnonymous(t *testing.T) {
	s := NewSignal()
	if s.Current() != nil {
		t.Error("new signal should be anonymous")
	}
	if s.Privileged() {
		t.Error("anonymous signal should not be privileged")
	}
}

func TestSignalSetAndClear(t *testing.T) {
	s := NewSignal()

	s.Set("u1", false)
	id := s.Current()
	if id == nil || id.ID != "u1" {
		t.Fatalf("Current() = %v, want u1", id)
	}

	s.Clear()
	if s.Current() != nil {
		t.Error("Current() should be nil after Clear()")
	}
}

func TestSignalPrivilegedRequiresIdentity(t *testing.T) {
	s := NewSignal()

	s.Set("admin", true)
	if !s.Privileged() {
		t.Error("Privileged() = false, want true")
	}

	s.Clear()
	if s.Privileged() {
		t.Error("Privileged() should reset with the identity")
	}
}

func TestSignalNotifiesSubscribers(t *testing.T) {
	s := NewSignal()
	ch := s.Subscribe()

	s.Set("u1", true)

	select {
	case change := <-ch:
		if change.Identity == nil || change.Identity.ID != "u1" || !change.Privileged {
			t.Errorf("unexpected change: %+v", change)
		}
	case <-time.After(time.Second):
		t.Fatal("no change received")
	}
}

func TestSignalSlowSubscriberSeesNewestChange(t *testing.T) {
	s := NewSignal()
	ch := s.Subscribe()

	// Two changes without the subscriber draining: the stale one is
	// replaced, never blocking Set.
	s.Set("u1", false)
	s.Set("u2", false)

	select {
	case change := <-ch:
		if change.Identity == nil || change.Identity.ID != "u2" {
			t.Errorf("got change for %+v, want newest (u2)", change.Identity)
		}
	case <-time.After(time.Second):
		t.Fatal("no change received")
	}
}
