package autosave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/scribbly/scribbly/internal/logger"
)

type recordedSave struct {
	noteID  string
	content string
}

type saveRecorder struct {
	mu    sync.Mutex
	saves []recordedSave
	err   error
}

func (r *saveRecorder) save(_ context.Context, noteID, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, recordedSave{noteID: noteID, content: content})
	return r.err
}

func (r *saveRecorder) all() []recordedSave {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedSave(nil), r.saves...)
}

func testLogger() logger.Logger {
	return logger.New("error", false)
}

func waitForSaves(t *testing.T, r *saveRecorder, want int) []recordedSave {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if saves := r.all(); len(saves) >= want {
			return saves
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d saves, got %d", want, len(r.all()))
	return nil
}

func TestScheduleFiresAfterQuietPeriod(t *testing.T) {
	rec := &saveRecorder{}
	s := New(20*time.Millisecond, rec.save, testLogger())
	defer s.Stop()

	s.Schedule("n1", "hello")

	saves := waitForSaves(t, rec, 1)
	if saves[0].noteID != "n1" || saves[0].content != "hello" {
		t.Errorf("saved %+v, want n1/hello", saves[0])
	}
}

func TestScheduleDebouncesRepeatedEdits(t *testing.T) {
	rec := &saveRecorder{}
	s := New(50*time.Millisecond, rec.save, testLogger())
	defer s.Stop()

	// Edits inside the quiet period keep restarting the timer; only the
	// last content may be saved, exactly once.
	s.Schedule("n1", "a")
	time.Sleep(10 * time.Millisecond)
	s.Schedule("n1", "ab")
	time.Sleep(10 * time.Millisecond)
	s.Schedule("n1", "abc")

	saves := waitForSaves(t, rec, 1)
	time.Sleep(100 * time.Millisecond)

	saves = rec.all()
	if len(saves) != 1 {
		t.Fatalf("got %d saves, want 1", len(saves))
	}
	if saves[0].content != "abc" {
		t.Errorf("saved %q, want the last edit %q", saves[0].content, "abc")
	}
}

func TestCancelPreventsPendingSave(t *testing.T) {
	rec := &saveRecorder{}
	s := New(20*time.Millisecond, rec.save, testLogger())
	defer s.Stop()

	s.Schedule("n1", "doomed")
	s.Cancel("n1")

	time.Sleep(80 * time.Millisecond)
	if saves := rec.all(); len(saves) != 0 {
		t.Errorf("got %d saves after Cancel, want 0", len(saves))
	}
}

func TestSchedulerTracksNotesIndependently(t *testing.T) {
	rec := &saveRecorder{}
	s := New(20*time.Millisecond, rec.save, testLogger())
	defer s.Stop()

	s.Schedule("n1", "one")
	s.Schedule("n2", "two")
	s.Cancel("n1")

	saves := waitForSaves(t, rec, 1)
	time.Sleep(50 * time.Millisecond)

	saves = rec.all()
	if len(saves) != 1 || saves[0].noteID != "n2" {
		t.Errorf("saves = %+v, want only n2", saves)
	}
}

func TestSaveFailureIsSwallowed(t *testing.T) {
	rec := &saveRecorder{err: errors.New("remote down")}
	s := New(20*time.Millisecond, rec.save, testLogger())
	defer s.Stop()

	// Must not panic or block; the failure is only logged.
	s.Schedule("n1", "x")
	waitForSaves(t, rec, 1)
}

func TestStopRefusesNewWork(t *testing.T) {
	rec := &saveRecorder{}
	s := New(20*time.Millisecond, rec.save, testLogger())

	s.Schedule("n1", "pending")
	s.Stop()
	s.Schedule("n2", "after stop")

	time.Sleep(80 * time.Millisecond)
	if saves := rec.all(); len(saves) != 0 {
		t.Errorf("got %d saves after Stop, want 0", len(saves))
	}
}
