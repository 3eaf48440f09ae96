package store

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/visagelabs/go-visage/pkg/pad"
	"github.com/visagelabs/go-visage/pkg/semantics"
)

func mustStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadMoodEmpty(t *testing.T) {
	s := mustStore(t)

	if _, err := s.LoadMood(); !errors.Is(err, ErrNoMood) {
		t.Errorf("Expected ErrNoMood, got %v", err)
	}
}

func TestSaveLoadMoodRoundTrip(t *testing.T) {
	s := mustStore(t)
	want := pad.Emotion{Pleasure: 0.8, Arousal: 0.5, Dominance: 0.4}

	if err := s.SaveMood(want); err != nil {
		t.Fatalf("SaveMood failed: %v", err)
	}

	got, err := s.LoadMood()
	if err != nil {
		t.Fatalf("LoadMood failed: %v", err)
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestSaveMoodUpserts(t *testing.T) {
	s := mustStore(t)

	s.SaveMood(pad.Happy)
	s.SaveMood(pad.Sad)

	got, err := s.LoadMood()
	if err != nil {
		t.Fatalf("LoadMood failed: %v", err)
	}
	if got != pad.Sad {
		t.Errorf("Expected last write to win, got %+v", got)
	}
}

func TestSaveMoodClamps(t *testing.T) {
	s := mustStore(t)

	s.SaveMood(pad.Emotion{Pleasure: 5, Arousal: -5, Dominance: 0})

	got, err := s.LoadMood()
	if err != nil {
		t.Fatalf("LoadMood failed: %v", err)
	}
	if got.Pleasure != 1 || got.Arousal != -1 {
		t.Errorf("Expected clamped mood, got %+v", got)
	}
}

func TestAppendRecordsIdempotent(t *testing.T) {
	s := mustStore(t)

	records := []semantics.Record{
		{ID: uuid.New(), Category: semantics.CategoryJoy, Variant: "joy_bounce", At: time.Now().Add(-time.Minute)},
		{ID: uuid.New(), Category: semantics.CategoryCalm, Variant: "calm_drift", At: time.Now()},
	}

	if err := s.AppendRecords(records); err != nil {
		t.Fatalf("AppendRecords failed: %v", err)
	}
	// Second pass with the same ids must not duplicate.
	if err := s.AppendRecords(records); err != nil {
		t.Fatalf("Repeated AppendRecords failed: %v", err)
	}

	got, err := s.RecentRecords(10)
	if err != nil {
		t.Fatalf("RecentRecords failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(got))
	}
	if got[0].Category != semantics.CategoryCalm {
		t.Errorf("Expected newest first, got %s", got[0].Category)
	}
	if got[1].ID != records[0].ID {
		t.Errorf("Record id mangled in round trip: %s vs %s", got[1].ID, records[0].ID)
	}
}

func TestAppendRecordsEmpty(t *testing.T) {
	s := mustStore(t)
	if err := s.AppendRecords(nil); err != nil {
		t.Errorf("Appending nothing should succeed, got %v", err)
	}
}
