package session

import (
	"reflect"
	"testing"
)

func TestStatusLogAppendAndEntries(t *testing.T) {
	l := NewStatusLog()
	if seq := l.Append(StatusFetching); seq != 1 {
		t.Errorf("first Append seq = %d, want 1", seq)
	}
	if seq := l.Append(StatusCacheHit); seq != 2 {
		t.Errorf("second Append seq = %d, want 2", seq)
	}

	want := []string{StatusFetching, StatusCacheHit}
	if got := l.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries = %v, want %v", got, want)
	}
}

func TestStatusLogMarkDoneAppendsInPlace(t *testing.T) {
	l := NewStatusLog()
	seq := l.Append(StatusFetching)
	l.Append("some later entry")
	l.MarkDone(seq)

	got := l.Entries()
	if got[0] != StatusFetching+StatusDone {
		t.Errorf("entry = %q, want fetching entry with done suffix", got[0])
	}
	if got[1] != "some later entry" {
		t.Errorf("later entry mutated: %q", got[1])
	}
}

func TestStatusLogMarkDoneIsIdempotent(t *testing.T) {
	l := NewStatusLog()
	seq := l.Append(StatusFetching)
	l.MarkDone(seq)
	l.MarkDone(seq)

	if got := l.Entries()[0]; got != StatusFetching+StatusDone {
		t.Errorf("entry = %q, want a single done suffix", got)
	}
}

func TestStatusLogMarkDoneUnknownSeq(t *testing.T) {
	l := NewStatusLog()
	l.MarkDone(0)
	l.MarkDone(7)
	if len(l.Entries()) != 0 {
		t.Error("MarkDone on unknown seq should be a no-op")
	}
}

func TestStatusLogEntriesSnapshot(t *testing.T) {
	l := NewStatusLog()
	l.Append(StatusFetching)

	snap := l.Entries()
	l.Append(StatusCacheHit)
	if len(snap) != 1 {
		t.Error("snapshot grew after a later Append")
	}
}

func TestStatusLogReset(t *testing.T) {
	l := NewStatusLog()
	l.Append(StatusFetching)
	l.Reset()
	if len(l.Entries()) != 0 {
		t.Error("Reset should clear the log")
	}
	if seq := l.Append(StatusFetching); seq != 1 {
		t.Errorf("seq after Reset = %d, want 1", seq)
	}
}
