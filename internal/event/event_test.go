package event

import "testing"

func TestDecodeMIDINoteOn(t *testing.T) {
	e, ok := DecodeMIDI(4, 0b1001_0000, 60, 100)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if e.Kind != KindNoteOn || e.Pitch != 60 || e.Velocity != 100 || e.DeltaFrames != 4 {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestDecodeMIDINoteOnZeroVelocityIsNoteOff(t *testing.T) {
	e, ok := DecodeMIDI(0, 0b1001_0000, 60, 0)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if e.Kind != KindNoteOff {
		t.Fatalf("note-on with velocity 0 should decode as note-off, got %+v", e)
	}
}

func TestDecodeMIDINoteOff(t *testing.T) {
	e, ok := DecodeMIDI(0, 0b1000_0000, 60, 64)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if e.Kind != KindNoteOff {
		t.Fatalf("expected note-off, got %+v", e)
	}
}

func TestDecodeMIDIIgnoresOtherStatus(t *testing.T) {
	if _, ok := DecodeMIDI(0, 0b1011_0000, 7, 127); ok {
		t.Fatal("control-change status should not decode as a note event")
	}
}

func TestQueueDeliversInDeltaFrameOrder(t *testing.T) {
	var q Queue
	q.Enqueue(
		Event{DeltaFrames: 10, Kind: KindNoteOn, Pitch: 62},
		Event{DeltaFrames: 0, Kind: KindNoteOn, Pitch: 60},
		Event{DeltaFrames: 5, Kind: KindNoteOff, Pitch: 60},
	)

	if got := q.Drain(0); len(got) != 1 || got[0].Pitch != 60 {
		t.Fatalf("frame 0: got %+v", got)
	}
	if got := q.Drain(1); len(got) != 0 {
		t.Fatalf("frame 1 should be empty, got %+v", got)
	}
	if got := q.Drain(5); len(got) != 1 || got[0].Kind != KindNoteOff {
		t.Fatalf("frame 5: got %+v", got)
	}
	if got := q.Drain(10); len(got) != 1 || got[0].Pitch != 62 {
		t.Fatalf("frame 10: got %+v", got)
	}
	if q.Pending() != 0 {
		t.Fatalf("expected queue drained, %d left", q.Pending())
	}
}

func TestQueueRebase(t *testing.T) {
	var q Queue
	q.Enqueue(Event{DeltaFrames: 50, Kind: KindNoteOn, Pitch: 60})
	q.Rebase(32)
	got := q.Drain(18)
	if len(got) != 1 {
		t.Fatalf("expected event at rebased offset 18, got %+v", got)
	}
}
