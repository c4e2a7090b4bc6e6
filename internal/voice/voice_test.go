package voice

import (
	"math"
	"testing"

	"github.com/cbegin/octasine-go/internal/envelope"
)

func TestMidiToFrequencyA4(t *testing.T) {
	f := MidiToFrequency(69)
	if math.Abs(f-440.0) > 1e-9 {
		t.Fatalf("MIDI note 69 = %f Hz, want 440", f)
	}
}

func TestNoteOnAllocatesFreeSlot(t *testing.T) {
	m := NewManager()
	v := m.NoteOn(60, 100, func() float64 { return 0 })
	if !v.Active || v.Pitch != 60 || v.Velocity != 100 {
		t.Fatalf("unexpected voice state: %+v", v)
	}
	if m.ActiveCount() != 1 {
		t.Fatalf("expected 1 active voice, got %d", m.ActiveCount())
	}
}

func TestNoteOffMovesMatchingVoicesToRelease(t *testing.T) {
	m := NewManager()
	v := m.NoteOn(60, 100, func() float64 { return 0 })
	for i := range v.Operators {
		v.Operators[i].Envelope.SetDurations(0.001, 0.001, 0.5, 0.05)
	}
	m.NoteOff(60)
	for i := range v.Operators {
		if v.Operators[i].Envelope.Stage() != envelope.StageRelease {
			t.Fatalf("expected release stage, got %v", v.Operators[i].Envelope.Stage())
		}
	}
}

func TestNoteOnIsIndexedDirectlyByPitch(t *testing.T) {
	m := NewManager()
	v60 := m.NoteOn(60, 100, func() float64 { return 0 })
	v64 := m.NoteOn(64, 80, func() float64 { return 0 })
	if v60 == v64 {
		t.Fatalf("distinct pitches must map to distinct slots")
	}
	if got := m.NoteOn(60, 50, func() float64 { return 0 }); got != v60 {
		t.Fatalf("re-keying pitch 60 must reuse its dedicated slot")
	}
	if m.ActiveCount() != 2 {
		t.Fatalf("expected 2 active voices, got %d", m.ActiveCount())
	}
}

func TestAllPitchesHaveDedicatedSlotsNoStealing(t *testing.T) {
	m := NewManager()
	for pitch := 0; pitch < MaxVoices; pitch++ {
		m.NoteOn(uint8(pitch), 100, func() float64 { return 0 })
	}
	if m.ActiveCount() != MaxVoices {
		t.Fatalf("expected all %d voices active, got %d", MaxVoices, m.ActiveCount())
	}
	// One more NoteOn for an already-active pitch must not disturb any
	// other pitch's slot, since every pitch owns its slot permanently.
	m.NoteOn(1, 127, func() float64 { return 0 })
	if m.ActiveCount() != MaxVoices {
		t.Fatalf("re-keying must not change active count, got %d", m.ActiveCount())
	}
}
