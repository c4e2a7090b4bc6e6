// Package voice implements the polyphonic voice manager (spec.md §4.4):
// up to 128 simultaneous voices, each a MIDI pitch's operator envelopes,
// operator phase accumulators, and a private set of four LFOs, allocated
// on note-on and released once every operator's envelope has ended.
package voice

import (
	"math"

	"github.com/cbegin/octasine-go/internal/envelope"
	"github.com/cbegin/octasine-go/internal/lfo"
)

// MaxVoices is the polyphony ceiling, matching AudioState's
// voices: [Voice; 128] in original_source/octasine/src/audio/mod.rs.
const MaxVoices = 128

// OperatorCount matches the fixed four-operator data model (spec.md §3).
const OperatorCount = 4

// LfoCount matches the fixed four-LFO data model (spec.md §3).
const LfoCount = 4

// OperatorState is one operator's per-voice phase and envelope.
type OperatorState struct {
	Envelope *envelope.Envelope
	Phase    float64 // cycles, [0, 1); wrapped on every advance
}

// Voice is one polyphonic slot.
type Voice struct {
	Active        bool
	Pitch         uint8
	Velocity      uint8
	BaseFrequency float64

	Operators [OperatorCount]OperatorState
	Lfos      [LfoCount]lfo.LFO
}

func newVoice() *Voice {
	v := &Voice{}
	for i := range v.Operators {
		v.Operators[i].Envelope = envelope.New()
	}
	return v
}

// Ended reports whether every operator envelope has fully decayed, meaning
// this voice's slot can be reused without an audible cut.
func (v *Voice) Ended() bool {
	for i := range v.Operators {
		if !v.Operators[i].Envelope.Ended() {
			return false
		}
	}
	return true
}

// MidiToFrequency converts a MIDI note number to Hz using equal
// temperament tuned to A4 = 440Hz (MIDI note 69), the conversion the
// teacher's engine uses (internal/fm/engine.go's midiToFreq) generalized
// to floating-point pitch so portamento/pitch-bend could later feed it a
// fractional note number.
func MidiToFrequency(pitch float64) float64 {
	return 440.0 * math.Pow(2, (pitch-69.0)/12.0)
}

// Manager owns the fixed pool of voices, indexed directly by MIDI pitch
// (spec.md §3: "reused by (pitch → slot) mapping"). Since there are exactly
// 128 MIDI pitches and 128 voice slots, every pitch owns a dedicated slot
// for the process's lifetime; there is no contention and so no stealing.
type Manager struct {
	voices [MaxVoices]*Voice
}

// NewManager returns a manager with every slot initialized but inactive.
func NewManager() *Manager {
	m := &Manager{}
	for i := range m.voices {
		m.voices[i] = newVoice()
		m.voices[i].Pitch = uint8(i)
	}
	return m
}

// Voices exposes the underlying slots for the sample-generation kernel to
// iterate; only Active ones need rendering.
func (m *Manager) Voices() []*Voice {
	return m.voices[:]
}

// NoteOn (re)activates pitch's dedicated voice slot. If the slot is already
// sounding (a re-key of a held or releasing note), KeyOn enters the brief
// Restart substage instead of jumping straight back to Attack (spec.md
// §3 Lifecycle, §4.2). randomPhase feeds any per-voice LFO that isn't
// key-synced.
func (m *Manager) NoteOn(pitch, velocity uint8, randomPhase func() float64) *Voice {
	v := m.voices[pitch]

	v.Active = true
	v.Velocity = velocity
	v.BaseFrequency = MidiToFrequency(float64(pitch))

	for i := range v.Operators {
		v.Operators[i].Envelope.KeyOn()
	}
	for i := range v.Lfos {
		v.Lfos[i].KeyOn(randomPhase())
	}

	return v
}

// NoteOff releases pitch's voice, if sounding, into its release stage; it
// does not immediately deactivate it. Ended() later reports when the slot
// is free of audible envelopes (spec.md §4.4).
func (m *Manager) NoteOff(pitch uint8) {
	v := m.voices[pitch]
	if !v.Active {
		return
	}
	for i := range v.Operators {
		v.Operators[i].Envelope.KeyOff()
	}
}

// Advance deactivates any voice whose envelopes have all ended, making it
// eligible to be skipped entirely by the sample-generation kernel
// (spec.md §3 invariant: an inactive voice contributes zero and is
// skipped).
func (m *Manager) Advance(dt float64) {
	for _, v := range m.voices {
		if v.Active && v.Ended() {
			v.Active = false
		}
	}
}

// ActiveCount reports how many voices are currently sounding.
func (m *Manager) ActiveCount() int {
	n := 0
	for _, v := range m.voices {
		if v.Active {
			n++
		}
	}
	return n
}
