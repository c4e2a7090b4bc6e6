// Package octasine is the host-facing surface of a polyphonic
// four-operator FM synthesizer's audio-generation core (spec.md §1): a
// MIDI-to-PCM signal path built from interpolated parameters, per-voice
// ADSR envelopes and LFOs, an operator modulation DAG with dependency
// pruning, and a sample-generation kernel that renders one sample at a time
// (there is no multi-sample vector path). It deliberately does
// not implement a GUI, a patch/bank file-format codec, a host plug-in ABI,
// settings persistence, or a benchmark harness (spec.md §1); see
// internal/patch and internal/hostio for minimal stand-ins used by
// cmd/octasine-render.
package octasine

import (
	"math/rand"
	"sync"

	"github.com/cbegin/octasine-go/internal/dsp"
	"github.com/cbegin/octasine-go/internal/event"
	"github.com/cbegin/octasine-go/internal/kernel"
	"github.com/cbegin/octasine-go/internal/param"
	"github.com/cbegin/octasine-go/internal/voice"
)

// DefaultSampleRate matches SampleRate's Default in
// original_source/octasine/src/common.rs.
const DefaultSampleRate = 44100.0

// DefaultBPM matches BeatsPerMinute's Default in common.rs.
const DefaultBPM = 120.0

type paramKey struct {
	kind Kind
	op   int
	lfo  int
}

// Kind re-exports internal/param's parameter kind so callers outside this
// module never need to import an internal package.
type Kind = param.Kind

// Synth is the audio-generation core. The control/GUI side calls
// SetParameterNormalized/NoteOn/NoteOff/SetBPM at any time; the audio
// thread calls Process. Parameter values and tempo cross that boundary
// through atomics (spec.md §5) and never block. Note events go through a
// queue guarded by a mutex that Process holds for a whole render, so
// NoteOn/NoteOff/QueueEvent wait while a render is in progress and Process
// waits while one of them holds the lock.
type Synth struct {
	mu sync.Mutex

	sampleRate float64
	bpm        param.AtomicNormalized // tempo mapped from 20..300 BPM onto [0,1]; see bpmToNormalized

	table  *dsp.Log10Table
	voices *voice.Manager
	queue  event.Queue

	descriptors []param.Descriptor
	host        []*param.AtomicNormalized
	interp      []param.Interpolatable
	ctx         []param.Context
	index       map[paramKey]int

	rng *rand.Rand // audio-thread-only: Process runs on a single goroutine
}

// NewSynth returns a Synth ready to render at sampleRate.
func NewSynth(sampleRate float64) *Synth {
	s := &Synth{
		sampleRate:  sampleRate,
		table:       dsp.NewLog10Table(),
		voices:      voice.NewManager(),
		descriptors: param.List(),
		rng:         rand.New(rand.NewSource(1)),
	}
	s.bpm.Store(bpmToNormalized(DefaultBPM))

	s.host = make([]*param.AtomicNormalized, len(s.descriptors))
	s.interp = make([]param.Interpolatable, len(s.descriptors))
	s.ctx = make([]param.Context, len(s.descriptors))
	s.index = make(map[paramKey]int, len(s.descriptors))

	for i, d := range s.descriptors {
		s.index[paramKey{d.Kind, d.OperatorIndex, d.LfoIndex}] = i
		s.ctx[i] = contextFor(d)
		def := defaultNormalized(d.Kind, s.ctx[i])
		if d.Kind == param.KindOperatorVolume && d.OperatorIndex > 0 {
			def = 0 // operators 1-3 start silent: operator 0 plays alone
		}
		s.host[i] = param.NewAtomicNormalized(def)
		s.interp[i] = param.NewInterpolatable(d.Kind, def)
	}

	return s
}

// bpmToNormalized/normalizedToBPM store tempo (20..300 BPM) in the same
// atomic-bitcast-float slot type used for every other parameter, avoiding a
// second storage mechanism for the one value that isn't host-normalized.
func bpmToNormalized(bpm float64) float64 { return (bpm - 20.0) / 280.0 }
func normalizedToBPM(n float64) float64   { return 20.0 + n*280.0 }

// SetSampleRate changes the render sample rate. It takes the same mutex as
// Process, so it never changes the rate in the middle of a render.
func (s *Synth) SetSampleRate(sampleRate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sampleRate = sampleRate
}

// SetBPM publishes a new tempo for BPM-synced LFOs to pick up.
func (s *Synth) SetBPM(bpm float64) {
	s.bpm.Store(bpmToNormalized(bpm))
}

// BPM reads the current tempo.
func (s *Synth) BPM() float64 {
	return normalizedToBPM(s.bpm.Load())
}

// ParameterCount returns how many parameters List() and the indexed
// accessors below expose (SPEC_FULL.md §7).
func (s *Synth) ParameterCount() int { return len(s.descriptors) }

// ParameterDescriptor returns metadata about parameter index.
func (s *Synth) ParameterDescriptor(index int) param.Descriptor { return s.descriptors[index] }

// SetParameterNormalized publishes a new host-facing [0,1] value for
// parameter index. Safe to call from any goroutine at any time.
func (s *Synth) SetParameterNormalized(index int, value float64) {
	s.host[index].Store(value)
}

// ParameterNormalized reads the most recently published value for
// parameter index.
func (s *Synth) ParameterNormalized(index int) float64 {
	return s.host[index].Load()
}

// ParameterText renders parameter index's current processing value as the
// host would display it (SPEC_FULL.md §6).
func (s *Synth) ParameterText(index int) string {
	d := s.descriptors[index]
	processing := param.ToProcessing(d.Kind, s.host[index].Load(), s.ctx[index])
	return param.ToText(d.Kind, processing, s.ctx[index])
}

// QueueEvent schedules a MIDI-derived event at a delta-frame offset into
// the block that will next be rendered (spec.md §4.7).
func (s *Synth) QueueEvent(e event.Event) {
	s.mu.Lock()
	s.queue.Enqueue(e)
	s.mu.Unlock()
}

// NoteOn is a convenience equivalent to QueueEvent at DeltaFrames 0, for
// hosts/tests that don't batch events into blocks themselves.
func (s *Synth) NoteOn(pitch, velocity uint8) {
	s.QueueEvent(event.Event{Kind: event.KindNoteOn, Pitch: pitch, Velocity: velocity})
}

// NoteOff is the NoteOn counterpart.
func (s *Synth) NoteOff(pitch uint8) {
	s.QueueEvent(event.Event{Kind: event.KindNoteOff, Pitch: pitch})
}

// ActiveVoiceCount reports how many voices are currently sounding.
func (s *Synth) ActiveVoiceCount() int {
	return s.voices.ActiveCount()
}

// Process renders len(dst)/2 interleaved stereo frames, implementing
// hostio.SampleSource. This is the audio thread's only entry point: it
// drains due events, advances every parameter's interpolation ramp and
// every voice's envelopes/LFOs, and calls into internal/kernel for the
// actual signal path (spec.md §4.6).
func (s *Synth) Process(dst []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frames := len(dst) / 2
	if frames == 0 {
		return
	}
	dt := 1.0 / s.sampleRate
	bpm := s.BPM()

	for frame := 0; frame < frames; frame++ {
		for _, e := range s.queue.Drain(frame) {
			switch e.Kind {
			case event.KindNoteOn:
				s.voices.NoteOn(e.Pitch, e.Velocity, s.rng.Float64)
			case event.KindNoteOff:
				s.voices.NoteOff(e.Pitch)
			}
		}

		for i := range s.interp {
			s.interp[i].SetTarget(s.host[i].Load())
			s.interp[i].Advance()
		}

		base := s.baseOperatorParams()
		masterVolume := param.ToProcessing(param.KindMasterVolume, s.interp[s.index[paramKey{kind: param.KindMasterVolume, op: -1, lfo: -1}]].Current, param.Context{})
		masterFrequency := param.ToProcessing(param.KindMasterFrequency, s.interp[s.index[paramKey{kind: param.KindMasterFrequency, op: -1, lfo: -1}]].Current, param.Context{})

		var left, right float64
		for _, v := range s.voices.Voices() {
			if !v.Active {
				continue
			}

			lfoOut := s.advanceVoiceLFOs(v, dt, bpm)
			ops := applyLFOsToOperators(base, lfoOut, v.BaseFrequency, masterFrequency, masterVolume)

			l, r := kernel.RenderVoice(v, ops, dt, s.table, s.rng.Float64)
			left += l
			right += r
		}

		left = dsp.HardLimit(left, -5, 5)
		right = dsp.HardLimit(right, -5, 5)
		dst[2*frame] = float32(left)
		dst[2*frame+1] = float32(right)
	}

	s.voices.Advance(float64(frames) * dt)
	s.queue.Rebase(frames)
}
