// Package lfo implements the per-voice low-frequency oscillator engine
// (spec.md §4.3): eight curve shapes, one-shot or free-running mode,
// optional BPM sync, and key-sync vs. random initial phase, driving any of
// the master/operator/other-LFO modulation targets enumerated in
// internal/param. Unlike the teacher's single oscillator shared across all
// voices, OctaSine gives every voice its own four LFOs so a chord's notes
// don't all wobble in lockstep.
package lfo

import "github.com/cbegin/octasine-go/internal/dsp"

// Shape is one of the eight curve shapes an LFO can run, matching LfoShape
// in original_source/octasine/src/common.rs.
type Shape int

const (
	ShapeSaw Shape = iota
	ShapeReverseSaw
	ShapeTriangle
	ShapeReverseTriangle
	ShapeSquare
	ShapeReverseSquare
	ShapeSine
	ShapeReverseSine
)

// Mode selects whether the LFO free-runs or plays once and holds, matching
// LfoMode in common.rs.
type Mode int

const (
	ModeForever Mode = iota
	ModeOnce
)

// calculateCurve evaluates shape at phase in [0, 1), returning a value in
// [-1, 1]. Mirrors CalculateCurve::calculate for LfoShape, which in turn
// delegates to VoiceLfo::calculate_curve.
func calculateCurve(shape Shape, phase float64) float64 {
	switch shape {
	case ShapeSaw:
		return 1.0 - 2.0*phase
	case ShapeReverseSaw:
		return 2.0*phase - 1.0
	case ShapeTriangle:
		return triangle(phase)
	case ShapeReverseTriangle:
		return -triangle(phase)
	case ShapeSquare:
		if phase < 0.5 {
			return 1.0
		}
		return -1.0
	case ShapeReverseSquare:
		if phase < 0.5 {
			return -1.0
		}
		return 1.0
	case ShapeSine:
		return dsp.FastSin(phase * dsp.Tau)
	case ShapeReverseSine:
		return -dsp.FastSin(phase * dsp.Tau)
	default:
		return 0
	}
}

func triangle(phase float64) float64 {
	switch {
	case phase < 0.25:
		return phase * 4
	case phase < 0.75:
		return 1 - (phase-0.25)*4
	default:
		return -1 + (phase-0.75)*4
	}
}

// LFO is one voice's instance of one of the synth's four LFO slots.
type LFO struct {
	Shape          Shape
	Mode           Mode
	BpmSync        bool
	KeySync        bool
	FrequencyRatio float64 // multiplies BPM-derived rate when BpmSync
	FrequencyFree  float64 // Hz multiplier when not BpmSync
	Amount         float64 // depth, processing-space [0, 2]
	Active         bool

	phase float64
	held  bool // true once a Once-mode LFO has completed its single cycle
}

// KeyOn resets phase to 0 if KeySync is set, or to a caller-supplied random
// value in [0,1) otherwise (spec.md §4.3: random-phase LFOs should not all
// restart in lockstep across a chord).
func (l *LFO) KeyOn(randomPhase float64) {
	l.held = false
	if l.KeySync {
		l.phase = 0
	} else {
		l.phase = dsp.WrapPhase(randomPhase)
	}
}

// cyclesPerSecond computes the oscillation rate from the LFO's own
// parameters and, when BpmSync is set, the host's current tempo.
func (l *LFO) cyclesPerSecond(bpm float64) float64 {
	if l.BpmSync {
		return (bpm / 60.0) * l.FrequencyRatio
	}
	return l.FrequencyFree * l.FrequencyRatio
}

// Advance steps the LFO by dt seconds and returns its current output,
// already scaled by Amount, in [-Amount, +Amount]. A disabled LFO always
// returns 0 without advancing phase.
func (l *LFO) Advance(dt, bpm float64) float64 {
	if !l.Active {
		return 0
	}
	if l.Mode == ModeOnce && l.held {
		return calculateCurve(l.Shape, 1.0) * l.Amount
	}

	value := calculateCurve(l.Shape, l.phase) * l.Amount

	next := l.phase + l.cyclesPerSecond(bpm)*dt
	if l.Mode == ModeOnce && next >= 1.0 {
		l.phase = 1.0
		l.held = true
	} else {
		l.phase = dsp.WrapPhase(next)
	}

	return value
}

// Reset rewinds the oscillator to phase 0 and clears a Once-mode hold.
func (l *LFO) Reset() {
	l.phase = 0
	l.held = false
}
