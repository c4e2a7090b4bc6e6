// Package envelope implements the per-operator ADSR stage machine
// (spec.md §4.2): a pure function of (stage, time-in-stage, stage-start
// value) that produces a logarithmically-eased volume curve, so loudness
// ramps feel perceptually linear rather than linear-in-amplitude.
package envelope

import (
	"math"

	"github.com/cbegin/octasine-go/internal/dsp"
)

// Stage names one point in the envelope's state machine, matching
// EnvelopeStage in original_source/octasine/src/common.rs.
type Stage int

const (
	StageAttack Stage = iota
	StageDecay
	StageSustain
	StageRelease
	StageEnded
	StageRestart
)

// restartDuration is how long the short "Restart" stage takes to fall from
// wherever a voice's volume was to zero before a retriggered note re-enters
// Attack, so re-pressing a still-sounding voice doesn't click.
const restartDuration = 0.008 // seconds

// Envelope is one operator's envelope state within one voice.
type Envelope struct {
	stage           Stage
	stageTime       float64
	stageStartValue float64

	attackDuration  float64
	decayDuration   float64
	sustainVolume   float64
	releaseDuration float64
}

// New returns an envelope sitting at stage Ended with volume 0, ready for a
// first key-on.
func New() *Envelope {
	return &Envelope{stage: StageEnded, stageStartValue: 0}
}

// SetDurations updates the operator's current attack/decay/release
// durations (seconds) and sustain level (normalized [0,1]); called once per
// sample from the interpolated processing values (spec.md §4.1/§4.2).
func (e *Envelope) SetDurations(attack, decay, sustain, release float64) {
	e.attackDuration = attack
	e.decayDuration = decay
	e.sustainVolume = sustain
	e.releaseDuration = release
}

// KeyOn starts (or restarts) the envelope. If it's already audible, it
// passes through a brief Restart stage first rather than jumping straight
// back to Attack, avoiding a discontinuity.
func (e *Envelope) KeyOn() {
	current := e.Value(nil)
	if current > 1e-4 {
		e.stage = StageRestart
	} else {
		e.stage = StageAttack
	}
	e.stageTime = 0
	e.stageStartValue = current
}

// KeyOff begins the release stage from wherever the envelope currently is.
func (e *Envelope) KeyOff() {
	e.stageStartValue = e.Value(nil)
	e.stage = StageRelease
	e.stageTime = 0
}

// Stage reports the current stage.
func (e *Envelope) Stage() Stage { return e.stage }

// Ended reports whether the envelope has fully decayed to silence and its
// voice slot can be reclaimed.
func (e *Envelope) Ended() bool { return e.stage == StageEnded }

// Advance steps the envelope forward by dt seconds (one sample at the
// current sample rate) using table to ease each stage's transition, and
// returns the new current volume.
func (e *Envelope) Advance(dt float64, table *dsp.Log10Table) float64 {
	e.stageTime += dt

	switch e.stage {
	case StageAttack:
		if e.attackDuration <= 0 || e.stageTime >= e.attackDuration {
			e.stage = StageDecay
			e.stageTime = 0
			e.stageStartValue = 1.0
		}
	case StageDecay:
		if e.decayDuration <= 0 || e.stageTime >= e.decayDuration {
			e.stage = StageSustain
			e.stageTime = 0
			e.stageStartValue = e.sustainVolume
		}
	case StageRelease:
		if e.releaseDuration <= 0 || e.stageTime >= e.releaseDuration {
			e.stage = StageEnded
			e.stageTime = 0
			e.stageStartValue = 0
		}
	case StageRestart:
		if e.stageTime >= restartDuration {
			e.stage = StageAttack
			e.stageTime = 0
			e.stageStartValue = 0
		}
	}

	return e.Value(table)
}

// Value computes the current volume without advancing time, for callers
// that only need a read (e.g. KeyOn/KeyOff capturing the value at a
// transition). table may be nil: curved stages then evaluate the same
// log10(9p+1) easing with math.Log10 instead of the lookup table.
func (e *Envelope) Value(table *dsp.Log10Table) float64 {
	switch e.stage {
	case StageSustain:
		return e.sustainVolume
	case StageEnded:
		return 0

	case StageAttack:
		return eased(table, e.stageStartValue, 1.0, e.stageTime, e.attackDuration)
	case StageDecay:
		return eased(table, e.stageStartValue, e.sustainVolume, e.stageTime, e.decayDuration)
	case StageRelease:
		return eased(table, e.stageStartValue, 0.0, e.stageTime, e.releaseDuration)
	case StageRestart:
		return eased(table, e.stageStartValue, 0.0, e.stageTime, restartDuration)
	}
	return 0
}

func eased(table *dsp.Log10Table, from, to, t, dur float64) float64 {
	if dur <= 0 {
		return to
	}
	progress := t / dur
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}
	if table == nil {
		return from + (to-from)*math.Log10(9*progress+1)
	}
	return from + (to-from)*table.LogCurve(progress)
}
