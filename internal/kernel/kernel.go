// Package kernel implements the sample-generation inner loop (spec.md
// §4.6): per voice, per operator (processed in descending index order so a
// modulator's output is ready before the operator it feeds needs it),
// advance phase by frequency*dt and wrap it into [0, 1), apply
// feedback and incoming modulation, evaluate the oscillator, split the
// result into its additive (direct-to-mix) and modulation-output shares,
// pan, sum across voices, and hard-limit the result.
//
// The original engine runtime-selects an AVX/SSE2/scalar kernel per
// remaining-sample count (gen/mod.rs's process_f32_runtime_select); Go has
// no portable SIMD intrinsics, so Width and SelectWidth here only classify
// a remaining sample count (see DESIGN.md); nothing in this package or in
// the root Synth renders differently by Width. The arithmetic is one scalar
// path, executed once per sample.
package kernel

import (
	"math"

	"github.com/cbegin/octasine-go/internal/dsp"
	"github.com/cbegin/octasine-go/internal/operatorgraph"
	"github.com/cbegin/octasine-go/internal/voice"
)

// Width is a vector width the runtime dispatcher would pick on hardware
// that had it: 4, 2, or 1 samples at a time.
type Width int

const (
	Width4 Width = 4
	Width2 Width = 2
	Width1 Width = 1
)

// SelectWidth mirrors RemainingSamples::new in gen/mod.rs: choose the
// widest vector the remaining sample count in this block can fill.
func SelectWidth(remaining int) Width {
	switch {
	case remaining >= 4:
		return Width4
	case remaining >= 2:
		return Width2
	default:
		return Width1
	}
}

// OperatorParams is one operator's fully-interpolated, LFO-applied
// processing values for the sample currently being generated.
type OperatorParams struct {
	Volume          float64
	Additive        float64 // share of output sent straight to the mix
	PanLeft         float64
	PanRight        float64
	PanTendency     float64 // how hard panning biases the L/R mix of incoming modulation, spec.md §4.6
	Feedback        float64
	ModulationIndex float64
	FrequencyHz     float64
	IsWhiteNoise    bool
	ModTargets      []bool // which lower-indexed operators receive this operator's modulation output
}

// outputLimit is the hard-limit bound applied to the summed output.
const outputLimit = 5.0

// RenderVoice advances one active voice's operator phases and envelopes by
// one sample and returns its (unlimited, un-summed) stereo contribution.
// ops holds that voice's fully-resolved per-operator parameters for this
// sample, i.e. after the caller has applied that voice's own LFOs to the
// block-interpolated base values — each voice can hear a different
// modulation result from the same set of LFOs since phase and key-sync
// differ per voice (spec.md §4.3/§4.6).
func RenderVoice(v *voice.Voice, ops [voice.OperatorCount]OperatorParams, dt float64, table *dsp.Log10Table, noise func() float64) (left, right float64) {
	var envelopeVolume [voice.OperatorCount]float64
	var inputs [voice.OperatorCount]operatorgraph.OperatorInput

	for op := 0; op < voice.OperatorCount; op++ {
		envelopeVolume[op] = v.Operators[op].Envelope.Advance(dt, table)
		inputs[op] = operatorgraph.OperatorInput{
			Volume:          ops[op].Volume * envelopeVolume[op],
			AdditiveZero:    ops[op].Additive < dsp.ZeroValueLimit,
			ModulationIndex: ops[op].ModulationIndex,
			IsWhiteNoise:    ops[op].IsWhiteNoise,
			ModTargets:      ops[op].ModTargets,
		}
	}

	generate := operatorgraph.Analyze(inputs)

	var modulationInput [voice.OperatorCount]float64
	voiceVolumeFactor := velocityFactor(v.Velocity)

	for op := voice.OperatorCount - 1; op >= 0; op-- {
		if !generate[op] {
			continue
		}

		opVol := ops[op].Volume * envelopeVolume[op]
		if opVol < dsp.ZeroValueLimit {
			continue
		}

		frequency := ops[op].FrequencyHz
		v.Operators[op].Phase = dsp.WrapPhase(v.Operators[op].Phase + frequency*dt)

		var sample float64
		if ops[op].IsWhiteNoise {
			sample = noise()*2 - 1
		} else {
			feedbackTerm := ops[op].Feedback * dsp.FastSin(v.Operators[op].Phase*dsp.Tau)
			modIn := modulationInput[op]
			sample = dsp.FastSin(v.Operators[op].Phase*dsp.Tau + ops[op].ModulationIndex*(feedbackTerm+modIn))
		}

		sample *= opVol

		additiveOut := sample * ops[op].Additive
		modulationOut := sample * (1 - ops[op].Additive)

		left += additiveOut * ops[op].PanLeft * voiceVolumeFactor
		right += additiveOut * ops[op].PanRight * voiceVolumeFactor

		for target, active := range ops[op].ModTargets {
			if !active {
				continue
			}
			// Pan-tendency-weighted mix: a hard-panned operator feeds
			// mostly its own channel's share of the modulation signal
			// into the target, a centered one feeds an even blend
			// (spec.md §4.6).
			panned := modulationOut * (ops[op].PanLeft + ops[op].PanRight) / 2
			mixed := ops[op].PanTendency*panned + (1-ops[op].PanTendency)*modulationOut
			modulationInput[target] += mixed
		}
	}

	return left, right
}

// GenerateSample renders every active voice with the same (non-per-voice-
// LFO-adjusted) operator parameters and returns the summed, hard-limited
// stereo output. It applies no per-voice LFO modulation. The root Synth
// does not use it: it always calls RenderVoice directly, after applying
// each voice's own LFOs.
func GenerateSample(mgr *voice.Manager, ops [voice.OperatorCount]OperatorParams, sampleRate float64, table *dsp.Log10Table, noise func() float64) (left, right float64) {
	dt := 1.0 / sampleRate

	var sumL, sumR float64
	for _, v := range mgr.Voices() {
		if !v.Active {
			continue
		}
		l, r := RenderVoice(v, ops, dt, table, noise)
		sumL += l
		sumR += r
	}

	left = dsp.HardLimit(sumL, -outputLimit, outputLimit)
	right = dsp.HardLimit(sumR, -outputLimit, outputLimit)
	return left, right
}

// velocityFactor scales a voice's overall output by MIDI velocity, giving
// harder key presses a louder (not just more-modulated) result.
func velocityFactor(velocity uint8) float64 {
	if velocity == 0 {
		return 0
	}
	return math.Max(0, float64(velocity)/127.0)
}
