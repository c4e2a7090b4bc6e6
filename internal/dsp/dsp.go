// Package dsp holds the small numeric building blocks shared by every voice:
// a fast polynomial sine approximation, a precomputed log10 lookup used to
// shape envelope curves, and the phase/limiting helpers the rest of the
// engine leans on every sample.
package dsp

import "math"

// Tau is a full turn in radians, used throughout the engine since phase is
// tracked in cycles (0..1) and only converted to radians immediately before
// a sine evaluation.
const Tau = 2 * math.Pi

// ZeroValueLimit is the epsilon below which a gain-like value is treated as
// silent for dependency-pruning purposes (spec.md §4.5).
const ZeroValueLimit = 0.0005

// HardLimit saturates v to [lo, hi]. Used once per sample on the final
// mixed output (spec.md §4.6 step 6) and anywhere a user-controlled value
// needs to stay finite.
func HardLimit(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapPhase reduces a phase accumulator into [0, 1). internal/kernel and
// internal/lfo call it on every phase advance, so stored phases stay in
// [0, 1) and do not grow across a long-held note.
func WrapPhase(p float64) float64 {
	p = math.Mod(p, 1.0)
	if p < 0 {
		p += 1.0
	}
	return p
}

// FastSin approximates sin(phaseRadians) for phaseRadians in roughly
// [-4*Pi, 4*Pi] (the kernel only ever feeds it a phase in [0, Tau] plus a
// feedback/modulation term of similar magnitude). It range-reduces to
// [-Pi/2, Pi/2] by folding around the peaks and evaluates the degree-11
// minimax polynomial from Abramowitz & Stegun 4.3.97 there, which is both
// branch-light and fast enough to beat math.Sin by a wide margin on the
// per-sample, per-operator hot path described in spec.md §4.6.
//
// Max absolute error across [-Pi, Pi] is below 1e-7 (A&S 4.3.97's stated
// bound), comfortably inside the 1e-5 accuracy target in spec.md §4.6; the
// earlier single-fold Bhaskara-style approximation this replaced only hit
// ~1e-3 and did not actually meet that target.
func FastSin(x float64) float64 {
	// Range-reduce to [-Pi, Pi].
	x = math.Mod(x+math.Pi, Tau)
	if x < 0 {
		x += Tau
	}
	x -= math.Pi

	// Fold into [-Pi/2, Pi/2] using sin(x) = sin(Pi-x) / sin(x) = sin(-Pi-x).
	switch {
	case x > math.Pi/2:
		x = math.Pi - x
	case x < -math.Pi/2:
		x = -math.Pi - x
	}

	const (
		a1 = 0.1666666664
		a2 = 0.0083333315
		a3 = 0.0001984090
		a4 = 0.0000027526
		a5 = 0.0000000239
	)
	x2 := x * x
	return x * (1 - x2*(a1-x2*(a2-x2*(a3-x2*(a4-x2*a5)))))
}

// Log10Table is a precomputed log10 lookup over (0, 10] used to shape
// envelope transitions so they match perceived loudness (spec.md §4.2):
// linear time but logarithmic amplitude growth. Evaluated with linear
// interpolation between table entries, which is accurate enough for an
// audio envelope and avoids a real log10 call on the audio thread.
type Log10Table struct {
	values [tableSize + 1]float64
}

const tableSize = 1024
const tableDomainMax = 10.0

// NewLog10Table builds the table once; callers hold on to it (it lives on
// the per-synth audio state, not per-voice, mirroring how the original
// engine shares one table across all voices).
func NewLog10Table() *Log10Table {
	var t Log10Table
	for i := range t.values {
		// Map table index to (0, 10], avoiding log10(0).
		x := tableDomainMax * (float64(i) + 1) / float64(tableSize+1)
		t.values[i] = math.Log10(x)
	}
	return &t
}

// Get returns an approximation of log10(x) for x in (0, 10]. x outside that
// range is clamped.
func (t *Log10Table) Get(x float64) float64 {
	step := tableDomainMax / float64(tableSize+1)
	x = HardLimit(x, step, tableDomainMax)
	pos := x/step - 1
	i0 := int(pos)
	if i0 < 0 {
		i0 = 0
	}
	if i0 >= tableSize {
		return t.values[tableSize]
	}
	frac := pos - float64(i0)
	return t.values[i0]*(1-frac) + t.values[i0+1]*frac
}

// LogCurve maps progress p in [0,1] to an eased progress in [0,1] using the
// log10 table, giving envelope segments a perceptually-linear loudness
// ramp instead of a linear-amplitude one (spec.md §4.2). g(0) = 0, g(1) = 1,
// monotonically increasing.
func (t *Log10Table) LogCurve(p float64) float64 {
	p = HardLimit(p, 0, 1)
	// log10(9*p + 1) maps [0,1] -> [0,1] monotonically and logarithmically.
	return t.Get(9*p + 1)
}
