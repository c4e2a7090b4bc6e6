package param

import "math"

// Law describes how an LFO addition combines with a parameter's processing
// value. Grounded on original_source/octasine/src/parameters/processing/
// parameters.rs: MasterVolumeProcessingParameter and
// OperatorVolumeProcessingParameter (and, by the same reasoning,
// LfoAmountProcessingParameter, since it scales another LFO's output the
// same way a voice volume does) use a multiplicative 2^addition law so that
// modulation feels like decibels rather than raw gain; every other
// parameter kind is modulated additively in normalized [0,1] space before
// being converted to its processing value.
type Law int

const (
	LawAdditive Law = iota
	LawMultiplicative
)

// Law reports which combination rule applies to LFO modulation of k.
func (k Kind) Law() Law {
	switch k {
	case KindMasterVolume, KindOperatorVolume, KindLfoAmount:
		return LawMultiplicative
	default:
		return LawAdditive
	}
}

// ValueWithLFOAddition combines a parameter's normalized host value with an
// LFO addition (itself in normalized units, i.e. already scaled by the
// LFO's depth) and returns the resulting processing value, following
// get_value_with_lfo_addition in parameters/processing/parameters.rs.
func ValueWithLFOAddition(k Kind, normalized, lfoAddition float64, ctx Context) float64 {
	switch k.Law() {
	case LawMultiplicative:
		return ToProcessing(k, normalized, ctx) * math.Pow(2, lfoAddition)
	default:
		clamped := normalized + lfoAddition
		if clamped < 0 {
			clamped = 0
		} else if clamped > 1 {
			clamped = 1
		}
		return ToProcessing(k, clamped, ctx)
	}
}
