package param

import "math"

// Context carries the extra bits a conversion needs beyond the kind and the
// normalized value itself: how many modulation-target bits an operator's
// ModTargets parameter holds (operator index i has i target bits, since an
// operator may only modulate a lower-indexed one), and how many distinct
// destinations an LFO's Target parameter can select among (varies by LFO
// index: an LFO may only target strictly lower-indexed LFOs, spec.md §4.3).
type Context struct {
	ModTargetBits  int
	LfoTargetCount int
}

// Duration bounds for the envelope-stage durations, in seconds. Spans four
// orders of magnitude on an exponential curve so that fine control is
// available near the fast end, matching how the original's duration
// parameters are not linear in normalized space.
const (
	minStageDuration = 0.001
	maxStageDuration = 4.0
)

// Frequency multiplier bounds for master frequency: +/- one octave either
// side of unity. (Operator "free" tuning uses operatorFrequencyFreeSteps.)
const freeFrequencyOctaveRange = 1.0

// Fine-tune bounds: a much narrower multiplier range than "free", for
// sub-semitone correction.
const fineFrequencyRange = 0.07 // +/- 0.07 octave (~5%), a little under a semitone

// frequencyRatioSteps lists the common small-integer and simple-fraction FM
// ratios a carrier/modulator pair is tuned to relative to the voice's base
// frequency. Grounded on the step-table idiom in
// original_source/octasine/src/parameters/lfo_frequency_free.rs (the
// operator ratio table itself wasn't present in the retrieved pack; this
// enumerates the ratios an FM patch designer reaches for in practice).
var frequencyRatioSteps = []float64{
	0.25, 0.5, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16,
}

// lfoFrequencyFreeSteps is the LFO free-frequency step table, taken
// verbatim from original_source/octasine/src/parameters/lfo_frequency_free.rs.
var lfoFrequencyFreeSteps = []float64{1.0 / 16.0, 0.5, 0.9, 1.0, 1.1, 2.0, 16.0}

// operatorFrequencyFreeSteps mirrors the LFO free-frequency table's shape
// (same step idiom) but spans a wider multiplier range suited to carrier/
// modulator detuning rather than LFO speed.
var operatorFrequencyFreeSteps = []float64{
	1.0 / 4.0, 1.0 / 2.0, 0.9, 1.0, 1.1, 2.0, 4.0,
}

// modulationIndexSteps is the modulation-index ("mod out") step table.
// Grounded on the step-table idiom in
// original_source/octasine/src/parameters/operator_mod_out.rs (the exact
// OPERATOR_MOD_INDEX_STEPS constants weren't present in the retrieved
// pack); these span the range from barely-perceptible FM to harsh enough to
// turn a sine into noise.
var modulationIndexSteps = []float64{
	0, 0.5, 1, 1.5, 2, 3, 4, 6, 8, 12, 16, 24, 32, 48, 64,
}

// ToProcessing converts a normalized [0,1] host value into the private
// processing value used inside the audio-generation core, per spec.md §4.1
// and the per-kind tables in original_source/octasine/src/parameters/*.
func ToProcessing(k Kind, normalized float64, ctx Context) float64 {
	normalized = clamp01(normalized)

	switch k {
	case KindMasterVolume, KindOperatorVolume:
		return normalized * 2.0

	case KindMasterFrequency:
		return math.Pow(2, (normalized-0.5)*2*freeFrequencyOctaveRange)

	case KindOperatorActive, KindLfoBpmSync, KindLfoActive, KindLfoKeySync:
		return math.Round(normalized)

	case KindOperatorAdditive, KindOperatorSustainVolume, KindOperatorPanning:
		return normalized

	case KindOperatorWaveType:
		return stepIndex(normalized, 2)

	case KindOperatorModTargets:
		return stepIndex(normalized, 1<<uint(ctx.ModTargetBits))

	case KindOperatorModulationIndex:
		return stepValue(normalized, modulationIndexSteps)

	case KindOperatorFeedback:
		return normalized

	case KindOperatorFrequencyRatio, KindLfoFrequencyRatio:
		return stepValue(normalized, frequencyRatioSteps)

	case KindOperatorFrequencyFree:
		return stepValue(normalized, operatorFrequencyFreeSteps)

	case KindLfoFrequencyFree:
		return stepValue(normalized, lfoFrequencyFreeSteps)

	case KindOperatorFrequencyFine:
		return math.Pow(2, (normalized-0.5)*2*fineFrequencyRange)

	case KindOperatorAttackDuration, KindOperatorDecayDuration, KindOperatorReleaseDuration:
		return minStageDuration * math.Pow(maxStageDuration/minStageDuration, normalized)

	case KindLfoTarget:
		return stepIndex(normalized, ctx.LfoTargetCount)

	case KindLfoMode:
		return stepIndex(normalized, 2)

	case KindLfoShape:
		return stepIndex(normalized, 8)

	case KindLfoAmount:
		return normalized * 2.0

	default:
		return normalized
	}
}

// ToNormalized is the inverse of ToProcessing, used when a patch stores (or
// a text field edits) a processing-space value and the host-facing
// normalized value must be recovered.
func ToNormalized(k Kind, processing float64, ctx Context) float64 {
	switch k {
	case KindMasterVolume, KindOperatorVolume:
		return clamp01(processing / 2.0)

	case KindMasterFrequency:
		return clamp01(math.Log2(processing)/(2*freeFrequencyOctaveRange) + 0.5)

	case KindOperatorActive, KindLfoBpmSync, KindLfoActive, KindLfoKeySync:
		return clamp01(processing)

	case KindOperatorAdditive, KindOperatorSustainVolume, KindOperatorPanning, KindOperatorFeedback:
		return clamp01(processing)

	case KindOperatorWaveType:
		return unstepIndex(processing, 2)

	case KindOperatorModTargets:
		return unstepIndex(processing, 1<<uint(ctx.ModTargetBits))

	case KindOperatorModulationIndex:
		return unstepValue(processing, modulationIndexSteps)

	case KindOperatorFrequencyRatio, KindLfoFrequencyRatio:
		return unstepValue(processing, frequencyRatioSteps)

	case KindOperatorFrequencyFree:
		return unstepValue(processing, operatorFrequencyFreeSteps)

	case KindLfoFrequencyFree:
		return unstepValue(processing, lfoFrequencyFreeSteps)

	case KindOperatorFrequencyFine:
		return clamp01(math.Log2(processing)/(2*fineFrequencyRange) + 0.5)

	case KindOperatorAttackDuration, KindOperatorDecayDuration, KindOperatorReleaseDuration:
		return clamp01(math.Log(processing/minStageDuration) / math.Log(maxStageDuration/minStageDuration))

	case KindLfoTarget:
		return unstepIndex(processing, ctx.LfoTargetCount)

	case KindLfoMode:
		return unstepIndex(processing, 2)

	case KindLfoShape:
		return unstepIndex(processing, 8)

	case KindLfoAmount:
		return clamp01(processing / 2.0)

	default:
		return clamp01(processing)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// stepIndex maps normalized [0,1] to an integer index in [0, count) and
// returns it as a float, the representation used for discrete-valued
// processing values (wave type, mode, shape, mod targets, lfo target).
func stepIndex(normalized float64, count int) float64 {
	if count <= 1 {
		return 0
	}
	idx := int(normalized * float64(count))
	if idx >= count {
		idx = count - 1
	}
	return float64(idx)
}

func unstepIndex(processing float64, count int) float64 {
	if count <= 1 {
		return 0
	}
	idx := clampInt(int(processing+0.5), 0, count-1)
	return (float64(idx) + 0.5) / float64(count)
}

// stepValue maps normalized [0,1] to the nearest entry of a sorted step
// table, the idiom original_source uses for ratio/free-frequency/
// modulation-index parameters instead of a continuous formula.
func stepValue(normalized float64, steps []float64) float64 {
	idx := int(normalized*float64(len(steps)-1) + 0.5)
	idx = clampInt(idx, 0, len(steps)-1)
	return steps[idx]
}

func unstepValue(value float64, steps []float64) float64 {
	best := 0
	bestDist := math.Abs(steps[0] - value)
	for i := 1; i < len(steps); i++ {
		d := math.Abs(steps[i] - value)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return float64(best) / float64(len(steps)-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
