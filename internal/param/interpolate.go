package param

// Ramp speeds, taken verbatim from original_source/octasine/src/audio/
// mod.rs's InterpolationDuration: three fixed rates a parameter ramps
// toward a new target value at, expressed as the fraction of a "unit"
// covered per sample at a nominal transition length. Fast and medium exist
// so volume/modulation-index/panning changes don't click; slow exists so
// frequency-ratio-style jumps don't produce an audible glide artifact.
const (
	RampFast   = 1.0 / 1920.0 // ~0.520833ms
	RampMedium = 1.0 / 960.0  // ~1.04167ms
	RampSlow   = 1.0 / 300.0  // ~3.333ms
)

// RampSpeed returns the fixed ramp rate used to interpolate k toward a new
// target (spec.md §4.1): medium for volume/mix parameters, fast for panning
// (which may ramp quickly since it's a cheap, perceptually tolerant cross-
// fade), slow for tuning-class parameters where an audible glide is
// undesirable.
func (k Kind) RampSpeed() float64 {
	switch k {
	case KindMasterVolume, KindOperatorVolume, KindOperatorAdditive,
		KindOperatorModulationIndex, KindOperatorFeedback, KindLfoAmount, KindOperatorSustainVolume:
		return RampMedium
	case KindOperatorPanning:
		return RampFast
	case KindMasterFrequency, KindOperatorFrequencyRatio, KindOperatorFrequencyFree,
		KindOperatorFrequencyFine, KindLfoFrequencyRatio, KindLfoFrequencyFree:
		return RampSlow
	default:
		// Discrete-valued kinds (active toggles, wave type, mode, shape,
		// mod targets, durations) change instantly; interpolating them
		// would just smear one discrete value into another.
		return 0
	}
}

// Interpolatable ramps a parameter's normalized [0,1] host value, not its
// processing value: the ramp happens in normalized space and ToProcessing
// is applied to Current fresh each sample, so a multiplicative-law
// parameter's processing value still moves smoothly even though the ramp
// itself is linear in normalized units (spec.md §4.1). The host may change
// Target at any time; Advance steps Current toward it at the parameter's
// fixed ramp rate, one audio-thread sample at a time.
type Interpolatable struct {
	Current float64
	Target  float64
	step    float64
}

// NewInterpolatable returns an Interpolatable already settled at v.
func NewInterpolatable(k Kind, v float64) Interpolatable {
	return Interpolatable{Current: v, Target: v, step: k.RampSpeed()}
}

// SetTarget points the ramp at a new value without resetting Current, so a
// parameter change never produces a discontinuity.
func (i *Interpolatable) SetTarget(v float64) {
	i.Target = v
}

// Advance steps Current one sample toward Target. If the ramp rate is zero
// (a discrete-valued kind) the jump is immediate.
func (i *Interpolatable) Advance() {
	if i.step <= 0 {
		i.Current = i.Target
		return
	}
	diff := i.Target - i.Current
	if diff == 0 {
		return
	}
	if diff > 0 {
		i.Current += i.step
		if i.Current > i.Target {
			i.Current = i.Target
		}
	} else {
		i.Current -= i.step
		if i.Current < i.Target {
			i.Current = i.Target
		}
	}
}

// Settled reports whether Current has reached Target.
func (i *Interpolatable) Settled() bool {
	return i.Current == i.Target
}
