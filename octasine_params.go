package octasine

import (
	"math"

	"github.com/cbegin/octasine-go/internal/kernel"
	"github.com/cbegin/octasine-go/internal/lfo"
	"github.com/cbegin/octasine-go/internal/param"
	"github.com/cbegin/octasine-go/internal/voice"
)

// contextFor fills in the extra bits ToProcessing/ToNormalized need for a
// given descriptor: how many modulation-target bits an operator's
// ModTargets parameter holds (operator index i has i bits, since it may
// only modulate a strictly lower-indexed operator), and how many
// destinations an LFO's Target parameter can select among.
func contextFor(d param.Descriptor) param.Context {
	ctx := param.Context{}
	if d.Kind == param.KindOperatorModTargets {
		ctx.ModTargetBits = d.OperatorIndex
	}
	if d.Kind == param.KindLfoTarget {
		ctx.LfoTargetCount = len(param.LfoTargetsFor(d.LfoIndex))
	}
	return ctx
}

// defaultNormalized picks an initial patch that is simple, safe, and
// audible: operator 0 alone, a sine carrier, no modulation, no LFOs.
// Operator volume has no per-operator case here; NewSynth sets operators
// 1-3 to volume 0.
func defaultNormalized(k param.Kind, ctx param.Context) float64 {
	switch k {
	case param.KindMasterVolume, param.KindLfoAmount:
		return 0.5 // processing 1.0: unity gain
	case param.KindOperatorVolume:
		return 0.5
	case param.KindMasterFrequency, param.KindOperatorFrequencyFine:
		return 0.5 // unity multiplier
	case param.KindOperatorActive:
		return 1.0
	case param.KindOperatorAdditive:
		return 1.0 // fully to the mix, no modulation routing by default
	case param.KindOperatorPanning:
		return 0.5 // center
	case param.KindOperatorWaveType:
		return param.ToNormalized(k, 0, ctx) // sine
	case param.KindOperatorModTargets:
		return param.ToNormalized(k, float64(param.ModTargetDefault(ctx.ModTargetBits)), ctx)
	case param.KindOperatorModulationIndex:
		return 0
	case param.KindOperatorFeedback:
		return 0
	case param.KindOperatorFrequencyRatio, param.KindLfoFrequencyRatio:
		return param.ToNormalized(k, 1.0, ctx)
	case param.KindOperatorFrequencyFree, param.KindLfoFrequencyFree:
		return param.ToNormalized(k, 1.0, ctx)
	case param.KindOperatorAttackDuration:
		return param.ToNormalized(k, 0.01, ctx)
	case param.KindOperatorDecayDuration:
		return param.ToNormalized(k, 0.3, ctx)
	case param.KindOperatorSustainVolume:
		return 0.7
	case param.KindOperatorReleaseDuration:
		return param.ToNormalized(k, 0.3, ctx)
	case param.KindLfoTarget:
		return 0
	case param.KindLfoBpmSync, param.KindLfoActive:
		return 0
	case param.KindLfoKeySync:
		return 1.0
	case param.KindLfoMode:
		return 0
	case param.KindLfoShape:
		return 0
	default:
		return 0.5
	}
}

// blockOperator is one operator's block-interpolated processing values,
// resolved once per sample (before any per-voice LFO is applied).
type blockOperator struct {
	Volume          float64
	Active          bool
	Additive        float64
	Panning         float64
	WaveType        int
	ModTargets      []bool
	ModulationIndex float64
	Feedback        float64
	FrequencyRatio  float64
	FrequencyFree   float64
	FrequencyFine   float64
	AttackDuration  float64
	DecayDuration   float64
	SustainVolume   float64
	ReleaseDuration float64
}

// baseOperatorParams reads every operator's interpolated normalized values
// and converts them to processing space, and pushes the envelope durations
// into each active voice's operator envelopes.
func (s *Synth) baseOperatorParams() [voice.OperatorCount]blockOperator {
	var ops [voice.OperatorCount]blockOperator

	for op := 0; op < voice.OperatorCount; op++ {
		get := func(kind param.Kind) (float64, param.Context) {
			idx, ok := s.index[paramKey{kind, op, -1}]
			if !ok {
				return 0, param.Context{}
			}
			return s.interp[idx].Current, s.ctx[idx]
		}

		volNorm, volCtx := get(param.KindOperatorVolume)
		activeNorm, _ := get(param.KindOperatorActive)
		additiveNorm, additiveCtx := get(param.KindOperatorAdditive)
		panNorm, panCtx := get(param.KindOperatorPanning)
		waveNorm, waveCtx := get(param.KindOperatorWaveType)
		modTargetsNorm, modTargetsCtx := get(param.KindOperatorModTargets)
		modIndexNorm, modIndexCtx := get(param.KindOperatorModulationIndex)
		feedbackNorm, feedbackCtx := get(param.KindOperatorFeedback)
		ratioNorm, ratioCtx := get(param.KindOperatorFrequencyRatio)
		freeNorm, freeCtx := get(param.KindOperatorFrequencyFree)
		fineNorm, fineCtx := get(param.KindOperatorFrequencyFine)
		attackNorm, attackCtx := get(param.KindOperatorAttackDuration)
		decayNorm, decayCtx := get(param.KindOperatorDecayDuration)
		sustainNorm, sustainCtx := get(param.KindOperatorSustainVolume)
		releaseNorm, releaseCtx := get(param.KindOperatorReleaseDuration)

		b := blockOperator{
			Volume:          param.ToProcessing(param.KindOperatorVolume, volNorm, volCtx),
			Active:          activeNorm >= 0.5,
			Additive:        param.ToProcessing(param.KindOperatorAdditive, additiveNorm, additiveCtx),
			Panning:         param.ToProcessing(param.KindOperatorPanning, panNorm, panCtx),
			WaveType:        int(param.ToProcessing(param.KindOperatorWaveType, waveNorm, waveCtx) + 0.5),
			ModulationIndex: param.ToProcessing(param.KindOperatorModulationIndex, modIndexNorm, modIndexCtx),
			Feedback:        param.ToProcessing(param.KindOperatorFeedback, feedbackNorm, feedbackCtx),
			FrequencyRatio:  param.ToProcessing(param.KindOperatorFrequencyRatio, ratioNorm, ratioCtx),
			FrequencyFree:   param.ToProcessing(param.KindOperatorFrequencyFree, freeNorm, freeCtx),
			FrequencyFine:   param.ToProcessing(param.KindOperatorFrequencyFine, fineNorm, fineCtx),
			AttackDuration:  param.ToProcessing(param.KindOperatorAttackDuration, attackNorm, attackCtx),
			DecayDuration:   param.ToProcessing(param.KindOperatorDecayDuration, decayNorm, decayCtx),
			SustainVolume:   param.ToProcessing(param.KindOperatorSustainVolume, sustainNorm, sustainCtx),
			ReleaseDuration: param.ToProcessing(param.KindOperatorReleaseDuration, releaseNorm, releaseCtx),
		}

		bits := modTargetsCtx.ModTargetBits
		mask := int(param.ToProcessing(param.KindOperatorModTargets, modTargetsNorm, modTargetsCtx) + 0.5)
		targets := make([]bool, bits)
		for i := 0; i < bits; i++ {
			targets[i] = mask&(1<<uint(i)) != 0
		}
		b.ModTargets = targets

		ops[op] = b
	}

	for _, v := range s.voices.Voices() {
		if !v.Active {
			continue
		}
		for op := 0; op < voice.OperatorCount; op++ {
			v.Operators[op].Envelope.SetDurations(
				ops[op].AttackDuration, ops[op].DecayDuration, ops[op].SustainVolume, ops[op].ReleaseDuration)
		}
	}

	return ops
}

type voiceLFOOutput struct {
	value  float64
	target param.LfoTarget
	active bool
}

// advanceVoiceLFOs syncs a voice's four LFOs to the current block's LFO
// parameters, steps them by dt, and returns each one's scaled output
// together with its resolved target.
func (s *Synth) advanceVoiceLFOs(v *voice.Voice, dt, bpm float64) [voice.LfoCount]voiceLFOOutput {
	var out [voice.LfoCount]voiceLFOOutput

	for i := 0; i < voice.LfoCount; i++ {
		get := func(kind param.Kind) (float64, param.Context) {
			idx, ok := s.index[paramKey{kind, -1, i}]
			if !ok {
				return 0, param.Context{}
			}
			return s.interp[idx].Current, s.ctx[idx]
		}

		shapeNorm, shapeCtx := get(param.KindLfoShape)
		modeNorm, modeCtx := get(param.KindLfoMode)
		bpmSyncNorm, _ := get(param.KindLfoBpmSync)
		keySyncNorm, _ := get(param.KindLfoKeySync)
		ratioNorm, ratioCtx := get(param.KindLfoFrequencyRatio)
		freeNorm, freeCtx := get(param.KindLfoFrequencyFree)
		amountNorm, amountCtx := get(param.KindLfoAmount)
		activeNorm, _ := get(param.KindLfoActive)
		targetNorm, targetCtx := get(param.KindLfoTarget)

		l := &v.Lfos[i]
		l.Shape = lfo.Shape(int(param.ToProcessing(param.KindLfoShape, shapeNorm, shapeCtx) + 0.5))
		l.Mode = lfo.Mode(int(param.ToProcessing(param.KindLfoMode, modeNorm, modeCtx) + 0.5))
		l.BpmSync = bpmSyncNorm >= 0.5
		l.KeySync = keySyncNorm >= 0.5
		l.FrequencyRatio = param.ToProcessing(param.KindLfoFrequencyRatio, ratioNorm, ratioCtx)
		l.FrequencyFree = param.ToProcessing(param.KindLfoFrequencyFree, freeNorm, freeCtx)
		l.Amount = param.ToProcessing(param.KindLfoAmount, amountNorm, amountCtx)
		l.Active = activeNorm >= 0.5

		targets := param.LfoTargetsFor(i)
		targetIdx := int(param.ToProcessing(param.KindLfoTarget, targetNorm, targetCtx) + 0.5)
		if targetIdx < 0 || targetIdx >= len(targets) {
			targetIdx = 0
		}

		value := l.Advance(dt, bpm)
		out[i] = voiceLFOOutput{value: value, target: targets[targetIdx], active: l.Active}
	}

	return out
}

// applyLFOAddition combines a parameter's current processing value with an
// LFO's (normalized-space) output through spec.md §4.1's documented law:
// effective = to_processing(clamp01(to_normalized(current) + lfo_addition)),
// except for volume-class parameters (internal/param.Law) which multiply
// the processing value by 2^addition instead. None of the kinds this is
// called with here read ctx, so an empty Context is always correct.
func applyLFOAddition(k param.Kind, current, addition float64) float64 {
	normalized := param.ToNormalized(k, current, param.Context{})
	return param.ValueWithLFOAddition(k, normalized, addition, param.Context{})
}

// applyLFOsToOperators resolves each voice's LFO outputs against their
// targets (through the real normalized-space combination law in
// internal/param/law.go, per spec.md §4.1) and produces the per-operator
// kernel parameters for this sample. pitchFrequency is the voice's bare
// MIDI-pitch frequency in Hz; masterFrequency is the master-frequency
// parameter's own processing value (a multiplier around 1.0), kept
// separate from pitchFrequency so the LFO law's to_normalized/to_processing
// round trip operates on the actual master-frequency parameter rather than
// on a pre-multiplied Hz value it was never defined over.
func applyLFOsToOperators(base [voice.OperatorCount]blockOperator, lfos [voice.LfoCount]voiceLFOOutput, pitchFrequency, masterFrequency, masterVolume float64) [voice.OperatorCount]kernel.OperatorParams {
	ops := base

	for _, out := range lfos {
		if !out.active || out.value == 0 {
			continue
		}
		t := out.target
		switch {
		case t.IsMaster:
			switch t.Master {
			case param.MasterTargetVolume:
				masterVolume = applyLFOAddition(param.KindMasterVolume, masterVolume, out.value)
			case param.MasterTargetFrequency:
				masterFrequency = applyLFOAddition(param.KindMasterFrequency, masterFrequency, out.value)
			}
		case t.LfoIndex < 0 && t.OperatorIndex >= 0:
			op := &ops[t.OperatorIndex]
			switch t.OperatorParam {
			case param.OperatorTargetVolume:
				op.Volume = applyLFOAddition(param.KindOperatorVolume, op.Volume, out.value)
			case param.OperatorTargetPanning:
				op.Panning = applyLFOAddition(param.KindOperatorPanning, op.Panning, out.value)
			case param.OperatorTargetAdditive:
				op.Additive = applyLFOAddition(param.KindOperatorAdditive, op.Additive, out.value)
			case param.OperatorTargetModulationIndex:
				op.ModulationIndex = applyLFOAddition(param.KindOperatorModulationIndex, op.ModulationIndex, out.value)
			case param.OperatorTargetFeedback:
				op.Feedback = applyLFOAddition(param.KindOperatorFeedback, op.Feedback, out.value)
			case param.OperatorTargetFrequencyRatio:
				op.FrequencyRatio = applyLFOAddition(param.KindOperatorFrequencyRatio, op.FrequencyRatio, out.value)
			case param.OperatorTargetFrequencyFree:
				op.FrequencyFree = applyLFOAddition(param.KindOperatorFrequencyFree, op.FrequencyFree, out.value)
			case param.OperatorTargetFrequencyFine:
				op.FrequencyFine = applyLFOAddition(param.KindOperatorFrequencyFine, op.FrequencyFine, out.value)
			}
			// LFO-to-LFO targets have no effect: neither this function nor
			// advanceVoiceLFOs applies one LFO's output to another LFO's
			// parameters, which are read only from the interpolated host
			// values.
		}
	}

	var result [voice.OperatorCount]kernel.OperatorParams
	for i, op := range ops {
		left, right := panLeftRight(op.Panning)
		result[i] = kernel.OperatorParams{
			Volume:          op.Volume * boolToFloat(op.Active) * masterVolume,
			Additive:        op.Additive,
			PanLeft:         left,
			PanRight:        right,
			PanTendency:     math.Abs(op.Panning-0.5) * 2,
			Feedback:        op.Feedback,
			ModulationIndex: op.ModulationIndex,
			FrequencyHz:     pitchFrequency * masterFrequency * op.FrequencyRatio * op.FrequencyFree * op.FrequencyFine,
			IsWhiteNoise:    op.WaveType == 1,
			ModTargets:      op.ModTargets,
		}
	}
	return result
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// panLeftRight computes constant-power left/right gains from a panning
// value in [0,1] (0.5 = center), matching
// OperatorPanningProcessingParameter::calculate_left_and_right in
// original_source/octasine/src/parameters/processing/parameters.rs.
func panLeftRight(panning float64) (left, right float64) {
	angle := panning * math.Pi / 2
	return math.Cos(angle), math.Sin(angle)
}
