// Package param holds the parameter model shared by every voice and by the
// host-facing surface in the root package: parameter kinds, the
// normalized-host-value <-> private-processing-value mapping for each kind,
// the three fixed interpolation ramp speeds, and text formatting.
package param

import "strconv"

// Kind identifies what a parameter index means and therefore how its
// normalized [0,1] host value maps to a processing value in natural units.
type Kind int

const (
	KindMasterVolume Kind = iota
	KindMasterFrequency

	KindOperatorVolume
	KindOperatorActive
	KindOperatorAdditive // "mix out": how much of this operator feeds the mix directly
	KindOperatorPanning
	KindOperatorWaveType
	KindOperatorModTargets
	KindOperatorModulationIndex // "mod out": scales the modulation input and feedback this operator's own sine receives
	KindOperatorFeedback
	KindOperatorFrequencyRatio
	KindOperatorFrequencyFree
	KindOperatorFrequencyFine
	KindOperatorAttackDuration
	KindOperatorDecayDuration
	KindOperatorSustainVolume
	KindOperatorReleaseDuration

	KindLfoTarget
	KindLfoBpmSync
	KindLfoFrequencyRatio
	KindLfoFrequencyFree
	KindLfoMode
	KindLfoShape
	KindLfoAmount
	KindLfoActive
	KindLfoKeySync
)

// OperatorCount and LfoCount are fixed by spec.md's data model (§3): four
// operators, four LFOs.
const (
	OperatorCount = 4
	LfoCount      = 4
)

// Descriptor names one entry in the authoritative parameter list
// (SPEC_FULL.md §7). OperatorIndex/LfoIndex are -1 when not applicable.
type Descriptor struct {
	Kind          Kind
	OperatorIndex int
	LfoIndex      int
	Name          string
}

// List returns the full parameter list in the fixed, authoritative order
// that parameter indices refer to (SPEC_FULL.md §7, concretized from
// original_source's parameters/list.rs, trimmed of the supplemented-out
// velocity/aftertouch/glide/voice-mode axes per SPEC_FULL.md §6).
func List() []Descriptor {
	var out []Descriptor

	out = append(out,
		Descriptor{Kind: KindMasterVolume, OperatorIndex: -1, LfoIndex: -1, Name: "Master Volume"},
		Descriptor{Kind: KindMasterFrequency, OperatorIndex: -1, LfoIndex: -1, Name: "Master Frequency"},
	)

	for op := 0; op < OperatorCount; op++ {
		out = append(out,
			Descriptor{Kind: KindOperatorVolume, OperatorIndex: op, LfoIndex: -1, Name: opName(op, "Volume")},
			Descriptor{Kind: KindOperatorActive, OperatorIndex: op, LfoIndex: -1, Name: opName(op, "Active")},
			Descriptor{Kind: KindOperatorAdditive, OperatorIndex: op, LfoIndex: -1, Name: opName(op, "Additive")},
			Descriptor{Kind: KindOperatorPanning, OperatorIndex: op, LfoIndex: -1, Name: opName(op, "Panning")},
			Descriptor{Kind: KindOperatorWaveType, OperatorIndex: op, LfoIndex: -1, Name: opName(op, "Wave Type")},
		)
		if op > 0 {
			out = append(out,
				Descriptor{Kind: KindOperatorModTargets, OperatorIndex: op, LfoIndex: -1, Name: opName(op, "Mod Targets")},
				Descriptor{Kind: KindOperatorModulationIndex, OperatorIndex: op, LfoIndex: -1, Name: opName(op, "Mod Out")},
			)
		}
		out = append(out,
			Descriptor{Kind: KindOperatorFeedback, OperatorIndex: op, LfoIndex: -1, Name: opName(op, "Feedback")},
			Descriptor{Kind: KindOperatorFrequencyRatio, OperatorIndex: op, LfoIndex: -1, Name: opName(op, "Freq Ratio")},
			Descriptor{Kind: KindOperatorFrequencyFree, OperatorIndex: op, LfoIndex: -1, Name: opName(op, "Freq Free")},
			Descriptor{Kind: KindOperatorFrequencyFine, OperatorIndex: op, LfoIndex: -1, Name: opName(op, "Freq Fine")},
			Descriptor{Kind: KindOperatorAttackDuration, OperatorIndex: op, LfoIndex: -1, Name: opName(op, "Attack")},
			Descriptor{Kind: KindOperatorDecayDuration, OperatorIndex: op, LfoIndex: -1, Name: opName(op, "Decay")},
			Descriptor{Kind: KindOperatorSustainVolume, OperatorIndex: op, LfoIndex: -1, Name: opName(op, "Sustain")},
			Descriptor{Kind: KindOperatorReleaseDuration, OperatorIndex: op, LfoIndex: -1, Name: opName(op, "Release")},
		)
	}

	for lfo := 0; lfo < LfoCount; lfo++ {
		out = append(out,
			Descriptor{Kind: KindLfoTarget, OperatorIndex: -1, LfoIndex: lfo, Name: lfoName(lfo, "Target")},
			Descriptor{Kind: KindLfoBpmSync, OperatorIndex: -1, LfoIndex: lfo, Name: lfoName(lfo, "BPM Sync")},
			Descriptor{Kind: KindLfoFrequencyRatio, OperatorIndex: -1, LfoIndex: lfo, Name: lfoName(lfo, "Freq Ratio")},
			Descriptor{Kind: KindLfoFrequencyFree, OperatorIndex: -1, LfoIndex: lfo, Name: lfoName(lfo, "Freq Free")},
			Descriptor{Kind: KindLfoMode, OperatorIndex: -1, LfoIndex: lfo, Name: lfoName(lfo, "Mode")},
			Descriptor{Kind: KindLfoShape, OperatorIndex: -1, LfoIndex: lfo, Name: lfoName(lfo, "Shape")},
			Descriptor{Kind: KindLfoAmount, OperatorIndex: -1, LfoIndex: lfo, Name: lfoName(lfo, "Amount")},
			Descriptor{Kind: KindLfoActive, OperatorIndex: -1, LfoIndex: lfo, Name: lfoName(lfo, "Active")},
		)
	}

	for lfo := 0; lfo < LfoCount; lfo++ {
		out = append(out, Descriptor{Kind: KindLfoKeySync, OperatorIndex: -1, LfoIndex: lfo, Name: lfoName(lfo, "Key Sync")})
	}

	return out
}

func opName(op int, suffix string) string {
	return "Op " + strconv.Itoa(op+1) + " " + suffix
}

func lfoName(lfo int, suffix string) string {
	return "LFO " + strconv.Itoa(lfo+1) + " " + suffix
}
