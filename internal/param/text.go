package param

import (
	"fmt"
	"strconv"
	"strings"
)

// ToText renders a parameter's processing value the way a patch editor
// would display it, following the per-kind formatters in
// original_source/octasine/src/parameters/*.rs (operator_panning.rs's
// "C"/"NNL"/"NNR" convention in particular).
func ToText(k Kind, processing float64, ctx Context) string {
	switch k {
	case KindOperatorPanning:
		return formatPanning(processing)

	case KindOperatorActive, KindLfoBpmSync, KindLfoActive, KindLfoKeySync:
		if processing >= 0.5 {
			return "On"
		}
		return "Off"

	case KindOperatorWaveType:
		if int(processing+0.5) == 0 {
			return "Sine"
		}
		return "Noise"

	case KindOperatorModTargets:
		s := ModTargetString(processing, ctx.ModTargetBits)
		if s == "" {
			return "None"
		}
		return s

	case KindLfoMode:
		if int(processing+0.5) == 0 {
			return "Forever"
		}
		return "Once"

	case KindLfoShape:
		names := [...]string{"Saw", "Rev. Saw", "Triangle", "Rev. Triangle", "Square", "Rev. Square", "Sine", "Rev. Sine"}
		idx := clampInt(int(processing+0.5), 0, len(names)-1)
		return names[idx]

	case KindOperatorAttackDuration, KindOperatorDecayDuration, KindOperatorReleaseDuration:
		return fmt.Sprintf("%.3fs", processing)

	case KindOperatorFrequencyRatio, KindLfoFrequencyRatio, KindOperatorFrequencyFree,
		KindLfoFrequencyFree, KindOperatorFrequencyFine, KindMasterFrequency:
		return fmt.Sprintf("%.4f", processing)

	case KindMasterVolume, KindOperatorVolume, KindOperatorAdditive, KindOperatorSustainVolume,
		KindOperatorFeedback, KindOperatorModulationIndex, KindLfoAmount:
		return fmt.Sprintf("%.3f", processing)

	default:
		return fmt.Sprintf("%.3f", processing)
	}
}

// formatPanning mirrors OperatorPanningValue::get_formatted: center is "C",
// values to the right are "<percent>R", to the left "<percent>L", where
// percent is how far from center (0.5) toward the nearest edge.
func formatPanning(processing float64) string {
	const center = 0.5
	if processing == center {
		return "C"
	}
	if processing > center {
		pct := int((processing - center) / center * 100)
		return strconv.Itoa(pct) + "R"
	}
	pct := int((center - processing) / center * 100)
	return strconv.Itoa(pct) + "L"
}

// FromText parses the inverse of ToText for the kinds where host automation
// or patch text editing accepts free-form input (panning and the
// continuous gain-like kinds); discrete kinds are set by index instead and
// FromText rejects them. Mirrors new_from_text in
// original_source/octasine/src/parameters/operator_panning.rs.
func FromText(k Kind, text string) (float64, bool) {
	text = strings.TrimSpace(text)

	switch k {
	case KindOperatorPanning:
		return parsePanningText(text)

	case KindOperatorAttackDuration, KindOperatorDecayDuration, KindOperatorReleaseDuration:
		text = strings.TrimSuffix(text, "s")
		v, err := strconv.ParseFloat(text, 64)
		return v, err == nil

	case KindMasterVolume, KindOperatorVolume, KindOperatorAdditive, KindOperatorSustainVolume,
		KindOperatorFeedback, KindOperatorModulationIndex, KindLfoAmount,
		KindOperatorFrequencyRatio, KindLfoFrequencyRatio, KindOperatorFrequencyFree,
		KindLfoFrequencyFree, KindOperatorFrequencyFine, KindMasterFrequency:
		v, err := strconv.ParseFloat(text, 64)
		return v, err == nil

	default:
		return 0, false
	}
}

func parsePanningText(text string) (float64, bool) {
	lower := strings.ToLower(text)
	switch lower {
	case "c", "0", "center":
		return 0.5, true
	}

	if strings.HasSuffix(lower, "r") {
		n, err := strconv.Atoi(strings.TrimSuffix(lower, "r"))
		if err != nil {
			return 0, false
		}
		return 0.5 + float64(n)/200.0, true
	}
	if strings.HasSuffix(lower, "l") {
		n, err := strconv.Atoi(strings.TrimSuffix(lower, "l"))
		if err != nil {
			return 0, false
		}
		return 0.5 - float64(n)/200.0, true
	}

	v, err := strconv.ParseFloat(lower, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
