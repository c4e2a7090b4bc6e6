package operatorgraph

import "testing"

func allAudible() [OperatorCount]OperatorInput {
	var in [OperatorCount]OperatorInput
	for i := range in {
		in[i] = OperatorInput{Volume: 1.0, AdditiveZero: false}
	}
	return in
}

func TestSilentOperatorIsSkipped(t *testing.T) {
	in := allAudible()
	in[2].Volume = 0
	gen := Analyze(in)
	if gen[2] {
		t.Fatal("operator with ~0 volume should be marked skippable")
	}
}

func TestAudibleAdditiveOperatorNeverSkipped(t *testing.T) {
	in := allAudible()
	gen := Analyze(in)
	for i, g := range gen {
		if !g {
			t.Fatalf("operator %d with audible additive output should never be skipped", i)
		}
	}
}

func TestModulatorWithOnlySkippedTargetsIsSkipped(t *testing.T) {
	in := allAudible()
	in[0].Volume = 0 // operator 0 silent
	in[1].AdditiveZero = true
	in[1].ModulationIndex = 1
	in[1].ModTargets = []bool{true} // operator 1 -> operator 0 only

	gen := Analyze(in)
	if gen[1] {
		t.Fatal("operator modulating only a skippable target should itself be skippable")
	}
}

func TestModulatorOfNoiseOperatorIsSkipped(t *testing.T) {
	in := allAudible()
	in[0].IsWhiteNoise = true
	in[1].AdditiveZero = true
	in[1].ModulationIndex = 1
	in[1].ModTargets = []bool{true}

	gen := Analyze(in)
	if gen[1] {
		t.Fatal("operator modulating only a white-noise target should be skippable")
	}
}

func TestZeroModulationIndexMakesOperatorSkippable(t *testing.T) {
	in := allAudible()
	in[1].AdditiveZero = true
	in[1].ModulationIndex = 0
	in[1].ModTargets = []bool{true} // targets an audible operator 0, but operator 0's mod index is 0

	gen := Analyze(in)
	if gen[1] {
		t.Fatal("operator with zero additive output whose target has zero modulation index should be skippable")
	}
}

func TestModulatorOfAudibleTargetIsKept(t *testing.T) {
	in := allAudible()
	in[1].AdditiveZero = true
	in[1].ModulationIndex = 1
	in[1].ModTargets = []bool{true} // operator 0 is audible
	in[0].ModulationIndex = 1       // and responds to modulation input

	gen := Analyze(in)
	if !gen[1] {
		t.Fatal("operator modulating an audible target should be kept")
	}
}
