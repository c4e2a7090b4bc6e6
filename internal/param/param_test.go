package param

import (
	"math"
	"testing"
)

func TestListOrderAndCounts(t *testing.T) {
	list := List()
	if list[0].Kind != KindMasterVolume || list[1].Kind != KindMasterFrequency {
		t.Fatalf("expected master volume/frequency first, got %+v", list[:2])
	}

	var opModTargets, lfoKeySync int
	for _, d := range list {
		if d.Kind == KindOperatorModTargets {
			opModTargets++
		}
		if d.Kind == KindLfoKeySync {
			lfoKeySync++
		}
	}
	if opModTargets != OperatorCount-1 {
		t.Fatalf("expected %d ModTargets descriptors (operator 0 has none), got %d", OperatorCount-1, opModTargets)
	}
	if lfoKeySync != LfoCount {
		t.Fatalf("expected %d KeySync descriptors, got %d", LfoCount, lfoKeySync)
	}
}

func TestVolumeRoundTrip(t *testing.T) {
	for _, n := range []float64{0, 0.25, 0.5, 0.75, 1} {
		p := ToProcessing(KindMasterVolume, n, Context{})
		back := ToNormalized(KindMasterVolume, p, Context{})
		if math.Abs(back-n) > 1e-9 {
			t.Fatalf("volume round trip: n=%f -> p=%f -> back=%f", n, p, back)
		}
	}
}

func TestFrequencyRoundTrip(t *testing.T) {
	for _, n := range []float64{0, 0.3, 0.5, 0.7, 1} {
		p := ToProcessing(KindMasterFrequency, n, Context{})
		back := ToNormalized(KindMasterFrequency, p, Context{})
		if math.Abs(back-n) > 1e-9 {
			t.Fatalf("frequency round trip: n=%f -> p=%f -> back=%f", n, p, back)
		}
	}
}

func TestDurationIsMonotonicAndBounded(t *testing.T) {
	prev := -1.0
	for i := 0; i <= 10; i++ {
		n := float64(i) / 10
		p := ToProcessing(KindOperatorAttackDuration, n, Context{})
		if p <= prev {
			t.Fatalf("duration curve not strictly increasing at n=%f: prev=%f p=%f", n, prev, p)
		}
		if p < minStageDuration-1e-9 || p > maxStageDuration+1e-9 {
			t.Fatalf("duration %f out of bounds [%f,%f]", p, minStageDuration, maxStageDuration)
		}
		prev = p
	}
}

func TestModTargetsStepsOverAllMasksForThreeBits(t *testing.T) {
	ctx := Context{ModTargetBits: 3}
	seen := make(map[int]bool)
	for i := 0; i <= 100; i++ {
		n := float64(i) / 100
		p := ToProcessing(KindOperatorModTargets, n, ctx)
		seen[int(p+0.5)] = true
	}
	if len(seen) != 8 {
		t.Fatalf("expected all 8 distinct 3-bit masks reachable, got %d: %v", len(seen), seen)
	}
}

func TestLawMultiplicativeForVolumeClassKinds(t *testing.T) {
	for _, k := range []Kind{KindMasterVolume, KindOperatorVolume, KindLfoAmount} {
		if k.Law() != LawMultiplicative {
			t.Fatalf("%v: expected multiplicative law", k)
		}
	}
	if KindOperatorPanning.Law() != LawAdditive {
		t.Fatalf("panning: expected additive law")
	}
}

func TestValueWithLFOAdditionMultiplicativeDoublesAtPlusOne(t *testing.T) {
	base := ToProcessing(KindOperatorVolume, 0.5, Context{})
	withLFO := ValueWithLFOAddition(KindOperatorVolume, 0.5, 1.0, Context{})
	if math.Abs(withLFO-base*2) > 1e-9 {
		t.Fatalf("expected +1 lfo addition to double volume: base=%f withLFO=%f", base, withLFO)
	}
}

func TestValueWithLFOAdditionAdditiveClampsToUnitRange(t *testing.T) {
	v := ValueWithLFOAddition(KindOperatorPanning, 0.9, 0.5, Context{})
	if v != ToProcessing(KindOperatorPanning, 1.0, Context{}) {
		t.Fatalf("expected additive addition to clamp at 1.0 normalized, got %f", v)
	}
}

func TestToTextPanningCenter(t *testing.T) {
	if got := ToText(KindOperatorPanning, 0.5, Context{}); got != "C" {
		t.Fatalf("expected center panning to render as C, got %q", got)
	}
}

func TestToTextAndFromTextRoundTripGain(t *testing.T) {
	s := ToText(KindOperatorVolume, 1.5, Context{})
	v, ok := FromText(KindOperatorVolume, s)
	if !ok || math.Abs(v-1.5) > 1e-6 {
		t.Fatalf("round trip through text failed: s=%q v=%f ok=%v", s, v, ok)
	}
}

func TestAtomicNormalizedStoreLoadClamps(t *testing.T) {
	a := NewAtomicNormalized(0.5)
	a.Store(1.4)
	if got := a.Load(); got != 1.0 {
		t.Fatalf("expected store to clamp to 1.0, got %f", got)
	}
	a.Store(-0.2)
	if got := a.Load(); got != 0.0 {
		t.Fatalf("expected store to clamp to 0.0, got %f", got)
	}
}

func TestInterpolatableAdvancesTowardTargetAndSettles(t *testing.T) {
	ip := NewInterpolatable(KindOperatorVolume, 0)
	ip.SetTarget(1.0)
	steps := 0
	for !ip.Settled() && steps < 10000 {
		ip.Advance()
		steps++
	}
	if !ip.Settled() {
		t.Fatalf("interpolatable never settled after %d steps", steps)
	}
	if ip.Current != 1.0 {
		t.Fatalf("expected settled current to equal target, got %f", ip.Current)
	}
}

func TestLfoTargetsForIsAcyclic(t *testing.T) {
	for lfoIndex := 0; lfoIndex < LfoCount; lfoIndex++ {
		for _, target := range LfoTargetsFor(lfoIndex) {
			if target.LfoIndex >= 0 && target.LfoIndex >= lfoIndex {
				t.Fatalf("lfo %d may target lfo %d, violating the strictly-lower-index invariant", lfoIndex, target.LfoIndex)
			}
		}
	}
	if len(LfoTargetsFor(0)) >= len(LfoTargetsFor(3)) {
		t.Fatalf("expected lfo 3 to have strictly more candidate targets than lfo 0")
	}
}
