package kernel

import (
	"math"
	"testing"

	"github.com/cbegin/octasine-go/internal/dsp"
	"github.com/cbegin/octasine-go/internal/voice"
)

func flatOperators(freq float64) [voice.OperatorCount]OperatorParams {
	var ops [voice.OperatorCount]OperatorParams
	for i := range ops {
		ops[i] = OperatorParams{
			Volume:      1.0,
			Additive:    1.0,
			PanLeft:     1.0,
			PanRight:    1.0,
			PanTendency: 0,
			FrequencyHz: freq,
			ModTargets:  []bool{},
		}
	}
	return ops
}

func TestSilenceWhenNoVoicesActive(t *testing.T) {
	mgr := voice.NewManager()
	table := dsp.NewLog10Table()
	l, r := GenerateSample(mgr, flatOperators(440), 44100, table, func() float64 { return 0.5 })
	if l != 0 || r != 0 {
		t.Fatalf("expected silence with no active voices, got (%f, %f)", l, r)
	}
}

func TestOutputStaysWithinHardLimit(t *testing.T) {
	mgr := voice.NewManager()
	table := dsp.NewLog10Table()
	ops := flatOperators(440)

	for i := 0; i < 16; i++ {
		v := mgr.NoteOn(uint8(40+i), 127, func() float64 { return 0 })
		for op := range v.Operators {
			v.Operators[op].Envelope.SetDurations(0.0001, 0.0001, 1.0, 0.1)
		}
	}

	for i := 0; i < 2000; i++ {
		l, r := GenerateSample(mgr, ops, 44100, table, func() float64 { return 0.5 })
		if math.Abs(l) > 5.0001 || math.Abs(r) > 5.0001 {
			t.Fatalf("sample %d exceeded hard limit: (%f, %f)", i, l, r)
		}
	}
}

func TestSelectWidthPicksWidestAvailable(t *testing.T) {
	cases := []struct {
		remaining int
		want      Width
	}{
		{0, Width1}, {1, Width1}, {2, Width2}, {3, Width2}, {4, Width4}, {100, Width4},
	}
	for _, c := range cases {
		if got := SelectWidth(c.remaining); got != c.want {
			t.Errorf("SelectWidth(%d) = %v, want %v", c.remaining, got, c.want)
		}
	}
}
