package envelope

import (
	"testing"

	"github.com/cbegin/octasine-go/internal/dsp"
)

func TestAttackReachesFullVolume(t *testing.T) {
	table := dsp.NewLog10Table()
	e := New()
	e.SetDurations(0.1, 0.1, 0.5, 0.2)
	e.KeyOn()

	const dt = 1.0 / 44100.0
	var last float64
	for i := 0; i < int(0.1/dt)+2; i++ {
		v := e.Advance(dt, table)
		if e.Stage() != StageAttack {
			break // attack is over; decay falls toward sustain from here
		}
		if v < last-1e-9 {
			t.Fatalf("attack volume decreased: %f -> %f at sample %d", last, v, i)
		}
		last = v
	}
	if e.Stage() != StageDecay {
		t.Fatalf("expected decay stage after attack duration elapses, got %v", e.Stage())
	}
}

func TestSustainHoldsLevel(t *testing.T) {
	table := dsp.NewLog10Table()
	e := New()
	e.SetDurations(0.01, 0.01, 0.3, 0.1)
	e.KeyOn()

	const dt = 1.0 / 44100.0
	for i := 0; i < int(0.05/dt); i++ {
		e.Advance(dt, table)
	}
	if e.Stage() != StageSustain {
		t.Fatalf("expected sustain stage, got %v", e.Stage())
	}
	if got := e.Value(table); got != 0.3 {
		t.Fatalf("sustain level = %f, want 0.3", got)
	}
}

func TestKeyOffReleasesToEnded(t *testing.T) {
	table := dsp.NewLog10Table()
	e := New()
	e.SetDurations(0.001, 0.001, 0.5, 0.05)
	e.KeyOn()

	const dt = 1.0 / 44100.0
	for i := 0; i < int(0.01/dt); i++ {
		e.Advance(dt, table)
	}
	e.KeyOff()
	if e.Stage() != StageRelease {
		t.Fatalf("expected release stage after KeyOff, got %v", e.Stage())
	}

	for i := 0; i < int(0.2/dt); i++ {
		e.Advance(dt, table)
	}
	if !e.Ended() {
		t.Fatalf("expected envelope to end after release duration elapses")
	}
	if got := e.Value(table); got != 0 {
		t.Fatalf("ended envelope value = %f, want 0", got)
	}
}

func TestRetriggerGoesThroughRestartNotJump(t *testing.T) {
	table := dsp.NewLog10Table()
	e := New()
	e.SetDurations(0.001, 0.1, 0.8, 0.1)
	e.KeyOn()

	const dt = 1.0 / 44100.0
	steps := 0.005 / dt
	for i := 0; i < int(steps); i++ {
		e.Advance(dt, table)
	}
	if e.Value(table) <= 0 {
		t.Fatalf("expected audible volume before retrigger")
	}

	e.KeyOn()
	if e.Stage() != StageRestart {
		t.Fatalf("expected restart stage on retrigger while audible, got %v", e.Stage())
	}
}
