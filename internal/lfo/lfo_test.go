package lfo

import (
	"math"
	"testing"
)

func TestTriangleShapeBasic(t *testing.T) {
	l := &LFO{Shape: ShapeTriangle, Mode: ModeForever, Active: true, FrequencyFree: 1.0, FrequencyRatio: 1.0, Amount: 1.0, KeySync: true}
	l.KeyOn(0)

	const sr = 100.0
	const dt = 1.0 / sr

	samples := make([]float64, 100)
	for i := range samples {
		samples[i] = l.Advance(dt, 120)
	}

	if math.Abs(samples[0]) > 0.05 {
		t.Errorf("triangle at phase 0: got %f, want ~0", samples[0])
	}
	if math.Abs(samples[25]-1.0) > 0.05 {
		t.Errorf("triangle at phase 0.25: got %f, want 1.0", samples[25])
	}
	if math.Abs(samples[75]-(-1.0)) > 0.05 {
		t.Errorf("triangle at phase 0.75: got %f, want -1.0", samples[75])
	}
}

func TestSquareShape(t *testing.T) {
	l := &LFO{Shape: ShapeSquare, Mode: ModeForever, Active: true, FrequencyFree: 1.0, FrequencyRatio: 1.0, Amount: 2.0, KeySync: true}
	l.KeyOn(0)

	const sr = 100.0
	const dt = 1.0 / sr

	v := l.Advance(dt, 120)
	if math.Abs(v-2.0) > 0.01 {
		t.Errorf("square first half: got %f, want 2.0", v)
	}
	for i := 1; i < 50; i++ {
		l.Advance(dt, 120)
	}
	v = l.Advance(dt, 120)
	if math.Abs(v-(-2.0)) > 0.01 {
		t.Errorf("square second half: got %f, want -2.0", v)
	}
}

func TestSawShape(t *testing.T) {
	l := &LFO{Shape: ShapeSaw, Mode: ModeForever, Active: true, FrequencyFree: 1.0, FrequencyRatio: 1.0, Amount: 1.0, KeySync: true}
	l.KeyOn(0)

	v := l.Advance(1.0/100.0, 120)
	if math.Abs(v-1.0) > 0.05 {
		t.Errorf("saw at phase 0: got %f, want 1.0", v)
	}
}

func TestInactiveLFOReturnsZero(t *testing.T) {
	l := &LFO{Shape: ShapeTriangle, Mode: ModeForever, Active: false, FrequencyFree: 5.0, Amount: 1.0}
	if v := l.Advance(1.0/44100.0, 120); v != 0 {
		t.Errorf("inactive LFO should return 0, got %f", v)
	}
}

func TestOnceModeHoldsFinalValue(t *testing.T) {
	l := &LFO{Shape: ShapeSaw, Mode: ModeOnce, Active: true, FrequencyFree: 1.0, FrequencyRatio: 1.0, Amount: 1.0, KeySync: true}
	l.KeyOn(0)

	const sr = 100.0
	const dt = 1.0 / sr

	var last float64
	for i := 0; i < 150; i++ {
		last = l.Advance(dt, 120)
	}
	held := l.Advance(dt, 120)
	if held != last {
		t.Errorf("once-mode LFO should hold its final value: got %f then %f", last, held)
	}
}

func TestKeySyncResetsPhaseToZero(t *testing.T) {
	l := &LFO{Shape: ShapeSaw, Mode: ModeForever, Active: true, FrequencyFree: 1.0, FrequencyRatio: 1.0, Amount: 1.0, KeySync: true}
	l.KeyOn(0)
	for i := 0; i < 30; i++ {
		l.Advance(1.0/100.0, 120)
	}
	l.KeyOn(0.77) // random phase argument must be ignored when KeySync is set
	v := l.Advance(1.0/100.0, 120)
	if math.Abs(v-1.0) > 0.05 {
		t.Errorf("key-synced LFO should restart at phase 0 (saw=1.0), got %f", v)
	}
}

func TestRandomPhaseHonoredWhenNotKeySynced(t *testing.T) {
	l := &LFO{Shape: ShapeSaw, Mode: ModeForever, Active: true, FrequencyFree: 1.0, FrequencyRatio: 1.0, Amount: 1.0, KeySync: false}
	l.KeyOn(0.5)
	v := l.Advance(0, 120) // dt=0: read the phase KeyOn set without advancing
	want := 1.0 - 2.0*0.5
	if math.Abs(v-want) > 1e-9 {
		t.Errorf("expected saw value at phase 0.5 (%f), got %f", want, v)
	}
}
