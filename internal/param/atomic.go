package param

import (
	"math"
	"sync/atomic"
)

// AtomicNormalized stores a single normalized [0,1] parameter value behind
// an atomic.Uint64 bit-cast, the pattern the teacher engine uses for its
// master gain (internal/fm/engine.go's masterGainValue/SetMasterGain):
// lock-free so the control/GUI thread can publish a new value without ever
// blocking the audio thread that reads it every sample (spec.md §5).
type AtomicNormalized struct {
	bits atomic.Uint64
}

// NewAtomicNormalized returns a value initialized to v.
func NewAtomicNormalized(v float64) *AtomicNormalized {
	a := &AtomicNormalized{}
	a.Store(v)
	return a
}

// Store publishes a new normalized value.
func (a *AtomicNormalized) Store(v float64) {
	a.bits.Store(math.Float64bits(clamp01(v)))
}

// Load reads the most recently published normalized value.
func (a *AtomicNormalized) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}
