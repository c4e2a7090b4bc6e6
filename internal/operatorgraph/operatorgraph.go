// Package operatorgraph implements the four-operator modulation DAG and its
// dependency-pruning analysis (spec.md §4.5): operator i may only modulate
// some operator j with j < i, and an operator whose output can't possibly
// reach the final mix (silent, or feeding only other silent/unroutable
// operators) is marked to be skipped for that block, following
// run_operator_dependency_analysis in
// original_source/octasine/src/gen/mod.rs.
package operatorgraph

import "github.com/cbegin/octasine-go/internal/dsp"

// OperatorCount is fixed by the data model (spec.md §3).
const OperatorCount = 4

// OperatorInput is the per-operator state the pruning analysis needs for
// one block. ModTargets is the set of lower-indexed operators this one
// feeds its modulation output into (bit i means operator i is a target);
// only bits below this operator's own index are meaningful.
type OperatorInput struct {
	Volume          float64
	AdditiveZero    bool // true if this operator's additive (direct-to-mix) amount is ~0
	ModulationIndex float64
	IsWhiteNoise    bool
	ModTargets      []bool
}

// Analyze runs the three-pass fixed-point pruning analysis and returns,
// for each operator, whether it must be generated this block. An operator
// is safe to skip when either its volume is inaudible, or its additive
// output is zero and every modulation target it could reach is itself
// skippable, or is a white-noise operator (which can't be phase-modulated,
// so modulating it has no audible effect), or has a modulation index below
// dsp.ZeroValueLimit (the index scales the modulation an operator receives,
// so such a target ignores its modulation input).
//
// Because an operator can only target strictly lower-indexed operators the
// dependency graph is acyclic and a single ascending pass is sufficient,
// but three passes are run to mirror the original's structure exactly and
// guard against a future change relaxing that ordering invariant.
func Analyze(inputs [OperatorCount]OperatorInput) [OperatorCount]bool {
	var skippable [OperatorCount]bool

	for pass := 0; pass < 3; pass++ {
		for op := 0; op < OperatorCount; op++ {
			in := inputs[op]

			if in.Volume < dsp.ZeroValueLimit {
				skippable[op] = true
				continue
			}

			if !in.AdditiveZero {
				skippable[op] = false
				continue
			}

			skippable[op] = allTargetsUseless(in.ModTargets, skippable, inputs)
		}
	}

	var generate [OperatorCount]bool
	for op := 0; op < OperatorCount; op++ {
		generate[op] = !skippable[op]
	}
	return generate
}

func allTargetsUseless(targets []bool, skippable [OperatorCount]bool, inputs [OperatorCount]OperatorInput) bool {
	for t, active := range targets {
		if !active {
			continue
		}
		if skippable[t] || inputs[t].IsWhiteNoise || inputs[t].ModulationIndex < dsp.ZeroValueLimit {
			continue
		}
		return false
	}
	return true
}
