package param

import "strconv"

// ModTargetPermutations enumerates every distinct modulation-target bitmask
// an operator with n target bits (n = the operator's index, since operator
// i may only modulate one of the i lower-indexed operators) can hold.
//
// original_source/octasine/src/common.rs's ModTargetStorage<3>::permutations
// lists 9 entries for the 3-bit case, duplicating [false, false, true] and
// never enumerating [false, false, false]/all-off alongside the all-on
// entry it does include — nine slots for eight possible masks. spec.md §9
// treats this as a typo in the original and directs enumerating the 8
// distinct 3-bit masks instead; ModTargetPermutations(3) does exactly that,
// in the same bit order the original used (bit 0 = first/lowest-indexed
// target) rather than reproducing the duplicate.
func ModTargetPermutations(bits int) [][]bool {
	n := 1 << uint(bits)
	out := make([][]bool, n)
	for mask := 0; mask < n; mask++ {
		row := make([]bool, bits)
		for b := 0; b < bits; b++ {
			row[b] = mask&(1<<uint(b)) != 0
		}
		out[mask] = row
	}
	return out
}

// ModTargetDefault returns the bitmask index an operator's ModTargets
// parameter defaults to: targeting only the highest-indexed available
// target, i.e. the operator directly below it, matching
// ModTargetStorage<N>::default() in common.rs (ModTargetStorage<2>::default()
// == [false, true], ModTargetStorage<3>::default() == [false, false, true] —
// the top bit set, not bit 0).
func ModTargetDefault(bits int) int {
	if bits <= 0 {
		return 0
	}
	return 1 << uint(bits-1) // top bit set, all others clear
}

// ModTargetActive reports whether targetIndex (0-based, counting up from
// the lowest-indexed modulation target) is active in the bitmask stored as
// the operator's ModTargets processing value.
func ModTargetActive(bitmask float64, targetIndex int) bool {
	mask := int(bitmask + 0.5)
	return mask&(1<<uint(targetIndex)) != 0
}

// ModTargetString renders a bitmask as the comma-separated list of
// 1-based target operator numbers, matching
// ModTargetStorage::as_string in common.rs.
func ModTargetString(bitmask float64, bits int) string {
	mask := int(bitmask + 0.5)
	out := ""
	for i := 0; i < bits; i++ {
		if mask&(1<<uint(i)) != 0 {
			if out != "" {
				out += ", "
			}
			out += strconv.Itoa(i + 1)
		}
	}
	return out
}
