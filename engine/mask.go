// Package engine implements the KenKen constraint engine: domain masks,
// the puzzle model, cage consistency checking, unit propagation, and the
// MRV-driven backtracking search. The package performs no I/O, holds no
// cross-call state, and is safe to invoke concurrently from distinct
// goroutines: each call builds its own search state, and a Puzzle, being
// immutable, may be shared freely between calls.
package engine

import (
	"math/bits"
	"strconv"
	"strings"
)

// MaxN is the largest grid size the engine supports. A single machine word
// (32 bits) is sufficient to address every value 1..MaxN.
const MaxN = 32

// Mask is a fixed-width bitmask over values 1..N (N <= MaxN). Bit v-1
// represents value v. All Mask-returning operations preserve the invariant
// that bits at positions >= N are zero; callers must not construct a Mask
// with stray high bits by hand.
type Mask uint32

// FullMask returns a Mask with every value 1..n set.
func FullMask(n int) Mask {
	if n <= 0 {
		return 0
	}
	if n >= 32 {
		return ^Mask(0)
	}
	return Mask(1<<uint(n)) - 1
}

// MaskOf returns a Mask containing exactly the given values.
func MaskOf(values ...int) Mask {
	var m Mask
	for _, v := range values {
		m = m.With(v)
	}
	return m
}

// Has reports whether v is present in the mask. v is 1-indexed.
func (m Mask) Has(v int) bool {
	if v < 1 || v > MaxN {
		return false
	}
	return m&(1<<uint(v-1)) != 0
}

// With returns m with v added.
func (m Mask) With(v int) Mask {
	if v < 1 || v > MaxN {
		return m
	}
	return m | (1 << uint(v-1))
}

// Without returns m with v removed.
func (m Mask) Without(v int) Mask {
	if v < 1 || v > MaxN {
		return m
	}
	return m &^ (1 << uint(v-1))
}

// Intersect returns the set intersection of m and o.
func (m Mask) Intersect(o Mask) Mask { return m & o }

// Union returns the set union of m and o.
func (m Mask) Union(o Mask) Mask { return m | o }

// Difference returns the values in m that are not in o.
func (m Mask) Difference(o Mask) Mask { return m &^ o }

// Complement returns the values in 1..n absent from m.
func (m Mask) Complement(n int) Mask { return FullMask(n) &^ m }

// Popcount returns the number of values present in the mask. It dispatches
// to the platform popcount intrinsic via math/bits; correctness never
// depends on that dispatch.
func (m Mask) Popcount() int { return bits.OnesCount32(uint32(m)) }

// IsSingleton reports whether the mask contains exactly one value.
func (m Mask) IsSingleton() bool { return m != 0 && m&(m-1) == 0 }

// IsEmpty reports whether the mask contains no values.
func (m Mask) IsEmpty() bool { return m == 0 }

// SingletonValue returns the single value in the mask, or 0 if the mask is
// not a singleton.
func (m Mask) SingletonValue() int {
	if !m.IsSingleton() {
		return 0
	}
	return bits.TrailingZeros32(uint32(m)) + 1
}

// Highest returns the largest value in the mask, or 0 if the mask is empty.
func (m Mask) Highest() int {
	if m == 0 {
		return 0
	}
	return bits.Len32(uint32(m))
}

// Lowest returns the smallest value in the mask, or 0 if the mask is empty.
func (m Mask) Lowest() int {
	if m == 0 {
		return 0
	}
	return bits.TrailingZeros32(uint32(m)) + 1
}

// Iterate calls f for every value in the mask in ascending order. f must
// not mutate m (Mask is a value type, so this is structurally guaranteed).
func (m Mask) Iterate(f func(v int)) {
	for m != 0 {
		lsb := m & -m
		v := bits.TrailingZeros32(uint32(m)) + 1
		f(v)
		m &^= lsb
	}
}

// Values returns the mask's contents as an ascending slice. Prefer Iterate
// in hot paths; Values allocates.
func (m Mask) Values() []int {
	out := make([]int, 0, m.Popcount())
	m.Iterate(func(v int) { out = append(out, v) })
	return out
}

// String renders the mask as "{1,3,5}" for debugging and tracing.
func (m Mask) String() string {
	if m == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteByte('{')
	first := true
	m.Iterate(func(v int) {
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(strconv.Itoa(v))
	})
	b.WriteByte('}')
	return b.String()
}
