package ir

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/twmb/murmur3"
)

// Structural keys for the variable-arity shapes. The fixed-arity shapes are
// comparable and key dedup maps directly; substitutions and goal lists hold
// slices, so dedup backends bucket them by a 64-bit structural key and verify
// element-wise on lookup. Handles are folded in through maphash.Comparable
// under a per-interner seed, then the encoded sequence is hashed with
// murmur3. Keys are only meaningful within one interner instance and one
// process run.

// SubstKey returns the structural key of a substitution shape.
func SubstKey[H comparable](seed maphash.Seed, s SubstShape[H]) uint64 {
	buf := make([]byte, 0, 8+9*len(s.Params))
	buf = appendUint64(buf, uint64(len(s.Params)))
	for _, p := range s.Params {
		buf = append(buf, byte(p.Kind))
		buf = appendUint64(buf, maphash.Comparable(seed, p.Value))
	}
	return murmur3.Sum64(buf)
}

// GoalsKey returns the structural key of a goal-list shape.
func GoalsKey[H comparable](seed maphash.Seed, s GoalsShape[H]) uint64 {
	buf := make([]byte, 0, 8+8*len(s.Goals))
	buf = appendUint64(buf, uint64(len(s.Goals)))
	for _, g := range s.Goals {
		buf = appendUint64(buf, maphash.Comparable(seed, g))
	}
	return murmur3.Sum64(buf)
}

// SubstEqual reports element-wise equality of two substitution shapes.
func SubstEqual[H comparable](a, b SubstShape[H]) bool {
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if a.Params[i] != b.Params[i] {
			return false
		}
	}
	return true
}

// GoalsEqual reports element-wise equality of two goal-list shapes.
func GoalsEqual[H comparable](a, b GoalsShape[H]) bool {
	if len(a.Goals) != len(b.Goals) {
		return false
	}
	for i := range a.Goals {
		if a.Goals[i] != b.Goals[i] {
			return false
		}
	}
	return true
}

func appendUint64(buf []byte, v uint64) []byte {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], v)
	return append(buf, n[:]...)
}
