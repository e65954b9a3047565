package anysgd

import (
	"math"
	"math/rand"
)

// RandomSplit shuffles s and partitions it into a left
// and a right list.
//
// The right list receives ceil(rightRatio*n) samples and
// the left list receives the rest, so a rightRatio of 0.1
// on 10 samples yields 9 and 1.
//
// If r is nil, the global source from math/rand is used.
func RandomSplit(s SampleList, rightRatio float64, r *rand.Rand) (left, right SampleList) {
	n := s.Len()
	numRight := RightCount(n, rightRatio)
	Shuffle(s, r)
	return s.Slice(0, n-numRight), s.Slice(n-numRight, n)
}

// RightCount returns the number of samples that
// RandomSplit puts in the right partition.
func RightCount(n int, rightRatio float64) int {
	if rightRatio <= 0 {
		return 0
	} else if rightRatio >= 1 {
		return n
	}
	// Guard against products like 0.1*30 = 3.0000000000000004.
	count := int(math.Ceil(rightRatio*float64(n) - 1e-9))
	if count > n {
		return n
	}
	return count
}

// A Hasher is a SampleList with the added capability to
// produce a hash for a given sample.
type Hasher interface {
	SampleList
	Hash(i int) []byte
}

// HashSplit partitions a Hasher.
// It can be used to deterministically split data up into
// separate validation and training samples, regardless of
// sample order or random seeds.
//
// The Hasher h will be re-ordered as needed for internal
// computations.
//
// The leftRatio argument specifies the expected fraction
// of samples that should end up on the left partition.
func HashSplit(h Hasher, leftRatio float64) (left, right SampleList) {
	if leftRatio <= 0 {
		return h.Slice(0, 0), h
	} else if leftRatio >= 1 {
		return h, h.Slice(0, 0)
	}
	cutoff := hashCutoff(leftRatio)
	splitIdx := 0
	for i := 0; i < h.Len(); i++ {
		if compareHashes(h.Hash(i), cutoff) < 0 {
			h.Swap(splitIdx, i)
			splitIdx++
		}
	}
	return h.Slice(0, splitIdx), h.Slice(splitIdx, h.Len())
}

func hashCutoff(ratio float64) []byte {
	res := make([]byte, 8)
	for i := range res {
		ratio *= 256
		value := int(ratio)
		ratio -= float64(value)
		if value == 256 {
			value = 255
		}
		res[i] = byte(value)
	}
	return res
}

func compareHashes(h1, h2 []byte) int {
	n := len(h1)
	if len(h2) > n {
		n = len(h2)
	}
	for i := 0; i < n; i++ {
		var v1, v2 byte
		if i < len(h1) {
			v1 = h1[i]
		}
		if i < len(h2) {
			v2 = h2[i]
		}
		if v1 < v2 {
			return -1
		} else if v1 > v2 {
			return 1
		}
	}
	return 0
}
