package anysgd

import "math/rand"

// A Range is a half-open interval [Start, End) of sample
// indices forming one mini-batch.
type Range struct {
	Start int
	End   int
}

// Len returns the number of samples in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Ranges partitions [0, n) into contiguous mini-batches of
// batchSize samples.
// Trailing samples which do not fill a batch are dropped.
func Ranges(n, batchSize int) []Range {
	if batchSize <= 0 {
		panic("batch size must be positive")
	}
	var res []Range
	for start := 0; start+batchSize <= n; start += batchSize {
		res = append(res, Range{Start: start, End: start + batchSize})
	}
	return res
}

// ShuffleRanges returns a shuffled copy of ranges.
// The input slice is not modified.
//
// If r is nil, the global source from math/rand is used.
func ShuffleRanges(ranges []Range, r *rand.Rand) []Range {
	res := append([]Range{}, ranges...)
	for i := len(res) - 1; i > 0; i-- {
		j := intn(r, i+1)
		res[i], res[j] = res[j], res[i]
	}
	return res
}
