package anybabi

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/unixpickle/anymem/anysgd"
)

// TaskRange records which rows of a pooled Tensors came
// from which task.
type TaskRange struct {
	Task  int
	Start int
	End   int
}

// Tensors stores vectorized examples in flat, row-major
// integer arrays.
//
// For n examples, Stories has n*MemorySize*SentenceSize
// entries, Queries has n*SentenceSize entries, and
// Answers has n*VocabSize entries.
//
// Tensors implements anysgd.Hasher.
// Swap and Slice work on rows and do not maintain Tasks.
type Tensors struct {
	MemorySize   int
	SentenceSize int
	VocabSize    int

	Stories []int
	Queries []int
	Answers []int

	// Tasks optionally lists the task boundaries, in row
	// order.
	Tasks []TaskRange
}

// NewTensors allocates zeroed tensors for n examples.
func NewTensors(n, memorySize, sentenceSize, vocabSize int) *Tensors {
	return &Tensors{
		MemorySize:   memorySize,
		SentenceSize: sentenceSize,
		VocabSize:    vocabSize,
		Stories:      make([]int, n*memorySize*sentenceSize),
		Queries:      make([]int, n*sentenceSize),
		Answers:      make([]int, n*vocabSize),
	}
}

// Len returns the number of examples.
func (t *Tensors) Len() int {
	if t.SentenceSize == 0 {
		return 0
	}
	return len(t.Queries) / t.SentenceSize
}

// Story returns the memory rows of example i.
func (t *Tensors) Story(i int) []int {
	size := t.MemorySize * t.SentenceSize
	return t.Stories[i*size : (i+1)*size]
}

// Query returns the query of example i.
func (t *Tensors) Query(i int) []int {
	return t.Queries[i*t.SentenceSize : (i+1)*t.SentenceSize]
}

// Answer returns the answer vector of example i.
func (t *Tensors) Answer(i int) []int {
	return t.Answers[i*t.VocabSize : (i+1)*t.VocabSize]
}

// Label returns the index of the first maximal entry in
// the answer vector of example i.
func (t *Tensors) Label(i int) int {
	answer := t.Answer(i)
	best := 0
	for j, x := range answer {
		if x > answer[best] {
			best = j
		}
	}
	return best
}

// Labels returns Label(i) for every example.
func (t *Tensors) Labels() []int {
	res := make([]int, t.Len())
	for i := range res {
		res[i] = t.Label(i)
	}
	return res
}

// Rows returns a view of examples [i, j).
// The view shares memory with t.
func (t *Tensors) Rows(i, j int) *Tensors {
	if i < 0 || j < i || j > t.Len() {
		panic(fmt.Sprintf("rows [%d, %d) out of range for %d examples", i, j, t.Len()))
	}
	storySize := t.MemorySize * t.SentenceSize
	return &Tensors{
		MemorySize:   t.MemorySize,
		SentenceSize: t.SentenceSize,
		VocabSize:    t.VocabSize,
		Stories:      t.Stories[i*storySize : j*storySize],
		Queries:      t.Queries[i*t.SentenceSize : j*t.SentenceSize],
		Answers:      t.Answers[i*t.VocabSize : j*t.VocabSize],
	}
}

// Slice is like Rows, but returns an anysgd.SampleList.
func (t *Tensors) Slice(i, j int) anysgd.SampleList {
	return t.Rows(i, j)
}

// Swap swaps two examples.
func (t *Tensors) Swap(i, j int) {
	if i == j {
		return
	}
	swapRanges(t.Story(i), t.Story(j))
	swapRanges(t.Query(i), t.Query(j))
	swapRanges(t.Answer(i), t.Answer(j))
}

// Hash hashes the contents of example i.
func (t *Tensors) Hash(i int) []byte {
	h := sha256.New()
	var buf [8]byte
	for _, part := range [][]int{t.Story(i), t.Query(i), t.Answer(i)} {
		for _, x := range part {
			binary.LittleEndian.PutUint64(buf[:], uint64(x))
			h.Write(buf[:])
		}
	}
	return h.Sum(nil)
}

// Copy creates a deep copy of the tensors.
func (t *Tensors) Copy() *Tensors {
	return &Tensors{
		MemorySize:   t.MemorySize,
		SentenceSize: t.SentenceSize,
		VocabSize:    t.VocabSize,
		Stories:      append([]int{}, t.Stories...),
		Queries:      append([]int{}, t.Queries...),
		Answers:      append([]int{}, t.Answers...),
		Tasks:        append([]TaskRange{}, t.Tasks...),
	}
}

// Concat joins tensors row-wise.
//
// Task ranges are carried over with their offsets
// adjusted.
// All arguments must have the same shape.
func Concat(ts ...*Tensors) *Tensors {
	if len(ts) == 0 {
		panic("nothing to concatenate")
	}
	res := &Tensors{
		MemorySize:   ts[0].MemorySize,
		SentenceSize: ts[0].SentenceSize,
		VocabSize:    ts[0].VocabSize,
	}
	for _, t := range ts {
		if t.MemorySize != res.MemorySize || t.SentenceSize != res.SentenceSize ||
			t.VocabSize != res.VocabSize {
			panic("mismatching tensor shapes")
		}
		offset := res.Len()
		for _, r := range t.Tasks {
			res.Tasks = append(res.Tasks, TaskRange{
				Task:  r.Task,
				Start: r.Start + offset,
				End:   r.End + offset,
			})
		}
		res.Stories = append(res.Stories, t.Stories...)
		res.Queries = append(res.Queries, t.Queries...)
		res.Answers = append(res.Answers, t.Answers...)
	}
	return res
}

func swapRanges(a, b []int) {
	for i := range a {
		a[i], b[i] = b[i], a[i]
	}
}
