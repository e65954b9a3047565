package anyqa

import (
	"fmt"

	"github.com/unixpickle/anymem/anybabi"
	"github.com/unixpickle/essentials"
)

// A Chunk is a range of rows scored as one task.
type Chunk struct {
	Task  int
	Start int
	End   int
}

// A Chunker splits a pooled set into per-task chunks.
type Chunker interface {
	Chunks(t *anybabi.Tensors) []Chunk
}

// TaskChunker produces one chunk per recorded task
// boundary.
type TaskChunker struct{}

// Chunks returns the task ranges of t.
// If t records no boundaries, the whole set is one chunk
// for task 1.
func (TaskChunker) Chunks(t *anybabi.Tensors) []Chunk {
	if len(t.Tasks) == 0 {
		return []Chunk{{Task: 1, Start: 0, End: t.Len()}}
	}
	res := make([]Chunk, len(t.Tasks))
	for i, r := range t.Tasks {
		res[i] = Chunk{Task: r.Task, Start: r.Start, End: r.End}
	}
	return res
}

// PositionalChunker splits a set into this many chunks of
// floor(n/k) rows, ignoring the remainder.
//
// Chunk i is attributed to the i-th recorded task, or to
// task i+1 if there is no such task.
type PositionalChunker int

// Chunks returns the positional chunks of t.
func (p PositionalChunker) Chunks(t *anybabi.Tensors) []Chunk {
	k := int(p)
	if k <= 0 {
		return nil
	}
	size := t.Len() / k
	res := make([]Chunk, k)
	for i := range res {
		task := i + 1
		if i < len(t.Tasks) {
			task = t.Tasks[i].Task
		}
		res[i] = Chunk{Task: task, Start: i * size, End: (i + 1) * size}
	}
	return res
}

// Accuracy computes the fraction of predictions which
// match the labels.
// It returns 0 for empty inputs.
func Accuracy(preds, labels []int) float64 {
	if len(preds) != len(labels) {
		panic("prediction count mismatch")
	}
	if len(labels) == 0 {
		return 0
	}
	var correct int
	for i, p := range preds {
		if p == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(labels))
}

// Evaluate scores the model on every chunk of t.
//
// The resulting accuracies line up with the chunks.
func Evaluate(m Model, t *anybabi.Tensors, chunks []Chunk) ([]float64, error) {
	res := make([]float64, len(chunks))
	for i, chunk := range chunks {
		if chunk.End == chunk.Start {
			continue
		}
		rows := t.Rows(chunk.Start, chunk.End)
		preds, err := m.Predict(rows)
		if err != nil {
			return nil, essentials.AddCtx(fmt.Sprintf("evaluate task %d", chunk.Task), err)
		}
		if len(preds) != rows.Len() {
			return nil, fmt.Errorf("evaluate task %d: got %d predictions for %d examples",
				chunk.Task, len(preds), rows.Len())
		}
		res[i] = Accuracy(preds, rows.Labels())
	}
	return res, nil
}

// Mean computes the mean of a list of accuracies.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, x := range values {
		sum += x
	}
	return sum / float64(len(values))
}
