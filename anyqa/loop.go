package anyqa

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/unixpickle/anymem/anybabi"
	"github.com/unixpickle/anymem/anysgd"
	"github.com/unixpickle/essentials"
)

// EpochStatus summarizes one training epoch.
type EpochStatus struct {
	Epoch     int
	Rate      float64
	Batches   int
	TotalCost float64
}

// An Evaluation stores per-task accuracies for every set.
//
// Train, Val, and Test line up with Tasks.
type Evaluation struct {
	Epoch     int
	TotalCost float64

	Tasks []int
	Train []float64
	Val   []float64
	Test  []float64
}

// Loop trains a Model for a fixed number of epochs and
// periodically evaluates it.
type Loop struct {
	Model Model

	// Train, Val, and Test are the pooled sets.
	// Train may not have fewer than BatchSize rows.
	Train *anybabi.Tensors
	Val   *anybabi.Tensors
	Test  *anybabi.Tensors

	// Rater determines the learning rate for each epoch.
	Rater anysgd.Rater

	Epochs       int
	BatchSize    int
	EvalInterval int

	// Chunker splits each set for evaluation.
	// If it is nil, TaskChunker is used.
	Chunker Chunker

	// Rand is used to shuffle the batch order.
	// If it is nil, the global source is used.
	Rand *rand.Rand

	// EpochFunc, if non-nil, is called after every epoch.
	EpochFunc func(s *EpochStatus)

	// EvalFunc, if non-nil, is called after every
	// evaluation.
	EvalFunc func(e *Evaluation)
}

// Run trains the model and returns the last evaluation.
//
// An evaluation happens every EvalInterval epochs, and
// after the final epoch if none happened before.
func (l *Loop) Run() (*Evaluation, error) {
	if l.Epochs <= 0 || l.EvalInterval <= 0 {
		return nil, errors.New("run loop: epochs and evaluation interval must be positive")
	}
	ranges := anysgd.Ranges(l.Train.Len(), l.BatchSize)
	if len(ranges) == 0 {
		return nil, fmt.Errorf("run loop: %d training examples do not fill a batch of %d",
			l.Train.Len(), l.BatchSize)
	}

	var last *Evaluation
	for epoch := 1; epoch <= l.Epochs; epoch++ {
		status, err := l.epoch(epoch, ranges)
		if err != nil {
			return nil, essentials.AddCtx(fmt.Sprintf("run loop: epoch %d", epoch), err)
		}
		if l.EpochFunc != nil {
			l.EpochFunc(status)
		}
		if epoch%l.EvalInterval == 0 || (epoch == l.Epochs && last == nil) {
			last, err = l.Evaluate(epoch, status.TotalCost)
			if err != nil {
				return nil, essentials.AddCtx(fmt.Sprintf("run loop: epoch %d", epoch), err)
			}
			if l.EvalFunc != nil {
				l.EvalFunc(last)
			}
		}
	}
	return last, nil
}

// Evaluate scores the model on every set.
func (l *Loop) Evaluate(epoch int, totalCost float64) (*Evaluation, error) {
	chunker := l.Chunker
	if chunker == nil {
		chunker = TaskChunker{}
	}
	res := &Evaluation{Epoch: epoch, TotalCost: totalCost}
	for _, tc := range chunker.Chunks(l.Test) {
		res.Tasks = append(res.Tasks, tc.Task)
	}
	sets := []struct {
		name string
		data *anybabi.Tensors
		dest *[]float64
	}{
		{"train", l.Train, &res.Train},
		{"val", l.Val, &res.Val},
		{"test", l.Test, &res.Test},
	}
	for _, set := range sets {
		chunks := chunker.Chunks(set.data)
		if len(chunks) != len(res.Tasks) {
			return nil, fmt.Errorf("evaluate %s: got %d chunks but expected %d",
				set.name, len(chunks), len(res.Tasks))
		}
		accs, err := Evaluate(l.Model, set.data, chunks)
		if err != nil {
			return nil, essentials.AddCtx("evaluate "+set.name, err)
		}
		*set.dest = accs
	}
	return res, nil
}

func (l *Loop) epoch(epoch int, ranges []anysgd.Range) (*EpochStatus, error) {
	status := &EpochStatus{
		Epoch:   epoch,
		Rate:    l.Rater.Rate(epoch),
		Batches: len(ranges),
	}
	for _, r := range anysgd.ShuffleRanges(ranges, l.Rand) {
		cost, err := l.Model.Fit(l.Train.Rows(r.Start, r.End), status.Rate)
		if err != nil {
			return nil, err
		}
		status.TotalCost += cost
	}
	return status, nil
}
