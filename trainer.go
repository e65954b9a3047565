package anymem

import (
	"errors"
	"fmt"
	"math"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anymem/anybabi"
	"github.com/unixpickle/anymem/anysgd"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// DefaultMaxBatch is the default number of examples the
// Trainer feeds through the model at once in Predict.
const DefaultMaxBatch = 100

// A Trainer fits a MemN2N to batches of vectorized
// examples and predicts answers with it.
type Trainer struct {
	Model *MemN2N

	// Cost defaults to DotCost.
	Cost Cost

	// Transformers are applied to each gradient, in
	// order, before the step.
	// A typical setup is gradient clipping followed by
	// Adam.
	Transformers []anysgd.Transformer

	// MaxBatch limits the number of examples evaluated at
	// once by Predict.
	// If it is 0, DefaultMaxBatch is used.
	MaxBatch int

	// After every call to Fit, LastCost is set to the
	// total cost of the batch.
	LastCost float64
}

// NewTrainer creates a Trainer which clips gradients to
// maxGradNorm and optimizes with Adam.
func NewTrainer(m *MemN2N, maxGradNorm float64) *Trainer {
	return &Trainer{
		Model: m,
		Transformers: []anysgd.Transformer{
			&anysgd.ClipNorm{Max: maxGradNorm},
			&anysgd.Adam{},
		},
	}
}

// TotalCost computes the total cost for a batch.
func (t *Trainer) TotalCost(b *anybabi.Tensors) anydiff.Res {
	c := t.Model.Embeddings[0].Vector.Creator()
	desired := anydiff.NewConst(intVector(c, b.Answers))
	cost := t.cost().Cost(desired, t.Model.Apply(b), b.Len())
	return anydiff.Sum(cost)
}

// Fit performs one step of gradient descent on the batch
// with the given learning rate.
// It returns the total cost of the batch before the step.
func (t *Trainer) Fit(b *anybabi.Tensors, rate float64) (float64, error) {
	if err := t.check(b); err != nil {
		return 0, essentials.AddCtx("fit", err)
	}
	grad := anydiff.NewGrad(t.Model.Parameters()...)
	cost := t.TotalCost(b)
	c := cost.Output().Creator()
	cost.Propagate(c.MakeVectorData(c.MakeNumericList([]float64{1})), grad)

	t.LastCost = numericFloat(anyvec.Sum(cost.Output()))
	if math.IsNaN(t.LastCost) || math.IsInf(t.LastCost, 0) {
		return t.LastCost, errors.New("fit: cost is not finite")
	}
	anysgd.Step(grad, rate, t.Transformers...)
	return t.LastCost, nil
}

// Predict returns the most likely answer index for every
// example in the batch.
func (t *Trainer) Predict(b *anybabi.Tensors) ([]int, error) {
	if err := t.check(b); err != nil {
		return nil, essentials.AddCtx("predict", err)
	}
	maxBatch := t.MaxBatch
	if maxBatch == 0 {
		maxBatch = DefaultMaxBatch
	}
	res := make([]int, 0, b.Len())
	for start := 0; start < b.Len(); start += maxBatch {
		end := min(start+maxBatch, b.Len())
		out := t.Model.Apply(b.Rows(start, end)).Output()
		res = append(res, rowMaxes(out, t.Model.VocabSize)...)
	}
	return res, nil
}

func (t *Trainer) check(b *anybabi.Tensors) error {
	if b.Len() == 0 {
		return errors.New("empty batch")
	}
	if b.VocabSize != t.Model.VocabSize {
		return fmt.Errorf("batch vocab size %d does not match model (%d)",
			b.VocabSize, t.Model.VocabSize)
	}
	if b.MemorySize < 1 || b.SentenceSize < 1 {
		return fmt.Errorf("invalid batch shape %dx%d", b.MemorySize, b.SentenceSize)
	}
	return nil
}

func (t *Trainer) cost() Cost {
	if t.Cost == nil {
		return DotCost{}
	}
	return t.Cost
}

func intVector(c anyvec.Creator, values []int) anyvec.Vector {
	data := make([]float64, len(values))
	for i, x := range values {
		data[i] = float64(x)
	}
	return c.MakeVectorData(c.MakeNumericList(data))
}

func rowMaxes(vec anyvec.Vector, cols int) []int {
	var values []float64
	switch data := vec.Data().(type) {
	case []float32:
		values = make([]float64, len(data))
		for i, x := range data {
			values[i] = float64(x)
		}
	case []float64:
		values = data
	default:
		panic(fmt.Sprintf("unsupported data type: %T", data))
	}
	res := make([]int, len(values)/cols)
	for i := range res {
		row := values[i*cols : (i+1)*cols]
		for j, x := range row {
			if x > row[res[i]] {
				res[i] = j
			}
		}
	}
	return res
}

func numericFloat(n anyvec.Numeric) float64 {
	switch n := n.(type) {
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		panic(fmt.Sprintf("unsupported numeric type: %T", n))
	}
}
