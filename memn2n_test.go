package anymem

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anydiff/anydifftest"
	"github.com/unixpickle/anymem/anybabi"
	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/anyvec/anyvec64"
)

var testWords = []string{"apple", "ball", "cat", "dog"}

// testBatch creates n examples whose answer is the only
// word of the most recent story sentence.
func testBatch(t *testing.T, n int, r *rand.Rand) (*anybabi.Tensors, *anybabi.Vocabulary) {
	var examples []*anybabi.Example
	for i := 0; i < n; i++ {
		var story [][]string
		numSentences := 1 + r.Intn(3)
		for j := 0; j < numSentences; j++ {
			story = append(story, []string{testWords[r.Intn(len(testWords))]})
		}
		examples = append(examples, &anybabi.Example{
			Story:    story,
			Question: []string{"what"},
			Answer:   story[len(story)-1],
		})
	}
	examples = append(examples, &anybabi.Example{
		Story:    [][]string{testWords},
		Question: []string{"what"},
		Answer:   []string{"dog"},
	})
	v := anybabi.NewVocabulary(examples, 3)
	tensors, err := anybabi.Vectorize(examples[:n], v, len(testWords)+1, 3)
	if err != nil {
		t.Fatal(err)
	}
	return tensors, v
}

func TestMemN2NOutput(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	batch, v := testBatch(t, 5, r)
	model := NewMemN2N(anyvec64.DefaultCreator{}, v.Size(), 4, 3, r)

	for _, e := range model.Embeddings {
		row := e.Vector.Data().([]float64)[:model.EmbedSize]
		for _, x := range row {
			if x != 0 {
				t.Fatal("nil word embedding should be zero")
			}
		}
	}

	out := model.Apply(batch).Output().Data().([]float64)
	if len(out) != batch.Len()*v.Size() {
		t.Fatalf("expected %d outputs but got %d", batch.Len()*v.Size(), len(out))
	}
	for i := 0; i < batch.Len(); i++ {
		var sum float64
		for _, x := range out[i*v.Size() : (i+1)*v.Size()] {
			sum += math.Exp(x)
		}
		if math.Abs(sum-1) > 1e-8 {
			t.Errorf("example %d: probabilities sum to %f", i, sum)
		}
	}
}

func TestMemN2NGradients(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	batch, v := testBatch(t, 3, r)
	model := NewMemN2N(anyvec64.DefaultCreator{}, v.Size(), 3, 2, r)
	checker := anydifftest.ResChecker{
		F: func() anydiff.Res {
			return model.Apply(batch)
		},
		V:     model.Parameters(),
		Delta: 1e-5,
		Prec:  1e-4,
	}
	checker.FullCheck(t)
}

func TestTrainerFit(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	batch, v := testBatch(t, 16, r)
	model := NewMemN2N(anyvec32.CurrentCreator(), v.Size(), 8, 1, r)
	trainer := NewTrainer(model, 40)

	initial, err := trainer.Fit(batch, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	var last float64
	for i := 0; i < 300; i++ {
		last, err = trainer.Fit(batch, 0.05)
		if err != nil {
			t.Fatal(err)
		}
	}
	if last > initial/2 {
		t.Errorf("cost did not decrease enough: %f -> %f", initial, last)
	}
	if trainer.LastCost != last {
		t.Error("LastCost was not updated")
	}

	preds, err := trainer.Predict(batch)
	if err != nil {
		t.Fatal(err)
	}
	var correct int
	for i, p := range preds {
		if p == batch.Label(i) {
			correct++
		}
	}
	if correct < batch.Len()/2 {
		t.Errorf("only %d/%d correct after training", correct, batch.Len())
	}
}

func TestTrainerPredictChunks(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	batch, v := testBatch(t, 7, r)
	model := NewMemN2N(anyvec64.DefaultCreator{}, v.Size(), 5, 2, r)

	whole := &Trainer{Model: model}
	expected, err := whole.Predict(batch)
	if err != nil {
		t.Fatal(err)
	}
	chunked := &Trainer{Model: model, MaxBatch: 3}
	actual, err := chunked.Predict(batch)
	if err != nil {
		t.Fatal(err)
	}
	if len(actual) != 7 || !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v but got %v", expected, actual)
	}
}

func TestTrainerErrors(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	batch, v := testBatch(t, 2, r)
	trainer := NewTrainer(NewMemN2N(anyvec64.DefaultCreator{}, v.Size()+1, 3, 1, r), 40)
	if _, err := trainer.Fit(batch, 0.01); err == nil {
		t.Error("expected vocab size error")
	}
	if _, err := trainer.Predict(batch.Rows(0, 0)); err == nil {
		t.Error("expected empty batch error")
	}
}
