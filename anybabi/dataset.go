package anybabi

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/unixpickle/anymem/anysgd"
)

// DefaultValFraction is the fraction of each task's train
// examples held out for validation.
const DefaultValFraction = 0.1

// SplitConfig configures NewDataset.
type SplitConfig struct {
	// MemoryLimit caps the number of memory slots.
	MemoryLimit int

	// ValFraction is the fraction of each task's train
	// examples to use for validation.
	ValFraction float64

	// Rand is used for the random split.
	// If it is nil, the global source is used.
	Rand *rand.Rand

	// HashSplit selects a deterministic split based on
	// example hashes instead of a random split.
	HashSplit bool
}

// A Dataset is a vectorized, split corpus.
type Dataset struct {
	Vocab        *Vocabulary
	Stats        Stats
	SentenceSize int
	MemorySize   int

	// Train and Val pool the per-task splits of every
	// task's train examples.
	Train *Tensors
	Val   *Tensors

	// Test pools every task's test examples.
	Test *Tensors
}

// NewDataset builds the vocabulary, vectorizes every task,
// and splits and pools the results.
//
// Every pooled set records the true task boundaries.
func NewDataset(c *Corpus, cfg *SplitConfig) (*Dataset, error) {
	if len(c.Tasks) == 0 {
		return nil, errors.New("new dataset: empty corpus")
	}
	all := c.Examples()
	stats := ComputeStats(all)
	d := &Dataset{
		Stats:        stats,
		SentenceSize: stats.SentenceSize(),
		MemorySize:   stats.MemorySize(cfg.MemoryLimit),
	}
	d.Vocab = NewVocabulary(all, d.MemorySize)

	var trains, vals, tests []*Tensors
	for _, task := range c.Tasks {
		tensors, err := Vectorize(task.Train, d.Vocab, d.SentenceSize, d.MemorySize)
		if err != nil {
			return nil, errors.WithMessagef(err, "vectorize task %d", task.ID)
		}
		train, val := d.split(tensors, cfg)
		trains = append(trains, withTask(train, task.ID))
		vals = append(vals, withTask(val, task.ID))

		test, err := Vectorize(task.Test, d.Vocab, d.SentenceSize, d.MemorySize)
		if err != nil {
			return nil, errors.WithMessagef(err, "vectorize task %d", task.ID)
		}
		tests = append(tests, withTask(test, task.ID))
	}
	d.Train = Concat(trains...)
	d.Val = Concat(vals...)
	d.Test = Concat(tests...)
	return d, nil
}

func (d *Dataset) split(t *Tensors, cfg *SplitConfig) (train, val *Tensors) {
	var left, right anysgd.SampleList
	if cfg.HashSplit {
		left, right = anysgd.HashSplit(t, 1-cfg.ValFraction)
	} else {
		left, right = anysgd.RandomSplit(t, cfg.ValFraction, cfg.Rand)
	}
	return left.(*Tensors), right.(*Tensors)
}

func withTask(t *Tensors, id int) *Tensors {
	t.Tasks = []TaskRange{{Task: id, Start: 0, End: t.Len()}}
	return t
}
