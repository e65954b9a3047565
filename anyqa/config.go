package anyqa

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/unixpickle/anymem/anybabi"
	"github.com/unixpickle/anymem/anysgd"
)

// Config stores every setting of a training run.
//
// A Config is filled in once at startup and is not
// modified afterwards.
type Config struct {
	LearningRate       float64
	AnnealRate         float64
	AnnealStopEpoch    float64
	MaxGradNorm        float64
	EvaluationInterval int
	BatchSize          int
	Hops               int
	Epochs             int
	EmbeddingSize      int
	MemorySize         int

	// RandomState seeds every random choice of the run.
	// A negative value means a time-based seed.
	RandomState int64

	DataDir    string
	LogDir     string
	OutputFile string

	// Tasks lists task IDs and ranges, like "1-3,7".
	Tasks string

	ValFraction    float64
	HashSplit      bool
	PositionalEval bool
}

// DefaultConfig returns the default settings.
func DefaultConfig() *Config {
	return &Config{
		LearningRate:       0.01,
		AnnealRate:         15,
		AnnealStopEpoch:    60,
		MaxGradNorm:        40,
		EvaluationInterval: 10,
		BatchSize:          100,
		Hops:               3,
		Epochs:             60,
		EmbeddingSize:      30,
		MemorySize:         50,
		RandomState:        -1,
		DataDir:            "data/babi-tasks-v1-2/tasks_1-20_v1-2/en-10k/",
		LogDir:             "logs",
		OutputFile:         "scores_10k_memsize_50_embeddingsize_30_with_lstm.csv",
		Tasks:              fmt.Sprintf("1-%d", anybabi.NumTasks),
		ValFraction:        anybabi.DefaultValFraction,
	}
}

// AddFlags registers a flag for every field, using the
// current values as defaults.
func (c *Config) AddFlags(fs *flag.FlagSet) {
	fs.Float64Var(&c.LearningRate, "learning_rate", c.LearningRate, "learning rate for Adam")
	fs.Float64Var(&c.AnnealRate, "anneal_rate", c.AnnealRate,
		"number of epochs between halvings of the learning rate")
	fs.Float64Var(&c.AnnealStopEpoch, "anneal_stop_epoch", c.AnnealStopEpoch,
		"epoch at which the learning rate stops decaying")
	fs.Float64Var(&c.MaxGradNorm, "max_grad_norm", c.MaxGradNorm, "clip gradients to this norm")
	fs.IntVar(&c.EvaluationInterval, "evaluation_interval", c.EvaluationInterval,
		"evaluate every this many epochs")
	fs.IntVar(&c.BatchSize, "batch_size", c.BatchSize, "mini-batch size")
	fs.IntVar(&c.Hops, "hops", c.Hops, "number of memory hops")
	fs.IntVar(&c.Epochs, "epochs", c.Epochs, "number of epochs")
	fs.IntVar(&c.EmbeddingSize, "embedding_size", c.EmbeddingSize, "embedding size")
	fs.IntVar(&c.MemorySize, "memory_size", c.MemorySize, "maximum number of memories")
	fs.Int64Var(&c.RandomState, "random_state", c.RandomState,
		"random seed (negative for a time-based seed)")
	fs.StringVar(&c.DataDir, "data_dir", c.DataDir, "directory containing the bAbI tasks")
	fs.StringVar(&c.LogDir, "log_dir", c.LogDir, "directory for training summaries")
	fs.StringVar(&c.OutputFile, "output_file", c.OutputFile, "CSV file for final accuracies")
	fs.StringVar(&c.Tasks, "tasks", c.Tasks, "task IDs to load, like 1-20 or 1,3,5-7")
	fs.Float64Var(&c.ValFraction, "val_fraction", c.ValFraction,
		"fraction of each task held out for validation")
	fs.BoolVar(&c.HashSplit, "hash_split", c.HashSplit,
		"split by example hashes instead of randomly")
	fs.BoolVar(&c.PositionalEval, "positional_eval", c.PositionalEval,
		"score equal-size positional chunks instead of true task boundaries")
}

// Validate checks that the settings make sense.
func (c *Config) Validate() error {
	switch {
	case c.LearningRate <= 0:
		return errors.New("learning rate must be positive")
	case c.AnnealRate <= 0:
		return errors.New("anneal rate must be positive")
	case c.AnnealStopEpoch < 0:
		return errors.New("anneal stop epoch must not be negative")
	case c.MaxGradNorm < 0:
		return errors.New("max gradient norm must not be negative")
	case c.EvaluationInterval <= 0:
		return errors.New("evaluation interval must be positive")
	case c.BatchSize <= 0:
		return errors.New("batch size must be positive")
	case c.Hops <= 0:
		return errors.New("hops must be positive")
	case c.Epochs <= 0:
		return errors.New("epochs must be positive")
	case c.EmbeddingSize <= 0:
		return errors.New("embedding size must be positive")
	case c.MemorySize <= 0:
		return errors.New("memory size must be positive")
	case c.ValFraction < 0 || c.ValFraction >= 1:
		return errors.New("validation fraction must be in [0, 1)")
	}
	if _, err := c.TaskIDs(); err != nil {
		return err
	}
	return nil
}

// TaskIDs parses the Tasks field.
func (c *Config) TaskIDs() ([]int, error) {
	var res []int
	seen := map[int]bool{}
	for _, part := range strings.Split(c.Tasks, ",") {
		part = strings.TrimSpace(part)
		first, last, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(first)
		if err != nil {
			return nil, fmt.Errorf("parse tasks: bad task %q", part)
		}
		end := start
		if isRange {
			if end, err = strconv.Atoi(last); err != nil || end < start {
				return nil, fmt.Errorf("parse tasks: bad range %q", part)
			}
		}
		for id := start; id <= end; id++ {
			if id < 1 || id > anybabi.NumTasks {
				return nil, fmt.Errorf("parse tasks: no task %d", id)
			}
			if !seen[id] {
				seen[id] = true
				res = append(res, id)
			}
		}
	}
	return res, nil
}

// Rand creates a random source from RandomState.
func (c *Config) Rand() *rand.Rand {
	if c.RandomState < 0 {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(c.RandomState))
}

// Rater creates the learning rate schedule.
func (c *Config) Rater() anysgd.Rater {
	return &anysgd.AnnealRater{
		Base:      c.LearningRate,
		Interval:  c.AnnealRate,
		StopEpoch: c.AnnealStopEpoch,
	}
}

// SplitConfig creates the anybabi split settings.
func (c *Config) SplitConfig(r *rand.Rand) *anybabi.SplitConfig {
	return &anybabi.SplitConfig{
		MemoryLimit: c.MemorySize,
		ValFraction: c.ValFraction,
		Rand:        r,
		HashSplit:   c.HashSplit,
	}
}

// Chunker creates the evaluation chunker.
func (c *Config) Chunker(numTasks int) Chunker {
	if c.PositionalEval {
		return PositionalChunker(numTasks)
	}
	return TaskChunker{}
}
