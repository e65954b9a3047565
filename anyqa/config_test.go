package anyqa

import (
	"flag"
	"reflect"
	"testing"
)

func TestConfigFlags(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.AddFlags(fs)
	err := fs.Parse([]string{"-batch_size", "32", "-hops", "2", "-tasks", "1,3-4",
		"-positional_eval", "-random_state", "7"})
	if err != nil {
		t.Fatal(err)
	}
	if c.BatchSize != 32 || c.Hops != 2 || !c.PositionalEval || c.RandomState != 7 {
		t.Errorf("flags not applied: %+v", c)
	}
	if c.Epochs != 60 || c.LearningRate != 0.01 || c.MemorySize != 50 {
		t.Errorf("defaults changed: %+v", c)
	}
	if _, ok := c.Chunker(3).(PositionalChunker); !ok {
		t.Error("expected positional chunker")
	}
	if c.Rand().Int63() != c.Rand().Int63() {
		t.Error("seeded sources should agree")
	}
}

func TestConfigTaskIDs(t *testing.T) {
	c := DefaultConfig()
	ids, err := c.TaskIDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 20 || ids[0] != 1 || ids[19] != 20 {
		t.Errorf("unexpected default tasks: %v", ids)
	}

	c.Tasks = "5, 1-3,2"
	ids, err = c.TaskIDs()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids, []int{5, 1, 2, 3}) {
		t.Errorf("unexpected tasks: %v", ids)
	}

	for _, bad := range []string{"", "0", "21", "3-1", "a", "1-x", "1,,2"} {
		c.Tasks = bad
		if _, err := c.TaskIDs(); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	mutations := []func(c *Config){
		func(c *Config) { c.LearningRate = 0 },
		func(c *Config) { c.AnnealRate = -1 },
		func(c *Config) { c.EvaluationInterval = 0 },
		func(c *Config) { c.BatchSize = 0 },
		func(c *Config) { c.Hops = 0 },
		func(c *Config) { c.Epochs = 0 },
		func(c *Config) { c.EmbeddingSize = 0 },
		func(c *Config) { c.MemorySize = -3 },
		func(c *Config) { c.ValFraction = 1 },
		func(c *Config) { c.Tasks = "22" },
	}
	for i, mutate := range mutations {
		c := DefaultConfig()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Errorf("mutation %d: expected error", i)
		}
	}
}
