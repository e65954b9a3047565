// Package anybabi loads the bAbI question answering tasks
// and turns them into fixed-size integer tensors suitable
// for training memory networks.
//
// The pipeline is strictly forward: a Corpus is loaded
// from disk, a Vocabulary is built over every example in
// it, each task is vectorized into Tensors, and the tasks
// are split and pooled into a Dataset.
package anybabi

// NumTasks is the number of tasks in the bAbI benchmark.
const NumTasks = 20

// An Example is one question about a story.
type Example struct {
	// Story lists the statements preceding the question,
	// oldest first.
	Story [][]string

	Question []string

	// Answer usually contains a single token.
	// List answers (e.g. "apple,milk") produce one token
	// per item.
	Answer []string
}

// A Task is one bAbI task with its train and test
// partitions.
type Task struct {
	ID    int
	Train []*Example
	Test  []*Example
}

// A Corpus is a list of loaded tasks.
type Corpus struct {
	Tasks []*Task
}

// Examples returns every train example followed by every
// test example, in task order.
func (c *Corpus) Examples() []*Example {
	var res []*Example
	for _, t := range c.Tasks {
		res = append(res, t.Train...)
	}
	for _, t := range c.Tasks {
		res = append(res, t.Test...)
	}
	return res
}

// TestExamples returns the test examples of every task,
// in task order.
func (c *Corpus) TestExamples() []*Example {
	var res []*Example
	for _, t := range c.Tasks {
		res = append(res, t.Test...)
	}
	return res
}
