package anybabi

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LoadError is returned when a task cannot be loaded.
type LoadError struct {
	Task int
	Path string
	Err  error
}

// Error returns a message naming the task and path.
func (l *LoadError) Error() string {
	return fmt.Sprintf("load task %d (%s): %v", l.Task, l.Path, l.Err)
}

// Unwrap returns the underlying error.
func (l *LoadError) Unwrap() error {
	return l.Err
}

// LoadTask loads the train and test files for a task
// from a bAbI directory.
//
// A file belongs to task id if its name contains
// "qa<id>_" and either "train" or "test".
func LoadTask(dir string, id int) (*Task, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Task: id, Path: dir, Err: err}
	}
	prefix := fmt.Sprintf("qa%d_", id)
	var trainPath, testPath string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.Contains(name, prefix) {
			continue
		}
		if trainPath == "" && strings.Contains(name, "train") {
			trainPath = filepath.Join(dir, name)
		} else if testPath == "" && strings.Contains(name, "test") {
			testPath = filepath.Join(dir, name)
		}
	}
	if trainPath == "" {
		return nil, &LoadError{Task: id, Path: dir, Err: errors.New("no train file")}
	}
	if testPath == "" {
		return nil, &LoadError{Task: id, Path: dir, Err: errors.New("no test file")}
	}

	task := &Task{ID: id}
	if task.Train, err = loadFile(trainPath); err != nil {
		return nil, &LoadError{Task: id, Path: trainPath, Err: err}
	}
	if task.Test, err = loadFile(testPath); err != nil {
		return nil, &LoadError{Task: id, Path: testPath, Err: err}
	}
	return task, nil
}

// LoadCorpus loads the given tasks, in order.
func LoadCorpus(dir string, ids []int) (*Corpus, error) {
	res := &Corpus{}
	for _, id := range ids {
		task, err := LoadTask(dir, id)
		if err != nil {
			return nil, err
		}
		res.Tasks = append(res.Tasks, task)
	}
	return res, nil
}

func loadFile(path string) ([]*Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	examples, err := ParseStories(f, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if len(examples) == 0 {
		return nil, errors.New("no questions in file")
	}
	return examples, nil
}
