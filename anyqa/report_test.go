package anyqa

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testEvaluation() *Evaluation {
	return &Evaluation{
		Epoch:     10,
		TotalCost: 12.5,
		Tasks:     []int{1, 2},
		Train:     []float64{1, 0.5},
		Val:       []float64{0, 1},
		Test:      []float64{0.25, 0.75},
	}
}

func TestEvaluationCSV(t *testing.T) {
	expected := "Task,Training Accuracy,Validation Accuracy,Testing Accuracy\n" +
		"1,1.0,0.0,0.25\n" +
		"2,0.5,1.0,0.75\n"

	var buf bytes.Buffer
	if err := testEvaluation().WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != expected {
		t.Errorf("expected %q but got %q", expected, buf.String())
	}

	path := filepath.Join(t.TempDir(), "scores.csv")
	if err := testEvaluation().WriteFile(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != expected {
		t.Errorf("expected %q but got %q", expected, string(data))
	}
}

func TestEvaluationString(t *testing.T) {
	s := testEvaluation().String()
	for _, part := range []string{
		"Epoch 10\n",
		"Total Cost: 12.5\n",
		"Task 2\nTraining Accuracy = 0.5\nValidation Accuracy = 1\nTesting Accuracy = 0.75\n",
	} {
		if !strings.Contains(s, part) {
			t.Errorf("missing %q in %q", part, s)
		}
	}
}
