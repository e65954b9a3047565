package anyqa

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/unixpickle/essentials"
)

var reportHeader = []string{"Task", "Training Accuracy", "Validation Accuracy",
	"Testing Accuracy"}

// WriteCSV writes the per-task accuracies as a CSV table.
func (e *Evaluation) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return essentials.AddCtx("write report", err)
	}
	for i, task := range e.Tasks {
		row := []string{
			strconv.Itoa(task),
			formatAccuracy(e.Train[i]),
			formatAccuracy(e.Val[i]),
			formatAccuracy(e.Test[i]),
		}
		if err := cw.Write(row); err != nil {
			return essentials.AddCtx("write report", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return essentials.AddCtx("write report", err)
	}
	return nil
}

// WriteFile writes the CSV table to a file.
func (e *Evaluation) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return essentials.AddCtx("write report", err)
	}
	if err := e.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return essentials.AddCtx("write report", err)
	}
	return nil
}

// String renders the evaluation as a human-readable block.
func (e *Evaluation) String() string {
	var b strings.Builder
	b.WriteString("-----------------------\n")
	fmt.Fprintf(&b, "Epoch %d\n", e.Epoch)
	fmt.Fprintf(&b, "Total Cost: %v\n\n", e.TotalCost)
	for i, task := range e.Tasks {
		fmt.Fprintf(&b, "Task %d\n", task)
		fmt.Fprintf(&b, "Training Accuracy = %v\n", e.Train[i])
		fmt.Fprintf(&b, "Validation Accuracy = %v\n", e.Val[i])
		fmt.Fprintf(&b, "Testing Accuracy = %v\n\n", e.Test[i])
	}
	b.WriteString("-----------------------")
	return b.String()
}

func formatAccuracy(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}
