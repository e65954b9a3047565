package anyqa

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/unixpickle/essentials"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var summarySets = []string{"train", "val", "test"}

type summaryFile struct {
	f *os.File
	w *csv.Writer
}

func createSummaryFile(path string, header []string) (*summaryFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s := &summaryFile{f: f, w: csv.NewWriter(f)}
	if err := s.w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

func (s *summaryFile) Write(row []string) error {
	if err := s.w.Write(row); err != nil {
		return err
	}
	s.w.Flush()
	return s.w.Error()
}

func (s *summaryFile) Close() error {
	s.w.Flush()
	err := s.w.Error()
	if closeErr := s.f.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Summaries records training curves in a log directory.
//
// The directory gets train/cost.csv, plus accuracy.csv in
// each of train/, val/, and test/.
// Close renders cost.png and accuracy.png.
type Summaries struct {
	dir string

	cost     *summaryFile
	accuracy []*summaryFile

	costPoints plotter.XYs
	accPoints  []plotter.XYs
}

// NewSummaries removes and recreates dir, then opens the
// summary files.
func NewSummaries(dir string, tasks []int) (res *Summaries, err error) {
	defer func() {
		if err != nil {
			err = essentials.AddCtx("create summaries", err)
		}
	}()
	if err := os.RemoveAll(dir); err != nil {
		return nil, err
	}
	res = &Summaries{dir: dir, accPoints: make([]plotter.XYs, len(summarySets))}
	accHeader := []string{"Epoch", "Mean Accuracy"}
	for _, task := range tasks {
		accHeader = append(accHeader, fmt.Sprintf("Task %d", task))
	}
	for _, name := range summarySets {
		subDir := filepath.Join(dir, name)
		if err := os.MkdirAll(subDir, 0755); err != nil {
			res.closeFiles()
			return nil, err
		}
		f, err := createSummaryFile(filepath.Join(subDir, "accuracy.csv"), accHeader)
		if err != nil {
			res.closeFiles()
			return nil, err
		}
		res.accuracy = append(res.accuracy, f)
	}
	res.cost, err = createSummaryFile(filepath.Join(dir, "train", "cost.csv"),
		[]string{"Epoch", "Learning Rate", "Total Cost"})
	if err != nil {
		res.closeFiles()
		return nil, err
	}
	return res, nil
}

// AddEpoch records the cost of an epoch.
func (s *Summaries) AddEpoch(e *EpochStatus) error {
	s.costPoints = append(s.costPoints, plotter.XY{X: float64(e.Epoch), Y: e.TotalCost})
	err := s.cost.Write([]string{
		strconv.Itoa(e.Epoch),
		strconv.FormatFloat(e.Rate, 'g', -1, 64),
		strconv.FormatFloat(e.TotalCost, 'g', -1, 64),
	})
	if err != nil {
		return essentials.AddCtx("add epoch summary", err)
	}
	return nil
}

// AddEvaluation records the accuracies of an evaluation.
func (s *Summaries) AddEvaluation(e *Evaluation) error {
	for i, accs := range [][]float64{e.Train, e.Val, e.Test} {
		mean := Mean(accs)
		s.accPoints[i] = append(s.accPoints[i], plotter.XY{X: float64(e.Epoch), Y: mean})
		row := []string{strconv.Itoa(e.Epoch), formatAccuracy(mean)}
		for _, acc := range accs {
			row = append(row, formatAccuracy(acc))
		}
		if err := s.accuracy[i].Write(row); err != nil {
			return essentials.AddCtx("add evaluation summary", err)
		}
	}
	return nil
}

// Close closes the summary files and renders the plots.
func (s *Summaries) Close() error {
	if err := s.closeFiles(); err != nil {
		return essentials.AddCtx("close summaries", err)
	}
	if len(s.costPoints) > 0 {
		err := savePlot(filepath.Join(s.dir, "cost.png"), "Training cost", "Total cost",
			[]string{"train"}, []plotter.XYs{s.costPoints})
		if err != nil {
			return essentials.AddCtx("close summaries", err)
		}
	}
	if len(s.accPoints[0]) > 0 {
		err := savePlot(filepath.Join(s.dir, "accuracy.png"), "Mean accuracy", "Accuracy",
			summarySets, s.accPoints)
		if err != nil {
			return essentials.AddCtx("close summaries", err)
		}
	}
	return nil
}

func (s *Summaries) closeFiles() error {
	var firstErr error
	files := append([]*summaryFile{}, s.accuracy...)
	if s.cost != nil {
		files = append(files, s.cost)
	}
	for _, f := range files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.accuracy = nil
	s.cost = nil
	return firstErr
}

func savePlot(path, title, yLabel string, names []string, series []plotter.XYs) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = yLabel
	for i, points := range series {
		line, err := plotter.NewLine(points)
		if err != nil {
			return err
		}
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(names[i], line)
	}
	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}
