// Command babi trains an end-to-end memory network on the
// pooled bAbI tasks and writes per-task accuracies.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/unixpickle/anymem"
	"github.com/unixpickle/anymem/anybabi"
	"github.com/unixpickle/anymem/anyqa"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/essentials"
	"k8s.io/klog/v2"
)

var Creator anyvec.Creator

func main() {
	config := anyqa.DefaultConfig()
	config.AddFlags(flag.CommandLine)
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	if err := run(config); err != nil {
		klog.Errorf("Error: %v", err)
		klog.Flush()
		os.Exit(1)
	}
}

func run(config *anyqa.Config) error {
	if err := config.Validate(); err != nil {
		return essentials.AddCtx("configure", err)
	}
	taskIDs, err := config.TaskIDs()
	if err != nil {
		return essentials.AddCtx("configure", err)
	}
	Creator = anyvec32.CurrentCreator()
	rng := config.Rand()

	klog.Infof("Started Joint Model")
	corpus, err := anybabi.LoadCorpus(config.DataDir, taskIDs)
	if err != nil {
		return err
	}
	data, err := anybabi.NewDataset(corpus, config.SplitConfig(rng))
	if err != nil {
		return err
	}
	logDataset(data)

	model := anymem.NewMemN2N(Creator, data.Vocab.Size(), config.EmbeddingSize,
		config.Hops, rng)
	trainer := anymem.NewTrainer(model, config.MaxGradNorm)
	trainer.MaxBatch = config.BatchSize

	summaries, err := anyqa.NewSummaries(config.LogDir, taskIDs)
	if err != nil {
		return err
	}
	defer func() {
		if err := summaries.Close(); err != nil {
			klog.Warningf("Closing summaries: %v", err)
		}
	}()

	loop := &anyqa.Loop{
		Model:        trainer,
		Train:        data.Train,
		Val:          data.Val,
		Test:         data.Test,
		Rater:        config.Rater(),
		Epochs:       config.Epochs,
		BatchSize:    config.BatchSize,
		EvalInterval: config.EvaluationInterval,
		Chunker:      config.Chunker(len(taskIDs)),
		Rand:         rng,
		EpochFunc: func(s *anyqa.EpochStatus) {
			klog.V(1).Infof("epoch %d batches %d: rate=%v cost=%v", s.Epoch, s.Batches,
				s.Rate, s.TotalCost)
			if err := summaries.AddEpoch(s); err != nil {
				klog.Warningf("Epoch summary: %v", err)
			}
		},
		EvalFunc: func(e *anyqa.Evaluation) {
			klog.Infof("Evaluation:\n%s", e)
			if err := summaries.AddEvaluation(e); err != nil {
				klog.Warningf("Evaluation summary: %v", err)
			}
		},
	}
	final, err := loop.Run()
	if err != nil {
		return err
	}

	klog.Infof("Writing final results to %s", config.OutputFile)
	return final.WriteFile(config.OutputFile)
}

func logDataset(d *anybabi.Dataset) {
	for _, line := range datasetInfo(d) {
		klog.Info(line)
	}
}

func datasetInfo(d *anybabi.Dataset) []string {
	return []string{
		fmt.Sprintf("Longest sentence length %d", d.SentenceSize),
		fmt.Sprintf("Longest story length %d", d.Stats.MaxStory),
		fmt.Sprintf("Average story length %v", d.Stats.MeanStory),
		fmt.Sprintf("Vocabulary size %d (%d words)", d.Vocab.Size(), d.Vocab.NumWords()),
		fmt.Sprintf("Training Size %d", d.Train.Len()),
		fmt.Sprintf("Validation Size %d", d.Val.Len()),
		fmt.Sprintf("Testing Size %d", d.Test.Len()),
		fmt.Sprintf("Memory size %d, sentence size %d", d.MemorySize, d.SentenceSize),
	}
}
