// Package anyqa trains and evaluates question answering
// models on pooled bAbI tasks.
package anyqa

import "github.com/unixpickle/anymem/anybabi"

// A Model can be trained on and make predictions for
// batches of vectorized examples.
type Model interface {
	// Fit performs one training step on the batch with the
	// given learning rate and returns the batch cost.
	Fit(b *anybabi.Tensors, rate float64) (float64, error)

	// Predict returns one label per example.
	Predict(b *anybabi.Tensors) ([]int, error)
}
