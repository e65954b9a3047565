package anybabi

import "github.com/pkg/errors"

// ErrShape is wrapped by errors caused by examples which
// do not fit the requested tensor shape.
var ErrShape = errors.New("tensor shape mismatch")

// Vectorize converts examples into Tensors.
//
// Each story keeps its last memorySize sentences, oldest
// first, in the last rows of the memory; leading unused
// rows are zero.
// A memory row holds its sentence left-padded with zeros
// to sentenceSize-1 columns, followed by the time word of
// the sentence's recency rank (1 for the newest).
// Queries are left-padded to sentenceSize.
// Answer vectors have a 1 at every answer token.
func Vectorize(examples []*Example, v *Vocabulary, sentenceSize,
	memorySize int) (*Tensors, error) {
	if sentenceSize < 1 || memorySize < 0 {
		return nil, errors.Wrapf(ErrShape, "invalid shape %dx%d", memorySize, sentenceSize)
	}
	if memorySize > v.MemorySize() {
		return nil, errors.Wrapf(ErrShape, "memory size %d exceeds %d time words",
			memorySize, v.MemorySize())
	}
	res := NewTensors(len(examples), memorySize, sentenceSize, v.Size())
	for i, e := range examples {
		if err := vectorizeStory(res.Story(i), e.Story, v, sentenceSize, memorySize); err != nil {
			return nil, errors.WithMessagef(err, "example %d", i)
		}
		if err := leftPad(res.Query(i), e.Question, v); err != nil {
			return nil, errors.WithMessagef(err, "example %d: question", i)
		}
		answer := res.Answer(i)
		for _, w := range e.Answer {
			idx, ok := v.Index(w)
			if !ok {
				return nil, errors.Wrapf(ErrShape, "example %d: unknown answer %q", i, w)
			}
			answer[idx] = 1
		}
	}
	return res, nil
}

func vectorizeStory(dest []int, story [][]string, v *Vocabulary, sentenceSize,
	memorySize int) error {
	if len(story) > memorySize {
		story = story[len(story)-memorySize:]
	}
	firstRow := memorySize - len(story)
	for i, sentence := range story {
		row := dest[(firstRow+i)*sentenceSize : (firstRow+i+1)*sentenceSize]
		if err := leftPad(row[:sentenceSize-1], sentence, v); err != nil {
			return errors.WithMessagef(err, "sentence %d", i)
		}
		row[sentenceSize-1] = v.TimeIndex(len(story) - i)
	}
	return nil
}

func leftPad(dest []int, tokens []string, v *Vocabulary) error {
	if len(tokens) > len(dest) {
		return errors.Wrapf(ErrShape, "%d tokens do not fit in %d columns",
			len(tokens), len(dest))
	}
	offset := len(dest) - len(tokens)
	for i, w := range tokens {
		idx, ok := v.Index(w)
		if !ok {
			return errors.Wrapf(ErrShape, "unknown token %q", w)
		}
		dest[offset+i] = idx
	}
	return nil
}
