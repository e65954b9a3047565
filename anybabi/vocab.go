package anybabi

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const timePrefix = "time"

// A Vocabulary maps tokens to positive integers.
//
// Index 0 is the nil word, used for padding.
// Real tokens are numbered 1 through NumWords() in
// lexicographic order.
// They are followed by one time word per memory slot:
// the time word for recency rank r ("time<r>") has index
// NumWords()+r.
type Vocabulary struct {
	words      []string
	indices    map[string]int
	memorySize int
}

// NewVocabulary builds a vocabulary from every story,
// question, and answer token in the examples, reserving
// memorySize time words.
//
// The result only depends on the set of tokens, not on
// the order of the examples.
func NewVocabulary(examples []*Example, memorySize int) *Vocabulary {
	set := map[string]bool{}
	for _, e := range examples {
		for _, sentence := range e.Story {
			for _, w := range sentence {
				set[w] = true
			}
		}
		for _, w := range e.Question {
			set[w] = true
		}
		for _, w := range e.Answer {
			set[w] = true
		}
	}
	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)

	indices := make(map[string]int, len(words))
	for i, w := range words {
		indices[w] = i + 1
	}
	return &Vocabulary{words: words, indices: indices, memorySize: memorySize}
}

// NumWords returns the number of real tokens.
func (v *Vocabulary) NumWords() int {
	return len(v.words)
}

// MemorySize returns the number of time words.
func (v *Vocabulary) MemorySize() int {
	return v.memorySize
}

// Size returns the number of indices, including the nil
// word and the time words.
func (v *Vocabulary) Size() int {
	return len(v.words) + v.memorySize + 1
}

// Index looks up the index of a token.
// Time words like "time3" are recognized unless they
// appear in the data as real tokens.
func (v *Vocabulary) Index(word string) (int, bool) {
	if idx, ok := v.indices[word]; ok {
		return idx, true
	}
	if strings.HasPrefix(word, timePrefix) {
		rank, err := strconv.Atoi(word[len(timePrefix):])
		if err == nil && rank >= 1 && rank <= v.memorySize {
			return v.TimeIndex(rank), true
		}
	}
	return 0, false
}

// TimeIndex returns the index of the time word for the
// given recency rank, where rank 1 is the most recent
// memory.
func (v *Vocabulary) TimeIndex(rank int) int {
	if rank < 1 || rank > v.memorySize {
		panic(fmt.Sprintf("time rank %d out of range [1, %d]", rank, v.memorySize))
	}
	return len(v.words) + rank
}

// Word returns the token for an index.
// The nil word is returned as "".
func (v *Vocabulary) Word(idx int) string {
	switch {
	case idx == 0:
		return ""
	case idx <= len(v.words):
		return v.words[idx-1]
	case idx < v.Size():
		return fmt.Sprintf("%s%d", timePrefix, idx-len(v.words))
	default:
		panic(fmt.Sprintf("index %d out of range", idx))
	}
}

// Stats summarizes the lengths in a set of examples.
type Stats struct {
	MaxStory    int
	MeanStory   float64
	MaxSentence int
	MaxQuery    int
}

// ComputeStats computes length statistics.
func ComputeStats(examples []*Example) Stats {
	var s Stats
	var total int
	for _, e := range examples {
		total += len(e.Story)
		s.MaxStory = max(s.MaxStory, len(e.Story))
		s.MaxQuery = max(s.MaxQuery, len(e.Question))
		for _, sentence := range e.Story {
			s.MaxSentence = max(s.MaxSentence, len(sentence))
		}
	}
	if len(examples) > 0 {
		s.MeanStory = float64(total) / float64(len(examples))
	}
	return s
}

// SentenceSize returns the width of a memory row: the
// longest sentence or question, plus one column for the
// time word.
func (s Stats) SentenceSize() int {
	return max(s.MaxSentence, s.MaxQuery) + 1
}

// MemorySize returns the number of memory slots, given a
// maximum.
func (s Stats) MemorySize(limit int) int {
	return min(limit, s.MaxStory)
}
