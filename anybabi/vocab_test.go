package anybabi

import (
	"reflect"
	"testing"
)

func TestVocabulary(t *testing.T) {
	examples := []*Example{
		{
			Story:    [][]string{{"mary", "went", "home"}, {"john", "left"}},
			Question: []string{"where", "is", "mary"},
			Answer:   []string{"home"},
		},
		{
			Story:    [][]string{{"sandra", "took", "milk"}},
			Question: []string{"what", "is", "sandra", "carrying"},
			Answer:   []string{"milk", "apple"},
		},
	}
	v := NewVocabulary(examples, 3)

	expectedWords := []string{"apple", "carrying", "home", "is", "john", "left", "mary",
		"milk", "sandra", "took", "went", "what", "where"}
	if v.NumWords() != len(expectedWords) {
		t.Fatalf("expected %d words but got %d", len(expectedWords), v.NumWords())
	}
	for i, w := range expectedWords {
		if idx, ok := v.Index(w); !ok || idx != i+1 {
			t.Errorf("word %q: got index %d (%v)", w, idx, ok)
		}
		if v.Word(i+1) != w {
			t.Errorf("index %d: got word %q", i+1, v.Word(i+1))
		}
	}
	if v.Size() != len(expectedWords)+3+1 {
		t.Errorf("bad size: %d", v.Size())
	}
	for rank := 1; rank <= 3; rank++ {
		idx := v.TimeIndex(rank)
		if idx != len(expectedWords)+rank {
			t.Errorf("rank %d: bad time index %d", rank, idx)
		}
		if w := v.Word(idx); w != "time"+string(rune('0'+rank)) {
			t.Errorf("rank %d: bad time word %q", rank, w)
		}
		if looked, ok := v.Index(v.Word(idx)); !ok || looked != idx {
			t.Errorf("rank %d: time word lookup gave %d", rank, looked)
		}
	}
	if _, ok := v.Index("time4"); ok {
		t.Error("time word past memory size should be unknown")
	}
	if _, ok := v.Index("banana"); ok {
		t.Error("unexpected index for unknown word")
	}

	reversed := []*Example{examples[1], examples[0]}
	v1 := NewVocabulary(reversed, 3)
	if !reflect.DeepEqual(v, v1) {
		t.Error("vocabulary depends on example order")
	}
}

func TestStats(t *testing.T) {
	examples := []*Example{
		{Story: [][]string{{"a", "b"}, {"c"}}, Question: []string{"d", "e", "f", "g"}},
		{Story: [][]string{{"a", "b", "c"}}, Question: []string{"d"}},
	}
	s := ComputeStats(examples)
	expected := Stats{MaxStory: 2, MeanStory: 1.5, MaxSentence: 3, MaxQuery: 4}
	if s != expected {
		t.Errorf("expected %+v but got %+v", expected, s)
	}
	if s.SentenceSize() != 5 {
		t.Errorf("bad sentence size: %d", s.SentenceSize())
	}
	if s.MemorySize(50) != 2 || s.MemorySize(1) != 1 {
		t.Error("bad memory size")
	}
}
