package anybabi

import (
	"errors"
	"reflect"
	"testing"
)

func TestVectorize(t *testing.T) {
	long := &Example{
		Story: [][]string{
			{"a"}, {"b"}, {"c", "d"}, {"e"},
		},
		Question: []string{"q", "a"},
		Answer:   []string{"e"},
	}
	short := &Example{
		Story:    [][]string{{"b", "c"}},
		Question: []string{"q"},
		Answer:   []string{"c", "d"},
	}
	v := NewVocabulary([]*Example{long, short}, 3)
	idx := func(w string) int {
		i, ok := v.Index(w)
		if !ok {
			t.Fatalf("missing word %q", w)
		}
		return i
	}

	tensors, err := Vectorize([]*Example{long, short}, v, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if tensors.Len() != 2 || len(tensors.Stories) != 2*3*3 ||
		len(tensors.Queries) != 2*3 || len(tensors.Answers) != 2*v.Size() {
		t.Fatal("unexpected tensor shapes")
	}

	expectedLong := []int{
		0, idx("b"), v.TimeIndex(3),
		idx("c"), idx("d"), v.TimeIndex(2),
		0, idx("e"), v.TimeIndex(1),
	}
	if actual := tensors.Story(0); !reflect.DeepEqual(actual, expectedLong) {
		t.Errorf("long story: expected %v but got %v", expectedLong, actual)
	}
	expectedShort := []int{
		0, 0, 0,
		0, 0, 0,
		idx("b"), idx("c"), v.TimeIndex(1),
	}
	if actual := tensors.Story(1); !reflect.DeepEqual(actual, expectedShort) {
		t.Errorf("short story: expected %v but got %v", expectedShort, actual)
	}

	if actual := tensors.Query(0); !reflect.DeepEqual(actual, []int{0, idx("q"), idx("a")}) {
		t.Errorf("bad query: %v", actual)
	}
	if actual := tensors.Query(1); !reflect.DeepEqual(actual, []int{0, 0, idx("q")}) {
		t.Errorf("bad query: %v", actual)
	}

	answer := tensors.Answer(1)
	for i, x := range answer {
		expected := 0
		if i == idx("c") || i == idx("d") {
			expected = 1
		}
		if x != expected {
			t.Errorf("answer entry %d: expected %d but got %d", i, expected, x)
		}
	}
	if tensors.Label(0) != idx("e") || tensors.Label(1) != idx("c") {
		t.Errorf("bad labels: %v", tensors.Labels())
	}
}

func TestVectorizeTimeWords(t *testing.T) {
	var examples []*Example
	for n := 1; n <= 4; n++ {
		e := &Example{Question: []string{"q"}, Answer: []string{"x"}}
		for i := 0; i < n; i++ {
			e.Story = append(e.Story, []string{"x"})
		}
		examples = append(examples, e)
	}
	v := NewVocabulary(examples, 4)
	tensors, err := Vectorize(examples, v, 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i := range examples {
		story := tensors.Story(i)
		for row := 0; row < 4; row++ {
			rank := 4 - row
			expected := 0
			if rank <= i+1 {
				expected = v.TimeIndex(rank)
			}
			if story[row*2+1] != expected {
				t.Errorf("example %d row %d: expected time %d but got %d", i, row,
					expected, story[row*2+1])
			}
		}
	}
}

func TestVectorizeShapeErrors(t *testing.T) {
	e := &Example{
		Story:    [][]string{{"a", "b", "c"}},
		Question: []string{"q"},
		Answer:   []string{"a"},
	}
	v := NewVocabulary([]*Example{e}, 1)
	if _, err := Vectorize([]*Example{e}, v, 3, 1); !errors.Is(err, ErrShape) {
		t.Errorf("long sentence: expected ErrShape but got %v", err)
	}
	if _, err := Vectorize([]*Example{e}, v, 4, 2); !errors.Is(err, ErrShape) {
		t.Errorf("memory size: expected ErrShape but got %v", err)
	}
	other := NewVocabulary([]*Example{{Question: []string{"q"}}}, 1)
	if _, err := Vectorize([]*Example{e}, other, 4, 1); !errors.Is(err, ErrShape) {
		t.Errorf("unknown token: expected ErrShape but got %v", err)
	}
}
