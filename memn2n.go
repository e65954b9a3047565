// Package anymem implements end-to-end memory networks
// (MemN2N) for question answering over the bAbI tasks.
//
// The model reads stories and questions as bag-of-words
// rows of anybabi.Tensors and predicts a single answer
// word per question.
package anymem

import (
	"fmt"
	"math/rand"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anymem/anybabi"
	"github.com/unixpickle/anyvec"
)

// DefaultInitStddev is the standard deviation of the
// initial embedding weights.
const DefaultInitStddev = 0.1

// MemN2N is a multi-hop memory network with adjacent
// weight tying.
//
// There are Hops+1 embedding matrices E_0 through
// E_Hops, each VocabSize x EmbedSize.
// The question is embedded with E_0.
// Hop k addresses memories embedded with E_k and reads
// memories embedded with E_(k+1).
// The final controller state is decoded with E_Hops.
type MemN2N struct {
	VocabSize  int
	EmbedSize  int
	Embeddings []*anydiff.Var
}

// NewMemN2N creates a randomly initialized model.
//
// The weights are drawn from a normal distribution with
// DefaultInitStddev, except for the nil word, whose
// embedding is always zero.
// If r is nil, the global source from math/rand is used.
func NewMemN2N(c anyvec.Creator, vocabSize, embedSize, hops int, r *rand.Rand) *MemN2N {
	if hops < 1 {
		panic("at least one hop is required")
	}
	res := &MemN2N{VocabSize: vocabSize, EmbedSize: embedSize}
	for i := 0; i <= hops; i++ {
		data := make([]float64, vocabSize*embedSize)
		for j := embedSize; j < len(data); j++ {
			if r == nil {
				data[j] = rand.NormFloat64() * DefaultInitStddev
			} else {
				data[j] = r.NormFloat64() * DefaultInitStddev
			}
		}
		vec := c.MakeVectorData(c.MakeNumericList(data))
		res.Embeddings = append(res.Embeddings, anydiff.NewVar(vec))
	}
	return res
}

// Hops returns the number of memory hops.
func (m *MemN2N) Hops() int {
	return len(m.Embeddings) - 1
}

// Parameters returns the embedding matrices in order.
func (m *MemN2N) Parameters() []*anydiff.Var {
	return append([]*anydiff.Var{}, m.Embeddings...)
}

// Apply computes answer log-probabilities for a batch.
// The result is packed with one row of VocabSize entries
// per example.
func (m *MemN2N) Apply(b *anybabi.Tensors) anydiff.Res {
	if b.VocabSize != m.VocabSize {
		panic(fmt.Sprintf("vocab size %d does not match model (%d)", b.VocabSize,
			m.VocabSize))
	}
	c := m.Embeddings[0].Vector.Creator()
	n := b.Len()
	numMem := n * b.MemorySize

	stories := &anydiff.Matrix{
		Data: anydiff.NewConst(bagOfWords(c, b.Stories, b.SentenceSize, m.VocabSize)),
		Rows: numMem,
		Cols: m.VocabSize,
	}
	queries := &anydiff.Matrix{
		Data: anydiff.NewConst(bagOfWords(c, b.Queries, b.SentenceSize, m.VocabSize)),
		Rows: n,
		Cols: m.VocabSize,
	}
	h := &hopper{
		Expand: &anydiff.Matrix{
			Data: anydiff.NewConst(expansion(c, n, b.MemorySize)),
			Rows: numMem,
			Cols: n,
		},
		Ones: &anydiff.Matrix{
			Data: anydiff.NewConst(ones(c, m.EmbedSize)),
			Rows: 1,
			Cols: m.EmbedSize,
		},
		NumMem:    b.MemorySize,
		EmbedSize: m.EmbedSize,
	}

	u := m.embed(queries, 0)
	for hop := 0; hop < m.Hops(); hop++ {
		keys := m.embed(stories, hop)
		values := m.embed(stories, hop+1)
		u = anydiff.Pool(u, func(u anydiff.Res) anydiff.Res {
			return anydiff.Add(u, h.Read(keys, values, u, n))
		})
	}

	logits := anydiff.MatMul(false, true,
		&anydiff.Matrix{Data: u, Rows: n, Cols: m.EmbedSize},
		m.embedMatrix(m.Hops()),
	)
	return anydiff.LogSoftmax(logits.Data, m.VocabSize)
}

func (m *MemN2N) embed(bow *anydiff.Matrix, idx int) anydiff.Res {
	return anydiff.MatMul(false, false, bow, m.embedMatrix(idx)).Data
}

func (m *MemN2N) embedMatrix(idx int) *anydiff.Matrix {
	return &anydiff.Matrix{
		Data: m.Embeddings[idx],
		Rows: m.VocabSize,
		Cols: m.EmbedSize,
	}
}

// hopper performs the memory read of a single hop for a
// packed batch.
type hopper struct {
	// Expand maps each example to its memory slots; it is
	// (n*NumMem) x n.
	Expand *anydiff.Matrix

	// Ones is a 1 x EmbedSize row of ones.
	Ones *anydiff.Matrix

	NumMem    int
	EmbedSize int
}

// Read attends over the memory keys with the controller
// state u and returns the weighted sum of the values.
func (h *hopper) Read(keys, values, u anydiff.Res, n int) anydiff.Res {
	numMem := n * h.NumMem
	repeated := anydiff.MatMul(false, false, h.Expand,
		&anydiff.Matrix{Data: u, Rows: n, Cols: h.EmbedSize})
	scores := anydiff.SumCols(&anydiff.Matrix{
		Data: anydiff.Mul(keys, repeated.Data),
		Rows: numMem,
		Cols: h.EmbedSize,
	})
	probs := anydiff.Exp(anydiff.LogSoftmax(scores, h.NumMem))
	weights := anydiff.MatMul(false, false,
		&anydiff.Matrix{Data: probs, Rows: numMem, Cols: 1},
		h.Ones,
	)
	weighted := &anydiff.Matrix{
		Data: anydiff.Mul(values, weights.Data),
		Rows: numMem,
		Cols: h.EmbedSize,
	}
	return anydiff.MatMul(true, false, h.Expand, weighted).Data
}

// bagOfWords counts the word indices in each row of a
// packed index tensor.
// The nil word is not counted.
func bagOfWords(c anyvec.Creator, indices []int, width, vocabSize int) anyvec.Vector {
	rows := len(indices) / width
	counts := make([]float64, rows*vocabSize)
	for i, idx := range indices {
		if idx != 0 {
			counts[(i/width)*vocabSize+idx]++
		}
	}
	return c.MakeVectorData(c.MakeNumericList(counts))
}

// expansion creates an (n*numMem) x n matrix which copies
// each example's row to all of its memory slots.
func expansion(c anyvec.Creator, n, numMem int) anyvec.Vector {
	data := make([]float64, n*numMem*n)
	for i := 0; i < n; i++ {
		for j := 0; j < numMem; j++ {
			data[(i*numMem+j)*n+i] = 1
		}
	}
	return c.MakeVectorData(c.MakeNumericList(data))
}

func ones(c anyvec.Creator, n int) anyvec.Vector {
	vec := c.MakeVector(n)
	vec.AddScalar(c.MakeNumeric(1))
	return vec
}
