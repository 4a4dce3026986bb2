package retrieval

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"github.com/cloudwego/eino/components/embedding"
)

// DefaultDimensions is the vector size of the lexical embedder.
const DefaultDimensions = 1024

// LexicalEmbedder hashes lowercased word tokens into a fixed number of buckets
// and L2-normalizes the counts. It needs no model or network access.
type LexicalEmbedder struct {
	dims int
}

var _ embedding.Embedder = (*LexicalEmbedder)(nil)

// NewLexicalEmbedder creates an embedder producing dims-sized vectors.
func NewLexicalEmbedder(dims int) *LexicalEmbedder {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &LexicalEmbedder{dims: dims}
}

// EmbedStrings implements embedding.Embedder.
func (e *LexicalEmbedder) EmbedStrings(ctx context.Context, texts []string, _ ...embedding.Option) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = e.embed(text)
	}
	return out, nil
}

func (e *LexicalEmbedder) embed(text string) []float64 {
	vec := make([]float64, e.dims)
	for _, token := range tokenize(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		vec[int(h.Sum32()%uint32(e.dims))]++
	}
	normalize(vec)
	return vec
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func normalize(vec []float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}
