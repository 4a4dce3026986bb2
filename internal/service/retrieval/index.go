package retrieval

import (
	"context"
	"sort"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/expertsoft/softchat/internal/model/knowledge"
)

// Search defaults.
const (
	DefaultTopK      = 5
	DefaultThreshold = 0.5
)

const (
	buildBatchSize   = 32
	buildConcurrency = 4
)

// ErrDimensionMismatch is returned when the embedder changes vector size
// between indexing and querying.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Hit is one indexed example close to a query.
type Hit struct {
	Intent   string
	Example  string
	Distance float64
}

// Index is a flat squared-L2 index over every knowledge base example.
type Index struct {
	embedder embedding.Embedder
	vectors  [][]float64
	examples []string
	intents  []string
}

// Build embeds the examples of entries. Batches are embedded concurrently.
func Build(ctx context.Context, embedder embedding.Embedder, entries []knowledge.Entry) (*Index, error) {
	if embedder == nil {
		return nil, errors.New("retrieval index requires an embedder")
	}

	idx := &Index{embedder: embedder}
	for _, entry := range entries {
		for _, ex := range entry.Examples {
			idx.examples = append(idx.examples, ex)
			idx.intents = append(idx.intents, entry.Intent)
		}
	}
	idx.vectors = make([][]float64, len(idx.examples))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(buildConcurrency)
	for start := 0; start < len(idx.examples); start += buildBatchSize {
		end := min(start+buildBatchSize, len(idx.examples))
		g.Go(func() error {
			vecs, err := embedder.EmbedStrings(gctx, idx.examples[start:end])
			if err != nil {
				return errors.Wrapf(err, "embed examples %d-%d", start, end)
			}
			if len(vecs) != end-start {
				return errors.Errorf("embedder returned %d vectors for %d examples", len(vecs), end-start)
			}
			copy(idx.vectors[start:end], vecs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := idx.checkDimensions(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Len returns the number of indexed examples.
func (idx *Index) Len() int { return len(idx.vectors) }

// Nearest returns up to k examples ordered by increasing distance to query.
func (idx *Index) Nearest(ctx context.Context, query string, k int) ([]Hit, error) {
	if k <= 0 || len(idx.vectors) == 0 {
		return nil, nil
	}

	vecs, err := idx.embedder.EmbedStrings(ctx, []string{query})
	if err != nil {
		return nil, errors.Wrap(err, "embed query")
	}
	if len(vecs) != 1 {
		return nil, errors.Errorf("embedder returned %d vectors for one query", len(vecs))
	}
	q := vecs[0]
	if len(q) != len(idx.vectors[0]) {
		return nil, errors.Wrapf(ErrDimensionMismatch, "query has %d dimensions, index has %d", len(q), len(idx.vectors[0]))
	}

	hits := make([]Hit, len(idx.vectors))
	for i, v := range idx.vectors {
		hits[i] = Hit{Intent: idx.intents[i], Example: idx.examples[i], Distance: squaredL2(q, v)}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// TopIntents returns the distinct intents among the k nearest examples whose
// distance is below threshold, closest first.
func (idx *Index) TopIntents(ctx context.Context, query string, k int, threshold float64) ([]string, error) {
	hits, err := idx.Nearest(ctx, query, k)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(hits))
	var intents []string
	for _, hit := range hits {
		if hit.Distance >= threshold {
			continue
		}
		if _, ok := seen[hit.Intent]; ok {
			continue
		}
		seen[hit.Intent] = struct{}{}
		intents = append(intents, hit.Intent)
	}
	return intents, nil
}

func (idx *Index) checkDimensions() error {
	if len(idx.vectors) == 0 {
		return nil
	}
	dims := len(idx.vectors[0])
	for i, v := range idx.vectors {
		if len(v) != dims {
			return errors.Wrapf(ErrDimensionMismatch, "example %d has %d dimensions, expected %d", i, len(v), dims)
		}
	}
	return nil
}

func squaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
