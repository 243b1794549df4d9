package includes

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Result is the answer to one Query.
type Result struct {
	ID    string
	Found bool
	Err   error
}

// MarshalJSON encodes r as {"id", "found", "error"}; "error" is omitted
// when Err is nil.
func (r Result) MarshalJSON() ([]byte, error) {
	out := struct {
		ID    string `json:"id"`
		Found bool   `json:"found"`
		Error string `json:"error,omitempty"`
	}{
		ID:    r.ID,
		Found: r.Found,
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}

// Evaluate answers queries concurrently with f and returns the results in
// query order. A nil f uses the lenient default Finder.
//
// By default a query that fails records its error in Result.Err and the
// remaining queries still run. With EvaluateWithFailFast the first failure
// cancels the rest and is returned. If ctx is canceled, Evaluate returns
// ctx.Err() along with whatever results completed.
func Evaluate(ctx context.Context, f *Finder, queries []Query, opts ...EvaluateOption) ([]Result, error) {
	if f == nil {
		f = defaultFinder
	}
	cfg := evaluateConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	results := make([]Result, len(queries))
	if len(queries) == 0 {
		return results, ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workerCount(len(queries)))
	for i := range queries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			q := queries[i]
			found, err := f.Includes(q.Sequence, q.Target, q.FromIndex)
			results[i] = Result{ID: q.ID, Found: found, Err: err}
			if err != nil && cfg.failFast {
				return fmt.Errorf("includes: query %s: %w", q.ID, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
