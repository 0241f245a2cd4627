package rewrite

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/codemod/pkg/tree"
)

// RunBatch runs recipe over every unit with at most workers concurrent runs
// (unbounded when workers <= 0). Units are independent: a failing unit is
// reported in its own Result.Err and does not stop the others. Results are
// returned in input order. When ctx is cancelled no further units start;
// their results carry the context error, which is also returned.
func (e *Engine) RunBatch(ctx context.Context, recipe Recipe, units []*tree.CompilationUnit, workers int) ([]*Result, error) {
	results := make([]*Result, len(units))

	group, groupCtx := errgroup.WithContext(ctx)
	if workers > 0 {
		group.SetLimit(workers)
	}

	for idx, cu := range units {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			if cu == nil {
				results[idx] = &Result{Err: Invariant(nil, "nil compilation unit at index %d", idx)}

				return nil
			}

			result, _ := e.Run(groupCtx, recipe, cu) //nolint:errcheck // The error is kept in result.Err.
			results[idx] = result

			return nil
		})
	}

	_ = group.Wait() //nolint:errcheck // Workers never fail; per-unit errors live in the results.

	ctxErr := ctx.Err()

	for idx, result := range results {
		if result != nil {
			continue
		}

		res := &Result{Err: fmt.Errorf("unit %d not processed: %w", idx, ctxErr)}
		if units[idx] != nil {
			res.SourcePath = units[idx].SourcePath
			res.Before = units[idx]
			res.After = units[idx]
		}

		results[idx] = res
	}

	if ctxErr != nil {
		return results, fmt.Errorf("batch %s: %w", recipe.Name(), ctxErr)
	}

	return results, nil
}
