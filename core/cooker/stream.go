package cooker

import (
	"context"

	"recipe-cook-api/core/errors"
	"recipe-cook-api/core/recipe"
)

// CookRecipeStream cooks r and emits models one at a time in query order.
// Nodes whose paths do not resolve are logged and skipped; any other error is
// sent on the error channel and ends the stream. Both channels are closed
// when the stream ends. Cancelling ctx stops the stream early.
func (e *Engine) CookRecipeStream(ctx context.Context, r *recipe.Recipe, data string, params []string) (<-chan interface{}, <-chan error) {
	out := make(chan interface{})
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errc)

		job, err := e.prepare(r, data, params)
		if err != nil {
			errc <- err
			return
		}

		for i, node := range job.nodes {
			if err := ctx.Err(); err != nil {
				errc <- err
				return
			}
			model, err := job.populator.Populate(node, job.plan)
			if errors.IsValueNotFound(err) {
				e.logger.Debug("Skipping node without value", map[string]interface{}{
					"node":  i,
					"error": err.Error(),
				})
				continue
			}
			if err != nil {
				errc <- err
				return
			}
			if model == nil {
				e.dropped(r, i)
				continue
			}

			select {
			case out <- model:
				modelsProduced.Inc()
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()

	return out, errc
}
