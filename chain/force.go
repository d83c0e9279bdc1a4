package chain

import (
	"context"

	"github.com/google/uuid"

	"github.com/kbukum/lambdachain/errors"
	"github.com/kbukum/lambdachain/lambda"
	"github.com/kbukum/lambdachain/logger"
	"github.com/kbukum/lambdachain/observability"
	"github.com/kbukum/lambdachain/pipeline"
)

// Force drives the chain once and materializes the elements through the
// first collector given, or the runtime's default collector (List unless
// configured otherwise). The first error from any stage aborts the force
// and is returned unchanged.
func (c *Chain) Force(ctx context.Context, into ...Collector) (any, error) {
	collector := c.runtime().collector
	if len(into) > 0 && into[0] != nil {
		collector = into[0]
	}
	if collector == nil {
		collector = List
	}
	return c.run(ctx, "force", collector.Collect)
}

// Sum adds the elements with the evaluator's + rule, starting at 0.
func (c *Chain) Sum(ctx context.Context) (any, error) {
	return c.fold(ctx, "sum", func(acc, x any) (any, error) { return lambda.Compute("+", acc, x) }, 0)
}

// Fold reduces the elements with f, starting from init. f is a two-argument
// function (func(acc, x any) any, an operator symbol such as "+", or any
// two-argument Go function) or a curried one taking acc and returning a
// function of x.
func (c *Chain) Fold(ctx context.Context, f any, init any) (any, error) {
	fn, err := reducer(f)
	if err != nil {
		return nil, err
	}
	return c.fold(ctx, "fold", fn, init)
}

// FoldC is the curried form of Fold: it returns a function of the initial
// value. Each call forces the chain again.
func (c *Chain) FoldC(f any) func(ctx context.Context, init any) (any, error) {
	return func(ctx context.Context, init any) (any, error) {
		return c.Fold(ctx, f, init)
	}
}

// Persist forces the chain into a slice and returns a new stage-free chain
// over it, which can be forced any number of times.
func (c *Chain) Persist(ctx context.Context) (*Chain, error) {
	out, err := c.run(ctx, "persist", List.Collect)
	if err != nil {
		return nil, err
	}
	return c.runtime().From(out), nil
}

// Each calls f with every element for its side effects. The first error
// from f or from a stage stops the force and is returned.
func (c *Chain) Each(ctx context.Context, f any) error {
	fn, err := lambda.Callable(f)
	if err != nil {
		return err
	}
	_, err = c.run(ctx, "each", func(ctx context.Context, it pipeline.Iterator[any]) (any, error) {
		return nil, pipeline.ForEach(ctx, pipeline.From[any](borrowed{it}), func(_ context.Context, x any) error {
			_, err := fn(x)
			return err
		})
	})
	return err
}

func (c *Chain) fold(ctx context.Context, op string, fn func(acc, x any) (any, error), init any) (any, error) {
	return c.run(ctx, op, func(ctx context.Context, it pipeline.Iterator[any]) (any, error) {
		out, err := pipeline.Collect(ctx, pipeline.Reduce(pipeline.From[any](borrowed{it}), init, fn))
		if err != nil {
			return nil, err
		}
		return out[0], nil
	})
}

// reducer resolves a two-argument function, falling back to a curried
// one-argument function returning a one-argument function.
func reducer(f any) (func(acc, x any) (any, error), error) {
	if fn, err := lambda.Callable2(f); err == nil {
		return fn, nil
	}
	outer, err := lambda.Callable(f)
	if err != nil {
		return nil, errors.NotCallable(f)
	}
	return func(acc, x any) (any, error) {
		inner, err := outer(acc)
		if err != nil {
			return nil, err
		}
		fn, err := lambda.Callable(inner)
		if err != nil {
			return nil, err
		}
		return fn(x)
	}, nil
}

// run drives one terminal inside a logged, traced force.
func (c *Chain) run(ctx context.Context, op string, body func(context.Context, pipeline.Iterator[any]) (any, error)) (any, error) {
	rt := c.runtime()
	runID := uuid.NewString()
	r := observability.NewRun(runID, op, c.depth, rt.tracer, rt.metrics)
	ctx, span := r.Start(ctx)

	log := rt.logger().WithContext(ctx).WithFields(logger.Fields(
		logger.FieldRunID, runID,
		logger.FieldOperation, op,
	))
	logf := log.Debug
	if rt.logForce {
		logf = log.Info
	}
	logf("force started", logger.Fields(logger.FieldStages, c.depth))

	var n int64
	it := pipeline.Tap(c.pipeline(), func(context.Context, any) error {
		n++
		return nil
	}).Iter(ctx)
	out, err := body(ctx, it)
	if closeErr := it.Close(); err == nil && closeErr != nil {
		err = closeErr
	}

	code := string(errors.CodeOf(err))
	r.End(ctx, span, n, code, err)
	if err != nil {
		fields := logger.MergeWithError(logger.Fields(logger.FieldElements, n), err)
		if code != "" {
			fields[logger.FieldErrorCode] = code
		}
		log.Debug("force failed", fields)
		return nil, err
	}
	logf("force finished", logger.MergeWithDuration(logger.Fields(logger.FieldElements, n), r.Duration()))
	return out, nil
}
