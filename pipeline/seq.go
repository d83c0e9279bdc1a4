package pipeline

import (
	"context"
	"iter"
)

// FromSeq creates a pipeline from a range-over-func sequence. Every run pulls
// a fresh iteration of seq.
func FromSeq[T any](seq iter.Seq[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(_ context.Context) Iterator[T] {
			next, stop := iter.Pull(seq)
			return &pullIter[T]{next: next, stop: stop}
		},
	}
}

// All runs the pipeline as a range-over-func sequence. Iteration stops at the
// first error, which is yielded with a zero value.
func All[T any](ctx context.Context, p *Pipeline[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		it := p.create(ctx)
		defer it.Close()
		for {
			val, ok, err := it.Next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok || !yield(val, nil) {
				return
			}
		}
	}
}

// Through hands the pipeline to fn as a plain sequence and continues with the
// sequence fn returns. An upstream error ends the input sequence and is
// returned by the next pull, discarding whatever fn produced from the
// partial input.
func Through[I, O any](p *Pipeline[I], fn func(iter.Seq[I]) iter.Seq[O]) *Pipeline[O] {
	return &Pipeline[O]{
		create: func(ctx context.Context) Iterator[O] {
			it := &throughIter[I, O]{source: p.create(ctx)}
			in := func(yield func(I) bool) {
				for {
					val, ok, err := it.source.Next(ctx)
					if err != nil {
						it.err = err
						return
					}
					if !ok || !yield(val) {
						return
					}
				}
			}
			it.next, it.stop = iter.Pull(fn(in))
			return it
		},
	}
}

type pullIter[T any] struct {
	next func() (T, bool)
	stop func()
}

func (it *pullIter[T]) Next(ctx context.Context) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	v, ok := it.next()
	return v, ok, nil
}

func (it *pullIter[T]) Close() error {
	it.stop()
	return nil
}

type throughIter[I, O any] struct {
	source Iterator[I]
	next   func() (O, bool)
	stop   func()
	err    error
}

func (it *throughIter[I, O]) Next(ctx context.Context) (O, bool, error) {
	var zero O
	if it.err != nil {
		return zero, false, it.err
	}
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	v, ok := it.next()
	if it.err != nil {
		return zero, false, it.err
	}
	return v, ok, nil
}

func (it *throughIter[I, O]) Close() error {
	it.stop()
	return it.source.Close()
}
