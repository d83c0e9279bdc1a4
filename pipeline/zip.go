package pipeline

import (
	"context"

	"github.com/kbukum/lambdachain/errors"
)

// Pair holds two values produced side by side.
type Pair[A, B any] struct {
	Key   A
	Value B
}

// At reads the pair as a two-element tuple.
func (p Pair[A, B]) At(index any) (any, error) {
	i, err := tupleIndex(index)
	if err != nil {
		return nil, err
	}
	if i == 0 {
		return p.Key, nil
	}
	return p.Value, nil
}

func tupleIndex(index any) (int, error) {
	i, ok := index.(int)
	if !ok {
		return 0, errors.TypeMismatch("int index", index)
	}
	j := i
	if j < 0 {
		j += 2
	}
	if j < 0 || j > 1 {
		return 0, errors.IndexOutOfRange(i, 2)
	}
	return j, nil
}

// Enumerate pairs each value with a counter that begins at start and grows
// by step.
func Enumerate[T any](p *Pipeline[T], start, step int) *Pipeline[Pair[int, T]] {
	return &Pipeline[Pair[int, T]]{
		create: func(ctx context.Context) Iterator[Pair[int, T]] {
			return &enumerateIter[T]{source: p.create(ctx), n: start, step: step}
		},
	}
}

// Zip pairs values of a and b positionally and stops at the shorter input.
func Zip[A, B any](a *Pipeline[A], b *Pipeline[B]) *Pipeline[Pair[A, B]] {
	return &Pipeline[Pair[A, B]]{
		create: func(ctx context.Context) Iterator[Pair[A, B]] {
			return &zipIter[A, B]{left: a.create(ctx), right: b.create(ctx)}
		},
	}
}

type enumerateIter[T any] struct {
	source Iterator[T]
	n      int
	step   int
}

func (it *enumerateIter[T]) Next(ctx context.Context) (result Pair[int, T], ok bool, err error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return Pair[int, T]{}, false, err
	}
	result = Pair[int, T]{Key: it.n, Value: val}
	it.n += it.step
	return result, true, nil
}

func (it *enumerateIter[T]) Close() error { return it.source.Close() }

type zipIter[A, B any] struct {
	left  Iterator[A]
	right Iterator[B]
}

func (it *zipIter[A, B]) Next(ctx context.Context) (result Pair[A, B], ok bool, err error) {
	a, ok, err := it.left.Next(ctx)
	if err != nil || !ok {
		return Pair[A, B]{}, false, err
	}
	b, ok, err := it.right.Next(ctx)
	if err != nil || !ok {
		return Pair[A, B]{}, false, err
	}
	return Pair[A, B]{Key: a, Value: b}, true, nil
}

func (it *zipIter[A, B]) Close() error {
	errL := it.left.Close()
	if errR := it.right.Close(); errL == nil {
		return errR
	}
	return errL
}
