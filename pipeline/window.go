package pipeline

import "context"

// Window emits overlapping windows of size consecutive values, advancing by
// step values each time. A trailing window shorter than size is not emitted.
// Each emitted slice is a fresh copy. size and step below one are treated
// as one.
func Window[T any](p *Pipeline[T], size, step int) *Pipeline[[]T] {
	size, step = max(size, 1), max(step, 1)
	return &Pipeline[[]T]{
		create: func(ctx context.Context) Iterator[[]T] {
			return &windowIter[T]{source: p.create(ctx), size: size, step: step}
		},
	}
}

type windowIter[T any] struct {
	source Iterator[T]
	size   int
	step   int
	buf    []T
	skip   int
	done   bool
}

func (it *windowIter[T]) Next(ctx context.Context) (result []T, ok bool, err error) {
	if it.done {
		return nil, false, nil
	}
	for len(it.buf) < it.size {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			it.done = true
			return nil, false, nil
		}
		if it.skip > 0 {
			// step larger than size: drop values between windows
			it.skip--
			continue
		}
		it.buf = append(it.buf, val)
	}

	out := make([]T, it.size)
	copy(out, it.buf)
	if it.step >= it.size {
		it.skip = it.step - it.size
		it.buf = it.buf[:0]
	} else {
		it.buf = append(it.buf[:0], it.buf[it.step:]...)
	}
	return out, true, nil
}

func (it *windowIter[T]) Close() error { return it.source.Close() }
